package domain

import "errors"

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
	ErrInternal           = errors.New("problem with token processing")
)

// Entity errors
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrBoardNotFound    = errors.New("board not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrDuplicateName    = errors.New("name already exists")
	ErrForbidden        = errors.New("not allowed")
)
