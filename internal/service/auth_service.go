package service

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/devjh/commboard/internal/domain"
	"github.com/devjh/commboard/internal/repository"
	"github.com/devjh/commboard/internal/token"
)

// AuthService owns the refresh-token lifecycle: issue on login, rotate
// on refresh, revoke the old token on every rotation. It holds no
// durable state of its own.
type AuthService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.RefreshTokenRepository
	visitors  *VisitorService
	issuer    *token.Issuer
}

func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.RefreshTokenRepository, visitors *VisitorService, issuer *token.Issuer) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		visitors:  visitors,
		issuer:    issuer,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Nickname string
}

type AuthResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, domain.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        input.Email,
		Name:         input.Name,
		Nickname:     input.Nickname,
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.Login(ctx, user)
}

// ValidateUser checks the password against the stored hash. Every
// lookup failure, including not-found, collapses into
// ErrInvalidCredentials so the response never reveals which emails
// are registered.
func (s *AuthService) ValidateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// Login issues a fresh access/refresh pair for an already validated
// user and persists the refresh token. The caller is expected to have
// gone through ValidateUser; the id re-fetch guards against a stale
// user object.
func (s *AuthService) Login(ctx context.Context, user *domain.User) (*AuthResult, error) {
	fresh, err := s.userRepo.GetByID(ctx, user.ID)
	if err != nil || fresh == nil {
		log.Printf("ERROR [auth.Login] user re-fetch failed for id=%d: %v", user.ID, err)
		return nil, domain.ErrInternal
	}

	pair, err := s.issueTokens(ctx, fresh)
	if err != nil {
		log.Printf("ERROR [auth.Login] token issuance failed for id=%d: %v", fresh.ID, err)
		return nil, domain.ErrInternal
	}

	s.touchVisitor(fresh.Email)

	return &AuthResult{
		User:         fresh,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Refresh rotates a refresh token: the presented token is revoked and
// a brand-new pair is issued. Revocation happens as one conditional
// update in the store, so two concurrent calls with the same token
// string cannot both succeed.
func (s *AuthService) Refresh(ctx context.Context, tokenString string) (*TokenPair, error) {
	record, err := s.tokenRepo.RevokeIfActive(ctx, tokenString, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			return nil, domain.ErrInvalidCredentials
		}
		log.Printf("ERROR [auth.Refresh] revocation failed: %v", err)
		return nil, domain.ErrInternal
	}

	user, err := s.userRepo.GetByEmail(ctx, record.UserEmail)
	if err != nil {
		log.Printf("ERROR [auth.Refresh] owner lookup failed for %s: %v", record.UserEmail, err)
		return nil, domain.ErrInternal
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		log.Printf("ERROR [auth.Refresh] token issuance failed for id=%d: %v", user.ID, err)
		return nil, domain.ErrInternal
	}

	s.touchVisitor(user.Email)

	return pair, nil
}

// ValidateAccessToken is a pure query: signature and expiry only, no
// store lookup, and every verification failure reads as false.
func (s *AuthService) ValidateAccessToken(tokenString string) bool {
	_, err := s.issuer.Verify(tokenString)
	return err == nil
}

func (s *AuthService) VerifyAccessToken(tokenString string) (*token.Claims, error) {
	return s.issuer.Verify(tokenString)
}

func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *AuthService) issueTokens(ctx context.Context, user *domain.User) (*TokenPair, error) {
	payload := token.Payload{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}

	// The stored expiry is taken from the refresh token's own exp
	// claim rather than recomputed here.
	refreshToken, expiresAt, err := s.issuer.IssueRefresh(payload)
	if err != nil {
		return nil, err
	}

	record := &domain.RefreshToken{
		Token:     refreshToken,
		UserEmail: user.Email,
		ExpiresAt: expiresAt,
	}
	if err := s.tokenRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	accessToken, err := s.issuer.IssueAccess(payload)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// touchVisitor fires the visit counter without blocking the auth
// response. Failures are logged and dropped.
func (s *AuthService) touchVisitor(identifier string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.visitors.Touch(ctx, identifier); err != nil {
			log.Printf("ERROR [auth.touchVisitor] visit count update failed for %s: %v", identifier, err)
		}
	}()
}
