package testutil

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/devjh/commboard/internal/domain"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email    string
	name     string
	nickname string
	password string
	role     string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		name:     "Test User",
		nickname: fmt.Sprintf("tester_%s", suffix),
		password: "testpassword123",
		role:     domain.RoleUser,
	}
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

func (b *UserBuilder) WithNickname(nickname string) *UserBuilder {
	b.nickname = nickname
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

func (b *UserBuilder) WithRole(role string) *UserBuilder {
	b.role = role
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		Email:        b.email,
		Name:         b.name,
		Nickname:     b.nickname,
		PasswordHash: string(hashedPassword),
		Role:         b.role,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// SeedBoard creates a board in the database
func SeedBoard(t *testing.T, db *gorm.DB, name string) *domain.Board {
	t.Helper()

	board := &domain.Board{
		Name:        name,
		Description: fmt.Sprintf("%s board", name),
	}
	if err := db.Create(board).Error; err != nil {
		t.Fatalf("failed to create board: %v", err)
	}
	return board
}

// SeedCategory creates a category in the database
func SeedCategory(t *testing.T, db *gorm.DB, name string) *domain.Category {
	t.Helper()

	category := &domain.Category{Name: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	return category
}

// SeedPost creates a post in the database
func SeedPost(t *testing.T, db *gorm.DB, boardID, authorID uint, title string) *domain.Post {
	t.Helper()

	tags, _ := json.Marshal([]string{"test"})
	post := &domain.Post{
		Title:    title,
		Content:  "test content",
		Tags:     datatypes.JSON(tags),
		BoardID:  boardID,
		AuthorID: authorID,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("failed to create post: %v", err)
	}
	return post
}
