package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devjh/commboard/internal/domain"
	"github.com/devjh/commboard/internal/repository/postgres"
	"github.com/devjh/commboard/internal/service"
	"github.com/devjh/commboard/internal/testutil"
	"github.com/devjh/commboard/internal/token"
)

func TestAuthService_ValidateUser(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	services := service.NewServices(repos, cfg)

	user, rawPassword := testutil.NewUserBuilder().
		WithEmail("a@x.com").
		WithPassword("correct").
		Build(t, testDB.DB)

	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "matching credentials",
			email:    user.Email,
			password: rawPassword,
		},
		{
			name:     "wrong password",
			email:    user.Email,
			password: "wrong",
			wantErr:  domain.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@x.com",
			password: "correct",
			wantErr:  domain.ErrInvalidCredentials,
		},
		{
			name:    "empty credentials",
			wantErr: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := services.Auth.ValidateUser(ctx, tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, user.ID, got.ID)
			assert.Equal(t, user.Email, got.Email)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	services := service.NewServices(repos, cfg)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithEmail("login@x.com").
		WithName("Login User").
		WithNickname("logger").
		Build(t, testDB.DB)

	result, err := services.Auth.Login(ctx, user)
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "Login User", result.User.Name)
	assert.Equal(t, "logger", result.User.Nickname)
	assert.Equal(t, "login@x.com", result.User.Email)

	// The stored row's expiry must match the refresh token's own exp
	// claim and land seven days out.
	record, err := repos.RefreshToken.GetByToken(ctx, result.RefreshToken)
	require.NoError(t, err)
	assert.False(t, record.Revoked)
	assert.Equal(t, user.Email, record.UserEmail)
	assert.WithinDuration(t, time.Now().Add(cfg.RefreshTokenTTL), record.ExpiresAt, 5*time.Second)

	issuer := token.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	claims, err := issuer.Verify(result.RefreshToken)
	require.NoError(t, err)
	assert.WithinDuration(t, record.ExpiresAt, claims.ExpiresAt.Time, time.Second)

	// The access token carries the short TTL.
	accessClaims, err := issuer.Verify(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, accessClaims.UserID)
	assert.WithinDuration(t, time.Now().Add(cfg.AccessTokenTTL), accessClaims.ExpiresAt.Time, 5*time.Second)
}

func TestAuthService_LoginStaleUser(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	services := service.NewServices(repos, cfg)
	ctx := context.Background()

	// A caller handing in a user object whose id does not exist gets
	// an internal error, not a token pair.
	_, err := services.Auth.Login(ctx, &domain.User{ID: 9999, Email: "ghost@x.com"})
	assert.ErrorIs(t, err, domain.ErrInternal)
}

func TestAuthService_Refresh(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	services := service.NewServices(repos, cfg)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithEmail("refresh@x.com").
		Build(t, testDB.DB)

	login, err := services.Auth.Login(ctx, user)
	require.NoError(t, err)

	pair, err := services.Auth.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, login.RefreshToken, pair.RefreshToken)

	// Rotation leaves the old row revoked and a new row active.
	oldRecord, err := repos.RefreshToken.GetByToken(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.True(t, oldRecord.Revoked)

	newRecord, err := repos.RefreshToken.GetByToken(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.False(t, newRecord.Revoked)

	// The used token is burned: a second exchange fails.
	_, err = services.Auth.Refresh(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// The rotated-in token still works.
	_, err = services.Auth.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
}

func TestAuthService_RefreshRejectsUnusableTokens(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	services := service.NewServices(repos, cfg)
	ctx := context.Background()

	expired := &domain.RefreshToken{
		Token:     "expired-refresh-token",
		UserEmail: "refresh@x.com",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, repos.RefreshToken.Create(ctx, expired))

	tests := []struct {
		name  string
		token string
	}{
		{name: "never issued", token: "no-such-token"},
		{name: "empty string", token: ""},
		{name: "expired", token: "expired-refresh-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := services.Auth.Refresh(ctx, tt.token)
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		})
	}
}

func TestAuthService_ConcurrentRefresh(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	services := service.NewServices(repos, cfg)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithEmail("race@x.com").
		Build(t, testDB.DB)

	login, err := services.Auth.Login(ctx, user)
	require.NoError(t, err)

	// Two exchanges of the same token race; the conditional update in
	// the store must let exactly one through.
	const attempts = 2
	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = services.Auth.Refresh(ctx, login.RefreshToken)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
		}
	}
	assert.Equal(t, 1, successes, "exactly one concurrent refresh must succeed")
}

func TestAuthService_ValidateAccessToken(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	services := service.NewServices(repos, cfg)

	issuer := token.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	payload := token.Payload{UserID: 1, Email: "a@x.com", Role: domain.RoleUser}

	fresh, err := issuer.IssueAccess(payload)
	require.NoError(t, err)

	expired, _, err := issuer.Issue(payload, -time.Second)
	require.NoError(t, err)

	foreign, err := token.NewIssuer("other-secret", cfg.AccessTokenTTL, cfg.RefreshTokenTTL).IssueAccess(payload)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{name: "fresh token", token: fresh, want: true},
		{name: "expired token", token: expired, want: false},
		{name: "wrong secret", token: foreign, want: false},
		{name: "garbage", token: "notavalidjwt", want: false},
		{name: "empty", token: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.Auth.ValidateAccessToken(tt.token))
		})
	}
}
