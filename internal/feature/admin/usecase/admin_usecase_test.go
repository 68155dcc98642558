package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockTokenGenerator struct {
	subject, role string
	err           error
}

func (m *mockTokenGenerator) GenerateToken(subject, role string) (string, error) {
	m.subject, m.role = subject, role
	if m.err != nil {
		return "", m.err
	}
	return "signed-token", nil
}

type mockIngest struct {
	started int
	err     error
}

func (m *mockIngest) Start(ctx context.Context) error {
	m.started++
	return m.err
}

type mockInvalidator struct {
	code string
	n    int
	err  error
}

func (m *mockInvalidator) Invalidate(ctx context.Context, code string) (int, error) {
	m.code = code
	return m.n, m.err
}

func hashPassword(t *testing.T, pw string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(b)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "ops")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$hash")

	cfg := LoadConfig()
	assert.Equal(t, "ops", cfg.Username)
	assert.True(t, cfg.Enabled())
	assert.False(t, Config{Username: "ops"}.Enabled())
}

func TestAdminUsecase_Login(t *testing.T) {
	t.Parallel()

	cfg := Config{Username: "ops", PasswordHash: hashPassword(t, "correct-horse")}

	tests := []struct {
		name     string
		cfg      Config
		username string
		password string
		wantErr  error
	}{
		{"success", cfg, "ops", "correct-horse", nil},
		{"wrong password", cfg, "ops", "battery", ErrInvalidCredentials},
		{"unknown user", cfg, "root", "correct-horse", ErrInvalidCredentials},
		{"not configured", Config{}, "", "", ErrInvalidCredentials},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens := &mockTokenGenerator{}
			uc := NewAdminUsecase(tt.cfg, tokens, nil, nil)

			token, err := uc.Login(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "signed-token", token)
			assert.Equal(t, "ops", tokens.subject)
			assert.Equal(t, RoleAdmin, tokens.role)
		})
	}
}

func TestAdminUsecase_Login_TokenError(t *testing.T) {
	t.Parallel()

	cfg := Config{Username: "ops", PasswordHash: hashPassword(t, "pw")}
	uc := NewAdminUsecase(cfg, &mockTokenGenerator{err: errors.New("no secret")}, nil, nil)

	_, err := uc.Login(context.Background(), "ops", "pw")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminUsecase_TriggerIngest(t *testing.T) {
	t.Parallel()

	ing := &mockIngest{}
	uc := NewAdminUsecase(Config{}, nil, ing, nil)
	require.NoError(t, uc.TriggerIngest(context.Background()))
	assert.Equal(t, 1, ing.started)

	running := errors.New("ingest already running")
	uc = NewAdminUsecase(Config{}, nil, &mockIngest{err: running}, nil)
	assert.ErrorIs(t, uc.TriggerIngest(context.Background()), running)

	uc = NewAdminUsecase(Config{}, nil, nil, nil)
	assert.ErrorIs(t, uc.TriggerIngest(context.Background()), ErrUnavailable)
}

func TestAdminUsecase_InvalidateCache(t *testing.T) {
	t.Parallel()

	inv := &mockInvalidator{n: 3}
	uc := NewAdminUsecase(Config{}, nil, nil, inv)

	n, err := uc.InvalidateCache(context.Background(), "2330.TW")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "2330", inv.code)

	_, err = uc.InvalidateCache(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidCode)

	boom := errors.New("redis down")
	_, err = NewAdminUsecase(Config{}, nil, nil, &mockInvalidator{err: boom}).InvalidateCache(context.Background(), "2330")
	assert.ErrorIs(t, err, boom)

	n, err = NewAdminUsecase(Config{}, nil, nil, nil).InvalidateCache(context.Background(), "2330")
	assert.NoError(t, err)
	assert.Zero(t, n)
}
