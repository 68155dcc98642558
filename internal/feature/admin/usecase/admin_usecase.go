// Package usecase は管理者向け操作（ログイン、取り込み起動、キャッシュ削除）を実装します。
package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"twstock/internal/shared/symbolcode"
)

// RoleAdmin は管理者トークンのroleクレームです。
const RoleAdmin = "admin"

// dummyHash はユーザー名が一致しない場合にも比較を行うためのbcryptハッシュです。
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

var (
	// ErrInvalidCredentials はユーザー名またはパスワードが誤っていることを示します。
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnavailable は操作に必要な依存が構成されていないことを示します。
	ErrUnavailable = errors.New("operation not available")
	// ErrInvalidCode は銘柄コードが空であることを示します。
	ErrInvalidCode = errors.New("stock code is required")
)

// TokenGenerator は署名済みトークンを発行します。
type TokenGenerator interface {
	GenerateToken(subject, role string) (string, error)
}

// IngestStarter はバックグラウンドの取り込みを開始します。
type IngestStarter interface {
	Start(ctx context.Context) error
}

// CacheInvalidator は銘柄のキャッシュ済み価格履歴を破棄します。
type CacheInvalidator interface {
	Invalidate(ctx context.Context, code string) (int, error)
}

// AdminUsecase は管理者操作を提供します。
type AdminUsecase struct {
	cfg    Config
	tokens TokenGenerator
	ingest IngestStarter
	cache  CacheInvalidator
}

// NewAdminUsecase はAdminUsecaseを生成します。ingestとcacheはnilでも構いません。
func NewAdminUsecase(cfg Config, tokens TokenGenerator, ingest IngestStarter, cache CacheInvalidator) *AdminUsecase {
	return &AdminUsecase{cfg: cfg, tokens: tokens, ingest: ingest, cache: cache}
}

// Login は管理者を認証し、成功時にトークンを返します。
// ユーザー名が一致しない場合もbcrypt比較を行い、応答時間を揃えます。
func (u *AdminUsecase) Login(ctx context.Context, username, password string) (string, error) {
	hash := dummyHash
	userOK := u.cfg.Enabled() &&
		subtle.ConstantTimeCompare([]byte(username), []byte(u.cfg.Username)) == 1
	if userOK {
		hash = u.cfg.PasswordHash
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if !userOK || compareErr != nil {
		return "", ErrInvalidCredentials
	}

	token, err := u.tokens.GenerateToken(username, RoleAdmin)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// TriggerIngest は取り込みをバックグラウンドで開始します。
// 実行中の場合は取り込み側のエラー（ErrIngestRunning）をそのまま返します。
func (u *AdminUsecase) TriggerIngest(ctx context.Context) error {
	if u.ingest == nil {
		return fmt.Errorf("%w: ingest requires a database", ErrUnavailable)
	}
	return u.ingest.Start(ctx)
}

// InvalidateCache はcodeのキャッシュ済み価格履歴を削除し、削除件数を返します。
func (u *AdminUsecase) InvalidateCache(ctx context.Context, code string) (int, error) {
	code = symbolcode.Bare(code)
	if code == "" {
		return 0, ErrInvalidCode
	}
	if u.cache == nil {
		return 0, nil
	}
	n, err := u.cache.Invalidate(ctx, code)
	if err != nil {
		return n, fmt.Errorf("invalidate cache: %w", err)
	}
	slog.InfoContext(ctx, "chart cache invalidated", "code", code, "deleted", n)
	return n, nil
}
