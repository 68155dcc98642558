package usecase

import "os"

// Config は管理者の認証情報です。
type Config struct {
	Username     string // ADMIN_USERNAME
	PasswordHash string // ADMIN_PASSWORD_HASH (bcrypt)
}

// LoadConfig は環境変数から管理者の認証情報を読み込みます。
func LoadConfig() Config {
	return Config{
		Username:     os.Getenv("ADMIN_USERNAME"),
		PasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}
}

// Enabled は管理者ログインが設定されているかを返します。
func (c Config) Enabled() bool {
	return c.Username != "" && c.PasswordHash != ""
}
