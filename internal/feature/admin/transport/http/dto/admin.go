// Package dto はadminフィーチャーのHTTPリクエスト/レスポンス型を定義します。
package dto

// LoginRequest は/admin/loginのリクエストボディです。
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse はログイン成功時のレスポンスです。
type TokenResponse struct {
	Token string `json:"token"`
}

// MessageResponse は処理結果のメッセージです。
type MessageResponse struct {
	Message string `json:"message"`
}

// InvalidateResponse はキャッシュ削除の結果です。
type InvalidateResponse struct {
	Code    string `json:"code"`
	Deleted int    `json:"deleted"`
}

// ErrorResponse はエラーレスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}
