// Package dto はmodeフィーチャーのリクエスト・レスポンス形式を定義します。
package dto

// ModeResponse は現在のモード状態です。
type ModeResponse struct {
	Mode      string `json:"mode"`      // 実際に適用されるモード
	Requested string `json:"requested"` // ユーザーが選んだモード
	Ready     bool   `json:"ready"`     // REALモードの準備状態
}

// SetModeRequest は PUT /mode のリクエストボディです。
type SetModeRequest struct {
	Mode string `json:"mode" binding:"required"`
}
