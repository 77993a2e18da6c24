package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusSnapshot はシステム状態パネルに表示する情報です。
type StatusSnapshot struct {
	Mode          string `json:"mode"`          // リクエストに適用されたモード
	RealModeReady bool   `json:"realModeReady"` // REALモードに必要な設定が揃っているか
	Ledger        string `json:"ledger"`        // 現在のモードで使われる台帳の種類
	MarketData    string `json:"marketData"`    // 現在のモードで使われる市場データの取得元
	Cache         bool   `json:"cache"`         // 市場データのRedisキャッシュが有効か
	Insights      string `json:"insights"`      // マーケットインサイトの生成方式
}

// StatusProvider はリクエストごとの状態を組み立てます。
type StatusProvider func(c *gin.Context) StatusSnapshot

// Status は /status を処理するハンドラーを返します。
func Status(provide StatusProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.JSON(http.StatusOK, provide(c))
	}
}
