// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// CheckTimeout は依存先1件あたりの疎通確認の上限時間です。
const CheckTimeout = 2 * time.Second

// Check は依存先の疎通を確認します。nil は正常を表します。
type Check func(ctx context.Context) error

// HealthResponse は /healthz のレスポンスです。
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Health は /healthz のハンドラーを返します。常にキャッシュを禁止します。
//
// HEADは本文なしの200、OPTIONSは204を返し、依存先は確認しません。
// それ以外のメソッドでは checks を名前順に実行します。失敗した依存先があっても
// ステータスは200のままで、status を "degraded" にします。
func Health(checks map[string]Check) gin.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		switch c.Request.Method {
		case http.MethodHead:
			c.Status(http.StatusOK)
			return
		case http.MethodOptions:
			c.Status(http.StatusNoContent)
			return
		}

		resp := HealthResponse{Status: "ok"}
		if len(names) > 0 {
			resp.Checks = make(map[string]string, len(names))
		}
		for _, name := range names {
			ctx, cancel := context.WithTimeout(c.Request.Context(), CheckTimeout)
			err := checks[name](ctx)
			cancel()
			if err != nil {
				resp.Status = "degraded"
				resp.Checks[name] = err.Error()
				continue
			}
			resp.Checks[name] = "ok"
		}
		c.JSON(http.StatusOK, resp)
	}
}
