// Package handler はmodeフィーチャーのHTTPハンドラーとモード解決ミドルウェアを提供します。
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cloudtrade/internal/feature/mode/domain/entity"
	"cloudtrade/internal/feature/mode/transport/http/dto"
	"cloudtrade/internal/feature/mode/usecase"
	httpdto "cloudtrade/internal/platform/http/dto"
)

const (
	// modeKey はgin.Contextに解決済みモードを格納するキーです。
	modeKey = "cloudtrade.mode"
	// ModeHeader はリクエスト単位でモードを上書きするヘッダーです。
	ModeHeader = "X-App-Mode"
)

// ModeSelector はモード選択のユースケースインターフェースです。
type ModeSelector interface {
	IsReady() bool
	Requested() entity.Mode
	Current() entity.Mode
	Set(m entity.Mode) (entity.Mode, error)
	Toggle() (entity.Mode, error)
	Resolve(override string) (entity.Mode, error)
}

// ModeHandler はモードの参照と切り替えを処理します。
type ModeHandler struct {
	sel ModeSelector
}

// NewModeHandler はModeHandlerを生成します。
func NewModeHandler(sel ModeSelector) *ModeHandler {
	return &ModeHandler{sel: sel}
}

// Get は現在のモード状態を返します。
//
// GET /mode
func (h *ModeHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.response())
}

// Set はリクエストボディのモードに切り替えます。
//
// PUT /mode {"mode":"REAL"}
func (h *ModeHandler) Set(c *gin.Context) {
	var req dto.SetModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
		return
	}
	m, err := entity.ParseMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
		return
	}
	if _, err := h.sel.Set(m); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.response())
}

// Toggle はMOCKとREALを切り替えます。
//
// POST /mode/toggle
func (h *ModeHandler) Toggle(c *gin.Context) {
	if _, err := h.sel.Toggle(); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.response())
}

// Middleware はリクエストごとにモードを解決し、gin.Contextに格納します。
// クエリ ?mode= がヘッダー X-App-Mode より優先されます。
func (h *ModeHandler) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		override := c.Query("mode")
		if override == "" {
			override = c.GetHeader(ModeHeader)
		}
		m, err := h.sel.Resolve(override)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
			return
		}
		c.Set(modeKey, m)
		c.Header(ModeHeader, m.String())
		c.Next()
	}
}

// FromContext はミドルウェアが解決したモードを返します。未設定の場合はMOCKです。
func FromContext(c *gin.Context) entity.Mode {
	if v, ok := c.Get(modeKey); ok {
		if m, ok := v.(entity.Mode); ok {
			return m
		}
	}
	return entity.Mock
}

func (h *ModeHandler) response() dto.ModeResponse {
	return dto.ModeResponse{
		Mode:      h.sel.Current().String(),
		Requested: h.sel.Requested().String(),
		Ready:     h.sel.IsReady(),
	}
}

func (h *ModeHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, usecase.ErrRealModeUnavailable) {
		c.JSON(http.StatusConflict, httpdto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: httpdto.OperationFailed})
}
