package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	modeentity "cloudtrade/internal/feature/mode/domain/entity"
	modehandler "cloudtrade/internal/feature/mode/transport/handler"
	modeusecase "cloudtrade/internal/feature/mode/usecase"
	"cloudtrade/internal/feature/portfolio/transport/http/dto"
	"cloudtrade/internal/feature/portfolio/usecase"
	tradeentity "cloudtrade/internal/feature/trades/domain/entity"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type stubLister struct {
	trades []tradeentity.TradeRecord
	err    error
}

func (s stubLister) List(context.Context) ([]tradeentity.TradeRecord, error) {
	return s.trades, s.err
}

func setupRouter(svc PortfolioService) *gin.Engine {
	h := NewPortfolioHandler(modeentity.ByMode[PortfolioService]{modeentity.Mock: svc})
	r := gin.New()
	r.Use(modehandler.NewModeHandler(modeusecase.NewSelector(false, "")).Middleware())
	r.GET("/portfolio", h.Get)
	r.POST("/portfolio/aggregate", h.Aggregate)
	return r
}

func TestPortfolioHandler_Get(t *testing.T) {
	t.Parallel()

	ledger := []tradeentity.TradeRecord{
		{ID: "tx_1", Symbol: "AAPL", Side: tradeentity.SideBuy, Price: 145.2, Quantity: 10},
		{ID: "tx_2", Symbol: "AAPL", Side: tradeentity.SideSell, Price: 155, Quantity: 2},
	}
	r := setupRouter(usecase.NewPortfolioUsecase(stubLister{trades: ledger}, nil, 150))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/portfolio", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var got dto.SummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, dto.SummaryResponse{
		Items:      []dto.PortfolioItemResponse{{Symbol: "AAPL", TotalQuantity: 8, AveragePrice: 0, CurrentValue: 1200, Allocation: 100}},
		TotalValue: 1200,
	}, got)
}

func TestPortfolioHandler_Get_Error(t *testing.T) {
	t.Parallel()

	r := setupRouter(usecase.NewPortfolioUsecase(stubLister{err: errors.New("boom")}, nil, 150))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/portfolio", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"operation failed"}`, w.Body.String())
}

func TestPortfolioHandler_Aggregate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantJSON   string
	}{
		{
			name:       "empty trade list",
			body:       `{"trades":[]}`,
			wantStatus: http.StatusOK,
			wantJSON:   `{"items":[],"totalValue":0}`,
		},
		{
			name: "closed position",
			body: `{"trades":[
				{"id":"a","symbol":"X","action":"BUY","price":10,"quantity":5},
				{"id":"b","symbol":"X","action":"SELL","price":12,"quantity":5}]}`,
			wantStatus: http.StatusOK,
			wantJSON:   `{"items":[],"totalValue":0}`,
		},
		{
			name: "two holdings",
			body: `{"trades":[
				{"id":"a","symbol":"NVDA","action":"BUY","price":420,"quantity":2},
				{"id":"b","symbol":"TSLA","action":"BUY","price":210.5,"quantity":2}]}`,
			wantStatus: http.StatusOK,
			wantJSON: `{"items":[
				{"symbol":"NVDA","totalQuantity":2,"averagePrice":0,"currentValue":300,"allocation":50},
				{"symbol":"TSLA","totalQuantity":2,"averagePrice":0,"currentValue":300,"allocation":50}],
				"totalValue":600}`,
		},
		{
			name:       "lower-case symbol and action are normalised",
			body:       `{"trades":[{"symbol":"aapl","action":"buy","quantity":3}]}`,
			wantStatus: http.StatusOK,
			wantJSON: `{"items":[
				{"symbol":"AAPL","totalQuantity":3,"averagePrice":0,"currentValue":450,"allocation":100}],
				"totalValue":450}`,
		},
		{
			name:       "negative quantity is rejected",
			body:       `{"trades":[{"id":"a","symbol":"AAPL","action":"SELL","price":155,"quantity":-3}]}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantJSON:   `{"error":"trades[0]: order rejected: quantity must be positive"}`,
		},
		{
			name: "unknown action is rejected",
			body: `{"trades":[
				{"id":"a","symbol":"AAPL","action":"BUY","price":145.2,"quantity":1},
				{"id":"b","symbol":"AAPL","action":"HOLD","price":145.2,"quantity":1}]}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantJSON:   `{"error":"trades[1]: order rejected: side must be BUY or SELL, got \"HOLD\""}`,
		},
		{
			name:       "malformed body",
			body:       `[`,
			wantStatus: http.StatusBadRequest,
			wantJSON:   `{"error":"invalid request body"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := setupRouter(usecase.NewPortfolioUsecase(stubLister{}, nil, 150))
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/portfolio/aggregate", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantJSON, w.Body.String())
		})
	}
}
