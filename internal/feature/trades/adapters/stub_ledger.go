package adapters

import (
	"context"
	"log/slog"

	"github.com/benbjohnson/clock"

	"cloudtrade/internal/feature/trades/domain/entity"
	"cloudtrade/internal/feature/trades/usecase"
)

// stubLedger はリモート台帳が未設定のときに使う実装です。
// 追加は受け付けますが保存せず、一覧は常にサンプル取引を返します。
type stubLedger struct {
	clock clock.Clock
}

var _ usecase.Ledger = (*stubLedger)(nil)

// NewStubLedger はstubLedgerを生成します。
func NewStubLedger(clk clock.Clock) *stubLedger {
	if clk == nil {
		clk = clock.New()
	}
	return &stubLedger{clock: clk}
}

// Append は取引を保存せずにログへ記録し、成功として扱います。
func (s *stubLedger) Append(_ context.Context, trade entity.TradeRecord) error {
	slog.Info("remote ledger not configured, trade acknowledged without persistence", "id", trade.ID, "symbol", trade.Symbol)
	return nil
}

// List は常にサンプル取引を返します。
func (s *stubLedger) List(_ context.Context) ([]entity.TradeRecord, error) {
	return usecase.SeedTrades(s.clock.Now()), nil
}
