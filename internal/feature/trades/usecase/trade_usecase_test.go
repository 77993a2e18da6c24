package usecase_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudtrade/internal/feature/trades/domain/entity"
	"cloudtrade/internal/feature/trades/usecase"
)

// mockLedger は Ledger インターフェースのモック実装です。
type mockLedger struct {
	mu        sync.Mutex
	trades    []entity.TradeRecord
	listErr   error
	appendErr error
}

func (m *mockLedger) Append(_ context.Context, trade entity.TradeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return m.appendErr
	}
	m.trades = append([]entity.TradeRecord{trade}, m.trades...)
	return nil
}

func (m *mockLedger) List(_ context.Context) ([]entity.TradeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]entity.TradeRecord, len(m.trades))
	copy(out, m.trades)
	return out, nil
}

func newMockClock() *clock.Mock {
	clk := clock.NewMock()
	clk.Set(time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC))
	return clk
}

func TestTradeUsecase_Append(t *testing.T) {
	t.Parallel()

	clk := newMockClock()
	now := clk.Now().UnixMilli()

	tests := []struct {
		name      string
		order     entity.Order
		wantErr   error
		wantTrade entity.TradeRecord
	}{
		{
			name:      "success: buy order is recorded with SUCCESS status",
			order:     entity.Order{Symbol: "MSFT", Side: entity.SideBuy, Price: 300, Quantity: 1, Timestamp: 1_700_000_000_000},
			wantTrade: entity.TradeRecord{Symbol: "MSFT", Side: entity.SideBuy, Price: 300, Quantity: 1, Timestamp: 1_700_000_000_000, Status: entity.StatusSuccess},
		},
		{
			name:      "success: symbol and side are normalized, zero timestamp means now",
			order:     entity.Order{Symbol: " tsla ", Side: "sell", Price: 210.5, Quantity: 3},
			wantTrade: entity.TradeRecord{Symbol: "TSLA", Side: entity.SideSell, Price: 210.5, Quantity: 3, Timestamp: now, Status: entity.StatusSuccess},
		},
		{
			name:    "failure: empty symbol",
			order:   entity.Order{Symbol: "  ", Side: entity.SideBuy, Price: 1, Quantity: 1},
			wantErr: usecase.ErrOrderRejected,
		},
		{
			name:    "failure: unknown side",
			order:   entity.Order{Symbol: "AAPL", Side: "HOLD", Price: 1, Quantity: 1},
			wantErr: usecase.ErrOrderRejected,
		},
		{
			name:    "failure: zero price",
			order:   entity.Order{Symbol: "AAPL", Side: entity.SideBuy, Price: 0, Quantity: 1},
			wantErr: usecase.ErrOrderRejected,
		},
		{
			name:    "failure: negative quantity",
			order:   entity.Order{Symbol: "AAPL", Side: entity.SideBuy, Price: 1, Quantity: -2},
			wantErr: usecase.ErrOrderRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ledger := &mockLedger{}
			uc := usecase.NewTradeUsecase(ledger, clk)

			got, err := uc.Append(context.Background(), tt.order)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, ledger.trades, "rejected orders must not reach the ledger")
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(got.ID, "tx_"), "id %q should start with tx_", got.ID)
			tt.wantTrade.ID = got.ID
			assert.Equal(t, tt.wantTrade, got)
			require.Len(t, ledger.trades, 1)
			assert.Equal(t, got, ledger.trades[0])
		})
	}
}

func TestTradeUsecase_Append_LedgerError(t *testing.T) {
	t.Parallel()

	ledger := &mockLedger{appendErr: usecase.ErrPersistence}
	uc := usecase.NewTradeUsecase(ledger, newMockClock())

	_, err := uc.Append(context.Background(), entity.Order{Symbol: "AAPL", Side: entity.SideBuy, Price: 1, Quantity: 1})

	assert.ErrorIs(t, err, usecase.ErrPersistence)
}

func TestTradeUsecase_Append_UniqueIDs(t *testing.T) {
	t.Parallel()

	ledger := &mockLedger{}
	uc := usecase.NewTradeUsecase(ledger, newMockClock())

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Append(context.Background(), entity.Order{Symbol: "AAPL", Side: entity.SideBuy, Price: 1, Quantity: 1})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	seen := make(map[string]struct{})
	for _, tr := range ledger.trades {
		seen[tr.ID] = struct{}{}
	}
	assert.Len(t, seen, 50)
}

func TestTradeUsecase_List(t *testing.T) {
	t.Parallel()

	clk := newMockClock()
	seeds := usecase.SeedTrades(clk.Now())

	tests := []struct {
		name    string
		ledger  *mockLedger
		want    []entity.TradeRecord
		wantErr error
	}{
		{
			name:   "empty ledger returns seed trades",
			ledger: &mockLedger{},
			want:   seeds,
		},
		{
			name:   "unreadable ledger falls back to seed trades",
			ledger: &mockLedger{listErr: usecase.ErrPersistence},
			want:   seeds,
		},
		{
			name: "trades are returned most recent first",
			ledger: &mockLedger{trades: []entity.TradeRecord{
				{ID: "a", Symbol: "AAPL", Timestamp: 100},
				{ID: "b", Symbol: "AAPL", Timestamp: 300},
				{ID: "c", Symbol: "AAPL", Timestamp: 200},
			}},
			want: []entity.TradeRecord{
				{ID: "b", Symbol: "AAPL", Timestamp: 300},
				{ID: "c", Symbol: "AAPL", Timestamp: 200},
				{ID: "a", Symbol: "AAPL", Timestamp: 100},
			},
		},
		{
			name:    "other errors are propagated",
			ledger:  &mockLedger{listErr: errors.New("boom")},
			wantErr: errors.New("boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := usecase.NewTradeUsecase(tt.ledger, clk)
			got, err := uc.List(context.Background())

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.EqualError(t, err, tt.wantErr.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeedTrades(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	seeds := usecase.SeedTrades(now)

	require.Len(t, seeds, 4)
	for i, s := range seeds {
		assert.Equal(t, entity.StatusSuccess, s.Status)
		assert.Less(t, s.Timestamp, now.UnixMilli())
		if i > 0 {
			assert.Less(t, s.Timestamp, seeds[i-1].Timestamp, "seed trades should be most recent first")
		}
	}
	assert.Equal(t, "tx_4", seeds[0].ID)
	assert.Equal(t, "tx_1", seeds[3].ID)
}

func TestNormalizeRecord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      entity.TradeRecord
		want    entity.TradeRecord
		wantErr error
	}{
		{
			name: "success: symbol and side are upper-cased",
			in:   entity.TradeRecord{ID: "a", Symbol: " aapl ", Side: "buy", Price: 145.2, Quantity: 3, Status: entity.StatusSuccess},
			want: entity.TradeRecord{ID: "a", Symbol: "AAPL", Side: entity.SideBuy, Price: 145.2, Quantity: 3, Status: entity.StatusSuccess},
		},
		{
			name:    "failure: unknown side",
			in:      entity.TradeRecord{Symbol: "AAPL", Side: "HOLD", Price: 1, Quantity: 1},
			wantErr: usecase.ErrOrderRejected,
		},
		{
			name:    "failure: negative quantity",
			in:      entity.TradeRecord{Symbol: "AAPL", Side: entity.SideSell, Price: 155, Quantity: -3},
			wantErr: usecase.ErrOrderRejected,
		},
		{
			name: "success: omitted price is accepted",
			in:   entity.TradeRecord{Symbol: "aapl", Side: "buy", Quantity: 3},
			want: entity.TradeRecord{Symbol: "AAPL", Side: entity.SideBuy, Quantity: 3},
		},
		{
			name:    "failure: empty symbol",
			in:      entity.TradeRecord{Symbol: "", Side: entity.SideBuy, Price: 1, Quantity: 1},
			wantErr: usecase.ErrOrderRejected,
		},
		{
			name:    "failure: negative price",
			in:      entity.TradeRecord{Symbol: "AAPL", Side: entity.SideBuy, Price: -1, Quantity: 1},
			wantErr: usecase.ErrOrderRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := usecase.NormalizeRecord(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
