package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/benbjohnson/clock"

	"cloudtrade/internal/feature/trades/domain/entity"
	"cloudtrade/internal/feature/trades/usecase"
)

// MockTradesKey は台帳全体をJSON配列として保存するキーです。
const MockTradesKey = "mock_trades"

// KeyValueStore はモック台帳が利用する文字列キーバリューストアです。
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// kvLedger はキーバリューストア上の取引台帳です。
// 読み込み・追加・書き戻しはミューテックスで直列化されるため、並行追加で取引が失われません。
type kvLedger struct {
	mu    sync.Mutex
	store KeyValueStore
	key   string
	clock clock.Clock
}

// kvLedgerがLedgerを実装していることをコンパイル時に検証します。
var _ usecase.Ledger = (*kvLedger)(nil)

// NewKVLedger は指定されたストアを使う台帳を生成します。
func NewKVLedger(store KeyValueStore, clk clock.Clock) *kvLedger {
	if clk == nil {
		clk = clock.New()
	}
	return &kvLedger{store: store, key: MockTradesKey, clock: clk}
}

// List は台帳の取引を新しい順に返します。
// キーが存在しない場合はサンプル取引を、保存値が壊れている場合は usecase.ErrPersistence を返します。
func (l *kvLedger) List(ctx context.Context) ([]entity.TradeRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(ctx)
}

// Append は取引を台帳の先頭に追加して書き戻します。
// 保存値が読めない場合は List が返すサンプル取引から再構築します。
func (l *kvLedger) Append(ctx context.Context, trade entity.TradeRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	current, err := l.load(ctx)
	if err != nil {
		slog.Warn("rebuilding unreadable ledger state from seed trades", "key", l.key, "error", err)
		current = usecase.SeedTrades(l.clock.Now())
	}
	for _, t := range current {
		if t.ID == trade.ID {
			return fmt.Errorf("%w: %s", usecase.ErrDuplicateTrade, trade.ID)
		}
	}

	rows := make([]tradeJSON, 0, len(current)+1)
	rows = append(rows, toJSON(trade))
	for _, t := range current {
		rows = append(rows, toJSON(t))
	}

	b, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("%w: encode ledger: %v", usecase.ErrPersistence, err)
	}
	if err := l.store.Set(ctx, l.key, string(b)); err != nil {
		return fmt.Errorf("%w: write ledger: %v", usecase.ErrPersistence, err)
	}
	return nil
}

func (l *kvLedger) load(ctx context.Context) ([]entity.TradeRecord, error) {
	raw, ok, err := l.store.Get(ctx, l.key)
	if err != nil {
		return nil, fmt.Errorf("%w: read ledger: %v", usecase.ErrPersistence, err)
	}
	if !ok {
		return usecase.SeedTrades(l.clock.Now()), nil
	}

	var rows []tradeJSON
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil, fmt.Errorf("%w: decode ledger: %v", usecase.ErrPersistence, err)
	}
	out := make([]entity.TradeRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toEntity())
	}
	return out, nil
}
