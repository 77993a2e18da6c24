// Package usecase は取引台帳のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"cloudtrade/internal/feature/trades/domain/entity"
)

// Ledger は取引台帳の永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Ledger interface {
	// Append は取引を台帳の先頭に追加します。
	Append(ctx context.Context, trade entity.TradeRecord) error
	// List は台帳の全取引を新しい順に返します。
	List(ctx context.Context) ([]entity.TradeRecord, error)
}

// TradeUsecase は注文の受け付けと取引履歴の取得を提供します。
type TradeUsecase struct {
	ledger Ledger
	clock  clock.Clock
	newID  func() string
}

// NewTradeUsecase はTradeUsecaseの新しいインスタンスを生成します。clk が nil の場合は実時間を使用します。
func NewTradeUsecase(ledger Ledger, clk clock.Clock) *TradeUsecase {
	if clk == nil {
		clk = clock.New()
	}
	return &TradeUsecase{ledger: ledger, clock: clk, newID: NewTradeID}
}

// NewTradeID は "tx_" で始まる一意な取引IDを生成します。
func NewTradeID() string {
	return "tx_" + uuid.NewString()
}

// Append は注文を検証し、IDとステータスを付与して台帳に追加します。
// 検証に失敗した場合は ErrOrderRejected を返します。
func (u *TradeUsecase) Append(ctx context.Context, order entity.Order) (entity.TradeRecord, error) {
	order.Symbol = strings.ToUpper(strings.TrimSpace(order.Symbol))
	order.Side = entity.Side(strings.ToUpper(string(order.Side)))
	if err := validateOrder(order); err != nil {
		return entity.TradeRecord{}, err
	}

	ts := order.Timestamp
	if ts <= 0 {
		ts = u.clock.Now().UnixMilli()
	}

	record := entity.TradeRecord{
		ID:        u.newID(),
		Symbol:    order.Symbol,
		Side:      order.Side,
		Price:     order.Price,
		Quantity:  order.Quantity,
		Timestamp: ts,
		Status:    entity.StatusSuccess,
	}
	if err := u.ledger.Append(ctx, record); err != nil {
		return entity.TradeRecord{}, fmt.Errorf("append trade %s: %w", record.ID, err)
	}

	slog.Info("trade recorded", "id", record.ID, "symbol", record.Symbol, "side", record.Side,
		"quantity", record.Quantity, "price", record.Price)
	return record, nil
}

// List は台帳の取引を新しい順に返します。
// 台帳が空の場合、または永続化層が読めない場合はサンプル取引を返します。
func (u *TradeUsecase) List(ctx context.Context) ([]entity.TradeRecord, error) {
	trades, err := u.ledger.List(ctx)
	if err != nil {
		if !errors.Is(err, ErrPersistence) {
			return nil, err
		}
		slog.Warn("ledger unreadable, using seed trades", "error", err)
		return SeedTrades(u.clock.Now()), nil
	}
	if len(trades) == 0 {
		return SeedTrades(u.clock.Now()), nil
	}

	out := make([]entity.TradeRecord, len(trades))
	copy(out, trades)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out, nil
}

// NormalizeRecord は外部から受け取った取引記録の銘柄と売買区分を大文字化して検証します。
// 銘柄・売買区分・数量は注文と同じ基準で検証します。価格は省略（0）を許し、負の値と非有限値を拒否します。
// 不正な記録には ErrOrderRejected を返します。
func NormalizeRecord(r entity.TradeRecord) (entity.TradeRecord, error) {
	r.Symbol = strings.ToUpper(strings.TrimSpace(r.Symbol))
	r.Side = entity.Side(strings.ToUpper(strings.TrimSpace(string(r.Side))))
	switch {
	case r.Symbol == "":
		return entity.TradeRecord{}, fmt.Errorf("%w: symbol is required", ErrOrderRejected)
	case !r.Side.Valid():
		return entity.TradeRecord{}, fmt.Errorf("%w: side must be BUY or SELL, got %q", ErrOrderRejected, r.Side)
	case math.IsNaN(r.Price) || math.IsInf(r.Price, 0) || r.Price < 0:
		return entity.TradeRecord{}, fmt.Errorf("%w: price must not be negative", ErrOrderRejected)
	case r.Quantity <= 0:
		return entity.TradeRecord{}, fmt.Errorf("%w: quantity must be positive", ErrOrderRejected)
	}
	return r, nil
}

// validateOrder は注文内容を検証します。
func validateOrder(o entity.Order) error {
	switch {
	case o.Symbol == "":
		return fmt.Errorf("%w: symbol is required", ErrOrderRejected)
	case !o.Side.Valid():
		return fmt.Errorf("%w: side must be BUY or SELL, got %q", ErrOrderRejected, o.Side)
	case math.IsNaN(o.Price) || math.IsInf(o.Price, 0) || o.Price <= 0:
		return fmt.Errorf("%w: price must be positive", ErrOrderRejected)
	case o.Quantity <= 0:
		return fmt.Errorf("%w: quantity must be positive", ErrOrderRejected)
	}
	return nil
}
