// Package usecase はマーケットデータ取得のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cloudtrade/internal/feature/marketdata/domain/entity"
)

// FallbackRange はリモート取得失敗時に合成データで代替する期間です。
const FallbackRange = entity.Range1M

// Source はローソク足と気配値の取得元を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Source interface {
	// History は指定された銘柄と期間のローソク足を古い順に返します。
	History(ctx context.Context, symbol string, rng entity.Range) ([]entity.Candle, error)
	// Quote は指定された銘柄の現在の気配値を返します。
	Quote(ctx context.Context, symbol string) (entity.Quote, error)
}

// Service は一つのモードに対応するマーケットデータ取得を提供します。
// プライマリの取得元が失敗した場合は代替の取得元に切り替え、その経路を Result に記録します。
// Service のメソッドは呼び出し元にエラーを返しません。
type Service struct {
	primary  Source
	origin   entity.Origin
	fallback Source
}

// NewSyntheticService はモックモード用の Service を生成します。すべての結果は合成データです。
func NewSyntheticService(synth Source) *Service {
	return &Service{primary: synth, origin: entity.OriginSynthetic}
}

// NewRemoteService はリアルモード用の Service を生成します。
// remote が失敗した場合は fallback の結果を OriginFallback として返します。
func NewRemoteService(remote, fallback Source) *Service {
	return &Service{primary: remote, origin: entity.OriginRemote, fallback: fallback}
}

// NormalizeSymbol は銘柄コードを大文字に正規化します。銘柄の存在確認は行いません。
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// FetchHistory は指定された銘柄と期間のローソク足を取得します。
func (s *Service) FetchHistory(ctx context.Context, symbol string, rng entity.Range) entity.Result[[]entity.Candle] {
	symbol = NormalizeSymbol(symbol)

	cs, err := s.primary.History(ctx, symbol, rng)
	if err == nil {
		return entity.Result[[]entity.Candle]{Data: cs, Origin: s.origin}
	}

	reason := asUnavailable(err)
	slog.Warn("history fetch failed, using synthetic data", "symbol", symbol, "range", rng, "error", reason)
	if s.fallback == nil {
		return entity.Result[[]entity.Candle]{Data: []entity.Candle{}, Origin: entity.OriginFallback, Reason: reason}
	}

	fb, ferr := s.fallback.History(ctx, symbol, FallbackRange)
	if ferr != nil {
		slog.Error("synthetic history failed", "symbol", symbol, "error", ferr)
		fb = []entity.Candle{}
	}
	return entity.Result[[]entity.Candle]{Data: fb, Origin: entity.OriginFallback, Reason: reason}
}

// FetchQuote は指定された銘柄の気配値を取得します。
func (s *Service) FetchQuote(ctx context.Context, symbol string) entity.Result[entity.Quote] {
	symbol = NormalizeSymbol(symbol)

	q, err := s.primary.Quote(ctx, symbol)
	if err == nil && q.Current <= 0 {
		err = ErrInvalidQuote
	}
	if err == nil {
		return entity.Result[entity.Quote]{Data: q, Origin: s.origin}
	}

	reason := asUnavailable(err)
	slog.Warn("quote fetch failed, using baseline quote", "symbol", symbol, "error", reason)
	if s.fallback == nil {
		return entity.Result[entity.Quote]{Origin: entity.OriginFallback, Reason: reason}
	}

	fb, ferr := s.fallback.Quote(ctx, symbol)
	if ferr != nil {
		slog.Error("synthetic quote failed", "symbol", symbol, "error", ferr)
	}
	return entity.Result[entity.Quote]{Data: fb, Origin: entity.OriginFallback, Reason: reason}
}

// asUnavailable は取得失敗の原因を ErrSourceUnavailable として分類します。
func asUnavailable(err error) error {
	if errors.Is(err, ErrSourceUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
}
