package synthetic

import (
	"context"

	"cloudtrade/internal/feature/marketdata/domain/entity"
	"cloudtrade/internal/feature/marketdata/usecase"
)

// Fallback はリモート取得失敗時の代替データを返す Source です。
// ローソク足は Generator の合成データ、気配値はゆらぎのない BaselineQuote です。
type Fallback struct {
	gen *Generator
}

var _ usecase.Source = (*Fallback)(nil)

// NewFallback は Generator をもとに Fallback を生成します。
func NewFallback(gen *Generator) *Fallback {
	return &Fallback{gen: gen}
}

// History は Generator の合成ローソク足を返します。
func (f *Fallback) History(ctx context.Context, symbol string, rng entity.Range) ([]entity.Candle, error) {
	return f.gen.History(ctx, symbol, rng)
}

// Quote は静的な基準気配値を返します。
func (f *Fallback) Quote(_ context.Context, _ string) (entity.Quote, error) {
	return BaselineQuote, nil
}
