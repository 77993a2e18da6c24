// Package synthetic はモックモード用の合成マーケットデータを生成します。
package synthetic

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"cloudtrade/internal/feature/marketdata/domain/entity"
	"cloudtrade/internal/feature/marketdata/usecase"
)

const (
	// StartPrice はランダムウォークの開始価格です。
	StartPrice = 150.0
	// volatilityRatio は1ステップあたりの最大変動率です。
	volatilityRatio = 0.02
	minVolume       = 500_000
	volumeSpan      = 1_000_000
	// quoteJitter は気配値の現在値に加えるゆらぎの最大幅です。
	quoteJitter = 1.0
	sampleStep  = 24 * time.Hour
)

// BaselineQuote はモックモードの基準気配値です。
var BaselineQuote = entity.Quote{
	Current:       154.32,
	Change:        2.15,
	PercentChange: 1.41,
	High:          155.00,
	Low:           151.20,
	Open:          152.10,
	PreviousClose: 152.17,
}

// Generator はランダムウォークによるローソク足と、ゆらぎを加えた気配値を生成します。
// 形状は決定的ですが値はランダムです。
type Generator struct {
	mu    sync.Mutex
	rnd   *rand.Rand
	clock clock.Clock
}

var _ usecase.Source = (*Generator)(nil)

// NewGenerator は Generator を生成します。rnd や clk が nil の場合は既定値を使用します。
func NewGenerator(rnd *rand.Rand, clk clock.Clock) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Generator{rnd: rnd, clock: clk}
}

// Series は現在時刻で終わる1日刻みのローソク足を samples 件、古い順に生成します。
func (g *Generator) Series(samples int) []entity.Candle {
	if samples <= 0 {
		return []entity.Candle{}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	price := StartPrice
	out := make([]entity.Candle, 0, samples)
	for i := samples - 1; i >= 0; i-- {
		volatility := price * volatilityRatio
		change := g.uniform() * volatility

		open := price
		closePrice := price + change
		high := math.Max(open, closePrice) + g.rnd.Float64()*volatility*0.5
		low := math.Min(open, closePrice) - g.rnd.Float64()*volatility*0.5

		out = append(out, entity.Candle{
			Time:   now.Add(-time.Duration(i) * sampleStep).UnixMilli(),
			Open:   round2(open),
			High:   round2(high),
			Low:    round2(low),
			Close:  round2(closePrice),
			Volume: minVolume + g.rnd.Int64N(volumeSpan),
		})
		price = closePrice
	}
	return out
}

// History は期間に応じた件数の合成ローソク足を返します。銘柄は参照しません。
func (g *Generator) History(_ context.Context, _ string, rng entity.Range) ([]entity.Candle, error) {
	return g.Series(rng.SyntheticSamples()), nil
}

// Quote は基準気配値の現在値のみにゆらぎを加えて返します。
func (g *Generator) Quote(_ context.Context, _ string) (entity.Quote, error) {
	g.mu.Lock()
	jitter := g.uniform() * quoteJitter
	g.mu.Unlock()

	q := BaselineQuote
	q.Current = round2(q.Current + jitter)
	return q, nil
}

// uniform は [-1, 1) の一様乱数を返します。呼び出し元が mu を保持している必要があります。
func (g *Generator) uniform() float64 {
	return g.rnd.Float64()*2 - 1
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
