// Package usecase はマーケットインサイト生成のビジネスロジックを実装します。
package usecase

import (
	"context"
	"log/slog"
	"strings"

	"cloudtrade/internal/feature/insights/domain/entity"
	marketentity "cloudtrade/internal/feature/marketdata/domain/entity"
	marketusecase "cloudtrade/internal/feature/marketdata/usecase"
)

const (
	// UnavailableText は生成に失敗した場合に返す固定文です。
	UnavailableText = "Market analysis is temporarily unavailable. Please try again later."
	// EmptyText は生成結果が空だった場合に返す固定文です。
	EmptyText = "No analysis could be generated."
)

// Quoter は銘柄の気配値を提供します。
type Quoter interface {
	FetchQuote(ctx context.Context, symbol string) marketentity.Result[marketentity.Quote]
}

// Analyzer は気配値からコメントを生成するインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Analyzer interface {
	Analyze(ctx context.Context, symbol string, quote marketentity.Quote) (string, error)
	Engine() entity.Engine
}

// InsightUsecase は気配値を取得してインサイトを生成します。
type InsightUsecase struct {
	quoter   Quoter
	analyzer Analyzer
}

// NewInsightUsecase はInsightUsecaseを生成します。
func NewInsightUsecase(quoter Quoter, analyzer Analyzer) *InsightUsecase {
	return &InsightUsecase{quoter: quoter, analyzer: analyzer}
}

// Generate は symbol のインサイトを返します。エラーは返さず、失敗時は固定文を返します。
func (u *InsightUsecase) Generate(ctx context.Context, symbol string) entity.Insight {
	symbol = marketusecase.NormalizeSymbol(symbol)
	q := u.quoter.FetchQuote(ctx, symbol)

	out := entity.Insight{Symbol: symbol, Engine: u.analyzer.Engine(), QuoteOrigin: string(q.Origin)}

	text, err := u.analyzer.Analyze(ctx, symbol, q.Data)
	if err != nil {
		slog.Warn("market insight generation failed", "symbol", symbol, "engine", out.Engine, "error", err)
		out.Text = UnavailableText
		out.Engine = entity.EngineUnavailable
		return out
	}
	if strings.TrimSpace(text) == "" {
		text = EmptyText
	}
	out.Text = text
	return out
}
