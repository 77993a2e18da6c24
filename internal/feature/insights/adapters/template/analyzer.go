// Package template はAPIを使わない定型のマーケットインサイトを提供します。
package template

import (
	"context"
	"fmt"

	"cloudtrade/internal/feature/insights/domain/entity"
	"cloudtrade/internal/feature/insights/usecase"
	marketentity "cloudtrade/internal/feature/marketdata/domain/entity"
)

// Analyzer は定型文でコメントを返します。MOCKモードとGemini無効時に使います。
type Analyzer struct{}

var _ usecase.Analyzer = Analyzer{}

// NewAnalyzer はAnalyzerを生成します。
func NewAnalyzer() Analyzer {
	return Analyzer{}
}

// Engine は EngineTemplate を返します。
func (Analyzer) Engine() entity.Engine { return entity.EngineTemplate }

// Analyze は現在値と安値を埋め込んだ定型分析を返します。
func (Analyzer) Analyze(_ context.Context, symbol string, q marketentity.Quote) (string, error) {
	return fmt.Sprintf(`[Simulated analysis]
Market analysis for %s:
1. Technicals: the current price %.2f shows solid short-term moving average support with steady volume.
2. News flow: tech names continue to benefit from the AI cycle and sentiment is upbeat.
3. Suggestion: trade the range and watch whether %.2f holds.
(Enable Gemini to get a live analysis.)`, symbol, q.Current, q.Low), nil
}
