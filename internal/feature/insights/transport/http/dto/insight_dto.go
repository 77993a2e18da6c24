// Package dto はinsightsフィーチャーのレスポンス形式を定義します。
package dto

import "cloudtrade/internal/feature/insights/domain/entity"

// InsightResponse は GET /insights/:symbol のレスポンスです。
type InsightResponse struct {
	Symbol      string `json:"symbol"`
	Text        string `json:"text"`
	Engine      string `json:"engine"`
	QuoteOrigin string `json:"quoteOrigin"`
}

// NewInsightResponse はエンティティをレスポンスに変換します。
func NewInsightResponse(e entity.Insight) InsightResponse {
	return InsightResponse{
		Symbol:      e.Symbol,
		Text:        e.Text,
		Engine:      string(e.Engine),
		QuoteOrigin: e.QuoteOrigin,
	}
}
