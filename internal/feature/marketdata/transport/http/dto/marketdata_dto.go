// Package dto はmarketdataフィーチャーのレスポンス形式を定義します。
package dto

import "cloudtrade/internal/feature/marketdata/domain/entity"

// CandleResponse は1本のローソク足です。time はミリ秒のUnix時刻です。
type CandleResponse struct {
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// HistoryResponse は GET /candles/:symbol のレスポンスです。
type HistoryResponse struct {
	Symbol  string           `json:"symbol"`
	Range   string           `json:"range"`
	Origin  string           `json:"origin"`
	Reason  string           `json:"reason,omitempty"`
	Candles []CandleResponse `json:"candles"`
}

// QuoteResponse は GET /quote/:symbol のレスポンスです。
type QuoteResponse struct {
	Symbol        string  `json:"symbol"`
	Origin        string  `json:"origin"`
	Reason        string  `json:"reason,omitempty"`
	Current       float64 `json:"current"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percentChange"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Open          float64 `json:"open"`
	PreviousClose float64 `json:"previousClose"`
}

// NewHistoryResponse はユースケースの結果をレスポンスに変換します。
func NewHistoryResponse(symbol string, rng entity.Range, res entity.Result[[]entity.Candle]) HistoryResponse {
	out := make([]CandleResponse, 0, len(res.Data))
	for _, x := range res.Data {
		out = append(out, CandleResponse{
			Time:   x.Time,
			Open:   x.Open,
			High:   x.High,
			Low:    x.Low,
			Close:  x.Close,
			Volume: x.Volume,
		})
	}
	return HistoryResponse{
		Symbol:  symbol,
		Range:   string(rng),
		Origin:  string(res.Origin),
		Reason:  reason(res.Reason),
		Candles: out,
	}
}

// NewQuoteResponse はユースケースの結果をレスポンスに変換します。
func NewQuoteResponse(symbol string, res entity.Result[entity.Quote]) QuoteResponse {
	q := res.Data
	return QuoteResponse{
		Symbol:        symbol,
		Origin:        string(res.Origin),
		Reason:        reason(res.Reason),
		Current:       q.Current,
		Change:        q.Change,
		PercentChange: q.PercentChange,
		High:          q.High,
		Low:           q.Low,
		Open:          q.Open,
		PreviousClose: q.PreviousClose,
	}
}

func reason(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
