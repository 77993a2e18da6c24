// Package dto はFinnhub APIレスポンスのデータ転送オブジェクトを定義します。
package dto

// CandleResponse は /stock/candle エンドポイントのJSONレスポンスを表します。
// 各フィールドは同じ長さの並列配列です。
type CandleResponse struct {
	Status string    `json:"s"` // "ok" または "no_data"
	Time   []int64   `json:"t"` // UNIX秒
	Open   []float64 `json:"o"`
	High   []float64 `json:"h"`
	Low    []float64 `json:"l"`
	Close  []float64 `json:"c"`
	Volume []float64 `json:"v"`
}
