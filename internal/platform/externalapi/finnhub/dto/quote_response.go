package dto

// QuoteResponse は /quote エンドポイントのJSONレスポンスを表します。
// 存在しない銘柄の場合、各値は 0 または null になります。
type QuoteResponse struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	PercentChange float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PreviousClose float64 `json:"pc"`
	Time          int64   `json:"t"`
}
