package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/benbjohnson/clock"

	"cloudtrade/internal/feature/marketdata/domain/entity"
	"cloudtrade/internal/feature/marketdata/usecase"
	"cloudtrade/internal/platform/externalapi/finnhub/dto"
	"cloudtrade/internal/shared/ratelimiter"
)

const statusOK = "ok"

// Client はFinnhub外部APIからローソク足と気配値を取得する Source 実装です。
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
	clock   clock.Clock
}

// ClientがSourceを実装していることをコンパイル時に検証します。
var _ usecase.Source = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
// limiter と clk が nil の場合は制限なし・実時間を使用します。
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface, clk clock.Clock) *Client {
	if limiter == nil {
		limiter = ratelimiter.Unlimited{}
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Client{cfg: cfg, client: client, limiter: limiter, clock: clk}
}

// History はFinnhub APIからローソク足を取得し、entity.Candleのスライスとして返します。
// 期間は rng の解像度と時間窓に変換されます。
func (c *Client) History(ctx context.Context, symbol string, rng entity.Range) ([]entity.Candle, error) {
	to := c.clock.Now()
	from := to.Add(-rng.Window())

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("resolution", rng.Resolution())
	q.Set("from", strconv.FormatInt(from.Unix(), 10))
	q.Set("to", strconv.FormatInt(to.Unix(), 10))

	var body dto.CandleResponse
	if err := c.getJSON(ctx, "/stock/candle", q, &body); err != nil {
		return nil, err
	}
	if body.Status != statusOK {
		return nil, fmt.Errorf("%w: finnhub status %q", usecase.ErrSourceUnavailable, body.Status)
	}

	n := len(body.Time)
	if len(body.Open) != n || len(body.High) != n || len(body.Low) != n || len(body.Close) != n || len(body.Volume) != n {
		return nil, fmt.Errorf("%w: finnhub candle arrays have mismatched lengths", usecase.ErrSourceUnavailable)
	}

	// 並列配列をインデックスごとのローソク足に変換（秒→ミリ秒）
	candles := make([]entity.Candle, 0, n)
	for i := 0; i < n; i++ {
		candles = append(candles, entity.Candle{
			Time:   body.Time[i] * 1000,
			Open:   body.Open[i],
			High:   body.High[i],
			Low:    body.Low[i],
			Close:  body.Close[i],
			Volume: int64(math.Round(body.Volume[i])),
		})
	}
	return candles, nil
}

// Quote はFinnhub APIから気配値を取得します。現在値が欠けている場合は ErrInvalidQuote を返します。
func (c *Client) Quote(ctx context.Context, symbol string) (entity.Quote, error) {
	q := url.Values{}
	q.Set("symbol", symbol)

	var body dto.QuoteResponse
	if err := c.getJSON(ctx, "/quote", q, &body); err != nil {
		return entity.Quote{}, err
	}
	if body.Current <= 0 {
		return entity.Quote{}, fmt.Errorf("%w: %w for %q", usecase.ErrSourceUnavailable, usecase.ErrInvalidQuote, symbol)
	}

	return entity.Quote{
		Current:       body.Current,
		Change:        body.Change,
		PercentChange: body.PercentChange,
		High:          body.High,
		Low:           body.Low,
		Open:          body.Open,
		PreviousClose: body.PreviousClose,
	}, nil
}

// getJSON はGETリクエストを送信し、レスポンスを out にデコードします。
// すべての失敗は ErrSourceUnavailable としてラップされます。
func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %w", usecase.ErrSourceUnavailable, err)
	}

	u := fmt.Sprintf("%s%s?%s", c.cfg.BaseURL, path, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", usecase.ErrSourceUnavailable, err)
	}
	// APIキーはURLに含めずヘッダーで送信
	req.Header.Set("X-Finnhub-Token", c.cfg.APIKey)

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", usecase.ErrSourceUnavailable, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return fmt.Errorf("%w: finnhub http %d", usecase.ErrSourceUnavailable, res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %w", usecase.ErrSourceUnavailable, path, err)
	}
	return nil
}
