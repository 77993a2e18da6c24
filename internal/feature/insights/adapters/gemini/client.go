// Package gemini はGoogle Gemini APIを使用したマーケットインサイト生成クライアントを提供します。
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"cloudtrade/internal/feature/insights/domain/entity"
	"cloudtrade/internal/feature/insights/usecase"
	marketentity "cloudtrade/internal/feature/marketdata/domain/entity"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"

	promptTemplate = `Act as a senior Wall Street analyst and give a brief technical and fundamental view of %s.

Current market data:
- Price: %.2f
- Change today: %.2f (%.2f%%)
- High today: %.2f
- Low today: %.2f

Provide:
1. Overall sentiment (Bullish/Bearish/Neutral)
2. Three key observations
3. A short-term call (Buy/Hold/Sell)

Keep it professional and under 200 words.`
)

// GeminiAnalyzer はGoogle Gemini APIを使用してインサイトを生成します。
type GeminiAnalyzer struct {
	client *genai.Client
	model  string
}

// GeminiAnalyzerがAnalyzerを実装していることをコンパイル時に検証します。
var _ usecase.Analyzer = (*GeminiAnalyzer)(nil)

// NewGeminiAnalyzer は環境変数の認証情報（GEMINI_API_KEY または Vertex AI のADC）でクライアントを生成します。
// model が空の場合は DefaultModel を使用します。
func NewGeminiAnalyzer(ctx context.Context, model string) (*GeminiAnalyzer, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return NewGeminiAnalyzerWithClient(client, model), nil
}

// NewGeminiAnalyzerWithClient は既存のクライアントでGeminiAnalyzerを生成します。
func NewGeminiAnalyzerWithClient(client *genai.Client, model string) *GeminiAnalyzer {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiAnalyzer{client: client, model: model}
}

// Engine は EngineGemini を返します。
func (g *GeminiAnalyzer) Engine() entity.Engine { return entity.EngineGemini }

// Analyze は気配値からプロンプトを組み立て、分析を生成します。
func (g *GeminiAnalyzer) Analyze(ctx context.Context, symbol string, q marketentity.Quote) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(BuildPrompt(symbol, q)), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	return resp.Text(), nil
}

// BuildPrompt はアナリスト役のプロンプトを返します。
func BuildPrompt(symbol string, q marketentity.Quote) string {
	return fmt.Sprintf(promptTemplate, symbol, q.Current, q.Change, q.PercentChange, q.High, q.Low)
}
