package di

import (
	"context"
	"log"

	"cloudtrade/internal/feature/insights/adapters/gemini"
	"cloudtrade/internal/feature/insights/adapters/template"
	insightsusecase "cloudtrade/internal/feature/insights/usecase"
	modeentity "cloudtrade/internal/feature/mode/domain/entity"
	"cloudtrade/internal/platform/config"
)

// NewAnalyzers creates one insight analyzer per mode.
// REAL uses Gemini when enabled and the client can be created; otherwise the template.
func NewAnalyzers(ctx context.Context, cfg config.Config) modeentity.ByMode[insightsusecase.Analyzer] {
	out := modeentity.ByMode[insightsusecase.Analyzer]{
		modeentity.Mock: template.NewAnalyzer(),
		modeentity.Real: template.NewAnalyzer(),
	}
	if !cfg.Gemini.Enabled {
		return out
	}
	g, err := gemini.NewGeminiAnalyzer(ctx, cfg.Gemini.Model)
	if err != nil {
		log.Printf("[WARN] Gemini unavailable, using template insights: %v", err)
		return out
	}
	out[modeentity.Real] = g
	return out
}
