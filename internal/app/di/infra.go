// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	modeentity "cloudtrade/internal/feature/mode/domain/entity"
	tradeadapters "cloudtrade/internal/feature/trades/adapters"
	platformhandler "cloudtrade/internal/platform/http/handler"
)

// Infra holds the process-level connections built in main.
type Infra struct {
	// Redis is nil when no cache is configured; the market data cache is then bypassed.
	Redis *redis.Client
	// DB is nil when no remote ledger is configured.
	DB *gorm.DB
	// DBDriver names the DB backend for the status report.
	DBDriver string
	// Store backs the MOCK-mode ledger.
	Store tradeadapters.KeyValueStore
	Clock clock.Clock
}

// mapModes converts every entry of in with f.
func mapModes[A, B any](in modeentity.ByMode[A], f func(modeentity.Mode, A) B) modeentity.ByMode[B] {
	out := make(modeentity.ByMode[B], len(in))
	for m, v := range in {
		out[m] = f(m, v)
	}
	return out
}

// HealthChecks returns a ping check for every configured connection: "redis" for the
// market data cache and "ledger" for the remote trade ledger.
func HealthChecks(infra Infra) map[string]platformhandler.Check {
	checks := make(map[string]platformhandler.Check, 2)
	if infra.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return infra.Redis.Ping(ctx).Err()
		}
	}
	if infra.DB != nil {
		checks["ledger"] = func(ctx context.Context) error {
			sqlDB, err := infra.DB.DB()
			if err != nil {
				return fmt.Errorf("get sql.DB: %w", err)
			}
			return sqlDB.PingContext(ctx)
		}
	}
	return checks
}
