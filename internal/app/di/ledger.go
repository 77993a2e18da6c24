package di

import (
	modeentity "cloudtrade/internal/feature/mode/domain/entity"
	tradeadapters "cloudtrade/internal/feature/trades/adapters"
	tradeusecase "cloudtrade/internal/feature/trades/usecase"
)

// Ledger backend names reported by /status.
const (
	LedgerLocal = "local"
	LedgerStub  = "stub"
)

// NewLedgers creates one trade ledger per mode and reports which backend each one uses.
// REAL uses the gorm ledger when a database is connected and the stub otherwise.
func NewLedgers(infra Infra) (modeentity.ByMode[tradeusecase.Ledger], map[modeentity.Mode]string) {
	ledgers := modeentity.ByMode[tradeusecase.Ledger]{
		modeentity.Mock: tradeadapters.NewKVLedger(infra.Store, infra.Clock),
	}
	kinds := map[modeentity.Mode]string{modeentity.Mock: LedgerLocal}

	if infra.DB != nil {
		ledgers[modeentity.Real] = tradeadapters.NewGormLedger(infra.DB)
		kinds[modeentity.Real] = infra.DBDriver
	} else {
		ledgers[modeentity.Real] = tradeadapters.NewStubLedger(infra.Clock)
		kinds[modeentity.Real] = LedgerStub
	}
	return ledgers, kinds
}
