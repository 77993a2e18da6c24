package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"cloudtrade/internal/feature/trades/domain/entity"
	"cloudtrade/internal/feature/trades/usecase"
)

// pgUniqueViolation はPostgreSQLの一意制約違反コードです。
const pgUniqueViolation = "23505"

// TradeModel は trades テーブルの行です。
type TradeModel struct {
	ID        string  `gorm:"primaryKey;size:64"`
	Symbol    string  `gorm:"size:32;not null;index"`
	Side      string  `gorm:"size:4;not null"`
	Price     float64 `gorm:"not null"`
	Quantity  int64   `gorm:"not null"`
	Timestamp int64   `gorm:"not null;index"`
	Status    string  `gorm:"size:16;not null"`
	CreatedAt time.Time
}

// TableName はGORMが使うテーブル名を返します。
func (TradeModel) TableName() string {
	return "trades"
}

func toTradeModel(e entity.TradeRecord) TradeModel {
	return TradeModel{
		ID:        e.ID,
		Symbol:    e.Symbol,
		Side:      string(e.Side),
		Price:     e.Price,
		Quantity:  e.Quantity,
		Timestamp: e.Timestamp,
		Status:    string(e.Status),
	}
}

// ToEntity はモデルをドメインエンティティに変換します。
func (m TradeModel) ToEntity() entity.TradeRecord {
	return entity.TradeRecord{
		ID:        m.ID,
		Symbol:    m.Symbol,
		Side:      entity.Side(m.Side),
		Price:     m.Price,
		Quantity:  m.Quantity,
		Timestamp: m.Timestamp,
		Status:    entity.Status(m.Status),
	}
}

// tradeGorm はGORMを使ったリモート台帳の実装です。PostgreSQLとSQLiteで動作します。
type tradeGorm struct {
	db *gorm.DB
}

// tradeGormがLedgerを実装していることをコンパイル時に検証します。
var _ usecase.Ledger = (*tradeGorm)(nil)

// NewGormLedger は指定されたgorm.DB接続で台帳を生成します。
func NewGormLedger(db *gorm.DB) *tradeGorm {
	return &tradeGorm{db: db}
}

// Append は取引を1行挿入します。
// IDが重複する場合は usecase.ErrDuplicateTrade、それ以外の失敗は usecase.ErrPersistence を返します。
func (r *tradeGorm) Append(ctx context.Context, trade entity.TradeRecord) error {
	m := toTradeModel(trade)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: %s", usecase.ErrDuplicateTrade, trade.ID)
		}
		return fmt.Errorf("%w: insert trade: %v", usecase.ErrPersistence, err)
	}
	return nil
}

// List は全取引を新しい順に返します。
func (r *tradeGorm) List(ctx context.Context) ([]entity.TradeRecord, error) {
	var rows []TradeModel
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list trades: %v", usecase.ErrPersistence, err)
	}
	out := make([]entity.TradeRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.ToEntity())
	}
	return out, nil
}

// SeedIfEmpty はテーブルが空の場合に限り trades を挿入し、挿入件数を返します。
func (r *tradeGorm) SeedIfEmpty(ctx context.Context, trades []entity.TradeRecord) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&TradeModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("%w: count trades: %v", usecase.ErrPersistence, err)
	}
	if count > 0 || len(trades) == 0 {
		return 0, nil
	}

	ms := make([]TradeModel, 0, len(trades))
	for _, t := range trades {
		ms = append(ms, toTradeModel(t))
	}
	if err := r.db.WithContext(ctx).Create(&ms).Error; err != nil {
		return 0, fmt.Errorf("%w: seed trades: %v", usecase.ErrPersistence, err)
	}
	return len(ms), nil
}

// isDuplicateKey はGORMの翻訳済みエラーまたはPostgreSQLのエラーコードで一意制約違反を判定します。
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
