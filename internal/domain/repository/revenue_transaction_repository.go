package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/supplychain-pro/internal/domain/entity"
)

// TransactionFilter filtros para el listado del libro de ingresos.
type TransactionFilter struct {
	ProductID       *string
	SiteID          *string
	TransactionType *string
	From            *time.Time
	To              *time.Time
}

// SummaryBucket agregación de ingresos/costos/margen por período.
type SummaryBucket struct {
	Period           time.Time
	TransactionCount int
	TotalRevenue     decimal.Decimal
	TotalCost        decimal.Decimal
	GrossProfit      decimal.Decimal
}

// RevenueTransactionRepository puerto de persistencia del libro de ingresos.
// El libro es de solo inserción: no hay Update ni Delete.
type RevenueTransactionRepository interface {
	Create(ctx context.Context, tx *entity.RevenueTransaction) error
	// GetByID devuelve (nil, nil) si el asiento no existe.
	GetByID(ctx context.Context, id string) (*entity.RevenueTransaction, error)
	List(ctx context.Context, filter TransactionFilter, limit, offset int) ([]*entity.RevenueTransaction, int, error)
	// Summary agrega el libro por período (day|week|month) en [from, to].
	Summary(ctx context.Context, bucket string, from, to time.Time) ([]SummaryBucket, error)
}
