package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de ingreso.
const (
	TransactionTypeSale = "sale"
)

// RevenueTransaction asiento inmutable del libro de ingresos. Se crea una
// sola vez al confirmar una simulación; no existen operaciones de
// actualización ni borrado sobre el libro.
//
// DistributionDetails guarda el desglose de reparto serializado (jsonb);
// la (de)serialización es asunto del adaptador de persistencia.
type RevenueTransaction struct {
	ID                 string
	TransactionType    string
	SiteID             *string
	ProductID          string
	Quantity           decimal.Decimal
	UnitSalePrice      decimal.Decimal
	UnitSupplyPrice    *decimal.Decimal
	UnitCost           decimal.Decimal
	TotalRevenue       decimal.Decimal
	TotalCost          decimal.Decimal
	GrossProfit        decimal.Decimal
	DistributionRuleID *string
	DistributionDetails map[string]DistributionShare
	TransactionDate    time.Time
	CreatedBy          string
	Notes              string
	CreatedAt          time.Time
}

// DistributionShare línea del desglose persistido: porcentaje (fracción 0–1)
// y monto asignado a un rol.
type DistributionShare struct {
	Percentage decimal.Decimal `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
}
