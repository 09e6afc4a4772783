package dto

import (
	"github.com/shopspring/decimal"
)

// ── Simulación ────────────────────────────────────────────────────────────────

// PriceOverridesRequest sustituciones de precio explícitas en la petición.
// Prevalecen sobre el override por sede.
type PriceOverridesRequest struct {
	SalePriceOverride   *decimal.Decimal `json:"sale_price_override"`
	SupplyPriceOverride *decimal.Decimal `json:"supply_price_override"`
}

// SimulateRevenueRequest cuerpo de POST /api/revenue/simulate.
type SimulateRevenueRequest struct {
	ProductID string                 `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal        `json:"quantity"`
	SiteID    *string                `json:"site_id"`
	Overrides *PriceOverridesRequest `json:"overrides"`
}

// ProductDTO subconjunto de precios del producto en la respuesta.
type ProductDTO struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	CostUnitPrice decimal.Decimal `json:"cost_unit_price"`
	SupplyPrice   decimal.Decimal `json:"supply_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Deposit       decimal.Decimal `json:"deposit"`
	OneTimeFee    bool            `json:"one_time_fee"`
}

// SiteDTO sede en la respuesta de simulación.
type SiteDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// RevenueBreakdownDTO desglose de ingresos calculado.
type RevenueBreakdownDTO struct {
	Quantity            decimal.Decimal `json:"quantity"`
	UnitSalePrice       decimal.Decimal `json:"unit_sale_price"`
	UnitSupplyPrice     decimal.Decimal `json:"unit_supply_price"`
	UnitCost            decimal.Decimal `json:"unit_cost"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	TotalCost           decimal.Decimal `json:"total_cost"`
	DepositAmount       decimal.Decimal `json:"deposit_amount"`
	GrossProfit         decimal.Decimal `json:"gross_profit"`
	ProfitMarginPercent decimal.Decimal `json:"profit_margin_percent"`
}

// ShareDTO línea del desglose de reparto. Percentage en escala de
// presentación 0–100 (en almacenamiento y dominio se usan fracciones 0–1).
type ShareDTO struct {
	Percentage decimal.Decimal `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
}

// DistributionBreakdownDTO mapa rol → {porcentaje, monto}, con la entrada
// sintética "adjustment" cuando hay residuo de redondeo.
type DistributionBreakdownDTO map[string]ShareDTO

// DistributionResultDTO regla resuelta (si la hay) y desglose del reparto.
type DistributionResultDTO struct {
	Rule      *RuleDTO                 `json:"rule,omitempty"`
	Breakdown DistributionBreakdownDTO `json:"breakdown,omitempty"`
}

// SimulateRevenueResponse respuesta de POST /api/revenue/simulate.
type SimulateRevenueResponse struct {
	Product      ProductDTO            `json:"product"`
	Site         *SiteDTO              `json:"site,omitempty"`
	Calculation  RevenueBreakdownDTO   `json:"calculation"`
	Distribution DistributionResultDTO `json:"distribution"`
}

// ── Libro de ingresos ─────────────────────────────────────────────────────────

// RecordTransactionRequest cuerpo de POST /api/revenue/transactions.
type RecordTransactionRequest struct {
	TransactionType    string           `json:"transaction_type"`
	SiteID             *string          `json:"site_id"`
	ProductID          string           `json:"product_id" validate:"required"`
	Quantity           decimal.Decimal  `json:"quantity"`
	UnitSalePrice      decimal.Decimal  `json:"unit_sale_price"`
	UnitSupplyPrice    *decimal.Decimal `json:"unit_supply_price"`
	UnitCost           decimal.Decimal  `json:"unit_cost"`
	DistributionRuleID *string          `json:"distribution_rule_id"`
	Notes              string           `json:"notes"`
}

// RecordTransactionResponse respuesta con los totales recalculados.
type RecordTransactionResponse struct {
	TransactionID       string                   `json:"transaction_id"`
	TotalRevenue        decimal.Decimal          `json:"total_revenue"`
	TotalCost           decimal.Decimal          `json:"total_cost"`
	GrossProfit         decimal.Decimal          `json:"gross_profit"`
	DistributionDetails DistributionBreakdownDTO `json:"distribution_details,omitempty"`
}

// TransactionListRequest query de GET /api/revenue/transactions.
type TransactionListRequest struct {
	PageRequest
	ProductID       string `query:"product_id"`
	SiteID          string `query:"site_id"`
	TransactionType string `query:"transaction_type"`
	StartDate       string `query:"start_date"` // YYYY-MM-DD
	EndDate         string `query:"end_date"`   // YYYY-MM-DD
}

// TransactionDTO asiento del libro en listados.
type TransactionDTO struct {
	ID                  string                   `json:"id"`
	TransactionType     string                   `json:"transaction_type"`
	SiteID              *string                  `json:"site_id,omitempty"`
	ProductID           string                   `json:"product_id"`
	Quantity            decimal.Decimal          `json:"quantity"`
	UnitSalePrice       decimal.Decimal          `json:"unit_sale_price"`
	UnitSupplyPrice     *decimal.Decimal         `json:"unit_supply_price,omitempty"`
	UnitCost            decimal.Decimal          `json:"unit_cost"`
	TotalRevenue        decimal.Decimal          `json:"total_revenue"`
	TotalCost           decimal.Decimal          `json:"total_cost"`
	GrossProfit         decimal.Decimal          `json:"gross_profit"`
	DistributionRuleID  *string                  `json:"distribution_rule_id,omitempty"`
	DistributionDetails DistributionBreakdownDTO `json:"distribution_details,omitempty"`
	TransactionDate     string                   `json:"transaction_date"`
	CreatedBy           string                   `json:"created_by"`
	Notes               string                   `json:"notes,omitempty"`
}

// TransactionListResponse listado paginado del libro.
type TransactionListResponse struct {
	Transactions []TransactionDTO `json:"transactions"`
	Page         PageResponse     `json:"page"`
}

// ── Resumen ───────────────────────────────────────────────────────────────────

// SummaryRequest query de GET /api/revenue/summary.
type SummaryRequest struct {
	Bucket    string `query:"bucket"`     // day|week|month (default day)
	StartDate string `query:"start_date"` // YYYY-MM-DD; default primer día del mes actual
	EndDate   string `query:"end_date"`   // YYYY-MM-DD; default hoy
}

// SummaryBucketDTO agregado por período.
type SummaryBucketDTO struct {
	Period           string          `json:"period"` // YYYY-MM-DD (inicio del bucket)
	TransactionCount int             `json:"transaction_count"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	GrossProfit      decimal.Decimal `json:"gross_profit"`
}

// SummaryResponse respuesta de GET /api/revenue/summary.
type SummaryResponse struct {
	Bucket    string             `json:"bucket"`
	StartDate string             `json:"start_date"`
	EndDate   string             `json:"end_date"`
	Buckets   []SummaryBucketDTO `json:"buckets"`
}
