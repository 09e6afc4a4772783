package revenue

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/supplychain-pro/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Breakdown resultado del cálculo de ingresos para una venta simulada.
// Es efímero: se recalcula en cada llamada y solo se persiste al
// convertirse en RevenueTransaction.
type Breakdown struct {
	Quantity            decimal.Decimal
	UnitSalePrice       decimal.Decimal
	UnitSupplyPrice     decimal.Decimal
	UnitCost            decimal.Decimal
	TotalRevenue        decimal.Decimal
	TotalCost           decimal.Decimal
	DepositAmount       decimal.Decimal
	GrossProfit         decimal.Decimal
	ProfitMarginPercent decimal.Decimal
}

// PriceOverrides sustituciones de precio aplicables al cálculo; los campos
// nil caen al precio base del producto. Provienen del override por sede o de
// la petición de simulación.
type PriceOverrides struct {
	SalePrice   *decimal.Decimal
	SupplyPrice *decimal.Decimal
}

// Merge combina overrides dando prioridad a o (el más explícito) sobre base.
func (o PriceOverrides) Merge(base PriceOverrides) PriceOverrides {
	out := base
	if o.SalePrice != nil {
		out.SalePrice = o.SalePrice
	}
	if o.SupplyPrice != nil {
		out.SupplyPrice = o.SupplyPrice
	}
	return out
}

// Calculate computa el desglose de ingresos de una venta (servicio de dominio,
// puro y determinista, sin efectos secundarios).
//
// Fórmulas:
//
//	ingresoTotal   = precioVentaEfectivo × cantidad
//	costoDirecto   = (costoUnitario × loteCosto) × (cantidad / loteCosto)
//	               = costoUnitario × cantidad       (loteCosto ≠ 0)
//	depósito       = OneTimeFee ? depósito : depósito × cantidad
//	margenBruto    = ingresoTotal − costoDirecto − depósito
//	margen%        = ingresoTotal > 0 ? margenBruto / ingresoTotal × 100 : 0
//
// Precondiciones (responsabilidad del llamador): cantidad positiva y
// CostQty ≠ 0 — el adaptador de persistencia normaliza CostQty 0 → 1.
func Calculate(product *entity.Product, quantity decimal.Decimal, overrides PriceOverrides) Breakdown {
	salePrice := product.SalePrice
	if overrides.SalePrice != nil {
		salePrice = *overrides.SalePrice
	}
	supplyPrice := product.SupplyPrice
	if overrides.SupplyPrice != nil {
		supplyPrice = *overrides.SupplyPrice
	}

	totalRevenue := salePrice.Mul(quantity)

	// Forma de lote colapsada: (CostUnitPrice × CostQty) × (qty / CostQty).
	directCost := product.CostUnitPrice.Mul(quantity)

	depositAmount := product.Deposit
	if !product.OneTimeFee {
		depositAmount = product.Deposit.Mul(quantity)
	}

	grossProfit := totalRevenue.Sub(directCost).Sub(depositAmount)

	marginPct := decimal.Zero
	if totalRevenue.IsPositive() {
		marginPct = grossProfit.Div(totalRevenue).Mul(hundred)
	}

	return Breakdown{
		Quantity:            quantity,
		UnitSalePrice:       salePrice,
		UnitSupplyPrice:     supplyPrice,
		UnitCost:            product.CostUnitPrice,
		TotalRevenue:        totalRevenue,
		TotalCost:           directCost,
		DepositAmount:       depositAmount,
		GrossProfit:         grossProfit,
		ProfitMarginPercent: marginPct,
	}
}
