package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa el subconjunto de atributos de precio de un producto del
// catálogo. El catálogo completo (proveedores, órdenes, stock) vive en otro
// servicio; aquí solo se consulta por ID para alimentar el motor de ingresos.
//
// CostQty es la base del lote de costo (CostUnitPrice aplica por unidad dentro
// del lote). Nunca debe ser cero: el adaptador de persistencia la normaliza a 1
// al leer, de modo que el cálculo de ingresos recibe siempre un valor válido.
type Product struct {
	ID            string
	Name          string
	CostQty       decimal.Decimal // base del lote de costo (default 1)
	CostUnitPrice decimal.Decimal // costo por unidad dentro del lote
	SupplyPrice   decimal.Decimal // precio de suministro al punto de venta
	SalePrice     decimal.Decimal // precio de venta al público
	Deposit       decimal.Decimal // depósito/cargo asociado al producto
	OneTimeFee    bool            // true: el depósito se cobra una sola vez; false: por unidad
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
