package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Site representa un punto de venta (sede). Type es la clasificación
// categórica usada para el emparejamiento de reglas de distribución
// (ej. "clinic", "pharmacy").
type Site struct {
	ID        string
	Name      string
	Type      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SiteProductOverride sustitución de precios por (sede, producto).
// Una sede tiene a lo sumo un override activo por producto; los campos nil
// significan "usar el precio base del producto".
type SiteProductOverride struct {
	ID                  string
	SiteID              string
	ProductID           string
	SalePriceOverride   *decimal.Decimal
	SupplyPriceOverride *decimal.Decimal
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
