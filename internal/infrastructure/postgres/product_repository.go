package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/supplychain-pro/internal/domain/entity"
	"github.com/tu-usuario/supplychain-pro/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo adaptador de lectura del catálogo sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByID obtiene el subconjunto de precios de un producto. Devuelve
// (nil, nil) si no existe. Un cost_qty en cero se normaliza a 1 aquí, de modo
// que el motor de ingresos nunca reciba una base de lote inválida.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	const query = `
		SELECT id, name, cost_qty, cost_unit_price, supply_price, sale_price, deposit, one_time_fee, created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.CostQty, &p.CostUnitPrice, &p.SupplyPrice, &p.SalePrice,
		&p.Deposit, &p.OneTimeFee, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	if p.CostQty.IsZero() {
		p.CostQty = decimal.NewFromInt(1)
	}
	return &p, nil
}
