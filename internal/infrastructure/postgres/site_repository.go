package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/supplychain-pro/internal/domain/entity"
	"github.com/tu-usuario/supplychain-pro/internal/domain/repository"
)

var _ repository.SiteRepository = (*SiteRepo)(nil)

// SiteRepo adaptador de lectura de sedes y overrides de precio.
type SiteRepo struct {
	q Querier
}

// NewSiteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSiteRepository(q Querier) *SiteRepo {
	return &SiteRepo{q: q}
}

// GetByID obtiene una sede. Devuelve (nil, nil) si no existe.
func (r *SiteRepo) GetByID(ctx context.Context, id string) (*entity.Site, error) {
	const query = `
		SELECT id, name, site_type, created_at, updated_at
		FROM sites WHERE id = $1`
	var s entity.Site
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.Type, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get site: %w", err)
	}
	return &s, nil
}

// GetOverride obtiene el override activo de precios de la sede para el
// producto. La tabla garantiza a lo sumo una fila por (sede, producto) vía
// constraint único. Devuelve (nil, nil) si no hay override.
func (r *SiteRepo) GetOverride(ctx context.Context, siteID, productID string) (*entity.SiteProductOverride, error) {
	const query = `
		SELECT id, site_id, product_id, sale_price_override, supply_price_override, created_at, updated_at
		FROM site_product_overrides
		WHERE site_id = $1 AND product_id = $2`
	var o entity.SiteProductOverride
	err := r.q.QueryRow(ctx, query, siteID, productID).Scan(
		&o.ID, &o.SiteID, &o.ProductID, &o.SalePriceOverride, &o.SupplyPriceOverride,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get site override: %w", err)
	}
	return &o, nil
}
