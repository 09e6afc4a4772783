package repository

import (
	"context"

	"github.com/tu-usuario/supplychain-pro/internal/domain/entity"
)

// SiteRepository puerto de lectura de sedes y sus overrides de precio.
type SiteRepository interface {
	// GetByID devuelve (nil, nil) si la sede no existe.
	GetByID(ctx context.Context, id string) (*entity.Site, error)
	// GetOverride devuelve el override activo de la sede para el producto,
	// o (nil, nil) si no hay override.
	GetOverride(ctx context.Context, siteID, productID string) (*entity.SiteProductOverride, error)
}
