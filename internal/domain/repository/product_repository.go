package repository

import (
	"context"

	"github.com/tu-usuario/supplychain-pro/internal/domain/entity"
)

// ProductRepository puerto de lectura del catálogo (DIP). El motor de
// ingresos solo consulta; el CRUD del catálogo pertenece a otro servicio.
type ProductRepository interface {
	// GetByID devuelve (nil, nil) si el producto no existe.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}
