package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/supplychain-pro/internal/domain/entity"
)

// RuleListFilter filtros opcionales para el listado de reglas.
type RuleListFilter struct {
	ProductID  *string
	SiteType   *string
	OnlyActive bool
}

// DistributionRuleRepository puerto de persistencia de reglas de distribución.
type DistributionRuleRepository interface {
	Create(ctx context.Context, rule *entity.DistributionRule) error
	Update(ctx context.Context, rule *entity.DistributionRule) error
	// Deactivate baja lógica (is_active = false). Devuelve ErrRuleNotFound si
	// la regla no existe.
	Deactivate(ctx context.Context, id string, at time.Time) error
	// GetByID devuelve (nil, nil) si la regla no existe.
	GetByID(ctx context.Context, id string) (*entity.DistributionRule, error)
	List(ctx context.Context, filter RuleListFilter, limit, offset int) ([]*entity.DistributionRule, error)
	// ListCandidates devuelve las reglas activas vigentes en onDate cuyo
	// ProductID es nulo o igual a productID, y lo mismo para SiteType.
	// La elección de la más específica es política de dominio (revenue.MostSpecific).
	ListCandidates(ctx context.Context, productID, siteType *string, onDate time.Time) ([]*entity.DistributionRule, error)
	// FindOverlapping devuelve la primera regla activa con alcance idéntico
	// (producto, tipo de sede, tipo de región) cuya ventana de vigencia
	// intersecta [from, to], excluyendo excludeID; (nil, nil) si no hay.
	// AppliesTo nulo se trata como 9999-12-31.
	FindOverlapping(ctx context.Context, rule *entity.DistributionRule, excludeID string) (*entity.DistributionRule, error)
}
