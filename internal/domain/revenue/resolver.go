package revenue

import (
	"github.com/tu-usuario/supplychain-pro/internal/domain/entity"
)

// MostSpecific aplica la política de especificidad sobre un conjunto de
// reglas candidatas (ya filtradas por vigencia y alcance compatible) y
// devuelve la ganadora, o nil si no hay candidatas.
//
// Orden de precedencia — determina resultados financieros, no modificar a la
// ligera:
//  1. Regla con ProductID concreto antes que regla genérica de producto.
//  2. A igualdad, regla con SiteType concreto antes que genérica de sede.
//  3. A igualdad, la regla creada más recientemente.
func MostSpecific(rules []*entity.DistributionRule) *entity.DistributionRule {
	var best *entity.DistributionRule
	for _, r := range rules {
		if best == nil || moreSpecific(r, best) {
			best = r
		}
	}
	return best
}

func moreSpecific(a, b *entity.DistributionRule) bool {
	if sa, sb := specificity(a), specificity(b); sa != sb {
		return sa > sb
	}
	return a.CreatedAt.After(b.CreatedAt)
}

// specificity pondera producto concreto (2) por encima de tipo de sede (1).
func specificity(r *entity.DistributionRule) int {
	score := 0
	if r.ProductID != nil {
		score += 2
	}
	if r.SiteType != nil {
		score++
	}
	return score
}
