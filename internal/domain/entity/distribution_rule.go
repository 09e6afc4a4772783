package entity

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/supplychain-pro/internal/domain"
)

// RegionTypeAll alcance regional por defecto (aplica a todas las regiones).
const RegionTypeAll = "all"

// MapSumTolerance tolerancia aceptada sobre la suma de fracciones del mapa
// de distribución (1.0 ± 0.001).
var MapSumTolerance = decimal.NewFromFloat(0.001)

// openEndedSentinel fecha efectiva de una regla sin fecha de fin para el
// chequeo de solapamiento. Se conserva el comportamiento observado del
// sistema: dos reglas abiertas siempre solapan hacia el futuro.
var openEndedSentinel = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// DistributionMap asigna a cada rol organizacional su fracción del margen
// bruto. Las fracciones se expresan en [0,1]; la conversión a porcentaje
// 0–100 es asunto de la capa de presentación.
type DistributionMap map[string]decimal.Decimal

// Sum devuelve la suma de todas las fracciones del mapa.
func (m DistributionMap) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, frac := range m {
		sum = sum.Add(frac)
	}
	return sum
}

// Roles devuelve los nombres de rol en orden alfabético. El orden estable
// garantiza desgloses y JSON persistido deterministas.
func (m DistributionMap) Roles() []string {
	roles := make([]string, 0, len(m))
	for role := range m {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

// Validate verifica que el mapa no esté vacío, que ninguna fracción sea
// negativa y que la suma sea 1.0 dentro de la tolerancia. En caso de
// violación retorna ErrInvalidMap envuelto con la suma calculada en
// porcentaje, para reportarla al llamador.
func (m DistributionMap) Validate() error {
	if len(m) == 0 {
		return fmt.Errorf("mapa de distribución vacío: %w", domain.ErrInvalidInput)
	}
	for role, frac := range m {
		if frac.IsNegative() {
			return fmt.Errorf("la fracción del rol %q es negativa: %w", role, domain.ErrInvalidInput)
		}
	}
	sum := m.Sum()
	if sum.Sub(decimal.NewFromInt(1)).Abs().GreaterThan(MapSumTolerance) {
		return fmt.Errorf("la suma de porcentajes es %s%% y debe ser 100%%: %w",
			sum.Mul(decimal.NewFromInt(100)).Round(2), domain.ErrInvalidMap)
	}
	return nil
}

// DistributionRule regla de reparto del margen bruto: con nombre, alcance
// opcional por producto y tipo de sede, y ventana de vigencia.
// ProductID nil aplica a todos los productos; SiteType nil a todos los tipos
// de sede; AppliesTo nil significa vigencia abierta.
type DistributionRule struct {
	ID           string
	RuleName     string
	ProductID    *string
	SiteType     *string
	RegionType   string
	Distribution DistributionMap
	AppliesFrom  time.Time
	AppliesTo    *time.Time
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EffectiveTo devuelve la fecha de fin efectiva para el chequeo de
// solapamiento (sentinela 9999-12-31 cuando AppliesTo es nil).
func (r *DistributionRule) EffectiveTo() time.Time {
	if r.AppliesTo == nil {
		return openEndedSentinel
	}
	return *r.AppliesTo
}

// CoversDate indica si la regla está vigente en la fecha dada.
func (r *DistributionRule) CoversDate(onDate time.Time) bool {
	if r.AppliesFrom.After(onDate) {
		return false
	}
	return r.AppliesTo == nil || !r.AppliesTo.Before(onDate)
}

// SameScope indica si dos reglas tienen alcance idéntico
// (producto, tipo de sede, tipo de región).
func (r *DistributionRule) SameScope(other *DistributionRule) bool {
	return equalPtr(r.ProductID, other.ProductID) &&
		equalPtr(r.SiteType, other.SiteType) &&
		r.RegionType == other.RegionType
}

// WindowOverlaps indica si las ventanas de vigencia de ambas reglas se
// intersectan, tratando las reglas abiertas con el sentinela de fin.
func (r *DistributionRule) WindowOverlaps(other *DistributionRule) bool {
	return !r.AppliesFrom.After(other.EffectiveTo()) &&
		!other.AppliesFrom.After(r.EffectiveTo())
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
