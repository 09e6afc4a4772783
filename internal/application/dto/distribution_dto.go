package dto

import (
	"github.com/shopspring/decimal"
)

// ── Reglas de distribución ────────────────────────────────────────────────────

// CreateRuleRequest cuerpo de POST /api/distribution/rules. Las fracciones
// del mapa se expresan en [0,1] y deben sumar 1.0 ± 0.001.
type CreateRuleRequest struct {
	RuleName        string                     `json:"rule_name" validate:"required"`
	ProductID       *string                    `json:"product_id"`
	SiteType        *string                    `json:"site_type"`
	RegionType      string                     `json:"region_type"` // default "all"
	DistributionMap map[string]decimal.Decimal `json:"distribution_map" validate:"required"`
	AppliesFrom     string                     `json:"applies_from" validate:"required"` // YYYY-MM-DD
	AppliesTo       *string                    `json:"applies_to"`                       // YYYY-MM-DD; nil = abierta
}

// UpdateRuleRequest cuerpo de PUT /api/distribution/rules/:id. Campos nil no
// se modifican; si DistributionMap viene, se revalida el invariante de suma.
type UpdateRuleRequest struct {
	RuleName        *string                    `json:"rule_name"`
	DistributionMap map[string]decimal.Decimal `json:"distribution_map"`
	AppliesFrom     *string                    `json:"applies_from"` // YYYY-MM-DD
	AppliesTo       *string                    `json:"applies_to"`   // YYYY-MM-DD; "" limpia la fecha de fin
	IsActive        *bool                      `json:"is_active"`
}

// RuleDTO regla en respuestas. Las fracciones del mapa se devuelven en
// escala de presentación 0–100.
type RuleDTO struct {
	ID              string                     `json:"id"`
	RuleName        string                     `json:"rule_name"`
	ProductID       *string                    `json:"product_id,omitempty"`
	SiteType        *string                    `json:"site_type,omitempty"`
	RegionType      string                     `json:"region_type"`
	DistributionMap map[string]decimal.Decimal `json:"distribution_map"`
	AppliesFrom     string                     `json:"applies_from"`
	AppliesTo       *string                    `json:"applies_to,omitempty"`
	IsActive        bool                       `json:"is_active"`
	CreatedAt       string                     `json:"created_at"`
}

// RuleListRequest query de GET /api/distribution/rules.
type RuleListRequest struct {
	PageRequest
	ProductID string `query:"product_id"`
	SiteType  string `query:"site_type"`
	Active    *bool  `query:"active"`
}

// RuleListResponse listado paginado de reglas.
type RuleListResponse struct {
	Rules []RuleDTO    `json:"rules"`
	Page  PageResponse `json:"page"`
}

// ResolveActiveRequest query de GET /api/distribution/active.
type ResolveActiveRequest struct {
	ProductID string `query:"product_id"`
	SiteType  string `query:"site_type"`
	OnDate    string `query:"on_date"` // YYYY-MM-DD; default hoy
}

// ResolveActiveResponse regla resuelta por especificidad, o rule = null.
type ResolveActiveResponse struct {
	Rule *RuleDTO `json:"rule"`
}

// ── Simulación ad-hoc ─────────────────────────────────────────────────────────

// SimulateSplitRequest cuerpo de POST /api/distribution/simulate: reparto
// what-if independiente de las reglas persistidas.
type SimulateSplitRequest struct {
	ProductID       *string                    `json:"product_id"`
	SiteType        *string                    `json:"site_type"`
	GrossProfit     decimal.Decimal            `json:"gross_profit"`
	DistributionMap map[string]decimal.Decimal `json:"distribution_map" validate:"required"`
}

// SimulateSplitResponse desglose del reparto ad-hoc.
type SimulateSplitResponse struct {
	GrossProfit       decimal.Decimal          `json:"gross_profit"`
	DistributedAmount decimal.Decimal          `json:"distributed_amount"`
	Breakdown         DistributionBreakdownDTO `json:"breakdown"`
	HasAdjustment     bool                     `json:"has_adjustment"`
}
