package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/supplychain-pro/internal/application/dto"
	"github.com/tu-usuario/supplychain-pro/internal/domain"
	"github.com/tu-usuario/supplychain-pro/internal/domain/entity"
	"github.com/tu-usuario/supplychain-pro/internal/domain/repository"
	"github.com/tu-usuario/supplychain-pro/internal/domain/revenue"
	"github.com/tu-usuario/supplychain-pro/pkg/logger"
)

// DistributionRuleUseCase ciclo de vida de las reglas de reparto: creación
// con invariantes (suma 100%, no-solapamiento de alcance/ventana),
// actualización last-write-wins, baja lógica, resolución por especificidad y
// simulación ad-hoc de repartos.
type DistributionRuleUseCase struct {
	ruleRepo repository.DistributionRuleRepository
	txRunner TxRunner
	log      *logger.Logger
}

// NewDistributionRuleUseCase construye el caso de uso.
func NewDistributionRuleUseCase(
	ruleRepo repository.DistributionRuleRepository,
	txRunner TxRunner,
	log *logger.Logger,
) *DistributionRuleUseCase {
	return &DistributionRuleUseCase{ruleRepo: ruleRepo, txRunner: txRunner, log: log}
}

// Create valida invariantes y persiste la regla junto con su entrada de
// auditoría. El solapamiento se rechaza en la frontera de mutación, nunca se
// corrige en silencio.
func (uc *DistributionRuleUseCase) Create(ctx context.Context, actorID string, in dto.CreateRuleRequest) (*dto.RuleDTO, error) {
	if err := dto.Validate(in); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrInvalidInput)
	}

	dist := entity.DistributionMap(in.DistributionMap)
	if err := dist.Validate(); err != nil {
		return nil, err
	}

	appliesFrom, err := parseDate(in.AppliesFrom)
	if err != nil {
		return nil, err
	}
	var appliesTo *time.Time
	if in.AppliesTo != nil && *in.AppliesTo != "" {
		to, err := parseDate(*in.AppliesTo)
		if err != nil {
			return nil, err
		}
		if to.Before(appliesFrom) {
			return nil, fmt.Errorf("applies_to anterior a applies_from: %w", domain.ErrInvalidInput)
		}
		appliesTo = &to
	}

	regionType := in.RegionType
	if regionType == "" {
		regionType = entity.RegionTypeAll
	}

	now := time.Now().UTC()
	rule := &entity.DistributionRule{
		ID:           uuid.NewString(),
		RuleName:     in.RuleName,
		ProductID:    normalizePtr(in.ProductID),
		SiteType:     normalizePtr(in.SiteType),
		RegionType:   regionType,
		Distribution: dist,
		AppliesFrom:  appliesFrom,
		AppliesTo:    appliesTo,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	existing, err := uc.ruleRepo.FindOverlapping(ctx, rule, "")
	if err != nil {
		return nil, fmt.Errorf("verificar solapamiento: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("solapa con la regla %q (%s): %w", existing.RuleName, existing.ID, domain.ErrRuleOverlap)
	}

	err = uc.txRunner.RunRules(ctx, func(
		ruleRepo repository.DistributionRuleRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		if err := ruleRepo.Create(ctx, rule); err != nil {
			return err
		}
		return uc.appendAudit(ctx, auditRepo, actorID, entity.AuditActionRuleCreated, rule)
	})
	if err != nil {
		return nil, fmt.Errorf("crear regla: %w", err)
	}

	uc.log.Info().Str("rule_id", rule.ID).Str("rule_name", rule.RuleName).Msg("regla de distribución creada")
	return ruleToDTO(rule), nil
}

// Update aplica un parche parcial. Si viene el mapa se revalida el invariante
// de suma; no hay control de versión: ediciones concurrentes son
// last-write-wins.
func (uc *DistributionRuleUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateRuleRequest) (*dto.RuleDTO, error) {
	rule, err := uc.ruleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("consultar regla: %w", err)
	}
	if rule == nil {
		return nil, domain.ErrRuleNotFound
	}

	if in.RuleName != nil {
		if *in.RuleName == "" {
			return nil, fmt.Errorf("rule_name vacío: %w", domain.ErrInvalidInput)
		}
		rule.RuleName = *in.RuleName
	}
	if in.DistributionMap != nil {
		dist := entity.DistributionMap(in.DistributionMap)
		if err := dist.Validate(); err != nil {
			return nil, err
		}
		rule.Distribution = dist
	}
	if in.AppliesFrom != nil {
		from, err := parseDate(*in.AppliesFrom)
		if err != nil {
			return nil, err
		}
		rule.AppliesFrom = from
	}
	if in.AppliesTo != nil {
		if *in.AppliesTo == "" {
			rule.AppliesTo = nil
		} else {
			to, err := parseDate(*in.AppliesTo)
			if err != nil {
				return nil, err
			}
			rule.AppliesTo = &to
		}
	}
	if in.IsActive != nil {
		rule.IsActive = *in.IsActive
	}
	if rule.AppliesTo != nil && rule.AppliesTo.Before(rule.AppliesFrom) {
		return nil, fmt.Errorf("applies_to anterior a applies_from: %w", domain.ErrInvalidInput)
	}
	rule.UpdatedAt = time.Now().UTC()

	err = uc.txRunner.RunRules(ctx, func(
		ruleRepo repository.DistributionRuleRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		if err := ruleRepo.Update(ctx, rule); err != nil {
			return err
		}
		return uc.appendAudit(ctx, auditRepo, actorID, entity.AuditActionRuleUpdated, rule)
	})
	if err != nil {
		return nil, fmt.Errorf("actualizar regla: %w", err)
	}
	return ruleToDTO(rule), nil
}

// Deactivate baja lógica (is_active = false); el resto de la regla queda
// intacto para consulta histórica.
func (uc *DistributionRuleUseCase) Deactivate(ctx context.Context, actorID, id string) error {
	rule, err := uc.ruleRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("consultar regla: %w", err)
	}
	if rule == nil {
		return domain.ErrRuleNotFound
	}

	now := time.Now().UTC()
	err = uc.txRunner.RunRules(ctx, func(
		ruleRepo repository.DistributionRuleRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		if err := ruleRepo.Deactivate(ctx, id, now); err != nil {
			return err
		}
		rule.IsActive = false
		return uc.appendAudit(ctx, auditRepo, actorID, entity.AuditActionRuleDeactivated, rule)
	})
	if err != nil {
		return fmt.Errorf("desactivar regla: %w", err)
	}

	uc.log.Info().Str("rule_id", id).Msg("regla de distribución desactivada")
	return nil
}

// GetByID devuelve una regla por su ID.
func (uc *DistributionRuleUseCase) GetByID(ctx context.Context, id string) (*dto.RuleDTO, error) {
	rule, err := uc.ruleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("consultar regla: %w", err)
	}
	if rule == nil {
		return nil, domain.ErrRuleNotFound
	}
	return ruleToDTO(rule), nil
}

// List devuelve reglas filtradas y paginadas.
func (uc *DistributionRuleUseCase) List(ctx context.Context, in dto.RuleListRequest) (*dto.RuleListResponse, error) {
	in.DefaultPage()

	filter := repository.RuleListFilter{}
	if in.ProductID != "" {
		filter.ProductID = &in.ProductID
	}
	if in.SiteType != "" {
		filter.SiteType = &in.SiteType
	}
	if in.Active != nil && *in.Active {
		filter.OnlyActive = true
	}

	rules, err := uc.ruleRepo.List(ctx, filter, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar reglas: %w", err)
	}

	out := make([]dto.RuleDTO, 0, len(rules))
	for _, r := range rules {
		out = append(out, *ruleToDTO(r))
	}
	return &dto.RuleListResponse{
		Rules: out,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// ResolveActive resuelve la regla aplicable por especificidad: candidatas del
// store (activas, vigentes, alcance compatible) + política de dominio.
// Devuelve rule = nil sin error cuando ninguna regla aplica.
func (uc *DistributionRuleUseCase) ResolveActive(ctx context.Context, in dto.ResolveActiveRequest) (*dto.ResolveActiveResponse, error) {
	onDate := today()
	if in.OnDate != "" {
		var err error
		if onDate, err = parseDate(in.OnDate); err != nil {
			return nil, err
		}
	}

	candidates, err := uc.ruleRepo.ListCandidates(ctx,
		normalizePtr(strPtrOrNil(in.ProductID)),
		normalizePtr(strPtrOrNil(in.SiteType)),
		onDate,
	)
	if err != nil {
		return nil, fmt.Errorf("resolver regla activa: %w", err)
	}

	rule := revenue.MostSpecific(candidates)
	resp := &dto.ResolveActiveResponse{}
	if rule != nil {
		resp.Rule = ruleToDTO(rule)
	}
	return resp, nil
}

// SimulateSplit reparto what-if sobre un mapa arbitrario, sin tocar las
// reglas persistidas.
func (uc *DistributionRuleUseCase) SimulateSplit(in dto.SimulateSplitRequest) (*dto.SimulateSplitResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrInvalidInput)
	}

	split, err := revenue.Distribute(in.GrossProfit, entity.DistributionMap(in.DistributionMap))
	if err != nil {
		return nil, err
	}
	return &dto.SimulateSplitResponse{
		GrossProfit:       split.GrossProfit,
		DistributedAmount: split.DistributedAmount,
		Breakdown:         splitToDTO(split),
		HasAdjustment:     split.HasAdjustment,
	}, nil
}

func (uc *DistributionRuleUseCase) appendAudit(
	ctx context.Context,
	auditRepo repository.AuditLogRepository,
	actorID, action string,
	rule *entity.DistributionRule,
) error {
	detail, _ := json.Marshal(map[string]any{
		"rule_name":   rule.RuleName,
		"product_id":  rule.ProductID,
		"site_type":   rule.SiteType,
		"region_type": rule.RegionType,
		"is_active":   rule.IsActive,
	})
	return auditRepo.Append(ctx, &entity.AuditLog{
		ID:         uuid.NewString(),
		ActorID:    actorID,
		Action:     action,
		EntityType: "distribution_rule",
		EntityID:   rule.ID,
		Detail:     detail,
		CreatedAt:  time.Now().UTC(),
	})
}

// normalizePtr convierte punteros a cadena vacía en nil (alcance genérico).
func normalizePtr(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func strPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
