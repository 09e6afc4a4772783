package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/supplychain-pro/internal/domain"
	"github.com/tu-usuario/supplychain-pro/internal/domain/entity"
	"github.com/tu-usuario/supplychain-pro/internal/domain/repository"
)

var _ repository.DistributionRuleRepository = (*DistributionRuleRepo)(nil)

// DistributionRuleRepo adaptador de persistencia de reglas de distribución.
// El mapa rol → fracción se guarda como jsonb; el tipo de dominio
// (entity.DistributionMap) no sabe de esa representación.
type DistributionRuleRepo struct {
	q Querier
}

// NewDistributionRuleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDistributionRuleRepository(q Querier) *DistributionRuleRepo {
	return &DistributionRuleRepo{q: q}
}

const ruleColumns = `id, rule_name, product_id, site_type, region_type, distribution_map, applies_from, applies_to, is_active, created_at, updated_at`

// Create persiste una nueva regla. Los invariantes (suma 100%, solapamiento)
// se validan en el caso de uso antes de llegar aquí.
func (r *DistributionRuleRepo) Create(ctx context.Context, rule *entity.DistributionRule) error {
	raw, err := json.Marshal(rule.Distribution)
	if err != nil {
		return fmt.Errorf("serializar mapa: %w", err)
	}
	const query = `
		INSERT INTO distribution_rules (id, rule_name, product_id, site_type, region_type, distribution_map, applies_from, applies_to, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(ctx, query,
		rule.ID, rule.RuleName, rule.ProductID, rule.SiteType, rule.RegionType,
		raw, rule.AppliesFrom, rule.AppliesTo, rule.IsActive, rule.CreatedAt, rule.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRuleOverlap
		}
		return fmt.Errorf("insert rule: %w", err)
	}
	return nil
}

// Update sobrescribe la regla completa (last-write-wins, sin chequeo de versión).
func (r *DistributionRuleRepo) Update(ctx context.Context, rule *entity.DistributionRule) error {
	raw, err := json.Marshal(rule.Distribution)
	if err != nil {
		return fmt.Errorf("serializar mapa: %w", err)
	}
	const query = `
		UPDATE distribution_rules
		SET rule_name = $2, distribution_map = $3, applies_from = $4, applies_to = $5, is_active = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		rule.ID, rule.RuleName, raw, rule.AppliesFrom, rule.AppliesTo, rule.IsActive, rule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update rule: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrRuleNotFound
	}
	return nil
}

// Deactivate baja lógica de la regla.
func (r *DistributionRuleRepo) Deactivate(ctx context.Context, id string, at time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE distribution_rules SET is_active = FALSE, updated_at = $2 WHERE id = $1`,
		id, at,
	)
	if err != nil {
		return fmt.Errorf("deactivate rule: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrRuleNotFound
	}
	return nil
}

// GetByID obtiene una regla. Devuelve (nil, nil) si no existe.
func (r *DistributionRuleRepo) GetByID(ctx context.Context, id string) (*entity.DistributionRule, error) {
	row := r.q.QueryRow(ctx, `SELECT `+ruleColumns+` FROM distribution_rules WHERE id = $1`, id)
	rule, err := scanRule(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rule: %w", err)
	}
	return rule, nil
}

// List reglas filtradas y paginadas, más recientes primero.
func (r *DistributionRuleRepo) List(ctx context.Context, filter repository.RuleListFilter, limit, offset int) ([]*entity.DistributionRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM distribution_rules WHERE 1=1`
	args := []any{}
	if filter.OnlyActive {
		query += ` AND is_active = TRUE`
	}
	if filter.ProductID != nil {
		args = append(args, *filter.ProductID)
		query += fmt.Sprintf(` AND product_id = $%d`, len(args))
	}
	if filter.SiteType != nil {
		args = append(args, *filter.SiteType)
		query += fmt.Sprintf(` AND site_type = $%d`, len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	defer rows.Close()
	return scanRules(rows)
}

// ListCandidates reglas activas vigentes en onDate con alcance compatible:
// product_id nulo o igual al pedido, y lo mismo para site_type. La elección
// de la más específica es política de dominio, no SQL.
func (r *DistributionRuleRepo) ListCandidates(ctx context.Context, productID, siteType *string, onDate time.Time) ([]*entity.DistributionRule, error) {
	const query = `
		SELECT ` + ruleColumns + `
		FROM distribution_rules
		WHERE is_active = TRUE
		  AND applies_from <= $1
		  AND (applies_to IS NULL OR applies_to >= $1)
		  AND (product_id IS NULL OR product_id = $2)
		  AND (site_type IS NULL OR site_type = $3)`
	rows, err := r.q.Query(ctx, query, onDate, productID, siteType)
	if err != nil {
		return nil, fmt.Errorf("list candidate rules: %w", err)
	}
	defer rows.Close()
	return scanRules(rows)
}

// FindOverlapping primera regla activa con alcance idéntico cuya ventana
// intersecta la de rule. applies_to nulo se trata como 9999-12-31: una regla
// abierta bloquea cualquier ventana futura del mismo alcance (comportamiento
// heredado, ver tests de dominio).
func (r *DistributionRuleRepo) FindOverlapping(ctx context.Context, rule *entity.DistributionRule, excludeID string) (*entity.DistributionRule, error) {
	const query = `
		SELECT ` + ruleColumns + `
		FROM distribution_rules
		WHERE is_active = TRUE
		  AND id <> $1
		  AND product_id IS NOT DISTINCT FROM $2
		  AND site_type IS NOT DISTINCT FROM $3
		  AND region_type = $4
		  AND applies_from <= $5
		  AND COALESCE(applies_to, DATE '9999-12-31') >= $6
		LIMIT 1`
	row := r.q.QueryRow(ctx, query,
		excludeID, rule.ProductID, rule.SiteType, rule.RegionType,
		rule.EffectiveTo(), rule.AppliesFrom,
	)
	found, err := scanRule(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find overlapping rule: %w", err)
	}
	return found, nil
}

func scanRule(row pgx.Row) (*entity.DistributionRule, error) {
	var (
		rule entity.DistributionRule
		raw  []byte
	)
	if err := row.Scan(
		&rule.ID, &rule.RuleName, &rule.ProductID, &rule.SiteType, &rule.RegionType,
		&raw, &rule.AppliesFrom, &rule.AppliesTo, &rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt,
	); err != nil {
		return nil, err
	}
	dist := make(map[string]decimal.Decimal)
	if err := json.Unmarshal(raw, &dist); err != nil {
		return nil, fmt.Errorf("deserializar mapa: %w", err)
	}
	rule.Distribution = entity.DistributionMap(dist)
	return &rule, nil
}

func scanRules(rows pgx.Rows) ([]*entity.DistributionRule, error) {
	var list []*entity.DistributionRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		list = append(list, rule)
	}
	return list, rows.Err()
}
