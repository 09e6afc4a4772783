package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/supplychain-pro/internal/domain/entity"
	"github.com/tu-usuario/supplychain-pro/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo adaptador de la bitácora de auditoría (solo inserción).
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Append inserta una entrada. Se invoca dentro de la misma transacción que
// la mutación que describe (vía TxRunner).
func (r *AuditLogRepo) Append(ctx context.Context, log *entity.AuditLog) error {
	const query = `
		INSERT INTO audit_logs (id, actor_id, action, entity_type, entity_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		log.ID, log.ActorID, log.Action, log.EntityType, log.EntityID, log.Detail, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}
