package repository

import (
	"context"

	"github.com/tu-usuario/supplychain-pro/internal/domain/entity"
)

// AuditLogRepository puerto de la bitácora de auditoría (solo inserción).
type AuditLogRepository interface {
	Append(ctx context.Context, log *entity.AuditLog) error
}
