package usecase

import (
	"context"

	"github.com/tu-usuario/supplychain-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la mutación y su entrada de
// auditoría se escriben atómicamente (commit o rollback conjunto).
type TxRunner interface {
	// RunLedger transacción para el libro de ingresos: asiento + auditoría.
	RunLedger(ctx context.Context, fn func(
		txRepo repository.RevenueTransactionRepository,
		auditRepo repository.AuditLogRepository,
	) error) error

	// RunRules transacción para mutaciones de reglas: regla + auditoría.
	RunRules(ctx context.Context, fn func(
		ruleRepo repository.DistributionRuleRepository,
		auditRepo repository.AuditLogRepository,
	) error) error
}
