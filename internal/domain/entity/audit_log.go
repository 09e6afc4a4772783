package entity

import (
	"encoding/json"
	"time"
)

// Acciones registradas en la bitácora de auditoría.
const (
	AuditActionRuleCreated       = "rule.created"
	AuditActionRuleUpdated       = "rule.updated"
	AuditActionRuleDeactivated   = "rule.deactivated"
	AuditActionTransactionRecorded = "transaction.recorded"
)

// AuditLog entrada de la bitácora. Se escribe en la misma transacción de DB
// que la mutación que describe (regla o asiento del libro).
type AuditLog struct {
	ID         string
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	Detail     json.RawMessage
	CreatedAt  time.Time
}
