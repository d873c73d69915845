// Package policy decide si una identidad autenticada puede operar sobre un recurso.
// Es una función pura: no consulta persistencia; el llamador resuelve el propietario.
package policy

import "github.com/jhoicas/backoffice-api/internal/domain"

// Action operación solicitada sobre un recurso.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	// ActionIssue emitir un documento del propietario (comprobante de venta).
	ActionIssue Action = "issue"
)

// Decision resultado de Authorize.
type Decision bool

const (
	Allow Decision = true
	Deny  Decision = false
)

// Authorize decide sobre la acción de actorID en un recurso cuyo propietario es ownerID.
// Para cuentas, ownerID es el id de la cuenta destino.
//
//   - read: basta con estar autenticado.
//   - create, update, delete, issue: actor == propietario.
//   - cualquier otra acción se deniega.
func Authorize(actorID, ownerID string, action Action) Decision {
	if actorID == "" {
		return Deny
	}
	switch action {
	case ActionRead:
		return Allow
	case ActionCreate, ActionUpdate, ActionDelete, ActionIssue:
		if ownerID != "" && actorID == ownerID {
			return Allow
		}
	}
	return Deny
}

// Require es Authorize como error: domain.ErrForbidden si se deniega.
func Require(actorID, ownerID string, action Action) error {
	if Authorize(actorID, ownerID, action) == Deny {
		return domain.ErrForbidden
	}
	return nil
}
