package authz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campaign-server/internal/observability"

	"github.com/google/uuid"
)

// ErrPermissionDenied is matched by every *PermissionDeniedError.
var ErrPermissionDenied = errors.New("permission denied")

// PermissionDeniedError carries the diagnostic context of a denial.
type PermissionDeniedError struct {
	Entity     Entity
	Operation  Operation
	ResourceID uuid.UUID
	ActorID    uuid.UUID
	Role       string
	CompanyID  *uuid.UUID
	SuperAdmin bool
	Reason     ReasonCode
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission denied: %s %s (%s)", e.Operation, e.Entity, e.Reason)
}

func (e *PermissionDeniedError) Is(target error) bool {
	return target == ErrPermissionDenied
}

// Details is the client-safe view of the denial.
func (e *PermissionDeniedError) Details() map[string]string {
	company := ""
	if e.CompanyID != nil {
		company = e.CompanyID.String()
	}
	return map[string]string{
		"entity":     string(e.Entity),
		"operation":  string(e.Operation),
		"reason":     string(e.Reason),
		"role":       e.Role,
		"company_id": company,
	}
}

// Engine evaluates the policy table for resolved actors, logging denials and
// recording decision metrics.
type Engine struct {
	logger  *observability.Logger
	metrics *Metrics
}

// NewEngine creates an Engine. metrics may be nil.
func NewEngine(logger *observability.Logger, metrics *Metrics) *Engine {
	return &Engine{logger: logger, metrics: metrics}
}

// Authorize returns nil when actor may perform op on res and a
// *PermissionDeniedError otherwise.
func (e *Engine) Authorize(ctx context.Context, actor Actor, op Operation, res Resource) error {
	d := e.decide(actor, op, res)
	if d.Allowed {
		return nil
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "actor_id", Value: actor.ID},
		observability.Field{Key: "actor_role", Value: actor.Role},
		observability.Field{Key: "entity", Value: res.Entity},
		observability.Field{Key: "operation", Value: op},
		observability.Field{Key: "resource_id", Value: res.ID},
		observability.Field{Key: "reason", Value: d.Reason},
	)
	e.logger.Info(ctx, "authorization denied")

	return Denied(actor, op, res, d.Reason)
}

// Denied builds the error returned for a denial decided outside the policy
// table, such as a workflow role gate.
func Denied(actor Actor, op Operation, res Resource, reason ReasonCode) *PermissionDeniedError {
	return &PermissionDeniedError{
		Entity:     res.Entity,
		Operation:  op,
		ResourceID: res.ID,
		ActorID:    actor.ID,
		Role:       string(actor.Role),
		CompanyID:  actor.CompanyID,
		SuperAdmin: actor.SuperAdmin,
		Reason:     reason,
	}
}

// Allowed reports the decision without logging the denial.
func (e *Engine) Allowed(actor Actor, op Operation, res Resource) bool {
	return e.decide(actor, op, res).Allowed
}

// Decide returns the full decision.
func (e *Engine) Decide(actor Actor, op Operation, res Resource) Decision {
	return e.decide(actor, op, res)
}

func (e *Engine) decide(actor Actor, op Operation, res Resource) Decision {
	start := time.Now()
	d := Can(actor, op, res)
	e.metrics.observe(res.Entity, op, d, time.Since(start))
	return d
}

// Filter keeps the items actor may read. Rows are evaluated individually so
// list endpoints never return a row the single-row read would deny.
func Filter[T any](e *Engine, actor Actor, items []T, toResource func(T) Resource) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if e.Allowed(actor, OperationRead, toResource(item)) {
			out = append(out, item)
		}
	}
	return out
}
