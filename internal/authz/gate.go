package authz

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"vigil/monitoring/internal/clients"
)

const (
	RoleEmployee   = "employee"
	RoleTeamLead   = "team-lead"
	RoleManager    = "manager"
	RoleHR         = "hr"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super-admin"
)

// roleLevels backs the strict hierarchy check for direct screen-monitoring
// requests. Unknown roles rank below everything.
var roleLevels = map[string]int{
	RoleEmployee:   1,
	RoleTeamLead:   2,
	RoleManager:    3,
	RoleHR:         4,
	RoleAdmin:      5,
	RoleSuperAdmin: 6,
}

const (
	ActionViewCaptures   = "view_captures"
	ActionRequestCapture = "instant_capture_request"

	DecisionAllowed = "allowed"
	DecisionDenied  = "denied"
)

type Actor struct {
	ID   uuid.UUID
	Role string
}

type Decision struct {
	Allowed bool
	Reason  string
}

type Gate struct {
	directory clients.Directory
	audit     AuditSink
}

func NewGate(directory clients.Directory, audit AuditSink) *Gate {
	return &Gate{directory: directory, audit: audit}
}

// CanViewUser evaluates the department-aware decision table, first match
// wins: admin roles, then headship of the target's department, then
// self-access. Every outcome, denials included, lands in the audit trail.
func (g *Gate) CanViewUser(ctx context.Context, actor Actor, targetID uuid.UUID) (Decision, error) {
	target, err := g.directory.GetEmployee(ctx, targetID)
	if err != nil {
		return Decision{}, err
	}

	decision, err := g.viewDecision(ctx, actor, target)
	if err != nil {
		return Decision{}, err
	}
	g.record(ctx, actor, target, ActionViewCaptures, decision)
	return decision, nil
}

// viewDecision never audits by itself; a directory failure is an
// infrastructure error, not a denial, and must not leave a decision row.
func (g *Gate) viewDecision(ctx context.Context, actor Actor, target clients.Employee) (Decision, error) {
	if actor.Role == RoleAdmin || actor.Role == RoleSuperAdmin {
		return Decision{Allowed: true, Reason: "admin_role"}, nil
	}
	if actor.ID != target.ID {
		heads, err := g.directory.DepartmentHeads(ctx, target.DepartmentID)
		if err != nil {
			return Decision{}, fmt.Errorf("department heads for %s: %w", target.DepartmentID, err)
		}
		for _, head := range heads {
			if head == actor.ID {
				return Decision{Allowed: true, Reason: "department_head"}, nil
			}
		}
	}
	if actor.ID == target.ID {
		return Decision{Allowed: true, Reason: "self_access"}, nil
	}
	return Decision{Allowed: false, Reason: "not_authorized"}, nil
}

// CanRequestCapture applies the stricter numeric hierarchy used for instant
// screen-monitoring requests: the requester must outrank the target, and only
// the top role bypasses the comparison.
func (g *Gate) CanRequestCapture(ctx context.Context, actor Actor, targetID uuid.UUID) (Decision, error) {
	target, err := g.directory.GetEmployee(ctx, targetID)
	if err != nil {
		return Decision{}, err
	}

	var decision Decision
	switch {
	case actor.Role == RoleSuperAdmin:
		decision = Decision{Allowed: true, Reason: "super_admin"}
	case roleLevels[actor.Role] > roleLevels[target.Role]:
		decision = Decision{Allowed: true, Reason: "outranks_target"}
	default:
		decision = Decision{Allowed: false, Reason: "insufficient_role_level"}
	}
	g.record(ctx, actor, target, ActionRequestCapture, decision)
	return decision, nil
}

func (g *Gate) record(ctx context.Context, actor Actor, target clients.Employee, action string, decision Decision) {
	outcome := DecisionDenied
	if decision.Allowed {
		outcome = DecisionAllowed
	}
	entry := AuditEntry{
		RequesterID:   actor.ID,
		RequesterRole: actor.Role,
		TargetID:      target.ID,
		TargetRole:    target.Role,
		Action:        action,
		Decision:      outcome,
		Reason:        decision.Reason,
		DecidedAt:     time.Now().UTC(),
	}
	if err := g.audit.Record(ctx, entry); err != nil {
		log.Printf("authz: audit write failed: %v", err)
	}
}
