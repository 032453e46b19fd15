package workflow

import (
	_ "embed"
	"fmt"
	"strings"

	"campaign-server/internal/authz"
	"campaign-server/internal/store"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

//go:embed model.conf
var embeddedModel string

//go:embed policy.csv
var embeddedPolicy string

// Relations of a caller to a campaign, used as casbin subjects.
const (
	RelationSuperAdmin   = "super_admin"
	RelationCompanyAdmin = "company_admin"
	RelationOwner        = "owner"
)

// Gate decides which callers may move a campaign between two statuses.
type Gate struct {
	enforcer *casbin.SyncedEnforcer
}

// NewGate loads the embedded transition policy.
func NewGate() (*Gate, error) {
	m, err := model.NewModelFromString(embeddedModel)
	if err != nil {
		return nil, fmt.Errorf("failed to load workflow model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create workflow enforcer: %w", err)
	}
	if err := loadEmbeddedPolicy(enforcer, embeddedPolicy); err != nil {
		return nil, err
	}
	return &Gate{enforcer: enforcer}, nil
}

func loadEmbeddedPolicy(enforcer *casbin.SyncedEnforcer, policy string) error {
	for _, line := range strings.Split(policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		switch {
		case parts[0] == "p" && len(parts) == 4:
			if _, err := enforcer.AddPolicy(parts[1], parts[2], parts[3]); err != nil {
				return fmt.Errorf("failed to add transition policy %v: %w", parts[1:], err)
			}
		case parts[0] == "g" && len(parts) == 3:
			if _, err := enforcer.AddGroupingPolicy(parts[1], parts[2]); err != nil {
				return fmt.Errorf("failed to add relation %v: %w", parts[1:], err)
			}
		default:
			return fmt.Errorf("malformed workflow policy line %q", line)
		}
	}
	return nil
}

// Relations returns the caller's relations to campaign, strongest first.
func Relations(actor authz.Actor, campaign store.Campaign) []string {
	var out []string
	if actor.SuperAdmin {
		out = append(out, RelationSuperAdmin)
	}
	if actor.AdminOf(campaign.OwnerCompanyID) {
		out = append(out, RelationCompanyAdmin)
	}
	if actor.ID == campaign.ClientID {
		out = append(out, RelationOwner)
	}
	return out
}

// Allowed reports whether any of the caller's relations permits from -> to.
func (g *Gate) Allowed(actor authz.Actor, campaign store.Campaign, to string) (bool, error) {
	for _, rel := range Relations(actor, campaign) {
		ok, err := g.enforcer.Enforce(rel, campaign.Status, to)
		if err != nil {
			return false, fmt.Errorf("workflow enforcement failed: %w", err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// Check validates the edge and the caller's relation. A graph violation
// returns ErrInvalidTransition; a role violation returns a
// *authz.PermissionDeniedError.
func (g *Gate) Check(actor authz.Actor, campaign store.Campaign, to string) error {
	if err := ValidateTransition(campaign.Status, to); err != nil {
		return err
	}
	ok, err := g.Allowed(actor, campaign, to)
	if err != nil {
		return err
	}
	if !ok {
		return authz.Denied(actor, authz.OperationUpdate, authz.CampaignResource(campaign), authz.ReasonDenyTransitionRole)
	}
	return nil
}
