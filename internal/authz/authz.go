// Package authz turns an acting user into a single capability decision.
// Identity itself (who the user is, which studios they own) is resolved by
// an upstream collaborator; this package only decides whether that actor
// may perform an operation, and fails closed.
package authz

import (
	"fmt"

	"github.com/reellords/studio-league/backend/internal/contracts"
)

// Role names granted by the identity collaborator
const (
	RoleCommissioner = "commissioner"
	RoleMember       = "member"
)

// Actor is the authenticated caller as resolved upstream
type Actor struct {
	UserID    contracts.UserID
	LeagueID  contracts.LeagueID // league the actor's roles apply to
	Roles     []string
	StudioIDs []contracts.StudioID // studios the actor owns
}

// Action is an operation class requiring authorization
type Action string

const (
	ActionComputeWeek  Action = "compute_week"
	ActionMutateRoster Action = "mutate_roster"
	ActionApplyAward   Action = "apply_award"
)

// Requirement names the operation and its scope
type Requirement struct {
	Action   Action
	LeagueID contracts.LeagueID
	StudioID contracts.StudioID // zero when the operation is league-scoped
}

// ComputeWeek builds the requirement for triggering a weekly compute
func ComputeWeek(leagueID contracts.LeagueID) Requirement {
	return Requirement{Action: ActionComputeWeek, LeagueID: leagueID}
}

// MutateRoster builds the requirement for acquire/retire on a studio
func MutateRoster(leagueID contracts.LeagueID, studioID contracts.StudioID) Requirement {
	return Requirement{Action: ActionMutateRoster, LeagueID: leagueID, StudioID: studioID}
}

// ApplyAward builds the requirement for granting award bonuses
func ApplyAward(leagueID contracts.LeagueID) Requirement {
	return Requirement{Action: ActionApplyAward, LeagueID: leagueID}
}

// Decision is the capability verdict
type Decision struct {
	Allowed bool
	Reason  string
}

// Authorize evaluates a requirement against an actor. One explicit
// function composed from named predicates; unknown actions are denied.
func Authorize(actor Actor, req Requirement) Decision {
	switch req.Action {
	case ActionComputeWeek, ActionApplyAward:
		if isCommissioner(actor, req.LeagueID) {
			return Decision{Allowed: true}
		}
		return denied("requires the league commissioner")

	case ActionMutateRoster:
		if isCommissioner(actor, req.LeagueID) || isStudioOwner(actor, req.StudioID) {
			return Decision{Allowed: true}
		}
		return denied("requires the studio owner or the league commissioner")

	default:
		return denied(fmt.Sprintf("unknown action %q", req.Action))
	}
}

// isCommissioner reports whether the actor holds the commissioner role in
// the league
func isCommissioner(actor Actor, leagueID contracts.LeagueID) bool {
	if actor.LeagueID != leagueID {
		return false
	}
	for _, role := range actor.Roles {
		if role == RoleCommissioner {
			return true
		}
	}
	return false
}

// isStudioOwner reports whether the actor owns the studio
func isStudioOwner(actor Actor, studioID contracts.StudioID) bool {
	if studioID == 0 {
		return false
	}
	for _, id := range actor.StudioIDs {
		if id == studioID {
			return true
		}
	}
	return false
}

// isLeagueMember reports whether the actor belongs to the league at all
func isLeagueMember(actor Actor, leagueID contracts.LeagueID) bool {
	return actor.LeagueID == leagueID && len(actor.Roles) > 0
}

func denied(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}
