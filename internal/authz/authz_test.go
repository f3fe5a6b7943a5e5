package authz

import (
	"testing"

	"github.com/reellords/studio-league/backend/internal/contracts"
)

func TestAuthorize(t *testing.T) {
	commissioner := Actor{UserID: 1, LeagueID: 1, Roles: []string{RoleCommissioner}}
	owner := Actor{UserID: 2, LeagueID: 1, Roles: []string{RoleMember}, StudioIDs: []contracts.StudioID{5}}
	otherOwner := Actor{UserID: 3, LeagueID: 1, Roles: []string{RoleMember}, StudioIDs: []contracts.StudioID{6}}
	outsider := Actor{UserID: 4, LeagueID: 2, Roles: []string{RoleCommissioner}}

	tests := []struct {
		name    string
		actor   Actor
		req     Requirement
		allowed bool
	}{
		{"commissioner computes weeks", commissioner, ComputeWeek(1), true},
		{"member cannot compute weeks", owner, ComputeWeek(1), false},
		{"commissioner of another league cannot compute", outsider, ComputeWeek(1), false},

		{"commissioner applies awards", commissioner, ApplyAward(1), true},
		{"member cannot apply awards", owner, ApplyAward(1), false},

		{"owner mutates own roster", owner, MutateRoster(1, 5), true},
		{"owner cannot mutate another studio", otherOwner, MutateRoster(1, 5), false},
		{"commissioner mutates any roster", commissioner, MutateRoster(1, 5), true},
		{"foreign commissioner cannot mutate roster", outsider, MutateRoster(1, 5), false},

		{"unknown action denied", commissioner, Requirement{Action: "drop_tables", LeagueID: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Authorize(tt.actor, tt.req)
			if d.Allowed != tt.allowed {
				t.Errorf("Authorize() allowed = %v, want %v (reason: %q)", d.Allowed, tt.allowed, d.Reason)
			}
			if !d.Allowed && d.Reason == "" {
				t.Error("denied decision must carry a reason")
			}
		})
	}
}
