package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/reellords/studio-league/backend/internal/authz"
	"github.com/reellords/studio-league/backend/internal/contracts"
)

// Identity is resolved by the gateway in front of this service and passed
// down as headers. Absent or malformed headers fail closed.
const (
	headerActorUser    = "X-Actor-User"
	headerActorLeague  = "X-Actor-League"
	headerActorRoles   = "X-Actor-Roles"
	headerActorStudios = "X-Actor-Studios"
)

// actorFromRequest reconstructs the caller from trusted gateway headers
func actorFromRequest(r *http.Request) (authz.Actor, error) {
	userID, err := strconv.ParseInt(r.Header.Get(headerActorUser), 10, 64)
	if err != nil || userID <= 0 {
		return authz.Actor{}, contracts.Forbidden("missing or invalid actor identity")
	}

	actor := authz.Actor{UserID: contracts.UserID(userID)}

	if raw := r.Header.Get(headerActorLeague); raw != "" {
		leagueID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return authz.Actor{}, contracts.Forbidden("invalid actor league")
		}
		actor.LeagueID = contracts.LeagueID(leagueID)
	}

	actor.Roles = splitHeaderList(r.Header.Get(headerActorRoles))

	for _, raw := range splitHeaderList(r.Header.Get(headerActorStudios)) {
		studioID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return authz.Actor{}, contracts.Forbidden("invalid actor studio list")
		}
		actor.StudioIDs = append(actor.StudioIDs, contracts.StudioID(studioID))
	}

	return actor, nil
}

func splitHeaderList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
