package roster

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reellords/studio-league/backend/internal/authz"
	"github.com/reellords/studio-league/backend/internal/contracts"
	"github.com/reellords/studio-league/backend/pkg/logger"
)

type fakeLeagueRepo struct {
	league *contracts.League
}

func (f *fakeLeagueRepo) GetByID(_ context.Context, id contracts.LeagueID) (*contracts.League, error) {
	if f.league == nil || f.league.ID != id {
		return nil, contracts.NotFound("league %d not found", id)
	}
	return f.league, nil
}

type fakeSeasonRepo struct {
	season *contracts.Season
}

func (f *fakeSeasonRepo) GetByID(_ context.Context, id contracts.SeasonID) (*contracts.Season, error) {
	if f.season == nil || f.season.ID != id {
		return nil, contracts.NotFound("season %d not found", id)
	}
	return f.season, nil
}

func (f *fakeSeasonRepo) ListActive(_ context.Context) ([]contracts.Season, error) {
	if f.season != nil && f.season.Active {
		return []contracts.Season{*f.season}, nil
	}
	return nil, nil
}

func (f *fakeSeasonRepo) UpdateStartDate(_ context.Context, id contracts.SeasonID, start time.Time) error {
	if f.season == nil || f.season.ID != id {
		return contracts.NotFound("season %d not found", id)
	}
	f.season.StartDate = start
	return nil
}

type fakeStudioRepo struct {
	studios map[contracts.StudioID]*contracts.Studio
}

func (f *fakeStudioRepo) GetByID(_ context.Context, id contracts.StudioID) (*contracts.Studio, error) {
	s, ok := f.studios[id]
	if !ok {
		return nil, contracts.NotFound("studio %d not found", id)
	}
	return s, nil
}

func (f *fakeStudioRepo) ListByLeague(_ context.Context, leagueID contracts.LeagueID) ([]contracts.Studio, error) {
	var out []contracts.Studio
	for _, s := range f.studios {
		if s.LeagueID == leagueID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeStudioRepo) Create(_ context.Context, studio *contracts.Studio) error {
	studio.ID = contracts.StudioID(len(f.studios) + 1)
	f.studios[studio.ID] = studio
	return nil
}

type fakeOwnershipRepo struct {
	rows []contracts.MovieOwnership
}

func (f *fakeOwnershipRepo) Insert(_ context.Context, o *contracts.MovieOwnership) error {
	for _, r := range f.rows {
		if r.SeasonID == o.SeasonID && r.MovieID == o.MovieID {
			return contracts.Conflict("movie %d already owned this season", o.MovieID)
		}
	}
	o.ID = contracts.OwnershipID(len(f.rows) + 1)
	f.rows = append(f.rows, *o)
	return nil
}

func (f *fakeOwnershipRepo) GetByID(_ context.Context, id contracts.OwnershipID) (*contracts.MovieOwnership, error) {
	for i := range f.rows {
		if f.rows[i].ID == id {
			o := f.rows[i]
			return &o, nil
		}
	}
	return nil, contracts.NotFound("ownership %d not found", id)
}

func (f *fakeOwnershipRepo) ListBySeason(_ context.Context, seasonID contracts.SeasonID) ([]contracts.MovieOwnership, error) {
	var out []contracts.MovieOwnership
	for _, r := range f.rows {
		if r.SeasonID == seasonID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeOwnershipRepo) ActiveByMovie(_ context.Context, seasonID contracts.SeasonID, movieID contracts.MovieID) (*contracts.MovieOwnership, error) {
	for i := range f.rows {
		r := &f.rows[i]
		if r.SeasonID == seasonID && r.MovieID == movieID && r.RetiredAt == nil {
			o := *r
			return &o, nil
		}
	}
	return nil, contracts.NotFound("movie %d is not owned", movieID)
}

func (f *fakeOwnershipRepo) Retire(_ context.Context, id contracts.OwnershipID, at time.Time) error {
	for i := range f.rows {
		if f.rows[i].ID == id {
			if f.rows[i].RetiredAt != nil {
				return contracts.Conflict("ownership %d already retired", id)
			}
			f.rows[i].RetiredAt = &at
			return nil
		}
	}
	return contracts.NotFound("ownership %d not found", id)
}

// openWindow is a Wednesday morning; the roster is mutable then
var openWindow = time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)

// lockedWindow is a Saturday; all roster mutation is blocked
var lockedWindow = time.Date(2024, 1, 13, 10, 0, 0, 0, time.UTC)

func newTestService(now time.Time) (*Service, *fakeOwnershipRepo) {
	leagues := &fakeLeagueRepo{league: &contracts.League{
		ID:       1,
		Name:     "Test League",
		Timezone: "UTC",
	}}
	seasons := &fakeSeasonRepo{season: &contracts.Season{
		ID:        1,
		LeagueID:  1,
		StartDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Active:    true,
	}}
	studios := &fakeStudioRepo{studios: map[contracts.StudioID]*contracts.Studio{
		5: {ID: 5, LeagueID: 1, OwnerUserID: 7, Name: "Alpha", Slug: "alpha"},
	}}
	ownerships := &fakeOwnershipRepo{}

	svc := NewService(leagues, seasons, studios, ownerships, logger.NewNop()).
		WithClock(func() time.Time { return now })
	return svc, ownerships
}

func ownerActor() authz.Actor {
	return authz.Actor{
		UserID:    7,
		LeagueID:  1,
		Roles:     []string{authz.RoleMember},
		StudioIDs: []contracts.StudioID{5},
	}
}

func TestService_Acquire(t *testing.T) {
	svc, _ := newTestService(openWindow)
	ctx := context.Background()

	ownership, err := svc.Acquire(ctx, ownerActor(), AcquireRequest{
		SeasonID:      1,
		StudioID:      5,
		MovieID:       42,
		PurchasePrice: 100,
	})
	require.NoError(t, err)

	assert.Equal(t, contracts.MovieID(42), ownership.MovieID)
	assert.Equal(t, contracts.LeagueID(1), ownership.LeagueID)
	assert.True(t, ownership.Active())
	assert.False(t, ownership.AcquiredAt.IsZero())
}

func TestService_AcquireConflictOnSecondOwner(t *testing.T) {
	svc, _ := newTestService(openWindow)
	ctx := context.Background()

	_, err := svc.Acquire(ctx, ownerActor(), AcquireRequest{SeasonID: 1, StudioID: 5, MovieID: 42})
	require.NoError(t, err)

	_, err = svc.Acquire(ctx, ownerActor(), AcquireRequest{SeasonID: 1, StudioID: 5, MovieID: 42})
	assert.True(t, contracts.IsKind(err, contracts.KindConflict))
}

func TestService_AcquireDuringBlackout(t *testing.T) {
	svc, _ := newTestService(lockedWindow)
	ctx := context.Background()

	_, err := svc.Acquire(ctx, ownerActor(), AcquireRequest{SeasonID: 1, StudioID: 5, MovieID: 42})
	require.Error(t, err)
	assert.True(t, contracts.IsKind(err, contracts.KindWindowLocked))
	assert.Contains(t, err.Error(), "locked")
}

func TestService_AcquireAuthz(t *testing.T) {
	svc, _ := newTestService(openWindow)
	ctx := context.Background()

	// A member who does not own studio 5 cannot buy for it
	stranger := authz.Actor{
		UserID:    99,
		LeagueID:  1,
		Roles:     []string{authz.RoleMember},
		StudioIDs: []contracts.StudioID{6},
	}
	_, err := svc.Acquire(ctx, stranger, AcquireRequest{SeasonID: 1, StudioID: 5, MovieID: 42})
	assert.True(t, contracts.IsKind(err, contracts.KindForbidden))

	// A commissioner can
	commissioner := authz.Actor{
		UserID:   3,
		LeagueID: 1,
		Roles:    []string{authz.RoleCommissioner},
	}
	_, err = svc.Acquire(ctx, commissioner, AcquireRequest{SeasonID: 1, StudioID: 5, MovieID: 42})
	assert.NoError(t, err)
}

func TestService_AcquireValidation(t *testing.T) {
	svc, _ := newTestService(openWindow)
	ctx := context.Background()

	_, err := svc.Acquire(ctx, ownerActor(), AcquireRequest{
		SeasonID: 1, StudioID: 5, MovieID: 42, PurchasePrice: -1,
	})
	assert.True(t, contracts.IsKind(err, contracts.KindValidation))
}

func TestService_Retire(t *testing.T) {
	svc, repo := newTestService(openWindow)
	ctx := context.Background()

	acquired, err := svc.Acquire(ctx, ownerActor(), AcquireRequest{SeasonID: 1, StudioID: 5, MovieID: 42})
	require.NoError(t, err)

	retired, err := svc.Retire(ctx, ownerActor(), acquired.ID)
	require.NoError(t, err)
	assert.False(t, retired.Active())

	// Retiring again is a state conflict, not idempotent success
	_, err = svc.Retire(ctx, ownerActor(), acquired.ID)
	assert.True(t, contracts.IsKind(err, contracts.KindConflict))

	// The row survives retirement for historical attribution
	rows, err := svc.SeasonRoster(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.NotNil(t, rows[0].RetiredAt)

	// And the movie cannot be re-acquired this season
	_, err = svc.Acquire(ctx, ownerActor(), AcquireRequest{SeasonID: 1, StudioID: 5, MovieID: 42})
	assert.True(t, contracts.IsKind(err, contracts.KindConflict))
	assert.Len(t, repo.rows, 1)
}

func TestService_RetireUnknownOwnership(t *testing.T) {
	svc, _ := newTestService(openWindow)

	_, err := svc.Retire(context.Background(), ownerActor(), 404)
	assert.True(t, contracts.IsKind(err, contracts.KindNotFound))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Alpha Studios", "alpha-studios"},
		{"  The  Big--Picture  ", "the-big-picture"},
		{"Héllo & Co.", "héllo-co"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
