package awards

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
	return []contracts.Season{*f.season}, nil
}

func (f *fakeSeasonRepo) UpdateStartDate(_ context.Context, id contracts.SeasonID, start time.Time) error {
	f.season.StartDate = start
	return nil
}

type fakeOwnershipRepo struct {
	rows []contracts.MovieOwnership
}

func (f *fakeOwnershipRepo) Insert(_ context.Context, o *contracts.MovieOwnership) error {
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
	return f.rows, nil
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
			f.rows[i].RetiredAt = &at
			return nil
		}
	}
	return contracts.NotFound("ownership %d not found", id)
}

type fakeAwardRepo struct {
	rows []contracts.AwardBonus
}

func (f *fakeAwardRepo) Insert(_ context.Context, bonus *contracts.AwardBonus) error {
	for _, r := range f.rows {
		if r.SeasonID == bonus.SeasonID && r.StudioID == bonus.StudioID &&
			r.MovieID == bonus.MovieID && r.CategoryKey == bonus.CategoryKey && r.Result == bonus.Result {
			return contracts.Conflict("bonus already applied")
		}
	}
	bonus.ID = contracts.BonusID(len(f.rows) + 1)
	f.rows = append(f.rows, *bonus)
	return nil
}

func (f *fakeAwardRepo) ListBySeason(_ context.Context, seasonID contracts.SeasonID) ([]contracts.AwardBonus, error) {
	return f.rows, nil
}

func (f *fakeAwardRepo) SeasonPointsByStudio(_ context.Context, seasonID contracts.SeasonID) (map[contracts.StudioID]int, error) {
	out := make(map[contracts.StudioID]int)
	for _, r := range f.rows {
		out[r.StudioID] += r.Points
	}
	return out, nil
}

func newTestService() (*Service, *fakeOwnershipRepo, *fakeAwardRepo) {
	leagues := &fakeLeagueRepo{league: &contracts.League{
		ID:       1,
		Timezone: "UTC",
		AwardCategories: []contracts.AwardCategory{
			{Key: "best-picture", Enabled: true, NominationPoints: 2, WinPoints: 5},
			{Key: "retired-category", Enabled: false, NominationPoints: 1, WinPoints: 3},
		},
	}}
	seasons := &fakeSeasonRepo{season: &contracts.Season{ID: 1, LeagueID: 1, Active: true}}
	ownerships := &fakeOwnershipRepo{}
	awardRepo := &fakeAwardRepo{}

	svc := NewService(leagues, seasons, ownerships, awardRepo, logger.NewNop())
	return svc, ownerships, awardRepo
}

func commissioner() authz.Actor {
	return authz.Actor{
		UserID:   1,
		LeagueID: 1,
		Roles:    []string{authz.RoleCommissioner},
	}
}

func TestService_Apply(t *testing.T) {
	svc, ownerships, _ := newTestService()
	ctx := context.Background()

	ownerships.rows = append(ownerships.rows, contracts.MovieOwnership{
		ID: 1, LeagueID: 1, SeasonID: 1, StudioID: 9, MovieID: 42,
		AcquiredAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	})

	nom, err := svc.Apply(ctx, commissioner(), ApplyRequest{
		SeasonID: 1, CategoryKey: "best-picture", MovieID: 42, Result: contracts.AwardNomination,
	})
	require.NoError(t, err)
	assert.Equal(t, contracts.StudioID(9), nom.StudioID)
	assert.Equal(t, 2, nom.Points)

	// Same movie can later win the same category
	win, err := svc.Apply(ctx, commissioner(), ApplyRequest{
		SeasonID: 1, CategoryKey: "best-picture", MovieID: 42, Result: contracts.AwardWin,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, win.Points)

	// But a repeat of either result is a conflict
	_, err = svc.Apply(ctx, commissioner(), ApplyRequest{
		SeasonID: 1, CategoryKey: "best-picture", MovieID: 42, Result: contracts.AwardWin,
	})
	assert.True(t, contracts.IsKind(err, contracts.KindConflict))

	bonuses, err := svc.SeasonBonuses(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, bonuses, 2)
}

func TestService_ApplyValidation(t *testing.T) {
	svc, ownerships, _ := newTestService()
	ctx := context.Background()

	ownerships.rows = append(ownerships.rows, contracts.MovieOwnership{
		ID: 1, LeagueID: 1, SeasonID: 1, StudioID: 9, MovieID: 42,
	})

	tests := []struct {
		name string
		req  ApplyRequest
		kind contracts.ErrorKind
	}{
		{
			name: "unknown result value",
			req:  ApplyRequest{SeasonID: 1, CategoryKey: "best-picture", MovieID: 42, Result: "runner-up"},
			kind: contracts.KindValidation,
		},
		{
			name: "missing category key",
			req:  ApplyRequest{SeasonID: 1, MovieID: 42, Result: contracts.AwardWin},
			kind: contracts.KindValidation,
		},
		{
			name: "unknown category",
			req:  ApplyRequest{SeasonID: 1, CategoryKey: "best-catering", MovieID: 42, Result: contracts.AwardWin},
			kind: contracts.KindValidation,
		},
		{
			name: "disabled category",
			req:  ApplyRequest{SeasonID: 1, CategoryKey: "retired-category", MovieID: 42, Result: contracts.AwardWin},
			kind: contracts.KindValidation,
		},
		{
			name: "unowned movie",
			req:  ApplyRequest{SeasonID: 1, CategoryKey: "best-picture", MovieID: 777, Result: contracts.AwardWin},
			kind: contracts.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Apply(ctx, commissioner(), tt.req)
			require.Error(t, err)
			assert.True(t, contracts.IsKind(err, tt.kind),
				"kind = %v, want %v", contracts.KindOf(err), tt.kind)
		})
	}
}

func TestService_ApplyRequiresCommissioner(t *testing.T) {
	svc, ownerships, _ := newTestService()
	ctx := context.Background()

	ownerships.rows = append(ownerships.rows, contracts.MovieOwnership{
		ID: 1, LeagueID: 1, SeasonID: 1, StudioID: 9, MovieID: 42,
	})

	member := authz.Actor{
		UserID:    2,
		LeagueID:  1,
		Roles:     []string{authz.RoleMember},
		StudioIDs: []contracts.StudioID{9},
	}
	_, err := svc.Apply(ctx, member, ApplyRequest{
		SeasonID: 1, CategoryKey: "best-picture", MovieID: 42, Result: contracts.AwardWin,
	})
	assert.True(t, contracts.IsKind(err, contracts.KindForbidden))
}

func TestService_ApplyCreditsCurrentOwner(t *testing.T) {
	svc, ownerships, _ := newTestService()
	ctx := context.Background()

	retired := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	ownerships.rows = append(ownerships.rows,
		contracts.MovieOwnership{ID: 1, LeagueID: 1, SeasonID: 1, StudioID: 9, MovieID: 42, RetiredAt: &retired},
		contracts.MovieOwnership{ID: 2, LeagueID: 1, SeasonID: 1, StudioID: 11, MovieID: 43},
	)

	// Movie 42's only ownership is retired: nobody to credit
	_, err := svc.Apply(ctx, commissioner(), ApplyRequest{
		SeasonID: 1, CategoryKey: "best-picture", MovieID: 42, Result: contracts.AwardWin,
	})
	assert.True(t, contracts.IsKind(err, contracts.KindNotFound))

	// Movie 43's active owner gets the points
	bonus, err := svc.Apply(ctx, commissioner(), ApplyRequest{
		SeasonID: 1, CategoryKey: "best-picture", MovieID: 43, Result: contracts.AwardWin,
	})
	require.NoError(t, err)
	assert.Equal(t, contracts.StudioID(11), bonus.StudioID)
}
