package contracts

// Opaque identifier types. Accumulators and maps are keyed by these
// instead of display strings, so a studio rename can never split totals.

// LeagueID identifies a league
type LeagueID int64

// SeasonID identifies a season within a league
type SeasonID int64

// StudioID identifies a studio within a league
type StudioID int64

// MovieID identifies a movie in the shared catalog
type MovieID int64

// OwnershipID identifies a single ownership row
type OwnershipID int64

// BonusID identifies an award bonus row
type BonusID int64

// UserID identifies an acting user, resolved by the identity collaborator
type UserID int64
