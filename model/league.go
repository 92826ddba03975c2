package model

// League is one configured Sleeper league for one season. The ID is the
// opaque league identifier Sleeper assigns, Year is the season it covers.
type League struct {
	Year int
	ID   string
}

type User struct {
	ID          string
	DisplayName string
}

type Roster struct {
	ID      int
	OwnerID string
}

// StarterScore is one starter's scoring line for a week. The Sleeper API
// reports starters and their points as two index-aligned arrays; they are
// zipped into this pair shape at ingestion so nothing downstream has to keep
// the indexes straight.
type StarterScore struct {
	PlayerID string
	Points   float64
}

// Matchup is one roster's result for one week. Two matchups sharing a
// MatchupID within a week form a head-to-head pair. Bye weeks show up as
// groups of one and are ignored by the margin pipeline.
type Matchup struct {
	RosterID  int
	MatchupID int
	Points    float64
	Starters  []StarterScore
}
