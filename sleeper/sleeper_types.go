package sleeper

import "github.com/oldman-gg/Sleeper-Sheets/model"

// Wire shapes for the sleeper API responses. Only the fields the pipelines
// read are declared; everything else in the payloads is ignored.

type sleeperUser struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

func (u *sleeperUser) toUser() model.User {
	return model.User{
		ID:          u.UserID,
		DisplayName: u.DisplayName,
	}
}

type sleeperRoster struct {
	RosterID int    `json:"roster_id"`
	OwnerID  string `json:"owner_id"`
}

func (r *sleeperRoster) toRoster() model.Roster {
	return model.Roster{
		ID:      r.RosterID,
		OwnerID: r.OwnerID,
	}
}

type sleeperMatchup struct {
	RosterID       int       `json:"roster_id"`
	MatchupID      int       `json:"matchup_id"`
	Points         float64   `json:"points"`
	Starters       []string  `json:"starters"`
	StartersPoints []float64 `json:"starters_points"`
}

// toMatchup zips the index-aligned starters and starters_points arrays into
// StarterScore pairs. If the arrays disagree in length, the extra entries on
// either side are dropped.
func (m *sleeperMatchup) toMatchup() model.Matchup {
	n := len(m.Starters)
	if len(m.StartersPoints) < n {
		n = len(m.StartersPoints)
	}

	starters := make([]model.StarterScore, 0, n)
	for i := 0; i < n; i++ {
		starters = append(starters, model.StarterScore{
			PlayerID: m.Starters[i],
			Points:   m.StartersPoints[i],
		})
	}

	return model.Matchup{
		RosterID:  m.RosterID,
		MatchupID: m.MatchupID,
		Points:    m.Points,
		Starters:  starters,
	}
}

type sleeperPlayer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (p *sleeperPlayer) toPlayer(id string) model.Player {
	return model.Player{
		ID:        id,
		FirstName: p.FirstName,
		LastName:  p.LastName,
	}
}
