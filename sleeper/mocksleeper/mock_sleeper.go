package mocksleeper

import (
	"github.com/oldman-gg/Sleeper-Sheets/model"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func (c *Client) GetUsers(leagueID string) ([]model.User, error) {
	args := c.Called(leagueID)

	var users []model.User
	if args.Get(0) != nil {
		users = args.Get(0).([]model.User)
	}
	return users, args.Error(1)
}

func (c *Client) GetRosters(leagueID string) ([]model.Roster, error) {
	args := c.Called(leagueID)

	var rosters []model.Roster
	if args.Get(0) != nil {
		rosters = args.Get(0).([]model.Roster)
	}
	return rosters, args.Error(1)
}

func (c *Client) GetMatchups(leagueID string, week int) ([]model.Matchup, error) {
	args := c.Called(leagueID, week)

	var matchups []model.Matchup
	if args.Get(0) != nil {
		matchups = args.Get(0).([]model.Matchup)
	}
	return matchups, args.Error(1)
}

func (c *Client) LoadPlayers() (map[string]model.Player, error) {
	args := c.Called()

	var players map[string]model.Player
	if args.Get(0) != nil {
		players = args.Get(0).(map[string]model.Player)
	}
	return players, args.Error(1)
}
