package sleeper

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/oldman-gg/Sleeper-Sheets/model"
)

const SleeperURL = "https://api.sleeper.app"

// Client wraps the read-only Sleeper endpoints the pipelines depend on.
// Errors are returned as-is; callers decide whether an empty result is an
// acceptable degradation.
type Client interface {
	GetUsers(leagueID string) ([]model.User, error)
	GetRosters(leagueID string) ([]model.Roster, error)
	GetMatchups(leagueID string, week int) ([]model.Matchup, error)
	LoadPlayers() (map[string]model.Player, error)
}

type client struct {
	url        string
	httpClient *http.Client
}

func New() (Client, error) {
	return newForURL(SleeperURL), nil
}

// NewForTest returns a client pointed at a test server instead of the real
// sleeper API service.
func NewForTest(url string) Client {
	return newForURL(url)
}

func newForURL(url string) *client {
	return &client{
		url: url,
		httpClient: &http.Client{
			Timeout: 1 * time.Minute,
		},
	}
}

func (c *client) GetUsers(leagueID string) ([]model.User, error) {
	var parsed []sleeperUser
	if err := c.get(fmt.Sprintf("/v1/league/%s/users", leagueID), &parsed); err != nil {
		return nil, err
	}

	result := make([]model.User, 0, len(parsed))
	for _, u := range parsed {
		result = append(result, u.toUser())
	}
	return result, nil
}

func (c *client) GetRosters(leagueID string) ([]model.Roster, error) {
	var parsed []sleeperRoster
	if err := c.get(fmt.Sprintf("/v1/league/%s/rosters", leagueID), &parsed); err != nil {
		return nil, err
	}

	result := make([]model.Roster, 0, len(parsed))
	for _, r := range parsed {
		result = append(result, r.toRoster())
	}
	return result, nil
}

func (c *client) GetMatchups(leagueID string, week int) ([]model.Matchup, error) {
	var parsed []sleeperMatchup
	if err := c.get(fmt.Sprintf("/v1/league/%s/matchups/%d", leagueID, week), &parsed); err != nil {
		return nil, err
	}

	result := make([]model.Matchup, 0, len(parsed))
	for _, m := range parsed {
		result = append(result, m.toMatchup())
	}
	return result, nil
}

func (c *client) LoadPlayers() (map[string]model.Player, error) {
	var parsed map[string]sleeperPlayer
	if err := c.get("/v1/players/nfl", &parsed); err != nil {
		return nil, err
	}

	result := make(map[string]model.Player, len(parsed))
	for id, p := range parsed {
		result[id] = p.toPlayer(id)
	}
	return result, nil
}

func (c *client) get(path string, v any) error {
	req, err := http.NewRequest(http.MethodGet, c.url+path, nil)
	if err != nil {
		return fmt.Errorf("error creating http request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("error parsing response from sleeper: %w", err)
	}
	return nil
}
