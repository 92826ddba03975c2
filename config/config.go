// Package config loads the JSON configuration document that drives a run:
// which spreadsheet to publish to, how to authenticate, and which league id
// belongs to which season.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/oldman-gg/Sleeper-Sheets/model"
)

const yearOnlyFormat = "2006"

type Config struct {
	SpreadsheetID        string            `json:"spreadsheet_id"`
	ServiceAccountFile   string            `json:"service_account_file"`
	PlayersFile          string            `json:"players_file"`
	LeagueIDs            map[string]string `json:"league_ids"`
	MarginLedgerFile     string            `json:"margin_ledger_file"`
	HighScorerLedgerFile string            `json:"high_scorer_ledger_file"`
}

// Load reads and validates the config file. Any problem here is fatal to the
// run, before a single remote call is made.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var c Config
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if c.SpreadsheetID == "" {
		return fmt.Errorf("config is missing required key: spreadsheet_id")
	}
	if c.ServiceAccountFile == "" {
		return fmt.Errorf("config is missing required key: service_account_file")
	}
	if c.MarginLedgerFile == "" {
		return fmt.Errorf("config is missing required key: margin_ledger_file")
	}
	if c.HighScorerLedgerFile == "" {
		return fmt.Errorf("config is missing required key: high_scorer_ledger_file")
	}
	if len(c.LeagueIDs) == 0 {
		return fmt.Errorf("config is missing required key: league_ids")
	}
	for year := range c.LeagueIDs {
		if _, err := time.Parse(yearOnlyFormat, year); err != nil {
			return fmt.Errorf("league_ids year must be in the YYYY format, got: %s", year)
		}
	}
	return nil
}

// Leagues returns the configured leagues sorted by year ascending. Years
// mapped to an empty league id are skipped, which is how a season is left out
// of a run without deleting its entry.
func (c *Config) Leagues() []model.League {
	leagues := make([]model.League, 0, len(c.LeagueIDs))
	for year, id := range c.LeagueIDs {
		if id == "" {
			continue
		}
		y, err := time.Parse(yearOnlyFormat, year)
		if err != nil {
			// validate() already rejected bad years
			continue
		}
		leagues = append(leagues, model.League{Year: y.Year(), ID: id})
	}
	slices.SortFunc(leagues, func(a, b model.League) int {
		return a.Year - b.Year
	})
	return leagues
}
