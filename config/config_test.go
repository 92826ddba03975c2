package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/oldman-gg/Sleeper-Sheets/model"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("error writing config file: %v", err)
	}
	return path
}

func TestLoad_success(t *testing.T) {
	path := writeConfig(t, `{
		"spreadsheet_id": "sheet-123",
		"service_account_file": "creds.json",
		"players_file": "players.json",
		"league_ids": {"2024": "1005178517580746753", "2023": "924039165950484480", "2022": ""},
		"margin_ledger_file": "margins.txt",
		"high_scorer_ledger_file": "scorers.txt"
	}`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("error loading config: %v", err)
	}
	if c.SpreadsheetID != "sheet-123" {
		t.Errorf("unexpected spreadsheet id: %s", c.SpreadsheetID)
	}

	expected := []model.League{
		{Year: 2023, ID: "924039165950484480"},
		{Year: 2024, ID: "1005178517580746753"},
	}
	if !reflect.DeepEqual(expected, c.Leagues()) {
		t.Errorf("leagues were not as expected: %v", c.Leagues())
	}
}

func TestLoad_errors(t *testing.T) {
	tests := map[string]struct {
		contents string
		errMsg   string
	}{
		"not json": {contents: "not json", errMsg: "error parsing config file"},
		"missing spreadsheet_id": {
			contents: `{"service_account_file": "c", "league_ids": {"2024": "1"}, "margin_ledger_file": "m", "high_scorer_ledger_file": "h"}`,
			errMsg:   "config is missing required key: spreadsheet_id",
		},
		"missing ledgers": {
			contents: `{"spreadsheet_id": "s", "service_account_file": "c", "league_ids": {"2024": "1"}}`,
			errMsg:   "config is missing required key: margin_ledger_file",
		},
		"missing league_ids": {
			contents: `{"spreadsheet_id": "s", "service_account_file": "c", "margin_ledger_file": "m", "high_scorer_ledger_file": "h"}`,
			errMsg:   "config is missing required key: league_ids",
		},
		"bad year": {
			contents: `{"spreadsheet_id": "s", "service_account_file": "c", "league_ids": {"24": "1"}, "margin_ledger_file": "m", "high_scorer_ledger_file": "h"}`,
			errMsg:   "league_ids year must be in the YYYY format, got: 24",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.contents))
			if err == nil {
				t.Fatal("expected an error, got nil")
			}
			if len(err.Error()) < len(tc.errMsg) || err.Error()[:len(tc.errMsg)] != tc.errMsg {
				t.Errorf("expected error starting with %q, got %q", tc.errMsg, err.Error())
			}
		})
	}
}

func TestLoad_missingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
