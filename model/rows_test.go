package model

import (
	"reflect"
	"testing"
)

func TestSeasonHeader(t *testing.T) {
	h := SeasonHeader()
	if len(h) != 21 {
		t.Fatalf("expected 21 header columns, got %d", len(h))
	}
	if h[0] != "User ID" || h[1] != "Display Name" {
		t.Errorf("unexpected leading columns: %v", h[:2])
	}
	if h[2] != "Week 1" || h[19] != "Week 18" {
		t.Errorf("unexpected week columns: %s, %s", h[2], h[19])
	}
	if h[20] != "Season Total" {
		t.Errorf("unexpected final column: %s", h[20])
	}
}

func TestSeasonRow_sheetRow(t *testing.T) {
	r := SeasonRow{UserID: "u1", DisplayName: "Team One"}
	r.Weeks[0] = 112.52
	r.Weeks[17] = 98
	r.SeasonTotal = 210.52

	row := r.SheetRow()
	if len(row) != 21 {
		t.Fatalf("expected 21 columns, got %d", len(row))
	}
	if row[2] != "112.52" {
		t.Errorf("expected week 1 to be 112.52, got %s", row[2])
	}
	if row[3] != "0" {
		t.Errorf("expected empty week to be 0, got %s", row[3])
	}
	if row[19] != "98" {
		t.Errorf("expected week 18 to be 98, got %s", row[19])
	}
	if row[20] != "210.52" {
		t.Errorf("expected season total to be 210.52, got %s", row[20])
	}
}

func TestSeasonRow_zeroWeeks(t *testing.T) {
	r := SeasonRow{}
	if r.ZeroWeeks() != WeeksPerSeason {
		t.Errorf("expected all weeks zero, got %d", r.ZeroWeeks())
	}
	r.Weeks[3] = 101.1
	if r.ZeroWeeks() != WeeksPerSeason-1 {
		t.Errorf("expected 17 zero weeks, got %d", r.ZeroWeeks())
	}
}

func TestMarginRecord_sheetRow(t *testing.T) {
	r := MarginRecord{
		Year:         2024,
		Week:         3,
		Winner:       "Puk Nukem",
		Loser:        "No-Bell Prizes",
		WinnerPoints: 100.5,
		LoserPoints:  40.25,
		Margin:       60.25,
	}
	expected := []string{"2024", "3", "Puk Nukem", "No-Bell Prizes", "100.5", "40.25", "60.25"}
	if !reflect.DeepEqual(expected, r.SheetRow()) {
		t.Errorf("row was not as expected: %v", r.SheetRow())
	}
}

func TestHighScorerRecord_sheetRow(t *testing.T) {
	r := HighScorerRecord{
		Year:        2024,
		Week:        1,
		DisplayName: "Jolly Roger",
		PlayerName:  "Jalen Hurts",
		Points:      38.7,
		PlayerID:    "6904",
	}
	expected := []string{"2024", "1", "Jolly Roger", "Jalen Hurts", "38.7", "6904"}
	if !reflect.DeepEqual(expected, r.SheetRow()) {
		t.Errorf("row was not as expected: %v", r.SheetRow())
	}
}

func TestPlayerFullName(t *testing.T) {
	tests := []struct {
		first, last, expected string
	}{
		{first: "Jalen", last: "Hurts", expected: "Jalen Hurts"},
		{first: "", last: "Kelce", expected: "Kelce"},
		{first: "", last: "", expected: "Unknown Player"},
	}
	for _, tc := range tests {
		p := Player{FirstName: tc.first, LastName: tc.last}
		if got := p.FullName(); got != tc.expected {
			t.Errorf("FullName(%q, %q) = %q, expected %q", tc.first, tc.last, got, tc.expected)
		}
	}
}
