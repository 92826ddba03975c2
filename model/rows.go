package model

import (
	"fmt"
	"strconv"
)

// WeeksPerSeason is the number of scoring weeks in an NFL fantasy season.
const WeeksPerSeason = 18

// SeasonRow is one user's full season record: points for every week plus the
// season total. Weeks with no reported matchup stay at zero.
type SeasonRow struct {
	UserID      string
	DisplayName string
	Weeks       [WeeksPerSeason]float64
	SeasonTotal float64
}

// ZeroWeeks counts the weeks with exactly zero points. The inactivity filter
// uses it to spot teams that did not play a full season.
func (r *SeasonRow) ZeroWeeks() int {
	n := 0
	for _, p := range r.Weeks {
		if p == 0 {
			n++
		}
	}
	return n
}

func (r *SeasonRow) SheetRow() []string {
	row := make([]string, 0, WeeksPerSeason+3)
	row = append(row, r.UserID, r.DisplayName)
	for _, p := range r.Weeks {
		row = append(row, FormatPoints(p))
	}
	return append(row, FormatPoints(r.SeasonTotal))
}

// SeasonHeader returns the header row for a season sheet:
// User ID, Display Name, Week 1..18, Season Total.
func SeasonHeader() []string {
	row := make([]string, 0, WeeksPerSeason+3)
	row = append(row, "User ID", "Display Name")
	for week := 1; week <= WeeksPerSeason; week++ {
		row = append(row, fmt.Sprintf("Week %d", week))
	}
	return append(row, "Season Total")
}

// MarginRecord is one week's extreme victory margin, either the largest or the
// smallest depending on which list it lives in.
type MarginRecord struct {
	Year         int
	Week         int
	Winner       string
	Loser        string
	WinnerPoints float64
	LoserPoints  float64
	Margin       float64
}

var MarginHeader = []string{"Year", "Week", "Winner", "Loser", "Winner Points", "Loser Points", "Margin"}

func (r *MarginRecord) SheetRow() []string {
	return []string{
		strconv.Itoa(r.Year),
		strconv.Itoa(r.Week),
		r.Winner,
		r.Loser,
		FormatPoints(r.WinnerPoints),
		FormatPoints(r.LoserPoints),
		FormatPoints(r.Margin),
	}
}

// LeagueRecord is the best season total across every configured season. It is
// recomputed from scratch on each season sync.
type LeagueRecord struct {
	Year        int     `json:"year"`
	DisplayName string  `json:"display_name"`
	SeasonTotal float64 `json:"season_total"`
}

// HighScorerRecord is the single highest-scoring starter performance of one week.
type HighScorerRecord struct {
	Year        int
	Week        int
	DisplayName string
	PlayerName  string
	Points      float64
	PlayerID    string
}

var HighScorerHeader = []string{"Year", "Week", "Display Name", "Player Name", "Points", "Player ID"}

func (r *HighScorerRecord) SheetRow() []string {
	return []string{
		strconv.Itoa(r.Year),
		strconv.Itoa(r.Week),
		r.DisplayName,
		r.PlayerName,
		FormatPoints(r.Points),
		r.PlayerID,
	}
}

// FormatPoints renders a point value the way the sheets expect: no trailing
// zeros, no exponent form.
func FormatPoints(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
