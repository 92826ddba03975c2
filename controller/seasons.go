package controller

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/oldman-gg/Sleeper-Sheets/model"
)

const leagueRecordsSheet = "League Records"

var leagueRecordsHeader = []string{"Year", "Display Name", "Season Total"}

// maxZeroWeeks is the inactivity threshold: a user with more of their weeks
// at exactly zero is assumed to have abandoned the team and is dropped from
// past-season sheets.
const maxZeroWeeks = 5

func seasonSheet(year int) string {
	return fmt.Sprintf("%d Season - Weekly Points", year)
}

// SyncSeasons rebuilds every season's weekly-points sheet from scratch and
// then rewrites the League Records summary. Season sheets are not
// incremental, a run always replaces them wholesale.
func (c *controller) SyncSeasons(ctx context.Context) error {
	var best *model.SeasonRow
	bestYear := 0

	for _, l := range c.leagues {
		log.Printf("processing %d season data", l.Year)

		rows := c.buildSeasonRows(l)
		if len(rows) == 0 {
			log.Printf("no data available for %d season", l.Year)
			continue
		}

		// The current season is still in progress, so future weeks at zero
		// say nothing about whether a team was abandoned.
		if l.Year != c.clock.Now().Year() {
			rows = filterInactive(rows, l.Year)
		}

		sheetRows := make([][]string, 0, len(rows)+2)
		sheetRows = append(sheetRows, model.SeasonHeader())
		for i := range rows {
			sheetRows = append(sheetRows, rows[i].SheetRow())
		}
		sheetRows = append(sheetRows, weeklyWinnerRow(rows))

		if err := c.publisher.Replace(ctx, seasonSheet(l.Year), sheetRows); err != nil {
			return fmt.Errorf("error publishing season sheet for %d: %w", l.Year, err)
		}
		log.Printf("published %d season sheet with %d users", l.Year, len(rows))

		for i := range rows {
			if best == nil || rows[i].SeasonTotal > best.SeasonTotal {
				best = &rows[i]
				bestYear = l.Year
			}
		}
	}

	if best == nil {
		return nil
	}

	record := model.LeagueRecord{
		Year:        bestYear,
		DisplayName: best.DisplayName,
		SeasonTotal: best.SeasonTotal,
	}
	recordRows := [][]string{
		leagueRecordsHeader,
		{strconv.Itoa(record.Year), record.DisplayName, model.FormatPoints(record.SeasonTotal)},
	}
	if err := c.publisher.Replace(ctx, leagueRecordsSheet, recordRows); err != nil {
		return fmt.Errorf("error publishing league records: %w", err)
	}
	c.setLeagueRecord(record)
	return nil
}

// buildSeasonRows folds a full season of matchups into one row per user, in
// the order the league lists its users. Matchups whose roster has no owner,
// or whose owner is not a league user, are dropped.
func (c *controller) buildSeasonRows(l model.League) []model.SeasonRow {
	users := c.fetchUsers(l)
	rosters := c.fetchRosters(l)
	if len(users) == 0 || len(rosters) == 0 {
		return nil
	}

	rosterToUser := make(map[int]string, len(rosters))
	for _, r := range rosters {
		rosterToUser[r.ID] = r.OwnerID
	}

	rows := make([]model.SeasonRow, len(users))
	index := make(map[string]int, len(users))
	for i, u := range users {
		rows[i] = model.SeasonRow{UserID: u.ID, DisplayName: u.DisplayName}
		index[u.ID] = i
	}

	for week := 1; week <= model.WeeksPerSeason; week++ {
		for _, m := range c.fetchMatchups(l, week) {
			userID, found := rosterToUser[m.RosterID]
			if !found {
				continue
			}
			i, found := index[userID]
			if !found {
				continue
			}
			rows[i].Weeks[week-1] = m.Points
		}
	}

	for i := range rows {
		total := 0.0
		for _, p := range rows[i].Weeks {
			total += p
		}
		rows[i].SeasonTotal = total
	}
	return rows
}

func filterInactive(rows []model.SeasonRow, year int) []model.SeasonRow {
	kept := make([]model.SeasonRow, 0, len(rows))
	for _, r := range rows {
		if r.ZeroWeeks() > maxZeroWeeks {
			log.Printf("dropping %s from the %d season sheet: %d scoreless weeks", r.DisplayName, year, r.ZeroWeeks())
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// weeklyWinnerRow names the top scorer of each week column, and the season
// total leader in the final column. Weeks nobody has scored in stay blank.
func weeklyWinnerRow(rows []model.SeasonRow) []string {
	row := make([]string, 0, model.WeeksPerSeason+3)
	row = append(row, "Weekly Winner", "")

	for week := 0; week < model.WeeksPerSeason; week++ {
		winner := ""
		points := 0.0
		for _, r := range rows {
			if r.Weeks[week] > points {
				points = r.Weeks[week]
				winner = r.DisplayName
			}
		}
		row = append(row, winner)
	}

	leader := ""
	total := 0.0
	for _, r := range rows {
		if r.SeasonTotal > total {
			total = r.SeasonTotal
			leader = r.DisplayName
		}
	}
	return append(row, leader)
}
