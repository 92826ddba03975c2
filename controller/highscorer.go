package controller

import (
	"context"
	"fmt"
	"log"

	"github.com/oldman-gg/Sleeper-Sheets/model"
)

const highScorerSheet = "Most Points Generated by Rostered Player All-Time"

// SyncHighScorers finds the single highest-scoring starter performance of
// each unprocessed week and appends it to the all-time tab. This destination
// is append-only; there is no rewrite path.
func (c *controller) SyncHighScorers(ctx context.Context) error {
	found, err := c.publisher.HasSheet(ctx, highScorerSheet)
	if err != nil {
		return err
	}
	if !found {
		if err := c.publisher.Append(ctx, highScorerSheet, [][]string{model.HighScorerHeader}); err != nil {
			return fmt.Errorf("error creating %s: %w", highScorerSheet, err)
		}
	}

	players := c.playerDirectory()

	for _, l := range c.leagues {
		if err := c.trackLeagueHighScorers(ctx, l, players); err != nil {
			return err
		}
	}
	return nil
}

func (c *controller) trackLeagueHighScorers(ctx context.Context, l model.League, players map[string]model.Player) error {
	for week := 1; week <= model.WeeksPerSeason; week++ {
		if c.scorers.IsProcessed(l.Year, week) {
			continue
		}

		matchups := c.fetchMatchups(l, week)
		users := c.fetchUsers(l)
		rosters := c.fetchRosters(l)

		rec, found := weekHighScorer(l.Year, week, matchups, users, rosters, players)
		if !found {
			log.Printf("%d week %d has not started or has no data, stopping season", l.Year, week)
			return nil
		}
		// An all-zero week means the games have not been played. The week is
		// deliberately left out of the ledger so it gets another look once
		// scores exist.
		if rec.Points <= 0 {
			log.Printf("%d week %d has no points, stopping season", l.Year, week)
			return nil
		}

		if err := c.publisher.Append(ctx, highScorerSheet, [][]string{rec.SheetRow()}); err != nil {
			return fmt.Errorf("error appending high scorer for %d week %d: %w", l.Year, week, err)
		}
		if err := c.scorers.MarkProcessed(ctx, l.Year, week); err != nil {
			return err
		}
		log.Printf("%d week %d high scorer: %s with %s points for %s",
			l.Year, week, rec.PlayerName, model.FormatPoints(rec.Points), rec.DisplayName)
	}
	return nil
}

// weekHighScorer scans every starter of every matchup and keeps the single
// best performance. Ties keep the first-encountered starter. The second
// return is false when the week has no starter data at all.
func weekHighScorer(year, week int, matchups []model.Matchup, users []model.User,
	rosters []model.Roster, players map[string]model.Player) (model.HighScorerRecord, bool) {

	displayNames := make(map[string]string, len(users))
	for _, u := range users {
		displayNames[u.ID] = u.DisplayName
	}
	rosterToUser := make(map[int]string, len(rosters))
	for _, r := range rosters {
		rosterToUser[r.ID] = r.OwnerID
	}

	var rec model.HighScorerRecord
	found := false
	for _, m := range matchups {
		for _, s := range m.Starters {
			if found && s.Points <= rec.Points {
				continue
			}
			found = true
			rec = model.HighScorerRecord{
				Year:        year,
				Week:        week,
				DisplayName: ownerName(displayNames, rosterToUser, m.RosterID),
				PlayerName:  playerName(players, s.PlayerID),
				Points:      s.Points,
				PlayerID:    s.PlayerID,
			}
		}
	}
	return rec, found
}

func ownerName(displayNames map[string]string, rosterToUser map[int]string, rosterID int) string {
	if name, found := displayNames[rosterToUser[rosterID]]; found {
		return name
	}
	return "Unknown"
}

func playerName(players map[string]model.Player, playerID string) string {
	if p, found := players[playerID]; found {
		return p.FullName()
	}
	return "Unknown Player"
}
