package controller

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strconv"

	"github.com/oldman-gg/Sleeper-Sheets/model"
	"github.com/oldman-gg/Sleeper-Sheets/sheets"
)

const (
	largestMarginSheet  = "Largest Margin"
	smallestMarginSheet = "Smallest Margin"
)

// SyncMargins derives each week's largest and smallest victory margins. The
// publish mode is decided once up front: if either destination tab is missing
// the run is a full backfill (ledger bypassed, both tabs rewritten),
// otherwise only unseen (year, week) rows are appended.
func (c *controller) SyncMargins(ctx context.Context) error {
	haveLargest, err := c.publisher.HasSheet(ctx, largestMarginSheet)
	if err != nil {
		return err
	}
	haveSmallest, err := c.publisher.HasSheet(ctx, smallestMarginSheet)
	if err != nil {
		return err
	}

	mode := sheets.ModeAppend
	if !haveLargest || !haveSmallest {
		mode = sheets.ModeReplace
	}
	log.Printf("margin destinations publish mode: %v", mode)

	var largest, smallest []model.MarginRecord
	for _, l := range c.leagues {
		lg, sm, err := c.analyzeLeagueMargins(ctx, l, mode == sheets.ModeReplace)
		if err != nil {
			return err
		}
		largest = append(largest, lg...)
		smallest = append(smallest, sm...)
	}

	sortMargins(largest)
	sortMargins(smallest)

	if err := c.publishMargins(ctx, largestMarginSheet, mode, largest); err != nil {
		return err
	}
	return c.publishMargins(ctx, smallestMarginSheet, mode, smallest)
}

func (c *controller) analyzeLeagueMargins(ctx context.Context, l model.League, backfill bool) (largest, smallest []model.MarginRecord, err error) {
	names := c.rosterDisplayNames(l)
	if len(names) == 0 {
		log.Printf("no roster data available for %d, skipping margins", l.Year)
		return nil, nil, nil
	}

	for week := 1; week <= model.WeeksPerSeason; week++ {
		if !backfill && c.margins.IsProcessed(l.Year, week) {
			continue
		}

		pairs := pairMatchups(c.fetchMatchups(l, week))
		if len(pairs) == 0 {
			log.Printf("no matchup pairs for %d week %d, skipping", l.Year, week)
			continue
		}

		if hasUnplayedPair(pairs) {
			// A 0-0 pairing means the week has not been played yet. The week
			// is still recorded in the ledger so finished seasons do not get
			// refetched forever.
			if err := c.margins.MarkProcessed(ctx, l.Year, week); err != nil {
				return nil, nil, err
			}
			log.Printf("%d week %d has not been played, stopping season", l.Year, week)
			break
		}

		lg, sm := reduceMargins(l.Year, week, pairs, names)
		largest = append(largest, lg)
		smallest = append(smallest, sm)

		if err := c.margins.MarkProcessed(ctx, l.Year, week); err != nil {
			return nil, nil, err
		}
	}
	return largest, smallest, nil
}

// rosterDisplayNames resolves roster ids to their owners' display names.
func (c *controller) rosterDisplayNames(l model.League) map[int]string {
	users := c.fetchUsers(l)
	rosters := c.fetchRosters(l)
	if len(users) == 0 || len(rosters) == 0 {
		return nil
	}

	displayNames := make(map[string]string, len(users))
	for _, u := range users {
		displayNames[u.ID] = u.DisplayName
	}

	names := make(map[int]string, len(rosters))
	for _, r := range rosters {
		if name, found := displayNames[r.OwnerID]; found {
			names[r.ID] = name
		}
	}
	return names
}

// pairMatchups groups a week's matchups into head-to-head pairs, in the order
// the pairs were first encountered. Groups that are not exactly two sides
// (byes, malformed data) are discarded.
func pairMatchups(matchups []model.Matchup) [][2]model.Matchup {
	groups := make(map[int][]model.Matchup)
	order := make([]int, 0, len(matchups)/2)
	for _, m := range matchups {
		if _, found := groups[m.MatchupID]; !found {
			order = append(order, m.MatchupID)
		}
		groups[m.MatchupID] = append(groups[m.MatchupID], m)
	}

	pairs := make([][2]model.Matchup, 0, len(order))
	for _, id := range order {
		g := groups[id]
		if len(g) != 2 {
			continue
		}
		pairs = append(pairs, [2]model.Matchup{g[0], g[1]})
	}
	return pairs
}

func hasUnplayedPair(pairs [][2]model.Matchup) bool {
	for _, p := range pairs {
		if p[0].Points == 0 && p[1].Points == 0 {
			return true
		}
	}
	return false
}

// reduceMargins folds a week's pairs down to its extreme margins. Ties on
// margin keep the first-encountered pairing.
func reduceMargins(year, week int, pairs [][2]model.Matchup, names map[int]string) (largest, smallest model.MarginRecord) {
	for i, p := range pairs {
		rec := marginRecord(year, week, p, names)
		if i == 0 {
			largest, smallest = rec, rec
			continue
		}
		if rec.Margin > largest.Margin {
			largest = rec
		}
		if rec.Margin < smallest.Margin {
			smallest = rec
		}
	}
	return largest, smallest
}

func marginRecord(year, week int, p [2]model.Matchup, names map[int]string) model.MarginRecord {
	winner, loser := p[0], p[1]
	// Ties go to the first-listed side.
	if loser.Points > winner.Points {
		winner, loser = loser, winner
	}
	return model.MarginRecord{
		Year:         year,
		Week:         week,
		Winner:       rosterName(names, winner.RosterID),
		Loser:        rosterName(names, loser.RosterID),
		WinnerPoints: winner.Points,
		LoserPoints:  loser.Points,
		Margin:       winner.Points - loser.Points,
	}
}

func rosterName(names map[int]string, rosterID int) string {
	if name, found := names[rosterID]; found {
		return name
	}
	return "Unknown"
}

func sortMargins(records []model.MarginRecord) {
	slices.SortFunc(records, func(a, b model.MarginRecord) int {
		if a.Year != b.Year {
			return a.Year - b.Year
		}
		return a.Week - b.Week
	})
}

func (c *controller) publishMargins(ctx context.Context, title string, mode sheets.PublishMode, records []model.MarginRecord) error {
	if mode == sheets.ModeReplace {
		rows := make([][]string, 0, len(records)+1)
		rows = append(rows, model.MarginHeader)
		for i := range records {
			rows = append(rows, records[i].SheetRow())
		}
		if err := c.publisher.Replace(ctx, title, rows); err != nil {
			return fmt.Errorf("error rewriting %s: %w", title, err)
		}
		log.Printf("rewrote %s with %d records", title, len(records))
		return nil
	}

	// The ledger says what this process has derived before, the destination
	// says what actually got published. Cross-checking the destination keeps
	// a crash between derive and publish from turning into duplicate rows.
	existing, err := c.publisher.Read(ctx, title)
	if err != nil {
		return fmt.Errorf("error reading current contents of %s: %w", title, err)
	}
	seen := publishedWeeks(existing)

	rows := make([][]string, 0, len(records))
	for i := range records {
		if _, found := seen[fmt.Sprintf("%d,%d", records[i].Year, records[i].Week)]; found {
			continue
		}
		rows = append(rows, records[i].SheetRow())
	}
	if len(rows) == 0 {
		log.Printf("no new records for %s", title)
		return nil
	}

	if err := c.publisher.Append(ctx, title, rows); err != nil {
		return fmt.Errorf("error appending to %s: %w", title, err)
	}
	log.Printf("appended %d new records to %s", len(rows), title)
	return nil
}

// publishedWeeks extracts the (year, week) pairs already present in a
// destination. Header rows and anything unparsable are ignored.
func publishedWeeks(rows [][]string) map[string]struct{} {
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		year, err := strconv.Atoi(row[0])
		if err != nil {
			continue
		}
		week, err := strconv.Atoi(row[1])
		if err != nil {
			continue
		}
		seen[fmt.Sprintf("%d,%d", year, week)] = struct{}{}
	}
	return seen
}
