package controller

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/oldman-gg/Sleeper-Sheets/ledger"
	"github.com/oldman-gg/Sleeper-Sheets/model"
	"github.com/oldman-gg/Sleeper-Sheets/sheets"
	"github.com/oldman-gg/Sleeper-Sheets/sleeper"
)

// ErrSyncInProgress is returned when a sync is requested while another one is
// still running. Only one sync runs at a time.
var ErrSyncInProgress = errors.New("a sync is already running")

// C encapsulates the aggregation pipelines without worrying about any web layers
type C interface {
	// SyncAll runs every pipeline in order: season sheets, league records,
	// victory margins, weekly high scorers. Publish failures abort the sync.
	SyncAll(ctx context.Context) error
	SyncSeasons(ctx context.Context) error
	SyncMargins(ctx context.Context) error
	SyncHighScorers(ctx context.Context) error
	// LastSync reports when the most recent sync ran and how it ended.
	LastSync() model.SyncStatus
	// LeagueRecord reports the best season total found by the most recent
	// season sync. The zero value means no sync has computed one yet.
	LeagueRecord() model.LeagueRecord
	RunPeriodicSync(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup)
}

type controller struct {
	clock       clock.Clock
	sleeper     sleeper.Client
	publisher   sheets.Publisher
	margins     ledger.Ledger
	scorers     ledger.Ledger
	leagues     []model.League
	playersFile string

	runMu sync.Mutex

	statusMu sync.Mutex
	status   model.SyncStatus
	record   model.LeagueRecord
}

// New wires up a controller. The margin and high-scorer pipelines keep
// independent ledgers because they have independent stop points.
func New(clock clock.Clock, sleeper sleeper.Client, publisher sheets.Publisher,
	margins, scorers ledger.Ledger, leagues []model.League, playersFile string) (C, error) {
	c := &controller{
		clock:       clock,
		sleeper:     sleeper,
		publisher:   publisher,
		margins:     margins,
		scorers:     scorers,
		leagues:     leagues,
		playersFile: playersFile,
	}
	return c, nil
}

func (c *controller) SyncAll(ctx context.Context) error {
	if !c.runMu.TryLock() {
		return ErrSyncInProgress
	}
	defer c.runMu.Unlock()

	start := c.clock.Now().UTC()
	c.setStatus(model.SyncStatus{Started: start})
	log.Printf("sync starting at %v", start.Format(time.DateTime))

	err := c.syncAll(ctx)

	status := model.SyncStatus{Started: start, Finished: c.clock.Now().UTC()}
	if err != nil {
		status.Error = err.Error()
		log.Printf("sync failed: %v", err)
	} else {
		log.Printf("sync finished, took %v", status.Finished.Sub(start))
	}
	c.setStatus(status)
	return err
}

func (c *controller) syncAll(ctx context.Context) error {
	if err := c.SyncSeasons(ctx); err != nil {
		return err
	}
	if err := c.SyncMargins(ctx); err != nil {
		return err
	}
	return c.SyncHighScorers(ctx)
}

func (c *controller) LastSync() model.SyncStatus {
	c.statusMu.Lock()
	defer c.statusMu.Unlock()
	return c.status
}

func (c *controller) setStatus(s model.SyncStatus) {
	c.statusMu.Lock()
	defer c.statusMu.Unlock()
	c.status = s
}

func (c *controller) LeagueRecord() model.LeagueRecord {
	c.statusMu.Lock()
	defer c.statusMu.Unlock()
	return c.record
}

func (c *controller) setLeagueRecord(r model.LeagueRecord) {
	c.statusMu.Lock()
	defer c.statusMu.Unlock()
	c.record = r
}

func (c *controller) RunPeriodicSync(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	defer wg.Done()

	// The first sync happens right away, later ones on the ticker.
	c.runSync()

	ticker := time.NewTicker(frequency)
	defer ticker.Stop()

	for {
		select {
		case <-shutdown:
			return
		case <-ticker.C:
			c.runSync()
		}
	}
}

func (c *controller) runSync() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	if err := c.SyncAll(ctx); err != nil {
		log.Printf("%v", err)
	}
}

// The fetch helpers degrade failures to empty results. A failed call means
// "no data for this slice"; the pipelines decide whether that stops them.

func (c *controller) fetchUsers(l model.League) []model.User {
	users, err := c.sleeper.GetUsers(l.ID)
	if err != nil {
		log.Printf("error fetching users for league year %d: %v", l.Year, err)
		return nil
	}
	return users
}

func (c *controller) fetchRosters(l model.League) []model.Roster {
	rosters, err := c.sleeper.GetRosters(l.ID)
	if err != nil {
		log.Printf("error fetching rosters for league year %d: %v", l.Year, err)
		return nil
	}
	return rosters
}

func (c *controller) fetchMatchups(l model.League, week int) []model.Matchup {
	matchups, err := c.sleeper.GetMatchups(l.ID, week)
	if err != nil {
		log.Printf("error fetching matchups for league year %d, week %d: %v", l.Year, week, err)
		return nil
	}
	return matchups
}

// playerDirectory fetches the global player directory, fetched once per sync
// and shared across all weeks and leagues. When the fetch fails, the local
// players file (a cached copy of the same payload) is the fallback.
func (c *controller) playerDirectory() map[string]model.Player {
	players, err := c.sleeper.LoadPlayers()
	if err == nil {
		log.Printf("fetched player directory with %d players", len(players))
		return players
	}

	log.Printf("error fetching player directory: %v", err)
	return c.loadPlayersFromFile()
}

func (c *controller) loadPlayersFromFile() map[string]model.Player {
	if c.playersFile == "" {
		return nil
	}

	b, err := os.ReadFile(c.playersFile)
	if err != nil {
		log.Printf("error reading players file %s: %v", c.playersFile, err)
		return nil
	}

	var parsed map[string]struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := json.Unmarshal(b, &parsed); err != nil {
		log.Printf("error parsing players file %s: %v", c.playersFile, err)
		return nil
	}

	players := make(map[string]model.Player, len(parsed))
	for id, p := range parsed {
		players[id] = model.Player{ID: id, FirstName: p.FirstName, LastName: p.LastName}
	}
	log.Printf("loaded %d players from %s", len(players), c.playersFile)
	return players
}
