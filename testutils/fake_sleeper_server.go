package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"
)

//go:embed sleeperdata
var sleeperdata embed.FS

// TestLeagueID is the league the embedded fixtures describe.
const TestLeagueID = "988738864724430848"

// FakeSleeperServer serves canned sleeper API responses. It starts out primed
// with the embedded fixtures for TestLeagueID (week 1 only) and tests can
// overlay their own bodies with the Set methods. Unknown leagues and weeks
// get an empty array, which matches how sleeper answers for weeks that have
// not been played.
type FakeSleeperServer struct {
	s *httptest.Server

	mu       sync.Mutex
	users    map[string][]byte
	rosters  map[string][]byte
	matchups map[string][]byte
	players  []byte
}

func NewFakeSleeperServer() *FakeSleeperServer {
	f := &FakeSleeperServer{
		users:    make(map[string][]byte),
		rosters:  make(map[string][]byte),
		matchups: make(map[string][]byte),
		players:  readFixture("players.json"),
	}
	f.users[TestLeagueID] = readFixture("users.json")
	f.rosters[TestLeagueID] = readFixture("rosters.json")
	f.matchups[matchupKey(TestLeagueID, 1)] = readFixture("matchups_week1.json")

	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		r.Get("/players/nfl", f.playersHandler)

		r.Route("/league/{leagueID}", func(r chi.Router) {
			r.Get("/users", f.usersHandler)
			r.Get("/rosters", f.rostersHandler)
			r.Get("/matchups/{week}", f.matchupsHandler)
		})
	})

	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeSleeperServer) Close() {
	f.s.Close()
}

func (f *FakeSleeperServer) URL() string {
	return f.s.URL
}

func (f *FakeSleeperServer) SetUsers(leagueID, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[leagueID] = []byte(body)
}

func (f *FakeSleeperServer) SetRosters(leagueID, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rosters[leagueID] = []byte(body)
}

func (f *FakeSleeperServer) SetMatchups(leagueID string, week int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matchups[matchupKey(leagueID, week)] = []byte(body)
}

func (f *FakeSleeperServer) SetPlayers(body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.players = []byte(body)
}

func (f *FakeSleeperServer) usersHandler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	body := f.users[chi.URLParam(r, "leagueID")]
	f.mu.Unlock()
	serve(w, body)
}

func (f *FakeSleeperServer) rostersHandler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	body := f.rosters[chi.URLParam(r, "leagueID")]
	f.mu.Unlock()
	serve(w, body)
}

func (f *FakeSleeperServer) matchupsHandler(w http.ResponseWriter, r *http.Request) {
	key := fmt.Sprintf("%s/%s", chi.URLParam(r, "leagueID"), chi.URLParam(r, "week"))
	f.mu.Lock()
	body := f.matchups[key]
	f.mu.Unlock()
	serve(w, body)
}

func (f *FakeSleeperServer) playersHandler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	body := f.players
	f.mu.Unlock()
	serve(w, body)
}

func serve(w http.ResponseWriter, body []byte) {
	if body == nil {
		body = []byte("[]")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func matchupKey(leagueID string, week int) string {
	return fmt.Sprintf("%s/%d", leagueID, week)
}

func readFixture(name string) []byte {
	b, err := sleeperdata.ReadFile(fmt.Sprintf("sleeperdata/%s", name))
	if err != nil {
		log.Fatalf("error reading sleeperdata/%s: %v", name, err)
	}
	return b
}
