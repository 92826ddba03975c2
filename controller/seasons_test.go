package controller

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/oldman-gg/Sleeper-Sheets/model"
	"github.com/oldman-gg/Sleeper-Sheets/sheets/mocksheets"
	"github.com/oldman-gg/Sleeper-Sheets/sleeper"
	"github.com/oldman-gg/Sleeper-Sheets/testutils"
	"github.com/stretchr/testify/mock"
)

// expectedSeasonRow builds a season sheet row with points in the given weeks
// and zeros everywhere else.
func expectedSeasonRow(userID, displayName string, weeks map[int]float64) []string {
	row := []string{userID, displayName}
	total := 0.0
	for week := 1; week <= model.WeeksPerSeason; week++ {
		row = append(row, model.FormatPoints(weeks[week]))
		total += weeks[week]
	}
	return append(row, model.FormatPoints(total))
}

func TestSyncSeasons(t *testing.T) {
	tc := newTestController(t, []model.League{{Year: 2024, ID: testutils.TestLeagueID}})

	if err := tc.ctrl.SyncSeasons(context.Background()); err != nil {
		t.Fatalf("error should have been nil, was: %v", err)
	}

	winnerRow := []string{"Weekly Winner", "", "Jolly Roger"}
	for week := 2; week <= model.WeeksPerSeason; week++ {
		winnerRow = append(winnerRow, "")
	}
	winnerRow = append(winnerRow, "Jolly Roger")

	expected := [][]string{
		model.SeasonHeader(),
		expectedSeasonRow("300638784440004608", "Puk Nukem", map[int]float64{1: 112.5}),
		expectedSeasonRow("362744067425296384", "No-Bell Prizes", map[int]float64{1: 98.3}),
		expectedSeasonRow("300368913101774848", "gee17", map[int]float64{1: 88}),
		expectedSeasonRow("325106323354046464", "Jolly Roger", map[int]float64{1: 140.22}),
		winnerRow,
	}
	if !reflect.DeepEqual(expected, tc.fakeSheets.Rows("2024 Season - Weekly Points")) {
		t.Errorf("season sheet was not as expected: %v", tc.fakeSheets.Rows("2024 Season - Weekly Points"))
	}

	expectedRecords := [][]string{
		{"Year", "Display Name", "Season Total"},
		{"2024", "Jolly Roger", "140.22"},
	}
	if !reflect.DeepEqual(expectedRecords, tc.fakeSheets.Rows("League Records")) {
		t.Errorf("league records were not as expected: %v", tc.fakeSheets.Rows("League Records"))
	}

	expectedRecord := model.LeagueRecord{Year: 2024, DisplayName: "Jolly Roger", SeasonTotal: 140.22}
	if tc.ctrl.LeagueRecord() != expectedRecord {
		t.Errorf("league record was not as expected: %+v", tc.ctrl.LeagueRecord())
	}
}

// setTwoUserLeague primes the fake sleeper with a two-user league where Alice
// scores in weeks 1-13 and Bob only in weeks 1-12, leaving Bob with six
// scoreless weeks.
func setTwoUserLeague(fakeSleeper *testutils.FakeSleeperServer, leagueID string) {
	fakeSleeper.SetUsers(leagueID, `[
		{"user_id": "u1", "display_name": "Alice"},
		{"user_id": "u2", "display_name": "Bob"}
	]`)
	fakeSleeper.SetRosters(leagueID, `[
		{"roster_id": 1, "owner_id": "u1"},
		{"roster_id": 2, "owner_id": "u2"}
	]`)
	for week := 1; week <= 12; week++ {
		fakeSleeper.SetMatchups(leagueID, week, `[
			{"roster_id": 1, "matchup_id": 1, "points": 100.5},
			{"roster_id": 2, "matchup_id": 1, "points": 50.25}
		]`)
	}
	fakeSleeper.SetMatchups(leagueID, 13, `[
		{"roster_id": 1, "matchup_id": 1, "points": 100.5}
	]`)
}

func TestSyncSeasons_pastSeasonDropsInactiveUsers(t *testing.T) {
	tc := newTestController(t, []model.League{{Year: 2023, ID: "L2023"}})
	setTwoUserLeague(tc.fakeSleeper, "L2023")

	if err := tc.ctrl.SyncSeasons(context.Background()); err != nil {
		t.Fatalf("error should have been nil, was: %v", err)
	}

	rows := tc.fakeSheets.Rows("2023 Season - Weekly Points")
	// Header, Alice, weekly winner. Bob's six scoreless weeks drop him.
	if len(rows) != 3 {
		t.Fatalf("wrong number of rows, expected 3, got %d: %v", len(rows), rows)
	}
	if rows[1][1] != "Alice" {
		t.Errorf("expected only Alice to survive the filter, got %v", rows[1])
	}

	expectedRecords := [][]string{
		{"Year", "Display Name", "Season Total"},
		{"2023", "Alice", "1306.5"},
	}
	if !reflect.DeepEqual(expectedRecords, tc.fakeSheets.Rows("League Records")) {
		t.Errorf("league records were not as expected: %v", tc.fakeSheets.Rows("League Records"))
	}
}

func TestSyncSeasons_currentSeasonKeepsInactiveUsers(t *testing.T) {
	tc := newTestController(t, []model.League{{Year: 2024, ID: "L2024"}})
	setTwoUserLeague(tc.fakeSleeper, "L2024")

	if err := tc.ctrl.SyncSeasons(context.Background()); err != nil {
		t.Fatalf("error should have been nil, was: %v", err)
	}

	rows := tc.fakeSheets.Rows("2024 Season - Weekly Points")
	if len(rows) != 4 {
		t.Fatalf("wrong number of rows, expected 4, got %d: %v", len(rows), rows)
	}
	if rows[2][1] != "Bob" {
		t.Errorf("expected Bob to stay on the current season sheet, got %v", rows[2])
	}
}

func TestSyncSeasons_skipsLeaguesWithoutData(t *testing.T) {
	tc := newTestController(t, []model.League{
		{Year: 2022, ID: "no-such-league"},
		{Year: 2024, ID: testutils.TestLeagueID},
	})

	if err := tc.ctrl.SyncSeasons(context.Background()); err != nil {
		t.Fatalf("error should have been nil, was: %v", err)
	}

	if tc.fakeSheets.HasTab("2022 Season - Weekly Points") {
		t.Error("no sheet should have been published for a league without data")
	}
	if !tc.fakeSheets.HasTab("2024 Season - Weekly Points") {
		t.Error("the league with data should still have been published")
	}
}

func TestSyncSeasons_publishFailureAborts(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	pub := &mocksheets.Publisher{}
	pub.On("Replace", mock.Anything, "2024 Season - Weekly Points", mock.Anything).
		Return(errors.New("this error"))

	mockClock := clock.NewMock()
	mockClock.Set(time.Date(2024, 10, 15, 9, 0, 0, 0, time.UTC))

	ctrl, err := New(mockClock, sleeper.NewForTest(fakeSleeper.URL()), pub,
		nil, nil, []model.League{{Year: 2024, ID: testutils.TestLeagueID}}, "")
	if err != nil {
		t.Fatalf("error creating controller: %v", err)
	}

	err = ctrl.SyncSeasons(context.Background())
	if err == nil {
		t.Fatal("error should not have been nil")
	}
	if !strings.Contains(err.Error(), "this error") {
		t.Errorf("error was not as expected: %v", err)
	}
	pub.AssertNotCalled(t, "Replace", mock.Anything, "League Records", mock.Anything)
}

func TestWeeklyWinnerRow(t *testing.T) {
	rows := []model.SeasonRow{
		{DisplayName: "Alice", SeasonTotal: 150},
		{DisplayName: "Bob", SeasonTotal: 180},
	}
	rows[0].Weeks[0] = 100
	rows[0].Weeks[1] = 50
	rows[1].Weeks[0] = 90
	rows[1].Weeks[1] = 90

	row := weeklyWinnerRow(rows)

	if len(row) != model.WeeksPerSeason+3 {
		t.Fatalf("wrong row length: %d", len(row))
	}
	if row[0] != "Weekly Winner" || row[1] != "" {
		t.Errorf("label cells were not as expected: %v", row[:2])
	}
	if row[2] != "Alice" {
		t.Errorf("week 1 winner should have been Alice, was %q", row[2])
	}
	if row[3] != "Bob" {
		t.Errorf("week 2 winner should have been Bob, was %q", row[3])
	}
	for week := 3; week <= model.WeeksPerSeason; week++ {
		if row[week+1] != "" {
			t.Errorf("week %d should have been blank, was %q", week, row[week+1])
		}
	}
	if row[len(row)-1] != "Bob" {
		t.Errorf("season leader should have been Bob, was %q", row[len(row)-1])
	}
}
