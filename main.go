package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/joho/godotenv"
	"github.com/oldman-gg/Sleeper-Sheets/config"
	"github.com/oldman-gg/Sleeper-Sheets/controller"
	"github.com/oldman-gg/Sleeper-Sheets/ledger"
	"github.com/oldman-gg/Sleeper-Sheets/sheets"
	"github.com/oldman-gg/Sleeper-Sheets/sleeper"
	"github.com/oldman-gg/Sleeper-Sheets/web"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.json"
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	portNum := 3000 // 3000 is the default
	port := os.Getenv("PORT")
	if port != "" {
		portNum, err = strconv.Atoi(port)
		if err != nil {
			log.Fatalf("error parsing port number: %v", err)
		}
	}

	frequency := 24 * time.Hour
	if f := os.Getenv("SYNC_FREQUENCY"); f != "" {
		frequency, err = time.ParseDuration(f)
		if err != nil {
			log.Fatalf("error parsing sync frequency: %v", err)
		}
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		log.Fatalf("ADMIN_PASSWORD must be set")
	}

	ctx := context.Background()
	clock := clock.New()

	sleeperClient, err := sleeper.New()
	if err != nil {
		log.Fatalf("error creating sleeper client: %v", err)
	}

	publisher, err := sheets.New(ctx, cfg.SpreadsheetID, cfg.ServiceAccountFile)
	if err != nil {
		log.Fatalf("error creating sheets publisher: %v", err)
	}

	marginLedger, scorerLedger, err := openLedgers(ctx, cfg, clock)
	if err != nil {
		log.Fatalf("error opening ledgers: %v", err)
	}

	ctrl, err := controller.New(clock, sleeperClient, publisher, marginLedger, scorerLedger, cfg.Leagues(), cfg.PlayersFile)
	if err != nil {
		log.Fatalf("error creating a new controller: %v", err)
	}

	server, err := web.NewServer(portNum, adminPassword, ctrl)
	if err != nil {
		log.Fatalf("error creating new web server: %v", err)
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			log.Printf("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Setup a job that syncs the spreadsheet on a schedule.
	wg.Add(1)
	go ctrl.RunPeriodicSync(frequency, shutdown, wg)

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	log.Printf("server shutdown")
}

// openLedgers picks the ledger backend: postgres when POSTGRES_CONN_STR is
// set, otherwise the flat files named in the config.
func openLedgers(ctx context.Context, cfg *config.Config, clock clock.Clock) (ledger.Ledger, ledger.Ledger, error) {
	if connString := os.Getenv("POSTGRES_CONN_STR"); connString != "" {
		margins, err := ledger.NewPostgres(ctx, connString, "margins", clock)
		if err != nil {
			return nil, nil, err
		}
		scorers, err := ledger.NewPostgres(ctx, connString, "high_scorer", clock)
		if err != nil {
			return nil, nil, err
		}
		return margins, scorers, nil
	}

	margins, err := ledger.NewFile(cfg.MarginLedgerFile)
	if err != nil {
		return nil, nil, err
	}
	scorers, err := ledger.NewFile(cfg.HighScorerLedgerFile)
	if err != nil {
		return nil, nil, err
	}
	return margins, scorers, nil
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
