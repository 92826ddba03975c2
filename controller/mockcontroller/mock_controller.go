package mockcontroller

import (
	"context"
	"sync"
	"time"

	"github.com/oldman-gg/Sleeper-Sheets/model"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) SyncAll(ctx context.Context) error {
	args := c.Called(ctx)
	return args.Error(0)
}

func (c *C) SyncSeasons(ctx context.Context) error {
	args := c.Called(ctx)
	return args.Error(0)
}

func (c *C) SyncMargins(ctx context.Context) error {
	args := c.Called(ctx)
	return args.Error(0)
}

func (c *C) SyncHighScorers(ctx context.Context) error {
	args := c.Called(ctx)
	return args.Error(0)
}

func (c *C) LastSync() model.SyncStatus {
	args := c.Called()
	return args.Get(0).(model.SyncStatus)
}

func (c *C) LeagueRecord() model.LeagueRecord {
	args := c.Called()
	return args.Get(0).(model.LeagueRecord)
}

func (c *C) RunPeriodicSync(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	c.Called(frequency, shutdown, wg)
}
