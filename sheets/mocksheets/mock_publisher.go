package mocksheets

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type Publisher struct {
	mock.Mock
}

func (p *Publisher) HasSheet(ctx context.Context, title string) (bool, error) {
	args := p.Called(ctx, title)
	return args.Bool(0), args.Error(1)
}

func (p *Publisher) Replace(ctx context.Context, title string, rows [][]string) error {
	args := p.Called(ctx, title, rows)
	return args.Error(0)
}

func (p *Publisher) Append(ctx context.Context, title string, rows [][]string) error {
	args := p.Called(ctx, title, rows)
	return args.Error(0)
}

func (p *Publisher) Read(ctx context.Context, title string) ([][]string, error) {
	args := p.Called(ctx, title)

	var rows [][]string
	if args.Get(0) != nil {
		rows = args.Get(0).([][]string)
	}
	return rows, args.Error(1)
}
