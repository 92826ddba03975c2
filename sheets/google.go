package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

type googlePublisher struct {
	svc           *gsheets.Service
	spreadsheetID string
}

// New builds a publisher for one spreadsheet, authenticated with a service
// account credentials file.
func New(ctx context.Context, spreadsheetID, credentialsFile string) (Publisher, error) {
	svc, err := gsheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gsheets.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("error creating sheets service: %w", err)
	}
	return &googlePublisher{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// NewForTest returns a publisher pointed at a test server instead of the real
// sheets API service.
func NewForTest(ctx context.Context, url, spreadsheetID string) (Publisher, error) {
	svc, err := gsheets.NewService(ctx,
		option.WithoutAuthentication(),
		option.WithEndpoint(url+"/"))
	if err != nil {
		return nil, fmt.Errorf("error creating sheets service: %w", err)
	}
	return &googlePublisher{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (p *googlePublisher) HasSheet(ctx context.Context, title string) (bool, error) {
	resp, err := p.svc.Spreadsheets.Get(p.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).Do()
	if err != nil {
		return false, fmt.Errorf("error reading spreadsheet metadata: %w", err)
	}

	for _, s := range resp.Sheets {
		if s.Properties != nil && s.Properties.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (p *googlePublisher) Replace(ctx context.Context, title string, rows [][]string) error {
	if err := p.ensureSheet(ctx, title); err != nil {
		return err
	}

	_, err := p.svc.Spreadsheets.Values.Clear(p.spreadsheetID, sheetRange(title), &gsheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("error clearing sheet %s: %w", title, err)
	}

	_, err = p.svc.Spreadsheets.Values.Update(p.spreadsheetID, sheetRange(title), valueRange(rows)).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("error writing sheet %s: %w", title, err)
	}
	return nil
}

func (p *googlePublisher) Append(ctx context.Context, title string, rows [][]string) error {
	if err := p.ensureSheet(ctx, title); err != nil {
		return err
	}

	_, err := p.svc.Spreadsheets.Values.Append(p.spreadsheetID, sheetRange(title), valueRange(rows)).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("error appending to sheet %s: %w", title, err)
	}
	return nil
}

func (p *googlePublisher) Read(ctx context.Context, title string) ([][]string, error) {
	resp, err := p.svc.Spreadsheets.Values.Get(p.spreadsheetID, sheetRange(title)).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %s: %w", title, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprint(cell))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func (p *googlePublisher) ensureSheet(ctx context.Context, title string) error {
	found, err := p.HasSheet(ctx, title)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			AddSheet: &gsheets.AddSheetRequest{
				Properties: &gsheets.SheetProperties{Title: title},
			},
		}},
	}
	_, err = p.svc.Spreadsheets.BatchUpdate(p.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("error creating sheet %s: %w", title, err)
	}
	return nil
}

// sheetRange quotes a tab title into an A1 range covering the whole tab.
// Titles with spaces must be single quoted, embedded quotes are doubled.
func sheetRange(title string) string {
	return fmt.Sprintf("'%s'", strings.ReplaceAll(title, "'", "''"))
}

func valueRange(rows [][]string) *gsheets.ValueRange {
	values := make([][]any, 0, len(rows))
	for _, row := range rows {
		cells := make([]any, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell)
		}
		values = append(values, cells)
	}
	return &gsheets.ValueRange{Values: values}
}
