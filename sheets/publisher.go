// Package sheets publishes tabular rows to named tabs of a Google Sheets
// spreadsheet.
package sheets

import "context"

// PublishMode says how a destination tab is written this run. The mode is
// decided once per destination at the start of a run, not re-checked per row.
type PublishMode int

const (
	// ModeReplace clears the tab and rewrites it wholesale.
	ModeReplace PublishMode = iota
	// ModeAppend appends rows after the current contents.
	ModeAppend
)

func (m PublishMode) String() string {
	switch m {
	case ModeReplace:
		return "replace"
	case ModeAppend:
		return "append"
	default:
		return "unknown"
	}
}

// Publisher is upsert-by-name semantics over named tabs. Replace and Append
// both create the tab when it does not exist yet.
type Publisher interface {
	HasSheet(ctx context.Context, title string) (bool, error)
	Replace(ctx context.Context, title string, rows [][]string) error
	Append(ctx context.Context, title string, rows [][]string) error
	Read(ctx context.Context, title string) ([][]string, error)
}
