package ledger

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// fileLedger is the line-oriented flat file ledger: UTF-8 text, one
// "year,week" pair per line, no header, pure append. Duplicate lines are
// tolerated because membership is set based.
type fileLedger struct {
	path string

	mu   sync.Mutex
	keys map[string]struct{}
}

// NewFile opens a file-backed ledger, creating the file on first mark if it
// does not exist yet.
func NewFile(path string) (Ledger, error) {
	l := &fileLedger{
		path: path,
		keys: make(map[string]struct{}),
	}
	if err := l.load(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *fileLedger) load() error {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error opening ledger file %s: %w", l.path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		l.keys[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading ledger file %s: %w", l.path, err)
	}

	log.Printf("loaded %d processed weeks from %s", len(l.keys), l.path)
	return nil
}

func (l *fileLedger) IsProcessed(year, week int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, found := l.keys[key(year, week)]
	return found
}

func (l *fileLedger) MarkProcessed(_ context.Context, year, week int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	k := key(year, week)
	if _, found := l.keys[k]; found {
		// Re-marking is harmless, but there is no reason to grow the file.
		return nil
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error opening ledger file %s: %w", l.path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, k); err != nil {
		return fmt.Errorf("error appending to ledger file %s: %w", l.path, err)
	}

	l.keys[k] = struct{}{}
	return nil
}
