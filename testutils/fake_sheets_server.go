package testutils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// FakeSheetsServer is an in-memory stand-in for the Google Sheets v4 API,
// covering just the calls the publisher makes: get spreadsheet metadata,
// addSheet via batchUpdate, and values get/update/clear/append. Tabs keep
// their creation order so tests can assert on full spreadsheet contents.
type FakeSheetsServer struct {
	s *httptest.Server

	mu    sync.Mutex
	tabs  map[string][][]string
	order []string
}

func NewFakeSheetsServer() *FakeSheetsServer {
	f := &FakeSheetsServer{
		tabs: make(map[string][][]string),
	}
	f.s = httptest.NewServer(http.HandlerFunc(f.handle))
	return f
}

func (f *FakeSheetsServer) Close() {
	f.s.Close()
}

func (f *FakeSheetsServer) URL() string {
	return f.s.URL
}

// SetTab primes a tab with rows, as if a previous run had published them.
func (f *FakeSheetsServer) SetTab(title string, rows [][]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createTab(title)
	f.tabs[title] = rows
}

func (f *FakeSheetsServer) HasTab(title string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, found := f.tabs[title]
	return found
}

// Rows returns a copy of the rows currently in a tab, nil if the tab does not exist.
func (f *FakeSheetsServer) Rows(title string) [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows, found := f.tabs[title]
	if !found {
		return nil
	}
	cp := make([][]string, len(rows))
	copy(cp, rows)
	return cp
}

// The sheets API routes the fake understands. The method suffixes use ":" so
// this is hand-routed instead of using chi.
func (f *FakeSheetsServer) handle(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/")
	path = strings.TrimPrefix(path, "v4/spreadsheets/")

	if i := strings.Index(path, "/values/"); i >= 0 {
		rng := path[i+len("/values/"):]
		switch {
		case strings.HasSuffix(rng, ":clear"):
			f.clearValues(w, titleFromRange(strings.TrimSuffix(rng, ":clear")))
		case strings.HasSuffix(rng, ":append"):
			f.appendValues(w, r, titleFromRange(strings.TrimSuffix(rng, ":append")))
		case r.Method == http.MethodPut:
			f.updateValues(w, r, titleFromRange(rng))
		default:
			f.getValues(w, titleFromRange(rng))
		}
		return
	}

	if strings.HasSuffix(path, ":batchUpdate") {
		f.batchUpdate(w, r)
		return
	}

	f.getSpreadsheet(w)
}

func (f *FakeSheetsServer) getSpreadsheet(w http.ResponseWriter) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sheets := make([]map[string]any, 0, len(f.order))
	for _, title := range f.order {
		sheets = append(sheets, map[string]any{
			"properties": map[string]any{"title": title},
		})
	}
	writeJSON(w, map[string]any{"sheets": sheets})
}

func (f *FakeSheetsServer) batchUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Requests []struct {
			AddSheet *struct {
				Properties struct {
					Title string `json:"title"`
				} `json:"properties"`
			} `json:"addSheet"`
		} `json:"requests"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range req.Requests {
		if item.AddSheet != nil {
			f.createTab(item.AddSheet.Properties.Title)
		}
	}
	writeJSON(w, map[string]any{})
}

func (f *FakeSheetsServer) clearValues(w http.ResponseWriter, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, found := f.tabs[title]; !found {
		http.Error(w, fmt.Sprintf("unknown sheet: %s", title), http.StatusBadRequest)
		return
	}
	f.tabs[title] = nil
	writeJSON(w, map[string]any{})
}

func (f *FakeSheetsServer) updateValues(w http.ResponseWriter, r *http.Request, title string) {
	rows, err := readValues(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, found := f.tabs[title]; !found {
		http.Error(w, fmt.Sprintf("unknown sheet: %s", title), http.StatusBadRequest)
		return
	}
	f.tabs[title] = rows
	writeJSON(w, map[string]any{})
}

func (f *FakeSheetsServer) appendValues(w http.ResponseWriter, r *http.Request, title string) {
	rows, err := readValues(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, found := f.tabs[title]; !found {
		http.Error(w, fmt.Sprintf("unknown sheet: %s", title), http.StatusBadRequest)
		return
	}
	f.tabs[title] = append(f.tabs[title], rows...)
	writeJSON(w, map[string]any{})
}

func (f *FakeSheetsServer) getValues(w http.ResponseWriter, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rows, found := f.tabs[title]
	if !found {
		http.Error(w, fmt.Sprintf("unknown sheet: %s", title), http.StatusBadRequest)
		return
	}
	values := make([][]any, 0, len(rows))
	for _, row := range rows {
		cells := make([]any, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell)
		}
		values = append(values, cells)
	}
	writeJSON(w, map[string]any{"values": values})
}

// createTab must be called with the lock held.
func (f *FakeSheetsServer) createTab(title string) {
	if _, found := f.tabs[title]; found {
		return
	}
	f.tabs[title] = nil
	f.order = append(f.order, title)
}

func titleFromRange(rng string) string {
	if i := strings.Index(rng, "!"); i >= 0 {
		rng = rng[:i]
	}
	return strings.Trim(rng, "'")
}

func readValues(r *http.Request) ([][]string, error) {
	var vr struct {
		Values [][]any `json:"values"`
	}
	if err := json.NewDecoder(r.Body).Decode(&vr); err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(vr.Values))
	for _, row := range vr.Values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprint(cell))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}
