package holidays

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/username/vacation-planner/pkg/dateutil"
)

func TestNagerProvider_ParseResponse(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	provider := NewNagerProvider("DE", 24*time.Hour, logger)

	body := []byte(`[
		{"date":"2026-01-01","localName":"Neujahr","name":"New Year's Day","countryCode":"DE","global":true},
		{"date":"2026-05-01","localName":"Tag der Arbeit","name":"Labour Day","countryCode":"DE","global":true},
		{"date":"garbage","localName":"Broken","name":"Broken","countryCode":"DE","global":true},
		{"date":"2026-04-03","localName":"","name":"Good Friday","countryCode":"DE","global":true}
	]`)

	list, err := provider.parseResponse(body)
	if err != nil {
		t.Fatalf("parseResponse() error = %v", err)
	}

	// Broken entry skipped, remaining three sorted by date
	if len(list) != 3 {
		t.Fatalf("parseResponse() returned %d holidays, want 3", len(list))
	}

	if list[0].Date != (dateutil.Date{Year: 2026, Month: time.January, Day: 1}) {
		t.Errorf("first holiday date = %v, want 2026-01-01", list[0].Date)
	}
	if list[0].Name != "Neujahr" {
		t.Errorf("first holiday name = %q, want local name %q", list[0].Name, "Neujahr")
	}

	// Falls back to the English name when localName is empty
	if list[1].Name != "Good Friday" {
		t.Errorf("second holiday name = %q, want %q", list[1].Name, "Good Friday")
	}

	if list[2].Date != (dateutil.Date{Year: 2026, Month: time.May, Day: 1}) {
		t.Errorf("last holiday date = %v, want 2026-05-01", list[2].Date)
	}
}

func TestNagerProvider_ParseResponseInvalidJSON(t *testing.T) {
	logger := zap.NewNop()
	provider := NewNagerProvider("DE", 24*time.Hour, logger)

	if _, err := provider.parseResponse([]byte(`{"not":"an array"}`)); err == nil {
		t.Errorf("parseResponse() with invalid JSON expected error")
	}
}

func TestFileProvider(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "holidays.txt")

	content := `# public holidays
2026-01-01 New Year's Day
2026-12-25 Christmas Day
2025-05-01 Labour Day

invalid line
garbage-date Some Name
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	provider := NewFileProvider(path, zap.NewNop())
	if err := provider.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	list, err := provider.HolidaysForYear(2026)
	if err != nil {
		t.Fatalf("HolidaysForYear(2026) error = %v", err)
	}

	if len(list) != 2 {
		t.Fatalf("HolidaysForYear(2026) returned %d holidays, want 2", len(list))
	}
	if list[0].Name != "New Year's Day" {
		t.Errorf("first holiday = %q, want %q", list[0].Name, "New Year's Day")
	}
	if list[1].Date != (dateutil.Date{Year: 2026, Month: time.December, Day: 25}) {
		t.Errorf("second holiday date = %v, want 2026-12-25", list[1].Date)
	}

	if _, err := provider.HolidaysForYear(2030); err == nil {
		t.Errorf("HolidaysForYear(2030) expected error for missing year")
	}
}

func TestFileProviderMissingFile(t *testing.T) {
	provider := NewFileProvider("/nonexistent/holidays.txt", zap.NewNop())
	if err := provider.Load(); err == nil {
		t.Errorf("Load() on missing file expected error")
	}
}

// stubProvider returns fixed data or a fixed error
type stubProvider struct {
	list []Holiday
	err  error
}

func (s *stubProvider) HolidaysForYear(year int) ([]Holiday, error) {
	return s.list, s.err
}

func TestCompositeProviderFallsBack(t *testing.T) {
	logger := zap.NewNop()

	fallbackList := []Holiday{
		{Date: dateutil.Date{Year: 2026, Month: time.January, Day: 1}, Name: "New Year's Day"},
	}

	tests := []struct {
		name     string
		primary  *stubProvider
		fallback *stubProvider
		want     int
		wantErr  bool
	}{
		{
			name:     "Primary works",
			primary:  &stubProvider{list: fallbackList},
			fallback: &stubProvider{err: errors.New("unused")},
			want:     1,
		},
		{
			name:     "Primary fails, fallback works",
			primary:  &stubProvider{err: errors.New("connection refused")},
			fallback: &stubProvider{list: fallbackList},
			want:     1,
		},
		{
			name:     "Both fail",
			primary:  &stubProvider{err: errors.New("connection refused")},
			fallback: &stubProvider{err: errors.New("no such file")},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			composite := NewCompositeProvider(tt.primary, tt.fallback, logger)

			list, err := composite.HolidaysForYear(2026)
			if tt.wantErr {
				if err == nil {
					t.Errorf("HolidaysForYear() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("HolidaysForYear() error = %v", err)
			}
			if len(list) != tt.want {
				t.Errorf("HolidaysForYear() returned %d holidays, want %d", len(list), tt.want)
			}
		})
	}
}
