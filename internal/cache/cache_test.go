package cache

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/smokyabdulrahman/hijri-cal/internal/api"
)

func sampleDays() []api.DateInfo {
	return []api.DateInfo{
		{
			Hijri: api.HijriDate{
				Day:   "12",
				Month: api.HijriMonth{Number: 9, En: "Ramaḍān"},
				Year:  "1447",
			},
			Gregorian: api.GregorianDate{Date: "01-03-2026"},
		},
		{
			Hijri: api.HijriDate{
				Day:   "13",
				Month: api.HijriMonth{Number: 9, En: "Ramaḍān"},
				Year:  "1447",
			},
			Gregorian: api.GregorianDate{Date: "02-03-2026"},
		},
	}
}

// ---------------------------------------------------------------------------
// New
// ---------------------------------------------------------------------------

func TestNew_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	c, err := New(dir)
	if err != nil {
		t.Fatalf("New(%q) error: %v", dir, err)
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", c.Dir(), dir)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("cache dir not created: %v", err)
	}
}

func TestNew_DefaultDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	c, err := New("")
	if err != nil {
		t.Fatalf("New(\"\") error: %v", err)
	}
	if filepath.Base(c.Dir()) != "hijri-cal" {
		t.Errorf("default dir = %q", c.Dir())
	}
}

func TestNew_Unwritable(t *testing.T) {
	if _, err := New("/dev/null/impossible"); err == nil {
		t.Fatal("expected error for unwritable dir")
	}
}

// ---------------------------------------------------------------------------
// LoadMonth / SaveMonth
// ---------------------------------------------------------------------------

func TestSaveAndLoadMonth(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.SaveMonth("UAQ", 2026, time.March, sampleDays()); err != nil {
		t.Fatalf("SaveMonth: %v", err)
	}

	entry := c.LoadMonth("UAQ", 2026, time.March)
	if entry == nil {
		t.Fatal("LoadMonth returned nil after save")
	}
	if entry.Method != "UAQ" || entry.Year != 2026 || entry.Month != 3 {
		t.Errorf("entry = %s %d-%d", entry.Method, entry.Year, entry.Month)
	}
	if len(entry.Days) != 2 || entry.Days[1].Hijri.Month.En != "Ramaḍān" {
		t.Errorf("days not round-tripped: %+v", entry.Days)
	}
	if entry.CachedAt.IsZero() {
		t.Error("CachedAt not set")
	}
}

func TestLoadMonth_Miss(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SaveMonth("UAQ", 2026, time.March, sampleDays()); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		method string
		year   int
		month  time.Month
	}{
		{"other method", "HJCoSA", 2026, time.March},
		{"other month", "UAQ", 2026, time.April},
		{"other year", "UAQ", 2025, time.March},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if e := c.LoadMonth(tt.method, tt.year, tt.month); e != nil {
				t.Errorf("expected miss, got %+v", e)
			}
		})
	}
}

func TestLoadMonth_Corrupt(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "calendar", "UAQ", "2026", "03.json.zst")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not zstd at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	if e := c.LoadMonth("UAQ", 2026, time.March); e != nil {
		t.Errorf("corrupt entry should be a miss, got %+v", e)
	}
}

func TestLoadMonth_EmptyDaysIsMiss(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SaveMonth("UAQ", 2026, time.March, nil); err != nil {
		t.Fatal(err)
	}
	if e := c.LoadMonth("UAQ", 2026, time.March); e != nil {
		t.Errorf("empty entry should be a miss, got %+v", e)
	}
}

func TestSaveMonth_CompressedOnDisk(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SaveMonth("UAQ", 2026, time.March, sampleDays()); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "calendar", "UAQ", "2026", "03.json.zst"))
	if err != nil {
		t.Fatalf("cache file not at expected path: %v", err)
	}
	zstdMagic := []byte{0x28, 0xb5, 0x2f, 0xfd}
	if !bytes.HasPrefix(raw, zstdMagic) {
		t.Errorf("cache file is not zstd: % x", raw[:min(8, len(raw))])
	}
}

func TestKeysAndClear(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range []time.Month{time.February, time.March} {
		if err := c.SaveMonth("UAQ", 2026, m, sampleDays()); err != nil {
			t.Fatal(err)
		}
	}

	keys := c.Keys()
	sort.Strings(keys)
	want := []string{"calendar-UAQ-2026-02", "calendar-UAQ-2026-03"}
	if len(keys) != len(want) || keys[0] != want[0] || keys[1] != want[1] {
		t.Errorf("Keys() = %v, want %v", keys, want)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if e := c.LoadMonth("UAQ", 2026, time.March); e != nil {
		t.Error("entry survived Clear")
	}
}

func TestMonthKey(t *testing.T) {
	tests := []struct {
		method string
		want   string
	}{
		{"UAQ", "calendar-UAQ-2026-03"},
		{"", "calendar-default-2026-03"},
		{"a-b/c", "calendar-a_b_c-2026-03"},
	}
	for _, tt := range tests {
		if got := monthKey(tt.method, 2026, time.March); got != tt.want {
			t.Errorf("monthKey(%q) = %q, want %q", tt.method, got, tt.want)
		}
		if got := pathToKey(keyToPath(tt.want)); got != tt.want {
			t.Errorf("transform round trip = %q, want %q", got, tt.want)
		}
	}
}
