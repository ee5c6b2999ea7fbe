package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
)

// tempConfigPath returns a path to a config file inside a temp directory.
func tempConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.yaml")
}

// clearEnv blanks every HIJRI_CAL_ override so the host environment cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range ValidKeys {
		t.Setenv(EnvPrefix+"_"+strings.ToUpper(k), "")
		os.Unsetenv(EnvPrefix + "_" + strings.ToUpper(k))
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// --- Defaults ---

func TestDefaults(t *testing.T) {
	d := Defaults()

	checks := map[string]string{
		"source":          "aladhan",
		"calendar_method": "UAQ",
		"week_start":      "sunday",
		"time_format":     "24h",
		"watch_schedule":  "0 * * * *",
		"tasbih_limit":    "33",
		"cache_dir":       "",
		"data_dir":        "",
	}
	for k, want := range checks {
		got, err := d.Get(k)
		if err != nil {
			t.Fatalf("Get(%q): %v", k, err)
		}
		if got != want {
			t.Errorf("Defaults().%s = %q, want %q", k, got, want)
		}
	}

	if err := d.Validate(); err != nil {
		t.Errorf("Defaults() do not validate: %v", err)
	}
}

func TestWithDefaults(t *testing.T) {
	c := Config{Source: "tabular", TasbihLimit: 99}
	got := c.WithDefaults()

	if got.Source != "tabular" || got.TasbihLimit != 99 {
		t.Errorf("set values overwritten: %+v", got)
	}
	if got.CalendarMethod != "UAQ" || got.TimeFormat != "24h" || got.WeekStart != "sunday" {
		t.Errorf("unset values not defaulted: %+v", got)
	}
	if c.CalendarMethod != "" {
		t.Error("WithDefaults mutated its receiver")
	}
}

// --- Dir and Path with XDG ---

func TestDir_XDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}

	want := filepath.Join("/tmp/xdg-test", "hijri-cal")
	if dir != want {
		t.Errorf("Dir() = %q, want %q", dir, want)
	}
}

func TestDir_FallbackToHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".config", "hijri-cal")
	if dir != want {
		t.Errorf("Dir() = %q, want %q", dir, want)
	}
}

func TestPath_XDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	p, err := Path()
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}

	want := filepath.Join("/tmp/xdg-test", "hijri-cal", "config.yaml")
	if p != want {
		t.Errorf("Path() = %q, want %q", p, want)
	}
}

// --- LoadFrom ---

func TestLoadFrom_NonExistentFile(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFrom("/no/such/file.yaml")
	if err != nil {
		t.Fatalf("LoadFrom non-existent should not error, got: %v", err)
	}
	if *cfg != (Config{}) {
		t.Errorf("LoadFrom non-existent should return empty config, got %+v", cfg)
	}
}

func TestLoadFrom_ValidYAML(t *testing.T) {
	clearEnv(t)
	path := tempConfigPath(t)
	writeFile(t, path, `
source: tabular
calendar_method: HJCoSA
week_start: monday
time_format: 12h
cache_dir: ~/hc-cache
watch_schedule: "*/30 * * * *"
tasbih_limit: 100
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom error: %v", err)
	}

	want := Config{
		Source:         "tabular",
		CalendarMethod: "HJCoSA",
		WeekStart:      "monday",
		TimeFormat:     "12h",
		CacheDir:       "~/hc-cache",
		WatchSchedule:  "*/30 * * * *",
		TasbihLimit:    100,
	}
	if *cfg != want {
		t.Errorf("LoadFrom = %+v, want %+v", *cfg, want)
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := tempConfigPath(t)
	writeFile(t, path, "source: [unterminated\n")

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("LoadFrom with invalid YAML should return error")
	}
}

func TestLoadFrom_InvalidValue(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name    string
		content string
	}{
		{"bad source", "source: icu\n"},
		{"bad method", "calendar_method: ISNA\n"},
		{"bad cron", "watch_schedule: every tuesday\n"},
		{"negative limit", "tasbih_limit: -3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tempConfigPath(t)
			writeFile(t, path, tt.content)
			if _, err := LoadFrom(path); err == nil {
				t.Errorf("LoadFrom(%q) should fail validation", tt.content)
			}
		})
	}
}

func TestLoadFrom_EmptyFile(t *testing.T) {
	clearEnv(t)
	path := tempConfigPath(t)
	writeFile(t, path, "")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom empty file error: %v", err)
	}
	if *cfg != (Config{}) {
		t.Errorf("empty file gave %+v", cfg)
	}
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := tempConfigPath(t)
	writeFile(t, path, "source: aladhan\ntasbih_limit: 33\n")

	t.Setenv("HIJRI_CAL_SOURCE", "tabular")
	t.Setenv("HIJRI_CAL_TASBIH_LIMIT", "99")
	t.Setenv("HIJRI_CAL_DATA_DIR", "/srv/hijri")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom error: %v", err)
	}
	if cfg.Source != "tabular" {
		t.Errorf("Source = %q, want env override %q", cfg.Source, "tabular")
	}
	if cfg.TasbihLimit != 99 {
		t.Errorf("TasbihLimit = %d, want 99", cfg.TasbihLimit)
	}
	if cfg.DataDir != "/srv/hijri" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
}

func TestLoadFrom_EnvWithoutFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("HIJRI_CAL_CALENDAR_METHOD", "DIYANET")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom error: %v", err)
	}
	if cfg.CalendarMethod != "DIYANET" {
		t.Errorf("CalendarMethod = %q", cfg.CalendarMethod)
	}
}

func TestLoadFrom_InvalidEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("HIJRI_CAL_WEEK_START", "friday")

	if _, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("invalid env value should fail validation")
	}
}

func TestLoadFile_IgnoresEnv(t *testing.T) {
	clearEnv(t)
	path := tempConfigPath(t)
	writeFile(t, path, "week_start: monday\n")
	t.Setenv("HIJRI_CAL_SOURCE", "tabular")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.WeekStart != "monday" {
		t.Errorf("WeekStart = %q", cfg.WeekStart)
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, env must not leak into LoadFile", cfg.Source)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil || *cfg != (Config{}) {
		t.Errorf("LoadFile(missing) = %+v, %v", cfg, err)
	}
}

// --- SaveTo ---

func TestSaveTo_CreatesDirectoryAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "dir", "config.yaml")

	cfg := Config{Source: "tabular"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config file mode = %o, want 600", perm)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "source: tabular") {
		t.Errorf("unexpected file content:\n%s", data)
	}
}

func TestSaveTo_OmitsUnsetKeys(t *testing.T) {
	path := tempConfigPath(t)

	cfg := Config{TimeFormat: "12h"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	got := strings.TrimSpace(string(data))
	if got != "time_format: 12h" {
		t.Errorf("file content = %q, want only time_format", got)
	}
}

func TestSaveTo_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	for i := 0; i < 3; i++ {
		if err := (&Config{TasbihLimit: i + 1}).SaveTo(path); err != nil {
			t.Fatal(err)
		}
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("dir contains %v, want only config.yaml", names)
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	clearEnv(t)
	path := tempConfigPath(t)

	want := Config{
		Source:         "tabular",
		CalendarMethod: "MATHEMATICAL",
		WeekStart:      "monday",
		TimeFormat:     "12h",
		CacheDir:       "/tmp/cache",
		DataDir:        "/tmp/data",
		WatchSchedule:  "@daily",
		TasbihLimit:    7,
	}
	if err := want.SaveTo(path); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom error: %v", err)
	}
	if *loaded != want {
		t.Errorf("round trip = %+v, want %+v", *loaded, want)
	}
}

// --- ResetAt ---

func TestResetAt_DeletesFile(t *testing.T) {
	path := tempConfigPath(t)
	writeFile(t, path, "source: tabular\n")

	if err := ResetAt(path); err != nil {
		t.Fatalf("ResetAt error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("config file should have been deleted")
	}
}

func TestResetAt_NonExistentFile(t *testing.T) {
	if err := ResetAt("/no/such/config.yaml"); err != nil {
		t.Errorf("ResetAt non-existent should not error, got: %v", err)
	}
}

// --- Set ---

func TestSet(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		want    string
		wantErr bool
	}{
		{"source", "tabular", "tabular", false},
		{"source", "AlAdhan", "aladhan", false},
		{"source", "icu", "", true},
		{"calendar_method", "UAQ", "UAQ", false},
		{"calendar_method", "HJCoSA", "HJCoSA", false},
		{"calendar_method", "uaq", "", true},
		{"week_start", "Monday", "monday", false},
		{"week_start", "saturday", "", true},
		{"time_format", "12h", "12h", false},
		{"time_format", "12", "", true},
		{"cache_dir", "~/cache", "~/cache", false},
		{"data_dir", "/var/lib/hijri", "/var/lib/hijri", false},
		{"watch_schedule", "*/5 * * * *", "*/5 * * * *", false},
		{"watch_schedule", "@hourly", "@hourly", false},
		{"watch_schedule", "* * *", "", true},
		{"tasbih_limit", "99", "99", false},
		{"tasbih_limit", "0", "", true},
		{"tasbih_limit", "many", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			var cfg Config
			err := cfg.Set(tt.key, tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Set(%q, %q) expected error", tt.key, tt.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("Set(%q, %q) error: %v", tt.key, tt.value, err)
			}
			got, _ := cfg.Get(tt.key)
			if got != tt.want {
				t.Errorf("Get(%q) after Set = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestSet_UnknownKey(t *testing.T) {
	var cfg Config
	err := cfg.Set("latitude", "21.4")
	if err == nil {
		t.Fatal("Set unknown key should error")
	}
	if !strings.Contains(err.Error(), "valid keys") {
		t.Errorf("error should list valid keys: %v", err)
	}
}

func TestGet_UnknownKey(t *testing.T) {
	var cfg Config
	if _, err := cfg.Get("nope"); err == nil {
		t.Error("Get unknown key should error")
	}
}

func TestValidKeys_AllGettable(t *testing.T) {
	var cfg Config
	for _, k := range ValidKeys {
		if _, err := cfg.Get(k); err != nil {
			t.Errorf("Get(%q) error: %v", k, err)
		}
	}
}

// --- helpers ---

func TestClockLayout(t *testing.T) {
	if got := (&Config{TimeFormat: "12h"}).ClockLayout(); got != "3:04 PM" {
		t.Errorf("12h layout = %q", got)
	}
	if got := (&Config{}).ClockLayout(); got != "15:04" {
		t.Errorf("default layout = %q", got)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/abs/path", "/abs/path"},
		{"~/data", filepath.Join(home, "data")},
		{"~", home},
	}
	for _, tt := range tests {
		got, err := ExpandPath(tt.in)
		if err != nil {
			t.Fatalf("ExpandPath(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := ExpandPath("~other/data"); err == nil {
		t.Error("ExpandPath(~other) should error")
	}
}

func TestDataDirOrDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	t.Setenv("XDG_DATA_HOME", "")
	got, err := (&Config{}).DataDirOrDefault()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".local", "share", "hijri-cal"); got != want {
		t.Errorf("default = %q, want %q", got, want)
	}

	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	got, _ = (&Config{}).DataDirOrDefault()
	if got != "/xdg/data/hijri-cal" {
		t.Errorf("XDG default = %q", got)
	}

	got, _ = (&Config{DataDir: "~/mine"}).DataDirOrDefault()
	if got != filepath.Join(home, "mine") {
		t.Errorf("explicit = %q", got)
	}
}
