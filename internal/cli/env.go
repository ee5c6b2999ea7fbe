package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/hijri-cal/internal/cache"
	"github.com/smokyabdulrahman/hijri-cal/internal/config"
	"github.com/smokyabdulrahman/hijri-cal/internal/converter"
	"github.com/smokyabdulrahman/hijri-cal/internal/hijri"
	"github.com/smokyabdulrahman/hijri-cal/internal/log"
	"github.com/smokyabdulrahman/hijri-cal/internal/store"
)

// now is replaced in tests.
var now = time.Now

// newCalendar builds the Calendar for the configured source. A cache that
// cannot be opened only disables caching, as does --no-cache.
func newCalendar(cfg config.Config) (*hijri.Calendar, error) {
	var c *cache.Cache
	if cfg.Source != converter.SourceTabular && !FlagNoCache {
		var err error
		if c, err = openCache(cfg); err != nil {
			log.Error("cache disabled", err, "dir", cfg.CacheDir)
			c = nil
		}
	}

	log.Debug("calendar source", "source", cfg.Source, "method", cfg.CalendarMethod)
	conv, err := converter.New(cfg.Source, cfg.CalendarMethod, nil, c)
	if err != nil {
		return nil, err
	}
	cal := hijri.NewCalendar(conv)
	cal.Now = now
	return cal, nil
}

// openCache opens cache_dir, or the default cache directory.
func openCache(cfg config.Config) (*cache.Cache, error) {
	dir, err := config.ExpandPath(cfg.CacheDir)
	if err != nil {
		return nil, err
	}
	return cache.New(dir)
}

// referenceDate is --date in local time, or today.
func referenceDate() (time.Time, error) {
	if FlagDate == "" {
		return now(), nil
	}
	t, err := hijri.ParseDate(FlagDate, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date: %w", err)
	}
	return t, nil
}

// openStore opens the data directory holding tasbih and worship state.
func openStore(cfg config.Config) (*store.Store, error) {
	dir, err := cfg.DataDirOrDefault()
	if err != nil {
		return nil, err
	}
	return store.Open(dir)
}

// explain adds a hint to calendar failures.
func explain(err error) error {
	if errors.Is(err, hijri.ErrUnavailable) {
		return fmt.Errorf("calendar unavailable: %w (try --source tabular when offline)", err)
	}
	return err
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// handleError reports err as {"error": "..."} on cmd's output under --json
// and returns it unchanged otherwise.
func handleError(cmd *cobra.Command, err error) error {
	if !FlagJSON || err == nil {
		return err
	}
	if perr := printJSON(cmd.OutOrStdout(), map[string]string{"error": err.Error()}); perr != nil {
		return perr
	}
	return fmt.Errorf("%w: %v", errSilent, err)
}

// errSilent marks an error that has already been reported on stdout.
var errSilent = errors.New("error already reported")

// IsSilent reports whether main should skip printing err.
func IsSilent(err error) bool {
	return errors.Is(err, errSilent)
}
