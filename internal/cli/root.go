package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/smokyabdulrahman/hijri-cal/internal/config"
	"github.com/smokyabdulrahman/hijri-cal/internal/display"
	"github.com/smokyabdulrahman/hijri-cal/internal/log"
)

// Global flags shared across all subcommands.
var (
	FlagJSON      bool
	FlagSource    string
	FlagMethod    string
	FlagCacheDir  string
	FlagNoCache   bool
	FlagWeekStart string
	FlagVerbose   bool
	FlagLogLevel  string
	FlagDate      string
)

// loadedConfig holds the config loaded during PersistentPreRunE.
// Available to all subcommand handlers.
var loadedConfig *config.Config

// BuildInfo carries the values stamped into the binary via ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCmd creates the root command for the hijri-cal CLI.
func NewRootCmd(info BuildInfo) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "hijri-cal",
		Short:   "Hijri calendar CLI",
		Long:    "A Hijri (Islamic) calendar for the terminal: today's date, month grids, events and ICS export.",
		Version: info.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := log.LevelError
			if FlagLogLevel != "" {
				l, err := log.ParseLevel(FlagLogLevel)
				if err != nil {
					return err
				}
				level = l
			}
			if FlagVerbose {
				level = log.LevelDebug
			}
			log.SetLevel(level)
			if FlagJSON {
				display.SetEnabled(false)
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			loadedConfig = cfg
			return nil
		},
		// Default action: show today's Hijri date.
		RunE:          runToday,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetOut(display.Output())

	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&FlagJSON, "json", false, "Output as JSON (where supported)")
	pf.StringVar(&FlagSource, "source", "", "Calendar source: aladhan or tabular (overrides config)")
	pf.StringVar(&FlagMethod, "method", "", "Al Adhan calendar method: UAQ, HJCoSA, DIYANET or MATHEMATICAL")
	pf.StringVar(&FlagCacheDir, "cache-dir", "", "Cache directory (default: ~/.cache/hijri-cal/)")
	pf.BoolVar(&FlagNoCache, "no-cache", false, "Skip the disk cache; single dates then cost one small API request")
	pf.StringVar(&FlagWeekStart, "week-start", "", "First day of the week in month grids: sunday or monday")
	pf.BoolVarP(&FlagVerbose, "verbose", "v", false, "Log debug output to stderr")
	pf.StringVar(&FlagLogLevel, "log-level", "", "Minimum stderr log level: debug, info or error (default error)")
	pf.StringVar(&FlagDate, "date", "", "Reference Gregorian date as YYYY-MM-DD (default: today)")

	rootCmd.AddCommand(newTodayCmd())
	rootCmd.AddCommand(newMonthCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newTasbihCmd())
	rootCmd.AddCommand(newWorshipCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCacheCmd())
	rootCmd.AddCommand(newDataCmd())
	rootCmd.AddCommand(newDuasCmd())
	rootCmd.AddCommand(newVersionCmd(info))

	return rootCmd
}

// effectiveConfig returns the merged configuration values,
// applying the priority: CLI flags > environment > config file > defaults.
// It uses cobra's Changed() to detect whether a flag was explicitly set.
// Flag values are validated like config values.
func effectiveConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if loadedConfig != nil {
		cfg = *loadedConfig
	}

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	if flagWasSet(flags, root, "source") {
		cfg.Source = FlagSource
	}
	if flagWasSet(flags, root, "method") {
		cfg.CalendarMethod = FlagMethod
	}
	if flagWasSet(flags, root, "cache-dir") {
		cfg.CacheDir = FlagCacheDir
	}
	if flagWasSet(flags, root, "week-start") {
		cfg.WeekStart = FlagWeekStart
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg.WithDefaults(), nil
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	if f := local.Lookup(name); f != nil && f.Changed {
		return true
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return true
	}
	return false
}
