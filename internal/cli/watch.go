package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/hijri-cal/internal/config"
	"github.com/smokyabdulrahman/hijri-cal/internal/hijri"
	"github.com/smokyabdulrahman/hijri-cal/internal/log"
)

func newWatchCmd() *cobra.Command {
	var schedule, format string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print today's Hijri date on a schedule",
		Long: fmt.Sprintf(`Print one line with the current time and Hijri date, then again on every
tick of a cron schedule (default from the watch_schedule config key), until
interrupted.

Format modes: %s, or a Go template such as '{{.Day}} {{.Month}}'.`, strings.Join(hijri.FormatModes, ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := effectiveConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("schedule") {
				if err := cfg.Set("watch_schedule", schedule); err != nil {
					return err
				}
			}
			cal, err := newCalendar(cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			go func() {
				select {
				case sig := <-sigCh:
					log.Info("signal received, stopping watch", "signal", sig.String())
					cancel()
				case <-ctx.Done():
				}
			}()

			return runWatch(ctx, cmd.OutOrStdout(), cal, cfg, format)
		},
	}

	cmd.Flags().StringVar(&schedule, "schedule", "", "Cron schedule, e.g. '*/15 * * * *'")
	cmd.Flags().StringVar(&format, "format", hijri.FormatFull, "Line format")

	return cmd
}

// runWatch prints immediately and on every tick of cfg.WatchSchedule until
// ctx is done. Conversion failures are printed and do not stop the loop.
func runWatch(ctx context.Context, w io.Writer, cal *hijri.Calendar, cfg config.Config, format string) error {
	layout := cfg.ClockLayout()
	tick := func() {
		d, today, err := cal.Today()
		if err != nil {
			log.Error("watch tick failed", err)
			fmt.Fprintf(w, "%s  %v\n", now().Format(layout), explain(err))
			return
		}
		fmt.Fprintf(w, "%s  %s\n", now().Format(layout), hijri.FormatOutput(d, today, format))
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.WatchSchedule, tick); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", cfg.WatchSchedule, err)
	}

	tick()
	c.Start()
	log.Debug("watch started", "schedule", cfg.WatchSchedule)

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
