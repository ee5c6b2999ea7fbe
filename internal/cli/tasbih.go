package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/hijri-cal/internal/display"
	"github.com/smokyabdulrahman/hijri-cal/internal/tasbih"
)

func newTasbihCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasbih",
		Short: "Dhikr counter",
		Long: `A persistent tasbih counter. Without a subcommand, shows the current count.

Examples:
  hijri-cal tasbih inc
  hijri-cal tasbih inc 10
  hijri-cal tasbih limit 99
  hijri-cal tasbih reset`,
		Args: cobra.NoArgs,
		RunE: tasbihRunner(func(s *tasbih.State, _ []string) error { return nil }),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current count",
		Args:  cobra.NoArgs,
		RunE:  tasbihRunner(func(s *tasbih.State, _ []string) error { return nil }),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "inc [n]",
		Short: "Count one dhikr, or n of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: tasbihRunner(func(s *tasbih.State, args []string) error {
			n := 1
			if len(args) == 1 {
				var err error
				if n, err = strconv.Atoi(args[0]); err != nil || n < 1 {
					return fmt.Errorf("invalid count %q: must be a positive integer", args[0])
				}
			}
			for i := 0; i < n; i++ {
				s.Increment()
			}
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset count and rounds",
		Args:  cobra.NoArgs,
		RunE: tasbihRunner(func(s *tasbih.State, _ []string) error {
			s.Reset()
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "limit <n>",
		Short: "Set the round length and restart counting",
		Args:  cobra.ExactArgs(1),
		RunE: tasbihRunner(func(s *tasbih.State, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid limit %q: must be an integer", args[0])
			}
			return s.SetLimit(n)
		}),
	})

	return cmd
}

// tasbihRunner loads the counter, applies fn, saves and prints the result.
// A no-op fn still saves, which records the configured limit on first use.
func tasbihRunner(fn func(*tasbih.State, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := func() error {
			cfg, err := effectiveConfig(cmd)
			if err != nil {
				return err
			}
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			s, err := tasbih.New(st, cfg.TasbihLimit).Update(func(s *tasbih.State) error {
				return fn(s, args)
			})
			if err != nil {
				return err
			}

			if FlagJSON {
				return printJSON(cmd.OutOrStdout(), s)
			}
			printTasbih(cmd.OutOrStdout(), s)
			return nil
		}()
		return handleError(cmd, err)
	}
}

func printTasbih(w io.Writer, s tasbih.State) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s %s\n", display.Accent(fmt.Sprintf("%d", s.Count)), display.Dim(fmt.Sprintf("/ %d", s.Limit)))
	fmt.Fprintf(w, "  %s\n", display.Dim(fmt.Sprintf("Round: %d", s.Round)))
	fmt.Fprintln(w)
}
