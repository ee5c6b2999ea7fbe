package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the Al Adhan response cache",
		Long:  "Show the cache directory and its cached months.\nWhen run without subcommands, lists the cached months.",
		Args:  cobra.NoArgs,
		RunE:  runCacheShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := func() error {
				cfg, err := effectiveConfig(cmd)
				if err != nil {
					return err
				}
				c, err := openCache(cfg)
				if err != nil {
					return err
				}
				n := len(c.Keys())
				if err := c.Clear(); err != nil {
					return err
				}
				if FlagJSON {
					return printJSON(cmd.OutOrStdout(), map[string]int{"removed": n})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached months from %s\n", n, c.Dir())
				return nil
			}()
			return handleError(cmd, err)
		},
	})

	return cmd
}

type cacheJSON struct {
	Dir    string   `json:"dir"`
	Months []string `json:"months"`
}

func runCacheShow(cmd *cobra.Command, args []string) error {
	err := func() error {
		cfg, err := effectiveConfig(cmd)
		if err != nil {
			return err
		}
		c, err := openCache(cfg)
		if err != nil {
			return err
		}
		keys := c.Keys()
		sort.Strings(keys)

		if FlagJSON {
			return printJSON(cmd.OutOrStdout(), cacheJSON{Dir: c.Dir(), Months: keys})
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Cache: %s\n", c.Dir())
		if len(keys) == 0 {
			fmt.Fprintln(w, "(empty)")
			return nil
		}
		for _, k := range keys {
			fmt.Fprintf(w, "  %s\n", k)
		}
		return nil
	}()
	return handleError(cmd, err)
}
