package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newDataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "List or remove stored tasbih and worship state",
		Long:  "Show the data directory and the keys stored in it.\nWhen run without subcommands, lists the keys.",
		Args:  cobra.NoArgs,
		RunE:  runDataShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <key>...",
		Short: "Remove stored keys",
		Long:  "Remove one or more stored keys, e.g. tasbih_count or worship_history.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := func() error {
				cfg, err := effectiveConfig(cmd)
				if err != nil {
					return err
				}
				st, err := openStore(cfg)
				if err != nil {
					return err
				}
				for _, k := range args {
					if err := st.Remove(k); err != nil {
						return err
					}
				}
				if FlagJSON {
					return printJSON(cmd.OutOrStdout(), map[string][]string{"removed": args})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d keys from %s\n", len(args), st.Dir())
				return nil
			}()
			return handleError(cmd, err)
		},
	})

	return cmd
}

type dataJSON struct {
	Dir  string   `json:"dir"`
	Keys []string `json:"keys"`
}

func runDataShow(cmd *cobra.Command, args []string) error {
	err := func() error {
		cfg, err := effectiveConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		keys := st.Keys()
		sort.Strings(keys)

		if FlagJSON {
			return printJSON(cmd.OutOrStdout(), dataJSON{Dir: st.Dir(), Keys: keys})
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Data: %s\n", st.Dir())
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
