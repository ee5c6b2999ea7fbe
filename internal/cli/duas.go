package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/hijri-cal/internal/display"
	"github.com/smokyabdulrahman/hijri-cal/internal/dua"
)

func newDuasCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "duas",
		Short: "List daily supplications",
		Long: fmt.Sprintf(`List the built-in supplications, optionally filtered by category.
Use "duas show <id>" for the Arabic text, transliteration and translation.

Categories: %s`, strings.Join(dua.Categories(), ", ")),
		Example: `
hijri-cal duas
hijri-cal duas --category travel
hijri-cal duas show 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := func() error {
				duas, err := dua.ByCategory(category)
				if err != nil {
					return err
				}
				if FlagJSON {
					return printJSON(cmd.OutOrStdout(), duas)
				}

				tbl := display.NewTable([]string{"#", "Title", "Category", "Reference"})
				tbl.RightAlign(0)
				for _, d := range duas {
					tbl.AddRow([]string{d.ID, d.Title, d.Category, d.Reference})
				}
				fmt.Fprintln(cmd.OutOrStdout())
				fmt.Fprint(cmd.OutOrStdout(), tbl.Render())
				return nil
			}()
			return handleError(cmd, err)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only show this category")

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one supplication in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := func() error {
				d, err := dua.Get(args[0])
				if err != nil {
					return err
				}
				if FlagJSON {
					return printJSON(cmd.OutOrStdout(), d)
				}
				printDua(cmd, d)
				return nil
			}()
			return handleError(cmd, err)
		},
	})

	return cmd
}

func printDua(cmd *cobra.Command, d dua.Dua) {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s  %s\n\n", display.Bold(d.Title), display.Dim(d.Category))
	fmt.Fprintf(w, "  %s\n\n", display.Green(d.Arabic))
	fmt.Fprintf(w, "  %s\n\n", display.Dim(d.Transliteration))
	fmt.Fprintf(w, "  %s\n\n", d.Translation)
	fmt.Fprintf(w, "  %s\n", display.Gray("Ref: "+d.Reference))
	fmt.Fprintln(w)
}
