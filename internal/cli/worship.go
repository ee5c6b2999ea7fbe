package cli

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/hijri-cal/internal/display"
	"github.com/smokyabdulrahman/hijri-cal/internal/worship"
)

func newWorshipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worship",
		Short: "Daily worship checklist",
		Long: fmt.Sprintf(`Track daily acts of worship. Without a subcommand, shows today's checklist.

Tasks: %s`, strings.Join(taskIDs(), ", ")),
		Args: cobra.NoArgs,
		RunE: runWorshipShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show today's checklist",
		Args:  cobra.NoArgs,
		RunE:  runWorshipShow,
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "toggle <task>",
		Short:     "Mark a task done, or undone",
		Args:      cobra.ExactArgs(1),
		ValidArgs: taskIDs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := func() error {
				tr, err := newTracker(cmd)
				if err != nil {
					return err
				}
				d, err := tr.Toggle(strings.ToLower(args[0]), now())
				if err != nil {
					return err
				}
				return printWorshipDay(cmd.OutOrStdout(), d)
			}()
			return handleError(cmd, err)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "history",
		Short: "Show completion over the current Hijri month",
		Long:  "Show the recorded daily completion for every day of the Hijri month containing --date.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return handleError(cmd, runWorshipHistory(cmd))
		},
	})

	return cmd
}

func taskIDs() []string {
	var ids []string
	for _, t := range worship.Tasks() {
		ids = append(ids, t.ID)
	}
	return ids
}

func newTracker(cmd *cobra.Command) (*worship.Tracker, error) {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return nil, err
	}
	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	return worship.New(st), nil
}

func runWorshipShow(cmd *cobra.Command, args []string) error {
	err := func() error {
		tr, err := newTracker(cmd)
		if err != nil {
			return err
		}
		d, err := tr.Today(now())
		if err != nil {
			return err
		}
		return printWorshipDay(cmd.OutOrStdout(), d)
	}()
	return handleError(cmd, err)
}

// worshipDayJSON is the JSON output of show and toggle.
type worshipDayJSON struct {
	Date    string            `json:"date"`
	Percent int               `json:"percent"`
	Tasks   []worshipTaskJSON `json:"tasks"`
}

type worshipTaskJSON struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Done  bool   `json:"done"`
}

func printWorshipDay(w io.Writer, d worship.Day) error {
	percent := int(math.Round(d.Ratio() * 100))

	if FlagJSON {
		out := worshipDayJSON{Date: d.Date, Percent: percent}
		for _, t := range worship.Tasks() {
			out.Tasks = append(out.Tasks, worshipTaskJSON{ID: t.ID, Label: t.Label, Done: d.Done(t.ID)})
		}
		return printJSON(w, out)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s  %s\n", display.Bold("Daily Worship"), display.Dim(d.Date))
	fmt.Fprintf(w, "  %s %d%% completed\n", progressBar(d.Ratio(), 20), percent)
	fmt.Fprintln(w)
	for _, t := range worship.Tasks() {
		mark := display.Gray("[ ]")
		label := t.Label
		if d.Done(t.ID) {
			mark = display.Green("[x]")
			label = display.Green(label)
		}
		fmt.Fprintf(w, "  %s %-8s %s\n", mark, t.ID, label)
	}
	fmt.Fprintln(w)
	return nil
}

func progressBar(ratio float64, width int) string {
	filled := int(math.Round(ratio * float64(width)))
	return display.Green(strings.Repeat("█", filled)) + display.Gray(strings.Repeat("░", width-filled))
}

// worshipHistoryJSON is one day of the history output.
type worshipHistoryJSON struct {
	Gregorian string `json:"gregorian"`
	HijriDay  int    `json:"hijri_day"`
	Percent   int    `json:"percent"`
	IsToday   bool   `json:"is_today"`
}

func runWorshipHistory(cmd *cobra.Command) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}
	tr, err := newTracker(cmd)
	if err != nil {
		return err
	}
	h, err := tr.History()
	if err != nil {
		return err
	}
	cal, err := newCalendar(cfg)
	if err != nil {
		return err
	}
	ref, err := referenceDate()
	if err != nil {
		return err
	}
	g, err := cal.MonthGrid(ref)
	if err != nil {
		return explain(err)
	}

	var rows []worshipHistoryJSON
	for _, c := range g.Cells() {
		rows = append(rows, worshipHistoryJSON{
			Gregorian: c.Gregorian.Format(worship.DayLayout),
			HijriDay:  c.HijriDay,
			Percent:   int(math.Round(h.On(c.Gregorian) * 100)),
			IsToday:   c.IsToday,
		})
	}

	if FlagJSON {
		return printJSON(cmd.OutOrStdout(), rows)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n\n", display.Bold(g.Title()+" AH"))
	tbl := display.NewTable([]string{"Day", "Date", "Progress", "%"})
	tbl.RightAlign(0)
	tbl.RightAlign(3)
	for i, r := range rows {
		tbl.AddRow([]string{
			fmt.Sprint(r.HijriDay),
			g.Cells()[i].Gregorian.Format("Mon 02 Jan"),
			strings.Repeat("█", r.Percent/10) + strings.Repeat("·", 10-r.Percent/10),
			fmt.Sprint(r.Percent),
		})
		if r.IsToday {
			tbl.SetHighlightRow(i)
		}
	}
	fmt.Fprint(w, tbl.Render())
	return nil
}
