// Package worship tracks a fixed daily checklist of acts of worship.
package worship

import (
	"errors"
	"fmt"
	"time"

	"github.com/smokyabdulrahman/hijri-cal/internal/store"
)

const (
	TrackerKey = "worship_tracker"
	HistoryKey = "worship_history"
)

// DayLayout keys the tracker and history by civil date.
const DayLayout = "2006-01-02"

// Task is one checklist item.
type Task struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var tasks = []Task{
	{"fasting", "Fasting (Sawm)"},
	{"fajr", "Fajr Prayer"},
	{"dhuhr", "Dhuhr Prayer"},
	{"asr", "Asr Prayer"},
	{"maghrib", "Maghrib Prayer"},
	{"isha", "Isha Prayer"},
	{"quran", "Read Quran"},
	{"charity", "Daily Sadaqah"},
}

// Tasks returns the checklist in display order.
func Tasks() []Task {
	return append([]Task(nil), tasks...)
}

func lookup(id string) (Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Day is the persisted checklist of one date.
type Day struct {
	Date      string          `json:"date"`
	Completed map[string]bool `json:"completed"`
}

// Done reports whether task id is checked.
func (d Day) Done(id string) bool { return d.Completed[id] }

// Ratio is the completed fraction of all tasks, 0 to 1.
func (d Day) Ratio() float64 {
	n := 0
	for _, t := range tasks {
		if d.Completed[t.ID] {
			n++
		}
	}
	return float64(n) / float64(len(tasks))
}

// History maps a date (DayLayout) to that day's ratio.
type History map[string]float64

// On returns the ratio recorded for t's civil date, or 0.
func (h History) On(t time.Time) float64 {
	return h[t.Format(DayLayout)]
}

// Tracker reads and writes the checklist through a store.
type Tracker struct {
	st *store.Store
}

// New returns a Tracker backed by st.
func New(st *store.Store) *Tracker {
	return &Tracker{st: st}
}

// Today returns the checklist for now's date. A checklist saved on another
// day is not carried over.
func (tr *Tracker) Today(now time.Time) (Day, error) {
	today := now.Format(DayLayout)

	var d Day
	err := tr.st.Get(TrackerKey, &d)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		return Day{}, err
	}
	if d.Date != today {
		d = Day{Date: today}
	}
	if d.Completed == nil {
		d.Completed = map[string]bool{}
	}
	return d, nil
}

// Toggle flips task id for now's date and records the new ratio in History.
func (tr *Tracker) Toggle(id string, now time.Time) (Day, error) {
	if _, ok := lookup(id); !ok {
		return Day{}, fmt.Errorf("unknown worship task %q", id)
	}

	d, err := tr.Today(now)
	if err != nil {
		return Day{}, err
	}
	d.Completed[id] = !d.Completed[id]
	if err := tr.st.Put(TrackerKey, d); err != nil {
		return Day{}, err
	}

	h, err := tr.History()
	if err != nil {
		return Day{}, err
	}
	h[d.Date] = d.Ratio()
	if err := tr.st.Put(HistoryKey, h); err != nil {
		return Day{}, err
	}
	return d, nil
}

// History returns every recorded day. It is never nil.
func (tr *Tracker) History() (History, error) {
	h := History{}
	if err := tr.st.Get(HistoryKey, &h); err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if h == nil {
		h = History{}
	}
	return h, nil
}
