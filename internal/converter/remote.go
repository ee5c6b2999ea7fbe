package converter

import (
	"fmt"
	"sync"
	"time"

	"github.com/smokyabdulrahman/hijri-cal/internal/api"
	"github.com/smokyabdulrahman/hijri-cal/internal/cache"
	"github.com/smokyabdulrahman/hijri-cal/internal/hijri"
	"github.com/smokyabdulrahman/hijri-cal/internal/log"
)

// Fetcher fetches the Hijri dates of one Gregorian month.
type Fetcher interface {
	FetchHijriCalendar(year int, month time.Month, method string) ([]api.DateInfo, error)
}

// DayFetcher fetches the Hijri date of a single Gregorian date.
type DayFetcher interface {
	FetchHijriDate(date time.Time, method string) (*api.DateInfo, error)
}

// MonthCache persists fetched months between runs.
type MonthCache interface {
	LoadMonth(method string, year int, month time.Month) *cache.MonthEntry
	SaveMonth(method string, year int, month time.Month, days []api.DateInfo) error
}

type gregorianMonth struct {
	year  int
	month time.Month
}

// Remote converts dates with the Al Adhan calendar API, one Gregorian month
// per request. Months are memoized for the life of the Remote and written
// through to the disk cache when one is configured.
type Remote struct {
	fetcher Fetcher
	cache   MonthCache
	method  string

	mu     sync.Mutex
	months map[gregorianMonth]map[int]hijri.Date
}

// NewRemote returns a Remote. c may be nil to disable disk caching.
func NewRemote(f Fetcher, c MonthCache, method string) *Remote {
	if method == "" {
		method = api.DefaultMethod
	}
	return &Remote{
		fetcher: f,
		cache:   c,
		method:  method,
		months:  make(map[gregorianMonth]map[int]hijri.Date),
	}
}

// Method returns the calendarMethod sent to the API.
func (r *Remote) Method() string { return r.method }

// Convert implements hijri.Converter.
func (r *Remote) Convert(date time.Time) (hijri.Date, error) {
	y, m, d := date.Date()

	days, err := r.month(y, m)
	if err != nil {
		return hijri.Date{}, &hijri.UnavailableError{Date: date, Err: err}
	}

	h, ok := days[d]
	if !ok {
		return hijri.Date{}, &hijri.UnavailableError{
			Date: date,
			Err:  fmt.Errorf("no %s record for %s", r.method, date.Format("2006-01-02")),
		}
	}
	return h, nil
}

// ConvertDay implements hijri.DayConverter. With a disk cache it is Convert,
// since the fetched month is kept for later runs. Without one, a month
// already in memory answers directly and any other date costs one gToH
// request when the fetcher supports it.
func (r *Remote) ConvertDay(date time.Time) (hijri.Date, error) {
	df, ok := r.fetcher.(DayFetcher)
	if !ok || r.cache != nil {
		return r.Convert(date)
	}

	y, m, d := date.Date()
	r.mu.Lock()
	days, cached := r.cached(y, m)
	r.mu.Unlock()
	if cached {
		if h, ok := days[d]; ok {
			return h, nil
		}
	}

	rec, err := df.FetchHijriDate(date, r.method)
	if err != nil {
		return hijri.Date{}, &hijri.UnavailableError{
			Date: date,
			Err:  fmt.Errorf("fetching %s: %w", date.Format("2006-01-02"), err),
		}
	}
	hd, hy, err := rec.Hijri.Numbers()
	if err != nil {
		return hijri.Date{}, &hijri.UnavailableError{Date: date, Err: err}
	}
	return hijri.Date{Day: hd, MonthName: rec.Hijri.Month.En, Year: hy}, nil
}

func (r *Remote) month(y int, m time.Month) (map[int]hijri.Date, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if days, ok := r.cached(y, m); ok {
		return days, nil
	}

	records, err := r.fetcher.FetchHijriCalendar(y, m, r.method)
	if err != nil {
		return nil, fmt.Errorf("fetching %d-%02d: %w", y, int(m), err)
	}

	days, err := indexRecords(records, y, m)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.SaveMonth(r.method, y, m, records); err != nil {
			log.Error("cache write failed", err, "year", y, "month", int(m))
		}
	}

	r.months[gregorianMonth{y, m}] = days
	return days, nil
}

// cached returns a month from memory or the disk cache without a request.
// A disk entry that cannot be indexed counts as a miss. r.mu must be held.
func (r *Remote) cached(y int, m time.Month) (map[int]hijri.Date, bool) {
	key := gregorianMonth{y, m}
	if days, ok := r.months[key]; ok {
		return days, true
	}
	if r.cache == nil {
		return nil, false
	}
	entry := r.cache.LoadMonth(r.method, y, m)
	if entry == nil {
		return nil, false
	}
	days, err := indexRecords(entry.Days, y, m)
	if err != nil {
		log.Debug("cached month unusable", "year", y, "month", int(m), "err", err)
		return nil, false
	}
	r.months[key] = days
	return days, true
}

// indexRecords maps Gregorian day-of-month to Hijri date, skipping records
// that fall outside the requested month.
func indexRecords(records []api.DateInfo, y int, m time.Month) (map[int]hijri.Date, error) {
	days := make(map[int]hijri.Date, len(records))
	for _, rec := range records {
		g, err := rec.Gregorian.Time()
		if err != nil {
			return nil, err
		}
		if g.Year() != y || g.Month() != m {
			continue
		}
		hd, hy, err := rec.Hijri.Numbers()
		if err != nil {
			return nil, err
		}
		days[g.Day()] = hijri.Date{Day: hd, MonthName: rec.Hijri.Month.En, Year: hy}
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("no usable records for %d-%02d", y, int(m))
	}
	return days, nil
}
