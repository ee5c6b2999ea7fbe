package hijri

import "fmt"

// Event is a fixed annual Islamic observance on a Hijri month and day.
type Event struct {
	Name        string `json:"name"`
	Month       Month  `json:"month"`
	Day         int    `json:"day"`
	Description string `json:"description"`
}

// String returns "Name (Description)".
func (e Event) String() string {
	return fmt.Sprintf("%s (%s)", e.Name, e.Description)
}

// catalog is never handed out directly; callers get copies.
var catalog = [...]Event{
	{Name: "Islamic New Year", Month: Muharram, Day: 1, Description: "1st Muharram"},
	{Name: "Ashura", Month: Muharram, Day: 10, Description: "10th Muharram"},
	{Name: "Mawlid al-Nabi", Month: RabiAlAwwal, Day: 12, Description: "12th Rabi al-Awwal"},
	{Name: "Isra and Mi'raj", Month: Rajab, Day: 27, Description: "27th Rajab"},
	{Name: "Mid-Sha'ban", Month: Shaban, Day: 15, Description: "15th Sha'ban"},
	{Name: "Ramadan Starts", Month: Ramadan, Day: 1, Description: "1st Ramadan"},
	{Name: "Laylat al-Qadr", Month: Ramadan, Day: 27, Description: "27th Ramadan (approx)"},
	{Name: "Eid al-Fitr", Month: Shawwal, Day: 1, Description: "1st Shawwal"},
	{Name: "Day of Arafah", Month: DhulHijjah, Day: 9, Description: "9th Dhul-Hijjah"},
	{Name: "Eid al-Adha", Month: DhulHijjah, Day: 10, Description: "10th Dhul-Hijjah"},
}

// UpcomingEvents returns the whole event catalog in catalog order.
//
// It is not filtered or sorted relative to today: every event is returned
// regardless of the current date.
func UpcomingEvents() []Event {
	out := make([]Event, len(catalog))
	copy(out, catalog[:])
	return out
}

// LookupEvent returns a copy of the event on the given Hijri month and day,
// or nil. An unknown month never matches.
func LookupEvent(m Month, day int) *Event {
	if !m.Valid() {
		return nil
	}
	for _, e := range catalog {
		if e.Month == m && e.Day == day {
			return &e
		}
	}
	return nil
}
