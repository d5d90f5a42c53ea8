package entry

import (
	"context"
	"log/slog"
	"sort"

	"thisday/internal/calendar"
)

// ReadService answers the temporal recall queries: exact day, this day in
// earlier months of the same year, this day in previous years, a single
// today-summary entry, and the whole-month calendar rollup. It never writes.
type ReadService struct {
	repo ReadRepository
	cal  calendar.Calendar
	log  *slog.Logger
}

func NewReadService(repo ReadRepository, cal calendar.Calendar, log *slog.Logger) *ReadService {
	return &ReadService{repo: repo, cal: cal, log: log}
}

// EntriesForDay returns every entry filed under the exact local day,
// oldest first.
func (s *ReadService) EntriesForDay(ctx context.Context, userID string, year, month, day int) ([]Entry, error) {
	if err := calendar.ValidateDate(year, month, day); err != nil {
		return nil, err
	}
	d := calendar.DateOf(year, month, day)

	rows, err := s.repo.FindByDateRange(ctx, userID, d, d)
	if err != nil {
		return nil, err
	}
	return s.sanitize(ctx, rows), nil
}

// SameDayPreviousMonths returns the best entry for this day-of-month in each
// earlier month of the same year, ascending by month. Deliberately never
// crosses a year boundary; SameDayPreviousYears covers the rest of history.
func (s *ReadService) SameDayPreviousMonths(ctx context.Context, userID string, year, month, day int) ([]Entry, error) {
	if err := calendar.ValidateDate(year, month, day); err != nil {
		return nil, err
	}
	if month == 1 {
		return []Entry{}, nil
	}

	from := calendar.DateOf(year, 1, 1)
	to := calendar.DateOf(year, month, day)
	rows, err := s.repo.FindByDateRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	var candidates []Entry
	for _, e := range s.sanitize(ctx, rows) {
		d := e.Date()
		if d.Day == day && d.Month < month {
			candidates = append(candidates, e)
		}
	}

	out := bestPerKey(candidates, func(e *Entry) int { return e.Date().Month })
	return out, nil
}

// SameDayPreviousYears returns the best entry for this (month, day) in each
// year strictly before the reference date, ascending by year.
func (s *ReadService) SameDayPreviousYears(ctx context.Context, userID string, year, month, day int) ([]Entry, error) {
	if err := calendar.ValidateDate(year, month, day); err != nil {
		return nil, err
	}
	ref := calendar.DateOf(year, month, day)

	rows, err := s.repo.FindByDayMonthBefore(ctx, userID, ref.DayMonth(), ref)
	if err != nil {
		return nil, err
	}

	out := bestPerKey(s.sanitize(ctx, rows), func(e *Entry) int { return e.Date().Year })
	return out, nil
}

// TodaySummary picks the single best entry of the exact local day, or nil
// when the day is empty.
func (s *ReadService) TodaySummary(ctx context.Context, userID string, year, month, day int) (*Entry, error) {
	rows, err := s.EntriesForDay(ctx, userID, year, month, day)
	if err != nil {
		return nil, err
	}
	best, ok := Best(rows)
	if !ok {
		return nil, nil
	}
	return &best, nil
}

// CalendarDay is one rollup row for the month calendar: a presence and
// thumbnail signal merged across every entry of the day, not a single
// winning entry.
type CalendarDay struct {
	Date                  string `json:"date"`
	HasEntries            bool   `json:"hasEntries"`
	HasCaption            bool   `json:"hasCaption"`
	RepresentativeAssetID string `json:"representativeAssetId,omitempty"`
}

// CalendarMonth returns one row per calendar day of the month that has at
// least one entry, ascending by date. HasCaption is an OR across the day;
// the representative asset is the first non-empty id found scanning the
// day's entries oldest-first with each entry's own upload order preserved.
func (s *ReadService) CalendarMonth(ctx context.Context, userID string, year, month int) ([]CalendarDay, error) {
	if err := calendar.ValidateMonth(year, month); err != nil {
		return nil, err
	}

	from := calendar.DateOf(year, month, 1)
	lastDay := dateValue(from).AddDate(0, 1, -1).Day()
	to := calendar.DateOf(year, month, lastDay)

	rows, err := s.repo.FindByDateRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	entries := s.sanitize(ctx, rows)

	// Oldest entry of the day first; repository order already matches but
	// the rollup must not depend on arrival order.
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].ID < entries[j].ID
	})

	byDate := map[string]*CalendarDay{}
	var order []string
	for i := range entries {
		e := &entries[i]
		key := e.Date().String()

		day, ok := byDate[key]
		if !ok {
			day = &CalendarDay{Date: key, HasEntries: true}
			byDate[key] = day
			order = append(order, key)
		}
		if e.HasCaption() {
			day.HasCaption = true
		}
		if day.RepresentativeAssetID == "" {
			for _, id := range e.MediaAssetIDs {
				if id != "" {
					day.RepresentativeAssetID = id
					break
				}
			}
		}
	}

	sort.Strings(order)
	out := make([]CalendarDay, 0, len(order))
	for _, key := range order {
		out = append(out, *byDate[key])
	}
	return out, nil
}

// sanitize normalizes legacy rows and drops the ones that cannot be placed
// in any bucket. One bad historical record must not break recall of the
// rest, so bad rows are logged and skipped, never fatal.
func (s *ReadService) sanitize(ctx context.Context, rows []Entry) []Entry {
	out := make([]Entry, 0, len(rows))
	for _, e := range rows {
		if err := e.Normalize(s.cal); err != nil {
			s.log.WarnContext(ctx, "skipping malformed entry", "entry_id", e.ID, "error", err)
			continue
		}
		out = append(out, e)
	}
	return out
}
