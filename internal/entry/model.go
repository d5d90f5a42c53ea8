package entry

import (
	"errors"
	"strings"
	"time"

	"thisday/internal/calendar"

	"github.com/lib/pq"
)

var (
	ErrNotFound   = errors.New("entry not found")
	ErrFutureDate = errors.New("cannot create entry for a future date")
	// ErrMalformed marks stored rows that carry neither a local date nor a
	// creation instant and therefore cannot be placed in any bucket.
	ErrMalformed = errors.New("malformed entry record")
)

// Entry is one journal entry. UserID, CreatedAt, LocalDate and DayMonth are
// immutable after creation; Caption and MediaAssetIDs may be edited later.
type Entry struct {
	ID            string         `gorm:"primaryKey;type:uuid"`
	UserID        string         `gorm:"index;not null"`
	Caption       string         `gorm:"type:text;not null;default:''"`
	MediaAssetIDs pq.StringArray `gorm:"type:text[];not null;default:'{}'"`

	// LocalDate is the calendar day the entry is filed under, in the
	// service zone. Normally derived from CreatedAt; backfilled entries
	// carry an explicit past date instead.
	LocalDate time.Time `gorm:"type:date;not null"`
	// DayMonth is the year-independent "MM-DD" projection of LocalDate.
	DayMonth string `gorm:"index;not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time
}

// Date returns LocalDate as a calendar value. The date column round-trips
// through UTC midnight, so the wall-clock fields are read directly.
func (e *Entry) Date() calendar.Date {
	return calendar.Date{Year: e.LocalDate.Year(), Month: int(e.LocalDate.Month()), Day: e.LocalDate.Day()}
}

// SetDate files the entry under d and keeps DayMonth consistent with it.
func (e *Entry) SetDate(d calendar.Date) {
	e.LocalDate = dateValue(d)
	e.DayMonth = d.DayMonth()
}

func (e *Entry) HasCaption() bool {
	return strings.TrimSpace(e.Caption) != ""
}

func (e *Entry) HasMedia() bool {
	for _, id := range e.MediaAssetIDs {
		if id != "" {
			return true
		}
	}
	return false
}

// Normalize collapses legacy storage conventions into the canonical shape:
// rows written before LocalDate existed carry only CreatedAt, and some early
// rows lack the DayMonth key. Bucketing code only ever sees normalized
// entries and never branches on storage vintage.
func (e *Entry) Normalize(cal calendar.Calendar) error {
	if e.LocalDate.IsZero() {
		if e.CreatedAt.IsZero() {
			return ErrMalformed
		}
		e.LocalDate = dateValue(cal.ToLocalDate(e.CreatedAt))
	}
	if e.DayMonth == "" {
		e.DayMonth = e.Date().DayMonth()
	}
	return nil
}

func dateValue(d calendar.Date) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}
