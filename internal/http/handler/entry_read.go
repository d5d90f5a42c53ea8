package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"thisday/internal/auth"
	"thisday/internal/calendar"
	"thisday/internal/entry"
)

type EntryReadHandler struct {
	Svc *entry.ReadService
}

type entryDTO struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Caption       string    `json:"caption"`
	MediaAssetIDs []string  `json:"mediaAssetIds"`
	Date          string    `json:"date"`
	DayMonth      string    `json:"dayMonth"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toEntryDTO(e *entry.Entry) entryDTO {
	return entryDTO{
		ID:            e.ID,
		UserID:        e.UserID,
		Caption:       e.Caption,
		MediaAssetIDs: []string(e.MediaAssetIDs),
		Date:          e.Date().String(),
		DayMonth:      e.DayMonth,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func toEntryDTOs(entries []entry.Entry) []entryDTO {
	out := make([]entryDTO, 0, len(entries))
	for i := range entries {
		out = append(out, toEntryDTO(&entries[i]))
	}
	return out
}

// Day returns all entries of one exact local day.
func (h *EntryReadHandler) Day(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	year, month, day, ok := dateParams(w, r)
	if !ok {
		return
	}

	rows, err := h.Svc.EntriesForDay(r.Context(), uid, year, month, day)
	if err != nil {
		writeReadErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTOs(rows))
}

// PreviousMonths returns the best entry for this day in each earlier month
// of the same year.
func (h *EntryReadHandler) PreviousMonths(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	year, month, day, ok := dateParams(w, r)
	if !ok {
		return
	}

	rows, err := h.Svc.SameDayPreviousMonths(r.Context(), uid, year, month, day)
	if err != nil {
		writeReadErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTOs(rows))
}

// PreviousYears returns the best entry for this (month, day) in each year
// before the reference date.
func (h *EntryReadHandler) PreviousYears(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	year, month, day, ok := dateParams(w, r)
	if !ok {
		return
	}

	rows, err := h.Svc.SameDayPreviousYears(r.Context(), uid, year, month, day)
	if err != nil {
		writeReadErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTOs(rows))
}

// TodaySummary returns the single best entry of the day, or 204 when the
// day is empty.
func (h *EntryReadHandler) TodaySummary(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	year, month, day, ok := dateParams(w, r)
	if !ok {
		return
	}

	best, err := h.Svc.TodaySummary(r.Context(), uid, year, month, day)
	if err != nil {
		writeReadErr(w, err)
		return
	}
	if best == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTO(best))
}

// Calendar returns the month rollup rows.
func (h *EntryReadHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	year, ok := intParam(w, r, "year")
	if !ok {
		return
	}
	month, ok := intParam(w, r, "month")
	if !ok {
		return
	}

	rows, err := h.Svc.CalendarMonth(r.Context(), uid, year, month)
	if err != nil {
		writeReadErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func dateParams(w http.ResponseWriter, r *http.Request) (year, month, day int, ok bool) {
	if year, ok = intParam(w, r, "year"); !ok {
		return
	}
	if month, ok = intParam(w, r, "month"); !ok {
		return
	}
	day, ok = intParam(w, r, "day")
	return
}

func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		http.Error(w, "invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return v, true
}

func writeReadErr(w http.ResponseWriter, err error) {
	if errors.Is(err, calendar.ErrInvalidDate) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, "server error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
