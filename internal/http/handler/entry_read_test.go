package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"thisday/internal/auth"
	"thisday/internal/calendar"
	"thisday/internal/entry"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReadRepo struct {
	entries []entry.Entry
}

func (s *stubReadRepo) FindByDateRange(ctx context.Context, userID string, from, to calendar.Date) ([]entry.Entry, error) {
	var out []entry.Entry
	for _, e := range s.entries {
		if e.UserID != userID {
			continue
		}
		d := e.Date()
		if !d.Before(from) && !to.Before(d) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubReadRepo) FindByDayMonthBefore(ctx context.Context, userID, dayMonth string, before calendar.Date) ([]entry.Entry, error) {
	var out []entry.Entry
	for _, e := range s.entries {
		if e.UserID == userID && e.DayMonth == dayMonth && e.Date().Before(before) {
			out = append(out, e)
		}
	}
	return out, nil
}

func readHandler(t *testing.T, repo *stubReadRepo) *EntryReadHandler {
	t.Helper()
	cal, err := calendar.New("Asia/Kolkata")
	require.NoError(t, err)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &EntryReadHandler{Svc: entry.NewReadService(repo, cal, log)}
}

func authedGet(target, userID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	claims := &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: userID}}
	return req.WithContext(auth.WithClaims(req.Context(), claims))
}

func stored(id, userID string, d calendar.Date, caption string, assets []string) entry.Entry {
	e := entry.Entry{
		ID:            id,
		UserID:        userID,
		Caption:       caption,
		MediaAssetIDs: pq.StringArray(assets),
		CreatedAt:     time.Date(d.Year, time.Month(d.Month), d.Day, 6, 0, 0, 0, time.UTC),
	}
	e.SetDate(d)
	return e
}

func TestDay_ReturnsEntries(t *testing.T) {
	repo := &stubReadRepo{entries: []entry.Entry{
		stored("e1", "u1", calendar.DateOf(2025, 3, 9), "hello", []string{"a1"}),
		stored("other", "u2", calendar.DateOf(2025, 3, 9), "not mine", nil),
	}}
	h := readHandler(t, repo)

	rec := httptest.NewRecorder()
	h.Day(rec, authedGet("/api/entries/day?year=2025&month=3&day=9", "u1"))

	require.Equal(t, http.StatusOK, rec.Code)

	var got []entryDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "e1", got[0].ID)
	assert.Equal(t, "2025-03-09", got[0].Date)
	assert.Equal(t, []string{"a1"}, got[0].MediaAssetIDs)
}

func TestDay_InvalidDate(t *testing.T) {
	h := readHandler(t, &stubReadRepo{})

	rec := httptest.NewRecorder()
	h.Day(rec, authedGet("/api/entries/day?year=2025&month=4&day=31", "u1"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Day(rec, authedGet("/api/entries/day?year=2025&month=x&day=1", "u1"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDay_EmptyIsOKWithEmptyList(t *testing.T) {
	h := readHandler(t, &stubReadRepo{})

	rec := httptest.NewRecorder()
	h.Day(rec, authedGet("/api/entries/day?year=2025&month=3&day=9", "u1"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestPreviousYears_OrderedAscending(t *testing.T) {
	repo := &stubReadRepo{entries: []entry.Entry{
		stored("y2024", "u1", calendar.DateOf(2024, 3, 9), "", []string{"p"}),
		stored("y2023", "u1", calendar.DateOf(2023, 3, 9), "words", nil),
	}}
	h := readHandler(t, repo)

	rec := httptest.NewRecorder()
	h.PreviousYears(rec, authedGet("/api/entries/same-day/previous-years?year=2025&month=3&day=9", "u1"))

	require.Equal(t, http.StatusOK, rec.Code)

	var got []entryDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "y2023", got[0].ID)
	assert.Equal(t, "y2024", got[1].ID)
}

func TestTodaySummary_NoContentWhenEmpty(t *testing.T) {
	h := readHandler(t, &stubReadRepo{})

	rec := httptest.NewRecorder()
	h.TodaySummary(rec, authedGet("/api/entries/today/summary?year=2025&month=3&day=9", "u1"))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCalendar_Rollup(t *testing.T) {
	repo := &stubReadRepo{entries: []entry.Entry{
		stored("cap", "u1", calendar.DateOf(2025, 3, 9), "words", nil),
		stored("pic", "u1", calendar.DateOf(2025, 3, 9), "", []string{"asset-9"}),
	}}
	h := readHandler(t, repo)

	rec := httptest.NewRecorder()
	h.Calendar(rec, authedGet("/api/entries/calendar?year=2025&month=3", "u1"))

	require.Equal(t, http.StatusOK, rec.Code)

	var got []entry.CalendarDay
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "2025-03-09", got[0].Date)
	assert.True(t, got[0].HasCaption)
	assert.Equal(t, "asset-9", got[0].RepresentativeAssetID)
}

func TestCalendar_InvalidMonth(t *testing.T) {
	h := readHandler(t, &stubReadRepo{})

	rec := httptest.NewRecorder()
	h.Calendar(rec, authedGet("/api/entries/calendar?year=2025&month=13", "u1"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
