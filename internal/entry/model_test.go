package entry

import (
	"testing"
	"time"

	"thisday/internal/calendar"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCaption(t *testing.T) {
	assert.True(t, (&Entry{Caption: "hello"}).HasCaption())
	assert.True(t, (&Entry{Caption: " x "}).HasCaption())
	assert.False(t, (&Entry{Caption: ""}).HasCaption())
	assert.False(t, (&Entry{Caption: " \t\n "}).HasCaption())
}

func TestHasMedia(t *testing.T) {
	assert.True(t, (&Entry{MediaAssetIDs: pq.StringArray{"a"}}).HasMedia())
	assert.True(t, (&Entry{MediaAssetIDs: pq.StringArray{"", "a"}}).HasMedia())
	assert.False(t, (&Entry{}).HasMedia())
	assert.False(t, (&Entry{MediaAssetIDs: pq.StringArray{"", ""}}).HasMedia())
}

func TestSetDate_KeepsDayMonthConsistent(t *testing.T) {
	var e Entry
	e.SetDate(calendar.DateOf(2024, 3, 9))

	assert.Equal(t, calendar.DateOf(2024, 3, 9), e.Date())
	assert.Equal(t, "03-09", e.DayMonth)
	// DayMonth is a pure projection of LocalDate.
	assert.Equal(t, e.Date().DayMonth(), e.DayMonth)
}

func TestNormalize_DerivesDateFromInstant(t *testing.T) {
	cal, err := calendar.New("Asia/Kolkata")
	require.NoError(t, err)

	// 21:00 UTC on March 8th is already March 9th in IST.
	e := Entry{ID: "x", CreatedAt: time.Date(2025, 3, 8, 21, 0, 0, 0, time.UTC)}
	require.NoError(t, e.Normalize(cal))

	assert.Equal(t, calendar.DateOf(2025, 3, 9), e.Date())
	assert.Equal(t, "03-09", e.DayMonth)
}

func TestNormalize_FillsMissingDayMonth(t *testing.T) {
	cal, err := calendar.New("Asia/Kolkata")
	require.NoError(t, err)

	e := Entry{ID: "x", CreatedAt: time.Now()}
	e.LocalDate = time.Date(2019, 12, 31, 0, 0, 0, 0, time.UTC)
	require.NoError(t, e.Normalize(cal))

	assert.Equal(t, "12-31", e.DayMonth)
}

func TestNormalize_KeepsExplicitDate(t *testing.T) {
	cal, err := calendar.New("Asia/Kolkata")
	require.NoError(t, err)

	// A backfilled entry keeps its explicit date even though CreatedAt
	// projects onto a different local day.
	e := Entry{ID: "x", CreatedAt: time.Date(2025, 3, 8, 21, 0, 0, 0, time.UTC)}
	e.SetDate(calendar.DateOf(2020, 1, 1))
	require.NoError(t, e.Normalize(cal))

	assert.Equal(t, calendar.DateOf(2020, 1, 1), e.Date())
}

func TestNormalize_Malformed(t *testing.T) {
	cal, err := calendar.New("Asia/Kolkata")
	require.NoError(t, err)

	e := Entry{ID: "x"}
	assert.ErrorIs(t, e.Normalize(cal), ErrMalformed)
}
