package entry

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rankBase = time.Date(2025, 3, 9, 6, 0, 0, 0, time.UTC)

func testEntry(id string, caption string, assets []string, createdOffset time.Duration) Entry {
	return Entry{
		ID:            id,
		UserID:        "user-1",
		Caption:       caption,
		MediaAssetIDs: pq.StringArray(assets),
		CreatedAt:     rankBase.Add(createdOffset),
	}
}

func TestBetter_MediaBeatsCaption(t *testing.T) {
	withMedia := testEntry("a", "", []string{"asset-1"}, time.Hour)
	withCaption := testEntry("b", "wrote a lot", nil, 0)

	assert.True(t, Better(&withMedia, &withCaption))
	assert.False(t, Better(&withCaption, &withMedia))
}

func TestBetter_CaptionBeatsBare(t *testing.T) {
	withCaption := testEntry("a", "hello", nil, time.Hour)
	bare := testEntry("b", "", nil, 0)

	assert.True(t, Better(&withCaption, &bare))
	assert.False(t, Better(&bare, &withCaption))
}

func TestBetter_WhitespaceCaptionDoesNotCount(t *testing.T) {
	blank := testEntry("a", "   \t ", nil, 0)
	real := testEntry("b", "x", nil, time.Hour)

	assert.True(t, Better(&real, &blank))
}

func TestBetter_EmptyAssetIDsDoNotCount(t *testing.T) {
	emptyAssets := testEntry("a", "", []string{"", ""}, 0)
	caption := testEntry("b", "x", nil, time.Hour)

	// All-empty asset list means no media, so the caption entry wins.
	assert.True(t, Better(&caption, &emptyAssets))
}

func TestBetter_OldestWinsOnEqualRichness(t *testing.T) {
	older := testEntry("a", "x", []string{"m"}, 0)
	newer := testEntry("b", "y", []string{"n"}, time.Minute)

	assert.True(t, Better(&older, &newer))
	assert.False(t, Better(&newer, &older))
}

func TestBetter_IDBreaksIdenticalInstant(t *testing.T) {
	a := testEntry("aaa", "x", nil, 0)
	b := testEntry("bbb", "x", nil, 0)

	assert.True(t, Better(&a, &b))
	assert.False(t, Better(&b, &a))
}

func TestBest_Empty(t *testing.T) {
	_, ok := Best(nil)
	assert.False(t, ok)
}

func TestBest_ReturnsInputElement(t *testing.T) {
	entries := []Entry{
		testEntry("a", "", nil, 0),
		testEntry("b", "caption", nil, time.Minute),
		testEntry("c", "", []string{"m"}, 2*time.Minute),
	}

	best, ok := Best(entries)
	require.True(t, ok)
	assert.Equal(t, "c", best.ID)
}

func TestBest_OrderInsensitive(t *testing.T) {
	a := testEntry("a", "", []string{"m"}, 0)
	b := testEntry("b", "caption", nil, time.Minute)
	c := testEntry("c", "", nil, 2*time.Minute)

	forward, ok := Best([]Entry{a, b, c})
	require.True(t, ok)
	backward, ok := Best([]Entry{c, b, a})
	require.True(t, ok)

	assert.Equal(t, forward.ID, backward.ID)
}

func TestBest_IdempotentOnWinner(t *testing.T) {
	entries := []Entry{
		testEntry("a", "caption", []string{"m"}, 0),
		testEntry("b", "", nil, time.Minute),
	}

	winner, ok := Best(entries)
	require.True(t, ok)

	again, ok := Best([]Entry{winner})
	require.True(t, ok)
	assert.Equal(t, winner.ID, again.ID)
}

func TestBestPerKey_AscendingKeys(t *testing.T) {
	mk := func(id string, month int) Entry {
		e := testEntry(id, "", nil, 0)
		e.SetDate(calDate(2025, month, 9))
		return e
	}

	out := bestPerKey(
		[]Entry{mk("dec", 12), mk("mar", 3), mk("jul", 7)},
		func(e *Entry) int { return e.Date().Month },
	)

	require.Len(t, out, 3)
	assert.Equal(t, []string{"mar", "jul", "dec"}, []string{out[0].ID, out[1].ID, out[2].ID})
}

func TestBestPerKey_OneWinnerPerBucket(t *testing.T) {
	rich := testEntry("rich", "caption", []string{"m"}, time.Hour)
	rich.SetDate(calDate(2025, 3, 9))
	poor := testEntry("poor", "", nil, 0)
	poor.SetDate(calDate(2025, 3, 9))

	out := bestPerKey([]Entry{poor, rich}, func(e *Entry) int { return e.Date().Month })

	require.Len(t, out, 1)
	assert.Equal(t, "rich", out[0].ID)
}
