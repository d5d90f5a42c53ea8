package entry

import "sort"

// Better reports whether a outranks b inside one bucket, best first:
// media beats no media, then caption beats no caption, then the oldest
// CreatedAt wins (the first entry logged that day is canonical when richness
// is tied). ID breaks an identical-instant tie so the order stays total.
func Better(a, b *Entry) bool {
	am, bm := a.HasMedia(), b.HasMedia()
	if am != bm {
		return am
	}
	ac, bc := a.HasCaption(), b.HasCaption()
	if ac != bc {
		return ac
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// Best picks the single winning entry of a bucket. Insensitive to input
// order; false when the bucket is empty.
func Best(entries []Entry) (Entry, bool) {
	if len(entries) == 0 {
		return Entry{}, false
	}
	best := entries[0]
	for i := 1; i < len(entries); i++ {
		if Better(&entries[i], &best) {
			best = entries[i]
		}
	}
	return best, true
}

// bestPerKey buckets entries by key and returns one winner per bucket,
// ordered by ascending key.
func bestPerKey(entries []Entry, key func(*Entry) int) []Entry {
	buckets := map[int]Entry{}
	for i := range entries {
		k := key(&entries[i])
		cur, ok := buckets[k]
		if !ok || Better(&entries[i], &cur) {
			buckets[k] = entries[i]
		}
	}

	keys := make([]int, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, buckets[k])
	}
	return out
}
