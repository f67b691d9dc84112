// Package search ranks notes against a free-text query.
//
// A note matches when any of its title, description, subject or contributor
// fields scores at or below the index threshold. Scores live in [0, 1], 0
// being a perfect match. A field containing the query scores 0. Otherwise two
// scorers run and the best wins: subsequence matching (sahilm/fuzzy), scored
// by how tightly the matched characters cluster, and approximate substring
// matching, the lowest Levenshtein distance between the query and any stretch
// of the field about as long as the query.
package search

import (
	"sort"
	"strings"

	"notesnest-web/internal/domain"

	"github.com/agnivade/levenshtein"
	"github.com/sahilm/fuzzy"
)

const DefaultThreshold = 0.4

type field struct {
	note  int
	text  string
	runes []rune
}

// fields adapts the flattened note fields to fuzzy.Source.
type fields []field

func (f fields) String(i int) string { return f[i].text }
func (f fields) Len() int            { return len(f) }

type Index struct {
	notes     []*domain.Note
	fields    fields
	threshold float64
}

func NewIndex(notes []*domain.Note, threshold float64) *Index {
	if threshold < 0 || threshold > 1 {
		threshold = DefaultThreshold
	}

	ix := &Index{
		notes:     notes,
		threshold: threshold,
	}
	for i, n := range notes {
		for _, text := range []string{n.Title, n.Description, n.Subject, n.Contributor} {
			text = strings.ToLower(strings.TrimSpace(text))
			if text == "" {
				continue
			}
			ix.fields = append(ix.fields, field{note: i, text: text, runes: []rune(text)})
		}
	}
	return ix
}

func (ix *Index) Len() int { return len(ix.notes) }

func (ix *Index) Threshold() float64 { return ix.threshold }

// Search returns the notes matching query, best first. Equal scores keep the
// collection order. An empty query returns every note.
func (ix *Index) Search(query string) []*domain.Note {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]*domain.Note, len(ix.notes))
		copy(out, ix.notes)
		return out
	}

	best := make(map[int]float64)
	record := func(note int, score float64) {
		if score > ix.threshold {
			return
		}
		if prev, ok := best[note]; !ok || score < prev {
			best[note] = score
		}
	}

	for _, f := range ix.fields {
		if strings.Contains(f.text, q) {
			record(f.note, 0)
		}
	}

	for _, m := range fuzzy.FindFrom(q, ix.fields) {
		record(ix.fields[m.Index].note, clusterScore(m.MatchedIndexes))
	}

	qRunes := []rune(q)
	for _, f := range ix.fields {
		if s, ok := best[f.note]; ok && s == 0 {
			continue
		}
		record(f.note, typoScore(qRunes, f.runes))
	}

	hits := make([]int, 0, len(best))
	for i := range best {
		hits = append(hits, i)
	}
	sort.Slice(hits, func(a, b int) bool {
		sa, sb := best[hits[a]], best[hits[b]]
		if sa != sb {
			return sa < sb
		}
		return hits[a] < hits[b]
	})

	out := make([]*domain.Note, 0, len(hits))
	for _, i := range hits {
		out = append(out, ix.notes[i])
	}
	return out
}

// clusterScore is 0 when the matched characters are contiguous and grows
// towards 1 as they spread over the field.
func clusterScore(matched []int) float64 {
	if len(matched) == 0 {
		return 1
	}
	span := matched[len(matched)-1] - matched[0] + 1
	n := len(matched)
	if span <= n {
		return 0
	}
	return 1 - float64(n)/float64(span)
}

// typoScore slides windows of len(q)-1 to len(q)+1 runes over text and
// returns the lowest edit distance relative to the query length. A text
// shorter than the query is compared whole.
func typoScore(q, text []rune) float64 {
	if len(q) == 0 || len(text) == 0 {
		return 1
	}

	qs := string(q)
	best := float64(levenshtein.ComputeDistance(qs, string(text))) / float64(len(q))
	for size := len(q) - 1; size <= len(q)+1; size++ {
		if size < 1 || size > len(text) {
			continue
		}
		for start := 0; start+size <= len(text); start++ {
			d := levenshtein.ComputeDistance(qs, string(text[start:start+size]))
			if score := float64(d) / float64(len(q)); score < best {
				best = score
			}
		}
	}
	if best > 1 {
		best = 1
	}
	return best
}
