package board

import (
	"fmt"
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/thenoetrevino/salesboard/internal/models"
)

// sequenceFrom turns generated status indexes into a board sequence r0..rN
func sequenceFrom(statusIdx []int) []models.Request {
	seq := make([]models.Request, len(statusIdx))
	for i, s := range statusIdx {
		seq[i] = req(fmt.Sprintf("r%d", i), models.BoardStatuses[s])
	}
	return seq
}

// pickID maps a generated index to an id; out-of-range indexes yield an id
// that is not on the board
func pickID(seq []models.Request, i int) string {
	if i >= 0 && i < len(seq) {
		return seq[i].ID
	}
	return "missing"
}

func sortedIDs(seq []models.Request) []string {
	ids := make([]string, len(seq))
	for i, r := range seq {
		ids[i] = r.ID
	}
	sort.Strings(ids)
	return ids
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func boardParameters() *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	return parameters
}

var (
	genSequence = gen.SliceOf(gen.IntRange(0, len(models.BoardStatuses)-1))
	genIndex    = gen.IntRange(-1, 12)
	genStatus   = gen.IntRange(0, len(models.BoardStatuses)-1)
)

// Length and id multiset never change across a move
func TestProperty_MovePreservesMembers(t *testing.T) {
	properties := gopter.NewProperties(boardParameters())

	properties.Property("move keeps every id exactly once", prop.ForAll(
		func(statusIdx []int, moveIdx, target, beforeIdx int) bool {
			seq := sequenceFrom(statusIdx)
			got := MoveLocally(seq, pickID(seq, moveIdx), models.BoardStatuses[target], pickID(seq, beforeIdx))
			return len(got) == len(seq) && equalStrings(sortedIDs(got), sortedIDs(seq))
		},
		genSequence, genIndex, genStatus, genIndex,
	))

	properties.TestingRun(t)
}

// Grouping the same sequence twice yields the same columns
func TestProperty_GroupingIdempotent(t *testing.T) {
	properties := gopter.NewProperties(boardParameters())

	properties.Property("group twice is identical", prop.ForAll(
		func(statusIdx []int) bool {
			seq := sequenceFrom(statusIdx)
			a := GroupByColumn(seq, models.BoardStatuses)
			b := GroupByColumn(seq, models.BoardStatuses)
			if len(a) != len(b) {
				return false
			}
			total := 0
			for i := range a {
				if a[i].Status != b[i].Status || !equalStrings(layout(a[i].Items), layout(b[i].Items)) {
					return false
				}
				total += len(a[i].Items)
			}
			return total == len(seq)
		},
		genSequence,
	))

	properties.TestingRun(t)
}

// Moving an id that is not on the board returns the input unchanged
func TestProperty_UnknownIDNoop(t *testing.T) {
	properties := gopter.NewProperties(boardParameters())

	properties.Property("unknown id is a no-op", prop.ForAll(
		func(statusIdx []int, target int) bool {
			seq := sequenceFrom(statusIdx)
			got := MoveLocally(seq, "missing", models.BoardStatuses[target], "")
			return equalStrings(layout(got), layout(seq))
		},
		genSequence, genStatus,
	))

	properties.TestingRun(t)
}

// A before id that is absent after removal sends the item to the end
func TestProperty_MissingBeforeAppends(t *testing.T) {
	properties := gopter.NewProperties(boardParameters())

	properties.Property("missing before id appends", prop.ForAll(
		func(statusIdx []int, moveIdx, target int) bool {
			seq := sequenceFrom(statusIdx)
			if len(seq) == 0 {
				return true
			}
			id := seq[moveIdx%len(seq)].ID
			got := MoveLocally(seq, id, models.BoardStatuses[target], "not-there")
			last := got[len(got)-1]
			return last.ID == id && last.Status == models.BoardStatuses[target]
		},
		genSequence, gen.IntRange(0, 50), genStatus,
	))

	properties.TestingRun(t)
}

// Without a before id the item lands right after the target column's last
// item, and every other item keeps its relative order
func TestProperty_DefaultAppendOrdering(t *testing.T) {
	properties := gopter.NewProperties(boardParameters())

	properties.Property("default insertion follows the target run", prop.ForAll(
		func(statusIdx []int, moveIdx, target int) bool {
			seq := sequenceFrom(statusIdx)
			if len(seq) == 0 {
				return true
			}
			id := seq[moveIdx%len(seq)].ID
			status := models.BoardStatuses[target]
			got := MoveLocally(seq, id, status, "")

			var others, gotOthers []string
			for _, r := range seq {
				if r.ID != id {
					others = append(others, r.ID)
				}
			}
			pos := -1
			for i, r := range got {
				if r.ID == id {
					pos = i
					continue
				}
				gotOthers = append(gotOthers, r.ID)
			}
			if !equalStrings(others, gotOthers) {
				return false
			}

			lastTarget := -1
			for i, r := range got {
				if i != pos && r.Status == status {
					lastTarget = i
				}
			}
			if lastTarget == -1 {
				return pos == len(got)-1
			}
			return pos == lastTarget+1
		},
		genSequence, gen.IntRange(0, 50), genStatus,
	))

	properties.TestingRun(t)
}
