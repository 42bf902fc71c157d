package domain

import (
	"fmt"
	"slices"
)

// removeAt removes the elements at the selected positions of s in a single
// compaction pass. Positions refer to s as it was before the call, so the
// order in which they are supplied does not matter and duplicates collapse.
//
// kept preserves the relative order of the survivors. removed lists the
// selected elements in descending original-index order.
//
// The whole selection is validated before anything is removed: an empty
// selection or any out-of-range position rejects the batch.
func removeAt(s []Task, positions []int) (kept, removed []Task, err error) {
	if len(positions) == 0 {
		return nil, nil, ErrNoSelection
	}

	mask := make([]bool, len(s))
	selected := 0
	for _, i := range positions {
		if i < 0 || i >= len(s) {
			return nil, nil, fmt.Errorf("%w: %d (size %d)", ErrIndexOutOfRange, i, len(s))
		}
		if !mask[i] {
			mask[i] = true
			selected++
		}
	}

	kept = make([]Task, 0, len(s)-selected)
	removed = make([]Task, 0, selected)
	for i, t := range s {
		if !mask[i] {
			kept = append(kept, t)
		}
	}
	for i := len(s) - 1; i >= 0; i-- {
		if mask[i] {
			removed = append(removed, s[i])
		}
	}
	return kept, removed, nil
}

// removeValues removes the given tasks from s by value. Every task must be
// present; otherwise the batch is rejected and s is left untouched.
func removeValues(s []Task, items []Task) (kept, removed []Task, err error) {
	if len(items) == 0 {
		return nil, nil, ErrNoSelection
	}

	positions := make([]int, 0, len(items))
	for _, item := range items {
		i := slices.Index(s, item)
		if i < 0 {
			return nil, nil, fmt.Errorf("%w: %s", ErrTaskNotFound, item)
		}
		positions = append(positions, i)
	}
	return removeAt(s, positions)
}

// appendUnique appends t to s unless s already holds it.
func appendUnique(s []Task, t Task) ([]Task, bool) {
	if slices.Contains(s, t) {
		return s, false
	}
	return append(s, t), true
}

// dedupe drops repeated tasks, keeping the first occurrence. Empty
// identifiers are dropped as well.
func dedupe(s []Task, exclude func(Task) bool) (out []Task, dropped int) {
	seen := make(map[Task]struct{}, len(s))
	out = make([]Task, 0, len(s))
	for _, t := range s {
		if t == "" {
			dropped++
			continue
		}
		if _, ok := seen[t]; ok || (exclude != nil && exclude(t)) {
			dropped++
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out, dropped
}
