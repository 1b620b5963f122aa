// Package ordering computes dense card positions for a column. It never
// touches storage: callers load the column, ask for new assignments, and
// write whatever changed.
package ordering

// Placement pairs a card ID with its position inside one column.
type Placement struct {
	ID       string
	Position int
}

// Reorder places movingID at targetIndex within column and reassigns every
// position as the 0-based index of the resulting sequence. The input must be
// the target column's cards sorted ascending by position; it may or may not
// already contain movingID (intra- vs inter-column move).
//
// The raw target index is decremented by one when the moving card sat earlier
// in the same sequence, so that dragging a card downward past itself lands at
// the intended visual slot. The index is then clamped to [0, len].
//
// The second return value is false when the move is a positional no-op: the
// card already sits at the computed index of this column and every position
// is already dense. Callers must skip all writes in that case.
func Reorder(column []Placement, movingID string, targetIndex int) ([]Placement, bool) {
	currentIndex := -1
	rest := make([]Placement, 0, len(column)+1)
	for i, p := range column {
		if p.ID == movingID {
			currentIndex = i
			continue
		}
		rest = append(rest, p)
	}

	if currentIndex >= 0 && currentIndex < targetIndex {
		targetIndex--
	}
	if targetIndex < 0 {
		targetIndex = 0
	}
	if targetIndex > len(rest) {
		targetIndex = len(rest)
	}

	seq := make([]Placement, 0, len(rest)+1)
	seq = append(seq, rest[:targetIndex]...)
	seq = append(seq, Placement{ID: movingID})
	seq = append(seq, rest[targetIndex:]...)

	changed := currentIndex != targetIndex
	for i := range seq {
		seq[i].Position = i
	}
	if !changed {
		// Same slot in the same column: still report a change if the stored
		// positions were not dense to begin with.
		for i, p := range column {
			if p.Position != i {
				changed = true
				break
			}
		}
	}
	return seq, changed
}

// Compact reassigns dense 0-based positions to a column as-is, preserving the
// current relative order. Used to close the gap in a source column after an
// inter-column move, and as the recommended repair pass when a partial
// reorder left duplicate or gapped positions. The second return value is
// false when every position already matched its index.
func Compact(column []Placement) ([]Placement, bool) {
	out := make([]Placement, len(column))
	changed := false
	for i, p := range column {
		if p.Position != i {
			changed = true
		}
		out[i] = Placement{ID: p.ID, Position: i}
	}
	return out, changed
}
