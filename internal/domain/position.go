package domain

// Immutable grid position (row, column).
// Grid extents are descriptive only; positions are never bounds-checked.
type Position struct {
	Row int
	Col int
}

// Distance returns the Manhattan distance between two positions.
func Distance(a, b Position) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
