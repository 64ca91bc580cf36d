package selection

import "golang.org/x/text/width"

// GoalColumn computes the on-screen column a position within line reaches,
// counting East-Asian wide and fullwidth runes as two columns and
// halfwidth/narrow/neutral runes as one. Vertical cursor motion (up/down
// arrow) uses this as its "goal column" so the cursor tracks a consistent
// screen position through lines of mixed-width text, rather than a raw
// code-point count that would drift on any line containing wide glyphs.
func GoalColumn(line string, pos int) int {
	col := 0
	i := 0
	for _, r := range line {
		if i >= pos {
			break
		}
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			col += 2
		default:
			col++
		}
		i++
	}
	return col
}

// ColumnToPos is the inverse of GoalColumn: given a target screen column,
// returns the code-point position in line whose column is closest to (but
// not past) target, for restoring a goal column after moving to a shorter
// line.
func ColumnToPos(line string, target int) int {
	col := 0
	pos := 0
	for _, r := range line {
		w := 1
		if k := width.LookupRune(r).Kind(); k == width.EastAsianWide || k == width.EastAsianFullwidth {
			w = 2
		}
		if col+w > target {
			break
		}
		col += w
		pos++
	}
	return pos
}
