// Package levenshtein calculates the Levenshtein edit distance between strings.
package levenshtein

// Context owns the reusable DP row so that repeated Distance calls perform
// zero allocations once the buffer has grown to the working size.
type Context struct {
	row []int
}

func (ctx *Context) getRow(length int) []int {
	if cap(ctx.row) < length {
		ctx.row = make([]int, length)
	}

	return ctx.row[:length]
}

// Distance returns the minimum number of single-rune insertions, deletions
// and substitutions needed to transform a into b. Costs are unweighted and
// transpositions are not considered.
//
// Equal and empty inputs are short-circuited. The general case is a row-wise
// dynamic program iterating the longer string outside and keeping one row
// sized by the shorter string, giving O(len(a)*len(b)) time and
// O(min(len(a),len(b))) auxiliary space.
func (ctx *Context) Distance(a, b string) int {
	if a == b {
		return 0
	}

	short := []rune(a)
	long := []rune(b)

	if len(short) > len(long) {
		short, long = long, short
	}

	if len(short) == 0 {
		return len(long)
	}

	row := ctx.getRow(len(short) + 1)
	for i := range row {
		row[i] = i
	}

	for i, longRune := range long {
		row[0] = i + 1
		diag := i

		for j, shortRune := range short {
			oldDiag := row[j+1]

			cost := 0
			if shortRune != longRune {
				cost = 1
			}

			row[j+1] = min(
				row[j+1]+1,
				row[j]+1,
				diag+cost,
			)
			diag = oldDiag
		}
	}

	return row[len(short)]
}

// Distance is a convenience wrapper around Context.Distance for one-off calls.
func Distance(a, b string) int {
	return (&Context{}).Distance(a, b)
}
