package levenshtein

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var distanceTestCases = []struct {
	s1     string
	s2     string
	wanted int
}{
	{"", "", 0},
	{"", "a", 1},
	{"a", "", 1},
	{"a", "a", 0},
	{"a", "b", 1},
	{"ab", "ab", 0},
	{"ab", "aa", 1},
	{"ab", "aaa", 2},
	{"kitten", "sitting", 3},
	{"sitting", "kitten", 3},
	{"aaa", "ab", 2},
	{"aa", "aü", 1},
	{"Fön", "Föm", 1},
	{"abc", "def", 3},
	{"abc", "abd", 1},
	{"foo", "bar", 3},
	{"x", "xyz", 2},
	{"xyz", "x", 2},
	{"insert", "inser", 1},
	{"inser", "insert", 1},
}

func TestDistance(t *testing.T) {
	t.Parallel()

	ctx := &Context{}

	for _, tc := range distanceTestCases {
		assert.Equal(t, tc.wanted, ctx.Distance(tc.s1, tc.s2), "Distance(%q, %q)", tc.s1, tc.s2)
	}
}

func TestDistanceIdentity(t *testing.T) {
	t.Parallel()

	ctx := &Context{}
	inputs := []string{"", "a", "kitten", "Fön", strings.Repeat("x", 500), "αβγδε"}

	for _, s := range inputs {
		assert.Zero(t, ctx.Distance(s, s), "Distance(%q, %q)", s, s)
	}
}

func TestDistanceSymmetry(t *testing.T) {
	t.Parallel()

	ctx := &Context{}
	inputs := []string{"", "kitten", "sitting", "ab", "aaa", "Fön", "Föm", "xyz"}

	for i, a := range inputs {
		for j, b := range inputs {
			if i == j {
				continue
			}

			assert.Equal(t, ctx.Distance(a, b), ctx.Distance(b, a),
				"Distance(%q, %q) vs Distance(%q, %q)", a, b, b, a)
		}
	}
}

func TestDistanceEmptyIsLength(t *testing.T) {
	t.Parallel()

	ctx := &Context{}

	for _, s := range []string{"a", "hello", "Fön", "αβγ"} {
		assert.Equal(t, len([]rune(s)), ctx.Distance("", s), "Distance(\"\", %q)", s)
	}
}

func TestDistanceBufferReuse(t *testing.T) {
	t.Parallel()

	ctx := &Context{}

	// Grow the buffer with long inputs, then verify short inputs still compute
	// correctly on the oversized row.
	long := strings.Repeat("x", 200)
	_ = ctx.Distance(long, long+"y")

	assert.Equal(t, 3, ctx.Distance("kitten", "sitting"))
}

func TestDistancePackageLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, Distance("foo", "bar"))
}

func BenchmarkDistance(b *testing.B) {
	ctx := &Context{}
	s1 := strings.Repeat("the quick brown fox ", 4)
	s2 := strings.Repeat("the quack brawn fix ", 4)

	b.ResetTimer()

	for range b.N {
		ctx.Distance(s1, s2)
	}
}
