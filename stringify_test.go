package fluentexpr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func renderOf(t *testing.T, n node) string {
	t.Helper()
	got, err := render(n)
	require.NoError(t, err)
	return got
}

func TestQuantifierTokens(t *testing.T) {
	cases := []struct {
		min, max int
		lazy     bool
		want     string
	}{
		{0, 1, false, "?"},
		{0, -1, false, "*"},
		{1, -1, false, "+"},
		{2, -1, false, "{2,}"},
		{3, 3, false, "{3}"},
		{2, 4, false, "{2,4}"},
		{0, -1, true, "*?"},
		{0, 1, true, "??"},
		{2, 4, true, "{2,4}?"},
	}
	for _, tc := range cases {
		got, err := quantifier(tc.min, tc.max, tc.lazy)
		require.NoError(t, err)
		require.Equal(t, tc.want, got)
	}
}

func TestQuantifierMinOverMax(t *testing.T) {
	_, err := quantifier(5, 2, false)
	var qErr *UnsupportedQuantifierRangeError
	require.ErrorAs(t, err, &qErr)
	require.Equal(t, 5, qErr.Min)
	require.Equal(t, 2, qErr.Max)
}

func TestQuantifiedSequenceIsGroupedAsAUnit(t *testing.T) {
	seq := then(lit("a"), lit("b"))
	got := renderOf(t, repeated(seq, 2, 4, false))
	require.Equal(t, "(?:ab){2,4}", got)
}

func TestQuantifiedAtomsSkipGrouping(t *testing.T) {
	require.Equal(t, "[abc]*", renderOf(t, repeated(classOf("abc", false), 0, -1, false)))
	require.Equal(t, `\d+`, renderOf(t, repeated(&builtinNode{kind: builtinDigit}, 1, -1, false)))
	require.Equal(t, "a?", renderOf(t, repeated(lit("a"), 0, 1, false)))
	require.Equal(t, `\.{2}`, renderOf(t, repeated(lit(`\.`), 2, 2, false)))
	g, err := group(lit("ab"), "")
	require.NoError(t, err)
	require.Equal(t, "(ab)+", renderOf(t, repeated(g, 1, -1, false)))
}

func TestQuantifiedMultiCharLiteralIsGrouped(t *testing.T) {
	require.Equal(t, "(?:abc){2}", renderOf(t, repeated(lit("abc"), 2, 2, false)))
}

func TestQuantifiedWordBuiltinIsGrouped(t *testing.T) {
	// \w+ must not absorb a second quantifier.
	require.Equal(t, `(?:\w+){2}`, renderOf(t, repeated(&builtinNode{kind: builtinWord}, 2, 2, false)))
}

func TestAlternationChildOfSequenceIsGrouped(t *testing.T) {
	got := renderOf(t, then(lit("a"), or(lit("b"), lit("c"))))
	require.Equal(t, "a(?:b|c)", got)
}

func TestTopLevelAlternationStaysBare(t *testing.T) {
	got := renderOf(t, or(then(lit("a"), lit("b")), lit("c")))
	require.Equal(t, "ab|c", got)
}

func TestGroupRendering(t *testing.T) {
	plain, err := group(lit("ab"), "")
	require.NoError(t, err)
	require.Equal(t, "(ab)", renderOf(t, plain))

	named, err := group(lit("ab"), "pair")
	require.NoError(t, err)
	require.Equal(t, "(?<pair>ab)", renderOf(t, named))
}

func TestLookaroundRendering(t *testing.T) {
	require.Equal(t, "(?=x)", renderOf(t, &lookaroundNode{child: lit("x")}))
	require.Equal(t, "(?!x)", renderOf(t, &lookaroundNode{child: lit("x"), negate: true}))
	require.Equal(t, "(?<=x)", renderOf(t, &lookaroundNode{child: lit("x"), behind: true}))
	require.Equal(t, "(?<!x)", renderOf(t, &lookaroundNode{child: lit("x"), behind: true, negate: true}))
}

func TestCharClassEscaping(t *testing.T) {
	got := renderOf(t, classOf(`a]^-\`, false))
	require.Equal(t, `[a\]\^\-\\]`, got)
}

func TestNegatedCharClassWithRanges(t *testing.T) {
	n, err := classOfRanges([]string{"0", "9"}, true)
	require.NoError(t, err)
	require.Equal(t, "[^0-9]", renderOf(t, n))
}

func TestBuiltinTokens(t *testing.T) {
	want := map[builtinKind]string{
		builtinWhitespace: `\s`,
		builtinDigit:      `\d`,
		builtinWord:       `\w+`,
		builtinTab:        `\t`,
		builtinLineBreak:  `(?:\r\n|\r|\n)`,
		builtinAnyChar:    `.`,
	}
	for kind, token := range want {
		require.Equal(t, token, renderOf(t, &builtinNode{kind: kind}))
	}
}

func TestStringifyAppliesAnchorsAndCanonicalFlags(t *testing.T) {
	r := rootNode{node: lit("abc"), prefix: "^", suffix: "$", flags: "img"}
	source, flags, err := stringify(r)
	require.NoError(t, err)
	require.Equal(t, "^abc$", source)
	require.Equal(t, "gim", flags)
}

func TestStringifyPropagatesQuantifierError(t *testing.T) {
	r := rootNode{node: repeated(lit("a"), 5, 2, false), flags: defaultFlags}
	_, _, err := stringify(r)
	var qErr *UnsupportedQuantifierRangeError
	require.ErrorAs(t, err, &qErr)
}

func TestCanonicalFlagOrderIsStable(t *testing.T) {
	require.Equal(t, canonicalFlags("gim"), canonicalFlags("mig"))
	require.Equal(t, "dgimsuy", canonicalFlags("yusmigd"))
	// Unknown characters sort after the known ones.
	require.Equal(t, "giqz", canonicalFlags("zqgi"))
}
