// Package fluentexpr builds regular expressions compositionally and
// compiles them for the regexp2 engine. Expressions are immutable
// trees; every operation returns a new value, so expressions can be
// shared and branched freely, including across goroutines.
package fluentexpr

// node is one immutable unit of the expression tree. The constructors
// in algebra.go are the only producers; nothing mutates a node after
// construction.
type node interface{ isNode() }

type emptyNode struct{}

type literalNode struct {
	source  string
	escaped bool // true when source went through escapeLiteral
}

type sequenceNode struct{ children []node }

type altNode struct{ alternatives []node }

type repNode struct {
	child    node
	min, max int // max<0 means "unbounded"
	lazy     bool
}

type groupNode struct {
	child node
	name  string // empty for a plain capturing group
}

type lookaroundNode struct {
	child  node
	behind bool // lookbehind instead of lookahead
	negate bool
}

type charRange struct{ lo, hi rune }

type charClassNode struct {
	chars   []rune // deduplicated, first-occurrence order
	ranges  []charRange
	negated bool
}

type builtinKind int

const (
	builtinWhitespace builtinKind = iota
	builtinDigit
	builtinWord
	builtinTab
	builtinLineBreak
	builtinAnyChar
)

type builtinNode struct{ kind builtinKind }

func (*emptyNode) isNode()      {}
func (*literalNode) isNode()    {}
func (*sequenceNode) isNode()   {}
func (*altNode) isNode()        {}
func (*repNode) isNode()        {}
func (*groupNode) isNode()      {}
func (*lookaroundNode) isNode() {}
func (*charClassNode) isNode()  {}
func (*builtinNode) isNode()    {}
