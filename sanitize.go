package fluentexpr

import (
	"fmt"
	"regexp"
	"strings"
)

// sanitized carries the root-wrapper fields one absorbed input value
// contributes.
type sanitized struct {
	node   node
	prefix string
	suffix string
	flags  string // "" when the input carries no flags
	err    error  // latched error of an absorbed sub-expression
}

// sanitize classifies an input value into its literal kind. Strings
// are escaped so they match themselves literally; numbers are trusted
// raw text (digits never collide with metacharacters); compiled
// patterns are absorbed unchanged with their anchors stripped into the
// wrapper and their flags carried over; sub-expressions contribute
// their node tree. Anything else degrades to the empty node and raises
// a one-shot usage warning instead of failing.
func sanitize(v any) sanitized {
	switch x := v.(type) {
	case string:
		return sanitized{node: &literalNode{source: escapeLiteral(x), escaped: true}}
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return sanitized{node: &literalNode{source: fmt.Sprint(x)}}
	case *Compiled:
		body, pre, suf := stripAnchors(x.Source)
		return sanitized{node: &literalNode{source: body}, prefix: pre, suffix: suf, flags: x.Flags}
	case *regexp.Regexp:
		body, pre, suf := stripAnchors(x.String())
		return sanitized{node: &literalNode{source: body}, prefix: pre, suffix: suf}
	case *Expression:
		// A structural error latched on the sub-expression must not
		// vanish when its tree is spliced into another chain.
		return sanitized{node: x.root.node, err: x.err}
	}
	warnOnce(fmt.Sprintf("unsupported-input/%T", v),
		"unsupported input type, matching the empty string instead",
		"type", fmt.Sprintf("%T", v))
	return sanitized{node: &emptyNode{}}
}

// escapeLiteral backslash-escapes every regex metacharacter so the
// text matches itself regardless of position.
func escapeLiteral(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '.', '*', '+', '?', '^', '$', '{', '}', '(', ')', '|', '[', ']', '\\', '/':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// stripAnchors splits a leading ^ and an unescaped trailing $ off an
// absorbed pattern so they can live in the root wrapper instead of the
// node tree.
func stripAnchors(src string) (body, prefix, suffix string) {
	if strings.HasPrefix(src, "^") {
		prefix = "^"
		src = src[1:]
	}
	if strings.HasSuffix(src, "$") && !escapedTail(src) {
		suffix = "$"
		src = src[:len(src)-1]
	}
	return src, prefix, suffix
}

// escapedTail reports whether the final character of src is preceded
// by an odd number of backslashes.
func escapedTail(src string) bool {
	n := 0
	for i := len(src) - 2; i >= 0 && src[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}
