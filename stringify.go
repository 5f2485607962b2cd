package fluentexpr

import (
	"fmt"
	"strings"
)

// stringify renders a root into regex source text plus a canonical
// flag string. The rendered source compiled with those flags matches
// exactly what the node tree denotes; non-capturing groups are
// inserted wherever a bare child would change precedence.
func stringify(r rootNode) (source, flags string, err error) {
	body, err := render(r.node)
	if err != nil {
		return "", "", err
	}
	return r.prefix + body + r.suffix, canonicalFlags(r.flags), nil
}

func render(n node) (string, error) {
	switch x := n.(type) {
	case nil, *emptyNode:
		return "", nil

	case *literalNode:
		return x.source, nil

	case *sequenceNode:
		var b strings.Builder
		for _, child := range x.children {
			frag, err := render(child)
			if err != nil {
				return "", err
			}
			// Concatenation binds tighter than |, so a bare
			// alternation child would leak its branches into the
			// surrounding sequence.
			if _, isAlt := child.(*altNode); isAlt {
				b.WriteString("(?:")
				b.WriteString(frag)
				b.WriteString(")")
			} else {
				b.WriteString(frag)
			}
		}
		return b.String(), nil

	case *altNode:
		frags := make([]string, len(x.alternatives))
		for i, branch := range x.alternatives {
			frag, err := render(branch)
			if err != nil {
				return "", err
			}
			frags[i] = frag
		}
		return strings.Join(frags, "|"), nil

	case *repNode:
		frag, err := render(x.child)
		if err != nil {
			return "", err
		}
		q, err := quantifier(x.min, x.max, x.lazy)
		if err != nil {
			return "", err
		}
		if !atomic(x.child, frag) {
			return "(?:" + frag + ")" + q, nil
		}
		return frag + q, nil

	case *groupNode:
		frag, err := render(x.child)
		if err != nil {
			return "", err
		}
		if x.name != "" {
			return "(?<" + x.name + ">" + frag + ")", nil
		}
		return "(" + frag + ")", nil

	case *lookaroundNode:
		frag, err := render(x.child)
		if err != nil {
			return "", err
		}
		op := "="
		if x.negate {
			op = "!"
		}
		if x.behind {
			return "(?<" + op + frag + ")", nil
		}
		return "(?" + op + frag + ")", nil

	case *charClassNode:
		return renderClass(x), nil

	case *builtinNode:
		return builtinToken(x.kind), nil
	}
	return "", fmt.Errorf("unknown node %T", n)
}

// quantifier picks the shortest standard token for a repetition range;
// max<0 means unbounded.
func quantifier(min, max int, lazy bool) (string, error) {
	var q string
	switch {
	case min == 0 && max == 1:
		q = "?"
	case min == 0 && max < 0:
		q = "*"
	case min == 1 && max < 0:
		q = "+"
	case max < 0:
		q = fmt.Sprintf("{%d,}", min)
	case min > max:
		return "", &UnsupportedQuantifierRangeError{Min: min, Max: max}
	case min == max:
		q = fmt.Sprintf("{%d}", min)
	default:
		q = fmt.Sprintf("{%d,%d}", min, max)
	}
	if lazy {
		q += "?"
	}
	return q, nil
}

// atomic reports whether frag can take a quantifier suffix without
// extra grouping: a fragment that already carries its own delimiters,
// a single character, or a single escape pair.
func atomic(n node, frag string) bool {
	switch x := n.(type) {
	case *groupNode, *lookaroundNode, *charClassNode:
		return true
	case *builtinNode:
		// The word shorthand expands to \w+ and must not absorb
		// another quantifier; the line-break expansion brings its
		// own group.
		return x.kind != builtinWord
	}
	rs := []rune(frag)
	if len(rs) == 1 {
		return true
	}
	return len(rs) == 2 && rs[0] == '\\'
}

func renderClass(c *charClassNode) string {
	var b strings.Builder
	b.WriteByte('[')
	if c.negated {
		b.WriteByte('^')
	}
	for _, r := range c.chars {
		b.WriteString(escapeClassRune(r))
	}
	for _, rg := range c.ranges {
		b.WriteString(escapeClassRune(rg.lo))
		b.WriteByte('-')
		b.WriteString(escapeClassRune(rg.hi))
	}
	b.WriteByte(']')
	return b.String()
}

// escapeClassRune escapes the characters that carry meaning inside a
// bracket expression.
func escapeClassRune(r rune) string {
	switch r {
	case ']', '^', '-', '\\':
		return `\` + string(r)
	}
	return string(r)
}

func builtinToken(k builtinKind) string {
	switch k {
	case builtinWhitespace:
		return `\s`
	case builtinDigit:
		return `\d`
	case builtinWord:
		return `\w+`
	case builtinTab:
		return `\t`
	case builtinLineBreak:
		return `(?:\r\n|\r|\n)`
	case builtinAnyChar:
		return `.`
	}
	return ""
}
