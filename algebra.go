package fluentexpr

// The node constructors below are pure: they never touch their inputs,
// only allocate. Empty nodes are dropped during concatenation so the
// seed of a fresh expression leaves no trace in the rendered source.

func isEmpty(n node) bool {
	_, ok := n.(*emptyNode)
	return n == nil || ok
}

// then concatenates a and b. An existing sequence on either side is
// flattened one level; deeper nesting is left alone so grouping
// decisions stay local.
func then(a, b node) node {
	if isEmpty(a) {
		return b
	}
	if isEmpty(b) {
		return a
	}
	if s, ok := a.(*sequenceNode); ok {
		kids := make([]node, 0, len(s.children)+1)
		kids = append(kids, s.children...)
		if bs, ok := b.(*sequenceNode); ok {
			kids = append(kids, bs.children...)
		} else {
			kids = append(kids, b)
		}
		return &sequenceNode{children: kids}
	}
	if bs, ok := b.(*sequenceNode); ok {
		kids := make([]node, 0, len(bs.children)+1)
		kids = append(kids, a)
		kids = append(kids, bs.children...)
		return &sequenceNode{children: kids}
	}
	return &sequenceNode{children: []node{a, b}}
}

// alt builds an alternation over branches, flattening nested
// alternations one level. Sequence branches keep their internal
// structure; precedence is restored at the consuming boundary by the
// serializer.
func alt(branches ...node) node {
	out := make([]node, 0, len(branches))
	for _, b := range branches {
		if a, ok := b.(*altNode); ok {
			out = append(out, a.alternatives...)
		} else {
			out = append(out, b)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return &altNode{alternatives: out}
}

func or(a, b node) node { return alt(a, b) }

func repeated(child node, min, max int, lazy bool) node {
	if min < 0 {
		min = 0
	}
	return &repNode{child: child, min: min, max: max, lazy: lazy}
}

// maybe appends an optional b to a.
func maybe(a, b node) node {
	return then(a, repeated(b, 0, 1, false))
}

func anything(a node, lazy bool) node {
	return then(a, repeated(&builtinNode{kind: builtinAnyChar}, 0, -1, lazy))
}

func something(a node) node {
	return then(a, repeated(&builtinNode{kind: builtinAnyChar}, 1, -1, false))
}

func anythingBut(a node, chars string, lazy bool) node {
	return then(a, repeated(classOf(chars, true), 0, -1, lazy))
}

func somethingBut(a node, chars string) node {
	return then(a, repeated(classOf(chars, true), 1, -1, false))
}

func anyOf(a node, chars string) node {
	return then(a, repeated(classOf(chars, false), 0, -1, false))
}

func someOf(a node, chars string) node {
	return then(a, repeated(classOf(chars, false), 1, -1, false))
}

func oneOf(a node, chars string) node {
	return then(a, classOf(chars, false))
}

func followedBy(a, b node) node {
	return then(a, &lookaroundNode{child: b})
}

func notFollowedBy(a, b node) node {
	return then(a, &lookaroundNode{child: b, negate: true})
}

// group wraps a in a capturing group. A non-empty name must satisfy
// the engine's group-name grammar.
func group(a node, name string) (node, error) {
	if name != "" && !validGroupName(name) {
		return nil, &InvalidGroupNameError{Name: name}
	}
	return &groupNode{child: a, name: name}, nil
}

func validGroupName(name string) bool {
	for i, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return name != ""
}

// classOf builds a character class from the characters of chars,
// deduplicated in first-occurrence order.
func classOf(chars string, negated bool) *charClassNode {
	seen := make(map[rune]bool, len(chars))
	var out []rune
	for _, r := range chars {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return &charClassNode{chars: out, negated: negated}
}

// classOfRanges builds a character class from flat lo,hi bound pairs.
// Each bound must be a single character and every pair must be in
// order; the bound count must be even.
func classOfRanges(bounds []string, negated bool) (node, error) {
	if len(bounds)%2 != 0 {
		return nil, &InvalidRangeError{Reason: "odd number of range bounds"}
	}
	ranges := make([]charRange, 0, len(bounds)/2)
	for i := 0; i < len(bounds); i += 2 {
		lo, hi := bounds[i], bounds[i+1]
		lr, ok1 := singleRune(lo)
		hr, ok2 := singleRune(hi)
		if !ok1 || !ok2 {
			return nil, &InvalidRangeError{Lo: lo, Hi: hi, Reason: "bound is not a single character"}
		}
		if lr > hr {
			return nil, &InvalidRangeError{Lo: lo, Hi: hi, Reason: "lower bound sorts after upper bound"}
		}
		ranges = append(ranges, charRange{lo: lr, hi: hr})
	}
	return &charClassNode{ranges: ranges, negated: negated}, nil
}

func singleRune(s string) (rune, bool) {
	rs := []rune(s)
	if len(rs) != 1 {
		return 0, false
	}
	return rs[0], true
}
