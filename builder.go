package fluentexpr

import (
	"github.com/dlclark/regexp2"
)

// Expression is an immutable regular-expression composition. Every
// method returns a new value; the receiver is never changed, so any
// intermediate expression can be reused as a branching point.
//
// Structural mistakes (bad range, bad group name, min over max) do not
// interrupt the chain: the first error is latched and reported by
// Render or Compile.
type Expression struct {
	root rootNode
	err  error
}

// New returns an empty expression with the default flags ("gi").
func New() *Expression {
	return &Expression{root: rootNode{node: &emptyNode{}, flags: defaultFlags}}
}

// Of seeds an expression from any accepted input kind. A compiled
// pattern contributes its flags and anchors; every other kind starts
// from the default flags.
func Of(v any) *Expression {
	s := sanitize(v)
	flags := s.flags
	if flags == "" {
		flags = defaultFlags
	}
	return &Expression{
		root: rootNode{node: s.node, prefix: s.prefix, suffix: s.suffix, flags: flags},
		err:  s.err,
	}
}

// apply runs one pattern-extending transformation. Extending the
// pattern past its current end contradicts an end-of-line anchor, so
// the suffix is cleared first; AssertEndOfLine reintroduces it.
func (x *Expression) apply(f func(node) node) *Expression {
	if x.err != nil {
		return x
	}
	nx := *x
	nx.root.suffix = ""
	nx.root.node = f(x.root.node)
	return &nx
}

func (x *Expression) fail(err error) *Expression {
	nx := *x
	nx.err = err
	return &nx
}

// absorb sanitizes one input value, latching an error the input
// already carries.
func (x *Expression) absorb(v any) (sanitized, *Expression) {
	s := sanitize(v)
	if s.err != nil {
		return s, x.fail(s.err)
	}
	return s, nil
}

// Then appends v to the pattern.
func (x *Expression) Then(v any) *Expression {
	if x.err != nil {
		return x
	}
	s, failed := x.absorb(v)
	if failed != nil {
		return failed
	}
	return x.apply(func(n node) node { return then(n, s.node) })
}

// Maybe appends an optional v.
func (x *Expression) Maybe(v any) *Expression {
	if x.err != nil {
		return x
	}
	s, failed := x.absorb(v)
	if failed != nil {
		return failed
	}
	return x.apply(func(n node) node { return maybe(n, s.node) })
}

// Or turns the whole pattern so far into an alternation with v.
func (x *Expression) Or(v any) *Expression {
	if x.err != nil {
		return x
	}
	s, failed := x.absorb(v)
	if failed != nil {
		return failed
	}
	nx := *x
	nx.root.node = or(x.root.node, s.node)
	return &nx
}

// Anything appends ".*", lazily when lazy is set.
func (x *Expression) Anything(lazy bool) *Expression {
	return x.apply(func(n node) node { return anything(n, lazy) })
}

// Something appends ".+".
func (x *Expression) Something() *Expression {
	return x.apply(something)
}

// AnythingBut appends zero-or-more of any character outside chars.
func (x *Expression) AnythingBut(chars string, lazy bool) *Expression {
	return x.charSet(chars, func(n node) node { return anythingBut(n, chars, lazy) })
}

// SomethingBut appends one-or-more of any character outside chars.
func (x *Expression) SomethingBut(chars string) *Expression {
	return x.charSet(chars, func(n node) node { return somethingBut(n, chars) })
}

// AnyOf appends zero-or-more characters drawn from chars.
func (x *Expression) AnyOf(chars string) *Expression {
	return x.charSet(chars, func(n node) node { return anyOf(n, chars) })
}

// SomeOf appends one-or-more characters drawn from chars.
func (x *Expression) SomeOf(chars string) *Expression {
	return x.charSet(chars, func(n node) node { return someOf(n, chars) })
}

// OneOf appends exactly one character drawn from chars.
func (x *Expression) OneOf(chars string) *Expression {
	return x.charSet(chars, func(n node) node { return oneOf(n, chars) })
}

// charSet guards the character-set helpers: an empty set would render
// an unterminated bracket expression, so it is rejected up front like
// any other malformed class input.
func (x *Expression) charSet(chars string, f func(node) node) *Expression {
	if x.err != nil {
		return x
	}
	if chars == "" {
		return x.fail(&InvalidRangeError{Reason: "empty character set"})
	}
	return x.apply(f)
}

// CharOfRanges appends one character out of the given lo,hi bound
// pairs, e.g. CharOfRanges("0", "9", "a", "f").
func (x *Expression) CharOfRanges(bounds ...string) *Expression {
	return x.charRanges(bounds, false)
}

// CharNotOfRanges appends one character outside the given bound pairs.
func (x *Expression) CharNotOfRanges(bounds ...string) *Expression {
	return x.charRanges(bounds, true)
}

func (x *Expression) charRanges(bounds []string, negated bool) *Expression {
	if x.err != nil {
		return x
	}
	cls, err := classOfRanges(bounds, negated)
	if err != nil {
		return x.fail(err)
	}
	return x.apply(func(n node) node { return then(n, cls) })
}

// FollowedBy appends a positive lookahead for v.
func (x *Expression) FollowedBy(v any) *Expression {
	if x.err != nil {
		return x
	}
	s, failed := x.absorb(v)
	if failed != nil {
		return failed
	}
	return x.apply(func(n node) node { return followedBy(n, s.node) })
}

// NotFollowedBy appends a negative lookahead for v.
func (x *Expression) NotFollowedBy(v any) *Expression {
	if x.err != nil {
		return x
	}
	s, failed := x.absorb(v)
	if failed != nil {
		return failed
	}
	return x.apply(func(n node) node { return notFollowedBy(n, s.node) })
}

// Repeat wraps the whole pattern so far in a min..max repetition;
// max<0 means unbounded. A min over a finite max is reported by
// Render or Compile.
func (x *Expression) Repeat(min, max int) *Expression {
	return x.apply(func(n node) node { return repeated(n, min, max, false) })
}

// RepeatExactly wraps the whole pattern so far in an exactly-n
// repetition.
func (x *Expression) RepeatExactly(count int) *Expression {
	return x.apply(func(n node) node { return repeated(n, count, count, false) })
}

// OneOrMore wraps the whole pattern so far in a one-or-more
// repetition.
func (x *Expression) OneOrMore() *Expression {
	return x.apply(func(n node) node { return repeated(n, 1, -1, false) })
}

// ZeroOrMore wraps the whole pattern so far in a zero-or-more
// repetition, lazily when lazy is set.
func (x *Expression) ZeroOrMore(lazy bool) *Expression {
	return x.apply(func(n node) node { return repeated(n, 0, -1, lazy) })
}

// Capture wraps the whole pattern so far in a capturing group, named
// when name is non-empty.
func (x *Expression) Capture(name string) *Expression {
	if x.err != nil {
		return x
	}
	g, err := group(x.root.node, name)
	if err != nil {
		return x.fail(err)
	}
	nx := *x
	nx.root.node = g
	return &nx
}

// Whitespace appends the whitespace shorthand.
func (x *Expression) Whitespace() *Expression { return x.builtin(builtinWhitespace) }

// Digit appends the digit shorthand.
func (x *Expression) Digit() *Expression { return x.builtin(builtinDigit) }

// Word appends a whole word (one or more word characters).
func (x *Expression) Word() *Expression { return x.builtin(builtinWord) }

// Tab appends a tab character.
func (x *Expression) Tab() *Expression { return x.builtin(builtinTab) }

// LineBreak appends a line break of any convention.
func (x *Expression) LineBreak() *Expression { return x.builtin(builtinLineBreak) }

// AnyChar appends a single any-character dot.
func (x *Expression) AnyChar() *Expression { return x.builtin(builtinAnyChar) }

func (x *Expression) builtin(k builtinKind) *Expression {
	return x.apply(func(n node) node { return then(n, &builtinNode{kind: k}) })
}

// AssertStartOfLine adds or removes the start-of-line anchor.
func (x *Expression) AssertStartOfLine(on bool) *Expression {
	if x.err != nil {
		return x
	}
	nx := *x
	nx.root.prefix = ""
	if on {
		nx.root.prefix = "^"
	}
	return &nx
}

// AssertEndOfLine adds or removes the end-of-line anchor. This is the
// only way to reintroduce the anchor after a pattern-extending call
// cleared it.
func (x *Expression) AssertEndOfLine(on bool) *Expression {
	if x.err != nil {
		return x
	}
	nx := *x
	nx.root.suffix = ""
	if on {
		nx.root.suffix = "$"
	}
	return &nx
}

// AddFlags unions the given flag characters into the flag set.
// Unknown characters are kept verbatim.
func (x *Expression) AddFlags(flags string) *Expression {
	if x.err != nil {
		return x
	}
	nx := *x
	nx.root.flags = addFlagChars(x.root.flags, flags)
	return &nx
}

// RemoveFlags drops the given flag characters from the flag set.
func (x *Expression) RemoveFlags(flags string) *Expression {
	if x.err != nil {
		return x
	}
	nx := *x
	nx.root.flags = removeFlagChars(x.root.flags, flags)
	return &nx
}

// WithAnyCase toggles the case-insensitive flag.
func (x *Expression) WithAnyCase(on bool) *Expression {
	return x.toggleFlag('i', on)
}

// SearchOneLine disables the multiline flag when on, so the anchors
// match only at the ends of the whole input.
func (x *Expression) SearchOneLine(on bool) *Expression {
	return x.toggleFlag('m', !on)
}

// StopAtFirst disables the global flag when on.
func (x *Expression) StopAtFirst(on bool) *Expression {
	return x.toggleFlag('g', !on)
}

func (x *Expression) toggleFlag(flag rune, on bool) *Expression {
	if x.err != nil {
		return x
	}
	nx := *x
	nx.root.flags = setFlag(x.root.flags, flag, on)
	return &nx
}

// Render serializes the expression into regex source text and its
// canonical flag string.
func (x *Expression) Render() (source, flags string, err error) {
	if x.err != nil {
		return "", "", x.err
	}
	return stringify(x.root)
}

// Source renders the expression and returns the source text alone;
// "" when the chain carries an error.
func (x *Expression) Source() string {
	source, _, err := x.Render()
	if err != nil {
		return ""
	}
	return source
}

// FlagStr renders the expression and returns the canonical flag
// string alone; "" when the chain carries an error.
func (x *Expression) FlagStr() string {
	_, flags, err := x.Render()
	if err != nil {
		return ""
	}
	return flags
}

// Compile renders the expression and compiles it with the regexp2
// engine. The case-insensitive, multiline, dot-matches-newline and
// unicode flags map to engine options; global and sticky describe
// match iteration and stay in the flag string only.
func (x *Expression) Compile() (*Compiled, error) {
	source, flags, err := x.Render()
	if err != nil {
		return nil, err
	}
	re, err := regexp2.Compile(source, optionsFromFlags(flags))
	if err != nil {
		return nil, err
	}
	return &Compiled{Source: source, Flags: flags, Re: re}, nil
}

// MustCompile is Compile that panics on error, for expressions known
// to be well formed.
func (x *Expression) MustCompile() *Compiled {
	c, err := x.Compile()
	if err != nil {
		panic(err)
	}
	return c
}

// Compiled is the result of compiling an expression: the rendered
// source, the canonical flag string and the ready regexp2 pattern.
type Compiled struct {
	Source string
	Flags  string
	Re     *regexp2.Regexp
}

// MatchString reports whether s contains a match.
func (c *Compiled) MatchString(s string) (bool, error) {
	return c.Re.MatchString(s)
}

// FindStringMatch returns the first match in s, or nil.
func (c *Compiled) FindStringMatch(s string) (*regexp2.Match, error) {
	return c.Re.FindStringMatch(s)
}

func optionsFromFlags(flags string) regexp2.RegexOptions {
	var opts regexp2.RegexOptions
	for _, c := range flags {
		switch c {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		case 'u':
			opts |= regexp2.Unicode
		}
	}
	return opts
}
