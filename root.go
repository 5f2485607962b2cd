package fluentexpr

import "strings"

// defaultFlags is the baseline flag set of a fresh expression: global
// and case-insensitive, single-line anchoring (no "m").
const defaultFlags = "gi"

// flagOrder is the canonical output order for known flag characters.
// Unknown characters follow in ascending byte order so equal flag sets
// always serialize identically.
const flagOrder = "dgimsuy"

// rootNode pairs a node tree with the anchors and flags that live
// outside it. It is copied on every transformation, never mutated.
type rootNode struct {
	node   node
	prefix string // "" or "^"
	suffix string // "" or "$"
	flags  string // deduplicated, insertion order
}

// addFlagChars unions add into cur, keeping the first occurrence of
// each character. Unknown flag characters are accepted verbatim.
func addFlagChars(cur, add string) string {
	out := cur
	for _, c := range add {
		if !strings.ContainsRune(out, c) {
			out += string(c)
		}
	}
	return out
}

// removeFlagChars drops every character of del from cur.
func removeFlagChars(cur, del string) string {
	return strings.Map(func(c rune) rune {
		if strings.ContainsRune(del, c) {
			return -1
		}
		return c
	}, cur)
}

// setFlag toggles one flag on or off.
func setFlag(cur string, flag rune, on bool) string {
	if on {
		return addFlagChars(cur, string(flag))
	}
	return removeFlagChars(cur, string(flag))
}

// canonicalFlags reorders a deduplicated flag set into its canonical
// serialization order.
func canonicalFlags(cur string) string {
	var b strings.Builder
	for _, c := range flagOrder {
		if strings.ContainsRune(cur, c) {
			b.WriteRune(c)
		}
	}
	var rest []rune
	for _, c := range cur {
		if !strings.ContainsRune(flagOrder, c) {
			rest = append(rest, c)
		}
	}
	for i := 1; i < len(rest); i++ {
		for j := i; j > 0 && rest[j] < rest[j-1]; j-- {
			rest[j], rest[j-1] = rest[j-1], rest[j]
		}
	}
	b.WriteString(string(rest))
	return b.String()
}
