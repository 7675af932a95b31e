// Package topic provides the dispatch-name resolver for emitkit.
//
// A dispatch name is a hierarchical container name using colon notation,
// optionally followed by a bracketed conditional expression:
//
//	buffer:content:inserted      - plain hierarchical name
//	download:progress[4]         - fires only on the 4th dispatch
//	tick[n=n]                    - explicit always-true expression
//
// Parse splits a dispatch name into its container name and expression
// source. The container name is the bubbling unit: publishing
// "a:b:c" dispatches to containers "a:b:c", "a:b" and "a", obtained by
// repeatedly truncating at the last separator via Parent.
package topic

import "strings"

// Topic represents a hierarchical container name using colon notation.
// Examples: "buffer:content:inserted", "config:changed"
type Topic string

const (
	// Separator is the character used to separate topic segments.
	Separator = ":"

	// ExprOpen marks the start of a conditional-expression suffix in a
	// dispatch name. A container name never contains it.
	ExprOpen = "["

	// ExprClose marks the end of a conditional-expression suffix.
	ExprClose = "]"
)

// Parse splits a dispatch name into its container name and expression
// source. The container name is the longest prefix before the first
// ExprOpen; the expression source is everything from the first ExprOpen
// onward, brackets included, or "" when the name has no expression.
//
// Parse performs no validation beyond the split; malformed names are the
// caller's responsibility.
func Parse(dispatchName string) (Topic, string) {
	idx := strings.Index(dispatchName, ExprOpen)
	if idx < 0 {
		return Topic(dispatchName), ""
	}
	return Topic(dispatchName[:idx]), dispatchName[idx:]
}

// String returns the topic as a string.
func (t Topic) String() string {
	return string(t)
}

// Segments returns the topic split by the separator.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), Separator)
}

// SegmentCount returns the number of segments in the topic.
func (t Topic) SegmentCount() int {
	if t == "" {
		return 0
	}
	return strings.Count(string(t), Separator) + 1
}

// Parent returns the parent topic by removing the last segment.
// Returns an empty topic if there is no parent.
//
// Example: "buffer:content:inserted" -> "buffer:content"
func (t Topic) Parent() Topic {
	s := string(t)
	idx := strings.LastIndex(s, Separator)
	if idx < 0 {
		return ""
	}
	return Topic(s[:idx])
}

// Child returns a child topic by appending a segment.
//
// Example: "buffer".Child("content") -> "buffer:content"
func (t Topic) Child(segment string) Topic {
	if t == "" {
		return Topic(segment)
	}
	return Topic(string(t) + Separator + segment)
}

// Base returns the last segment of the topic.
//
// Example: "buffer:content:inserted" -> "inserted"
func (t Topic) Base() string {
	s := string(t)
	idx := strings.LastIndex(s, Separator)
	if idx < 0 {
		return s
	}
	return s[idx+1:]
}

// HasPrefix returns true if the topic starts with the given prefix.
func (t Topic) HasPrefix(prefix Topic) bool {
	if prefix == "" {
		return true
	}
	s := string(t)
	p := string(prefix)
	if !strings.HasPrefix(s, p) {
		return false
	}
	// Ensure we're matching complete segments
	if len(s) == len(p) {
		return true
	}
	return s[len(p)] == ':'
}

// IsValid returns true if the topic is well formed.
// A well-formed topic:
//   - Is not empty
//   - Does not start or end with a separator
//   - Does not contain consecutive separators
//   - Does not contain expression delimiters
func (t Topic) IsValid() bool {
	s := string(t)
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, Separator) || strings.HasSuffix(s, Separator) {
		return false
	}
	if strings.Contains(s, Separator+Separator) {
		return false
	}
	if strings.ContainsAny(s, ExprOpen+ExprClose) {
		return false
	}
	return true
}

// Chain returns the bubbling chain for the topic, from most to least
// specific.
//
// Example: "a:b:c" -> ["a:b:c", "a:b", "a"]
func (t Topic) Chain() []Topic {
	if t == "" {
		return nil
	}
	chain := make([]Topic, 0, t.SegmentCount())
	for cur := t; cur != ""; cur = cur.Parent() {
		chain = append(chain, cur)
	}
	return chain
}

// Join joins multiple segments into a topic.
func Join(segments ...string) Topic {
	return Topic(strings.Join(segments, Separator))
}

// Split splits a topic string into segments.
// This is a convenience function that doesn't require creating a Topic first.
func Split(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, Separator)
}
