// Package doc provides the layout-agnostic document tree the printer emits
// and the width-aware resolver that turns it into final text.
//
// Builders are free functions with no shared state, so fragments may be
// constructed concurrently by independent format requests. Fragments are
// immutable once built; Resolve never modifies its input.
package doc

// Fragment is one node of a document tree.
type Fragment interface {
	fragment()
}

// TextFragment is literal text containing no newlines.
type TextFragment struct {
	Text string
}

// ConcatFragment is an ordered sequence of fragments.
type ConcatFragment struct {
	Parts []Fragment
}

// HardlineFragment is a forced line break. A group containing one never
// renders flat.
type HardlineFragment struct{}

// LineFragment renders as a space when its enclosing group fits on one line,
// and as a line break otherwise.
type LineFragment struct{}

// SoftlineFragment renders as nothing when its enclosing group fits, and as
// a line break otherwise.
type SoftlineFragment struct{}

// IfBreakFragment renders Broken when the enclosing group breaks and Flat
// when it fits. Either side may be nil.
type IfBreakFragment struct {
	Broken Fragment
	Flat   Fragment
}

// IndentFragment increases the indentation level for line breaks inside it.
type IndentFragment struct {
	Content Fragment
}

// GroupFragment marks a region the resolver may render flat if it fits the
// print width, or broken otherwise. Breaking decisions are per-group.
type GroupFragment struct {
	Content Fragment
}

func (*TextFragment) fragment()     {}
func (*ConcatFragment) fragment()   {}
func (*HardlineFragment) fragment() {}
func (*LineFragment) fragment()     {}
func (*SoftlineFragment) fragment() {}
func (*IfBreakFragment) fragment()  {}
func (*IndentFragment) fragment()   {}
func (*GroupFragment) fragment()    {}

// Text returns a literal text fragment.
func Text(s string) Fragment {
	return &TextFragment{Text: s}
}

// Concat joins fragments in sequence.
func Concat(parts ...Fragment) Fragment {
	return &ConcatFragment{Parts: parts}
}

// Hardline returns a forced line break.
func Hardline() Fragment {
	return &HardlineFragment{}
}

// Line returns a break-or-space.
func Line() Fragment {
	return &LineFragment{}
}

// Softline returns a break-or-nothing.
func Softline() Fragment {
	return &SoftlineFragment{}
}

// IfBreak renders broken when the enclosing group breaks, flat otherwise.
func IfBreak(broken, flat Fragment) Fragment {
	return &IfBreakFragment{Broken: broken, Flat: flat}
}

// Indent wraps content in one additional indentation level.
func Indent(content Fragment) Fragment {
	return &IndentFragment{Content: content}
}

// Group marks content as breakable-as-a-unit.
func Group(content Fragment) Fragment {
	return &GroupFragment{Content: content}
}

// Join interleaves sep between fragments.
func Join(sep Fragment, parts []Fragment) Fragment {
	if len(parts) == 0 {
		return &ConcatFragment{}
	}
	joined := make([]Fragment, 0, len(parts)*2-1)
	for i, part := range parts {
		if i > 0 {
			joined = append(joined, sep)
		}
		joined = append(joined, part)
	}
	return &ConcatFragment{Parts: joined}
}
