package doc

import (
	"strings"
)

// Options control layout resolution.
type Options struct {
	// PrintWidth is the preferred maximum line width.
	PrintWidth int
	// IndentWidth is the number of spaces per indentation level.
	IndentWidth int
}

// DefaultOptions match the formatter's documented defaults.
func DefaultOptions() Options {
	return Options{PrintWidth: 80, IndentWidth: 2}
}

type mode uint8

const (
	modeFlat mode = iota
	modeBreak
)

type resolver struct {
	opts Options
	out  strings.Builder
	col  int
}

// Resolve renders a document tree to text, deciding per group whether it
// fits within the print width on the current line.
func Resolve(f Fragment, opts Options) string {
	if opts.PrintWidth <= 0 {
		opts.PrintWidth = 80
	}
	if opts.IndentWidth <= 0 {
		opts.IndentWidth = 2
	}
	r := &resolver{opts: opts}
	r.render(f, 0, modeBreak)
	return r.out.String()
}

func (r *resolver) render(f Fragment, indent int, m mode) {
	switch frag := f.(type) {
	case *TextFragment:
		r.out.WriteString(frag.Text)
		r.col += len(frag.Text)

	case *ConcatFragment:
		for _, part := range frag.Parts {
			r.render(part, indent, m)
		}

	case *HardlineFragment:
		r.newline(indent)

	case *LineFragment:
		if m == modeFlat {
			r.out.WriteByte(' ')
			r.col++
		} else {
			r.newline(indent)
		}

	case *SoftlineFragment:
		if m == modeBreak {
			r.newline(indent)
		}

	case *IfBreakFragment:
		if m == modeBreak {
			if frag.Broken != nil {
				r.render(frag.Broken, indent, m)
			}
		} else if frag.Flat != nil {
			r.render(frag.Flat, indent, m)
		}

	case *IndentFragment:
		r.render(frag.Content, indent+1, m)

	case *GroupFragment:
		remaining := r.opts.PrintWidth - r.col
		if fits(frag.Content, remaining) {
			r.render(frag.Content, indent, modeFlat)
		} else {
			r.render(frag.Content, indent, modeBreak)
		}
	}
}

func (r *resolver) newline(indent int) {
	r.out.WriteByte('\n')
	pad := indent * r.opts.IndentWidth
	for range pad {
		r.out.WriteByte(' ')
	}
	r.col = pad
}

// fits reports whether f rendered flat stays within the remaining width.
// A hardline anywhere inside forces a break.
func fits(f Fragment, remaining int) bool {
	stack := []Fragment{f}
	for len(stack) > 0 && remaining >= 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch frag := next.(type) {
		case *TextFragment:
			remaining -= len(frag.Text)
		case *ConcatFragment:
			for i := len(frag.Parts) - 1; i >= 0; i-- {
				stack = append(stack, frag.Parts[i])
			}
		case *HardlineFragment:
			return false
		case *LineFragment:
			remaining--
		case *SoftlineFragment:
			// nothing in flat mode
		case *IfBreakFragment:
			if frag.Flat != nil {
				stack = append(stack, frag.Flat)
			}
		case *IndentFragment:
			stack = append(stack, frag.Content)
		case *GroupFragment:
			stack = append(stack, frag.Content)
		}
	}
	return remaining >= 0
}
