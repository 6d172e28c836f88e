package doc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveText(t *testing.T) {
	out := Resolve(Text("var x: f32;"), DefaultOptions())
	assert.Equal(t, "var x: f32;", out)
}

func TestResolveGroup(t *testing.T) {
	list := Group(Concat(
		Text("("),
		Indent(Concat(
			Softline(),
			Join(Concat(Text(","), Line()), []Fragment{
				Text("a: f32"),
				Text("b: f32"),
			}),
			IfBreak(Text(","), nil),
		)),
		Softline(),
		Text(")"),
	))

	t.Run("fits flat", func(t *testing.T) {
		out := Resolve(list, DefaultOptions())
		assert.Equal(t, "(a: f32, b: f32)", out)
	})

	t.Run("breaks one per line with trailing comma", func(t *testing.T) {
		out := Resolve(list, Options{PrintWidth: 10, IndentWidth: 2})
		assert.Equal(t, "(\n  a: f32,\n  b: f32,\n)", out)
	})

	t.Run("hardline forces break regardless of width", func(t *testing.T) {
		out := Resolve(Group(Concat(Text("{"), Hardline(), Text("}"))), DefaultOptions())
		assert.Equal(t, "{\n}", out)
	})
}

func TestResolveGroupsBreakIndependently(t *testing.T) {
	inner := func(name string) Fragment {
		return Group(Concat(
			Text(name+"("),
			Indent(Concat(Softline(), Text("x"))),
			Softline(),
			Text(")"),
		))
	}
	// The outer group breaks but the inner call still fits on its line.
	outer := Group(Concat(
		Text("let v ="),
		Indent(Concat(Line(), Text(strings.Repeat("a", 70)), Text(" + "), inner("f"))),
	))

	out := Resolve(outer, Options{PrintWidth: 80, IndentWidth: 2})
	assert.Equal(t, "let v =\n  "+strings.Repeat("a", 70)+" + f(x)", out)
}

func TestResolveLineVariants(t *testing.T) {
	t.Run("line is a space when flat", func(t *testing.T) {
		out := Resolve(Group(Concat(Text("a"), Line(), Text("b"))), DefaultOptions())
		assert.Equal(t, "a b", out)
	})

	t.Run("line is a break when broken", func(t *testing.T) {
		out := Resolve(Group(Concat(Text("a"), Line(), Text("b"))), Options{PrintWidth: 1, IndentWidth: 2})
		assert.Equal(t, "a\nb", out)
	})

	t.Run("softline vanishes when flat", func(t *testing.T) {
		out := Resolve(Group(Concat(Text("a"), Softline(), Text("b"))), DefaultOptions())
		assert.Equal(t, "ab", out)
	})
}

func TestResolveIndentAppliesAfterBreaks(t *testing.T) {
	frag := Concat(
		Text("{"),
		Indent(Concat(Hardline(), Text("return;"))),
		Hardline(),
		Text("}"),
	)
	out := Resolve(frag, Options{PrintWidth: 80, IndentWidth: 4})
	assert.Equal(t, "{\n    return;\n}", out)
}

func TestResolveIfBreakOutsideGroupUsesBrokenSide(t *testing.T) {
	// Top-level rendering starts in break mode.
	out := Resolve(Concat(Text("x"), IfBreak(Text(","), nil)), DefaultOptions())
	assert.Equal(t, "x,", out)
}

func TestJoin(t *testing.T) {
	t.Run("interleaves separator", func(t *testing.T) {
		out := Resolve(Join(Text(", "), []Fragment{Text("1"), Text("2"), Text("3")}), DefaultOptions())
		assert.Equal(t, "1, 2, 3", out)
	})

	t.Run("empty parts", func(t *testing.T) {
		out := Resolve(Join(Text(", "), nil), DefaultOptions())
		assert.Equal(t, "", out)
	})

	t.Run("single part has no separator", func(t *testing.T) {
		out := Resolve(Join(Text(", "), []Fragment{Text("1")}), DefaultOptions())
		assert.Equal(t, "1", out)
	})
}

func TestResolveDefaultsNonPositiveOptions(t *testing.T) {
	group := Group(Concat(Text("a"), Line(), Text("b")))
	out := Resolve(group, Options{})
	assert.Equal(t, "a b", out)
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, 80, opts.PrintWidth)
	assert.Equal(t, 2, opts.IndentWidth)
}
