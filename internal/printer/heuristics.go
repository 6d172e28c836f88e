package printer

import (
	"regexp"
	"strconv"
	"strings"

	"bennypowers.dev/wgslfmt/internal/doc"
	"bennypowers.dev/wgslfmt/internal/wgsl"
)

var matrixTypeRe = regexp.MustCompile(`^mat([2-4])x([2-4])([fh])?$`)

func (p *Printer) constructExpr(expr *wgsl.ConstructExpr) doc.Fragment {
	typeFrag := p.Type(expr.Type)

	if cols, rows, ok := matrixShape(expr); ok {
		return doc.Concat(typeFrag, p.matrixArgs(expr.Args, cols, rows))
	}

	return doc.Concat(typeFrag, p.argList(expr.Args, floatContext(expr.Type)))
}

// matrixShape reports whether a constructor qualifies for row-grouped
// layout: a matNxM callee whose argument count is exactly N*M and whose
// arguments are all plain or unary-negated scalar literals. Identifiers,
// nested calls, and nested constructors disqualify the whole call.
func matrixShape(expr *wgsl.ConstructExpr) (cols, rows int, ok bool) {
	named, isNamed := expr.Type.(*wgsl.NamedType)
	if !isNamed {
		return 0, 0, false
	}
	m := matrixTypeRe.FindStringSubmatch(named.Name)
	if m == nil {
		return 0, 0, false
	}
	cols, _ = strconv.Atoi(m[1])
	rows, _ = strconv.Atoi(m[2])

	if len(expr.Args) != cols*rows {
		return 0, 0, false
	}
	for _, arg := range expr.Args {
		if !isScalarLiteral(arg) {
			return 0, 0, false
		}
	}
	return cols, rows, true
}

func isScalarLiteral(e wgsl.Expr) bool {
	switch arg := e.(type) {
	case *wgsl.Literal:
		return true
	case *wgsl.UnaryExpr:
		if arg.Op != wgsl.TokenMinus {
			return false
		}
		_, isLit := arg.Operand.(*wgsl.Literal)
		return isLit
	default:
		return false
	}
}

// matrixArgs lays out N*M scalar arguments as M forced rows of N values,
// every row comma-terminated. The block always breaks; a literal matrix
// keeps its row structure even when the one-line form would fit.
func (p *Printer) matrixArgs(args []wgsl.Expr, cols, rows int) doc.Fragment {
	if len(args) != cols*rows {
		panic("printer: matrix row layout after failed shape check")
	}

	var body []doc.Fragment
	for r := 0; r < rows; r++ {
		row := make([]doc.Fragment, 0, cols*2)
		for c := 0; c < cols; c++ {
			if c > 0 {
				row = append(row, doc.Text(", "))
			}
			row = append(row, p.exprIn(args[r*cols+c], true))
		}
		row = append(row, doc.Text(","))
		body = append(body, doc.Hardline(), doc.Concat(row...))
	}

	return doc.Concat(
		doc.Text("("),
		doc.Indent(doc.Concat(body...)),
		doc.Hardline(),
		doc.Text(")"),
	)
}

// literal renders a literal token. In a float-typed position a bare
// integer-looking literal gains a ".0"; anything already carrying a
// decimal point, an exponent, a hex prefix, or an explicit type suffix
// passes through exactly as written.
func (p *Printer) literal(lit *wgsl.Literal, floatCtx bool) string {
	if !floatCtx {
		return lit.Value
	}
	if lit.Kind != wgsl.TokenIntLiteral && lit.Kind != wgsl.TokenFloatLiteral {
		return lit.Value
	}
	if strings.ContainsAny(lit.Value, ".eExXfhiu") {
		return lit.Value
	}
	return lit.Value + ".0"
}

// floatContext reports whether a declared type makes its value position
// float-typed for literal normalization.
func floatContext(t wgsl.Type) bool {
	switch typ := t.(type) {
	case *wgsl.NamedType:
		switch typ.Name {
		case "f32", "f16":
			return true
		}
		if strings.HasPrefix(typ.Name, "vec") || strings.HasPrefix(typ.Name, "mat") {
			if strings.HasSuffix(typ.Name, "f") || strings.HasSuffix(typ.Name, "h") {
				return true
			}
			for _, param := range typ.TypeParams {
				if floatContext(param) {
					return true
				}
			}
		}
		return false
	case *wgsl.ArrayType:
		return typ.Element != nil && floatContext(typ.Element)
	default:
		return false
	}
}
