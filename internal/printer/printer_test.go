package printer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/wgslfmt/internal/doc"
	"bennypowers.dev/wgslfmt/internal/printer"
	"bennypowers.dev/wgslfmt/internal/wgsl"
)

func format(t *testing.T, source string) string {
	t.Helper()
	module, err := wgsl.Parse(source)
	require.NoError(t, err)
	fragment := printer.New(source).Module(module)
	return doc.Resolve(fragment, doc.DefaultOptions())
}

func TestPrintFunction(t *testing.T) {
	out := format(t, "fn add(a:f32,b:f32)->f32{return a+b;}")
	assert.Equal(t, `fn add(a: f32, b: f32) -> f32 {
  return a + b;
}
`, out)
}

func TestPrintDeclarationSpacing(t *testing.T) {
	out := format(t, `var a: f32 = 1.0;
fn f() {}
var b: i32 = 2;`)
	assert.Equal(t, `var a: f32 = 1.0;

fn f() {}

var b: i32 = 2;
`, out)
}

func TestPrintAttributesOnOwnLines(t *testing.T) {
	out := format(t, "@group(0) @binding(0) var<uniform> u : mat4x4<f32>;")
	assert.Equal(t, `@group(0)
@binding(0)
var<uniform> u: mat4x4<f32>;
`, out)
}

func TestPrintStruct(t *testing.T) {
	t.Run("members always end in a comma", func(t *testing.T) {
		out := format(t, "struct S { a: f32, b: i32 }")
		assert.Equal(t, `struct S {
  a: f32,
  b: i32,
}
`, out)
	})

	t.Run("member attributes stay inline", func(t *testing.T) {
		out := format(t, `struct VertexOutput {
@builtin(position) position: vec4<f32>,
@location(0) color: vec4<f32>
}`)
		assert.Equal(t, `struct VertexOutput {
  @builtin(position) position: vec4<f32>,
  @location(0) color: vec4<f32>,
}
`, out)
	})

	t.Run("empty struct", func(t *testing.T) {
		out := format(t, "struct Empty {}")
		assert.Equal(t, "struct Empty {}\n", out)
	})
}

func TestPrintMatrixRowLayout(t *testing.T) {
	t.Run("literal matrix breaks into rows", func(t *testing.T) {
		out := format(t, "var m = mat2x2<f32>(1.0, 2.0, 3.0, 4.0);")
		assert.Equal(t, `var m = mat2x2<f32>(
  1.0, 2.0,
  3.0, 4.0,
);
`, out)
	})

	t.Run("rows break even when one line would fit", func(t *testing.T) {
		out := format(t, "var m = mat2x3<f32>(1.0, 2.0, -3.0, 4.0, 5.0, 6.0);")
		assert.Equal(t, `var m = mat2x3<f32>(
  1.0, 2.0,
  -3.0, 4.0,
  5.0, 6.0,
);
`, out)
	})

	t.Run("non-square shorthand alias breaks into rows", func(t *testing.T) {
		out := format(t, "var m = mat2x3f(1.0, 2.0, 3.0, 4.0, 5.0, 6.0);")
		assert.Equal(t, `var m = mat2x3f(
  1.0, 2.0,
  3.0, 4.0,
  5.0, 6.0,
);
`, out)
	})

	t.Run("half shorthand alias breaks into rows", func(t *testing.T) {
		out := format(t, "var m = mat2x2h(1.0h, 2.0h, 3.0h, 4.0h);")
		assert.Equal(t, `var m = mat2x2h(
  1.0h, 2.0h,
  3.0h, 4.0h,
);
`, out)
	})

	t.Run("non-literal argument disables row grouping", func(t *testing.T) {
		out := format(t, "var m = mat2x2<f32>(a, 2.0, 3.0, 4.0);")
		assert.Equal(t, "var m = mat2x2<f32>(a, 2.0, 3.0, 4.0);\n", out)
	})

	t.Run("wrong arity disables row grouping", func(t *testing.T) {
		out := format(t, "var m = mat2x2<f32>(c0, c1);")
		assert.Equal(t, "var m = mat2x2<f32>(c0, c1);\n", out)
	})
}

func TestPrintFloatNormalization(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   string
	}{
		{"bare int in f32 position", "var x: f32 = 0;", "var x: f32 = 0.0;\n"},
		{"decimal untouched", "var x: f32 = 1.5;", "var x: f32 = 1.5;\n"},
		{"exponent untouched", "var x: f32 = 1e3;", "var x: f32 = 1e3;\n"},
		{"suffix untouched", "var x: f32 = 2f;", "var x: f32 = 2f;\n"},
		{"hex untouched", "var x: f32 = 0x10;", "var x: f32 = 0x10;\n"},
		{"int position untouched", "var i: i32 = 0;", "var i: i32 = 0;\n"},
		{"untyped let untouched", "fn f() {\n  let x = 1;\n}", "fn f() {\n  let x = 1;\n}\n"},
		{"arithmetic operands normalized", "var x: f32 = 1 + 2;", "var x: f32 = 1.0 + 2.0;\n"},
		{"parenthesized arithmetic normalized", "var x: f32 = (1 + 2) * 3;", "var x: f32 = (1.0 + 2.0) * 3.0;\n"},
		{"comparison operands untouched", "var b: bool = 1 == 2;", "var b: bool = 1 == 2;\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, format(t, tc.source))
		})
	}

	t.Run("constructor arguments", func(t *testing.T) {
		out := format(t, "fn f() {\n  let v = vec3<f32>(0, 1, 2);\n}")
		assert.Equal(t, "fn f() {\n  let v = vec3<f32>(0.0, 1.0, 2.0);\n}\n", out)
	})
}

func TestPrintParamListWrapping(t *testing.T) {
	out := format(t, "fn blend(baseColorSample: vec4<f32>, overlayColorSample: vec4<f32>, blendOpacityFactor: f32) -> vec4<f32> { return baseColorSample; }")
	assert.Equal(t, `fn blend(
  baseColorSample: vec4<f32>,
  overlayColorSample: vec4<f32>,
  blendOpacityFactor: f32,
) -> vec4<f32> {
  return baseColorSample;
}
`, out)
}

func TestPrintArgListWrapping(t *testing.T) {
	out := format(t, "fn f() { let color = computeLighting(surfaceNormalVector, incidentLightDirection, materialBaseColor, ambientOcclusionFactor); }")
	assert.Equal(t, `fn f() {
  let color = computeLighting(
    surfaceNormalVector,
    incidentLightDirection,
    materialBaseColor,
    ambientOcclusionFactor,
  );
}
`, out)
}

func TestPrintControlFlow(t *testing.T) {
	t.Run("conditions gain parens", func(t *testing.T) {
		out := format(t, "fn f(x: i32) { if x > 1 { return; } else if x > 0 { discard; } else { return; } }")
		assert.Equal(t, `fn f(x: i32) {
  if (x > 1) {
    return;
  } else if (x > 0) {
    discard;
  } else {
    return;
  }
}
`, out)
	})

	t.Run("existing condition parens are not doubled", func(t *testing.T) {
		out := format(t, "fn f(x: i32) { if (x > 1) { return; } }")
		assert.Equal(t, `fn f(x: i32) {
  if (x > 1) {
    return;
  }
}
`, out)
	})

	t.Run("for header drops statement semicolons", func(t *testing.T) {
		out := format(t, "fn f() { for (var i = 0; i < 10; i++) { continue; } }")
		assert.Equal(t, `fn f() {
  for (var i = 0; i < 10; i++) {
    continue;
  }
}
`, out)
	})

	t.Run("empty for header", func(t *testing.T) {
		out := format(t, "fn f() { for (;;) { break; } }")
		assert.Equal(t, `fn f() {
  for (;;) {
    break;
  }
}
`, out)
	})

	t.Run("loop with continuing and break if", func(t *testing.T) {
		out := format(t, "fn f() { loop { x += 1; continuing { break if x >= 4; } } }")
		assert.Equal(t, `fn f() {
  loop {
    x += 1;
    continuing {
      break if x >= 4;
    }
  }
}
`, out)
	})

	t.Run("switch cases", func(t *testing.T) {
		out := format(t, "fn f(x: i32) { switch x { case 1, 2: { return; } default: { discard; } } }")
		assert.Equal(t, `fn f(x: i32) {
  switch (x) {
    case 1, 2: {
      return;
    }
    default: {
      discard;
    }
  }
}
`, out)
	})

	t.Run("while", func(t *testing.T) {
		out := format(t, "fn f() { while x < 4 { x += 1; } }")
		assert.Equal(t, `fn f() {
  while (x < 4) {
    x += 1;
  }
}
`, out)
	})

	t.Run("empty body", func(t *testing.T) {
		out := format(t, "fn f(x: i32) { if (x > 0) {} }")
		assert.Equal(t, `fn f(x: i32) {
  if (x > 0) {}
}
`, out)
	})
}

func TestPrintExpressions(t *testing.T) {
	t.Run("explicit parens are preserved", func(t *testing.T) {
		out := format(t, "fn f() { let x = (a + b) * c; }")
		assert.Equal(t, "fn f() {\n  let x = (a + b) * c;\n}\n", out)
	})

	t.Run("no parens are invented", func(t *testing.T) {
		out := format(t, "fn f() { let x = a + b * c; }")
		assert.Equal(t, "fn f() {\n  let x = a + b * c;\n}\n", out)
	})

	t.Run("postfix chains", func(t *testing.T) {
		out := format(t, "fn f() { let c = lights[0].color.rgb; }")
		assert.Equal(t, "fn f() {\n  let c = lights[0].color.rgb;\n}\n", out)
	})

	t.Run("bitcast", func(t *testing.T) {
		out := format(t, "fn f() { let x = bitcast<u32>(y); }")
		assert.Equal(t, "fn f() {\n  let x = bitcast<u32>(y);\n}\n", out)
	})
}

func TestPrintDirectives(t *testing.T) {
	out := format(t, "enable f16,subgroups;\nrequires readonly_and_readwrite_storage_textures;\ndiagnostic(off,derivative_uniformity);")
	assert.Equal(t, `enable f16, subgroups;
requires readonly_and_readwrite_storage_textures;
diagnostic(off, derivative_uniformity);
`, out)
}

func TestPrintIdempotent(t *testing.T) {
	sources := []string{
		"fn add(a:f32,b:f32)->f32{return a+b;}",
		"var m = mat4x4<f32>(1.0, 0.0, 0.0, 0.0, 0.0, 1.0, 0.0, 0.0, 0.0, 0.0, 1.0, 0.0, 0.0, 0.0, 0.0, 1.0);",
		"@group(0) @binding(0) var<storage, read_write> buf: array<u32>;",
		"fn f(x: i32) { if x > 0 { return; } else { discard; } }",
		"fn f() { for (var i = 0; i < 10; i++) { x += i; } }",
		"struct S { @location(0) a: vec4<f32>, b: i32 }",
		"fn blend(baseColorSample: vec4<f32>, overlayColorSample: vec4<f32>, blendOpacityFactor: f32) -> vec4<f32> { return baseColorSample; }",
	}
	for _, source := range sources {
		once := format(t, source)
		twice := format(t, once)
		assert.Equal(t, once, twice, "source: %s", source)
	}
}

// Every node kind the parser can produce must hit a dedicated printer
// branch. The printer here has empty source, so any node falling through
// to the source passthrough renders as nothing; non-empty output proves
// the kind is modeled. New AST kinds get a row in the matching table.
func TestPrintCoversEveryNodeKind(t *testing.T) {
	p := printer.New("")
	resolve := func(f doc.Fragment) string {
		return doc.Resolve(f, doc.DefaultOptions())
	}

	ident := func(name string) *wgsl.Ident { return &wgsl.Ident{Name: name} }
	one := &wgsl.Literal{Kind: wgsl.TokenIntLiteral, Value: "1"}
	f32 := &wgsl.NamedType{Name: "f32"}
	block := &wgsl.BlockStmt{}

	t.Run("declarations", func(t *testing.T) {
		decls := map[string]wgsl.Decl{
			"VarDecl":             &wgsl.VarDecl{Kind: wgsl.KindVar, Name: "x", Type: f32},
			"AliasDecl":           &wgsl.AliasDecl{Name: "scalar", Type: f32},
			"StructDecl":          &wgsl.StructDecl{Name: "S"},
			"FunctionDecl":        &wgsl.FunctionDecl{Name: "f", Body: block},
			"EnableDirective":     &wgsl.EnableDirective{Extensions: []string{"f16"}},
			"RequiresDirective":   &wgsl.RequiresDirective{Extensions: []string{"packed_4x8_integer_dot_product"}},
			"DiagnosticDirective": &wgsl.DiagnosticDirective{Severity: "off", Rule: "derivative_uniformity"},
			"ConstAssert":         &wgsl.ConstAssert{Expr: ident("ok")},
		}
		for name, d := range decls {
			t.Run(name, func(t *testing.T) {
				assert.NotEmpty(t, resolve(p.Decl(d)))
			})
		}
	})

	t.Run("statements", func(t *testing.T) {
		stmts := map[string]wgsl.Stmt{
			"VarDecl":      &wgsl.VarDecl{Kind: wgsl.KindLet, Name: "x", Init: one},
			"ConstAssert":  &wgsl.ConstAssert{Expr: ident("ok")},
			"BlockStmt":    block,
			"ReturnStmt":   &wgsl.ReturnStmt{},
			"IfStmt":       &wgsl.IfStmt{Condition: ident("c"), Body: block},
			"ForStmt":      &wgsl.ForStmt{Body: block},
			"WhileStmt":    &wgsl.WhileStmt{Condition: ident("c"), Body: block},
			"LoopStmt":     &wgsl.LoopStmt{Body: block},
			"SwitchStmt":   &wgsl.SwitchStmt{Selector: ident("x")},
			"BreakStmt":    &wgsl.BreakStmt{},
			"ContinueStmt": &wgsl.ContinueStmt{},
			"DiscardStmt":  &wgsl.DiscardStmt{},
			"AssignStmt":   &wgsl.AssignStmt{Left: ident("x"), Op: wgsl.TokenEqual, Right: one},
			"IncDecStmt":   &wgsl.IncDecStmt{Target: ident("i"), Op: wgsl.TokenPlusPlus},
			"ExprStmt":     &wgsl.ExprStmt{Expr: &wgsl.CallExpr{Func: ident("f")}},
		}
		for name, s := range stmts {
			t.Run(name, func(t *testing.T) {
				assert.NotEmpty(t, resolve(p.Stmt(s)))
			})
		}
	})

	t.Run("expressions", func(t *testing.T) {
		exprs := map[string]wgsl.Expr{
			"Literal":       one,
			"Ident":         ident("x"),
			"ParenExpr":     &wgsl.ParenExpr{Expr: one},
			"UnaryExpr":     &wgsl.UnaryExpr{Op: wgsl.TokenMinus, Operand: one},
			"BinaryExpr":    &wgsl.BinaryExpr{Left: one, Op: wgsl.TokenPlus, Right: one},
			"CallExpr":      &wgsl.CallExpr{Func: ident("f")},
			"ConstructExpr": &wgsl.ConstructExpr{Type: f32, Args: []wgsl.Expr{one}},
			"IndexExpr":     &wgsl.IndexExpr{Expr: ident("a"), Index: one},
			"MemberExpr":    &wgsl.MemberExpr{Expr: ident("v"), Member: "x"},
			"BitcastExpr":   &wgsl.BitcastExpr{Type: f32, Expr: one},
		}
		for name, e := range exprs {
			t.Run(name, func(t *testing.T) {
				assert.NotEmpty(t, resolve(p.Expr(e)))
			})
		}
	})

	t.Run("types", func(t *testing.T) {
		types := map[string]wgsl.Type{
			"NamedType": f32,
			"ArrayType": &wgsl.ArrayType{Element: f32},
			"PtrType":   &wgsl.PtrType{AddressSpace: "function", Pointee: f32},
		}
		for name, typ := range types {
			t.Run(name, func(t *testing.T) {
				assert.NotEmpty(t, resolve(p.Type(typ)))
			})
		}
	})
}

// oddStmt satisfies the statement interface via embedding without being any
// node kind the printer models.
type oddStmt struct {
	*wgsl.DiscardStmt
}

func TestPrintUnmodeledNodeFallsBackToSource(t *testing.T) {
	source := "discard;"
	p := printer.New(source)

	t.Run("emits the original source slice", func(t *testing.T) {
		stmt := oddStmt{&wgsl.DiscardStmt{Span: wgsl.Span{Start: 0, End: 8}}}
		out := doc.Resolve(p.Stmt(stmt), doc.DefaultOptions())
		assert.Equal(t, "discard;", out)
	})

	t.Run("out of range span emits nothing", func(t *testing.T) {
		stmt := oddStmt{&wgsl.DiscardStmt{Span: wgsl.Span{Start: 0, End: 99}}}
		out := doc.Resolve(p.Stmt(stmt), doc.DefaultOptions())
		assert.Equal(t, "", out)
	})
}
