package html_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/wgslfmt/internal/doc"
	"bennypowers.dev/wgslfmt/internal/host/html"
)

func TestFormatScriptElements(t *testing.T) {
	t.Run("text/wgsl script body", func(t *testing.T) {
		source := `<script type="text/wgsl">var x:f32=1.0;</script>` + "\n"
		out, err := html.Format(source, doc.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, `<script type="text/wgsl">var x: f32 = 1.0;</script>`+"\n", out)
	})

	t.Run("multi line body reindents under the script tag", func(t *testing.T) {
		source := "<div>\n" +
			"  <script type=\"text/wgsl\">\n" +
			"    fn main(){return;}\n" +
			"  </script>\n" +
			"</div>\n"
		out, err := html.Format(source, doc.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, "<div>\n"+
			"  <script type=\"text/wgsl\">\n"+
			"    fn main() {\n"+
			"      return;\n"+
			"    }\n"+
			"  </script>\n"+
			"</div>\n", out)
	})

	t.Run("application/wgsl is accepted", func(t *testing.T) {
		source := `<script type="application/wgsl">var x:f32=1.0;</script>`
		out, err := html.Format(source, doc.DefaultOptions())
		require.NoError(t, err)
		assert.Contains(t, out, "var x: f32 = 1.0;")
	})

	t.Run("x-shader types are accepted", func(t *testing.T) {
		source := `<script type="x-shader/x-vertex">var x:f32=1.0;</script>`
		out, err := html.Format(source, doc.DefaultOptions())
		require.NoError(t, err)
		assert.Contains(t, out, "var x: f32 = 1.0;")
	})

	t.Run("javascript scripts are untouched", func(t *testing.T) {
		source := `<script type="module">const x=1;</script>`
		out, err := html.Format(source, doc.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, source, out)
	})

	t.Run("untyped scripts are untouched", func(t *testing.T) {
		source := `<script>const x=1;</script>`
		out, err := html.Format(source, doc.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, source, out)
	})

	t.Run("empty body is skipped", func(t *testing.T) {
		source := `<script type="text/wgsl">  </script>`
		out, err := html.Format(source, doc.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, source, out)
	})

	t.Run("multiple shader scripts", func(t *testing.T) {
		source := `<script type="text/wgsl">var a:f32=1.0;</script>` +
			`<script type="text/wgsl">var b:i32=2;</script>`
		out, err := html.Format(source, doc.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, `<script type="text/wgsl">var a: f32 = 1.0;</script>`+
			`<script type="text/wgsl">var b: i32 = 2;</script>`, out)
	})

	t.Run("body parse failure aborts the file", func(t *testing.T) {
		source := `<script type="text/wgsl">var ;</script>`
		out, err := html.Format(source, doc.DefaultOptions())
		require.Error(t, err)
		assert.Empty(t, out)
	})

	t.Run("surrounding markup is untouched", func(t *testing.T) {
		source := "<!doctype html>\n<html>\n<body>\n" +
			`<script type="text/wgsl">var x:f32=1.0;</script>` +
			"\n</body>\n</html>\n"
		out, err := html.Format(source, doc.DefaultOptions())
		require.NoError(t, err)
		assert.Contains(t, out, "<!doctype html>")
		assert.Contains(t, out, "var x: f32 = 1.0;")
	})
}
