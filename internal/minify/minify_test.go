package minify

import (
	"bytes"
	"strings"
	"testing"
)

func TestSmallest(t *testing.T) {
	short := make([]byte, 95)
	long := make([]byte, 120)

	got, ok := Smallest(long, short)
	if !ok || len(got) != 95 {
		t.Fatalf("got len %d ok=%v, want the 95-byte candidate", len(got), ok)
	}

	got, ok = Smallest(nil, long)
	if !ok || len(got) != 120 {
		t.Fatalf("got len %d ok=%v, want the only candidate", len(got), ok)
	}

	if _, ok = Smallest(nil, nil); ok {
		t.Fatal("no candidates must report absent")
	}

	// Ties favor the first-listed candidate.
	a := []byte("aaaa")
	b := []byte("bbbb")
	got, _ = Smallest(a, b)
	if !bytes.Equal(got, a) {
		t.Fatalf("tie returned %q, want first candidate", got)
	}
}

func TestCompactCSS(t *testing.T) {
	in := []byte("a {\n\tcolor: red;  /* brand */\n}\n")
	out, ok := compactCSS(in)
	if !ok {
		t.Fatal("expected output")
	}
	if want := "a{color: red;}"; string(out) != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestCompactCSSKeepsRequiredSpaces(t *testing.T) {
	cases := []struct {
		name string
		in   string
		keep string
	}{
		{"media query", "@media screen and (min-width: 600px) { a { color: red } }", "and ("},
		{"transform list", "a { transform: translate(1px) rotate(5deg) }", ") rotate("},
		{"descendant pseudo-class", "a :hover { color: red }", "a :hover"},
		{"child combinator", "ul > li { margin: 0 }", "ul > li"},
	}
	for _, tc := range cases {
		out, ok := compactCSS([]byte(tc.in))
		if !ok {
			t.Fatalf("%s: expected output", tc.name)
		}
		if !strings.Contains(string(out), tc.keep) {
			t.Fatalf("%s: %q collapsed out of %q", tc.name, tc.keep, out)
		}
	}
}

func TestCSSKeepsMediaQuerySpace(t *testing.T) {
	in := []byte("@media screen and (min-width:600px){a{color:red}}")
	out, ok := CSS(in)
	if !ok {
		t.Fatal("expected output")
	}
	if bytes.Contains(out, []byte("and(")) {
		t.Fatalf("media query space collapsed: %q", out)
	}
	if !bytes.Contains(out, []byte("and (")) {
		t.Fatalf("media query mangled: %q", out)
	}
}

func TestCompactCSSPreservesStrings(t *testing.T) {
	in := []byte(`a::before { content: "  /* not a comment */  "; }`)
	out, ok := compactCSS(in)
	if !ok {
		t.Fatal("expected output")
	}
	if !strings.Contains(string(out), `"  /* not a comment */  "`) {
		t.Fatalf("string literal damaged: %q", out)
	}
}

func TestCompactCSSKeepsSelectorSpaces(t *testing.T) {
	in := []byte("nav  a { color : blue }")
	out, _ := compactCSS(in)
	if !strings.HasPrefix(string(out), "nav a{") {
		t.Fatalf("descendant combinator lost: %q", out)
	}
}

func TestCSSPicksSmallerCandidate(t *testing.T) {
	in := []byte("body {  color :  red ;  }\n/* note */\n")
	out, ok := CSS(in)
	if !ok {
		t.Fatal("expected output")
	}
	if len(out) >= len(in) {
		t.Fatalf("output %d bytes, not smaller than input %d", len(out), len(in))
	}
	// The structural minifier drops the trailing semicolon the
	// compactor keeps, so it must win here.
	if string(out) != "body{color:red}" {
		t.Fatalf("got %q, want %q", out, "body{color:red}")
	}
}

func TestJSShrinks(t *testing.T) {
	in := []byte("function add(first, second) {\n    return first + second;\n}\n")
	out, ok := JS(in)
	if !ok {
		t.Fatal("expected output")
	}
	if len(out) >= len(in) {
		t.Fatalf("output %d bytes, not smaller than input %d", len(out), len(in))
	}
}

func TestHTMLShrinksAndMinifiesInline(t *testing.T) {
	in := []byte(`<!doctype html>
<html>
  <head>
    <style>
      body {  color :  red ;  }
    </style>
    <script>
      var greeting   =   "hi";
    </script>
  </head>
  <body>
    <p>  hello  </p>
  </body>
</html>
`)
	out, ok := HTML(in)
	if !ok {
		t.Fatal("expected output")
	}
	if len(out) >= len(in) {
		t.Fatalf("output %d bytes, not smaller than input %d", len(out), len(in))
	}
	if !bytes.Contains(out, []byte("body{color:red}")) {
		t.Fatalf("inline CSS not minified: %s", out)
	}
}

func TestHTMLKeepsUnshrinkableInlineScript(t *testing.T) {
	// The script body does not parse as JS, so the inline transformer
	// must emit it verbatim rather than fail the whole document.
	const snippet = `{{ if .Debug }}console.log("debug"){{ end }}`
	in := []byte("<!doctype html>\n<html>\n  <body>\n    <script>" + snippet + "</script>\n  </body>\n</html>\n")
	out, ok := HTML(in)
	if !ok {
		t.Fatal("expected output")
	}
	if !bytes.Contains(out, []byte(snippet)) {
		t.Fatalf("inline script altered: %s", out)
	}

	// Already-minimal JS stays byte-identical too.
	in = []byte("<!doctype html>\n<html>\n  <body>\n    <script>var a=1</script>\n  </body>\n</html>\n")
	out, ok = HTML(in)
	if !ok {
		t.Fatal("expected output")
	}
	if !bytes.Contains(out, []byte("var a=1")) {
		t.Fatalf("minimal inline script altered: %s", out)
	}
}

func TestSVGKeepsViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<!-- exported -->
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
  <rect x="10" y="10" width="80" height="80" fill="#ff0000" />
</svg>
`)
	out, ok := SVG(in)
	if !ok {
		t.Fatal("expected output")
	}
	if len(out) >= len(in) {
		t.Fatalf("output %d bytes, not smaller than input %d", len(out), len(in))
	}
	if !bytes.Contains(out, []byte("viewBox")) {
		t.Fatalf("viewBox dropped: %s", out)
	}
}
