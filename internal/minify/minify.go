// Package minify wraps the text-asset transformers (CSS, JS, HTML, SVG)
// behind a uniform bytes-in, bytes-out contract. The actual minification
// is delegated to tdewolff/minify; this package only adds candidate
// racing and the inline-script fallback.
package minify

import (
	"bytes"
	"io"
	"regexp"

	tdminify "github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/svg"
)

var scriptType = regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$")

var m = tdminify.New()

func init() {
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("image/svg+xml", svg.Minify)
	// Inline <script> blocks go through the same JS transformer as
	// standalone files, falling back to the original snippet when the
	// minified form is not smaller.
	m.AddFuncRegexp(scriptType, jsKeepSmaller)
	m.Add("text/html", &html.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
	})
}

// jsKeepSmaller minifies JS and emits whichever of input and output is
// shorter. A minifier error falls back to the input untouched.
func jsKeepSmaller(_ *tdminify.M, w io.Writer, r io.Reader, _ map[string]string) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	var out bytes.Buffer
	if err := js.Minify(m, &out, bytes.NewReader(src), nil); err != nil || out.Len() >= len(src) {
		_, werr := w.Write(src)
		return werr
	}
	_, werr := w.Write(out.Bytes())
	return werr
}

// CSS races the two candidate minifiers against the same input and
// returns the smaller output.
func CSS(data []byte) ([]byte, bool) {
	var candidates [][]byte

	if out, err := m.Bytes("text/css", data); err == nil {
		candidates = append(candidates, out)
	}
	if out, ok := compactCSS(data); ok {
		candidates = append(candidates, out)
	}

	return Smallest(candidates...)
}

// JS minifies a standalone script. Unlike inline scripts there is no
// silent fallback: a parse failure reports absent.
func JS(data []byte) ([]byte, bool) {
	var out bytes.Buffer
	if err := js.Minify(m, &out, bytes.NewReader(data), nil); err != nil {
		return nil, false
	}
	return out.Bytes(), true
}

// HTML minifies markup with inline CSS and JS minification enabled.
func HTML(data []byte) ([]byte, bool) {
	out, err := m.Bytes("text/html", data)
	if err != nil {
		return nil, false
	}
	return out, true
}

const svgMaxPasses = 3

// SVG cleans up vector markup, rerunning until the output is stable.
// The cleaner keeps viewBox attributes, so cleaned files still scale
// responsively.
func SVG(data []byte) ([]byte, bool) {
	out := data
	for i := 0; i < svgMaxPasses; i++ {
		next, err := m.Bytes("image/svg+xml", out)
		if err != nil {
			return nil, false
		}
		if bytes.Equal(next, out) {
			break
		}
		out = next
	}
	return out, true
}
