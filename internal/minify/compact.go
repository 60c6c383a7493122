package minify

// compactCSS is the second, deliberately conservative CSS candidate: it
// strips comments and collapses whitespace without parsing selectors or
// values, so it can win on inputs the structural minifier refuses.
func compactCSS(data []byte) ([]byte, bool) {
	out := make([]byte, 0, len(data))
	i := 0
	n := len(data)

	for i < n {
		c := data[i]

		// String literals pass through untouched.
		if c == '"' || c == '\'' {
			quote := c
			out = append(out, c)
			i++
			for i < n {
				out = append(out, data[i])
				if data[i] == '\\' && i+1 < n {
					i++
					out = append(out, data[i])
				} else if data[i] == quote {
					i++
					break
				}
				i++
			}
			continue
		}

		// Comments vanish.
		if c == '/' && i+1 < n && data[i+1] == '*' {
			i += 2
			for i+1 < n && !(data[i] == '*' && data[i+1] == '/') {
				i++
			}
			i += 2
			if i > n {
				i = n
			}
			continue
		}

		if isSpace(c) {
			for i < n && isSpace(data[i]) {
				i++
			}
			// A single space survives only between two word-ish tokens.
			if len(out) > 0 && i < n && !isPunct(out[len(out)-1]) && !isPunct(data[i]) {
				out = append(out, ' ')
			}
			continue
		}

		out = append(out, c)
		i++
	}

	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// isPunct lists the separators whitespace is never significant next to.
// ':', '>', and parens stay out: `a :hover` is a different selector than
// `a:hover`, media queries require `and (`, and whitespace-separated
// function lists (`translate(1px) rotate(5deg)`) need the space.
func isPunct(c byte) bool {
	switch c {
	case '{', '}', ';', ',':
		return true
	}
	return false
}
