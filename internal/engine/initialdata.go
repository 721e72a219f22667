package engine

import (
	"bytes"
	"errors"

	"golang.org/x/net/html"
)

// ErrInitialDataNotFound is returned when a YouTube page carries no ytInitialData blob.
var ErrInitialDataNotFound = errors.New("ytInitialData not found")

var initialDataMarkers = [][]byte{
	[]byte("var ytInitialData = "),
	[]byte(`window["ytInitialData"] = `),
	[]byte("ytInitialData = "),
}

// ExtractInitialData returns the ytInitialData JSON object embedded in a YouTube page.
// Only <script> bodies are inspected, so marker text inside attributes or comments is ignored.
func ExtractInitialData(page []byte) ([]byte, error) {
	z := html.NewTokenizer(bytes.NewReader(page))
	inScript := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			return nil, ErrInitialDataNotFound
		case html.StartTagToken:
			name, _ := z.TagName()
			inScript = string(name) == "script"
		case html.EndTagToken:
			inScript = false
		case html.TextToken:
			if !inScript {
				continue
			}
			if obj := findInitialData(z.Text()); obj != nil {
				return obj, nil
			}
		}
	}
}

func findInitialData(script []byte) []byte {
	for _, marker := range initialDataMarkers {
		idx := bytes.Index(script, marker)
		if idx < 0 {
			continue
		}
		rest := bytes.TrimLeft(script[idx+len(marker):], " \t\r\n")
		if obj := ExtractJSON(rest); obj != nil {
			return obj
		}
	}
	return nil
}

// ExtractJSON extracts a complete JSON object starting at b[0] == '{' by tracking brace depth.
func ExtractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}
