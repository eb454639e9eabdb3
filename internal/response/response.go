// Package response expands "@file" tokens into the arguments stored in file.
package response

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/Norgate-AV/swiftdriver/internal/diag"
)

// Expand replaces every "@path" token with the tokens read from path,
// recursively. Tokens naming unreadable files are kept literally, so magic
// linker tokens such as "@loader_path" survive. A file that is already being
// expanded produces one warning and contributes nothing.
func Expand(tokens []string, engine *diag.Engine) []string {
	return expand(tokens, engine, map[string]bool{})
}

func expand(tokens []string, engine *diag.Engine, active map[string]bool) []string {
	out := make([]string, 0, len(tokens))

	for _, token := range tokens {
		if !strings.HasPrefix(token, "@") {
			out = append(out, token)
			continue
		}

		path, err := filepath.Abs(strings.TrimPrefix(token, "@"))
		if err != nil {
			out = append(out, token)
			continue
		}

		if active[path] {
			engine.Warning("response file '%s' is recursively expanded", path)
			continue
		}

		contents, ok := readFile(path)
		if !ok {
			out = append(out, token)
			continue
		}

		active[path] = true
		out = append(out, expand(Tokenize(contents), engine, active)...)
		delete(active, path)
	}

	return out
}

func readFile(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	return string(data), true
}

// Tokenize splits response-file contents on unescaped whitespace.
// A backslash escapes a following whitespace character; other backslashes
// are literal.
func Tokenize(contents string) []string {
	var tokens []string
	var current strings.Builder
	inToken := false

	runes := []rune(contents)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\\' && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			current.WriteRune(runes[i+1])
			inToken = true
			i++
			continue
		}

		if unicode.IsSpace(r) {
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
				inToken = false
			}
			continue
		}

		current.WriteRune(r)
		inToken = true
	}

	if inToken {
		tokens = append(tokens, current.String())
	}

	return tokens
}
