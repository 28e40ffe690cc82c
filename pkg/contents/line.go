package contents

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseLine extracts the package names referenced by one Contents-index line.
// It returns ok=false for lines that carry no data: blank lines, the
// "FILE LOCATION" header, and malformed lines lacking a path/package-list
// separation.
//
// The file path may itself contain whitespace, so the line is split on the
// last maximal run of whitespace rather than the first. Each comma-separated
// token in the package-list field may carry a section qualifier
// ("utils/foo-tool"); only the segment after the last slash is kept. Empty
// tokens (consecutive commas) are dropped. Duplicate names within one line
// are preserved; counting policy is the Counter's concern.
func ParseLine(line string) ([]string, bool) {
	if isHeader(line) {
		return nil, false
	}

	path, pkgList, ok := splitLast(line)
	if !ok || path == "" || pkgList == "" {
		return nil, false
	}

	var refs []string
	for _, tok := range strings.Split(pkgList, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if i := strings.LastIndexByte(tok, '/'); i >= 0 {
			tok = tok[i+1:]
		}
		if tok == "" {
			continue
		}
		refs = append(refs, tok)
	}
	if len(refs) == 0 {
		return nil, false
	}
	return refs, true
}

// isHeader reports whether line is the legacy index preamble header
// ("FILE LOCATION"). Older Contents files carry it; the last-whitespace rule
// alone would read it as a path/package pair.
func isHeader(line string) bool {
	fields := strings.Fields(line)
	return len(fields) >= 2 && fields[0] == "FILE" && fields[1] == "LOCATION"
}

// splitLast splits s on its last maximal run of whitespace, returning the
// text before and after the run. ok is false when s contains no interior
// whitespace run, i.e. the line cannot be a path/package-list pair.
func splitLast(s string) (before, after string, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", "", false
	}

	end := strings.LastIndexFunc(s, unicode.IsSpace)
	if end < 0 {
		return "", "", false
	}
	_, size := utf8.DecodeRuneInString(s[end:])
	after = s[end+size:]

	start := end
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(s[:start])
		if !unicode.IsSpace(r) {
			break
		}
		start -= size
	}
	return s[:start], after, true
}
