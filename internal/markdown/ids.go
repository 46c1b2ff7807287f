package markdown

import (
	"bytes"
	"strconv"
	"unicode"

	gmast "github.com/yuin/goldmark/ast"
)

// prefixedIDs implements parser.IDs, producing slug ids with an optional
// prefix. Duplicates get a numeric suffix.
type prefixedIDs struct {
	prefix string
	seen   map[string]bool
}

func newPrefixedIDs(prefix string) *prefixedIDs {
	return &prefixedIDs{prefix: prefix, seen: make(map[string]bool)}
}

func (p *prefixedIDs) Generate(value []byte, _ gmast.NodeKind) []byte {
	base := slug(value)
	if base == "" {
		base = "heading"
	}
	if p.prefix != "" {
		base = p.prefix + "-" + base
	}
	id := base
	for i := 1; p.seen[id]; i++ {
		id = base + "-" + strconv.Itoa(i)
	}
	p.seen[id] = true
	return []byte(id)
}

func (p *prefixedIDs) Put(value []byte) {
	p.seen[string(value)] = true
}

func slug(value []byte) string {
	var buf bytes.Buffer
	dash := false
	for _, r := range string(bytes.TrimSpace(value)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			buf.WriteRune(unicode.ToLower(r))
			dash = false
		case buf.Len() > 0 && !dash:
			buf.WriteByte('-')
			dash = true
		}
	}
	return string(bytes.TrimRight(buf.Bytes(), "-"))
}
