package templates

import (
	"fmt"
	"sort"
	"strings"
	"text/template"
)

func builtinFuncs() template.FuncMap {
	return template.FuncMap{
		"join":    strings.Join,
		"lower":   strings.ToLower,
		"upper":   strings.ToUpper,
		"default": defaultValue,
		"keys":    sortedKeys,
		"figure":  lookupFigure,
	}
}

// defaultValue returns value unless it is nil or an empty string.
func defaultValue(fallback, value any) any {
	if value == nil {
		return fallback
	}
	if s, ok := value.(string); ok && s == "" {
		return fallback
	}
	return value
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// lookupFigure fetches a pre-rendered figure from the index bound to a part.
// Unlike index it fails loudly on unknown file or key.
func lookupFigure(index any, file, key string) (string, error) {
	switch idx := index.(type) {
	case map[string]map[string]string:
		if html, ok := idx[file][key]; ok {
			return html, nil
		}
	case interface {
		Lookup(file, key string) (string, bool)
	}:
		if html, ok := idx.Lookup(file, key); ok {
			return html, nil
		}
	default:
		return "", fmt.Errorf("figure: unsupported index type %T", index)
	}
	return "", fmt.Errorf("figure %s/%s not found", file, key)
}
