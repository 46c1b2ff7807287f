package config

import "strings"

// KVTableType is the rendering-kind marker set on every required subtree.
const KVTableType = "kvtable"

// Normalized is a report configuration prepared for rendering. It shares no
// maps with the File it was derived from.
type Normalized struct {
	// Authors is the markdown bullet list built from the authors entry.
	Authors    string
	HasAuthors bool

	Common   KVTable
	Target   KVTable
	Settings KVTable
	Excerpt  KVTable

	configurationExtra map[string]any
	biosExtra          map[string]any
	reportExtra        map[string]any
}

// Normalize derives the rendering view of f. It never mutates f, so the same
// File can back any number of report builds.
func Normalize(f *File) *Normalized {
	r := f.Report
	n := &Normalized{
		HasAuthors:         r.HasAuthors,
		Common:             tagKVTable(r.Configuration.Common),
		Target:             tagKVTable(r.Configuration.Target),
		Settings:           tagKVTable(r.Configuration.Bios.Settings),
		Excerpt:            tagKVTable(r.Configuration.Bios.Excerpt),
		configurationExtra: cloneMap(r.Configuration.Extra),
		biosExtra:          cloneMap(r.Configuration.Bios.Extra),
		reportExtra:        cloneMap(r.Extra),
	}
	if r.HasAuthors {
		n.Authors = BulletList(r.Authors)
	}
	return n
}

// BulletList renders items as a markdown bullet list without a trailing newline.
func BulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

func tagKVTable(t KVTable) KVTable {
	out := KVTable(cloneMap(t))
	if out == nil {
		out = KVTable{}
	}
	out["type"] = KVTableType
	return out
}

// Variables returns the report variable tree handed to templates. Each call
// builds a fresh tree.
func (n *Normalized) Variables() map[string]any {
	bios := cloneMap(n.biosExtra)
	if bios == nil {
		bios = map[string]any{}
	}
	bios["settings"] = cloneMap(n.Settings)
	bios["excerpt"] = cloneMap(n.Excerpt)

	configuration := cloneMap(n.configurationExtra)
	if configuration == nil {
		configuration = map[string]any{}
	}
	configuration["common"] = cloneMap(n.Common)
	configuration["target"] = cloneMap(n.Target)
	configuration["bios"] = bios

	vars := cloneMap(n.reportExtra)
	if vars == nil {
		vars = map[string]any{}
	}
	vars["configuration"] = configuration
	if n.HasAuthors {
		vars["authors"] = n.Authors
	}
	return vars
}

// cloneMap deep-copies nested maps and slices decoded from YAML.
func cloneMap[M ~map[string]any](m M) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case KVTable:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}
