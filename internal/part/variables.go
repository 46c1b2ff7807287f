package part

import (
	"strings"

	"git.home.luguber.info/inful/perfreport/internal/config"
	"git.home.luguber.info/inful/perfreport/internal/templates"
)

// ProcessVariables returns a copy of vars prepared for rendering. Overrides,
// keyed by dotted path, replace values first. Every mapping tagged with
// type kvtable is then replaced by its rendered key/value table.
func ProcessVariables(env templates.Environment, vars, overrides map[string]any) (map[string]any, error) {
	out := copyTree(vars)
	for path, value := range overrides {
		setPath(out, strings.Split(path, "."), value)
	}
	if err := processLevel(env, out); err != nil {
		return nil, err
	}
	return out, nil
}

func processLevel(env templates.Environment, level map[string]any) error {
	for key, value := range level {
		m, ok := value.(map[string]any)
		if !ok {
			continue
		}
		if m["type"] == config.KVTableType {
			table, err := templates.Render(env, templates.KVTableTemplate, map[string]any{"table": m})
			if err != nil {
				return err
			}
			level[key] = table
			continue
		}
		if err := processLevel(env, m); err != nil {
			return err
		}
	}
	return nil
}

func setPath(tree map[string]any, path []string, value any) {
	for _, key := range path[:len(path)-1] {
		next, ok := tree[key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			tree[key] = next
		}
		tree = next
	}
	tree[path[len(path)-1]] = value
}

func copyTree(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if sub, ok := v.(map[string]any); ok {
			out[k] = copyTree(sub)
			continue
		}
		out[k] = v
	}
	return out
}
