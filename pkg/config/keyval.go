package config

import (
	"fmt"
	"sort"
	"strings"
)

// keyvalParser implements koanf.Parser for the line-oriented overrides
// format: one `section.key=value` assignment per line, `#` starts a
// comment, blank lines ignored. Values stay strings; weak typing at
// unmarshal time converts booleans and numbers.
type keyvalParser struct{}

// KeyvalParser returns a koanf parser for the key=value overrides format.
func KeyvalParser() *keyvalParser {
	return &keyvalParser{}
}

// Unmarshal parses the key=value bytes into a nested map.
func (p *keyvalParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	out := make(map[string]interface{})

	for i, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("line %d: expected key=value, got %q", i+1, line)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("line %d: empty key", i+1)
		}

		setNested(out, strings.Split(key, "."), strings.TrimSpace(value))
	}

	return out, nil
}

// Marshal renders a map back to key=value lines, flattening nested
// sections with dots. Keys are sorted for stable output.
func (p *keyvalParser) Marshal(m map[string]interface{}) ([]byte, error) {
	flat := make(map[string]interface{})
	flatten("", m, flat)

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s=%v\n", k, flat[k])
	}
	return []byte(sb.String()), nil
}

func setNested(m map[string]interface{}, parts []string, value string) {
	curr := m
	for i, part := range parts {
		if i == len(parts)-1 {
			curr[part] = value
			return
		}
		next, ok := curr[part].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			curr[part] = next
		}
		curr = next
	}
}

func flatten(prefix string, m map[string]interface{}, out map[string]interface{}) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]interface{}); ok {
			flatten(key, nested, out)
			continue
		}
		out[key] = v
	}
}
