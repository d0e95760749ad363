package desc

import (
	"fmt"
	"strings"
)

// ParseStructTag parses a korm struct tag into a map of key-value pairs.
// Handles comma or space separated values: `korm:"key1=value1,key2=value2,flag"`
// Supports quoted values with spaces: `korm:"key='value with spaces'"`
func ParseStructTag(tag string) (map[string]string, error) {
	result := make(map[string]string)
	if tag == "" {
		return result, nil
	}
	var parts []string
	var current strings.Builder
	inSingleQuote := false
	inDoubleQuote := false
	flush := func() {
		part := strings.TrimSpace(current.String())
		if part != "" {
			parts = append(parts, part)
		}
		current.Reset()
	}
	for i := 0; i < len(tag); i++ {
		char := tag[i]
		switch {
		case char == '\'' && !inDoubleQuote:
			inSingleQuote = !inSingleQuote
			current.WriteByte(char)
		case char == '"' && !inSingleQuote:
			inDoubleQuote = !inDoubleQuote
			current.WriteByte(char)
		case (char == ',' || char == ' ') && !inSingleQuote && !inDoubleQuote:
			flush()
		default:
			current.WriteByte(char)
		}
	}
	if inSingleQuote || inDoubleQuote {
		return nil, fmt.Errorf("invalid tag: unbalanced quote in %q", tag)
	}
	flush()
	for _, part := range parts {
		if idx := strings.Index(part, "="); idx >= 0 {
			key := strings.TrimSpace(part[:idx])
			if key == "" {
				return nil, fmt.Errorf("invalid tag: empty key in %q", part)
			}
			result[key] = unquoteValue(strings.TrimSpace(part[idx+1:]))
			continue
		}
		result[part] = ""
	}
	return result, nil
}

func unquoteValue(value string) string {
	if len(value) >= 2 {
		switch {
		case value[0] == '\'' && value[len(value)-1] == '\'',
			value[0] == '"' && value[len(value)-1] == '"':
			return value[1 : len(value)-1]
		}
	}
	return value
}

func splitList(v, sep string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, sep)
	res := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}
	return res
}
