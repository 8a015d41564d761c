package cache

import "strings"

// Key joins parts into a cache key, escaping each part so that separators stay unambiguous.
//
//	Key("volume-rank", "KOSPI") == "volume-rank:KOSPI"
func Key(parts ...string) string {
	escaped := make([]string, 0, len(parts))
	for _, p := range parts {
		escaped = append(escaped, safe(p))
	}
	return strings.Join(escaped, ":")
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
