package logging

import "strings"

const redacted = "[REDACTED]"

var sensitiveKeys = []string{"token", "secret", "password", "authorization", "credential"}

// redact replaces values of sensitive keys in a key-value list.
func redact(args []any) []any {
	if len(args) == 0 {
		return args
	}
	out := make([]any, len(args))
	copy(out, args)
	for i := 0; i+1 < len(out); i += 2 {
		key, ok := out[i].(string)
		if ok && isSensitive(key) {
			out[i+1] = redacted
		}
	}
	return out
}

func isSensitive(key string) bool {
	k := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(k, s) {
			return true
		}
	}
	return false
}
