// Package errors normalizes Go errors into stable names for metric tags.
package errors

import (
	goerrors "errors"
	"reflect"
	"strings"
)

// Classify returns a normalized type name for the innermost error in the
// chain, suitable for low-cardinality metric tagging. Sentinel errors from
// errors.New all classify as "errorstring", which is acceptable: the metric
// distinguishes structural failure classes, not messages.
func Classify(err error) string {
	if err == nil {
		return ""
	}

	for {
		inner := goerrors.Unwrap(err)
		if inner == nil {
			break
		}
		err = inner
	}

	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}

	name := strings.ToLower(t.String())
	name = strings.ReplaceAll(name, "*", "")
	name = strings.ReplaceAll(name, ".", "_")
	if name == "" {
		return "unknown"
	}
	return name
}
