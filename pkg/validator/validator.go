// Package validator holds small composable checks for configuration and
// catalog entries. Each check returns nil or an error naming the field.
package validator

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// All returns the first non-nil error.
func All(errors ...error) error {
	for _, err := range errors {
		if err != nil {
			return err
		}
	}
	return nil
}

// MapDict applies f to every entry in key order, so the reported error does
// not depend on map iteration.
func MapDict[T any](items map[string]T, f func(string, T) error, description string) error {
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := f(key, items[key]); err != nil {
			return fmt.Errorf("%s[%s]: %w", description, key, err)
		}
	}
	return nil
}

func NotEmpty(field, description string) error {
	if strings.TrimSpace(field) == "" {
		return fmt.Errorf("%s must not be empty", description)
	}
	return nil
}

func NoDuplicates[T comparable](slice []T, description string) error {
	seen := make(map[T]struct{})
	for _, v := range slice {
		if _, ok := seen[v]; ok {
			return fmt.Errorf("%s contains duplicate value: %v", description, v)
		}
		seen[v] = struct{}{}
	}
	return nil
}

func MatchesAllowed[T comparable](field T, allowed []T, description string) error {
	if !slices.Contains(allowed, field) {
		return fmt.Errorf("%s must be one of %v, got %v", description, allowed, field)
	}
	return nil
}

func Positive[T int | int64 | float64](field T, description string) error {
	if field <= 0 {
		return fmt.Errorf("%s must be positive, got %v", description, field)
	}
	return nil
}

// HasNoDirectives rejects fields that would be mistaken for template source.
func HasNoDirectives(field string, description string) error {
	if strings.Contains(field, "{{") || strings.Contains(field, "}}") {
		return fmt.Errorf("%s must not contain template directives", description)
	}
	return nil
}

// Identifier checks that field could be used as a template name or variable.
func Identifier(field, description string) error {
	if field == "" {
		return fmt.Errorf("%s must not be empty", description)
	}
	for i, r := range field {
		ok := r == '_' || r == '-' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (i > 0 && r >= '0' && r <= '9')
		if !ok {
			return fmt.Errorf("%s %q may only contain letters, digits, '-' and '_'", description, field)
		}
	}
	return nil
}
