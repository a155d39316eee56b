// Package validation holds the pure predicate rules applied to recipe
// submissions and query parameters. Each rule either accepts the value or
// returns a field-attributed apperr code; rules needing the store (existence,
// ownership) live in the services.
package validation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/annavoronova/recipebook/internal/apperr"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// Username rejects the reserved "me" and names outside the allowed pattern.
func Username(value string) error {
	if strings.EqualFold(value, "me") {
		return apperr.Newf(apperr.CodeInvalidArgument, "username", "username %q is reserved", value)
	}
	if !usernamePattern.MatchString(value) {
		return apperr.Newf(apperr.CodeInvalidArgument, "username", "username %q contains invalid characters", value)
	}
	return nil
}

// UniqueRefs fails when the same id appears twice in one submission.
func UniqueRefs(ids []uint, field string) error {
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return apperr.Newf(apperr.CodeDuplicateReference, field, "values in %q must not repeat: id %d", field, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// NonEmpty fails when a submitted list has no elements.
func NonEmpty(length int, field string) error {
	if length == 0 {
		return apperr.Newf(apperr.CodeEmptyCollection, field, "field %q must not be empty", field)
	}
	return nil
}

// AtLeastOne enforces the minimum for amounts and cooking time.
func AtLeastOne(value int, field string) error {
	if value < 1 {
		return apperr.Newf(apperr.CodeOutOfRange, field, "%q cannot be less than 1", field)
	}
	return nil
}

// PageLimit parses the "limit" page-size parameter: a positive integer.
func PageLimit(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.New(apperr.CodeInvalidArgument, "limit", `"limit" must be an integer`)
	}
	if limit < 1 {
		return 0, apperr.New(apperr.CodeInvalidArgument, "limit", `"limit" cannot be less than 1`)
	}
	return limit, nil
}

// RecipesLimit parses the sub-list truncation parameter: a non-negative
// integer. -1 means the parameter was absent and no truncation applies.
func RecipesLimit(raw string) (int, error) {
	if raw == "" {
		return -1, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.New(apperr.CodeInvalidArgument, "recipes_limit", `"recipes_limit" must be an integer`)
	}
	if limit < 0 {
		return 0, apperr.New(apperr.CodeInvalidArgument, "recipes_limit", `"recipes_limit" cannot be less than 0`)
	}
	return limit, nil
}
