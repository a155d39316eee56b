package validation

import (
	"testing"

	"github.com/annavoronova/recipebook/internal/apperr"
)

func TestUsername(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		value string
		valid bool
	}{
		{"plain", "anna", true},
		{"dots and dashes", "anna.v-k", true},
		{"at sign", "anna@host", true},
		{"reserved me", "me", false},
		{"reserved me uppercase", "ME", false},
		{"space", "anna v", false},
		{"bang", "anna!", false},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Username(tt.value)
			if tt.valid && err != nil {
				t.Fatalf("Username(%q) = %v, want nil", tt.value, err)
			}
			if !tt.valid && !apperr.IsCode(err, apperr.CodeInvalidArgument) {
				t.Fatalf("Username(%q) = %v, want InvalidArgument", tt.value, err)
			}
		})
	}
}

func TestUniqueRefs(t *testing.T) {
	t.Parallel()

	if err := UniqueRefs([]uint{1, 2, 3}, "tags"); err != nil {
		t.Fatalf("UniqueRefs returned %v, want nil", err)
	}
	if err := UniqueRefs(nil, "tags"); err != nil {
		t.Fatalf("UniqueRefs(nil) returned %v, want nil", err)
	}
	if err := UniqueRefs([]uint{1, 2, 1}, "tags"); !apperr.IsCode(err, apperr.CodeDuplicateReference) {
		t.Fatalf("UniqueRefs with repeat returned %v, want DuplicateReference", err)
	}
}

func TestNonEmptyAndAtLeastOne(t *testing.T) {
	t.Parallel()

	if err := NonEmpty(1, "tags"); err != nil {
		t.Fatalf("NonEmpty(1) returned %v, want nil", err)
	}
	if err := NonEmpty(0, "tags"); !apperr.IsCode(err, apperr.CodeEmptyCollection) {
		t.Fatalf("NonEmpty(0) returned %v, want EmptyCollection", err)
	}

	if err := AtLeastOne(1, "amount"); err != nil {
		t.Fatalf("AtLeastOne(1) returned %v, want nil", err)
	}
	if err := AtLeastOne(0, "amount"); !apperr.IsCode(err, apperr.CodeOutOfRange) {
		t.Fatalf("AtLeastOne(0) returned %v, want OutOfRange", err)
	}
	if err := AtLeastOne(-5, "amount"); !apperr.IsCode(err, apperr.CodeOutOfRange) {
		t.Fatalf("AtLeastOne(-5) returned %v, want OutOfRange", err)
	}
}

func TestPageLimit(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{"absent uses fallback", "", 6, false},
		{"explicit", "20", 20, false},
		{"one", "1", 1, false},
		{"zero", "0", 0, true},
		{"negative", "-1", 0, true},
		{"not a number", "abc", 0, true},
		{"float", "1.5", 0, true},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := PageLimit(tt.raw, 6)
			if tt.wantErr {
				if !apperr.IsCode(err, apperr.CodeInvalidArgument) {
					t.Fatalf("PageLimit(%q) = %v, want InvalidArgument", tt.raw, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("PageLimit(%q) = %d, %v, want %d", tt.raw, got, err, tt.want)
			}
		})
	}
}

func TestRecipesLimit(t *testing.T) {
	t.Parallel()

	if got, err := RecipesLimit(""); err != nil || got != -1 {
		t.Fatalf("RecipesLimit(\"\") = %d, %v, want -1", got, err)
	}
	// Zero is allowed: it empties the sub-list without dropping authors.
	if got, err := RecipesLimit("0"); err != nil || got != 0 {
		t.Fatalf("RecipesLimit(\"0\") = %d, %v, want 0", got, err)
	}
	if got, err := RecipesLimit("3"); err != nil || got != 3 {
		t.Fatalf("RecipesLimit(\"3\") = %d, %v, want 3", got, err)
	}
	if _, err := RecipesLimit("-1"); !apperr.IsCode(err, apperr.CodeInvalidArgument) {
		t.Fatalf("RecipesLimit(\"-1\") = %v, want InvalidArgument", err)
	}
	if _, err := RecipesLimit("x"); !apperr.IsCode(err, apperr.CodeInvalidArgument) {
		t.Fatalf("RecipesLimit(\"x\") = %v, want InvalidArgument", err)
	}
}
