package ui

import (
	"reflect"
	"testing"
)

func TestValidatePasswordStrict(t *testing.T) {
	policy := StrictPasswordPolicy()

	tests := []struct {
		name     string
		password string
		valid    bool
		errors   []string
	}{
		{
			name:     "Valid password",
			password: "Abc123",
			valid:    true,
			errors:   nil,
		},
		{
			name:     "Too short but all classes",
			password: "Ab1",
			valid:    false,
			errors:   []string{"At least 6 characters"},
		},
		{
			name:     "Missing uppercase",
			password: "abcdef1",
			valid:    false,
			errors:   []string{"At least one uppercase letter"},
		},
		{
			name:     "Missing lowercase",
			password: "ABCDEF1",
			valid:    false,
			errors:   []string{"At least one lowercase letter"},
		},
		{
			name:     "Missing digit",
			password: "Abcdef",
			valid:    false,
			errors:   []string{"At least one number"},
		},
		{
			name:     "Empty password violates every rule in order",
			password: "",
			valid:    false,
			errors: []string{
				"At least 6 characters",
				"At least one uppercase letter",
				"At least one lowercase letter",
				"At least one number",
			},
		},
		{
			name:     "Short single-class password",
			password: "abc",
			valid:    false,
			errors: []string{
				"At least 6 characters",
				"At least one uppercase letter",
				"At least one number",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := ValidatePassword(tt.password, policy)
			if check.IsValid != tt.valid {
				t.Errorf("ValidatePassword(%q).IsValid = %v, expected %v", tt.password, check.IsValid, tt.valid)
			}
			if !reflect.DeepEqual(check.Errors, tt.errors) {
				t.Errorf("ValidatePassword(%q).Errors = %v, expected %v", tt.password, check.Errors, tt.errors)
			}
		})
	}
}

func TestValidatePasswordBasic(t *testing.T) {
	policy := BasicPasswordPolicy()

	// The basic policy only enforces length; "abcdef" passes even without
	// uppercase or digits
	if check := ValidatePassword("abcdef", policy); !check.IsValid {
		t.Errorf("basic policy rejected %q: %v", "abcdef", check.Errors)
	}
	if check := ValidatePassword("abc", policy); check.IsValid {
		t.Error("basic policy accepted a 3-character password")
	}
}

func TestPasswordPolicyByName(t *testing.T) {
	if got := PasswordPolicyByName("strict"); !got.RequireUpper {
		t.Error("strict policy should require uppercase")
	}
	if got := PasswordPolicyByName("basic"); got.RequireUpper {
		t.Error("basic policy should not require uppercase")
	}
	if got := PasswordPolicyByName("bogus"); got != BasicPasswordPolicy() {
		t.Errorf("unknown policy name resolved to %+v, expected basic", got)
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"student@example.com", true},
		{"a@b.co", true},
		{"no-at-sign.com", false},
		{"spaces in@example.com", false},
		{"missing@tld", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidEmail(tt.email); got != tt.valid {
			t.Errorf("IsValidEmail(%q) = %v, expected %v", tt.email, got, tt.valid)
		}
	}
}
