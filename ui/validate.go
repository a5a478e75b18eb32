package ui

import (
	"fmt"
	"regexp"
	"unicode"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// PasswordPolicy is the single source of truth for password rules. The
// enforcement policy (used for actual password changes) and the strength
// meter shown to the user are both expressed as values of this type.
type PasswordPolicy struct {
	MinLength    int
	RequireUpper bool
	RequireLower bool
	RequireDigit bool
}

// BasicPasswordPolicy mirrors the rule enforced on password changes:
// length only.
func BasicPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{MinLength: 6}
}

// StrictPasswordPolicy is the full strength check: length plus character
// class requirements.
func StrictPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:    6,
		RequireUpper: true,
		RequireLower: true,
		RequireDigit: true,
	}
}

// PasswordPolicyByName resolves a configured policy name, defaulting to the
// basic policy for unknown names.
func PasswordPolicyByName(name string) PasswordPolicy {
	if name == "strict" {
		return StrictPasswordPolicy()
	}
	return BasicPasswordPolicy()
}

// PasswordCheck reports whether a password satisfies a policy and which
// rules it violates, in the fixed order length, uppercase, lowercase, digit.
type PasswordCheck struct {
	IsValid bool
	Errors  []string
}

// ValidatePassword checks the password against the policy
func ValidatePassword(password string, policy PasswordPolicy) PasswordCheck {
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	var errs []string
	if len(password) < policy.MinLength {
		errs = append(errs, fmt.Sprintf("At least %d characters", policy.MinLength))
	}
	if policy.RequireUpper && !hasUpper {
		errs = append(errs, "At least one uppercase letter")
	}
	if policy.RequireLower && !hasLower {
		errs = append(errs, "At least one lowercase letter")
	}
	if policy.RequireDigit && !hasDigit {
		errs = append(errs, "At least one number")
	}

	return PasswordCheck{IsValid: len(errs) == 0, Errors: errs}
}

// IsValidEmail performs the basic shape check used on login forms
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
