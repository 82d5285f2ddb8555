package usecase

import (
	"net/mail"
	"regexp"
	"strings"
)

var (
	digitsOnly = regexp.MustCompile(`\D`)
	slugShape  = regexp.MustCompile(`^[a-z0-9-]+$`)
)

func ValidateResourceLeadInput(input ResourceLeadInput) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	} else if len(strings.TrimSpace(input.Name)) < 2 {
		errs = append(errs, ValidationError{"name", "must have at least 2 characters"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}

	if strings.TrimSpace(input.Phone) == "" {
		errs = append(errs, ValidationError{"phone", "is required"})
	} else if !isValidPhoneNumber(input.Phone) {
		errs = append(errs, ValidationError{"phone", "must have at least 10 digits"})
	}

	if strings.TrimSpace(input.City) == "" {
		errs = append(errs, ValidationError{"city", "is required"})
	} else if len(strings.TrimSpace(input.City)) < 2 {
		errs = append(errs, ValidationError{"city", "must have at least 2 characters"})
	}

	return errs
}

func ValidateContactInput(input ContactInput) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	} else if len(strings.TrimSpace(input.Name)) < 2 {
		errs = append(errs, ValidationError{"name", "must have at least 2 characters"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}

	if strings.TrimSpace(input.Message) == "" {
		errs = append(errs, ValidationError{"message", "is required"})
	} else if len(strings.TrimSpace(input.Message)) < 5 {
		errs = append(errs, ValidationError{"message", "must have at least 5 characters"})
	}

	if input.Phone != "" && !isValidPhoneNumber(input.Phone) {
		errs = append(errs, ValidationError{"phone", "must have at least 10 digits"})
	}

	return errs
}

func isValidPhoneNumber(phone string) bool {
	cleaned := digitsOnly.ReplaceAllString(phone, "")
	return len(cleaned) >= 10 && len(cleaned) <= 15
}

// IsValidSlug reports whether s is URL-safe the way admin-created slugs
// must be: lowercase letters, digits and hyphens only.
func IsValidSlug(s string) bool {
	return slugShape.MatchString(s)
}
