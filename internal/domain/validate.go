package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_+&*-]+(?:\.[a-zA-Z0-9_+&*-]+)*@(?:[a-zA-Z0-9-]+\.)+[a-zA-Z]{2,7}$`)
	phonePattern = regexp.MustCompile(`^[0-9]+$`)
)

// Field-level validation rules. Each returns an error wrapping ErrValidation
// on the first violation, nil otherwise.

func ValidateTaxID(taxID string) error {
	if len(taxID) != 9 {
		return fmt.Errorf("tax id must be exactly 9 characters: %w", ErrValidation)
	}
	return nil
}

func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name cannot be blank: %w", ErrValidation)
	}
	return nil
}

func ValidateSurname(surname string) error {
	if strings.TrimSpace(surname) == "" {
		return fmt.Errorf("surname cannot be blank: %w", ErrValidation)
	}
	return nil
}

func ValidatePhone(phone string) error {
	if len(phone) > 14 {
		return fmt.Errorf("phone number must be at most 14 characters: %w", ErrValidation)
	}
	if !phonePattern.MatchString(phone) {
		return fmt.Errorf("phone number must contain only digits: %w", ErrValidation)
	}
	return nil
}

func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email format: %w", ErrValidation)
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters: %w", ErrValidation)
	}
	return nil
}

func ValidateParcelID(parcelID string) error {
	if len(parcelID) != 20 {
		return fmt.Errorf("parcel id must be exactly 20 characters: %w", ErrValidation)
	}
	return nil
}

func ValidateConstructionYear(year int) error {
	if year < 1000 || year > 9999 {
		return fmt.Errorf("construction year must be a four-digit year: %w", ErrValidation)
	}
	return nil
}

func ValidatePropertyType(t PropertyType) error {
	if !t.Valid() {
		return fmt.Errorf("invalid property type %q: %w", string(t), ErrValidation)
	}
	return nil
}

func ValidateRepairType(t RepairType) error {
	if !t.Valid() {
		return fmt.Errorf("invalid repair type %q: %w", string(t), ErrValidation)
	}
	return nil
}

func ValidateDescription(description string) error {
	if strings.TrimSpace(description) == "" || len(description) > 400 {
		return fmt.Errorf("description cannot be blank nor exceed 400 characters: %w", ErrValidation)
	}
	return nil
}

func ValidateShortDescription(shortDescription string) error {
	if strings.TrimSpace(shortDescription) == "" || len(shortDescription) > 100 {
		return fmt.Errorf("short description cannot be blank nor exceed 100 characters: %w", ErrValidation)
	}
	return nil
}

func ValidateProposedCost(cost float64) error {
	if cost < 0 {
		return fmt.Errorf("proposed cost cannot be negative: %w", ErrValidation)
	}
	return nil
}

func ValidateSubmissionDate(t time.Time, now time.Time) error {
	if t.After(now) {
		return fmt.Errorf("submission date cannot be in the future: %w", ErrValidation)
	}
	return nil
}
