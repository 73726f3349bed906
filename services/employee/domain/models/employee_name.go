package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// EmployeeName is a value object holding a display name of 1 to 120 characters
// with no surrounding whitespace.
type EmployeeName string

const (
	minEmployeeNameLength = 1
	maxEmployeeNameLength = 120
)

// NewEmployeeName trims s and checks the length constraints. Length counts
// characters, not bytes.
func NewEmployeeName(s string) (EmployeeName, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < minEmployeeNameLength {
		return "", fmt.Errorf("employee name must be at least %d character", minEmployeeNameLength)
	}
	if utf8.RuneCountInString(s) > maxEmployeeNameLength {
		return "", fmt.Errorf("employee name must not exceed %d characters", maxEmployeeNameLength)
	}
	return EmployeeName(s), nil
}

// String returns the underlying string value.
func (n EmployeeName) String() string {
	return string(n)
}
