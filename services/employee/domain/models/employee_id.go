package models

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	employeeIDPrefixLength = 3
	employeeIDPadding      = 'X'
)

// EmployeeIDPrefix derives the three-letter prefix of a business's employee ids:
// the first letters and digits of the name, upper-cased, padded with 'X'.
func EmployeeIDPrefix(businessName string) string {
	var b strings.Builder
	for _, r := range businessName {
		if b.Len() == employeeIDPrefixLength {
			break
		}
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	for b.Len() < employeeIDPrefixLength {
		b.WriteRune(employeeIDPadding)
	}
	return b.String()
}

// NewEmployeeID formats the kiosk id for the seq-th employee of a business, e.g. "ACM007".
func NewEmployeeID(businessName string, seq int) (string, error) {
	if seq < 1 {
		return "", fmt.Errorf("employee sequence must be positive, got %d", seq)
	}
	return fmt.Sprintf("%s%03d", EmployeeIDPrefix(businessName), seq), nil
}
