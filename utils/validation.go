// utils/validation.go
package utils

import "regexp"

var pinPattern = regexp.MustCompile(`^\d{4,8}$`)

// ValidatePIN checks that a PIN is 4 to 8 digits.
func ValidatePIN(pin string) bool {
	return pinPattern.MatchString(pin)
}
