// Package validate holds the shared request-field validators.
package validate

import "regexp"

var (
	emailRe = regexp.MustCompile(`^.+@[a-z]+\.[a-z]+$`)
	phoneRe = regexp.MustCompile(`^\+\d{1,3} \d+$`)
)

func Email(v string) bool {
	return emailRe.MatchString(v)
}

// PhoneNumber accepts the format [+ccc number], e.g. "+39 0123456789".
func PhoneNumber(v string) bool {
	return phoneRe.MatchString(v)
}

func Role(v string) bool {
	return v == "admin" || v == "staff"
}
