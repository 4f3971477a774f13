package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stockpile/backend/internal/validate"
)

func TestEmail(t *testing.T) {
	assert.True(t, validate.Email("mario@example.com"))
	assert.True(t, validate.Email("a.b+c@domain.io"))

	assert.False(t, validate.Email("no-at-sign"))
	assert.False(t, validate.Email("mario@"))
	assert.False(t, validate.Email("@example.com"))
	assert.False(t, validate.Email("mario@example"))
}

func TestPhoneNumber(t *testing.T) {
	assert.True(t, validate.PhoneNumber("+39 0123456789"))
	assert.True(t, validate.PhoneNumber("+1 5551234"))

	assert.False(t, validate.PhoneNumber("0123456789"))
	assert.False(t, validate.PhoneNumber("+39"))
	assert.False(t, validate.PhoneNumber("+39-0123456789"))
	assert.False(t, validate.PhoneNumber("+3900 123"))
}

func TestRole(t *testing.T) {
	assert.True(t, validate.Role("admin"))
	assert.True(t, validate.Role("staff"))
	assert.False(t, validate.Role("superuser"))
	assert.False(t, validate.Role(""))
}
