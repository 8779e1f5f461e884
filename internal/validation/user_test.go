package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		expectError bool
	}{
		{"Minimum length", "abcdef", false},
		{"Typical password", "correct horse battery", false},
		{"Maximum length", strings.Repeat("a", 64), false},
		{"Too short", "abc", true},
		{"Empty", "", true},
		{"Too long", strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("firstName", "Adam"))
	assert.Error(t, ValidateName("firstName", ""))
	assert.Error(t, ValidateName("lastName", strings.Repeat("x", 65)))
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name        string
		email       string
		expectError bool
	}{
		{"Simple address", "adam@example.com", false},
		{"Subdomain", "adam@mail.example.co.nz", false},
		{"Plus tag", "adam+tag@example.com", false},
		{"Missing at", "adamexample.com", true},
		{"Missing domain", "adam@", true},
		{"Missing TLD", "adam@example", true},
		{"Empty", "", true},
		{"Too long", strings.Repeat("a", 250) + "@example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
