package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{name: "valid simple", username: "player1", wantErr: false},
		{name: "valid with underscore", username: "some_player", wantErr: false},
		{name: "valid mixed case", username: "SomePlayer99", wantErr: false},
		{name: "valid single char", username: "p", wantErr: false},
		{name: "valid dotted", username: "player.one", wantErr: false},
		{name: "valid email style", username: "user@example.com", wantErr: false},
		{name: "valid plus and dash", username: "a+b-c", wantErr: false},
		{name: "valid max length", username: strings.Repeat("a", 150), wantErr: false},
		{name: "empty", username: "", wantErr: true},
		{name: "too long", username: strings.Repeat("a", 151), wantErr: true},
		{name: "spaces", username: "some player", wantErr: true},
		{name: "special chars", username: "player!", wantErr: true},
		{name: "unicode", username: "игрок123", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid", email: "player@example.com", wantErr: false},
		{name: "valid with plus", email: "player+test@example.com", wantErr: false},
		{name: "empty", email: "", wantErr: true},
		{name: "no at sign", email: "example.com", wantErr: true},
		{name: "display name form", email: "Player <player@example.com>", wantErr: true},
		{name: "too long", email: strings.Repeat("a", 250) + "@e.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("longenough"))
	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword("short"))
}
