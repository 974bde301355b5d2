package validation_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/quotebook/quotebook-server/internal/errors"
	"github.com/quotebook/quotebook-server/internal/validation"
)

type credentials struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=1024"`
}

type note struct {
	Text string   `json:"text" validate:"required"`
	Tags []string `json:"tags,omitempty" validate:"max=3,dive,required,max=10"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Validate(credentials{Username: "alice", Password: "p1"}))
	assert.NoError(t, v.Validate(note{Text: "hello"}))
	assert.NoError(t, v.Validate(note{Text: "hello", Tags: []string{"a", "b"}}))
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name    string
		req     any
		wantMsg string
		fields  []string
	}{
		{
			name:    "single missing field",
			req:     credentials{Password: "p1"},
			wantMsg: "Invalid or missing input provided for: username",
			fields:  []string{"username"},
		},
		{
			name:    "both missing",
			req:     credentials{},
			wantMsg: "Invalid or missing inputs provided for: username, password",
			fields:  []string{"username", "password"},
		},
		{
			name:    "empty tag entry",
			req:     note{Text: "x", Tags: []string{"ok", ""}},
			wantMsg: "Invalid or missing input provided for: tags",
			fields:  []string{"tags"},
		},
		{
			name:    "two bad tags collapse to one field",
			req:     note{Text: "x", Tags: []string{"", "far too long for a tag"}},
			wantMsg: "Invalid or missing input provided for: tags",
			fields:  []string{"tags"},
		},
		{
			name:    "too many tags",
			req:     note{Text: "x", Tags: []string{"a", "b", "c", "d"}},
			wantMsg: "Invalid or missing input provided for: tags",
			fields:  []string{"tags"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())
			assert.Equal(t, tt.wantMsg, domainErr.Message)

			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			for _, f := range tt.fields {
				assert.Contains(t, details, f)
			}
		})
	}
}

func TestInvalidInputMessage(t *testing.T) {
	assert.Equal(t, "Invalid or missing input provided.", validation.InvalidInputMessage(nil))
	assert.Equal(t, "Invalid or missing input provided for: id", validation.InvalidInputMessage([]string{"id"}))
	assert.Equal(t, "Invalid or missing inputs provided for: a, b", validation.InvalidInputMessage([]string{"a", "b"}))
}
