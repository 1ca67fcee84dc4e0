package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-authgate/authbridge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyError(t *testing.T) {
	assert.Equal(t, KindBackendRejected, ClassifyError(fmt.Errorf("sign in: %w", ErrBackendRejected)))
	assert.Equal(t, KindTransportError, ClassifyError(errors.New("dial tcp: refused")))
}

func TestNewAuthSuccess(t *testing.T) {
	session := &models.Session{
		AccessToken:  "at",
		RefreshToken: "rt",
		User:         &models.User{ID: "u1", Email: "a@b.c"},
	}
	result := NewAuthSuccess(session, "unused")
	assert.True(t, result.Success)
	assert.Equal(t, "u1", result.User.ID)
	assert.Equal(t, "at", result.AccessToken)
	assert.Equal(t, "rt", result.RefreshToken)
	assert.Empty(t, result.ErrorMessage)
	assert.NoError(t, result.Err())
}

func TestNewAuthSuccess_IncompleteSessionFails(t *testing.T) {
	tests := []struct {
		name    string
		session *models.Session
	}{
		{"nil session", nil},
		{"no user", &models.Session{AccessToken: "at"}},
		{"no access token", &models.Session{User: &models.User{ID: "u1"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewAuthSuccess(tt.session, "no identity")
			assert.False(t, result.Success)
			assert.Nil(t, result.User)
			assert.Empty(t, result.AccessToken)
			assert.Equal(t, "no identity", result.ErrorMessage)
			assert.Equal(t, KindBackendRejected, result.ErrorKind)
		})
	}
}

func TestResultErr(t *testing.T) {
	var authErr *AuthError

	err := NewAuthFailure(KindValidationFailed, "bad input").Err()
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, KindValidationFailed, authErr.Kind)
	assert.Equal(t, "bad input", err.Error())

	err = NewSendFailure(KindTransportError, "down").Err()
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, KindTransportError, authErr.Kind)

	err = NewOAuthURLFailure(KindValidationFailed, "Unsupported OAuth provider: x").Err()
	require.ErrorAs(t, err, &authErr)

	assert.NoError(t, NewSendSuccess(models.ByPhone("+1")).Err())
	assert.NoError(t, NewOAuthURLSuccess(&models.AuthorizationURL{Provider: "github"}).Err())
}
