package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIssueAndValidate(t *testing.T) {
	svc := New("test-secret", time.Hour)

	raw, err := svc.IssueDraftToken("draft-123")
	assert.NoError(t, err)
	assert.NotEmpty(t, raw)

	claims, err := svc.ValidateToken(raw)
	assert.NoError(t, err)
	assert.Equal(t, "draft-123", claims.DraftID)
}

func TestValidate_WrongSecret(t *testing.T) {
	raw, err := New("secret-a", time.Hour).IssueDraftToken("draft-123")
	assert.NoError(t, err)

	_, err = New("secret-b", time.Hour).ValidateToken(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_Expired(t *testing.T) {
	raw, err := New("secret", -time.Minute).IssueDraftToken("draft-123")
	assert.NoError(t, err)

	_, err = New("secret", -time.Minute).ValidateToken(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_Garbage(t *testing.T) {
	_, err := New("secret", time.Hour).ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
