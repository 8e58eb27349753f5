package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/asset-maintenance/internal/domain"
)

func TestGenerateTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", 60)
	role := domain.TechnicianRoleAdmin

	signed, issued, err := manager.GenerateToken("tech-1", domain.SubjectTypeTechnician, &role)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)
	assert.Equal(t, "tech-1", issued.SubjectID)
	assert.Equal(t, domain.SubjectTypeTechnician, issued.Subject)
	assert.WithinDuration(t, issued.IssuedAt.Add(60*time.Minute), issued.ExpiresAt, time.Second)

	claims, err := manager.ParseToken(signed)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, claims.ID)
	assert.Equal(t, "tech-1", claims.SubjectID)
	assert.Equal(t, domain.SubjectTypeTechnician, claims.Subject)
	require.NotNil(t, claims.Role)
	assert.Equal(t, domain.TechnicianRoleAdmin, *claims.Role)
}

func TestGenerateTokenWithoutRole(t *testing.T) {
	manager := NewTokenManager("test-secret", 0) // falls back to the default TTL

	signed, issued, err := manager.GenerateToken("emp-1", domain.SubjectTypeEmployee, nil)
	require.NoError(t, err)
	assert.Nil(t, issued.Role)

	claims, err := manager.ParseToken(signed)
	require.NoError(t, err)
	assert.Equal(t, domain.SubjectTypeEmployee, claims.Subject)
	assert.Nil(t, claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	signed, _, err := NewTokenManager("secret-a", 60).GenerateToken("emp-1", domain.SubjectTypeEmployee, nil)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 60).ParseToken(signed)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	manager := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}
	signed, _, err := manager.GenerateToken("emp-1", domain.SubjectTypeEmployee, nil)
	require.NoError(t, err)

	_, err = manager.ParseToken(signed)
	assert.Error(t, err)
}
