package auth

import (
	"testing"
	"time"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var adminUser = domain.User{ID: 1, Username: "admin", Role: domain.RoleAdmin}

func TestIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer("secret", 24*time.Hour)

	token, err := issuer.Issue(adminUser)
	require.NoError(t, err)

	claims, err := issuer.VerifyAdmin(token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestVerify_Expired(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := issuer.Issue(adminUser)
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("one", time.Hour).Issue(adminUser)
	require.NoError(t, err)

	_, err = NewTokenIssuer("two", time.Hour).Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerify_Malformed(t *testing.T) {
	_, err := NewTokenIssuer("secret", time.Hour).Verify("not-a-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{Role: domain.RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret", time.Hour).Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyAdmin_CustomerDenied(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	token, err := issuer.Issue(domain.User{ID: 2, Username: "bob", Role: domain.RoleCustomer})
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	require.NoError(t, err)
	_, err = issuer.VerifyAdmin(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestReadUnverified(t *testing.T) {
	token, err := NewTokenIssuer("secret", time.Hour).Issue(adminUser)
	require.NoError(t, err)

	claims, err := ReadUnverified(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	require.NotNil(t, claims.ExpiresAt)

	_, err = ReadUnverified("garbage")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)

	assert.NoError(t, CheckPassword(hash, "admin123"))
	assert.ErrorIs(t, CheckPassword(hash, "wrong"), domain.ErrInvalidCredentials)
}

func TestCheckUnknownUser(t *testing.T) {
	assert.ErrorIs(t, CheckUnknownUser("admin123"), domain.ErrInvalidCredentials)
	assert.ErrorIs(t, CheckUnknownUser("unknown-user"), domain.ErrInvalidCredentials)
	require.NotEmpty(t, unknownUserHash)
}
