package authenticator

import (
	"testing"
	"time"

	"github.com/fieldserve/backoffice/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthenticator(secret string) *Authenticator {
	return New(&config.Config{JWT_SECRET: secret, JWT_EXPIRES_DAYS: 7})
}

func TestTokenRoundTrip(t *testing.T) {
	a := testAuthenticator("test_secret")
	userID := uuid.New()

	token, err := a.GenerateToken(userID, "dana@example.com", "employee")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := a.VerifyAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, "dana@example.com", claims.Email)
	assert.Equal(t, "employee", claims.Role)

	parsed, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestVerifyAccessToken_ForeignSecret(t *testing.T) {
	a := testAuthenticator("secret_one")
	b := testAuthenticator("secret_two")

	token, err := a.GenerateToken(uuid.New(), "x@example.com", "admin")
	require.NoError(t, err)

	_, err = b.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	a := testAuthenticator("test_secret")

	claims := UserClaims{
		Email: "x@example.com",
		Role:  "employee",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-48 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test_secret"))
	require.NoError(t, err)

	_, err = a.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccessToken_Garbage(t *testing.T) {
	a := testAuthenticator("test_secret")

	_, err := a.VerifyAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = a.VerifyAccessToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccessToken_RejectsUnsignedToken(t *testing.T) {
	a := testAuthenticator("test_secret")

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: uuid.NewString()})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = a.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
