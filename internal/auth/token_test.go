package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/social-network/internal/domain"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, exp, err := tm.Issue("user-1", "ana_01", "ana@x.com", domain.RoleStandard)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Len(t, strings.Split(token, "."), 3)
	assert.WithinDuration(t, time.Now().Add(SessionTTL), exp, 2*time.Second)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "ana_01", claims.Username)
	assert.Equal(t, "ana@x.com", claims.Email)
	assert.Equal(t, domain.RoleStandard, claims.Role)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestTokenManager_Expired(t *testing.T) {
	tm := &TokenManager{secret: []byte("test-secret"), ttl: time.Millisecond}

	token, _, err := tm.Issue("user-1", "ana_01", "ana@x.com", domain.RoleStandard)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	_, err = tm.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManager_TamperedSignature(t *testing.T) {
	tm := NewTokenManager("test-secret")
	token, _, err := tm.Issue("user-1", "ana_01", "ana@x.com", domain.RoleStandard)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = tm.Parse(tampered)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("one-secret").Issue("user-1", "ana_01", "ana@x.com", domain.RoleStandard)
	require.NoError(t, err)

	_, err = NewTokenManager("other-secret").Parse(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenManager_RejectsOtherSigningMethods(t *testing.T) {
	tm := NewTokenManager("test-secret")

	// same secret, different HMAC variant
	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{
		Username: "ana_01",
		Role:     domain.RoleStandard,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := hs512.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = tm.Parse(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	// unsigned token
	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tm.Parse(unsigned)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenManager_Garbage(t *testing.T) {
	tm := NewTokenManager("test-secret")
	for _, raw := range []string{"", "abc", "a.b.c", "a.b"} {
		_, err := tm.Parse(raw)
		assert.ErrorIs(t, err, ErrTokenInvalid, "input %q", raw)
	}
}
