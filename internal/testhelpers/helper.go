package testhelpers

import (
	"crypto/rand"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestHelper wires a fake backend, an HTTP server and token minting for
// package tests.
type TestHelper struct {
	T          *testing.T
	Backend    *FakeBackend
	Server     *httptest.Server
	BaseURL    string
	Token      string
	SigningKey []byte
}

// NewTestHelper starts a fake backend with a freshly minted admin token. The
// server is shut down with the test.
func NewTestHelper(t *testing.T) *TestHelper {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	h := &TestHelper{T: t, SigningKey: key}
	h.Token = h.MintToken(uuid.New().String(), 15*time.Minute)
	h.Backend = NewFakeBackend(h.Token)
	h.Server = httptest.NewServer(h.Backend.Router())
	h.BaseURL = h.Server.URL
	t.Cleanup(h.Server.Close)
	return h
}

// MintToken signs an HS256 token with the helper's key. The console never
// verifies signatures, but real-shaped tokens keep the expiry checks honest.
func (h *TestHelper) MintToken(sub string, ttl time.Duration) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": "Consorcio",
		"sub": sub,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.SigningKey)
	require.NoError(h.T, err, "Failed to sign test JWT")
	return signed
}

// MintTokenWithoutExpiry signs a token missing the exp claim.
func (h *TestHelper) MintTokenWithoutExpiry(sub string) string {
	claims := jwt.MapClaims{
		"iss": "Consorcio",
		"sub": sub,
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.SigningKey)
	require.NoError(h.T, err, "Failed to sign test JWT")
	return signed
}
