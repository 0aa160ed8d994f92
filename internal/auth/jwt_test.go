package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_SignAndParse(t *testing.T) {
	ts := TokenService{Secret: []byte("test-secret"), Issuer: "gamehub", Duration: time.Hour}
	e := &Editor{ID: "editor-1", Username: "alice"}

	token, exp, err := ts.Sign(e)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := ts.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "editor-1", claims.EditorID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "gamehub", claims.Issuer)
	assert.Equal(t, "editor-1", claims.Subject)
}

func TestTokenService_ParseWrongSecret(t *testing.T) {
	ts := TokenService{Secret: []byte("test-secret"), Issuer: "gamehub", Duration: time.Hour}
	token, _, err := ts.Sign(&Editor{ID: "editor-1", Username: "alice"})
	require.NoError(t, err)

	other := TokenService{Secret: []byte("another-secret"), Issuer: "gamehub", Duration: time.Hour}
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestTokenService_ParseExpired(t *testing.T) {
	ts := TokenService{Secret: []byte("test-secret"), Issuer: "gamehub", Duration: -time.Minute}
	token, _, err := ts.Sign(&Editor{ID: "editor-1", Username: "alice"})
	require.NoError(t, err)

	_, err = ts.Parse(token)
	assert.Error(t, err)
}

func TestTokenService_ParseGarbage(t *testing.T) {
	ts := TokenService{Secret: []byte("test-secret"), Issuer: "gamehub", Duration: time.Hour}
	_, err := ts.Parse("not.a.token")
	assert.Error(t, err)
}
