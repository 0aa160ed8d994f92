package auth

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamehub/pkg/database"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func newAuthRouter(t *testing.T) (*gin.Engine, TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens := TokenService{Secret: []byte("test-secret"), Issuer: "gamehub", Duration: time.Hour}
	router := gin.New()
	NewHandler(NewRepo(openTestDB(t)), tokens).RegisterRoutes(router.Group("/auth"))
	return router, tokens
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRegisterAndLogin(t *testing.T) {
	router, tokens := newAuthRouter(t)

	rec := postJSON(t, router, "/auth/register", gin.H{
		"username": "alice",
		"email":    "Alice@Example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Editor struct {
			ID       string `json:"id"`
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"editor"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.Editor.ID)
	assert.Equal(t, "alice", created.Editor.Username)
	// email is normalized on the way in
	assert.Equal(t, "alice@example.com", created.Editor.Email)

	claims, err := tokens.Parse(created.Token)
	require.NoError(t, err)
	assert.Equal(t, created.Editor.ID, claims.EditorID)

	rec = postJSON(t, router, "/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, router, "/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "wrong horse",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	router, _ := newAuthRouter(t)

	cases := []struct {
		name string
		body gin.H
		want int
	}{
		{"short username", gin.H{"username": "al", "email": "a@b.com", "password": "long enough"}, http.StatusBadRequest},
		{"bad email", gin.H{"username": "alice", "email": "nope", "password": "long enough"}, http.StatusBadRequest},
		{"short password", gin.H{"username": "alice", "email": "a@b.com", "password": "short"}, http.StatusBadRequest},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := postJSON(t, router, "/auth/register", c.body)
			assert.Equal(t, c.want, rec.Code)
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	router, _ := newAuthRouter(t)

	body := gin.H{"username": "alice", "email": "a@b.com", "password": "long enough"}
	require.Equal(t, http.StatusCreated, postJSON(t, router, "/auth/register", body).Code)

	rec := postJSON(t, router, "/auth/register", body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// same username under a new email still conflicts
	rec = postJSON(t, router, "/auth/register", gin.H{
		"username": "alice", "email": "c@d.com", "password": "long enough",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	router, _ := newAuthRouter(t)
	rec := postJSON(t, router, "/auth/login", gin.H{"email": "ghost@b.com", "password": "whatever"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
