package populate

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailEnricher_GameInfo(t *testing.T) {
	longText := strings.Repeat("abcde", 100) // 500 chars
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/game/sample-quest", r.URL.Path)
		fmt.Fprintf(w, `<html><body><div class="description"><p>%s</p></div></body></html>`, longText)
	}))
	defer srv.Close()

	e := NewDetailEnricher(srv.URL)
	info, err := e.GameInfo(context.Background(), "sample-quest")
	require.NoError(t, err)

	assert.Equal(t, "BR0", info.Rating)
	assert.Len(t, []rune(info.ShortDescription), 160)
	assert.Equal(t, longText[:160], info.ShortDescription)
	// description keeps the inner markup, not just the text
	assert.Contains(t, info.Description, "<p>")
}

func TestDetailEnricher_ShortTextKeptWhole(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div class="description">  short text  </div></body></html>`)
	}))
	defer srv.Close()

	e := NewDetailEnricher(srv.URL)
	info, err := e.GameInfo(context.Background(), "whatever")
	require.NoError(t, err)
	assert.Equal(t, "short text", info.ShortDescription)
}

func TestDetailEnricher_MissingBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div class="other">nothing here</div></body></html>`)
	}))
	defer srv.Close()

	e := NewDetailEnricher(srv.URL)
	_, err := e.GameInfo(context.Background(), "whatever")
	assert.Error(t, err)
}

func TestDetailEnricher_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	e := NewDetailEnricher(srv.URL)
	_, err := e.GameInfo(context.Background(), "gone")
	assert.Error(t, err)
}
