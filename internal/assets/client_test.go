package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClient_SetImage(t *testing.T) {
	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/img/sample_quest.jpg", r.URL.Path)
		fmt.Fprint(w, "jpeg bytes")
	}))
	defer cdn.Close()

	var gotRefID, gotRef, gotField, gotName string
	var gotData []byte
	cms := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1 << 20))
		gotRefID = r.FormValue("refId")
		gotRef = r.FormValue("ref")
		gotField = r.FormValue("field")

		file, header, err := r.FormFile("files")
		require.NoError(t, err)
		defer file.Close()
		gotName = header.Filename
		gotData, err = io.ReadAll(file)
		require.NoError(t, err)

		w.WriteHeader(http.StatusCreated)
	}))
	defer cms.Close()

	// partial URLs arrive without a scheme, the prefix completes them
	c := NewClient(cms.URL, cdn.URL, zap.NewNop())
	err := c.SetImage(context.Background(), SetImageRequest{
		Image:  "/img/sample_quest",
		GameID: 42,
		Slug:   "sample-quest",
		Field:  "cover",
	})
	require.NoError(t, err)

	assert.Equal(t, "42", gotRefID)
	assert.Equal(t, "game", gotRef)
	assert.Equal(t, "cover", gotField)
	assert.Equal(t, "sample-quest.jpg", gotName)
	assert.Equal(t, []byte("jpeg bytes"), gotData)
}

func TestClient_SetImageFetchFailure(t *testing.T) {
	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer cdn.Close()

	c := NewClient("http://localhost:0/upload", cdn.URL, zap.NewNop())
	err := c.SetImage(context.Background(), SetImageRequest{Image: "/img/gone", Slug: "gone", Field: "cover"})
	assert.Error(t, err)
}

func TestClient_SetImageUploadRejected(t *testing.T) {
	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "jpeg bytes")
	}))
	defer cdn.Close()

	cms := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer cms.Close()

	c := NewClient(cms.URL, cdn.URL, zap.NewNop())
	err := c.SetImage(context.Background(), SetImageRequest{Image: "/img/x", Slug: "x", Field: "gallery"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}
