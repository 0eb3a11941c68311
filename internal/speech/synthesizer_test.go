package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSynthesize(t *testing.T) {
	var got synthesisRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("ID3-audio"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	s := NewHTTPSynthesizer(srv.URL, dir, 5*time.Second)

	path, err := s.Synthesize(context.Background(), "Lom 448", Russian.Voice())
	require.NoError(t, err)

	require.Equal(t, synthesisRequest{Text: "Lom 448", Language: "ru-RU", Voice: "Maxim"}, got)
	require.Equal(t, dir, filepath.Dir(path))
	require.True(t, strings.HasPrefix(filepath.Base(path), "speech-"))
	require.True(t, strings.HasSuffix(path, ".mp3"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "ID3-audio", string(data))
}

func TestSynthesize_ErrorStatusLeavesNoFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	dir := t.TempDir()
	s := NewHTTPSynthesizer(srv.URL, dir, 5*time.Second)

	_, err := s.Synthesize(context.Background(), "Lom 448", French.Voice())
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}
