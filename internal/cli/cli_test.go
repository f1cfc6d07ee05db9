package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"photogrip/internal/domain"
	"photogrip/internal/version"
)

type fakeClipboard struct {
	text string
}

func (c *fakeClipboard) WriteText(text string) error {
	c.text = text
	return nil
}

// server is a minimal photo server
func server(t *testing.T) *httptest.Server {
	t.Helper()
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "ana@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("/photos", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]domain.Photo{{ID: "a", URL: "/a.jpg"}, {ID: "b", URL: "/b.jpg"}})
	})
	mux.HandleFunc("/photos/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "Bearer "+access, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/a.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = io.WriteString(w, "jpeg-a")
	})
	mux.HandleFunc("/b.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = io.WriteString(w, "jpeg-b")
	})
	mux.HandleFunc("/persons", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":"7","name":"Ana","face_count":3,"representative_face":{"bbox":{"x":0,"y":0,"w":1,"h":1},"photo_url":"/a.jpg"}}]`)
	})
	mux.HandleFunc("/google-login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": access, "username": "Ana"})
	})
	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"count": 1, "duplicates": 0})
	})
	mux.Handle("/ws", websocket.Handler(func(ws *websocket.Conn) {
		_ = websocket.JSON.Send(ws, map[string]int{"guestCount": 7})
	}))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// setup isolates config, cache and log files and returns the global flags
func setup(t *testing.T, srv *httptest.Server) []string {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("PHOTOGRIP_LOG_ENABLED", "false")
	return []string{"--config", filepath.Join(t.TempDir(), "config.toml"), "--api-url", srv.URL}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "photogrip "+version.String()+"\n", out)
}

func TestRootRunsGallery(t *testing.T) {
	flags := setup(t, server(t))

	orig := runTUI
	defer func() { runTUI = orig }()
	var got *App
	runTUI = func(ctx context.Context, app *App) error {
		got = app
		return nil
	}

	_, err := run(t, flags...)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Store.Session().SignedIn(), "starts as a guest")
	assert.Empty(t, got.Store.Session().Username)
}

func TestPhotos(t *testing.T) {
	flags := setup(t, server(t))

	out, err := run(t, append([]string{"photos"}, flags...)...)
	require.NoError(t, err)
	assert.Equal(t, "1\ta\t/a.jpg\n2\tb\t/b.jpg\n", out)

	out, err = run(t, append([]string{"photos", "--json"}, flags...)...)
	require.NoError(t, err)
	var list []domain.Photo
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Len(t, list, 2)

	_, err = run(t, append([]string{"photos", "--tab", "nope"}, flags...)...)
	assert.ErrorContains(t, err, "unknown tab")
}

func TestPeople(t *testing.T) {
	flags := setup(t, server(t))

	out, err := run(t, append([]string{"people"}, flags...)...)
	require.NoError(t, err)
	assert.Equal(t, "7\tAna\t3 photos\n", out)
}

func TestShareCopiesLinksWithoutShareDir(t *testing.T) {
	flags := setup(t, server(t))
	clip := &fakeClipboard{}
	orig := clipboard
	clipboard = clip
	defer func() { clipboard = orig }()

	out, err := run(t, append([]string{"share", "2", "1"}, flags...)...)
	require.NoError(t, err)
	assert.Equal(t, "Copied 2 links to the clipboard\n", out)
	assert.Equal(t, "/a.jpg\n/b.jpg", clip.text, "links follow the grid order")
}

func TestShareExportsToShareDir(t *testing.T) {
	flags := setup(t, server(t))
	dir := t.TempDir()
	t.Setenv("PHOTOGRIP_SHARE_DIR", dir)

	out, err := run(t, append([]string{"share", "1"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Shared 1 photo to "+dir)

	files, err := filepath.Glob(filepath.Join(dir, "*", "*.jpg"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Equal(t, "jpeg-a", string(data))
}

func TestShareRejectsBadIndex(t *testing.T) {
	flags := setup(t, server(t))

	_, err := run(t, append([]string{"share", "3"}, flags...)...)
	assert.ErrorContains(t, err, "expected 1..2")
}

func TestUploadNeedsSession(t *testing.T) {
	flags := setup(t, server(t))

	_, err := run(t, append([]string{"upload", t.TempDir()}, flags...)...)
	assert.ErrorIs(t, err, errSignIn)
}

func TestLoginUploadDeleteLogout(t *testing.T) {
	flags := setup(t, server(t))

	out, err := run(t, append([]string{"login", "--token", "google-id-token"}, flags...)...)
	require.NoError(t, err)
	assert.Equal(t, "Signed in as Ana\n", out)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cake.jpg"), []byte("jpeg"), 0o644))
	out, err = run(t, append([]string{"upload", dir}, flags...)...)
	require.NoError(t, err)
	assert.Equal(t, "Thanks for sharing 💖 Added 1 photo.\n", out)

	out, err = run(t, append([]string{"delete", "a"}, flags...)...)
	require.NoError(t, err)
	assert.Equal(t, "Deleted 1 photo\n", out)

	out, err = run(t, append([]string{"logout"}, flags...)...)
	require.NoError(t, err)
	assert.Equal(t, "Signed out\n", out)

	_, err = run(t, append([]string{"delete", "a"}, flags...)...)
	assert.ErrorIs(t, err, errSignIn)
}

func TestGuests(t *testing.T) {
	flags := setup(t, server(t))

	out, err := run(t, append([]string{"guests", "--timeout", "5s"}, flags...)...)
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestConfigPrintAndInit(t *testing.T) {
	srv := server(t)
	flags := setup(t, srv)

	out, err := run(t, append([]string{"config"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, srv.URL)
	assert.Contains(t, out, "collapse_delay")

	out, err = run(t, append([]string{"config", "init"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "config.toml")

	_, err = run(t, append([]string{"config", "init"}, flags...)...)
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, append([]string{"config", "init", "--force"}, flags...)...)
	assert.NoError(t, err)
}

func TestBadAPIURL(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	_, err := run(t, "photos", "--config", filepath.Join(t.TempDir(), "c.toml"), "--api-url", "ftp://x")
	assert.ErrorContains(t, err, "api_url")
}
