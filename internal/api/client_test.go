package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photogrip/internal/domain"
)

type memTokens struct {
	mu      sync.Mutex
	token   string
	cleared bool
}

func (m *memTokens) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *memTokens) SetToken(t string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = t
	return nil
}

func (m *memTokens) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.cleared = true
	return nil
}

func signed(t *testing.T, email string, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"exp":   exp.Unix(),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return tok
}

func newTestClient(srv *httptest.Server, tokens TokenStore) *Client {
	return New(Options{BaseURL: srv.URL + "/", Tokens: tokens, Timeout: 5 * time.Second})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestPhotosSendsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/photos", r.URL.Path)
		assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		writeJSON(w, 200, []domain.Photo{{ID: "1", URL: "/u/1.jpg"}})
	}))
	defer srv.Close()

	photos, err := newTestClient(srv, &memTokens{token: "abc"}).Photos(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.Photo{{ID: "1", URL: "/u/1.jpg"}}, photos)
}

func TestPhotosAnonymousWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, 200, []domain.Photo{})
	}))
	defer srv.Close()

	photos, err := newTestClient(srv, &memTokens{}).Photos(context.Background())
	require.NoError(t, err)
	assert.Empty(t, photos)
}

func TestMyPhotosNeedsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	defer srv.Close()

	_, err := newTestClient(srv, &memTokens{}).MyPhotos(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestNotModified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotModified)
	}))
	defer srv.Close()

	_, err := newTestClient(srv, &memTokens{token: "abc"}).Photos(context.Background())
	assert.ErrorIs(t, err, ErrNotModified)
}

func TestUnauthorizedRefreshesOnceAndRetries(t *testing.T) {
	var refreshes, calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			refreshes.Add(1)
			assert.Equal(t, "Bearer old", r.Header.Get("Authorization"))
			writeJSON(w, 200, map[string]string{"access_token": "new"})
		case "/my-photos":
			calls.Add(1)
			if r.Header.Get("Authorization") != "Bearer new" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			writeJSON(w, 200, []domain.Photo{{ID: "9", URL: "u"}})
		}
	}))
	defer srv.Close()

	tokens := &memTokens{token: "old"}
	photos, err := newTestClient(srv, tokens).MyPhotos(context.Background())

	require.NoError(t, err)
	assert.Len(t, photos, 1)
	assert.Equal(t, int32(1), refreshes.Load())
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, "new", tokens.Token())
}

func TestRejectedRefreshClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tokens := &memTokens{token: "old"}
	err := newTestClient(srv, tokens).DeletePhoto(context.Background(), "5")

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.True(t, tokens.cleared)
	assert.Empty(t, tokens.Token())
}

func TestExpiringTokenRefreshedFirst(t *testing.T) {
	var paths []string
	var mu sync.Mutex
	fresh := ""
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		switch r.URL.Path {
		case "/auth/refresh":
			writeJSON(w, 200, map[string]string{"access_token": fresh})
		default:
			assert.Equal(t, "Bearer "+fresh, r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	fresh = signed(t, "a@b.c", time.Now().Add(time.Hour))
	tokens := &memTokens{token: signed(t, "a@b.c", time.Now().Add(5*time.Second))}

	require.NoError(t, newTestClient(srv, tokens).DeletePhoto(context.Background(), "x y"))
	assert.Equal(t, []string{"/auth/refresh", "/photos/x y"}, paths)
}

func TestStatusErrorDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"detail": "File too large"})
	}))
	defer srv.Close()

	_, err := newTestClient(srv, &memTokens{token: "t"}).Upload(context.Background(), []UploadFile{{Name: "a.jpg", Data: []byte{1}}})

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 413, se.Status)
	assert.Equal(t, "File too large", se.Detail)
}

func TestUploadMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload", r.URL.Path)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		files := r.MultipartForm.File["images"]
		if !assert.Len(t, files, 2) {
			return
		}
		assert.Equal(t, "a.jpg", files[0].Filename)
		assert.Equal(t, "image/jpeg", files[0].Header.Get("Content-Type"))
		f, err := files[1].Open()
		if !assert.NoError(t, err) {
			return
		}
		data, _ := io.ReadAll(f)
		assert.Equal(t, []byte("second"), data)
		writeJSON(w, 200, map[string]int{"count": 1, "duplicates": 1})
	}))
	defer srv.Close()

	res, err := newTestClient(srv, &memTokens{token: "t"}).Upload(context.Background(), []UploadFile{
		{Name: "a.jpg", Data: []byte("first")},
		{Name: "b.png", Data: []byte("second")},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.UploadResult{Count: 1, Duplicates: 1}, res)
}

func TestUploadCountDefaultsToFiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	res, err := newTestClient(srv, &memTokens{token: "t"}).Upload(context.Background(), []UploadFile{{Name: "a.jpg"}, {Name: "b.jpg"}})
	require.NoError(t, err)
	assert.Equal(t, domain.UploadResult{Count: 2}, res)
}

func TestGoogleLogin(t *testing.T) {
	access := signed(t, "guest@example.com", time.Now().Add(time.Hour))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/google-login", r.URL.Path)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "id-token", body["token"])
		writeJSON(w, 200, map[string]string{"access_token": access, "username": "Guest One"})
	}))
	defer srv.Close()

	res, err := newTestClient(srv, &memTokens{}).GoogleLogin(context.Background(), "id-token")

	require.NoError(t, err)
	assert.Equal(t, "Guest One", res.Username)
	assert.Equal(t, "guest@example.com", res.Email, "email read from token claims")
}

func TestPersonsAndPersonPhotos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/persons":
			_, _ = io.WriteString(w, `[{"id":"3","name":"","face_count":2,"representative_face":{"bbox":{"x":1,"y":2,"w":3,"h":4},"photo_url":"/p.jpg"}}]`)
		case "/persons/3/photos":
			writeJSON(w, 200, []domain.Photo{{ID: "a", URL: "/a.jpg"}})
		}
	}))
	defer srv.Close()
	c := newTestClient(srv, nil)

	persons, err := c.Persons(context.Background())
	require.NoError(t, err)
	require.Len(t, persons, 1)
	assert.Equal(t, "Person 3", persons[0].DisplayName())
	require.NotNil(t, persons[0].RepresentativeFace)
	assert.Equal(t, 3.0, persons[0].RepresentativeFace.BBox.W)

	photos, err := c.PersonPhotos(context.Background(), "3")
	require.NoError(t, err)
	assert.Len(t, photos, 1)
}

func TestFetchBlob(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.jpg" {
			w.WriteHeader(404)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png"))
	}))
	defer srv.Close()
	c := newTestClient(srv, nil)

	blob, err := c.FetchBlob(context.Background(), "/a.png")
	require.NoError(t, err)
	assert.Equal(t, Blob{Data: []byte("png"), ContentType: "image/png"}, blob)

	_, err = c.FetchBlob(context.Background(), srv.URL+"/missing.jpg")
	var se *StatusError
	assert.True(t, errors.As(err, &se))
}

func TestParseClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	c, err := ParseClaims(signed(t, "x@y.z", exp))
	require.NoError(t, err)
	assert.Equal(t, "x@y.z", c.Email)
	assert.True(t, exp.Equal(c.ExpiresAt))

	_, err = ParseClaims("not-a-jwt")
	assert.Error(t, err)
}
