package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"

	"photogrip/internal/domain"
)

// Photos lists every photo of the event
func (c *Client) Photos(ctx context.Context) ([]domain.Photo, error) {
	return c.photoList(ctx, "/photos", false)
}

// MyPhotos lists the photos uploaded by the signed in user
func (c *Client) MyPhotos(ctx context.Context) ([]domain.Photo, error) {
	return c.photoList(ctx, "/my-photos", true)
}

// PersonPhotos lists the photos a person appears in
func (c *Client) PersonPhotos(ctx context.Context, personID string) ([]domain.Photo, error) {
	resp, err := c.do(ctx, requestSpec{method: http.MethodGet, path: "/persons/" + escape(personID) + "/photos", noCache: true})
	if err != nil {
		return nil, err
	}
	var photos []domain.Photo
	if err := decode(resp, &photos); err != nil {
		return nil, fmt.Errorf("person %s photos: %w", personID, err)
	}
	return photos, nil
}

func (c *Client) photoList(ctx context.Context, path string, required bool) ([]domain.Photo, error) {
	resp, err := c.doAuth(ctx, requestSpec{method: http.MethodGet, path: path, noCache: true}, required)
	if err != nil {
		return nil, err
	}
	var photos []domain.Photo
	if err := decode(resp, &photos); err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}
	return photos, nil
}

// Persons lists the people recognised in the photos
func (c *Client) Persons(ctx context.Context) ([]domain.Person, error) {
	resp, err := c.do(ctx, requestSpec{method: http.MethodGet, path: "/persons", noCache: true})
	if err != nil {
		return nil, err
	}
	var persons []domain.Person
	if err := decode(resp, &persons); err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	return persons, nil
}

// DeletePhoto removes one photo
func (c *Client) DeletePhoto(ctx context.Context, id string) error {
	resp, err := c.doAuth(ctx, requestSpec{method: http.MethodDelete, path: "/photos/" + escape(id)}, true)
	if err != nil {
		return err
	}
	if err := decode(resp, nil); err != nil {
		return fmt.Errorf("delete photo %s: %w", id, err)
	}
	return nil
}

// UploadFile is one image to upload
type UploadFile struct {
	Name string
	Data []byte
}

type uploadResponse struct {
	Count      *int `json:"count"`
	Duplicates *int `json:"duplicates"`
}

// Upload sends files as one multipart request. When the server omits the
// count, every file is assumed added.
func (c *Client) Upload(ctx context.Context, files []UploadFile) (domain.UploadResult, error) {
	if len(files) == 0 {
		return domain.UploadResult{}, nil
	}
	spec := requestSpec{
		method: http.MethodPost,
		path:   "/upload",
		body:   func() (io.Reader, string, error) { return multipartBody(files) },
	}
	resp, err := c.doAuth(ctx, spec, true)
	if err != nil {
		return domain.UploadResult{}, err
	}

	var out uploadResponse
	if err := decode(resp, &out); err != nil {
		return domain.UploadResult{}, fmt.Errorf("upload: %w", err)
	}
	res := domain.UploadResult{Count: len(files)}
	if out.Count != nil {
		res.Count = *out.Count
	}
	if out.Duplicates != nil {
		res.Duplicates = *out.Duplicates
	}
	return res, nil
}

func multipartBody(files []UploadFile) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="%s"`, quoteEscaper.Replace(f.Name)))
		h.Set("Content-Type", contentTypeFor(f))
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func contentTypeFor(f UploadFile) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(f.Name))); ct != "" {
		return ct
	}
	return http.DetectContentType(f.Data)
}

// LoginResult is the session issued for a Google ID token
type LoginResult struct {
	AccessToken string `json:"access_token"`
	Username    string `json:"username"`
	Email       string `json:"email"`
}

// GoogleLogin exchanges a Google ID token for a session. The token is not
// stored; the caller decides what to persist.
func (c *Client) GoogleLogin(ctx context.Context, idToken string) (LoginResult, error) {
	resp, err := c.do(ctx, requestSpec{
		method: http.MethodPost,
		path:   "/google-login",
		body:   jsonBody(map[string]string{"token": idToken}),
	})
	if err != nil {
		return LoginResult{}, err
	}
	var out LoginResult
	if err := decode(resp, &out); err != nil {
		return LoginResult{}, fmt.Errorf("google login: %w", err)
	}
	if out.AccessToken == "" {
		return LoginResult{}, fmt.Errorf("google login: empty access token")
	}
	if out.Email == "" {
		if claims, err := ParseClaims(out.AccessToken); err == nil {
			out.Email = claims.Email
		}
	}
	return out, nil
}

// Blob is downloaded photo content
type Blob struct {
	Data        []byte
	ContentType string
}

// FetchBlob downloads a photo. Relative URLs resolve against the server root.
func (c *Client) FetchBlob(ctx context.Context, rawURL string) (Blob, error) {
	target := rawURL
	if strings.HasPrefix(rawURL, "/") {
		target = c.base + rawURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Blob{}, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.send(req)
	if err != nil {
		return Blob{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Blob{}, &StatusError{Status: resp.StatusCode}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Blob{}, fmt.Errorf("read photo: %w", err)
	}
	return Blob{Data: data, ContentType: resp.Header.Get("Content-Type")}, nil
}
