//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type photo struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type face struct {
	PhotoURL string `json:"photo_url"`
}

type person struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	FaceCount          int    `json:"face_count"`
	RepresentativeFace *face  `json:"representative_face"`
}

// Fixture is the content served by the fake photo server
type Fixture struct {
	Photos       []photo
	Persons      []person
	PersonPhotos map[string][]photo
}

// GalleryFixture returns n photos, two people and a photo of each
func GalleryFixture(n int) Fixture {
	fx := Fixture{
		Persons: []person{
			{ID: "1", Name: "Ana", FaceCount: 2, RepresentativeFace: &face{PhotoURL: "/img/p00.jpg"}},
			{ID: "2", Name: "Bo", FaceCount: 1, RepresentativeFace: &face{PhotoURL: "/img/p00.jpg"}},
		},
		PersonPhotos: map[string][]photo{},
	}
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("p%02d", i)
		fx.Photos = append(fx.Photos, photo{ID: id, URL: "/img/" + id + ".jpg"})
	}
	if n > 0 {
		fx.PersonPhotos["1"] = fx.Photos[:1]
		fx.PersonPhotos["2"] = fx.Photos[n-1:]
	}
	return fx
}

func newPhotoServer(t *testing.T, fx Fixture) *httptest.Server {
	t.Helper()
	send := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/photos", func(w http.ResponseWriter, r *http.Request) {
		send(w, fx.Photos)
	})
	mux.HandleFunc("/my-photos", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/persons", func(w http.ResponseWriter, r *http.Request) {
		send(w, fx.Persons)
	})
	mux.HandleFunc("/persons/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/persons/"), "/photos")
		send(w, fx.PersonPhotos[id])
	})
	mux.HandleFunc("/img/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg"))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}
