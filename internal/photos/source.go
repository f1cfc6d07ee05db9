// Package photos owns the photo lists shown by the gallery tabs.
package photos

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"photogrip/internal/api"
	"photogrip/internal/domain"
	"photogrip/internal/eventbus"
	"photogrip/internal/logging"
	"photogrip/internal/store"
)

// API is the part of the server client the source reads from
type API interface {
	Photos(ctx context.Context) ([]domain.Photo, error)
	MyPhotos(ctx context.Context) ([]domain.Photo, error)
	PersonPhotos(ctx context.Context, personID string) ([]domain.Photo, error)
	Persons(ctx context.Context) ([]domain.Person, error)
	HasSession() bool
}

// Cache keeps the last known list per key
type Cache interface {
	SavePhotos(ctx context.Context, key string, photos []domain.Photo) error
	LoadPhotos(ctx context.Context, key string) ([]domain.Photo, bool, error)
}

// Options wires a Source. Cache, Bus and IsAdmin may be nil.
type Options struct {
	API     API
	Cache   Cache
	Bus     eventbus.EventBus
	IsAdmin func(email string) bool
	Logger  logging.Logger
}

// Source fetches and holds the list behind each tab. Lists are replaced
// wholesale; every replacement bumps the revision.
type Source struct {
	opts  Options
	log   logging.Logger
	group singleflight.Group

	mu       sync.RWMutex
	lists    map[string][]domain.Photo
	revision uint64
	person   string
}

// NewSource creates a source with empty lists
func NewSource(opts Options) *Source {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Source{
		opts:  opts,
		log:   log.With("component", "photos"),
		lists: make(map[string][]domain.Photo),
	}
}

// Photos returns the current list of tab
func (s *Source) Photos(tab domain.Tab) []domain.Photo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Photo(nil), s.lists[store.ListKey(tab, s.person)]...)
}

// Revision returns the number of list replacements so far
func (s *Source) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Person returns the person whose photos the find tab shows
func (s *Source) Person() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.person
}

// RefreshAll refetches the all tab
func (s *Source) RefreshAll(ctx context.Context) error {
	return s.Refresh(ctx, domain.TabAll)
}

// RefreshMine refetches the mine tab
func (s *Source) RefreshMine(ctx context.Context) error {
	return s.Refresh(ctx, domain.TabMine)
}

// SelectPerson points the find tab at personID and loads their photos
func (s *Source) SelectPerson(ctx context.Context, personID string) error {
	s.mu.Lock()
	s.person = personID
	s.mu.Unlock()
	return s.Refresh(ctx, domain.TabFind)
}

// Refresh refetches tab. Concurrent refreshes of the same list share one
// request. A 304 keeps the current list. Any other failure falls back to the
// cached list, or an empty one, and is returned after the fallback is published.
func (s *Source) Refresh(ctx context.Context, tab domain.Tab) error {
	person := s.Person()
	key := store.ListKey(tab, person)
	_, err, _ := s.group.Do(key, func() (any, error) {
		return nil, s.refresh(ctx, tab, person, key)
	})
	return err
}

func (s *Source) refresh(ctx context.Context, tab domain.Tab, person, key string) error {
	photos, err := s.fetch(ctx, tab, person)
	switch {
	case errors.Is(err, api.ErrNotModified):
		s.log.Debug("photo list not modified", "list", key)
		return nil
	case err != nil:
		s.log.Warn("photo list refresh failed", "list", key, "error", err)
		s.replace(tab, person, key, s.cached(ctx, key), true)
		return fmt.Errorf("refresh %s: %w", key, err)
	}

	if s.opts.Cache != nil {
		if err := s.opts.Cache.SavePhotos(ctx, key, photos); err != nil {
			s.log.Warn("cache photo list failed", "list", key, "error", err)
		}
	}
	s.replace(tab, person, key, photos, false)
	return nil
}

func (s *Source) fetch(ctx context.Context, tab domain.Tab, person string) ([]domain.Photo, error) {
	switch tab {
	case domain.TabMine:
		if !s.opts.API.HasSession() {
			return []domain.Photo{}, nil
		}
		return s.opts.API.MyPhotos(ctx)
	case domain.TabFind:
		if person == "" {
			return []domain.Photo{}, nil
		}
		return s.opts.API.PersonPhotos(ctx, person)
	default:
		return s.opts.API.Photos(ctx)
	}
}

func (s *Source) cached(ctx context.Context, key string) []domain.Photo {
	if s.opts.Cache == nil {
		return nil
	}
	photos, ok, err := s.opts.Cache.LoadPhotos(ctx, key)
	if err != nil {
		s.log.Warn("read cached photo list failed", "list", key, "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	return photos
}

func (s *Source) replace(tab domain.Tab, person, key string, photos []domain.Photo, stale bool) {
	if photos == nil {
		photos = []domain.Photo{}
	}
	s.mu.Lock()
	s.lists[key] = photos
	s.revision++
	rev := s.revision
	s.mu.Unlock()

	if s.opts.Bus != nil {
		s.opts.Bus.Publish(eventbus.PhotosLoadedEvent{
			Tab:      tab,
			PersonID: person,
			Photos:   append([]domain.Photo(nil), photos...),
			Revision: rev,
			Stale:    stale,
		})
	}
}

// Persons fetches the people recognised in the photos, hiding those without
// a representative face
func (s *Source) Persons(ctx context.Context) ([]domain.Person, error) {
	persons, err := s.opts.API.Persons(ctx)
	if err != nil {
		err = fmt.Errorf("list persons: %w", err)
	} else {
		persons = domain.VisiblePersons(persons)
	}
	if s.opts.Bus != nil {
		s.opts.Bus.Publish(eventbus.PersonsLoadedEvent{Persons: persons, Err: err})
	}
	return persons, err
}

// CanDelete reports whether user may delete photos from tab. Own uploads are
// always deletable; the all photos list only by admins. Person lists are
// never deletable.
func (s *Source) CanDelete(tab domain.Tab, user domain.User) bool {
	if !user.SignedIn() {
		return false
	}
	if tab == domain.TabMine {
		return true
	}
	return tab == domain.TabAll && s.opts.IsAdmin != nil && s.opts.IsAdmin(user.Email)
}

// Listen refreshes a tab whenever a RefreshRequestedEvent is published. The
// returned function stops listening.
func (s *Source) Listen(ctx context.Context) func() {
	if s.opts.Bus == nil {
		return func() {}
	}
	return s.opts.Bus.Subscribe(eventbus.EventRefreshRequested, func(e eventbus.DomainEvent) {
		req, ok := e.(eventbus.RefreshRequestedEvent)
		if !ok {
			return
		}
		go func() {
			if err := s.Refresh(ctx, req.Tab); err != nil {
				s.opts.Bus.Publish(eventbus.ErrorEvent{Message: "Could not refresh photos", Err: err})
			}
		}()
	})
}
