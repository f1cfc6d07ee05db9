package actions

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"photogrip/internal/domain"
)

// recorder implements every collaborator and logs calls in order
type recorder struct {
	mu        sync.Mutex
	calls     []string
	deleteErr map[string]error
	blobErr   map[string]error
	canShare  bool
	shared    []File
	clip      []string
	onDelete  func(id string)
}

func (r *recorder) record(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, s)
}

func (r *recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recorder) RefreshAll(context.Context) error  { r.record("refreshAll"); return nil }
func (r *recorder) RefreshMine(context.Context) error { r.record("refreshMine"); return nil }

func (r *recorder) DeletePhoto(_ context.Context, id string) error {
	r.record("delete:" + id)
	if r.onDelete != nil {
		r.onDelete(id)
	}
	return r.deleteErr[id]
}

func (r *recorder) FetchBlob(_ context.Context, url string) (Blob, error) {
	r.record("fetch:" + url)
	if err := r.blobErr[url]; err != nil {
		return Blob{}, err
	}
	return Blob{Data: []byte(url)}, nil
}

func (r *recorder) CanShare([]File) bool { return r.canShare }

func (r *recorder) Share(_ context.Context, files []File, title, text string) error {
	r.record(fmt.Sprintf("share:%d:%s:%s", len(files), title, text))
	r.shared = files
	return nil
}

func (r *recorder) WriteText(s string) error {
	r.record("clipboard")
	r.clip = append(r.clip, s)
	return nil
}

func photos(ids ...string) []domain.Photo {
	out := make([]domain.Photo, len(ids))
	for i, id := range ids {
		out[i] = domain.Photo{ID: id, URL: "https://cdn.example/p/" + id + ".jpg"}
	}
	return out
}

func newTestController(r *recorder, withSharer bool) *Controller {
	opts := Options{Source: r, Deleter: r, Fetcher: r, Clipboard: r}
	if withSharer {
		opts.Sharer = r
	}
	c := NewController(opts)
	c.SetPhotos(photos("101", "102", "103"))
	c.SetDeletePolicy(true)
	return c
}

func TestExitSelectModeAlwaysClears(t *testing.T) {
	c := newTestController(&recorder{}, false)
	c.EnterSelectMode()
	c.TogglePick(0, nil)
	c.TogglePick(2, []int{1, 2})
	require.Equal(t, 3, c.Count())

	c.ExitSelectMode()

	assert.False(t, c.SelectMode())
	assert.Zero(t, c.Count())
	assert.Empty(t, c.Order())
}

func TestDeleteOrderThenRefreshThenExit(t *testing.T) {
	r := &recorder{}
	c := newTestController(r, false)
	var modeDuringDeletes []bool
	r.onDelete = func(string) { modeDuringDeletes = append(modeDuringDeletes, c.SelectMode()) }

	c.EnterSelectMode()
	c.TogglePick(2, nil)
	c.TogglePick(0, nil)

	res, err := c.DeleteSelected(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"delete:101", "delete:103", "refreshAll", "refreshMine"}, r.Calls())
	assert.Equal(t, []bool{true, true}, modeDuringDeletes)
	assert.Equal(t, DeleteResult{Requested: 2}, res)
	assert.False(t, c.SelectMode())
	assert.Zero(t, c.Count())
	assert.Equal(t, BusyState{}, c.Busy())
}

func TestDeleteProgressText(t *testing.T) {
	r := &recorder{}
	var states []BusyState
	c := NewController(Options{Source: r, Deleter: r, Fetcher: r, OnBusy: func(s BusyState) { states = append(states, s) }})
	c.SetPhotos(photos("a", "b"))
	c.SetDeletePolicy(true)
	c.TogglePick(0, nil)
	c.TogglePick(1, nil)

	_, err := c.DeleteSelected(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []BusyState{
		{Busy: true, StatusText: "Deleting 1/2"},
		{Busy: true, StatusText: "Deleting 2/2"},
		{},
	}, states)
}

func TestDeleteItemFailureStillRefreshesAndExits(t *testing.T) {
	r := &recorder{deleteErr: map[string]error{"101": errors.New("500")}}
	c := newTestController(r, false)
	c.EnterSelectMode()
	c.TogglePick(0, nil)
	c.TogglePick(1, nil)

	res, err := c.DeleteSelected(context.Background())
	require.NoError(t, err)

	assert.Equal(t, DeleteResult{Requested: 2, Failed: 1}, res)
	assert.Equal(t, []string{"delete:101", "delete:102", "refreshAll", "refreshMine"}, r.Calls())
	assert.False(t, c.SelectMode())
}

func TestDeletePreconditions(t *testing.T) {
	t.Run("no permission", func(t *testing.T) {
		r := &recorder{}
		c := newTestController(r, false)
		c.SetDeletePolicy(false)
		c.TogglePick(0, nil)

		_, err := c.DeleteSelected(context.Background())
		require.NoError(t, err)
		assert.Empty(t, r.Calls())
		assert.Equal(t, 1, c.Count())
	})
	t.Run("no deleter", func(t *testing.T) {
		r := &recorder{}
		c := NewController(Options{Source: r, Fetcher: r})
		c.SetPhotos(photos("x"))
		c.SetDeletePolicy(true)
		c.TogglePick(0, nil)

		_, err := c.DeleteSelected(context.Background())
		require.NoError(t, err)
		assert.False(t, c.CanDelete())
		assert.Empty(t, r.Calls())
	})
	t.Run("empty selection", func(t *testing.T) {
		r := &recorder{}
		c := newTestController(r, false)

		_, err := c.DeleteSelected(context.Background())
		require.NoError(t, err)
		assert.Empty(t, r.Calls())
	})
}

func TestDeleteWhileBusyIsRejected(t *testing.T) {
	r := &recorder{}
	c := newTestController(r, false)
	c.TogglePick(0, nil)

	entered := make(chan struct{})
	unblock := make(chan struct{})
	blocking := &blockingFetcher{entered: entered, unblock: unblock}
	c.opts.Fetcher = blocking

	done := make(chan error, 1)
	go func() {
		_, err := c.ShareSelected(context.Background())
		done <- err
	}()
	<-entered
	require.True(t, c.Busy().Busy)

	_, err := c.DeleteSelected(context.Background())
	assert.ErrorIs(t, err, ErrBusy)
	assert.Empty(t, r.Calls(), "no delete request issued while busy")

	close(unblock)
	require.NoError(t, <-done)
	assert.Equal(t, BusyState{}, c.Busy())
}

type blockingFetcher struct {
	entered chan struct{}
	unblock chan struct{}
}

func (b *blockingFetcher) FetchBlob(ctx context.Context, url string) (Blob, error) {
	close(b.entered)
	<-b.unblock
	return Blob{Data: []byte("x")}, nil
}

func TestShareFallsBackToClipboard(t *testing.T) {
	r := &recorder{}
	c := newTestController(r, false)
	c.TogglePick(1, nil)

	res, err := c.ShareSelected(context.Background())
	require.NoError(t, err)

	require.Len(t, r.clip, 1)
	assert.Equal(t, "https://cdn.example/p/102.jpg", r.clip[0])
	assert.Equal(t, ShareResult{Count: 1, Copied: true}, res)
}

func TestShareClipboardJoinsAscending(t *testing.T) {
	r := &recorder{canShare: false}
	c := newTestController(r, true)
	c.TogglePick(2, nil)
	c.TogglePick(0, nil)

	_, err := c.ShareSelected(context.Background())
	require.NoError(t, err)

	require.Len(t, r.clip, 1)
	assert.Equal(t, "https://cdn.example/p/101.jpg\nhttps://cdn.example/p/103.jpg", r.clip[0])
}

func TestShareUsesSharerAndKeepsSelection(t *testing.T) {
	r := &recorder{canShare: true}
	var states []BusyState
	c := newTestController(r, true)
	c.opts.OnBusy = func(s BusyState) { states = append(states, s) }
	c.EnterSelectMode()
	c.TogglePick(2, nil)
	c.TogglePick(0, nil)

	res, err := c.ShareSelected(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ShareResult{Count: 2}, res)
	assert.Equal(t, []string{
		"fetch:https://cdn.example/p/101.jpg",
		"fetch:https://cdn.example/p/103.jpg",
		"share:2:Wedding Photos:Sharing favorite moments 💍",
	}, r.Calls())
	require.Len(t, r.shared, 2)
	assert.Equal(t, "101.jpg", r.shared[0].Name)
	assert.Equal(t, "image/jpeg", r.shared[0].ContentType)
	assert.Empty(t, r.clip)

	assert.True(t, c.SelectMode(), "share is not destructive")
	assert.Equal(t, 2, c.Count())
	assert.Equal(t, []BusyState{
		{Busy: true, StatusText: "Collecting photos…"},
		{Busy: true, StatusText: "Prepared 1/2"},
		{Busy: true, StatusText: "Prepared 2/2"},
		{},
	}, states)
}

func TestShareFailureClearsBusy(t *testing.T) {
	r := &recorder{
		canShare: true,
		blobErr:  map[string]error{"https://cdn.example/p/102.jpg": errors.New("connection reset")},
	}
	c := newTestController(r, true)
	c.TogglePick(0, nil)
	c.TogglePick(1, nil)
	c.TogglePick(2, nil)

	_, err := c.ShareSelected(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch photo 2")

	assert.Equal(t, BusyState{}, c.Busy())
	assert.NotContains(t, r.Calls(), "fetch:https://cdn.example/p/103.jpg")
	assert.Nil(t, r.shared, "no partial share")
	assert.Empty(t, r.clip)
}

func TestShareEmptySelectionIsNoop(t *testing.T) {
	r := &recorder{}
	c := newTestController(r, false)

	res, err := c.ShareSelected(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res)
	assert.Empty(t, r.Calls())
}

func TestShareCancelledContext(t *testing.T) {
	r := &recorder{}
	c := newTestController(r, false)
	c.TogglePick(0, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ShareSelected(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, BusyState{}, c.Busy())
}

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchBlob(ctx context.Context, url string) (Blob, error) {
	args := m.Called(ctx, url)
	return args.Get(0).(Blob), args.Error(1)
}

func TestShareContentTypeFromBlob(t *testing.T) {
	f := &mockFetcher{}
	f.On("FetchBlob", mock.Anything, "https://cdn.example/p/101.jpg").
		Return(Blob{Data: []byte{1}, ContentType: "image/png"}, nil).Once()
	r := &recorder{canShare: true}
	c := NewController(Options{Fetcher: f, Sharer: r, Clipboard: r})
	c.SetPhotos(photos("101"))
	c.TogglePick(0, nil)

	_, err := c.ShareSelected(context.Background())
	require.NoError(t, err)
	require.Len(t, r.shared, 1)
	assert.Equal(t, "image/png", r.shared[0].ContentType)
	f.AssertExpectations(t)
}

func TestSetPhotosPrunesVanishedPicks(t *testing.T) {
	r := &recorder{}
	c := newTestController(r, false)
	c.TogglePick(0, nil)
	c.TogglePick(2, nil)

	c.SetPhotos(photos("103", "104"))

	assert.Equal(t, []int{0}, c.Selected())
	assert.Equal(t, 1, c.Badge(0))
}
