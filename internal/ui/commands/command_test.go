package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photogrip/internal/api"
	"photogrip/internal/domain"
	"photogrip/internal/eventbus"
	"photogrip/internal/identity"
	"photogrip/internal/ui/services/actions"
	"photogrip/internal/ui/state"
)

type recordBus struct {
	mu     sync.Mutex
	events []eventbus.DomainEvent
}

func (b *recordBus) Publish(e eventbus.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() { return func() {} }

func (b *recordBus) all() []eventbus.DomainEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]eventbus.DomainEvent(nil), b.events...)
}

type fakePhotos struct {
	refreshErr error
	refreshed  []domain.Tab
	selected   string
	persons    int
}

func (f *fakePhotos) Refresh(_ context.Context, tab domain.Tab) error {
	f.refreshed = append(f.refreshed, tab)
	return f.refreshErr
}

func (f *fakePhotos) SelectPerson(_ context.Context, id string) error {
	f.selected = id
	return nil
}

func (f *fakePhotos) Persons(context.Context) ([]domain.Person, error) {
	f.persons++
	return nil, nil
}

type fakeActions struct {
	share  actions.ShareResult
	delete actions.DeleteResult
	err    error
}

func (f *fakeActions) ShareSelected(context.Context) (actions.ShareResult, error) {
	return f.share, f.err
}

func (f *fakeActions) DeleteSelected(context.Context) (actions.DeleteResult, error) {
	return f.delete, f.err
}

type fakeUploader struct {
	files []api.UploadFile
	res   domain.UploadResult
}

func (f *fakeUploader) Upload(_ context.Context, files []api.UploadFile) (domain.UploadResult, error) {
	f.files = files
	return f.res, nil
}

type fakeProvider struct {
	supplied string
	cred     identity.Credential
	err      error
}

func (p *fakeProvider) Initialize(identity.Config) error { return nil }
func (p *fakeProvider) RenderButton(int) string          { return "" }
func (p *fakeProvider) Supply(tok string)                { p.supplied = tok }
func (p *fakeProvider) Prompt(context.Context) (identity.Credential, error) {
	return p.cred, p.err
}

type fakeSessions struct {
	saved   []domain.User
	cleared bool
}

func (s *fakeSessions) SaveSession(u domain.User) error {
	s.saved = append(s.saved, u)
	return nil
}

func (s *fakeSessions) Clear() error {
	s.cleared = true
	return nil
}

func newExecutor(services Services) (*Executor, *state.AppState, *recordBus) {
	st := state.NewAppState()
	bus := &recordBus{}
	return NewExecutor(st, bus, services), st, bus
}

func TestRefreshPublishesError(t *testing.T) {
	photos := &fakePhotos{refreshErr: errors.New("offline")}
	e, st, bus := newExecutor(Services{Photos: photos})

	cmd := e.ExecuteRefresh(domain.TabMine)
	require.NotNil(t, cmd)
	assert.NotEmpty(t, st.LoadingState)
	cmd()

	assert.Equal(t, []domain.Tab{domain.TabMine}, photos.refreshed)
	events := bus.all()
	require.Len(t, events, 1)
	assert.IsType(t, eventbus.ErrorEvent{}, events[0])
}

func TestRefreshIgnoresCancellation(t *testing.T) {
	e, _, bus := newExecutor(Services{Photos: &fakePhotos{refreshErr: context.Canceled}})
	e.ExecuteRefresh(domain.TabAll)()
	assert.Empty(t, bus.all())
}

func TestSelectPersonShowsGallery(t *testing.T) {
	photos := &fakePhotos{}
	e, st, _ := newExecutor(Services{Photos: photos})
	st.SwitchTab(domain.TabFind)

	e.ExecuteSelectPerson(domain.Person{ID: "4", Name: "Ana"})()

	assert.Equal(t, state.ScreenGallery, st.Screen)
	assert.Equal(t, "4", st.SelectedPerson.ID)
	assert.Equal(t, "4", photos.selected)
}

func TestLoadPersons(t *testing.T) {
	photos := &fakePhotos{}
	e, _, _ := newExecutor(Services{Photos: photos})
	e.ExecuteLoadPersons()()
	assert.Equal(t, 1, photos.persons)
}

func TestShareAndDeletePublishCompletion(t *testing.T) {
	fa := &fakeActions{
		share:  actions.ShareResult{Count: 3, Copied: true},
		delete: actions.DeleteResult{Requested: 3, Failed: 1},
	}
	e, _, bus := newExecutor(Services{Actions: fa})

	e.ExecuteShare()()
	e.ExecuteDelete()()

	assert.Equal(t, []eventbus.DomainEvent{
		eventbus.BulkCompletedEvent{Op: "share", Count: 3, Copied: true},
		eventbus.BulkCompletedEvent{Op: "delete", Count: 2},
	}, bus.all())
}

func TestBusyErrorIsReported(t *testing.T) {
	e, _, bus := newExecutor(Services{Actions: &fakeActions{err: actions.ErrBusy}})
	e.ExecuteDelete()()
	events := bus.all()
	require.Len(t, events, 1)
	assert.ErrorIs(t, events[0].(eventbus.BulkCompletedEvent).Err, actions.ErrBusy)
}

func TestUploadThenRefresh(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("x"), 0o644))
	up := &fakeUploader{res: domain.UploadResult{Count: 1}}
	e, _, bus := newExecutor(Services{Uploader: up})

	e.ExecuteUpload([]string{dir})()

	require.Len(t, up.files, 1)
	assert.Equal(t, []eventbus.DomainEvent{
		eventbus.UploadCompletedEvent{Result: domain.UploadResult{Count: 1}},
		eventbus.RefreshRequestedEvent{Tab: domain.TabAll},
		eventbus.RefreshRequestedEvent{Tab: domain.TabMine},
	}, bus.all())
}

func TestUploadWithoutImages(t *testing.T) {
	up := &fakeUploader{}
	e, _, bus := newExecutor(Services{Uploader: up})

	e.ExecuteUpload([]string{t.TempDir()})()

	assert.Nil(t, up.files)
	events := bus.all()
	require.Len(t, events, 1)
	assert.Error(t, events[0].(eventbus.UploadCompletedEvent).Err)
}

func TestLoginSuppliesTokenAndSaves(t *testing.T) {
	p := &fakeProvider{cred: identity.Credential{AccessToken: "acc", Email: "ana@example.com"}}
	sessions := &fakeSessions{}
	e, _, bus := newExecutor(Services{Identity: p, Sessions: sessions})

	e.ExecuteLogin("id-token")()

	assert.Equal(t, "id-token", p.supplied)
	require.Len(t, sessions.saved, 1)
	user := domain.User{Username: "ana@example.com", Email: "ana@example.com", Token: "acc"}
	assert.Equal(t, []eventbus.DomainEvent{
		eventbus.SessionChangedEvent{User: user},
		eventbus.RefreshRequestedEvent{Tab: domain.TabMine},
	}, bus.all())
}

func TestLoginFailure(t *testing.T) {
	p := &fakeProvider{err: identity.ErrNoToken}
	e, _, bus := newExecutor(Services{Identity: p, Sessions: &fakeSessions{}})

	e.ExecuteLogin("")()

	assert.Empty(t, p.supplied)
	events := bus.all()
	require.Len(t, events, 1)
	assert.ErrorIs(t, events[0].(eventbus.ErrorEvent).Err, identity.ErrNoToken)
}

func TestLogout(t *testing.T) {
	sessions := &fakeSessions{}
	e, _, bus := newExecutor(Services{Sessions: sessions})

	assert.Nil(t, e.ExecuteLogout())

	assert.True(t, sessions.cleared)
	assert.Equal(t, []eventbus.DomainEvent{
		eventbus.SessionChangedEvent{User: domain.User{Username: "Guest", IsGuest: true}},
	}, bus.all())
}
