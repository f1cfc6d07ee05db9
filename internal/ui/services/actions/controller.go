// Package actions owns select mode, the picked photos and the bulk share and
// delete operations run against them.
package actions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"photogrip/internal/domain"
	"photogrip/internal/logging"
	"photogrip/internal/ui/services/selection"
)

const (
	ShareTitle = "Wedding Photos"
	ShareText  = "Sharing favorite moments 💍"

	collectingText = "Collecting photos…"
)

var (
	// ErrBusy is returned when a share or delete is already running.
	ErrBusy = errors.New("another bulk operation is in progress")
	// ErrNoShareTarget is returned when neither a sharer nor a clipboard is usable.
	ErrNoShareTarget = errors.New("no share target available")
)

// BusyState is the progress marker of the running bulk operation
type BusyState struct {
	Busy       bool
	StatusText string
}

// ShareResult describes a finished share
type ShareResult struct {
	Count  int
	Copied bool // links went to the clipboard instead of a sharer
}

// DeleteResult describes a finished delete
type DeleteResult struct {
	Requested int
	Failed    int
}

// Options wires the controller's collaborators. Deleter and Sharer may be nil.
type Options struct {
	Source    PhotoListSource
	Deleter   Deleter
	Fetcher   BlobFetcher
	Sharer    Sharer
	Clipboard Clipboard
	// OnBusy is called outside the controller lock on every busy state change.
	OnBusy func(BusyState)
	Logger logging.Logger
}

// Controller mediates every selection mutation. It is safe for concurrent use:
// the UI goroutine toggles picks while a bulk operation runs in a command.
type Controller struct {
	mu         sync.Mutex
	sel        *selection.Service
	photos     []domain.Photo
	selectMode bool
	canDelete  bool
	busy       BusyState
	running    bool

	opts Options
	log  logging.Logger
}

// NewController creates a controller with an empty sequence
func NewController(opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Controller{
		sel:  selection.NewService(),
		opts: opts,
		log:  log.With("component", "actions"),
	}
}

// SetPhotos replaces the sequence the indices refer to
func (c *Controller) SetPhotos(photos []domain.Photo) {
	ids := make([]string, len(photos))
	for i, p := range photos {
		ids[i] = p.ID
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.photos = append([]domain.Photo(nil), photos...)
	c.sel.SetSequence(ids)
}

// SetDeletePolicy updates whether the current user may delete from the shown list
func (c *Controller) SetDeletePolicy(canDelete bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.canDelete = canDelete
}

// CanDelete reports whether Delete should be offered at all
func (c *Controller) CanDelete() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canDelete && c.opts.Deleter != nil
}

// TogglePick flips index, or adds every index of rng when it is non-empty
func (c *Controller) TogglePick(index int, rng []int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sel.TogglePick(index, rng)
}

// RangeTo returns the range gesture indices from the anchor to index
func (c *Controller) RangeTo(index int) []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel.Range(index)
}

// ClearAll empties the selection
func (c *Controller) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sel.Clear()
}

// EnterSelectMode switches tile activation from open to toggle
func (c *Controller) EnterSelectMode() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectMode = true
}

// ExitSelectMode leaves select mode; the selection is always cleared
func (c *Controller) ExitSelectMode() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exitSelectModeLocked()
}

func (c *Controller) exitSelectModeLocked() {
	c.selectMode = false
	c.sel.Clear()
}

// SelectMode reports whether tile activation toggles selection
func (c *Controller) SelectMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectMode
}

// IsSelected reports whether the photo at index is picked
func (c *Controller) IsSelected(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel.IsSelected(index)
}

// Badge returns the 1-based pick position of index, 0 when not picked
func (c *Controller) Badge(index int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel.Badge(index)
}

// Count returns the number of picked photos
func (c *Controller) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel.Count()
}

// Selected returns picked indices in ascending order
func (c *Controller) Selected() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel.Indices()
}

// Order returns picked indices in pick order
func (c *Controller) Order() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel.OrderIndices()
}

// Busy returns the current busy state
func (c *Controller) Busy() BusyState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// pickedLocked resolves picked indices, ascending, to photos of the current
// sequence. Indices that no longer resolve are skipped.
func (c *Controller) pickedLocked() []Item {
	idxs := c.sel.Indices()
	items := make([]Item, 0, len(idxs))
	for _, i := range idxs {
		if i < 0 || i >= len(c.photos) {
			continue
		}
		items = append(items, Item{Index: i, Photo: c.photos[i]})
	}
	return items
}

// acquire claims the single bulk slot
func (c *Controller) acquire() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return ErrBusy
	}
	c.running = true
	return nil
}

// release frees the bulk slot and clears the busy state
func (c *Controller) release() {
	c.mu.Lock()
	c.running = false
	c.busy = BusyState{}
	c.mu.Unlock()
	c.notify(BusyState{})
}

func (c *Controller) setStatus(text string) {
	st := BusyState{Busy: true, StatusText: text}
	c.mu.Lock()
	c.busy = st
	c.mu.Unlock()
	c.notify(st)
}

func (c *Controller) notify(st BusyState) {
	if c.opts.OnBusy != nil {
		c.opts.OnBusy(st)
	}
}

// ShareSelected downloads every picked photo in ascending index order and
// hands the files to the sharer, or copies the links when the sharer is
// absent or refuses the files. Any download failure aborts the share.
// An empty selection is a no-op.
func (c *Controller) ShareSelected(ctx context.Context) (ShareResult, error) {
	c.mu.Lock()
	items := c.pickedLocked()
	c.mu.Unlock()
	if len(items) == 0 {
		return ShareResult{}, nil
	}

	if err := c.acquire(); err != nil {
		return ShareResult{}, err
	}
	defer c.release()

	c.setStatus(collectingText)

	files := make([]File, 0, len(items))
	for n, it := range items {
		if err := ctx.Err(); err != nil {
			return ShareResult{}, err
		}
		blob, err := c.opts.Fetcher.FetchBlob(ctx, it.Photo.URL)
		if err != nil {
			c.log.Warn("share aborted", "index", it.Index, "url", it.Photo.URL, "error", err)
			return ShareResult{}, fmt.Errorf("fetch photo %d: %w", it.Index+1, err)
		}
		ct := blob.ContentType
		if ct == "" {
			ct = "image/jpeg"
		}
		files = append(files, File{Name: FileName(it.Photo.URL, it.Index), ContentType: ct, Data: blob.Data})
		c.setStatus(fmt.Sprintf("Prepared %d/%d", n+1, len(items)))
	}

	if c.opts.Sharer != nil && c.opts.Sharer.CanShare(files) {
		if err := c.opts.Sharer.Share(ctx, files, ShareTitle, ShareText); err != nil {
			return ShareResult{}, fmt.Errorf("share photos: %w", err)
		}
		c.log.Info("shared photos", "count", len(files))
		return ShareResult{Count: len(files)}, nil
	}

	if c.opts.Clipboard == nil {
		return ShareResult{}, ErrNoShareTarget
	}
	urls := make([]string, len(items))
	for i, it := range items {
		urls[i] = it.Photo.URL
	}
	if err := c.opts.Clipboard.WriteText(strings.Join(urls, "\n")); err != nil {
		return ShareResult{}, fmt.Errorf("copy links: %w", err)
	}
	c.log.Info("copied photo links", "count", len(urls))
	return ShareResult{Count: len(urls), Copied: true}, nil
}

// DeleteSelected deletes the picked photos one at a time in ascending index
// order, then refreshes the all and mine lists and leaves select mode.
// Individual delete failures are logged and counted, not returned. It is a
// no-op without delete permission, a deleter, or a selection.
func (c *Controller) DeleteSelected(ctx context.Context) (DeleteResult, error) {
	c.mu.Lock()
	allowed := c.canDelete && c.opts.Deleter != nil
	items := c.pickedLocked()
	c.mu.Unlock()
	if !allowed || len(items) == 0 {
		return DeleteResult{}, nil
	}

	if err := c.acquire(); err != nil {
		return DeleteResult{}, err
	}
	defer c.release()

	res := DeleteResult{Requested: len(items)}
	for n, it := range items {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		c.setStatus(fmt.Sprintf("Deleting %d/%d", n+1, len(items)))
		if err := c.opts.Deleter.DeletePhoto(ctx, it.Photo.ID); err != nil {
			res.Failed++
			c.log.Warn("delete failed", "id", it.Photo.ID, "error", err)
		}
	}

	if c.opts.Source != nil {
		if err := c.opts.Source.RefreshAll(ctx); err != nil {
			c.log.Warn("refresh all after delete failed", "error", err)
		}
		if err := c.opts.Source.RefreshMine(ctx); err != nil {
			c.log.Warn("refresh mine after delete failed", "error", err)
		}
	}

	c.ExitSelectMode()
	c.log.Info("deleted photos", "requested", res.Requested, "failed", res.Failed)
	return res, nil
}
