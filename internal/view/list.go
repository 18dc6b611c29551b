package view

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/umalmyha/contacts/internal/model"
	"github.com/umalmyha/contacts/pkg/client"
)

// fetchDebounceDelay coalesces rapid filter/search changes into one request
const fetchDebounceDelay = 300 * time.Millisecond

// ListView synchronizes the locally cached contact list with the API.
// Filter and search changes are debounced, an in-flight fetch superseded by a
// newer one is cancelled and its response is never applied - last issued
// filter state wins
type ListView struct {
	api   *client.Client
	state *ListState
	delay time.Duration

	mu         sync.Mutex
	timer      *time.Timer
	cancel     context.CancelFunc
	generation uint64
	status     model.Status
	search     string
}

type ListViewOptionFunc func(*ListView)

// WithDebounceDelay overrides the debounce delay
func WithDebounceDelay(delay time.Duration) ListViewOptionFunc {
	return func(v *ListView) {
		v.delay = delay
	}
}

// NewListView builds ListView on top of api client
func NewListView(api *client.Client, funcs ...ListViewOptionFunc) *ListView {
	v := &ListView{
		api:   api,
		state: NewListState(),
		delay: fetchDebounceDelay,
	}

	for _, fn := range funcs {
		fn(v)
	}
	return v
}

// State exposes the owned list state for rendering
func (v *ListView) State() *ListState {
	return v.state
}

// SetStatusFilter changes the status filter and schedules a debounced fetch
func (v *ListView) SetStatusFilter(status model.Status) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.status = status
	v.scheduleLocked()
}

// SetSearch changes the search text and schedules a debounced fetch
func (v *ListView) SetSearch(search string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.search = search
	v.scheduleLocked()
}

// Refresh fetches the list immediately with the current filter state,
// bypassing the debounce delay. Used on mount and after a successful create
func (v *ListView) Refresh() {
	v.mu.Lock()
	gen, ctx, query := v.beginFetchLocked()
	v.mu.Unlock()

	v.fetch(ctx, gen, query)
}

// ChangeStatus applies status change against the API and patches the cached
// contact in place on success. The cache is left untouched on failure
func (v *ListView) ChangeStatus(ctx context.Context, id string, status model.Status) error {
	updated, err := v.api.Update(ctx, id, model.UpdateContact{Status: &status})
	if err != nil {
		logrus.Errorf("failed to update contact %s status - %v", id, err)
		return err
	}

	// nil means no contact with such id exists - nothing changed
	if updated != nil {
		v.state.PatchStatus(id, status)
	}
	return nil
}

// Delete removes contact via the API and drops it from the cached sequence on
// success. The cache is left untouched on failure
func (v *ListView) Delete(ctx context.Context, id string) error {
	if err := v.api.Delete(ctx, id); err != nil {
		logrus.Errorf("failed to delete contact %s - %v", id, err)
		return err
	}

	v.state.Remove(id)
	return nil
}

// scheduleLocked restarts the debounce timer - a pending fetch is dropped in
// favor of the newer filter state
func (v *ListView) scheduleLocked() {
	if v.timer != nil {
		v.timer.Stop()
	}

	v.timer = time.AfterFunc(v.delay, func() {
		v.mu.Lock()
		gen, ctx, query := v.beginFetchLocked()
		v.mu.Unlock()

		v.fetch(ctx, gen, query)
	})
}

// beginFetchLocked cancels the in-flight request, advances the generation
// gating stale responses and captures the filter state for the new fetch
func (v *ListView) beginFetchLocked() (uint64, context.Context, client.ListQuery) {
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}

	if v.cancel != nil {
		v.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	v.generation++

	v.state.setLoading()

	return v.generation, ctx, client.ListQuery{Status: v.status, Search: v.search}
}

func (v *ListView) fetch(ctx context.Context, gen uint64, query client.ListQuery) {
	contacts, err := v.api.List(ctx, query)

	v.mu.Lock()
	defer v.mu.Unlock()

	// a newer fetch was issued while this one was in flight - drop the
	// stale response, whoever owns the latest generation updates the state
	if gen != v.generation {
		return
	}

	if err != nil {
		logrus.Errorf("failed to fetch contacts - %v", err)
		v.state.fail(err)
		return
	}

	v.state.ReplaceAll(contacts)
}
