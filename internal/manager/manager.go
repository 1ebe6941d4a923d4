package manager

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/MatiasdeBuren/consorcio-console/internal/logging"
	"github.com/MatiasdeBuren/consorcio-console/internal/notify"
)

// Entity is anything the manager can hold: a DTO with a server-assigned
// integer id, unique within one loaded list.
type Entity interface {
	EntityID() int
}

// ErrBusy is returned when a mutation is submitted while another is still in
// flight. There is no queueing; the caller simply retries after the first
// one resolves.
var ErrBusy = errors.New("operation_in_progress")

// ErrNoSelection is returned when an edit/delete is confirmed with nothing
// selected.
var ErrNoSelection = errors.New("no_selection")

// State tracks where in the CRUD lifecycle the manager is.
type State int

const (
	StateClosed State = iota
	StateLoading
	StateIdle
	StateCreating
	StateEditing
	StateConfirmingDelete
)

// Ops is the capability set injected per entity: the same four API functions
// the web client passed into its generic modal. Nil members mean the entity
// does not support that operation.
type Ops[T Entity, D any] struct {
	Load   func(ctx context.Context, token string) ([]T, error)
	Create func(ctx context.Context, token string, draft D) (T, error)
	Update func(ctx context.Context, token string, id int, draft D) (T, error)
	Delete func(ctx context.Context, token string, id int) error
}

// Config wires one entity type into the generic manager.
type Config[T Entity, D any] struct {
	// Label names the entity in toasts, e.g. "Amenity".
	Label string
	Ops   Ops[T, D]
	// SearchFields extracts the strings the default search matches against.
	SearchFields func(T) []string
	Notifier     notify.Notifier
}

// Manager owns the in-memory list for one entity type over one open session.
// Closing discards everything; the next Open refetches.
type Manager[T Entity, D any] struct {
	cfg Config[T, D]

	mu         sync.Mutex
	state      State
	items      []T
	searchTerm string
	filter     func(T) bool
	selected   *T
	processing bool
	loadGen    uint64
}

func New[T Entity, D any](cfg Config[T, D]) *Manager[T, D] {
	return &Manager[T, D]{cfg: cfg, state: StateClosed}
}

func (m *Manager[T, D]) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Open loads the list. A load failure leaves an empty list and emits an error
// toast; there is no retry. A reopen after Close always refetches.
func (m *Manager[T, D]) Open(ctx context.Context, token string) error {
	m.mu.Lock()
	m.state = StateLoading
	m.loadGen++
	gen := m.loadGen
	m.mu.Unlock()

	return m.runLoad(ctx, token, gen)
}

// runLoad runs the injected Load and installs the result unless a newer
// load has started since (late responses must not clobber fresher state).
func (m *Manager[T, D]) runLoad(ctx context.Context, token string, gen uint64) error {
	items, err := m.cfg.Ops.Load(ctx, token)

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.loadGen {
		logging.Logger.WithField("entity", m.cfg.Label).Debug("Dropping stale load result")
		return nil
	}
	if err != nil {
		m.items = nil
		m.state = StateIdle
		m.emit(notify.LevelError, err.Error())
		return err
	}
	m.items = items
	m.state = StateIdle
	return nil
}

// Close discards all transient state, including the loaded list.
func (m *Manager[T, D]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateClosed
	m.items = nil
	m.searchTerm = ""
	m.filter = nil
	m.selected = nil
	m.loadGen++ // invalidates any in-flight load
}

func (m *Manager[T, D]) Items() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]T, len(m.items))
	copy(out, m.items)
	return out
}

func (m *Manager[T, D]) TotalCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func (m *Manager[T, D]) SetSearch(term string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchTerm = term
}

// SetFilter installs a custom predicate applied on top of the search term.
// A nil predicate clears it.
func (m *Manager[T, D]) SetFilter(filter func(T) bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filter = filter
}

// DisplayedItems recomputes the filtered view: always a subset of the loaded
// items, in the server's order.
func (m *Manager[T, D]) DisplayedItems() []T {
	m.mu.Lock()
	defer m.mu.Unlock()

	term := strings.ToLower(strings.TrimSpace(m.searchTerm))
	var out []T
	for _, item := range m.items {
		if m.filter != nil && !m.filter(item) {
			continue
		}
		if term != "" && !m.matchesSearch(item, term) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (m *Manager[T, D]) matchesSearch(item T, lowerTerm string) bool {
	if m.cfg.SearchFields == nil {
		return true
	}
	for _, field := range m.cfg.SearchFields(item) {
		if strings.Contains(strings.ToLower(field), lowerTerm) {
			return true
		}
	}
	return false
}

// Selected returns the entity an edit or delete dialog is acting on.
func (m *Manager[T, D]) Selected() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.selected == nil {
		var zero T
		return zero, false
	}
	return *m.selected, true
}

func (m *Manager[T, D]) BeginCreate() error {
	return m.enterDialog(StateCreating, nil)
}

func (m *Manager[T, D]) BeginEdit(item T) error {
	return m.enterDialog(StateEditing, &item)
}

func (m *Manager[T, D]) BeginDelete(item T) error {
	return m.enterDialog(StateConfirmingDelete, &item)
}

func (m *Manager[T, D]) enterDialog(next State, selected *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateIdle {
		return fmt.Errorf("cannot enter dialog from state %d", m.state)
	}
	m.state = next
	m.selected = selected
	return nil
}

// CancelDialog abandons the open create/edit/delete dialog.
func (m *Manager[T, D]) CancelDialog() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateCreating || m.state == StateEditing || m.state == StateConfirmingDelete {
		m.state = StateIdle
		m.selected = nil
	}
}

// beginMutation flips the single in-flight guard, the equivalent of the
// disabled submit button.
func (m *Manager[T, D]) beginMutation() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processing {
		return ErrBusy
	}
	m.processing = true
	return nil
}

func (m *Manager[T, D]) endMutation() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processing = false
}

// SubmitCreate sends the draft and, on success, reloads the whole list:
// sibling rows may carry server-computed aggregates the new entity changed.
// The list view stays open either way; on failure the create dialog stays up.
func (m *Manager[T, D]) SubmitCreate(ctx context.Context, token string, draft D) error {
	if m.cfg.Ops.Create == nil {
		return fmt.Errorf("%s does not support create", m.cfg.Label)
	}
	if err := m.beginMutation(); err != nil {
		return err
	}
	defer m.endMutation()

	if _, err := m.cfg.Ops.Create(ctx, token, draft); err != nil {
		m.emit(notify.LevelError, err.Error())
		return err
	}

	m.mu.Lock()
	m.state = StateLoading
	m.loadGen++
	gen := m.loadGen
	m.mu.Unlock()

	if err := m.runLoad(ctx, token, gen); err != nil {
		return err
	}
	m.emit(notify.LevelSuccess, fmt.Sprintf("%s creado correctamente.", m.cfg.Label))
	return nil
}

// SubmitEdit sends the draft and merges only the returned entity into the
// list by id. Unlike create, no reload: an update does not change aggregates
// on sibling rows.
func (m *Manager[T, D]) SubmitEdit(ctx context.Context, token string, draft D) error {
	if m.cfg.Ops.Update == nil {
		return fmt.Errorf("%s does not support update", m.cfg.Label)
	}
	m.mu.Lock()
	if m.selected == nil {
		m.mu.Unlock()
		return ErrNoSelection
	}
	id := (*m.selected).EntityID()
	m.mu.Unlock()

	if err := m.beginMutation(); err != nil {
		return err
	}
	defer m.endMutation()

	updated, err := m.cfg.Ops.Update(ctx, token, id, draft)
	if err != nil {
		m.emit(notify.LevelError, err.Error())
		return err
	}

	m.mu.Lock()
	for i := range m.items {
		if m.items[i].EntityID() == id {
			m.items[i] = updated
			break
		}
	}
	m.state = StateIdle
	m.selected = nil
	m.mu.Unlock()

	m.emit(notify.LevelSuccess, fmt.Sprintf("%s actualizado correctamente.", m.cfg.Label))
	return nil
}

// ConfirmDelete runs the delete and removes the entity locally on success.
// On failure the refined message is toasted and the confirmation dialog still
// closes; the user is back on the (unchanged) list.
func (m *Manager[T, D]) ConfirmDelete(ctx context.Context, token string) error {
	if m.cfg.Ops.Delete == nil {
		return fmt.Errorf("%s does not support delete", m.cfg.Label)
	}
	m.mu.Lock()
	if m.selected == nil {
		m.mu.Unlock()
		return ErrNoSelection
	}
	id := (*m.selected).EntityID()
	m.mu.Unlock()

	if err := m.beginMutation(); err != nil {
		return err
	}
	defer m.endMutation()

	err := m.cfg.Ops.Delete(ctx, token, id)

	m.mu.Lock()
	if err == nil {
		kept := m.items[:0]
		for _, item := range m.items {
			if item.EntityID() != id {
				kept = append(kept, item)
			}
		}
		m.items = kept
	}
	m.state = StateIdle
	m.selected = nil
	m.mu.Unlock()

	if err != nil {
		m.emit(notify.LevelError, err.Error())
		return err
	}
	m.emit(notify.LevelSuccess, fmt.Sprintf("%s eliminado correctamente.", m.cfg.Label))
	return nil
}

func (m *Manager[T, D]) emit(level notify.Level, message string) {
	if m.cfg.Notifier != nil {
		m.cfg.Notifier.Notify(level, message)
	}
}
