package manager

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/muurk/custdesk/internal/customer"
	"github.com/muurk/custdesk/internal/logging"
)

// Gateway is the remote customer collection. *customer.Client implements it.
type Gateway interface {
	ListAll(ctx context.Context) ([]customer.Customer, error)
	GetByID(ctx context.Context, id int64) (*customer.Customer, error)
	Create(ctx context.Context, c customer.Customer) error
	Update(ctx context.Context, c customer.Customer) error
	DeleteByID(ctx context.Context, id int64) (string, error)
}

// Mode mirrors whether the edit buffer holds a new or an existing record.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// String returns the mode name
func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// Operation identifies a mutation sent to the gateway.
type Operation int

const (
	OpCreate Operation = iota
	OpUpdate
	OpDelete
)

// String returns the operation name
func (o Operation) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return fmt.Sprintf("Operation(%d)", o)
	}
}

// Result messages produced by the commands returned from Manager.
// Each carries the token of the request that produced it.
type ListResultMsg struct {
	token     uint64
	Customers []customer.Customer
	Err       error
}

type LookupResultMsg struct {
	token    uint64
	Customer *customer.Customer
	Err      error
}

type MutationResultMsg struct {
	token   uint64
	Op      Operation
	Message string // delete acknowledgement from the service
	Err     error
}

// Manager owns the screen state: edit buffer, collection cache, lookup
// result and status. It must only be used from one goroutine (the Bubble Tea
// update loop or Drive). Network calls run inside the returned commands and
// never touch the state; their results are applied by Update.
type Manager struct {
	gateway Gateway
	ctx     context.Context

	buffer     customer.Draft
	editing    bool
	submitting bool
	loading    bool

	customers []customer.Customer
	lookup    *customer.Customer
	status    Status
	lastErr   error

	seq            uint64
	latestList     uint64
	latestLookup   uint64
	latestMutation uint64
}

// New creates a manager in create mode with an empty buffer and cache.
func New(gateway Gateway) *Manager {
	return &Manager{
		gateway:   gateway,
		ctx:       context.Background(),
		buffer:    customer.EmptyDraft(),
		customers: []customer.Customer{},
	}
}

// WithContext sets the context passed to every gateway call.
func (m *Manager) WithContext(ctx context.Context) *Manager {
	m.ctx = ctx
	return m
}

// Buffer returns a copy of the edit buffer.
func (m *Manager) Buffer() customer.Draft { return m.buffer }

// Editing reports whether a submit will update rather than create.
func (m *Manager) Editing() bool { return m.editing }

// Mode returns the current mode.
func (m *Manager) Mode() Mode {
	if m.editing {
		return ModeEdit
	}
	return ModeCreate
}

// Submitting reports whether a mutation is in flight.
func (m *Manager) Submitting() bool { return m.submitting }

// Loading reports whether a list refresh is in flight.
func (m *Manager) Loading() bool { return m.loading }

// Customers returns a copy of the collection cache.
func (m *Manager) Customers() []customer.Customer {
	return append([]customer.Customer{}, m.customers...)
}

// LookupResult returns the last fetched customer, or nil.
func (m *Manager) LookupResult() *customer.Customer {
	if m.lookup == nil {
		return nil
	}
	c := *m.lookup
	return &c
}

// Status returns the current status message.
func (m *Manager) Status() Status { return m.status }

// LastError returns the gateway error behind the latest failure status, or
// nil. Not-found lookups and validation failures leave it nil.
func (m *Manager) LastError() error { return m.lastErr }

func (m *Manager) nextToken() uint64 {
	m.seq++
	return m.seq
}

// Init returns the initial list refresh.
func (m *Manager) Init() tea.Cmd {
	return m.Refresh()
}

// Refresh fetches the whole collection. The newest refresh wins.
func (m *Manager) Refresh() tea.Cmd {
	token := m.nextToken()
	m.latestList = token
	m.loading = true

	gw, ctx := m.gateway, m.ctx
	return func() tea.Msg {
		customers, err := gw.ListAll(ctx)
		return ListResultMsg{token: token, Customers: customers, Err: err}
	}
}

// Set replaces one field of the edit buffer.
func (m *Manager) Set(key customer.FieldKey, value string) error {
	return m.buffer.Set(key, value)
}

// Edit loads a row into the edit buffer and enters edit mode.
func (m *Manager) Edit(c customer.Customer) {
	m.buffer = customer.DraftFrom(c)
	m.editing = true
	m.status = success(fmt.Sprintf(MsgEditingFormat, c.ID))
}

// EditByID loads the cached row with the given id. It reports false when the
// cache has no such row.
func (m *Manager) EditByID(id int64) bool {
	c, ok := lo.Find(m.customers, func(c customer.Customer) bool { return c.ID == id })
	if !ok {
		return false
	}
	m.Edit(c)
	return true
}

// Cancel resets the buffer and leaves edit mode. The status is kept.
func (m *Manager) Cancel() {
	m.reset()
}

func (m *Manager) reset() {
	m.buffer = customer.EmptyDraft()
	m.editing = false
}

// Submit validates the buffer and sends it as a create or an update,
// depending on the mode. It returns nil without touching the network when
// validation fails or another mutation is still in flight.
func (m *Manager) Submit() tea.Cmd {
	if m.submitting {
		logging.Debug("Submit ignored, mutation in flight")
		return nil
	}

	record, err := m.buffer.Customer()
	if err != nil {
		m.status = failure(err.Error())
		m.lastErr = nil
		return nil
	}

	op := OpCreate
	if m.editing {
		op = OpUpdate
	}

	token := m.beginMutation()
	gw, ctx := m.gateway, m.ctx
	return func() tea.Msg {
		var err error
		if op == OpUpdate {
			err = gw.Update(ctx, record)
		} else {
			err = gw.Create(ctx, record)
		}
		return MutationResultMsg{token: token, Op: op, Err: err}
	}
}

// Delete removes a customer by id. It does not touch the edit buffer and is
// available in either mode. Returns nil while another mutation is in flight.
func (m *Manager) Delete(id int64) tea.Cmd {
	if m.submitting {
		logging.Debug("Delete ignored, mutation in flight", zap.Int64("id", id))
		return nil
	}

	token := m.beginMutation()
	gw, ctx := m.gateway, m.ctx
	return func() tea.Msg {
		message, err := gw.DeleteByID(ctx, id)
		return MutationResultMsg{token: token, Op: OpDelete, Message: message, Err: err}
	}
}

func (m *Manager) beginMutation() uint64 {
	token := m.nextToken()
	m.latestMutation = token
	m.submitting = true
	return token
}

// Lookup fetches one customer by id into the lookup result. Text that is not
// an integer id fails like a missing record, without a request.
func (m *Manager) Lookup(idText string) tea.Cmd {
	token := m.nextToken()
	m.latestLookup = token

	id, err := strconv.ParseInt(strings.TrimSpace(idText), 10, 64)
	if err != nil {
		m.lookup = nil
		m.status = failure(MsgNotFound)
		m.lastErr = nil
		return nil
	}

	gw, ctx := m.gateway, m.ctx
	return func() tea.Msg {
		c, err := gw.GetByID(ctx, id)
		return LookupResultMsg{token: token, Customer: c, Err: err}
	}
}

// Update applies a result message and returns any follow-up command.
// Messages that do not belong to the manager are ignored.
func (m *Manager) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ListResultMsg:
		m.applyList(msg)
	case LookupResultMsg:
		m.applyLookup(msg)
	case MutationResultMsg:
		return m.applyMutation(msg)
	}
	return nil
}

func (m *Manager) applyList(msg ListResultMsg) {
	if msg.token != m.latestList {
		logging.Debug("Discarding stale list result", zap.Uint64("token", msg.token))
		return
	}
	m.loading = false

	if msg.Err != nil {
		logging.Warn("List customers failed", zap.Error(msg.Err))
		m.status = failure(MsgFetchFailed)
		m.lastErr = msg.Err
		return
	}

	customers := msg.Customers
	if customers == nil {
		customers = []customer.Customer{}
	}
	m.customers = customers
}

func (m *Manager) applyLookup(msg LookupResultMsg) {
	if msg.token != m.latestLookup {
		logging.Debug("Discarding stale lookup result", zap.Uint64("token", msg.token))
		return
	}

	if msg.Err != nil || msg.Customer == nil {
		m.lastErr = nil
		if msg.Err != nil && !customer.IsNotFound(msg.Err) {
			logging.Warn("Lookup failed", zap.Error(msg.Err))
			m.lastErr = msg.Err
		}
		m.lookup = nil
		m.status = failure(MsgNotFound)
		return
	}

	c := *msg.Customer
	m.lookup = &c
	m.status = Status{}
	m.lastErr = nil
}

func (m *Manager) applyMutation(msg MutationResultMsg) tea.Cmd {
	if msg.token != m.latestMutation {
		logging.Debug("Discarding stale mutation result",
			zap.Uint64("token", msg.token),
			zap.Stringer("op", msg.Op),
		)
		return nil
	}
	m.submitting = false

	if msg.Err != nil {
		logging.Warn("Mutation failed", zap.Stringer("op", msg.Op), zap.Error(msg.Err))
		m.status = failure(mutationFailure(msg.Op))
		m.lastErr = msg.Err
		return nil
	}
	m.lastErr = nil

	switch msg.Op {
	case OpCreate:
		m.status = success(MsgAdded)
		m.reset()
	case OpUpdate:
		m.status = success(MsgUpdated)
		m.reset()
	case OpDelete:
		m.status = success(msg.Message)
	}

	return m.Refresh()
}

func mutationFailure(op Operation) string {
	switch op {
	case OpCreate:
		return MsgAddFailed
	case OpUpdate:
		return MsgUpdateFailed
	default:
		return MsgDeleteFailed
	}
}

// Drive runs cmd and every follow-up command synchronously on the calling
// goroutine. Non-interactive commands and tests use it in place of the
// Bubble Tea runtime.
func (m *Manager) Drive(cmd tea.Cmd) {
	for cmd != nil {
		cmd = m.Update(cmd())
	}
}

// ErrStatus converts an error status into an error, for callers that report
// failures through an exit code.
func (m *Manager) ErrStatus() error {
	if m.status.IsError() {
		return errors.New(m.status.Text)
	}
	return nil
}
