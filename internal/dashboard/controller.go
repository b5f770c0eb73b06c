package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nikmy/adminui/internal/edit"
	"github.com/nikmy/adminui/internal/members"
	"github.com/nikmy/adminui/pkg/errors"
	"github.com/nikmy/adminui/pkg/logger"
	"github.com/nikmy/adminui/pkg/tools/await"
)

var ErrNotFound = errors.Error("record not found")

type fetcher interface {
	Fetch(ctx context.Context) ([]members.Record, error)
}

type Option func(c *Controller)

func WithValidator(v edit.Validator) Option {
	return func(c *Controller) { c.validator = v }
}

func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *Controller) { c.reg = reg }
}

func WithIDGenerator(gen func() string) Option {
	return func(c *Controller) { c.newID = gen }
}

func New(cfg Config, src fetcher, log logger.Logger, opts ...Option) *Controller {
	c := &Controller{
		cfg:       cfg,
		src:       src,
		log:       log.With("dashboard"),
		store:     members.NewStore(),
		validator: edit.NewRequiredValidator(cfg.NumericFields...),
		newID:     uuid.NewString,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.reg == nil {
		c.reg = prometheus.NewRegistry()
	}
	c.metrics = newMetrics(c.reg)

	return c
}

// Controller owns the dashboard state: the record store, the edit session,
// the search query and the load state. It is safe for concurrent use.
type Controller struct {
	cfg       Config
	src       fetcher
	validator edit.Validator
	newID     func() string
	reg       prometheus.Registerer
	metrics   *metrics
	log       logger.Logger

	loadMu sync.Mutex

	mu      sync.Mutex
	store   *members.Store
	session edit.Session
	query   string
	load    LoadState
}

// Start loads members in background. Until it finishes the store is empty.
func (c *Controller) Start(ctx context.Context) {
	go func() {
		_ = c.Load(ctx)
	}()
}

// Load fetches members, retrying with backoff, and replaces the store. On
// failure the store is left untouched.
func (c *Controller) Load(ctx context.Context) error {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	attempts := c.cfg.attempts()

	var (
		errs    []error
		attempt int
	)
	for attempt = 1; attempt <= attempts; attempt++ {
		records, err := c.src.Fetch(ctx)
		if err == nil {
			c.metrics.loads.WithLabelValues("ok").Inc()
			c.apply(records, attempt)
			return nil
		}

		c.metrics.loads.WithLabelValues("error").Inc()
		c.log.Warn(errors.WrapFailf(err, "fetch members (attempt %d of %d)", attempt, attempts))
		errs = append(errs, err)

		if attempt == attempts {
			break
		}

		if !await.For(c.cfg.backoff(attempt), 0).Await(ctx) {
			errs = append(errs, ctx.Err())
			break
		}
	}

	err := errors.WrapFail(errors.Collapse(errs), "load members")
	c.log.Error(err)

	c.mu.Lock()
	c.load.Status = LoadFailed
	c.load.Error = err.Error()
	c.load.Attempts = attempt
	c.mu.Unlock()

	return err
}

func (c *Controller) apply(records []members.Record, attempts int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := c.store.Load(records)
	for _, r := range dropped {
		c.log.Warnf("dropped member %q (%s): empty or duplicate id", r.ID, r.Name)
	}

	now := time.Now()
	c.load = LoadState{
		Status:   LoadDone,
		Attempts: attempts,
		Dropped:  len(dropped),
		LoadedAt: &now,
	}
	c.metrics.records.Set(float64(c.store.Len()))
	c.log.Infof("loaded %d members", c.store.Len())
}

func (c *Controller) State() LoadState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load
}

func (c *Controller) SetQuery(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = q
}

func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Visible returns the rows matching the current query.
func (c *Controller) Visible() []members.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return members.Filter(c.store.Records(), c.query)
}

// Search is Visible for an explicit query, the shared one is not changed.
func (c *Controller) Search(q string) []members.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return members.Filter(c.store.Records(), q)
}

func (c *Controller) Records() []members.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Records()
}

func (c *Controller) Get(id string) (members.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Get(id)
}

func (c *Controller) Session() edit.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Snapshot()
}

// BeginEdit opens the record for editing on behalf of owner. Only the same
// owner may then stage, save or cancel it.
func (c *Controller) BeginEdit(owner, id string) (edit.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.store.Get(id)
	if !ok {
		return c.session.Snapshot(), errors.Wrapf(ErrNotFound, "begin edit %q", id)
	}

	err := c.session.Begin(owner, rec)
	if err != nil {
		c.metrics.lockRejections.Inc()
		return c.session.Snapshot(), errors.WrapFailf(err, "begin edit %q", id)
	}

	return c.session.Snapshot(), nil
}

func (c *Controller) Stage(owner string, patch members.Patch) (edit.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.session.Stage(owner, patch)
	return c.session.Snapshot(), err
}

func (c *Controller) Cancel(owner string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Cancel(owner)
}

// Save validates the staged fields and commits them. A validation failure
// is logged and returned as *edit.ValidationError, the session stays open.
func (c *Controller) Save(ctx context.Context, owner string) (members.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var saved members.Record
	err := c.session.Save(ctx, owner, c.validator, func(id string, fields members.Fields) {
		c.store.Commit(id, fields.Patch())
		saved, _ = c.store.Get(id)
	})

	var verr *edit.ValidationError
	if errors.As(err, &verr) {
		c.metrics.validationFailures.Inc()
		c.log.Warn(errors.Wrap(err, "save member"))
		return members.Record{}, err
	}

	if err != nil {
		return members.Record{}, err
	}

	c.metrics.commits.Inc()
	c.metrics.records.Set(float64(c.store.Len()))
	return saved, nil
}

// Create validates fields and appends them as a record with a fresh id.
func (c *Controller) Create(ctx context.Context, fields members.Fields) (members.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.validator.Validate(ctx, fields)
	if err != nil {
		c.metrics.validationFailures.Inc()
		c.log.Warn(errors.Wrap(err, "create member"))
		return members.Record{}, err
	}

	id := c.newID()
	c.store.Commit(id, fields.Patch())
	c.metrics.commits.Inc()
	c.metrics.records.Set(float64(c.store.Len()))

	rec, _ := c.store.Get(id)
	return rec, nil
}

// Delete removes a record. The record under edit can't be deleted. Returns
// false if there was no such record.
func (c *Controller) Delete(id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.IsEditing(id) {
		c.metrics.lockRejections.Inc()
		return false, errors.WrapFailf(edit.ErrLocked, "delete %q", id)
	}

	removed := c.store.Remove(id)
	if removed {
		c.metrics.deletes.Inc()
		c.metrics.records.Set(float64(c.store.Len()))
	}
	return removed, nil
}
