package controller

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kaung-htet-hein-dev/ivy-admin/internal/api"
	"github.com/kaung-htet-hein-dev/ivy-admin/internal/cache"
	"github.com/kaung-htet-hein-dev/ivy-admin/internal/notify"
)

// Cache tags, one per entity. A mutation under a tag invalidates every
// cached page for that tag.
const (
	TagBranches   = "branches"
	TagCategories = "categories"
	TagServices   = "services"
	TagBookings   = "bookings"
	TagUsers      = "users"
)

var (
	ErrFormClosed     = errors.New("no form is open")
	ErrNoDeleteTarget = errors.New("no record pending deletion")
	ErrBusy           = errors.New("a request is already in flight")
	ErrUnsupported    = errors.New("operation not supported for this entity")
)

// Shown when a failure carries no server message.
const genericErrorMessage = "oops! something went wrong, please try again"

// FormMode is the modal form's state tag.
type FormMode int

const (
	FormClosed FormMode = iota
	FormCreate
	FormEdit
)

// FormState is the create/edit modal: closed, creating, or editing a
// specific record. Submitting is set for the duration of the in-flight
// mutation.
type FormState[T any] struct {
	Mode       FormMode
	Record     *T
	Submitting bool
}

// DeleteState is the delete-confirmation dialog.
type DeleteState[T any] struct {
	Open     bool
	Record   *T
	Deleting bool
}

// CRUD binds a controller to one entity's service client. A nil
// operation means the API has no such operation for the entity
// (users are never created here, bookings are never deleted).
type CRUD[T, P any] struct {
	Tag   string
	Label string
	ID    func(T) string

	List   func(ctx context.Context, page api.Page, filters url.Values) (api.ListResult[T], error)
	Create func(ctx context.Context, payload P) (T, error)
	Update func(ctx context.Context, id string, payload P) (T, error)
	Delete func(ctx context.Context, id string) error
}

// Deps are the shared collaborators every controller gets.
type Deps struct {
	Cache    *cache.Store
	Notifier notify.Notifier
	Validate *validator.Validate
	Logger   *zap.Logger
}

// Controller ties one entity's service client to pagination, the shared
// list cache, and the form/delete dialog state. Long-lived: one per
// entity for the life of the process.
type Controller[T, P any] struct {
	crud     CRUD[T, P]
	cache    *cache.Store
	notifier notify.Notifier
	validate *validator.Validate
	log      *zap.Logger

	mu      sync.Mutex
	page    api.Page
	filters url.Values
	form    FormState[T]
	del     DeleteState[T]
}

func New[T, P any](crud CRUD[T, P], deps Deps) *Controller[T, P] {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller[T, P]{
		crud:     crud,
		cache:    deps.Cache,
		notifier: deps.Notifier,
		validate: deps.Validate,
		log:      log,
		page:     api.Page{Index: 0, Size: 10},
	}
}

// Rows returns the current page, served from cache when an identical
// (tag, page, filters) read already succeeded. A failed fetch surfaces
// one notification and leaves the cache untouched, so the table keeps
// whatever it was showing.
func (c *Controller[T, P]) Rows(ctx context.Context) (api.ListResult[T], error) {
	c.mu.Lock()
	page := c.page
	filters := cloneValues(c.filters)
	c.mu.Unlock()

	params := page.Query()
	for k, vs := range filters {
		for _, v := range vs {
			params.Add(k, v)
		}
	}
	key := cache.Key(c.crud.Tag, params)

	if v, ok := c.cache.Get(key); ok {
		if res, ok := v.(api.ListResult[T]); ok {
			return res, nil
		}
	}

	res, err := c.crud.List(ctx, page, filters)
	if err != nil {
		c.log.Warn("list fetch failed", zap.String("tag", c.crud.Tag), zap.Error(err))
		c.notifier.Notify(notify.Error, api.UserMessage(err, genericErrorMessage))
		return api.ListResult[T]{}, err
	}

	c.cache.Put(c.crud.Tag, key, res)
	return res, nil
}

// Page returns the current pagination cursor.
func (c *Controller[T, P]) Page() api.Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

func (c *Controller[T, P]) SetPage(index int) {
	if index < 0 {
		index = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page.Index = index
}

// SetPageSize changes the page size and rewinds to the first page.
func (c *Controller[T, P]) SetPageSize(size int) {
	if size <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = api.Page{Index: 0, Size: size}
}

// SetFilters replaces the list filters and rewinds to the first page.
func (c *Controller[T, P]) SetFilters(filters url.Values) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters = cloneValues(filters)
	c.page.Index = 0
}

func (c *Controller[T, P]) Filters() url.Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneValues(c.filters)
}

func (c *Controller[T, P]) StartCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = FormState[T]{Mode: FormCreate}
}

func (c *Controller[T, P]) StartEdit(record T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = FormState[T]{Mode: FormEdit, Record: &record}
}

func (c *Controller[T, P]) CloseForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = FormState[T]{}
}

// Form returns a snapshot of the modal form state.
func (c *Controller[T, P]) Form() FormState[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Submit runs the open form's mutation. Validation failures return
// before any request is sent and never produce a notification — they
// belong to the form. A server failure surfaces exactly one error
// notification and leaves the form open for retry; success invalidates
// the entity's cached pages, notifies, and closes the form.
func (c *Controller[T, P]) Submit(ctx context.Context, payload P) error {
	c.mu.Lock()
	if c.form.Mode == FormClosed {
		c.mu.Unlock()
		return ErrFormClosed
	}
	if c.form.Submitting {
		c.mu.Unlock()
		return ErrBusy
	}
	mode := c.form.Mode
	var id string
	if mode == FormEdit && c.form.Record != nil {
		id = c.crud.ID(*c.form.Record)
	}
	c.form.Submitting = true
	c.mu.Unlock()

	if err := c.validatePayload(payload); err != nil {
		c.mu.Lock()
		c.form.Submitting = false
		c.mu.Unlock()
		return err
	}

	var (
		err  error
		verb string
	)
	switch mode {
	case FormCreate:
		verb = "created"
		if c.crud.Create == nil {
			err = ErrUnsupported
		} else {
			_, err = c.crud.Create(ctx, payload)
		}
	case FormEdit:
		verb = "updated"
		if c.crud.Update == nil {
			err = ErrUnsupported
		} else {
			_, err = c.crud.Update(ctx, id, payload)
		}
	}

	c.mu.Lock()
	c.form.Submitting = false
	if err == nil {
		c.form = FormState[T]{}
	}
	c.mu.Unlock()

	if err != nil {
		c.notifier.Notify(notify.Error, api.UserMessage(err, genericErrorMessage))
		return err
	}

	c.cache.Invalidate(c.crud.Tag)
	c.notifier.Notify(notify.Success, c.crud.Label+" "+verb+" successfully")
	return nil
}

// RequestDelete opens the confirmation dialog for record.
func (c *Controller[T, P]) RequestDelete(record T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.del = DeleteState[T]{Open: true, Record: &record}
}

func (c *Controller[T, P]) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.del = DeleteState[T]{}
}

// DeleteConfirm returns a snapshot of the confirmation dialog state.
func (c *Controller[T, P]) DeleteConfirm() DeleteState[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.del
}

// ConfirmDelete runs the pending deletion. Failure keeps the dialog
// open with one error notification; success invalidates the tag and
// closes it.
func (c *Controller[T, P]) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	if !c.del.Open || c.del.Record == nil {
		c.mu.Unlock()
		return ErrNoDeleteTarget
	}
	if c.del.Deleting {
		c.mu.Unlock()
		return ErrBusy
	}
	id := c.crud.ID(*c.del.Record)
	c.del.Deleting = true
	c.mu.Unlock()

	var err error
	if c.crud.Delete == nil {
		err = ErrUnsupported
	} else {
		err = c.crud.Delete(ctx, id)
	}

	c.mu.Lock()
	c.del.Deleting = false
	if err == nil {
		c.del = DeleteState[T]{}
	}
	c.mu.Unlock()

	if err != nil {
		c.notifier.Notify(notify.Error, api.UserMessage(err, genericErrorMessage))
		return err
	}

	c.cache.Invalidate(c.crud.Tag)
	c.notifier.Notify(notify.Success, c.crud.Label+" deleted successfully")
	return nil
}

func (c *Controller[T, P]) validatePayload(payload P) error {
	if c.validate == nil {
		return nil
	}
	return c.validate.Struct(payload)
}

func cloneValues(v url.Values) url.Values {
	if v == nil {
		return nil
	}
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
