package controller

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"github.com/kaung-htet-hein-dev/ivy-admin/internal/api"
	"github.com/kaung-htet-hein-dev/ivy-admin/internal/cache"
	"github.com/kaung-htet-hein-dev/ivy-admin/internal/models"
	"github.com/kaung-htet-hein-dev/ivy-admin/internal/notify"
)

// Slot availability is cached separately from booking pages: it changes
// whenever a booking is created.
const tagBookingSlots = "booking-slots"

// Options pages for the form dropdowns. Dropdowns want everything, not
// a table page.
var optionsPage = api.Page{Index: 0, Size: 100}

var (
	ErrNoServiceSelected   = errors.New("select a service first")
	ErrBranchNotOffered    = errors.New("branch does not offer the selected service")
	ErrDateOutOfRange      = errors.New("booking date must be between tomorrow and 30 days out")
	ErrSlotUnavailable     = errors.New("time slot is not available")
	ErrSelectionIncomplete = errors.New("service, branch, date and time slot are all required")
	ErrInvalidStatus       = errors.New("invalid booking status")
)

// Bookings is the booking list/form controller. On top of the generic
// controller it carries the cascading form selection: the chosen
// service owns the valid branch set, and slots only exist once branch
// and date are both chosen. Changing the service clears branch and
// slot; changing branch or date clears the slot.
type Bookings struct {
	*Controller[models.Booking, models.BookingPayload]

	client   *api.BookingClient
	services *api.ServiceClient
	branches *api.BranchClient
	users    *api.UserClient

	selMu      sync.Mutex
	selService *models.Service
	branchID   string
	date       time.Time
	slot       string
}

// Selection is a snapshot of the cascading form choices.
type Selection struct {
	Service  *models.Service
	BranchID string
	Date     time.Time
	Slot     string
}

func NewBookings(client *api.BookingClient, services *api.ServiceClient, branches *api.BranchClient, users *api.UserClient, deps Deps) *Bookings {
	b := &Bookings{
		client:   client,
		services: services,
		branches: branches,
		users:    users,
	}

	b.Controller = New(CRUD[models.Booking, models.BookingPayload]{
		Tag:   TagBookings,
		Label: "Booking",
		ID:    func(bk models.Booking) string { return bk.ID },
		List:  client.List,
		Create: func(ctx context.Context, payload models.BookingPayload) (models.Booking, error) {
			created, err := client.Create(ctx, payload)
			if err == nil {
				// the created booking consumed a slot
				deps.Cache.Invalidate(tagBookingSlots)
			}
			return created, err
		},
		// no Update/Delete: status changes go through SubmitStatus and
		// cancellation is a status, not a removal
	}, deps)

	return b
}

// Filter applies the booking list filters (status, booked date) and
// rewinds to the first page.
func (b *Bookings) Filter(f api.BookingFilters) {
	b.SetFilters(f.Values())
}

// StartCreate opens the create form and resets the cascading
// selection, like the modal re-opening blank.
func (b *Bookings) StartCreate() {
	b.Controller.StartCreate()
	b.selMu.Lock()
	b.selService = nil
	b.branchID = ""
	b.date = time.Time{}
	b.slot = ""
	b.selMu.Unlock()
}

// ServiceOptions lists the services offered in the create form's first
// dropdown, cached under the services tag.
func (b *Bookings) ServiceOptions(ctx context.Context) ([]models.Service, error) {
	key := cache.Key(TagServices, optionsPage.Query())
	if v, ok := b.cache.Get(key); ok {
		if res, ok := v.(api.ListResult[models.Service]); ok {
			return res.Items, nil
		}
	}

	res, err := b.services.List(ctx, optionsPage, nil)
	if err != nil {
		b.notifier.Notify(notify.Error, api.UserMessage(err, genericErrorMessage))
		return nil, err
	}
	b.cache.Put(TagServices, key, res)
	return res.Items, nil
}

// SelectService picks the service and clears the branch and slot
// choices that depended on the previous one.
func (b *Bookings) SelectService(ctx context.Context, serviceID string) error {
	options, err := b.ServiceOptions(ctx)
	if err != nil {
		return err
	}

	var found *models.Service
	for i := range options {
		if options[i].ID == serviceID {
			found = &options[i]
			break
		}
	}
	if found == nil {
		return ErrNoServiceSelected
	}

	b.selMu.Lock()
	defer b.selMu.Unlock()
	b.selService = found
	b.branchID = ""
	b.slot = ""
	return nil
}

// BranchOptions is the valid branch set, derived from the selected
// service. Services usually embed their branches; when only ids are
// present the branch list fills in the rest.
func (b *Bookings) BranchOptions(ctx context.Context) ([]models.Branch, error) {
	b.selMu.Lock()
	svc := b.selService
	b.selMu.Unlock()

	if svc == nil {
		return nil, nil
	}
	if len(svc.Branches) > 0 {
		return svc.Branches, nil
	}
	if len(svc.BranchIDs) == 0 {
		return nil, nil
	}

	key := cache.Key(TagBranches, optionsPage.Query())
	var all []models.Branch
	if v, ok := b.cache.Get(key); ok {
		if res, ok := v.(api.ListResult[models.Branch]); ok {
			all = res.Items
		}
	}
	if all == nil {
		res, err := b.branches.List(ctx, optionsPage, nil)
		if err != nil {
			b.notifier.Notify(notify.Error, api.UserMessage(err, genericErrorMessage))
			return nil, err
		}
		b.cache.Put(TagBranches, key, res)
		all = res.Items
	}

	wanted := make(map[string]bool, len(svc.BranchIDs))
	for _, id := range svc.BranchIDs {
		wanted[id] = true
	}
	var out []models.Branch
	for _, br := range all {
		if wanted[br.ID] {
			out = append(out, br)
		}
	}
	return out, nil
}

// SelectBranch picks a branch out of the valid set and clears the slot.
func (b *Bookings) SelectBranch(ctx context.Context, branchID string) error {
	options, err := b.BranchOptions(ctx)
	if err != nil {
		return err
	}

	ok := false
	for _, br := range options {
		if br.ID == branchID {
			ok = true
			break
		}
	}
	if !ok {
		return ErrBranchNotOffered
	}

	b.selMu.Lock()
	defer b.selMu.Unlock()
	b.branchID = branchID
	b.slot = ""
	return nil
}

// DateBounds is the selectable window: tomorrow through 30 days out.
func (b *Bookings) DateBounds() (min, max time.Time) {
	now := time.Now()
	return now.AddDate(0, 0, 1), now.AddDate(0, 0, 30)
}

// SelectDate picks the booking date and clears the slot.
func (b *Bookings) SelectDate(date time.Time) error {
	min, max := b.DateBounds()
	day := calendarDay(date)
	if day.Before(calendarDay(min)) || day.After(calendarDay(max)) {
		return ErrDateOutOfRange
	}

	b.selMu.Lock()
	defer b.selMu.Unlock()
	b.date = date
	b.slot = ""
	return nil
}

// calendarDay reduces a timestamp to its own zone's calendar date so
// the window check compares days, not instants. Truncating would snap
// to UTC day boundaries and shift the window near midnight.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AvailableSlots fetches the slot list for the chosen branch and date.
// Disabled (nil, nil) until both are chosen; one fetch per
// (date, branch) thanks to the cache.
func (b *Bookings) AvailableSlots(ctx context.Context) ([]models.TimeSlot, error) {
	b.selMu.Lock()
	branchID, date := b.branchID, b.date
	b.selMu.Unlock()

	if branchID == "" || date.IsZero() {
		return nil, nil
	}

	wireDate := date.Format(api.WireDateFormat)
	params := url.Values{}
	params.Set("booked_date", wireDate)
	params.Set("branch_id", branchID)
	key := cache.Key(tagBookingSlots, params)

	if v, ok := b.cache.Get(key); ok {
		if slots, ok := v.([]models.TimeSlot); ok {
			return slots, nil
		}
	}

	slots, err := b.client.AvailableSlots(ctx, wireDate, branchID)
	if err != nil {
		b.notifier.Notify(notify.Error, api.UserMessage(err, genericErrorMessage))
		return nil, err
	}
	b.cache.Put(tagBookingSlots, key, slots)
	return slots, nil
}

// SelectSlot picks a time slot out of the currently available set.
func (b *Bookings) SelectSlot(ctx context.Context, slot string) error {
	slots, err := b.AvailableSlots(ctx)
	if err != nil {
		return err
	}

	for _, s := range slots {
		if s.Slot == slot {
			if !s.IsAvailable {
				return ErrSlotUnavailable
			}
			b.selMu.Lock()
			defer b.selMu.Unlock()
			b.slot = slot
			return nil
		}
	}
	return ErrSlotUnavailable
}

// Selection snapshots the cascading choices.
func (b *Bookings) Selection() Selection {
	b.selMu.Lock()
	defer b.selMu.Unlock()
	return Selection{
		Service:  b.selService,
		BranchID: b.branchID,
		Date:     b.date,
		Slot:     b.slot,
	}
}

// Payload assembles the create body from the completed selection.
func (b *Bookings) Payload(note string) (models.BookingPayload, error) {
	sel := b.Selection()
	if sel.Service == nil || sel.BranchID == "" || sel.Date.IsZero() || sel.Slot == "" {
		return models.BookingPayload{}, ErrSelectionIncomplete
	}
	return models.BookingPayload{
		ServiceID:  sel.Service.ID,
		BranchID:   sel.BranchID,
		BookedDate: sel.Date.Format(api.WireDateFormat),
		BookedTime: sel.Slot,
		Note:       note,
	}, nil
}

// SubmitStatus runs the status-only update for the booking open in the
// edit form. Same contract as Submit: failure keeps the form open with
// one notification, success invalidates and closes.
func (b *Bookings) SubmitStatus(ctx context.Context, status models.BookingStatus) error {
	c := b.Controller

	c.mu.Lock()
	if c.form.Mode != FormEdit || c.form.Record == nil {
		c.mu.Unlock()
		return ErrFormClosed
	}
	if c.form.Submitting {
		c.mu.Unlock()
		return ErrBusy
	}
	id := c.crud.ID(*c.form.Record)
	c.form.Submitting = true
	c.mu.Unlock()

	if !status.Valid() {
		c.mu.Lock()
		c.form.Submitting = false
		c.mu.Unlock()
		return ErrInvalidStatus
	}

	_, err := b.client.UpdateStatus(ctx, id, status)

	c.mu.Lock()
	c.form.Submitting = false
	if err == nil {
		c.form = FormState[models.Booking]{}
	}
	c.mu.Unlock()

	if err != nil {
		c.notifier.Notify(notify.Error, api.UserMessage(err, genericErrorMessage))
		return err
	}

	c.cache.Invalidate(TagBookings)
	c.cache.Invalidate(tagBookingSlots)
	c.notifier.Notify(notify.Success, "Booking updated successfully")
	return nil
}

// UserInfo resolves a booking's user id to the full account record for
// the detail dialog.
func (b *Bookings) UserInfo(ctx context.Context, userID string) (models.User, error) {
	u, err := b.users.Get(ctx, userID)
	if err != nil {
		b.notifier.Notify(notify.Error, api.UserMessage(err, genericErrorMessage))
		return models.User{}, err
	}
	return u, nil
}
