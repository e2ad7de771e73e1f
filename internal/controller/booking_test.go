package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/kaung-htet-hein-dev/ivy-admin/internal/api"
	"github.com/kaung-htet-hein-dev/ivy-admin/internal/cache"
	"github.com/kaung-htet-hein-dev/ivy-admin/internal/models"
	"github.com/kaung-htet-hein-dev/ivy-admin/internal/notify"
)

// fakeAPI is an httptest-backed booking platform with two services,
// counting the calls the controller is expected to de-duplicate.
type fakeAPI struct {
	mu           sync.Mutex
	slotCalls    int
	bookingCalls int
	bookings     []models.Booking

	failCreate bool
}

var (
	branchMain  = models.Branch{ID: "br-1", Name: "Main St"}
	branchNorth = models.Branch{ID: "br-2", Name: "North"}
	branchEast  = models.Branch{ID: "br-3", Name: "East"}

	svcHaircut = models.Service{
		ID: "svc-1", Name: "Haircut", DurationMinute: 30,
		Branches:  []models.Branch{branchMain, branchNorth},
		BranchIDs: []string{"br-1", "br-2"},
	}
	svcColor = models.Service{
		ID: "svc-2", Name: "Coloring", DurationMinute: 90,
		Branches:  []models.Branch{branchEast},
		BranchIDs: []string{"br-3"},
	}
)

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/service", func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, []models.Service{svcHaircut, svcColor}, "success")
	})

	mux.HandleFunc("GET /api/v1/booking/slots", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.slotCalls++
		f.mu.Unlock()
		respond(w, http.StatusOK, []models.TimeSlot{
			{Slot: "10:00", IsAvailable: true},
			{Slot: "11:00", IsAvailable: false},
			{Slot: "12:00", IsAvailable: true},
		}, "success")
	})

	mux.HandleFunc("GET /api/v1/booking", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.bookingCalls++
		items := append([]models.Booking(nil), f.bookings...)
		f.mu.Unlock()
		respond(w, http.StatusOK, items, "success")
	})

	mux.HandleFunc("POST /api/v1/booking", func(w http.ResponseWriter, r *http.Request) {
		if f.failCreate {
			respond(w, http.StatusUnprocessableEntity, nil, "slot already taken")
			return
		}
		var p models.BookingPayload
		_ = json.NewDecoder(r.Body).Decode(&p)
		bk := models.Booking{
			ID: "bk-1", ServiceID: p.ServiceID, BranchID: p.BranchID,
			BookedDate: p.BookedDate, BookedTime: p.BookedTime,
			Status: models.BookingPending,
		}
		f.mu.Lock()
		f.bookings = append(f.bookings, bk)
		f.mu.Unlock()
		respond(w, http.StatusCreated, bk, "success")
	})

	mux.HandleFunc("PUT /api/v1/booking/", func(w http.ResponseWriter, r *http.Request) {
		var p models.BookingStatusPayload
		_ = json.NewDecoder(r.Body).Decode(&p)
		respond(w, http.StatusOK, models.Booking{
			ID: strings.TrimPrefix(r.URL.Path, "/api/v1/booking/"), Status: p.Status,
		}, "success")
	})

	mux.HandleFunc("GET /api/v1/user/", func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, models.User{
			ID: strings.TrimPrefix(r.URL.Path, "/api/v1/user/"), FirstName: "Aye", Email: "aye@example.com",
		}, "success")
	})

	return mux
}

func respond(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	raw, _ := json.Marshal(data)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"code":    status,
		"data":    json.RawMessage(raw),
		"message": message,
	})
}

func newBookingFixture(t *testing.T, fake *fakeAPI) (*Bookings, *notify.Hub) {
	t.Helper()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	client := api.NewClient(api.ClientConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
	deps := Deps{
		Cache:    cache.New(),
		Notifier: notify.NewHub(nil),
		Validate: validator.New(),
	}
	hub := deps.Notifier.(*notify.Hub)

	b := NewBookings(
		api.NewBookingClient(client),
		api.NewServiceClient(client),
		api.NewBranchClient(client),
		api.NewUserClient(client),
		deps,
	)
	return b, hub
}

func bookableDate() time.Time {
	return time.Now().AddDate(0, 0, 2)
}

func TestSlotFetchHappensOncePerBranchAndDate(t *testing.T) {
	fake := &fakeAPI{}
	b, _ := newBookingFixture(t, fake)
	ctx := context.Background()

	b.StartCreate()
	if err := b.SelectService(ctx, "svc-1"); err != nil {
		t.Fatalf("select service: %v", err)
	}
	if err := b.SelectBranch(ctx, "br-1"); err != nil {
		t.Fatalf("select branch: %v", err)
	}
	if err := b.SelectDate(bookableDate()); err != nil {
		t.Fatalf("select date: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := b.AvailableSlots(ctx); err != nil {
			t.Fatalf("slots: %v", err)
		}
	}
	if fake.slotCalls != 1 {
		t.Errorf("slot calls = %d, want exactly one per (date, branch)", fake.slotCalls)
	}
}

func TestSlotsDisabledUntilBranchAndDateChosen(t *testing.T) {
	fake := &fakeAPI{}
	b, _ := newBookingFixture(t, fake)
	ctx := context.Background()

	b.StartCreate()
	if err := b.SelectService(ctx, "svc-1"); err != nil {
		t.Fatalf("select service: %v", err)
	}

	slots, err := b.AvailableSlots(ctx)
	if err != nil || slots != nil {
		t.Errorf("slots = %v, %v; want disabled fetch", slots, err)
	}
	if fake.slotCalls != 0 {
		t.Errorf("slot calls = %d before branch+date are set", fake.slotCalls)
	}
}

func TestServiceChangeClearsBranchAndSlot(t *testing.T) {
	fake := &fakeAPI{}
	b, _ := newBookingFixture(t, fake)
	ctx := context.Background()

	b.StartCreate()
	if err := b.SelectService(ctx, "svc-1"); err != nil {
		t.Fatalf("select service: %v", err)
	}
	if err := b.SelectBranch(ctx, "br-1"); err != nil {
		t.Fatalf("select branch: %v", err)
	}
	if err := b.SelectDate(bookableDate()); err != nil {
		t.Fatalf("select date: %v", err)
	}
	if err := b.SelectSlot(ctx, "10:00"); err != nil {
		t.Fatalf("select slot: %v", err)
	}

	callsBefore := fake.slotCalls
	if err := b.SelectService(ctx, "svc-2"); err != nil {
		t.Fatalf("re-select service: %v", err)
	}

	sel := b.Selection()
	if sel.BranchID != "" || sel.Slot != "" {
		t.Errorf("selection = %+v, want branch and slot cleared", sel)
	}
	if sel.Service == nil || sel.Service.ID != "svc-2" {
		t.Errorf("service = %+v", sel.Service)
	}
	// branch is gone, so no slot fetch may have fired
	if _, err := b.AvailableSlots(ctx); err != nil {
		t.Fatalf("slots: %v", err)
	}
	if fake.slotCalls != callsBefore {
		t.Errorf("slot calls = %d, want none after service change cleared the branch", fake.slotCalls)
	}
}

func TestBranchMustBelongToSelectedService(t *testing.T) {
	fake := &fakeAPI{}
	b, _ := newBookingFixture(t, fake)
	ctx := context.Background()

	b.StartCreate()
	if err := b.SelectService(ctx, "svc-1"); err != nil {
		t.Fatalf("select service: %v", err)
	}
	if err := b.SelectBranch(ctx, "br-3"); !errors.Is(err, ErrBranchNotOffered) {
		t.Errorf("err = %v, want ErrBranchNotOffered", err)
	}
}

func TestDateBoundsEnforced(t *testing.T) {
	b, _ := newBookingFixture(t, &fakeAPI{})

	if err := b.SelectDate(time.Now()); !errors.Is(err, ErrDateOutOfRange) {
		t.Errorf("today: err = %v, want ErrDateOutOfRange", err)
	}
	if err := b.SelectDate(time.Now().AddDate(0, 0, 45)); !errors.Is(err, ErrDateOutOfRange) {
		t.Errorf("45 days out: err = %v, want ErrDateOutOfRange", err)
	}
}

func TestDateWindowComparesCalendarDays(t *testing.T) {
	b, _ := newBookingFixture(t, &fakeAPI{})
	min, max := b.DateBounds()

	// just past midnight in a zone far ahead of UTC is still the first
	// selectable calendar day
	y, m, d := min.Date()
	early := time.Date(y, m, d, 0, 30, 0, 0, time.FixedZone("UTC+13", 13*60*60))
	if err := b.SelectDate(early); err != nil {
		t.Errorf("first day at 00:30 UTC+13: err = %v", err)
	}

	// the last day of the window is selectable at any hour
	y, m, d = max.Date()
	late := time.Date(y, m, d, 23, 30, 0, 0, max.Location())
	if err := b.SelectDate(late); err != nil {
		t.Errorf("last day at 23:30: err = %v", err)
	}
}

func TestUnavailableSlotRejected(t *testing.T) {
	fake := &fakeAPI{}
	b, _ := newBookingFixture(t, fake)
	ctx := context.Background()

	b.StartCreate()
	if err := b.SelectService(ctx, "svc-1"); err != nil {
		t.Fatalf("select service: %v", err)
	}
	if err := b.SelectBranch(ctx, "br-2"); err != nil {
		t.Fatalf("select branch: %v", err)
	}
	if err := b.SelectDate(bookableDate()); err != nil {
		t.Fatalf("select date: %v", err)
	}

	if err := b.SelectSlot(ctx, "11:00"); !errors.Is(err, ErrSlotUnavailable) {
		t.Errorf("taken slot: err = %v, want ErrSlotUnavailable", err)
	}
	if err := b.SelectSlot(ctx, "23:00"); !errors.Is(err, ErrSlotUnavailable) {
		t.Errorf("unknown slot: err = %v, want ErrSlotUnavailable", err)
	}
}

func TestPayloadRequiresCompleteSelection(t *testing.T) {
	b, _ := newBookingFixture(t, &fakeAPI{})
	b.StartCreate()

	if _, err := b.Payload(""); !errors.Is(err, ErrSelectionIncomplete) {
		t.Errorf("err = %v, want ErrSelectionIncomplete", err)
	}
}

func TestCreateBookingInvalidatesListsAndSlots(t *testing.T) {
	fake := &fakeAPI{}
	b, hub := newBookingFixture(t, fake)
	ctx := context.Background()

	if _, err := b.Rows(ctx); err != nil {
		t.Fatalf("rows: %v", err)
	}

	b.StartCreate()
	if err := b.SelectService(ctx, "svc-1"); err != nil {
		t.Fatalf("select service: %v", err)
	}
	if err := b.SelectBranch(ctx, "br-1"); err != nil {
		t.Fatalf("select branch: %v", err)
	}
	if err := b.SelectDate(bookableDate()); err != nil {
		t.Fatalf("select date: %v", err)
	}
	if err := b.SelectSlot(ctx, "10:00"); err != nil {
		t.Fatalf("select slot: %v", err)
	}

	payload, err := b.Payload("walk-in")
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	if err := b.Submit(ctx, payload); err != nil {
		t.Fatalf("submit: %v", err)
	}

	res, err := b.Rows(ctx)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(res.Items) != 1 || res.Items[0].ServiceID != "svc-1" {
		t.Errorf("bookings after create = %+v", res.Items)
	}
	if fake.bookingCalls != 2 {
		t.Errorf("booking list calls = %d, want re-fetch after create", fake.bookingCalls)
	}

	// the new booking consumed a slot, so availability re-fetches too
	slotCallsBefore := fake.slotCalls
	if _, err := b.AvailableSlots(ctx); err != nil {
		t.Fatalf("slots: %v", err)
	}
	if fake.slotCalls != slotCallsBefore+1 {
		t.Errorf("slot calls = %d, want invalidated availability", fake.slotCalls)
	}

	ns := hub.Drain()
	if len(ns) != 1 || ns[0].Severity != notify.Success {
		t.Errorf("notifications = %+v, want one success", ns)
	}
}

func TestFailedCreateKeepsFormOpen(t *testing.T) {
	fake := &fakeAPI{failCreate: true}
	b, hub := newBookingFixture(t, fake)
	ctx := context.Background()

	b.StartCreate()
	if err := b.SelectService(ctx, "svc-1"); err != nil {
		t.Fatalf("select service: %v", err)
	}
	if err := b.SelectBranch(ctx, "br-1"); err != nil {
		t.Fatalf("select branch: %v", err)
	}
	if err := b.SelectDate(bookableDate()); err != nil {
		t.Fatalf("select date: %v", err)
	}
	if err := b.SelectSlot(ctx, "12:00"); err != nil {
		t.Fatalf("select slot: %v", err)
	}

	payload, err := b.Payload("")
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	if err := b.Submit(ctx, payload); err == nil {
		t.Fatal("expected create to fail")
	}

	if b.Form().Mode != FormCreate {
		t.Error("form must stay open")
	}
	ns := hub.Drain()
	if len(ns) != 1 || !strings.Contains(ns[0].Message, "slot already taken") {
		t.Errorf("notifications = %+v", ns)
	}
}

func TestSubmitStatus(t *testing.T) {
	fake := &fakeAPI{}
	b, hub := newBookingFixture(t, fake)
	ctx := context.Background()

	booking := models.Booking{ID: "bk-9", Status: models.BookingPending}

	b.StartEdit(booking)
	if err := b.SubmitStatus(ctx, "NOT_A_STATUS"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
	if b.Form().Mode != FormEdit {
		t.Error("form stays open on invalid status")
	}

	if err := b.SubmitStatus(ctx, models.BookingConfirmed); err != nil {
		t.Fatalf("submit status: %v", err)
	}
	if b.Form().Mode != FormClosed {
		t.Error("form should close after status update")
	}
	if ns := hub.Drain(); len(ns) != 1 || ns[0].Severity != notify.Success {
		t.Errorf("notifications = %+v", ns)
	}
}

func TestUserInfoResolvesAccount(t *testing.T) {
	b, _ := newBookingFixture(t, &fakeAPI{})

	u, err := b.UserInfo(context.Background(), "user-7")
	if err != nil {
		t.Fatalf("user info: %v", err)
	}
	if u.ID != "user-7" || u.FirstName != "Aye" {
		t.Errorf("user = %+v", u)
	}
}
