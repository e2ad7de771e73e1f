package api

import (
	"context"
	"net/url"

	"github.com/kaung-htet-hein-dev/ivy-admin/internal/models"
)

// WireDateFormat is how the API spells dates in booking payloads and
// filters (dd/MM/yyyy).
const WireDateFormat = "02/01/2006"

// BookingClient maps booking operations onto /api/v1/booking. Bookings
// are created and status-updated but never deleted; cancellation is a
// status transition.
type BookingClient struct {
	c *Client
}

func NewBookingClient(c *Client) *BookingClient {
	return &BookingClient{c: c}
}

// BookingFilters narrows the booking list. BookedDate uses the wire
// date format.
type BookingFilters struct {
	Status     models.BookingStatus
	BookedDate string
}

func (f BookingFilters) Values() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.BookedDate != "" {
		q.Set("booked_date", f.BookedDate)
	}
	return q
}

func (bc *BookingClient) List(ctx context.Context, page Page, filters url.Values) (ListResult[models.Booking], error) {
	q := page.Query()
	for k, vs := range filters {
		for _, v := range vs {
			q.Add(k, v)
		}
	}

	var items []models.Booking
	pg, err := bc.c.get(ctx, epBooking, q, &items)
	if err != nil {
		return ListResult[models.Booking]{}, err
	}
	return ListResult[models.Booking]{Items: items, Total: total(pg, len(items))}, nil
}

func (bc *BookingClient) Get(ctx context.Context, id string) (models.Booking, error) {
	var out models.Booking
	_, err := bc.c.get(ctx, epBooking+"/"+id, nil, &out)
	return out, err
}

func (bc *BookingClient) Create(ctx context.Context, payload models.BookingPayload) (models.Booking, error) {
	var out models.Booking
	err := bc.c.post(ctx, epBooking, payload, &out)
	return out, err
}

// UpdateStatus is the only mutation the API allows on an existing
// booking.
func (bc *BookingClient) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) (models.Booking, error) {
	var out models.Booking
	err := bc.c.put(ctx, epBooking+"/"+id, models.BookingStatusPayload{Status: status}, &out)
	return out, err
}

// AvailableSlots fetches bookable time slots for a branch on a date
// (wire date format). Both parameters are required by the server.
func (bc *BookingClient) AvailableSlots(ctx context.Context, bookedDate, branchID string) ([]models.TimeSlot, error) {
	q := url.Values{}
	q.Set("booked_date", bookedDate)
	q.Set("branch_id", branchID)

	var out []models.TimeSlot
	_, err := bc.c.get(ctx, epBookingSlots, q, &out)
	return out, err
}
