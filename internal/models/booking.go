package models

// BookingStatus is the server-owned booking lifecycle state.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// Booking ties a user to a service at a branch on a date + time slot.
type Booking struct {
	ID         string        `json:"id"`
	UserID     string        `json:"user_id"`
	ServiceID  string        `json:"service_id"`
	BranchID   string        `json:"branch_id"`
	BookedDate string        `json:"booked_date"` // dd/MM/yyyy
	BookedTime string        `json:"booked_time"` // HH:MM
	Status     BookingStatus `json:"status"`
	Note       string        `json:"note"`
	Service    Service       `json:"service"`
	Branch     Branch        `json:"branch"`
	CreatedAt  string        `json:"created_at"`
	UpdatedAt  string        `json:"updated_at"`
}

// BookingPayload creates a booking. BookedDate is sent as dd/MM/yyyy.
type BookingPayload struct {
	ServiceID  string `json:"service_id" validate:"required"`
	BranchID   string `json:"branch_id" validate:"required"`
	BookedDate string `json:"booked_date" validate:"required"`
	BookedTime string `json:"booked_time" validate:"required"`
	Note       string `json:"note"`
}

// BookingStatusPayload is the status-only update body (PUT /booking/{id}).
type BookingStatusPayload struct {
	Status BookingStatus `json:"status" validate:"required"`
}

// TimeSlot is one bookable slot returned by the availability endpoint.
type TimeSlot struct {
	Slot        string `json:"slot"`
	IsAvailable bool   `json:"is_available"`
}
