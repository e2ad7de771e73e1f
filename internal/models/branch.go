package models

// Branch is a physical location bookings can be made against.
type Branch struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Longitude   string `json:"longitude"`
	Latitude    string `json:"latitude"`
	PhoneNumber string `json:"phone_number"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// BranchPayload is the create/update body for a branch. IDs are always
// assigned server-side.
type BranchPayload struct {
	Name        string `json:"name" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Longitude   string `json:"longitude"`
	Latitude    string `json:"latitude"`
	PhoneNumber string `json:"phone_number"`
	IsActive    bool   `json:"is_active"`
}
