package models

// Category groups services (e.g. "Hair", "Nails").
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CategoryPayload struct {
	Name string `json:"name" validate:"required"`
}
