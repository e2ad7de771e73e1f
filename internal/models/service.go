package models

// Service is a bookable offering. It belongs to one category and is
// offered at one or more branches.
type Service struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	DurationMinute int      `json:"duration_minute"`
	Price          int      `json:"price"`
	CategoryID     string   `json:"category_id"`
	Category       Category `json:"category"`
	Image          string   `json:"image"`
	IsActive       bool     `json:"is_active"`
	Branches       []Branch `json:"branches"`
	BranchIDs      []string `json:"branch_ids"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}

type ServicePayload struct {
	Name           string   `json:"name" validate:"required"`
	Description    string   `json:"description"`
	DurationMinute int      `json:"duration_minute" validate:"gt=0"`
	Price          int      `json:"price" validate:"gte=0"`
	CategoryID     string   `json:"category_id" validate:"required"`
	Image          string   `json:"image"`
	IsActive       bool     `json:"is_active"`
	BranchIDs      []string `json:"branch_ids" validate:"min=1"`
}
