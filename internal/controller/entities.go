package controller

import (
	"github.com/kaung-htet-hein-dev/ivy-admin/internal/api"
	"github.com/kaung-htet-hein-dev/ivy-admin/internal/models"
)

func NewBranches(client *api.BranchClient, deps Deps) *Controller[models.Branch, models.BranchPayload] {
	return New(CRUD[models.Branch, models.BranchPayload]{
		Tag:    TagBranches,
		Label:  "Branch",
		ID:     func(b models.Branch) string { return b.ID },
		List:   client.List,
		Create: client.Create,
		Update: client.Update,
		Delete: client.Delete,
	}, deps)
}

func NewCategories(client *api.CategoryClient, deps Deps) *Controller[models.Category, models.CategoryPayload] {
	return New(CRUD[models.Category, models.CategoryPayload]{
		Tag:    TagCategories,
		Label:  "Category",
		ID:     func(c models.Category) string { return c.ID },
		List:   client.List,
		Create: client.Create,
		Update: client.Update,
		Delete: client.Delete,
	}, deps)
}

func NewServices(client *api.ServiceClient, deps Deps) *Controller[models.Service, models.ServicePayload] {
	return New(CRUD[models.Service, models.ServicePayload]{
		Tag:    TagServices,
		Label:  "Service",
		ID:     func(s models.Service) string { return s.ID },
		List:   client.List,
		Create: client.Create,
		Update: client.Update,
		Delete: client.Delete,
	}, deps)
}

// NewUsers has no Create: accounts arrive through sign-up, the
// dashboard only edits roles/details and removes accounts.
func NewUsers(client *api.UserClient, deps Deps) *Controller[models.User, models.UserPayload] {
	return New(CRUD[models.User, models.UserPayload]{
		Tag:    TagUsers,
		Label:  "User",
		ID:     func(u models.User) string { return u.ID },
		List:   client.List,
		Update: client.Update,
		Delete: client.Delete,
	}, deps)
}
