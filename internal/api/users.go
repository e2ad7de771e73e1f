package api

import (
	"context"
	"net/url"

	"github.com/kaung-htet-hein-dev/ivy-admin/internal/models"
)

// UserClient maps user operations onto /api/v1/user. There is no create:
// accounts come from sign-up, the dashboard only edits and removes them.
type UserClient struct {
	c *Client
}

func NewUserClient(c *Client) *UserClient {
	return &UserClient{c: c}
}

func (uc *UserClient) List(ctx context.Context, page Page, filters url.Values) (ListResult[models.User], error) {
	q := page.Query()
	for k, vs := range filters {
		for _, v := range vs {
			q.Add(k, v)
		}
	}

	var items []models.User
	pg, err := uc.c.get(ctx, epUser, q, &items)
	if err != nil {
		return ListResult[models.User]{}, err
	}
	return ListResult[models.User]{Items: items, Total: total(pg, len(items))}, nil
}

func (uc *UserClient) Get(ctx context.Context, id string) (models.User, error) {
	var out models.User
	_, err := uc.c.get(ctx, epUser+"/"+id, nil, &out)
	return out, err
}

func (uc *UserClient) Update(ctx context.Context, id string, payload models.UserPayload) (models.User, error) {
	var out models.User
	err := uc.c.put(ctx, epUser+"/"+id, payload, &out)
	return out, err
}

func (uc *UserClient) Delete(ctx context.Context, id string) error {
	return uc.c.delete(ctx, epUser+"/"+id)
}
