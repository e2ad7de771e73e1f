package api

import (
	"context"
	"net/url"

	"github.com/kaung-htet-hein-dev/ivy-admin/internal/models"
)

// CategoryClient maps category CRUD onto /api/v1/category.
type CategoryClient struct {
	c *Client
}

func NewCategoryClient(c *Client) *CategoryClient {
	return &CategoryClient{c: c}
}

func (cc *CategoryClient) List(ctx context.Context, page Page, filters url.Values) (ListResult[models.Category], error) {
	q := page.Query()
	for k, vs := range filters {
		for _, v := range vs {
			q.Add(k, v)
		}
	}

	var items []models.Category
	pg, err := cc.c.get(ctx, epCategory, q, &items)
	if err != nil {
		return ListResult[models.Category]{}, err
	}
	return ListResult[models.Category]{Items: items, Total: total(pg, len(items))}, nil
}

func (cc *CategoryClient) Get(ctx context.Context, id string) (models.Category, error) {
	var out models.Category
	_, err := cc.c.get(ctx, epCategory+"/"+id, nil, &out)
	return out, err
}

func (cc *CategoryClient) Create(ctx context.Context, payload models.CategoryPayload) (models.Category, error) {
	var out models.Category
	err := cc.c.post(ctx, epCategory, payload, &out)
	return out, err
}

func (cc *CategoryClient) Update(ctx context.Context, id string, payload models.CategoryPayload) (models.Category, error) {
	var out models.Category
	err := cc.c.put(ctx, epCategory+"/"+id, payload, &out)
	return out, err
}

func (cc *CategoryClient) Delete(ctx context.Context, id string) error {
	return cc.c.delete(ctx, epCategory+"/"+id)
}
