package api

import (
	"context"
	"net/url"

	"github.com/kaung-htet-hein-dev/ivy-admin/internal/models"
)

// ServiceClient maps service CRUD onto /api/v1/service.
type ServiceClient struct {
	c *Client
}

func NewServiceClient(c *Client) *ServiceClient {
	return &ServiceClient{c: c}
}

func (sc *ServiceClient) List(ctx context.Context, page Page, filters url.Values) (ListResult[models.Service], error) {
	q := page.Query()
	for k, vs := range filters {
		for _, v := range vs {
			q.Add(k, v)
		}
	}

	var items []models.Service
	pg, err := sc.c.get(ctx, epService, q, &items)
	if err != nil {
		return ListResult[models.Service]{}, err
	}
	return ListResult[models.Service]{Items: items, Total: total(pg, len(items))}, nil
}

func (sc *ServiceClient) Get(ctx context.Context, id string) (models.Service, error) {
	var out models.Service
	_, err := sc.c.get(ctx, epService+"/"+id, nil, &out)
	return out, err
}

func (sc *ServiceClient) Create(ctx context.Context, payload models.ServicePayload) (models.Service, error) {
	var out models.Service
	err := sc.c.post(ctx, epService, payload, &out)
	return out, err
}

func (sc *ServiceClient) Update(ctx context.Context, id string, payload models.ServicePayload) (models.Service, error) {
	var out models.Service
	err := sc.c.put(ctx, epService+"/"+id, payload, &out)
	return out, err
}

func (sc *ServiceClient) Delete(ctx context.Context, id string) error {
	return sc.c.delete(ctx, epService+"/"+id)
}
