package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/kaung-htet-hein-dev/ivy-admin/internal/models"
)

// BranchClient maps branch CRUD onto /api/v1/branch.
type BranchClient struct {
	c *Client
}

func NewBranchClient(c *Client) *BranchClient {
	return &BranchClient{c: c}
}

// BranchFilters narrows the branch list. Unset fields are omitted from
// the query string.
type BranchFilters struct {
	IsActive *bool
}

func (f BranchFilters) Values() url.Values {
	q := url.Values{}
	if f.IsActive != nil {
		q.Set("is_active", strconv.FormatBool(*f.IsActive))
	}
	return q
}

func (b *BranchClient) List(ctx context.Context, page Page, filters url.Values) (ListResult[models.Branch], error) {
	q := page.Query()
	for k, vs := range filters {
		for _, v := range vs {
			q.Add(k, v)
		}
	}

	var items []models.Branch
	pg, err := b.c.get(ctx, epBranch, q, &items)
	if err != nil {
		return ListResult[models.Branch]{}, err
	}
	return ListResult[models.Branch]{Items: items, Total: total(pg, len(items))}, nil
}

func (b *BranchClient) Get(ctx context.Context, id string) (models.Branch, error) {
	var out models.Branch
	_, err := b.c.get(ctx, epBranch+"/"+id, nil, &out)
	return out, err
}

func (b *BranchClient) Create(ctx context.Context, payload models.BranchPayload) (models.Branch, error) {
	var out models.Branch
	err := b.c.post(ctx, epBranch, payload, &out)
	return out, err
}

func (b *BranchClient) Update(ctx context.Context, id string, payload models.BranchPayload) (models.Branch, error) {
	var out models.Branch
	err := b.c.put(ctx, epBranch+"/"+id, payload, &out)
	return out, err
}

func (b *BranchClient) Delete(ctx context.Context, id string) error {
	return b.c.delete(ctx, epBranch+"/"+id)
}
