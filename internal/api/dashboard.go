package api

import (
	"context"

	"github.com/kaung-htet-hein-dev/ivy-admin/internal/models"
)

// DashboardClient fetches the aggregate counters shown on the landing
// page.
type DashboardClient struct {
	c *Client
}

func NewDashboardClient(c *Client) *DashboardClient {
	return &DashboardClient{c: c}
}

func (dc *DashboardClient) Stats(ctx context.Context) (models.DashboardStats, error) {
	var out models.DashboardStats
	_, err := dc.c.get(ctx, epDashboardStats, nil, &out)
	return out, err
}
