package models

// DashboardStats is the landing page's headline counters. The server
// spells these camelCase, unlike the entity payloads.
type DashboardStats struct {
	TotalUsers      int `json:"totalUsers"`
	TotalCategories int `json:"totalCategories"`
	TotalBranches   int `json:"totalBranches"`
	TotalServices   int `json:"totalServices"`
	TotalBookings   int `json:"totalBookings"`
}
