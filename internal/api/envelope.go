package api

import "encoding/json"

// envelope is the wrapper every endpoint responds with:
// {code, data, message} for single records, plus pagination on lists.
type envelope struct {
	Code       int             `json:"code"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

// Pagination is the server-side paging block on list responses.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// total picks the authoritative count for a fetched page, falling back
// to the page length for endpoints that omit the pagination block.
func total(pg *Pagination, fetched int) int {
	if pg != nil {
		return pg.Total
	}
	return fetched
}
