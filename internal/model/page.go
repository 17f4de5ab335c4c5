package model

// Page is the paginated list envelope returned by list endpoints that
// aggregate over the whole filtered range, not just the current page.
type Page[T any] struct {
	Total    int       `json:"total" yaml:"total"`
	Data     []T       `json:"data" yaml:"data"`
	Sum      []SumInfo `json:"sum" yaml:"sum"`
	Income   float64   `json:"income" yaml:"income"`
	Expenses float64   `json:"expenses" yaml:"expenses"`
}
