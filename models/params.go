package models

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// ListParams carries the generic list-with-query options supported by the
// collection endpoints: equality filters on indexed columns, one sort field
// with direction, a result limit, and relation expansion via Preload.
type ListParams struct {
	Filters map[string]string
	SortBy  string
	Order   string // asc or desc
	Limit   int
	Expand  []string
}

// filterableColumns is the allowlist of filterable/sortable columns. Raw
// query keys never reach SQL.
var filterableColumns = map[string]bool{
	"work_id":   true,
	"user_id":   true,
	"client_id": true,
	"status":    true,
	"type":      true,
	"category":  true,
	"role":      true,
	"date":      true,
	"read":      true,
}

// expandableRelations maps the expand query values to GORM associations.
var expandableRelations = map[string]string{
	"work":   "Work",
	"client": "Client",
	"user":   "User",
}

var sortableColumns = map[string]bool{
	"created_at":      true,
	"date":            true,
	"visit_date":      true,
	"start_date":      true,
	"amount":          true,
	"estimated_value": true,
	"title":           true,
	"name":            true,
}

// ParseListParams reads the query string into ListParams. Unknown filter or
// sort keys are rejected so callers get a 400 rather than a silent full scan.
func ParseListParams(r *http.Request) (*ListParams, error) {
	params := &ListParams{
		Filters: make(map[string]string),
		SortBy:  "created_at",
		Order:   "desc",
	}

	q := r.URL.Query()
	for key, vals := range q {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}
		switch key {
		case "sort":
			params.SortBy = vals[0]
		case "order":
			params.Order = strings.ToLower(vals[0])
		case "limit":
			limit, err := strconv.Atoi(vals[0])
			if err != nil || limit < 0 {
				return nil, fmt.Errorf("invalid limit %q", vals[0])
			}
			params.Limit = limit
		case "expand":
			for _, rel := range strings.Split(vals[0], ",") {
				if _, ok := expandableRelations[rel]; !ok {
					return nil, fmt.Errorf("unknown expand relation %q", rel)
				}
				params.Expand = append(params.Expand, rel)
			}
		default:
			col := camelToSnake(key)
			if !filterableColumns[col] {
				return nil, fmt.Errorf("unknown filter %q", key)
			}
			params.Filters[col] = vals[0]
		}
	}

	if !sortableColumns[params.SortBy] {
		return nil, fmt.Errorf("unknown sort field %q", params.SortBy)
	}
	if params.Order != "asc" && params.Order != "desc" {
		return nil, fmt.Errorf("order must be asc or desc, got %q", params.Order)
	}
	return params, nil
}

// Apply attaches the parsed options to a query.
func (p *ListParams) Apply(db *gorm.DB) *gorm.DB {
	query := db
	for col, val := range p.Filters {
		query = query.Where(col+" = ?", val)
	}
	for _, rel := range p.Expand {
		if assoc, ok := expandableRelations[rel]; ok {
			query = query.Preload(assoc)
		}
	}
	query = query.Order(p.SortBy + " " + strings.ToUpper(p.Order))
	if p.Limit > 0 {
		query = query.Limit(p.Limit)
	}
	return query
}

// camelToSnake maps query keys like workId to work_id.
func camelToSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
