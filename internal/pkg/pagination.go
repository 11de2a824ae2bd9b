package pkg

import (
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/simp-lee/photostore/internal/domain"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

// validFieldName matches only alphanumeric characters and underscores.
var validFieldName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ParsePageRequest extracts pagination and sorting parameters from query params.
// Pagination is only enabled when the client sends a "page" parameter.
func ParsePageRequest(query url.Values) domain.PageRequest {
	req := domain.PageRequest{
		Page:     defaultPage,
		PageSize: defaultPageSize,
		Sort:     strings.TrimSpace(query.Get("sort")),
	}

	if raw := query.Get("page"); raw != "" {
		req.Paged = true
		if page, err := strconv.Atoi(raw); err == nil && page >= 1 {
			req.Page = page
		}
	}

	if pageSize, err := strconv.Atoi(query.Get("page_size")); err == nil && pageSize >= 1 {
		req.PageSize = min(pageSize, maxPageSize)
	}

	return req
}

// Paginate returns a GORM scope that applies LIMIT and OFFSET when the request is paged.
func Paginate(req domain.PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !req.Paged {
			return db
		}
		offset := (req.Page - 1) * req.PageSize
		return db.Offset(offset).Limit(req.PageSize)
	}
}

// Sort returns a GORM scope that applies ORDER BY from a "field:dir" sort value.
// Fields not in the allowed list are silently ignored. The returned bool reports
// whether an ordering was applied so callers can fall back to their default.
func Sort(req domain.PageRequest, allowed []string) (func(db *gorm.DB) *gorm.DB, bool) {
	field, direction, ok := strings.Cut(req.Sort, ":")
	field = strings.TrimSpace(field)
	direction = strings.ToLower(strings.TrimSpace(direction))

	if !ok || (direction != "asc" && direction != "desc") ||
		!validFieldName.MatchString(field) || !isAllowed(field, allowed) {
		return func(db *gorm.DB) *gorm.DB { return db }, false
	}

	return func(db *gorm.DB) *gorm.DB {
		return db.Order(field + " " + direction)
	}, true
}

// Filter returns a GORM scope applying exact-match conditions for query
// parameters found in columns (query param name -> column name). Empty values
// and unknown parameters are ignored.
func Filter(query url.Values, columns map[string]string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for param, column := range columns {
			value := strings.TrimSpace(query.Get(param))
			if value == "" || !validFieldName.MatchString(column) {
				continue
			}
			db = db.Where(column+" = ?", value)
		}
		return db
	}
}

// Contains returns a GORM scope for a case-insensitive substring match on column.
// An empty term leaves the query untouched.
func Contains(column, term string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || !validFieldName.MatchString(column) {
			return db
		}
		pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		return db.Where("LOWER("+column+") LIKE ? ESCAPE '\\'", pattern)
	}
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// QueryUint parses a numeric query parameter leniently. ok is false when the
// parameter is absent or not a positive integer.
func QueryUint(query url.Values, key string) (uint, bool) {
	raw := strings.TrimSpace(query.Get(key))
	if raw == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// isAllowed checks if a field name is in the allowed list.
func isAllowed(field string, allowed []string) bool {
	return slices.Contains(allowed, field)
}
