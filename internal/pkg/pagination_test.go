package pkg

import (
	"net/url"
	"testing"

	"gorm.io/gorm"
	dbtest "gorm.io/gorm/utils/tests"

	"github.com/simp-lee/photostore/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(dbtest.DummyDialector{}, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return db
}

func TestParsePageRequest_Defaults(t *testing.T) {
	pr := ParsePageRequest(url.Values{})

	if pr.Paged {
		t.Error("expected Paged=false without a page parameter")
	}
	if pr.Page != 1 {
		t.Errorf("expected Page=1, got %d", pr.Page)
	}
	if pr.PageSize != 20 {
		t.Errorf("expected PageSize=20, got %d", pr.PageSize)
	}
	if pr.Sort != "" {
		t.Errorf("expected empty Sort, got %q", pr.Sort)
	}
}

func TestParsePageRequest_CustomValues(t *testing.T) {
	pr := ParsePageRequest(url.Values{
		"page":      {"3"},
		"page_size": {"50"},
		"sort":      {"title:asc"},
	})

	if !pr.Paged {
		t.Error("expected Paged=true")
	}
	if pr.Page != 3 {
		t.Errorf("expected Page=3, got %d", pr.Page)
	}
	if pr.PageSize != 50 {
		t.Errorf("expected PageSize=50, got %d", pr.PageSize)
	}
	if pr.Sort != "title:asc" {
		t.Errorf("expected Sort=title:asc, got %s", pr.Sort)
	}
}

func TestParsePageRequest_Clamping(t *testing.T) {
	tests := []struct {
		name         string
		query        url.Values
		wantPage     int
		wantPageSize int
	}{
		{"page below minimum", url.Values{"page": {"0"}}, 1, 20},
		{"negative page", url.Values{"page": {"-5"}}, 1, 20},
		{"page not a number", url.Values{"page": {"abc"}}, 1, 20},
		{"page_size below minimum", url.Values{"page_size": {"0"}}, 1, 20},
		{"negative page_size", url.Values{"page_size": {"-5"}}, 1, 20},
		{"page_size above maximum", url.Values{"page_size": {"200"}}, 1, 100},
		{"invalid page_size", url.Values{"page_size": {"abc"}}, 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := ParsePageRequest(tt.query)
			if pr.Page != tt.wantPage {
				t.Errorf("Page = %d; want %d", pr.Page, tt.wantPage)
			}
			if pr.PageSize != tt.wantPageSize {
				t.Errorf("PageSize = %d; want %d", pr.PageSize, tt.wantPageSize)
			}
		})
	}
}

func TestIsAllowed(t *testing.T) {
	allowed := []string{"title", "price", "created_at"}

	if !isAllowed("title", allowed) {
		t.Error("expected 'title' to be allowed")
	}
	if isAllowed("password", allowed) {
		t.Error("expected 'password' to not be allowed")
	}
	if isAllowed("", allowed) {
		t.Error("expected empty string to not be allowed")
	}
}

func TestValidFieldName(t *testing.T) {
	valid := []string{"id", "title", "created_at", "user_type", "_private"}
	invalid := []string{"", "1field", "name;DROP", "field name", "a.b", "a-b"}

	for _, f := range valid {
		if !validFieldName.MatchString(f) {
			t.Errorf("expected %q to be valid", f)
		}
	}
	for _, f := range invalid {
		if validFieldName.MatchString(f) {
			t.Errorf("expected %q to be invalid", f)
		}
	}
}

func TestSort(t *testing.T) {
	tests := []struct {
		name    string
		sort    string
		allowed []string
		applied bool
	}{
		{"valid field asc", "title:asc", []string{"title", "price"}, true},
		{"valid field desc", "id:desc", []string{"id", "title"}, true},
		{"field not in allowed list", "password:asc", []string{"title"}, false},
		{"malformed no colon", "title", []string{"title"}, false},
		{"empty direction", "title:", []string{"title"}, false},
		{"invalid direction", "title:up", []string{"title"}, false},
		{"sql injection in field", "title;DROP TABLE events--:asc", []string{"title"}, false},
		{"empty field", ":asc", []string{"title"}, false},
		{"empty sort", "", []string{"title"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope, ok := Sort(domain.PageRequest{Sort: tt.sort}, tt.allowed)
			if ok != tt.applied {
				t.Errorf("Sort ok = %v, want %v", ok, tt.applied)
			}
			result := scope(newTestDB(t))
			_, hasOrder := result.Statement.Clauses["ORDER BY"]
			if hasOrder != tt.applied {
				t.Errorf("Order clause applied=%v, want %v", hasOrder, tt.applied)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	columns := map[string]string{"status": "status", "userType": "user_type"}

	tests := []struct {
		name    string
		query   url.Values
		applied bool
	}{
		{"known parameter", url.Values{"status": {"PAID"}}, true},
		{"mapped parameter", url.Values{"userType": {"ADMIN"}}, true},
		{"unknown parameter", url.Values{"password": {"secret"}}, false},
		{"empty value", url.Values{"status": {""}}, false},
		{"no parameters", url.Values{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Filter(tt.query, columns)(newTestDB(t))
			_, hasWhere := result.Statement.Clauses["WHERE"]
			if hasWhere != tt.applied {
				t.Errorf("Where clause applied=%v, want %v", hasWhere, tt.applied)
			}
		})
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		name    string
		column  string
		term    string
		applied bool
	}{
		{"term present", "name", "ali", true},
		{"blank term", "name", "   ", false},
		{"invalid column", "name; DROP", "ali", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Contains(tt.column, tt.term)(newTestDB(t))
			_, hasWhere := result.Statement.Clauses["WHERE"]
			if hasWhere != tt.applied {
				t.Errorf("Where clause applied=%v, want %v", hasWhere, tt.applied)
			}
		})
	}
}

func TestContains_LiteralWildcards(t *testing.T) {
	db := newTxDB(t)
	for _, title := range []string{"Herndon", "50% off", "a_b", "axb"} {
		if err := db.Create(&txOrderItem{Title: title}).Error; err != nil {
			t.Fatalf("seed %q: %v", title, err)
		}
	}

	tests := []struct {
		term string
		want []string
	}{
		{"%", []string{"50% off"}},
		{"a_b", []string{"a_b"}},
		{`\`, nil},
		{"HERN", []string{"Herndon"}},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			var titles []string
			err := db.Model(&txOrderItem{}).Scopes(Contains("title", tt.term)).
				Order("id").Pluck("title", &titles).Error
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			if len(titles) != len(tt.want) {
				t.Fatalf("Contains(%q) = %v; want %v", tt.term, titles, tt.want)
			}
			for i := range titles {
				if titles[i] != tt.want[i] {
					t.Errorf("Contains(%q) = %v; want %v", tt.term, titles, tt.want)
				}
			}
		})
	}
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		req       domain.PageRequest
		wantLimit bool
	}{
		{"unpaged", domain.PageRequest{Page: 1, PageSize: 20}, false},
		{"first page", domain.PageRequest{Paged: true, Page: 1, PageSize: 10}, true},
		{"later page", domain.PageRequest{Paged: true, Page: 4, PageSize: 50}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Paginate(tt.req)(newTestDB(t))
			_, hasLimit := result.Statement.Clauses["LIMIT"]
			if hasLimit != tt.wantLimit {
				t.Errorf("LIMIT applied=%v, want %v", hasLimit, tt.wantLimit)
			}
		})
	}
}

func TestQueryUint(t *testing.T) {
	tests := []struct {
		raw    string
		want   uint
		wantOK bool
	}{
		{"7", 7, true},
		{" 12 ", 12, true},
		{"", 0, false},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"1.5", 0, false},
	}

	for _, tt := range tests {
		got, ok := QueryUint(url.Values{"galleryId": {tt.raw}}, "galleryId")
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("QueryUint(%q) = (%d, %v); want (%d, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}
