package category

import (
	"net/http"
	"testing"

	"gorm.io/gorm"

	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/testutil"
)

func setup(t *testing.T, role uint) (*gorm.DB, http.Handler) {
	t.Helper()
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "Caller", "caller@example.com", role)
	r := testutil.Router(user)
	NewModule(db, "https://cdn.example.com", nil).RegisterRoutes(r.Group("/api/v1"))
	return db, r
}

func TestCreateCategory_ValidationRoundTrip(t *testing.T) {
	_, r := setup(t, domain.RoleAdmin)

	w, resp := testutil.Do(t, r, http.MethodPost, "/api/v1/admin/events/category", `{"description":"no name"}`)
	if w.Code != http.StatusUnprocessableEntity || resp.Code != 422 {
		t.Fatalf("status = %d; want 422", w.Code)
	}
	if fields := testutil.Data[map[string]string](t, resp); fields["name"] == "" {
		t.Fatalf("expected data.name, got %v", fields)
	}

	w, resp = testutil.Do(t, r, http.MethodPost, "/api/v1/admin/events/category",
		`{"name":"  Plebe Summer / Induction Day ","imageUrl":"/uploads/plebe.jpg","status":"1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("create status = %d (%s)", w.Code, resp.Data)
	}
	created := testutil.Data[map[string]any](t, resp)
	if created["slug"] != "plebe-summer-induction-day" {
		t.Errorf("slug = %v", created["slug"])
	}
	if created["imageUrl"] != "https://cdn.example.com/uploads/plebe.jpg" {
		t.Errorf("imageUrl = %v", created["imageUrl"])
	}

	w, _ = testutil.Do(t, r, http.MethodGet, "/api/v1/admin/events/category/plebe-summer-induction-day", "")
	if w.Code != http.StatusOK {
		t.Fatalf("fetch by slug status = %d", w.Code)
	}

	_, resp = testutil.Do(t, r, http.MethodPost, "/api/v1/admin/events/category", `{"name":"Plebe Summer: Induction Day"}`)
	if got := testutil.Data[map[string]any](t, resp)["slug"]; got != "plebe-summer-induction-day-2" {
		t.Errorf("colliding slug = %v", got)
	}
}

func TestAdminRoutes_RejectNonAdmin(t *testing.T) {
	_, r := setup(t, domain.RoleUser)

	w, resp := testutil.Do(t, r, http.MethodPost, "/api/v1/admin/events/category", `{"name":"Sneaky"}`)
	if w.Code != http.StatusForbidden || resp.Code != 403 {
		t.Fatalf("status = %d; want 403", w.Code)
	}
}

func TestPublicList_HidesInactiveAndDeleted(t *testing.T) {
	db, r := setup(t, domain.RoleAdmin)
	now := db.NowFunc()
	rows := []domain.EventCategory{
		{Name: "Active", Slug: "active", Status: true},
		{Name: "Inactive", Slug: "inactive", Status: false},
		{Name: "Deleted", Slug: "deleted", Status: true, SoftDelete: domain.SoftDelete{DeletedAt: &now}},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	public := testutil.Router(nil)
	NewModule(db, "", nil).RegisterRoutes(public.Group("/api/v1"))
	_, resp := testutil.Do(t, public, http.MethodGet, "/api/v1/users/events/category", "")
	list := testutil.Data[[]map[string]any](t, resp)
	if len(list) != 1 || list[0]["slug"] != "active" {
		t.Fatalf("public list = %v; want only active", list)
	}
	if list[0]["imageUrl"] != nil {
		t.Errorf("empty image should render null, got %v", list[0]["imageUrl"])
	}

	_, resp = testutil.Do(t, r, http.MethodGet, "/api/v1/admin/events/category", "")
	if list = testutil.Data[[]map[string]any](t, resp); len(list) != 2 {
		t.Fatalf("admin list has %d rows; want 2", len(list))
	}
}

func TestDestroyCategory_CascadesToChildren(t *testing.T) {
	db, r := setup(t, domain.RoleAdmin)

	cat := domain.EventCategory{Name: "Sea Trials", Slug: "sea-trials", Status: true}
	db.Create(&cat)
	event := domain.Event{Title: "Day 1", Slug: "day-1", CategoryID: cat.ID, Price: "$10.00", Status: true}
	db.Create(&event)
	faq := domain.EventCategoryFaq{EventCategoryID: cat.ID, Slug: "when", Question: "When?", Answer: "May", Status: true}
	db.Create(&faq)
	gallery := domain.Gallery{EventCategoryID: &cat.ID, EventID: &event.ID, Title: "Day 1", Slug: "day-1-gallery", Status: true}
	db.Create(&gallery)
	item := domain.GalleryItem{GalleryID: gallery.ID, Slug: "photo-1", ImageURL: "/uploads/1.jpg", Status: true}
	db.Create(&item)

	w, resp := testutil.Do(t, r, http.MethodDelete, "/api/v1/admin/events/category/sea-trials", "")
	if w.Code != http.StatusOK || resp.Message != "Record deleted successfully" {
		t.Fatalf("destroy status = %d message %q", w.Code, resp.Message)
	}

	for name, model := range map[string]any{
		"category": &domain.EventCategory{},
		"event":    &domain.Event{},
		"faq":      &domain.EventCategoryFaq{},
		"gallery":  &domain.Gallery{},
		"item":     &domain.GalleryItem{},
	} {
		var live int64
		db.Model(model).Where("deleted_at IS NULL").Count(&live)
		if live != 0 {
			t.Errorf("%s: %d live rows after cascade", name, live)
		}
	}

	w, _ = testutil.Do(t, r, http.MethodGet, "/api/v1/admin/events/category/sea-trials", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("show after destroy = %d; want 404", w.Code)
	}
}
