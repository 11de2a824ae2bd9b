package gallery

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/testutil"
)

func TestGallery_CreateAndList(t *testing.T) {
	db := testutil.NewDB(t)
	admin := testutil.CreateUser(t, db, "Admin", "admin@example.com", domain.RoleAdmin)
	customer := testutil.CreateUser(t, db, "Mid", "mid@example.com", domain.RoleUser)

	adminRouter := testutil.Router(admin)
	NewModule(db, "https://cdn.example.com", nil).RegisterRoutes(adminRouter.Group("/api/v1"))
	customerRouter := testutil.Router(customer)
	NewModule(db, "https://cdn.example.com", nil).RegisterRoutes(customerRouter.Group("/api/v1"))

	cat := domain.EventCategory{Name: "Plebe Summer", Slug: "plebe-summer", Status: true}
	db.Create(&cat)
	ev := domain.Event{Title: "I-Day", Slug: "i-day", CategoryID: cat.ID, Price: "$10", Status: true}
	db.Create(&ev)

	w, resp := testutil.Do(t, adminRouter, http.MethodPost, "/api/v1/admin/gallery", `{"title":"I-Day"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d; want 422", w.Code)
	}
	fields := testutil.Data[map[string]string](t, resp)
	if fields["eventCategoryId"] == "" || fields["eventId"] == "" {
		t.Fatalf("fields = %v", fields)
	}

	body := `{"title":"I-Day Oath","eventCategoryId":"` + strconv.Itoa(int(cat.ID)) +
		`","eventId":"` + strconv.Itoa(int(ev.ID)) + `","galleryPath":"/galleries/iday"}`
	w, resp = testutil.Do(t, adminRouter, http.MethodPost, "/api/v1/admin/gallery", body)
	if w.Code != http.StatusOK {
		t.Fatalf("create status = %d (%s)", w.Code, resp.Data)
	}
	g := testutil.Data[map[string]any](t, resp)
	galleryID := uint(g["id"].(float64))

	now := db.NowFunc()
	items := []domain.GalleryItem{
		{GalleryID: galleryID, Slug: "b", Title: "Second", ImageURL: "/uploads/b.jpg", SortOrder: 2, Status: true},
		{GalleryID: galleryID, Slug: "a", Title: "First", ImageURL: "/uploads/a.jpg", SortOrder: 1, Status: true},
		{GalleryID: galleryID, Slug: "hidden", Title: "Hidden", ImageURL: "/uploads/h.jpg", SortOrder: 0, Status: false},
		{GalleryID: galleryID, Slug: "gone", Title: "Gone", ImageURL: "/uploads/g.jpg", SortOrder: 0, Status: true,
			SoftDelete: domain.SoftDelete{DeletedAt: &now}},
	}
	if err := db.Create(&items).Error; err != nil {
		t.Fatalf("seed items: %v", err)
	}

	_, resp = testutil.Do(t, customerRouter, http.MethodGet, "/api/v1/users/gallery?eventId="+strconv.Itoa(int(ev.ID)), "")
	list := testutil.Data[[]map[string]any](t, resp)
	if len(list) != 1 {
		t.Fatalf("got %d galleries; want 1", len(list))
	}
	got := list[0]
	event, _ := got["event"].(map[string]any)
	if event["slug"] != "i-day" {
		t.Errorf("event = %v", got["event"])
	}
	category, _ := got["eventCategory"].(map[string]any)
	if category["name"] != "Plebe Summer" {
		t.Errorf("eventCategory = %v", got["eventCategory"])
	}
	gotItems, _ := got["items"].([]any)
	if len(gotItems) != 2 {
		t.Fatalf("items = %v; want the two visible ones", got["items"])
	}
	first := gotItems[0].(map[string]any)
	if first["title"] != "First" || first["imageUrl"] != "https://cdn.example.com/uploads/a.jpg" {
		t.Errorf("first item = %v", first)
	}

	_, resp = testutil.Do(t, customerRouter, http.MethodGet, "/api/v1/users/gallery?eventId=999", "")
	if list = testutil.Data[[]map[string]any](t, resp); len(list) != 0 {
		t.Errorf("filter by unknown event returned %d galleries", len(list))
	}

	w, _ = testutil.Do(t, customerRouter, http.MethodPost, "/api/v1/admin/gallery", body)
	if w.Code != http.StatusForbidden {
		t.Errorf("customer create status = %d; want 403", w.Code)
	}
}

func TestGallery_DestroyCascadesToItems(t *testing.T) {
	db := testutil.NewDB(t)
	admin := testutil.CreateUser(t, db, "Admin", "admin@example.com", domain.RoleAdmin)
	r := testutil.Router(admin)
	NewModule(db, "", nil).RegisterRoutes(r.Group("/api/v1"))

	g := domain.Gallery{Title: "Ring Dance", Slug: "ring-dance", Status: true}
	db.Create(&g)
	db.Create(&domain.GalleryItem{GalleryID: g.ID, Slug: "ring-1", ImageURL: "/uploads/r.jpg", Status: true})

	w, _ := testutil.Do(t, r, http.MethodDelete, "/api/v1/admin/gallery/ring-dance", "")
	if w.Code != http.StatusOK {
		t.Fatalf("destroy status = %d", w.Code)
	}
	var live int64
	db.Model(&domain.GalleryItem{}).Where("deleted_at IS NULL").Count(&live)
	if live != 0 {
		t.Fatalf("%d live items after gallery delete", live)
	}
}
