package checkout

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/payment"
	"github.com/simp-lee/photostore/internal/testutil"
)

const webhookSecret = "whsec_test_secret"

func uintString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func setupRouter(db *gorm.DB, caller *domain.User, provider payment.Provider, pub *fakePublisher) *gin.Engine {
	r := testutil.Router(caller)
	svc := newTestService(db, provider, pub)
	NewModule(NewHandler(svc, nil)).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func post(t *testing.T, r http.Handler, path, body string, header map[string]string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s: %v (body %q)", path, err, w.Body.String())
	}
	return w.Code, out
}

func TestCheckoutRoute(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com", domain.RoleUser)
	body := `{"cart":[{"id":"3","title":"Ring Dance","price":"$25.50","quantity":1}],"userId":` + uintString(alice.ID) + `}`

	r := setupRouter(db, alice, &fakeProvider{}, nil)
	code, out := post(t, r, "/api/v1/users/checkout", body, nil)
	if code != http.StatusOK || out["url"] != "https://checkout.example.com/cs_test_1" {
		t.Fatalf("checkout = %d %v", code, out)
	}

	code, out = post(t, r, "/api/v1/users/checkout", `{"cart":[]}`, nil)
	if code != http.StatusBadRequest || out["error"] != "Cart is empty" {
		t.Errorf("empty cart = %d %v", code, out)
	}
	if code, _ = post(t, r, "/api/v1/users/checkout", `{"cart":`, nil); code != http.StatusBadRequest {
		t.Errorf("malformed body = %d; want 400", code)
	}

	anon := setupRouter(db, nil, &fakeProvider{}, nil)
	code, out = post(t, anon, "/api/v1/users/checkout", body, nil)
	if code != http.StatusUnauthorized || out["error"] != "User not authenticated" {
		t.Errorf("anonymous checkout = %d %v", code, out)
	}
}

func stripePayload(t *testing.T, eventType, session string, metadata map[string]string, amount int64) []byte {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"id":     "evt_" + session,
		"object": "event",
		"type":   eventType,
		"data": map[string]any{"object": map[string]any{
			"id":           session,
			"object":       "checkout.session",
			"amount_total": amount,
			"metadata":     metadata,
		}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return payload
}

func TestWebhookRoute_StripeDeliveries(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com", domain.RoleUser)
	pub := &fakePublisher{}
	r := setupRouter(db, nil, payment.NewStripe("sk_test", webhookSecret, nil), pub)
	const path = "/api/v1/users/webhook/stripe"

	deliver := func(payload []byte, secret string) (int, map[string]any) {
		sig := testutil.StripeSignature(secret, payload, time.Now())
		return post(t, r, path, string(payload), map[string]string{"Stripe-Signature": sig})
	}

	paid := stripePayload(t, payment.EventCheckoutCompleted, "cs_live_1",
		map[string]string{"userId": uintString(alice.ID), "cart": paidCart}, 2550)

	if code, out := deliver(paid, "whsec_forged"); code != http.StatusBadRequest || out["error"] == nil {
		t.Fatalf("forged delivery = %d %v; want 400 with error", code, out)
	}

	for i := range 2 {
		code, out := deliver(paid, webhookSecret)
		if code != http.StatusOK || out["received"] != true {
			t.Fatalf("delivery %d = %d %v", i+1, code, out)
		}
	}

	other := stripePayload(t, "checkout.session.expired", "cs_live_2",
		map[string]string{"userId": uintString(alice.ID), "cart": paidCart}, 2550)
	if code, _ := deliver(other, webhookSecret); code != http.StatusOK {
		t.Errorf("other event = %d; want 200", code)
	}

	var orders []domain.Order
	db.Preload("Items").Find(&orders)
	if len(orders) != 1 || orders[0].StripeSessionID != "cs_live_1" || len(orders[0].Items) != 2 {
		t.Fatalf("orders = %+v; want exactly one for cs_live_1", orders)
	}
	if len(pub.published) != 1 {
		t.Errorf("published %d events; want 1", len(pub.published))
	}
}
