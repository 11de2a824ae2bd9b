package user

import (
	"context"
	"testing"
	"time"

	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/testutil"
)

func TestGetByID(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com", domain.RoleUser)

	got, err := repo.GetByID(ctx, alice.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Email != "alice@example.com" {
		t.Errorf("Email = %q", got.Email)
	}
	if got.Role == nil || got.Role.ID != domain.RoleUser {
		t.Errorf("role not preloaded: %+v", got.Role)
	}

	if _, err := repo.GetByID(ctx, 999); !domain.IsNotFound(err) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetByEmail_NormalizesAndSkipsDeleted(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com", domain.RoleUser)

	got, err := repo.GetByEmail(ctx, "  Alice@Example.com ")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != alice.ID {
		t.Errorf("ID = %d; want %d", got.ID, alice.ID)
	}

	db.Model(&domain.User{}).Where("id = ?", alice.ID).Update("deleted_at", time.Now())
	if _, err := repo.GetByEmail(ctx, "alice@example.com"); !domain.IsNotFound(err) {
		t.Errorf("deleted user should not be found, got %v", err)
	}
}

func TestEmailTaken(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com", domain.RoleUser)
	db.Model(&domain.User{}).Where("id = ?", alice.ID).Update("deleted_at", time.Now())

	tests := []struct {
		email string
		want  bool
	}{
		{"alice@example.com", true},
		{"ALICE@example.com", true},
		{"bob@example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			got, err := repo.EmailTaken(ctx, tt.email)
			if err != nil {
				t.Fatalf("EmailTaken: %v", err)
			}
			if got != tt.want {
				t.Errorf("EmailTaken(%q) = %v; want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestUpdatePassword(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com", domain.RoleUser)

	if err := repo.UpdatePassword(ctx, alice.ID, "new-hash"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	var stored domain.User
	db.First(&stored, alice.ID)
	if stored.Password != "new-hash" {
		t.Errorf("Password = %q; want new-hash", stored.Password)
	}

	if err := repo.UpdatePassword(ctx, 999, "x"); !domain.IsNotFound(err) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
