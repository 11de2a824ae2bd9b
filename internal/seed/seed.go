// Package seed loads the roles, the super administrator and the starter
// catalogue into an empty database. Every step matches on slug or email and
// leaves existing rows untouched, so it can be run repeatedly.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/pkg"
)

// Admin describes the super administrator account.
type Admin struct {
	Name     string
	Email    string
	Password string
}

// DefaultAdmin is the account created when no other is given.
var DefaultAdmin = Admin{
	Name:     "Super Admin",
	Email:    "admin@thornton.com",
	Password: "Admin@123",
}

// Result counts the rows inserted by Run.
type Result struct {
	Roles      int
	Users      int
	Categories int
	Events     int
	FAQs       int
}

// Run seeds db inside a single transaction.
func Run(ctx context.Context, db *gorm.DB, admin Admin, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if admin.Email == "" || admin.Password == "" {
		admin = DefaultAdmin
	}

	var res Result
	err := pkg.WithTx(ctx, db, func(tx *gorm.DB) error {
		steps := []func(*gorm.DB, *Result) error{
			seedRoles,
			func(tx *gorm.DB, r *Result) error { return seedAdmin(tx, r, admin) },
			seedCatalogue,
		}
		for _, step := range steps {
			if err := step(tx, &res); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	logger.InfoContext(ctx, "seed completed",
		slog.Int("roles", res.Roles),
		slog.Int("users", res.Users),
		slog.Int("categories", res.Categories),
		slog.Int("events", res.Events),
		slog.Int("faqs", res.FAQs),
	)
	return res, nil
}

// firstOrCreate inserts rec unless a row matching where already exists, in
// which case rec is loaded from that row. created reports an insert.
func firstOrCreate[T any](tx *gorm.DB, rec *T, where string, arg any) (created bool, err error) {
	err = tx.Where(where, arg).First(rec).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if err := tx.Create(rec).Error; err != nil {
		return false, err
	}
	return true, nil
}

func seedRoles(tx *gorm.DB, r *Result) error {
	roles := []domain.UserRole{
		{
			BaseModel:    domain.BaseModel{ID: domain.RoleAdmin},
			Title:        "Administrator",
			Slug:         "admin",
			Description:  "Full system access",
			Type:         domain.UserTypeAdmin,
			IsSuperAdmin: true,
			Status:       true,
		},
		{
			BaseModel:   domain.BaseModel{ID: domain.RoleUser},
			Title:       "User",
			Slug:        "user",
			Description: "Regular user access",
			Type:        domain.UserTypeUser,
			Status:      true,
		},
	}
	for i := range roles {
		created, err := firstOrCreate(tx, &roles[i], "slug = ?", roles[i].Slug)
		if err != nil {
			return fmt.Errorf("seed role %s: %w", roles[i].Slug, err)
		}
		if created {
			r.Roles++
		}
	}
	return nil
}

func seedAdmin(tx *gorm.DB, r *Result, admin Admin) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	slug := pkg.Slugify(admin.Name)
	user := domain.User{
		Name:          admin.Name,
		Username:      slug,
		Slug:          slug,
		Email:         admin.Email,
		Password:      string(hash),
		UserGroupID:   domain.RoleAdmin,
		UserType:      domain.UserTypeAdmin,
		Gender:        "MALE",
		ProfileType:   "PUBLIC",
		Status:        true,
		IsEmailVerify: true,
	}
	created, err := firstOrCreate(tx, &user, "email = ?", admin.Email)
	if err != nil {
		return fmt.Errorf("seed admin %s: %w", admin.Email, err)
	}
	if created {
		r.Users++
	}
	return nil
}

func seedCatalogue(tx *gorm.DB, r *Result) error {
	for _, c := range categories {
		rec := domain.EventCategory{
			Name:        c.name,
			Slug:        c.slug,
			Description: c.description,
			ImageURL:    c.image,
			Status:      true,
		}
		created, err := firstOrCreate(tx, &rec, "slug = ?", c.slug)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", c.slug, err)
		}
		if created {
			r.Categories++
		}

		for _, e := range c.events {
			ev := domain.Event{
				Title:       e.title,
				Slug:        e.slug,
				CategoryID:  rec.ID,
				Price:       e.price,
				Description: e.description,
				Status:      true,
			}
			created, err := firstOrCreate(tx, &ev, "slug = ?", e.slug)
			if err != nil {
				return fmt.Errorf("seed event %s: %w", e.slug, err)
			}
			if created {
				r.Events++
			}
		}

		for _, f := range c.faqs {
			faq := domain.EventCategoryFaq{
				EventCategoryID: rec.ID,
				Slug:            pkg.Slugify(f.question),
				Question:        f.question,
				Answer:          f.answer,
				Status:          true,
			}
			created, err := firstOrCreate(tx, &faq, "slug = ?", faq.Slug)
			if err != nil {
				return fmt.Errorf("seed faq %s: %w", faq.Slug, err)
			}
			if created {
				r.FAQs++
			}
		}
	}
	return nil
}
