package pkg

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

const maxSlugAttempts = 1000

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s, collapses every run of non-alphanumeric characters into
// a single hyphen and trims leading and trailing hyphens.
func Slugify(s string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	return strings.Trim(slug, "-")
}

// UniqueSlug derives a slug from source that is not yet used in model's table.
// The plain slug is preferred; on collision "-2", "-3", ... are tried in order.
// Soft-deleted rows still hold their slug. excludeID skips the row being updated.
func UniqueSlug(db *gorm.DB, model any, source string, excludeID uint) (string, error) {
	base := Slugify(source)
	if base == "" {
		base = "item"
	}

	for n := 1; n <= maxSlugAttempts; n++ {
		candidate := base
		if n > 1 {
			candidate = fmt.Sprintf("%s-%d", base, n)
		}

		q := db.Session(&gorm.Session{NewDB: true}).Model(model).Where("slug = ?", candidate)
		if excludeID > 0 {
			q = q.Where("id <> ?", excludeID)
		}

		var count int64
		if err := q.Count(&count).Error; err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if count == 0 {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no free slug for %q after %d attempts", base, maxSlugAttempts)
}
