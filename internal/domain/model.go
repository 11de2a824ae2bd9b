package domain

import "time"

// BaseModel is the common base struct for all domain models.
// It replaces gorm.Model to avoid the implicit soft delete behavior of DeletedAt.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PrimaryKey returns the row id.
func (m BaseModel) PrimaryKey() uint {
	return m.ID
}

// SetPrimaryKey overwrites the row id. Zero means "not yet inserted".
func (m *BaseModel) SetPrimaryKey(id uint) {
	m.ID = id
}

// SoftDelete marks a row as deleted without removing it. Reads must filter on
// deleted_at explicitly; nothing is hidden implicitly.
type SoftDelete struct {
	DeletedAt *time.Time `gorm:"index" json:"-"`
}

// IsDeleted reports whether the row has been soft deleted.
func (s SoftDelete) IsDeleted() bool {
	return s.DeletedAt != nil
}

// PageRequest holds pagination and sorting parameters for list queries.
// Paged is false when the client did not ask for a page; lists are then unbounded.
type PageRequest struct {
	Paged    bool
	Page     int
	PageSize int
	Sort     string
}

// Models returns every persisted model, in dependency order, for AutoMigrate.
func Models() []any {
	return []any{
		&UserRole{},
		&User{},
		&UserAPIToken{},
		&UserAddress{},
		&EventCategory{},
		&EventCategoryFaq{},
		&Event{},
		&Gallery{},
		&GalleryItem{},
		&Blog{},
		&Order{},
		&OrderItem{},
	}
}
