package domain

// Gallery is a set of photographs, optionally tied to a category and an event.
type Gallery struct {
	BaseModel
	SoftDelete
	EventCategoryID *uint  `gorm:"index" json:"eventCategoryId"`
	EventID         *uint  `gorm:"index" json:"eventId"`
	Title           string `gorm:"size:200;not null" json:"title"`
	Slug            string `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	Description     string `gorm:"type:text" json:"description"`
	ImageURL        string `gorm:"size:255" json:"imageUrl"`
	GalleryPath     string `gorm:"size:255" json:"galleryPath"`
	Status          bool   `json:"status"`

	EventCategory *EventCategory `json:"eventCategory,omitempty"`
	Event         *Event         `json:"event,omitempty"`
	Items         []GalleryItem  `json:"items,omitempty"`
}

// GalleryItem is a single photograph in a gallery.
type GalleryItem struct {
	BaseModel
	SoftDelete
	GalleryID   uint   `gorm:"index;not null" json:"galleryId"`
	Title       string `gorm:"size:200" json:"title"`
	Slug        string `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `gorm:"size:255;not null" json:"imageUrl"`
	SortOrder   int    `gorm:"default:0" json:"sortOrder"`
	Status      bool   `json:"status"`

	Gallery *Gallery `json:"gallery,omitempty"`
}

// GallerySummary is a gallery with its count of visible images.
type GallerySummary struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	TotalImages int64  `json:"total_images"`
}
