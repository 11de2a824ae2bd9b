package domain

// EventCategory groups events and galleries (e.g. "Plebe Summer").
type EventCategory struct {
	BaseModel
	SoftDelete
	Name        string `gorm:"size:150;not null" json:"name"`
	Slug        string `gorm:"size:170;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `gorm:"size:255" json:"imageUrl"`
	Status      bool   `json:"status"`
}

// EventCategoryFaq is a question and answer shown on a category page.
type EventCategoryFaq struct {
	BaseModel
	SoftDelete
	EventCategoryID uint   `gorm:"index;not null" json:"eventCategoryId"`
	Slug            string `gorm:"size:170;uniqueIndex;not null" json:"slug"`
	Question        string `gorm:"type:text;not null" json:"question"`
	Answer          string `gorm:"type:text;not null" json:"answer"`
	Status          bool   `json:"status"`

	EventCategory *EventCategory `json:"eventCategory,omitempty"`
}

// Event is a purchasable photo package. Price is kept as the display string
// entered by administrators and parsed at checkout.
type Event struct {
	BaseModel
	SoftDelete
	Title       string `gorm:"size:200;not null" json:"title"`
	Slug        string `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	CategoryID  uint   `gorm:"index;not null" json:"categoryId"`
	Price       string `gorm:"size:32;not null" json:"price"`
	ImageURL    string `gorm:"size:255" json:"imageUrl"`
	Description string `gorm:"type:text" json:"description"`
	IsManual    bool   `json:"is_manual"`
	IsFace      bool   `json:"is_face"`
	Status      bool   `json:"status"`

	Category *EventCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
