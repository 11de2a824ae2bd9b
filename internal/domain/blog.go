package domain

// Blog is a published article.
type Blog struct {
	BaseModel
	SoftDelete
	Title          string `gorm:"size:200;not null" json:"title"`
	Slug           string `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	Description    string `gorm:"type:text" json:"description"`
	ImageURL       string `gorm:"size:255" json:"imageUrl"`
	SEOTitle       string `gorm:"size:255" json:"seoTitle"`
	SEODescription string `gorm:"size:500" json:"seoDescription"`
	Status         bool   `json:"status"`
}
