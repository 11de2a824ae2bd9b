package domain

import (
	"context"
	"time"
)

// Fixed role ids created by the seed command.
const (
	RoleAdmin uint = 1
	RoleUser  uint = 2
)

// UserType distinguishes administrators from customers.
type UserType string

const (
	UserTypeAdmin UserType = "ADMIN"
	UserTypeUser  UserType = "USER"
)

// UserRole is the role a user belongs to.
type UserRole struct {
	BaseModel
	Title        string   `gorm:"size:100;not null" json:"title"`
	Slug         string   `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Description  string   `gorm:"size:255" json:"description"`
	Type         UserType `gorm:"size:20;not null;default:USER" json:"type"`
	IsSuperAdmin bool     `json:"isSuperAdmin"`
	Status       bool     `json:"status"`
}

// User represents an account, either a customer or an administrator.
type User struct {
	BaseModel
	SoftDelete
	Name          string     `gorm:"size:100;not null" json:"name"`
	Username      string     `gorm:"size:120" json:"username"`
	Slug          string     `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Email         string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password      string     `gorm:"size:255" json:"-"`
	UserGroupID   uint       `gorm:"index;not null;default:2" json:"userGroupId"`
	UserType      UserType   `gorm:"size:20;not null;default:USER" json:"userType"`
	Gender        string     `gorm:"size:20" json:"gender"`
	MobileNumber  string     `gorm:"size:30" json:"mobileNumber"`
	DOB           *time.Time `json:"dob"`
	Status        bool       `json:"status"`
	ImageURL      string     `gorm:"size:255" json:"imageUrl"`
	IsEmailVerify bool       `json:"isEmailVerify"`
	ProfileType   string     `gorm:"size:20;default:PUBLIC" json:"profileType"`

	Role      *UserRole      `gorm:"foreignKey:UserGroupID" json:"role,omitempty"`
	APITokens []UserAPIToken `gorm:"foreignKey:UserID" json:"-"`
}

// IsAdmin reports whether the user belongs to the administrator role.
func (u *User) IsAdmin() bool {
	return u != nil && u.UserGroupID == RoleAdmin
}

// UserAPIToken is an issued session token. A user holds at most one.
type UserAPIToken struct {
	BaseModel
	UserID     uint      `gorm:"uniqueIndex;not null" json:"userId"`
	APIToken   string    `gorm:"size:512;uniqueIndex;not null" json:"-"`
	DeviceType string    `gorm:"size:20" json:"deviceType"`
	IPAddress  string    `gorm:"size:64" json:"ipAddress"`
	UserAgent  string    `gorm:"size:255" json:"userAgent"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// UserAddress is a postal address owned by a user.
type UserAddress struct {
	BaseModel
	SoftDelete
	UserID       uint   `gorm:"index;not null" json:"userId"`
	AddressLine1 string `gorm:"size:255;not null" json:"addressLine1"`
	AddressLine2 string `gorm:"size:255" json:"addressLine2"`
	City         string `gorm:"size:100;not null" json:"city"`
	State        string `gorm:"size:100;not null" json:"state"`
	Country      string `gorm:"size:100;not null" json:"country"`
	PostalCode   string `gorm:"size:20;not null" json:"postalCode"`
}

// Identity is the authenticated caller attached to a request.
type Identity struct {
	ID     uint
	RoleID uint
	Email  string
}

// IsAdmin reports whether the identity carries the administrator role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.RoleID == RoleAdmin
}

// ClientInfo describes the client a session token is issued to.
type ClientInfo struct {
	DeviceType string
	IPAddress  string
	UserAgent  string
}

// UserRepository is the account lookup used by the session layer. Every
// method sees live (not soft deleted) users only.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uint, hash string) error
}
