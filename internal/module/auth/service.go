package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/pkg"
)

// Tokens is the part of TokenService the session flows depend on.
type Tokens interface {
	Issue(ctx context.Context, userID uint, client domain.ClientInfo) (string, error)
	IssueTx(ctx context.Context, tx *gorm.DB, userID uint, client domain.ClientInfo) (string, error)
	Revoke(ctx context.Context, userID uint) error
}

// UserRepositoryFunc opens a user repository on db or on a transaction.
type UserRepositoryFunc func(db *gorm.DB) domain.UserRepository

// Service defines the session operations.
type Service interface {
	Login(ctx context.Context, email, password string, client domain.ClientInfo) (*domain.User, string, error)
	Logout(ctx context.Context, userID uint) error
	ChangePassword(ctx context.Context, userID uint, current, next string, client domain.ClientInfo) (string, error)
}

// authService implements Service.
type authService struct {
	db      *gorm.DB
	users   domain.UserRepository
	usersTx UserRepositoryFunc
	tokens  Tokens
	cost    int
}

// NewService creates a new auth Service. Panics if db is nil.
func NewService(db *gorm.DB, users UserRepositoryFunc, tokens Tokens) Service {
	if db == nil {
		panic("auth.NewService: db must not be nil")
	}
	return &authService{
		db:      db,
		users:   users(db),
		usersTx: users,
		tokens:  tokens,
		cost:    bcrypt.DefaultCost,
	}
}

// Login checks the credentials and issues a fresh token, revoking any other
// session the user had.
func (s *authService) Login(ctx context.Context, email, password string, client domain.ClientInfo) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, "", domain.NewFieldError(domain.CodeBadRequest, "Invalid credentials",
				"login_error", "Credentials are not match in our records.")
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", domain.NewFieldError(domain.CodeBadRequest, "Invalid credentials",
			"password_error", "Password does not match.")
	}

	token, err := s.tokens.Issue(ctx, user.ID, client)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout revokes every token of the user.
func (s *authService) Logout(ctx context.Context, userID uint) error {
	return s.tokens.Revoke(ctx, userID)
}

// ChangePassword verifies the current password, then stores the new hash and
// issues a replacement token in one transaction.
func (s *authService) ChangePassword(ctx context.Context, userID uint, current, next string, client domain.ClientInfo) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return "", domain.NewValidationError(map[string]string{
			"currentPassword": "Current password is incorrect",
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.cost)
	if err != nil {
		return "", domain.NewAppError(domain.CodeInternal, "failed to hash password", err)
	}

	var token string
	err = pkg.WithTx(ctx, s.db, func(tx *gorm.DB) error {
		if err := s.usersTx(tx).UpdatePassword(ctx, userID, string(hash)); err != nil {
			return err
		}
		var err error
		token, err = s.tokens.IssueTx(ctx, tx, userID, client)
		return err
	})
	if err != nil {
		return "", err
	}
	return token, nil
}
