package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/simp-lee/photostore/internal/crud"
	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/pkg"
)

// DefaultTokenExpiry is used when no expiry is configured.
const DefaultTokenExpiry = 7 * 24 * time.Hour

// Claims is the signed payload of a session token.
type Claims struct {
	UserID uint `json:"id"`
	jwt.RegisteredClaims
}

// TokenService issues and resolves session tokens. A token is only honoured
// while its row in user_api_tokens exists, so issuing a new token for a user
// invalidates the previous one.
type TokenService struct {
	db     *gorm.DB
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService signing with secret.
// Panics if db is nil or secret is empty.
func NewTokenService(db *gorm.DB, secret string, expiry time.Duration) *TokenService {
	if db == nil {
		panic("auth.NewTokenService: db must not be nil")
	}
	if secret == "" {
		panic("auth.NewTokenService: secret must not be empty")
	}
	if expiry <= 0 {
		expiry = DefaultTokenExpiry
	}
	return &TokenService{db: db, secret: []byte(secret), expiry: expiry, now: time.Now}
}

// Expiry returns the lifetime of issued tokens.
func (s *TokenService) Expiry() time.Duration {
	return s.expiry
}

// Issue signs a new token for userID, replacing any token the user holds.
func (s *TokenService) Issue(ctx context.Context, userID uint, client domain.ClientInfo) (string, error) {
	var token string
	err := pkg.WithTx(ctx, s.db, func(tx *gorm.DB) error {
		var err error
		token, err = s.IssueTx(ctx, tx, userID, client)
		return err
	})
	return token, err
}

// IssueTx is Issue within the caller's transaction.
func (s *TokenService) IssueTx(ctx context.Context, tx *gorm.DB, userID uint, client domain.ClientInfo) (string, error) {
	now := s.now()
	expiresAt := now.Add(s.expiry)
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", domain.NewAppError(domain.CodeInternal, "failed to sign token", err)
	}

	if client.DeviceType == "" {
		client.DeviceType = "web"
	}
	row := domain.UserAPIToken{
		UserID:     userID,
		APIToken:   signed,
		DeviceType: client.DeviceType,
		IPAddress:  client.IPAddress,
		UserAgent:  client.UserAgent,
		ExpiresAt:  expiresAt,
	}

	// user_id is unique, so concurrent issues for one user converge on a
	// single row holding whichever token was written last.
	err = tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(&row).Error
	if err != nil {
		return "", crud.MapError(err)
	}
	return signed, nil
}

// Revoke deletes every token held by userID.
func (s *TokenService) Revoke(ctx context.Context, userID uint) error {
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.UserAPIToken{}).Error
	return crud.MapError(err)
}

// Resolve returns the live user a token was issued to. A bad signature, an
// expired token, a revoked token and a deleted user all yield
// domain.ErrUnauthenticated.
func (s *TokenService) Resolve(ctx context.Context, raw string) (*domain.User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid || claims.UserID == 0 {
		return nil, domain.ErrUnauthenticated
	}

	db := s.db.WithContext(ctx)
	var row domain.UserAPIToken
	err = db.Where("api_token = ? AND user_id = ?", raw, claims.UserID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUnauthenticated
	}
	if err != nil {
		return nil, crud.MapError(err)
	}
	if !row.ExpiresAt.After(s.now()) {
		return nil, domain.ErrUnauthenticated
	}

	var user domain.User
	err = crud.NotDeleted(db.Model(&domain.User{})).Preload("Role").Where("id = ?", claims.UserID).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUnauthenticated
	}
	if err != nil {
		return nil, crud.MapError(err)
	}
	return &user, nil
}
