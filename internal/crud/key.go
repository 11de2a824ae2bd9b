package crud

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/middleware"
)

// Key identifies a single record by a unique column.
type Key struct {
	Column string
	Value  any
}

// IDKey addresses a record by primary key.
func IDKey(id uint) Key {
	return Key{Column: "id", Value: id}
}

// SlugKey addresses a record by its unique slug.
func SlugKey(slug string) Key {
	return Key{Column: "slug", Value: slug}
}

func (k Key) scope(db *gorm.DB) *gorm.DB {
	return db.Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: k.Column}, Value: k.Value})
}

// KeyFunc extracts the record key from a request.
type KeyFunc func(c *gin.Context) (Key, error)

// ByID reads a numeric id from the named path parameter. A non-numeric id
// cannot address any row and is reported as not found.
func ByID(param string) KeyFunc {
	return func(c *gin.Context) (Key, error) {
		id, err := strconv.ParseUint(c.Param(param), 10, 64)
		if err != nil || id == 0 {
			return Key{}, domain.ErrNotFound
		}
		return IDKey(uint(id)), nil
	}
}

// BySlug reads a slug from the named path parameter.
func BySlug(param string) KeyFunc {
	return func(c *gin.Context) (Key, error) {
		slug := c.Param(param)
		if slug == "" {
			return Key{}, domain.ErrNotFound
		}
		return SlugKey(slug), nil
	}
}

// Self addresses the authenticated caller's own record.
func Self() KeyFunc {
	return func(c *gin.Context) (Key, error) {
		identity := middleware.CurrentIdentity(c)
		if identity == nil {
			return Key{}, domain.ErrUnauthenticated
		}
		return IDKey(identity.ID), nil
	}
}
