package crud

import (
	"log/slog"
	"maps"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/middleware"
	"github.com/simp-lee/photostore/internal/pkg"
)

// Response messages shared by every entity.
const (
	MsgList   = "Records fetched successfully"
	MsgCreate = "Record created successfully"
	MsgShow   = "Record fetched successfully"
	MsgUpdate = "Record updated successfully"
	MsgDelete = "Record deleted successfully"
)

// Input is a bound and validated request body that knows how to apply itself
// to a record.
type Input[T any] interface {
	Apply(rec *T)
}

// Definition plugs an entity into the generic controller.
type Definition[T any] struct {
	Name       string
	Query      QueryHook
	Hooks      Lifecycle[T]
	Resource   Resource[T]
	NewCreate  func() Input[T]
	NewUpdate  func() Input[T]
	SortFields []string
}

// Controller implements list, create, show, update and destroy for T.
type Controller[T any] struct {
	db     *gorm.DB
	def    Definition[T]
	repo   *Repository[T]
	logger *slog.Logger
}

type primaryKeyed interface {
	PrimaryKey() uint
	SetPrimaryKey(id uint)
}

// NewController creates a Controller for def.
// Panics if db, def.Query or def.Resource is nil.
func NewController[T any](db *gorm.DB, def Definition[T], logger *slog.Logger) *Controller[T] {
	if db == nil {
		panic("crud.NewController: db must not be nil")
	}
	if def.Query == nil || def.Resource == nil {
		panic("crud.NewController: " + def.Name + " needs a query hook and a resource")
	}
	if def.Hooks == nil {
		def.Hooks = NopLifecycle[T]{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller[T]{
		db:     db,
		def:    def,
		repo:   NewRepository[T](db),
		logger: logger.With(slog.String("resource", def.Name)),
	}
}

// Repository exposes the underlying data store.
func (ctl *Controller[T]) Repository() *Repository[T] {
	return ctl.repo
}

func (ctl *Controller[T]) hookContext(c *gin.Context) *HookContext {
	ctx := c.Request.Context()
	return &HookContext{
		Ctx:       ctx,
		DB:        ctl.db.WithContext(ctx),
		Identity:  middleware.CurrentIdentity(c),
		User:      middleware.CurrentUser(c),
		Query:     c.Request.URL.Query(),
		Header:    c.Request.Header,
		Params:    c.Params,
		Method:    c.Request.Method,
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// showScope is the read path shared by show and the re-fetch after writes.
func (ctl *Controller[T]) showScope(hc *HookContext) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return ctl.def.Query.Show(db, hc)
	}
}

func (ctl *Controller[T]) fetch(hc *HookContext, key Key) (*T, error) {
	return ctl.repo.WithTx(hc.DB).FindOne(hc.Ctx, key, ctl.showScope(hc))
}

// List handles GET on the collection.
func (ctl *Controller[T]) List(c *gin.Context) {
	hc := ctl.hookContext(c)
	if err := ctl.def.Hooks.BeforeList(hc); err != nil {
		ctl.fail(c, err)
		return
	}

	page := pkg.ParsePageRequest(hc.Query)
	recs, err := ctl.repo.FindMany(hc.Ctx, func(db *gorm.DB) *gorm.DB {
		if sort, ok := pkg.Sort(page, ctl.def.SortFields); ok {
			db = sort(db)
		}
		db = ctl.def.Query.Index(db, hc)
		return pkg.Paginate(page)(db)
	})
	if err != nil {
		ctl.fail(c, err)
		return
	}

	if recs, err = ctl.def.Hooks.AfterList(hc, recs); err != nil {
		ctl.fail(c, err)
		return
	}

	pkg.Success(c, MsgList, Collection(ctl.def.Resource, recs))
}

// Create handles POST on the collection.
func (ctl *Controller[T]) Create(c *gin.Context) {
	if ctl.def.NewCreate == nil {
		ctl.fail(c, domain.ErrNotFound)
		return
	}
	in := ctl.def.NewCreate()
	if err := pkg.Bind(c, in); err != nil {
		ctl.fail(c, err)
		return
	}

	hc := ctl.hookContext(c)
	var created *T
	err := pkg.WithTx(hc.Ctx, ctl.db, func(tx *gorm.DB) error {
		hc.DB = tx

		rec := new(T)
		in.Apply(rec)
		if err := ctl.def.Hooks.BeforeCreate(hc, rec); err != nil {
			return err
		}
		if stamper, ok := ctl.def.Query.(CreateStamper[T]); ok {
			stamper.StampCreate(hc, rec)
		}

		pk, ok := any(rec).(primaryKeyed)
		if ok {
			pk.SetPrimaryKey(0)
		}
		repo := ctl.repo.WithTx(tx)
		if err := repo.Create(hc.Ctx, rec); err != nil {
			return err
		}
		if !ok {
			created = rec
			return ctl.def.Hooks.AfterCreate(hc, rec)
		}

		fetched, err := ctl.fetch(hc, IDKey(pk.PrimaryKey()))
		if err != nil {
			return err
		}
		if err := ctl.def.Hooks.AfterCreate(hc, fetched); err != nil {
			return err
		}
		created = fetched
		return nil
	})
	if err != nil {
		ctl.fail(c, err)
		return
	}

	ctl.respond(c, hc, MsgCreate, created)
}

// Show returns a handler that fetches one record addressed by keyFn.
func (ctl *Controller[T]) Show(keyFn KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := keyFn(c)
		if err != nil {
			ctl.fail(c, err)
			return
		}

		hc := ctl.hookContext(c)
		if err := ctl.def.Hooks.BeforeShow(hc, key); err != nil {
			ctl.fail(c, err)
			return
		}

		rec, err := ctl.fetch(hc, key)
		if err != nil {
			ctl.fail(c, err)
			return
		}
		if err := ctl.def.Hooks.AfterShow(hc, rec); err != nil {
			ctl.fail(c, err)
			return
		}

		ctl.respond(c, hc, MsgShow, rec)
	}
}

// Update returns a handler that applies a partial update to the live record
// addressed by keyFn and responds with the re-fetched record.
func (ctl *Controller[T]) Update(keyFn KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ctl.def.NewUpdate == nil {
			ctl.fail(c, domain.ErrNotFound)
			return
		}
		key, err := keyFn(c)
		if err != nil {
			ctl.fail(c, err)
			return
		}
		in := ctl.def.NewUpdate()
		if err := pkg.Bind(c, in); err != nil {
			ctl.fail(c, err)
			return
		}

		hc := ctl.hookContext(c)
		var updated *T
		err = pkg.WithTx(hc.Ctx, ctl.db, func(tx *gorm.DB) error {
			hc.DB = tx
			repo := ctl.repo.WithTx(tx)

			rec, err := repo.FindLive(hc.Ctx, key)
			if err != nil {
				return err
			}
			in.Apply(rec)
			if err := ctl.def.Hooks.BeforeUpdate(hc, rec); err != nil {
				return err
			}
			if err := repo.Save(hc.Ctx, rec); err != nil {
				return err
			}

			refetchKey := key
			if pk, ok := any(rec).(primaryKeyed); ok {
				refetchKey = IDKey(pk.PrimaryKey())
			}
			fetched, err := ctl.fetch(hc, refetchKey)
			if err != nil {
				return err
			}
			if err := ctl.def.Hooks.AfterUpdate(hc, fetched); err != nil {
				return err
			}
			updated = fetched
			return nil
		})
		if err != nil {
			ctl.fail(c, err)
			return
		}

		ctl.respond(c, hc, MsgUpdate, updated)
	}
}

// Destroy returns a handler that soft deletes the live record addressed by keyFn.
func (ctl *Controller[T]) Destroy(keyFn KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := keyFn(c)
		if err != nil {
			ctl.fail(c, err)
			return
		}

		hc := ctl.hookContext(c)
		err = pkg.WithTx(hc.Ctx, ctl.db, func(tx *gorm.DB) error {
			hc.DB = tx
			repo := ctl.repo.WithTx(tx)

			rec, err := repo.FindLive(hc.Ctx, key)
			if err != nil {
				return err
			}
			if err := ctl.def.Hooks.BeforeDestroy(hc, rec); err != nil {
				return err
			}
			if err := repo.SoftDelete(hc.Ctx, key); err != nil {
				return err
			}
			return ctl.def.Hooks.AfterDestroy(hc, rec)
		})
		if err != nil {
			ctl.fail(c, err)
			return
		}

		pkg.Success(c, MsgDelete, gin.H{})
	}
}

func (ctl *Controller[T]) respond(c *gin.Context, hc *HookContext, message string, rec *T) {
	data := ctl.def.Resource.Item(rec)
	if len(hc.Extra) > 0 {
		if data == nil {
			data = gin.H{}
		}
		maps.Copy(data, hc.Extra)
	}
	pkg.Success(c, message, data)
}

func (ctl *Controller[T]) fail(c *gin.Context, err error) {
	if status := domain.HTTPStatusCode(err); status >= 500 {
		ctl.logger.ErrorContext(c.Request.Context(), "request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
		)
	}
	pkg.Error(c, err)
}
