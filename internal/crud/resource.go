package crud

import "github.com/gin-gonic/gin"

// Resource converts a stored record into its client-facing shape.
type Resource[T any] interface {
	Item(rec *T) gin.H
}

// ResourceFunc adapts a plain function to Resource.
type ResourceFunc[T any] func(rec *T) gin.H

// Item implements Resource.
func (f ResourceFunc[T]) Item(rec *T) gin.H {
	return f(rec)
}

// Collection maps r over recs. It never returns nil so empty lists encode as [].
func Collection[T any](r Resource[T], recs []T) []gin.H {
	out := make([]gin.H, 0, len(recs))
	for i := range recs {
		out = append(out, r.Item(&recs[i]))
	}
	return out
}
