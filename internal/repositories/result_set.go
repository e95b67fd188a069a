package repository

import (
	"context"

	"gorm.io/gorm"
)

// ResultSet is a query that has not been run yet. Every All or Count call
// executes it again against the current contents of the store, so one
// ResultSet can be counted and listed any number of times.
type ResultSet[T any] struct {
	db       *gorm.DB
	preloads []string
}

func newResultSet[T any](db *gorm.DB, preloads ...string) *ResultSet[T] {
	return &ResultSet[T]{db: db.Session(&gorm.Session{}), preloads: preloads}
}

// Where narrows the set; r itself is left unchanged.
func (r *ResultSet[T]) Where(query any, args ...any) *ResultSet[T] {
	return &ResultSet[T]{
		db:       r.db.Where(query, args...).Session(&gorm.Session{}),
		preloads: r.preloads,
	}
}

func (r *ResultSet[T]) All(ctx context.Context) ([]T, error) {
	q := r.db.WithContext(ctx)
	for _, p := range r.preloads {
		q = q.Preload(p)
	}

	items := []T{}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ResultSet[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Count(&n).Error
	return n, err
}
