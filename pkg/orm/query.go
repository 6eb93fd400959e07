// Package orm is a thin query helper over GORM. It adds the pieces the
// storefront leans on everywhere: pagination metadata, a redis-backed
// read-through cache, row locking for check-then-decrement stock updates,
// and transaction plumbing.
package orm

import (
	"math"
	"time"

	"github.com/shashiranjanraj/novamarket/pkg/cache"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Pagination describes one page of a larger result set.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Query wraps a *gorm.DB. The zero value is not usable; build one with New.
type Query struct {
	db *gorm.DB
}

// New wraps db. Repositories receive the handle at construction time so
// tests can hand them an in-memory SQLite database.
func New(db *gorm.DB) *Query {
	return &Query{db: db}
}

// Gorm exposes the underlying handle for the rare call the wrapper does
// not cover.
func (q *Query) Gorm() *gorm.DB {
	return q.db
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Order(value interface{}) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Limit(n int) *Query {
	return &Query{db: q.db.Limit(n)}
}

func (q *Query) Preload(assoc string, args ...interface{}) *Query {
	return &Query{db: q.db.Preload(assoc, args...)}
}

func (q *Query) Joins(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Joins(query, args...)}
}

// LockForUpdate takes row locks on the matched rows (SELECT ... FOR UPDATE)
// so a concurrent transaction cannot read the same stock value before this
// one commits. SQLite has no row locks — its single-writer database lock
// already serialises the competing transactions — so the clause is skipped
// there to keep the SQL valid.
func (q *Query) LockForUpdate() *Query {
	if q.db.Dialector.Name() == "sqlite" {
		return q
	}
	return &Query{db: q.db.Clauses(clause.Locking{Strength: "UPDATE"})}
}

func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}, conds ...interface{}) error {
	return q.db.First(dest, conds...).Error
}

func (q *Query) Count(n *int64) error {
	return q.db.Count(n).Error
}

func (q *Query) Create(value interface{}) error {
	return q.db.Create(value).Error
}

func (q *Query) Save(value interface{}) error {
	return q.db.Save(value).Error
}

func (q *Query) Delete(value interface{}, conds ...interface{}) error {
	return q.db.Delete(value, conds...).Error
}

// GetWithPagination fills dest with one page of results and returns the
// page metadata. page and limit are clamped to sane values.
func (q *Query) GetWithPagination(dest interface{}, page, limit int) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	var total int64
	if err := q.db.Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	offset := (page - 1) * limit
	if err := q.db.Offset(offset).Limit(limit).Find(dest).Error; err != nil {
		return Pagination{}, err
	}

	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// Transaction runs fn inside a database transaction. A returned error
// rolls everything back.
func (q *Query) Transaction(fn func(tx *gorm.DB) error) error {
	return q.db.Transaction(fn)
}

// Cache is a read-through cache: on a hit dest is filled from redis, on a
// miss the query runs and the result is stored under key for ttl.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		return nil
	}

	if err := q.db.Find(dest).Error; err != nil {
		return err
	}

	cache.Set(key, dest, ttl)
	return nil
}
