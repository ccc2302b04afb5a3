package database

import (
	"math"
	"strings"

	"github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

// Filter applies a squirrel condition as a WHERE clause. A nil or empty
// condition leaves the query untouched.
func Filter(cond squirrel.Sqlizer) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if cond == nil {
			return db
		}
		sql, args, err := cond.ToSql()
		if err != nil {
			_ = db.AddError(err)
			return db
		}
		if sql == "" {
			return db
		}
		return db.Where(sql, args...)
	}
}

// Sort applies ORDER BY expressions of the form "column ASC|DESC".
func Sort(order []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(order) == 0 {
			return db
		}
		return db.Order(strings.Join(order, ", "))
	}
}

// Paginate applies skip and limit. Zero means no skip and no limit.
func Paginate(skip, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if skip > 0 {
			db = db.Offset(skip)
			// MySQL rejects OFFSET without LIMIT.
			if limit == 0 {
				limit = math.MaxInt32
			}
		}
		if limit > 0 {
			db = db.Limit(limit)
		}
		return db
	}
}
