package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yukikurage/task-assignment-api/internal/database"
	"github.com/yukikurage/task-assignment-api/internal/query"
)

// defaultOrder keeps list results in insertion order when no sort is given.
// Version 7 ids are time ordered.
const defaultOrder = "id ASC"

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func listScope(q query.ListQuery) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Scopes(database.Filter(q.Where))
		if len(q.Order) > 0 {
			db = db.Scopes(database.Sort(q.Order))
		}
		return db.Order(defaultOrder).Scopes(database.Paginate(q.Skip, q.Limit))
	}
}

// countMatching counts the rows of model a list query would return. skip and
// limit are honored by counting over a subquery.
func countMatching(db *gorm.DB, model any, q query.ListQuery) (int64, error) {
	var count int64

	base := db.Model(model).Scopes(database.Filter(q.Where))
	if q.Skip == 0 && q.Limit == 0 {
		err := base.Count(&count).Error
		return count, err
	}

	sub := base.Select("id").Order(defaultOrder).Scopes(database.Paginate(q.Skip, q.Limit))
	err := db.Table("(?) AS matched", sub).Count(&count).Error
	return count, err
}
