package database

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/project-management-api/internal/utils"
)

// Paginate applies the offset and limit of params.
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// OrderBy sorts on a single column, using the primary key as a tiebreaker so
// that pages stay stable.
func OrderBy(table, column string, desc bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Order(clause.OrderByColumn{Column: clause.Column{Table: table, Name: column}, Desc: desc}).
			Order(clause.OrderByColumn{Column: clause.Column{Table: table, Name: "id"}})
	}
}
