package query

import "gorm.io/gorm"

const DefaultLimit = 10

// Paginate returns a scope applying a zero based page and a page size.
// Nil values fall back to the first page and DefaultLimit.
func Paginate(page *int, limit *int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		l := DefaultLimit
		if limit != nil && *limit > 0 {
			l = *limit
		}

		p := 0
		if page != nil && *page > 0 {
			p = *page
		}

		return db.Offset(p * l).Limit(l)
	}
}
