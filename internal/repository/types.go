package repository

import (
	"gorm.io/gorm"

	"conn-hub/internal/core/paginate"
)

type QueryOption func(*gorm.DB) *gorm.DB

// WithPage 按解析后的分页参数排序并截取
func WithPage(page paginate.Page) QueryOption {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Order(page.OrderClause()).Offset(page.Offset)
		if page.Limit > 0 {
			db = db.Limit(page.Limit)
		}
		return db
	}
}

func applyOptions(db *gorm.DB, opts ...QueryOption) *gorm.DB {
	for _, opt := range opts {
		db = opt(db)
	}
	return db
}
