package repository

import "gorm.io/gorm"

// exists reports whether at least one row matches the query.
func exists(query *gorm.DB) (bool, error) {
	var count int64
	if err := query.Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
