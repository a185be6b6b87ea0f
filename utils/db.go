package utils

import (
	"errors"

	"gorm.io/gorm"
)

// Paginate is a gorm scope applying limit/offset.
func Paginate(p Pagination) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.Limit)
	}
}

// IsDuplicateKey reports a unique index violation. The DB must be opened with
// TranslateError enabled.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// NotFoundOr maps gorm's not-found error to an AppError and passes other
// errors through.
func NotFoundOr(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(format, args...)
	}
	return err
}
