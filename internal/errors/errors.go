package errors

import "errors"

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrUnitNotFound    = errors.New("unit not found")
	ErrReservedUnitID  = errors.New("unit id is reserved")
	ErrInvalidBackup   = errors.New("invalid backup")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidMark     = errors.New("invalid attendance mark")
	ErrNotClassDay     = errors.New("date is not a class day")
	ErrEmptyRoster     = errors.New("no student names found")
	ErrValidation      = errors.New("validation failed")
)
