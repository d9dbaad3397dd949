package daystatus

import "errors"

var (
	ErrDayStatusNotFound  = errors.New("day status not found")
	ErrInvalidOverride    = errors.New("invalid manual override")
	ErrOverrideNotPresent = errors.New("no manual override exists for this employee and date")
)
