package models

import "errors"

var (
	ErrTooFewOptions          = errors.New("question needs at least two options")
	ErrCorrectIndexOutOfRange = errors.New("correct option index out of range")
	ErrPointsOutOfRange       = errors.New("question points must be between 1 and 10")
)
