package insuredevent

import "errors"

var (
	ErrNotFound           = errors.New("insured event not found")
	ErrIDRequired         = errors.New("insured event id is required")
	ErrInvalidID          = errors.New("invalid insured event id")
	ErrInvalidRegressFlag = errors.New("invalid regress flag")
)
