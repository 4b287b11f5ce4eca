package domain

import "errors"

var (
	ErrItemNotFound        = errors.New("item not found")
	ErrClassifierRated     = errors.New("classifier rate limited")
	ErrClassifierDown      = errors.New("classifier unavailable")
	ErrClassifierNoContent = errors.New("classifier returned no content")
)
