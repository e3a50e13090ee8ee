package catalog

import "errors"

var (
	ErrBookNotFound        = errors.New("book not found")
	ErrMasterclassNotFound = errors.New("masterclass not found")
	ErrStoreBookNotFound   = errors.New("store book not found")
	ErrInvalidAccessLevel  = errors.New("invalid access level")
)
