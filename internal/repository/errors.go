package repository

import "errors"

var (
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrTableNotFound    = errors.New("table not found")
	ErrOrderNotFound    = errors.New("order not found")
)
