package category

import "errors"

var ErrNotFound = errors.New("category not found")

type Category struct {
	ID          int64
	Name        string
	Description string
}

type Params struct {
	Name        string
	Description string
}

type ListFilter struct {
	Search    string
	SortBy    string
	SortOrder string
}
