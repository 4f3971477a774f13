package supplier

import "errors"

var ErrNotFound = errors.New("supplier not found")

type Supplier struct {
	ID          int64
	Name        string
	Email       string
	PhoneNumber string
}

type Params struct {
	Name        string
	Email       string
	PhoneNumber string
}

type ListFilter struct {
	Search    string
	SortBy    string
	SortOrder string
}
