package customer

import "errors"

var ErrNotFound = errors.New("customer not found")

type Customer struct {
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
