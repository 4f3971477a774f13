package customer

import "github.com/stockpile/backend/internal/customer"

type customerResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

func toResponse(c *customer.Customer) customerResponse {
	return customerResponse{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
	}
}

func toResponseList(customers []customer.Customer) []customerResponse {
	resp := make([]customerResponse, len(customers))
	for i := range customers {
		resp[i] = toResponse(&customers[i])
	}

	return resp
}
