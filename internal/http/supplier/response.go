package supplier

import "github.com/stockpile/backend/internal/supplier"

type supplierResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

func toResponse(s *supplier.Supplier) supplierResponse {
	return supplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		Email:       s.Email,
		PhoneNumber: s.PhoneNumber,
	}
}

func toResponseList(suppliers []supplier.Supplier) []supplierResponse {
	resp := make([]supplierResponse, len(suppliers))
	for i := range suppliers {
		resp[i] = toResponse(&suppliers[i])
	}

	return resp
}
