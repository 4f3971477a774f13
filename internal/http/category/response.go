package category

import "github.com/stockpile/backend/internal/category"

type categoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func toResponse(c *category.Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}

func toResponseList(categories []category.Category) []categoryResponse {
	resp := make([]categoryResponse, len(categories))
	for i := range categories {
		resp[i] = toResponse(&categories[i])
	}

	return resp
}
