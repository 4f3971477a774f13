package stats

import "github.com/stockpile/backend/internal/stats"

type todaySalesResponse struct {
	TotalSales        float64 `json:"total_sales"`
	TotalTransactions int     `json:"total_transactions"`
}

type summaryResponse struct {
	LowStockItems     int `json:"low_stock_items"`
	TotalItems        int `json:"total_items"`
	TotalTransactions int `json:"total_transactions"`
}

type stockLevelsResponse struct {
	Empty  int `json:"empty"`
	Low    int `json:"low"`
	Normal int `json:"normal"`
	Total  int `json:"total"`
}

// Series responses are dense arrays indexed by chart slot; clients plot them
// positionally.
func toSalesSeries(series []stats.SalesBucket) []float64 {
	out := make([]float64, len(series))
	for i, bucket := range series {
		out[i] = bucket.Sales.InexactFloat64()
	}

	return out
}

type typeCountsResponse struct {
	Purchase int `json:"purchase"`
	Sale     int `json:"sale"`
	Return   int `json:"return"`
}

func toTypeCountsSeries(series []stats.TypeCountsBucket) []typeCountsResponse {
	out := make([]typeCountsResponse, len(series))
	for i, bucket := range series {
		out[i] = typeCountsResponse{
			Purchase: bucket.Purchase,
			Sale:     bucket.Sale,
			Return:   bucket.Return,
		}
	}

	return out
}

type mostUsedResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Usage     int    `json:"usage"`
	Trend     []int  `json:"trend"`
}

func toMostUsedResponse(p *stats.MostUsedProduct) mostUsedResponse {
	trend := make([]int, len(p.Trend))
	for i, bucket := range p.Trend {
		trend[i] = bucket.Stock
	}

	return mostUsedResponse{
		ProductID: p.ProductID,
		Name:      p.Name,
		Usage:     p.Usage,
		Trend:     trend,
	}
}
