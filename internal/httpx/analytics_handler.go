package httpx

import (
	"net/http"
	"time"

	"mandimart-be/internal/analytics"
	"mandimart-be/internal/utils"
)

type earningsOrderResponse struct {
	OrderID     uint    `json:"orderId"`
	Status      string  `json:"status"`
	SellerTotal float64 `json:"sellerTotal"`
	CreatedAt   string  `json:"createdAt"`
}

func (s *Server) handleSellerAnalytics(w http.ResponseWriter, r *http.Request) {
	sellerID, _ := utils.GetUserIDFromContext(r.Context())
	rng := analytics.Range(r.URL.Query().Get("range"))

	summary, err := s.AnalyticsSvc.SellerEarnings(r.Context(), sellerID, rng)
	if err != nil {
		writeError(w, err)
		return
	}

	orders := make([]earningsOrderResponse, 0, len(summary.Orders))
	for _, o := range summary.Orders {
		orders = append(orders, earningsOrderResponse{
			OrderID:     o.OrderID,
			Status:      o.Status,
			SellerTotal: o.SellerTotal,
			CreatedAt:   o.CreatedAt.Format(time.RFC3339),
		})
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"range":             string(summary.Range),
		"grossEarnings":     summary.GrossEarnings,
		"orderCount":        summary.OrderCount,
		"countsByStatus":    summary.CountsByStatus,
		"averageOrderValue": summary.AverageOrderValue,
		"orders":            orders,
	})
}
