package httpx

import (
	"encoding/json"
	"net/http"

	"mandimart-be/internal/cart"
	"mandimart-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type cartLineResponse struct {
	ProductID   uint    `json:"productId"`
	SellerID    uint    `json:"sellerId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
	InStock     bool    `json:"inStock"`
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	buyerID, _ := utils.GetUserIDFromContext(r.Context())

	lines, err := s.CartSvc.Snapshot(r.Context(), buyerID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]cartLineResponse, 0, len(lines))
	var total float64
	for _, l := range lines {
		subtotal := l.Price * float64(l.Quantity)
		total += subtotal
		resp = append(resp, cartLineResponse{
			ProductID:   l.ProductID,
			SellerID:    l.SellerID,
			ProductName: l.ProductName,
			Price:       l.Price,
			Quantity:    l.Quantity,
			Subtotal:    subtotal,
			InStock:     l.InStock,
		})
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"lines": resp,
		"total": total,
	})
}

type addToCartRequest struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	buyerID, _ := utils.GetUserIDFromContext(r.Context())

	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	line, err := s.CartSvc.AddOrUpdate(r.Context(), cart.UpsertParams{
		BuyerID:   buyerID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"productId": line.ProductID,
		"quantity":  line.Quantity,
	})
}

func (s *Server) handleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	buyerID, _ := utils.GetUserIDFromContext(r.Context())

	productID, err := utils.ToUint(chi.URLParam(r, "productID"))
	if err != nil {
		utils.WriteJSONError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	if err := s.CartSvc.Remove(r.Context(), buyerID, productID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
