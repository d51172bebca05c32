package httpx

import (
	"encoding/json"
	"net/http"
	"time"

	"mandimart-be/internal/order"
	"mandimart-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type orderItemResponse struct {
	ProductID   uint    `json:"productId"`
	SellerID    uint    `json:"sellerId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type orderResponse struct {
	ID        uint                `json:"id"`
	BuyerID   uint                `json:"buyerId"`
	Status    string              `json:"status"`
	Address   string              `json:"address"`
	Total     float64             `json:"total"`
	AgentID   *uint               `json:"agentId,omitempty"`
	CreatedAt string              `json:"createdAt"`
	Items     []orderItemResponse `json:"items,omitempty"`
}

func toOrderResponse(o *order.Order) orderResponse {
	resp := orderResponse{
		ID:        o.ID,
		BuyerID:   o.BuyerID,
		Status:    string(o.Status),
		Address:   o.Address,
		Total:     o.Total,
		AgentID:   o.AgentID,
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, orderItemResponse{
			ProductID:   it.ProductID,
			SellerID:    it.SellerID,
			ProductName: it.ProductName,
			Price:       it.Price,
			Quantity:    it.Quantity,
		})
	}
	return resp
}

type checkoutRequest struct {
	Address string `json:"address"`
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	buyerID, _ := utils.GetUserIDFromContext(r.Context())

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	o, err := s.OrderSvc.Checkout(r.Context(), buyerID, req.Address)
	if err != nil {
		writeError(w, err)
		return
	}

	s.Metrics.Checkouts.Inc()
	utils.WriteJSON(w, http.StatusCreated, toOrderResponse(o))
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	callerID, _ := utils.GetUserIDFromContext(r.Context())
	role := utils.GetUserRoleFromContext(r.Context())

	orders, err := s.OrderSvc.GetOrders(r.Context(), callerID, role)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	callerID, _ := utils.GetUserIDFromContext(r.Context())
	role := utils.GetUserRoleFromContext(r.Context())

	orderID, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	o, err := s.OrderSvc.GetOrderDetail(r.Context(), callerID, role, orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, toOrderResponse(o))
}

func (s *Server) handleOrderStatus(w http.ResponseWriter, r *http.Request) {
	callerID, _ := utils.GetUserIDFromContext(r.Context())
	role := utils.GetUserRoleFromContext(r.Context())

	orderID, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	status, err := s.OrderSvc.GetStatus(r.Context(), callerID, role, orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": string(status)})
}

type transitionRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleTransition(w http.ResponseWriter, r *http.Request) {
	callerID, _ := utils.GetUserIDFromContext(r.Context())
	role := utils.GetUserRoleFromContext(r.Context())

	orderID, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	o, err := s.OrderSvc.Transition(r.Context(), order.TransitionParams{
		OrderID:  orderID,
		Target:   order.Status(req.Status),
		Role:     role,
		CallerID: callerID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	s.Metrics.Transitions.Inc()
	utils.WriteJSON(w, http.StatusOK, toOrderResponse(o))
}

type trackingStepResponse struct {
	Label string  `json:"label"`
	State string  `json:"state"`
	At    *string `json:"at,omitempty"`
}

func (s *Server) handleTrackOrder(w http.ResponseWriter, r *http.Request) {
	buyerID, _ := utils.GetUserIDFromContext(r.Context())

	orderID, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	t, err := s.OrderSvc.Track(r.Context(), buyerID, orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	steps := make([]trackingStepResponse, 0, len(t.Steps))
	for _, st := range t.Steps {
		step := trackingStepResponse{Label: st.Label, State: string(st.State)}
		if st.At != nil {
			at := st.At.Format(time.RFC3339)
			step.At = &at
		}
		steps = append(steps, step)
	}

	resp := map[string]any{
		"orderId": t.OrderID,
		"status":  string(t.Status),
		"steps":   steps,
	}
	if t.EstimatedDelivery != nil {
		resp["estimatedDelivery"] = t.EstimatedDelivery.Format(time.RFC3339)
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}
