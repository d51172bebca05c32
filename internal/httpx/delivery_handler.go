package httpx

import (
	"net/http"

	"mandimart-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleAvailableOrders(w http.ResponseWriter, r *http.Request) {
	agentID, _ := utils.GetUserIDFromContext(r.Context())

	orders, err := s.DeliverySvc.AvailableOrders(r.Context(), agentID)
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

func (s *Server) handleAssignedOrders(w http.ResponseWriter, r *http.Request) {
	agentID, _ := utils.GetUserIDFromContext(r.Context())

	orders, err := s.DeliverySvc.AssignedOrders(r.Context(), agentID)
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

func (s *Server) handleClaim(w http.ResponseWriter, r *http.Request) {
	agentID, _ := utils.GetUserIDFromContext(r.Context())

	orderID, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	if err := s.DeliverySvc.Claim(r.Context(), agentID, orderID); err != nil {
		writeError(w, err)
		return
	}

	s.Metrics.Claims.Inc()
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"orderId": orderID,
		"agentId": agentID,
	})
}

func (s *Server) handleToggleAvailability(w http.ResponseWriter, r *http.Request) {
	agentID, _ := utils.GetUserIDFromContext(r.Context())

	available, err := s.DeliverySvc.ToggleAvailability(r.Context(), agentID)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]bool{"available": available})
}
