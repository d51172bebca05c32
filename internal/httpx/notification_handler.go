package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"mandimart-be/internal/utils"

	"github.com/google/uuid"
)

type notificationResponse struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	OrderID   uint   `json:"orderId"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt"`
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	callerID, _ := utils.GetUserIDFromContext(r.Context())
	role := utils.GetUserRoleFromContext(r.Context())

	limit := int32(0)
	if v, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 32); err == nil {
		limit = int32(v)
	}

	list, err := s.NotificationSvc.List(r.Context(), callerID, role, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]notificationResponse, 0, len(list))
	for _, n := range list {
		resp = append(resp, notificationResponse{
			ID:        n.ID.String(),
			Type:      string(n.Type),
			OrderID:   n.OrderID,
			Title:     n.Title,
			Message:   n.Message,
			Read:      n.Read,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		})
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUnreadCount(w http.ResponseWriter, r *http.Request) {
	callerID, _ := utils.GetUserIDFromContext(r.Context())
	role := utils.GetUserRoleFromContext(r.Context())

	n, err := s.NotificationSvc.UnreadCount(r.Context(), callerID, role)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]int64{"unread": n})
}

type markReadRequest struct {
	IDs []string `json:"ids"`
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	callerID, _ := utils.GetUserIDFromContext(r.Context())
	role := utils.GetUserRoleFromContext(r.Context())

	var req markReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.WriteJSONError(w, "invalid notification id: "+raw, http.StatusBadRequest)
			return
		}
		ids = append(ids, id)
	}

	updated, err := s.NotificationSvc.MarkRead(r.Context(), callerID, role, ids)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]int64{"updated": updated})
}
