package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"mandimart-be/internal/product"
	"mandimart-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type productResponse struct {
	ID          uint    `json:"id"`
	SellerID    uint    `json:"sellerId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	InStock     bool    `json:"inStock"`
	CreatedAt   string  `json:"createdAt"`
}

func toProductResponse(p *product.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		SellerID:    p.SellerID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		InStock:     p.InStock,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	var search *string
	if q := r.URL.Query().Get("search"); q != "" {
		search = &q
	}

	var limit, page *int32
	if v, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 32); err == nil {
		l := int32(v)
		limit = &l
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil {
		p := int32(v)
		page = &p
	}

	products, err := s.ProductSvc.ListAvailable(r.Context(), search, limit, page)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	p, err := s.ProductSvc.GetProduct(r.Context(), productID)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, toProductResponse(p))
}

func (s *Server) handleSellerProducts(w http.ResponseWriter, r *http.Request) {
	sellerID, _ := utils.GetUserIDFromContext(r.Context())

	products, err := s.ProductSvc.ListSellerProducts(r.Context(), sellerID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

type createProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	sellerID, _ := utils.GetUserIDFromContext(r.Context())

	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		utils.WriteJSONError(w, "name is required", http.StatusBadRequest)
		return
	}

	p, err := s.ProductSvc.CreateProduct(r.Context(), product.CreateProductParams{
		SellerID:    sellerID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, toProductResponse(p))
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	InStock     *bool    `json:"inStock"`
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	sellerID, _ := utils.GetUserIDFromContext(r.Context())

	productID, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	p, err := s.ProductSvc.UpdateProduct(r.Context(), product.UpdateProductParams{
		ProductID:   productID,
		SellerID:    sellerID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		InStock:     req.InStock,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, toProductResponse(p))
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	sellerID, _ := utils.GetUserIDFromContext(r.Context())

	productID, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteJSONError(w, "invalid product id", http.StatusBadRequest)
		return
	}

	if err := s.ProductSvc.DeleteProduct(r.Context(), productID, sellerID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
