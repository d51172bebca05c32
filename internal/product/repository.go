package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"mandimart-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, params CreateProductParams) (*Product, error)
	GetByID(ctx context.Context, productID uint) (*Product, error)
	ListAvailable(ctx context.Context, search *string, limit, page *int32) ([]*Product, error)
	ListBySeller(ctx context.Context, sellerID uint) ([]*Product, error)
	Update(ctx context.Context, params UpdateProductParams) (*Product, error)
	Delete(ctx context.Context, productID, sellerID uint) error
	CountOrderHistory(ctx context.Context, productID uint) (int64, error)
	SetInStock(ctx context.Context, productID, sellerID uint, inStock bool) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, params CreateProductParams) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateProduct"),
		zap.Uint("seller_id", params.SellerID),
	)

	var p Product
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (seller_id, name, description, price, stock, in_stock)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id, seller_id, name, description, price, stock, in_stock, created_at, updated_at
	`, params.SellerID, params.Name, params.Description, params.Price, params.Stock).
		Scan(&p.ID, &p.SellerID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.InStock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.Uint("product_id", p.ID))
	return &p, nil
}

func (r *repository) GetByID(ctx context.Context, productID uint) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, seller_id, name, description, price, stock, in_stock, created_at, updated_at
		FROM products
		WHERE id = $1
	`, productID).
		Scan(&p.ID, &p.SellerID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.InStock, &p.CreatedAt, &p.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) ListAvailable(ctx context.Context, search *string, limit, page *int32) ([]*Product, error) {
	finalLimit := int32(20)
	finalPage := int32(1)

	if limit != nil && *limit > 0 {
		finalLimit = *limit
	}
	if page != nil && *page > 0 {
		finalPage = *page
	}
	if finalLimit > 100 {
		finalLimit = 100
	}

	offset := (finalPage - 1) * finalLimit

	query := `
		SELECT id, seller_id, name, description, price, stock, in_stock, created_at, updated_at
		FROM products
		WHERE in_stock = TRUE
	`
	args := []any{}
	argIndex := 1

	if search != nil && *search != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", argIndex)
		args = append(args, "%"+*search+"%")
		argIndex++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, finalLimit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *repository) ListBySeller(ctx context.Context, sellerID uint) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, seller_id, name, description, price, stock, in_stock, created_at, updated_at
		FROM products
		WHERE seller_id = $1
		ORDER BY created_at DESC
	`, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func scanProducts(rows *sql.Rows) ([]*Product, error) {
	var products []*Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID, &p.SellerID, &p.Name, &p.Description,
			&p.Price, &p.Stock, &p.InStock, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) Update(ctx context.Context, params UpdateProductParams) (*Product, error) {
	set := []string{"updated_at = NOW()"}
	args := []any{}
	argIndex := 1

	if params.Name != nil {
		set = append(set, fmt.Sprintf("name = $%d", argIndex))
		args = append(args, *params.Name)
		argIndex++
	}
	if params.Description != nil {
		set = append(set, fmt.Sprintf("description = $%d", argIndex))
		args = append(args, *params.Description)
		argIndex++
	}
	if params.Price != nil {
		set = append(set, fmt.Sprintf("price = $%d", argIndex))
		args = append(args, *params.Price)
		argIndex++
	}
	if params.Stock != nil {
		set = append(set, fmt.Sprintf("stock = $%d", argIndex))
		args = append(args, *params.Stock)
		argIndex++
	}
	if params.InStock != nil {
		set = append(set, fmt.Sprintf("in_stock = $%d", argIndex))
		args = append(args, *params.InStock)
		argIndex++
	}

	query := fmt.Sprintf(`
		UPDATE products
		SET %s
		WHERE id = $%d AND seller_id = $%d
		RETURNING id, seller_id, name, description, price, stock, in_stock, created_at, updated_at
	`, strings.Join(set, ", "), argIndex, argIndex+1)
	args = append(args, params.ProductID, params.SellerID)

	var p Product
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&p.ID, &p.SellerID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.InStock, &p.CreatedAt, &p.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) Delete(ctx context.Context, productID, sellerID uint) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM products
		WHERE id = $1 AND seller_id = $2
	`, productID, sellerID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) CountOrderHistory(ctx context.Context, productID uint) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM order_items WHERE product_id = $1
	`, productID).Scan(&n)
	return n, err
}

func (r *repository) SetInStock(ctx context.Context, productID, sellerID uint, inStock bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET in_stock = $1, updated_at = NOW()
		WHERE id = $2 AND seller_id = $3
	`, inStock, productID, sellerID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
