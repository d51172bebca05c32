package cart

import (
	"context"
	"errors"
	"testing"

	"mandimart-be/internal/inventory"
	"mandimart-be/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Upsert(ctx context.Context, params UpsertParams) (*Line, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Line), args.Error(1)
}

func (m *MockRepository) Remove(ctx context.Context, buyerID, productID uint) error {
	return m.Called(ctx, buyerID, productID).Error(0)
}

func (m *MockRepository) Snapshot(ctx context.Context, buyerID uint) ([]SnapshotLine, error) {
	args := m.Called(ctx, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]SnapshotLine), args.Error(1)
}

func (m *MockRepository) Clear(ctx context.Context, buyerID uint, productIDs []uint) error {
	return m.Called(ctx, buyerID, productIDs).Error(0)
}

func (m *MockRepository) ClearTx(ctx context.Context, tx inventory.Execer, buyerID uint, productIDs []uint) error {
	return m.Called(ctx, tx, buyerID, productIDs).Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, params product.CreateProductParams) (*product.Product, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, productID uint) (*product.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) ListAvailable(ctx context.Context, search *string, limit, page *int32) ([]*product.Product, error) {
	args := m.Called(ctx, search, limit, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *MockProductRepository) ListBySeller(ctx context.Context, sellerID uint) ([]*product.Product, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, params product.UpdateProductParams) (*product.Product, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, productID, sellerID uint) error {
	return m.Called(ctx, productID, sellerID).Error(0)
}

func (m *MockProductRepository) CountOrderHistory(ctx context.Context, productID uint) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) SetInStock(ctx context.Context, productID, sellerID uint, inStock bool) error {
	return m.Called(ctx, productID, sellerID, inStock).Error(0)
}

// --- Tests ---

func TestService_AddOrUpdate(t *testing.T) {
	ctx := context.Background()
	params := UpsertParams{BuyerID: 1, ProductID: 10, Quantity: 2}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockProducts := new(MockProductRepository)
		svc := NewService(mockRepo, mockProducts)

		mockProducts.On("GetByID", ctx, uint(10)).
			Return(&product.Product{ID: 10, InStock: true, Stock: 5}, nil)
		expected := &Line{ID: 5, BuyerID: 1, ProductID: 10, Quantity: 2}
		mockRepo.On("Upsert", ctx, params).Return(expected, nil)

		line, err := svc.AddOrUpdate(ctx, params)
		assert.NoError(t, err)
		assert.Equal(t, expected, line)
		mockRepo.AssertExpectations(t)
	})

	t.Run("ZeroQuantity", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockProductRepository))

		_, err := svc.AddOrUpdate(ctx, UpsertParams{BuyerID: 1, ProductID: 10, Quantity: 0})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("NegativeQuantity", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockProductRepository))

		_, err := svc.AddOrUpdate(ctx, UpsertParams{BuyerID: 1, ProductID: 10, Quantity: -3})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("ProductMissing", func(t *testing.T) {
		mockProducts := new(MockProductRepository)
		svc := NewService(new(MockRepository), mockProducts)

		mockProducts.On("GetByID", ctx, uint(10)).Return(nil, product.ErrProductNotFound)

		_, err := svc.AddOrUpdate(ctx, params)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("ProductDisabled", func(t *testing.T) {
		mockProducts := new(MockProductRepository)
		svc := NewService(new(MockRepository), mockProducts)

		mockProducts.On("GetByID", ctx, uint(10)).
			Return(&product.Product{ID: 10, InStock: false}, nil)

		_, err := svc.AddOrUpdate(ctx, params)
		assert.ErrorIs(t, err, ErrProductUnavailable)
	})

	t.Run("RepoError", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockProducts := new(MockProductRepository)
		svc := NewService(mockRepo, mockProducts)

		mockProducts.On("GetByID", ctx, uint(10)).
			Return(&product.Product{ID: 10, InStock: true}, nil)
		mockRepo.On("Upsert", ctx, params).Return(nil, errors.New("db error"))

		_, err := svc.AddOrUpdate(ctx, params)
		assert.Error(t, err)
	})
}

func TestService_Remove(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo, new(MockProductRepository))

	mockRepo.On("Remove", ctx, uint(1), uint(10)).Return(nil)

	assert.NoError(t, svc.Remove(ctx, 1, 10))
	mockRepo.AssertExpectations(t)
}

func TestService_Snapshot(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo, new(MockProductRepository))

	lines := []SnapshotLine{{ProductID: 10, Quantity: 2, Price: 250}}
	mockRepo.On("Snapshot", ctx, uint(1)).Return(lines, nil)

	res, err := svc.Snapshot(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, lines, res)
}
