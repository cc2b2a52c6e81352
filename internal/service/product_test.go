package service

import (
	"context"
	"testing"

	"gearmarket-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProductService_AddProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success Seeds Available From Total", func(t *testing.T) {
		productRepo := new(MockProductRepo)
		svc := NewProductService(productRepo)

		productRepo.On("Create", ctx, mock.AnythingOfType("*domain.Product")).Return(nil)

		product := &domain.Product{
			Name:      "Hammer Drill",
			Pricing:   domain.ProductPricing{DailyCents: 1000},
			Inventory: domain.ProductInventory{TotalQuantity: 3},
		}
		err := svc.AddProduct(ctx, 10, 5, product)
		assert.NoError(t, err)
		assert.Equal(t, int32(10), product.VendorID)
		assert.Equal(t, int32(5), product.CompanyID)
		assert.Equal(t, int32(3), product.Inventory.AvailableQuantity)
		assert.True(t, product.IsActive)
	})

	t.Run("Missing Daily Rate Rejected", func(t *testing.T) {
		svc := NewProductService(new(MockProductRepo))

		err := svc.AddProduct(ctx, 10, 5, &domain.Product{
			Name:      "Hammer Drill",
			Inventory: domain.ProductInventory{TotalQuantity: 3},
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Zero Quantity Rejected", func(t *testing.T) {
		svc := NewProductService(new(MockProductRepo))

		err := svc.AddProduct(ctx, 10, 5, &domain.Product{
			Name:    "Hammer Drill",
			Pricing: domain.ProductPricing{DailyCents: 1000},
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.Background()
	existing := func() *domain.Product {
		return &domain.Product{
			ID:        1,
			VendorID:  10,
			Name:      "Hammer Drill",
			Pricing:   domain.ProductPricing{DailyCents: 1000},
			Inventory: domain.ProductInventory{TotalQuantity: 3, AvailableQuantity: 2},
			IsActive:  true,
		}
	}

	t.Run("Owner Edits Listing Without Touching Available Counter", func(t *testing.T) {
		productRepo := new(MockProductRepo)
		svc := NewProductService(productRepo)

		current := existing()
		productRepo.On("GetByID", ctx, int32(1)).Return(current, nil)
		productRepo.On("Update", ctx, current).Return(nil)

		err := svc.UpdateProduct(ctx, 10, domain.UserRoleVendor, &domain.Product{
			ID:       1,
			Name:     "Hammer Drill SDS",
			Pricing:  domain.ProductPricing{DailyCents: 1200},
			IsActive: true,
		})
		assert.NoError(t, err)
		assert.Equal(t, "Hammer Drill SDS", current.Name)
		assert.Equal(t, int64(1200), current.Pricing.DailyCents)
		assert.Equal(t, int32(2), current.Inventory.AvailableQuantity)
		assert.Equal(t, int32(3), current.Inventory.TotalQuantity)
	})

	t.Run("Soft Delete Via IsActive", func(t *testing.T) {
		productRepo := new(MockProductRepo)
		svc := NewProductService(productRepo)

		current := existing()
		productRepo.On("GetByID", ctx, int32(1)).Return(current, nil)
		productRepo.On("Update", ctx, current).Return(nil)

		err := svc.UpdateProduct(ctx, 10, domain.UserRoleVendor, &domain.Product{
			ID:      1,
			Name:    "Hammer Drill",
			Pricing: domain.ProductPricing{DailyCents: 1000},
		})
		assert.NoError(t, err)
		assert.False(t, current.IsActive)
	})

	t.Run("Other Vendor Forbidden", func(t *testing.T) {
		productRepo := new(MockProductRepo)
		svc := NewProductService(productRepo)

		productRepo.On("GetByID", ctx, int32(1)).Return(existing(), nil)

		err := svc.UpdateProduct(ctx, 11, domain.UserRoleVendor, &domain.Product{ID: 1})
		assert.ErrorIs(t, err, domain.ErrForbidden)
		productRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
