package service

import (
	"context"
	"fmt"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/repository"
)

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) AddProduct(ctx context.Context, vendorID, companyID int32, product *domain.Product) error {
	if product.Name == "" {
		return fmt.Errorf("product name is required: %w", domain.ErrValidation)
	}
	if product.Pricing.DailyCents <= 0 {
		return fmt.Errorf("a daily rate is required: %w", domain.ErrValidation)
	}
	if product.Inventory.TotalQuantity < 1 {
		return fmt.Errorf("total quantity must be at least 1: %w", domain.ErrValidation)
	}

	product.VendorID = vendorID
	product.CompanyID = companyID
	product.Inventory.AvailableQuantity = product.Inventory.TotalQuantity
	product.IsActive = true
	return s.productRepo.Create(ctx, product)
}

func (s *productService) GetProduct(ctx context.Context, id int32) (*domain.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

// UpdateProduct lets the owning vendor (or an admin) edit listing details
// and rate tiers. Inventory counters are only ever touched through
// reserve/release, and products referenced by orders are soft-deleted via
// IsActive, never removed.
func (s *productService) UpdateProduct(ctx context.Context, actorID int32, role domain.UserRole, product *domain.Product) error {
	existing, err := s.productRepo.GetByID(ctx, product.ID)
	if err != nil {
		return err
	}
	if role != domain.UserRoleAdmin && existing.VendorID != actorID {
		return fmt.Errorf("product %d: %w", product.ID, domain.ErrForbidden)
	}

	existing.Name = product.Name
	existing.Description = product.Description
	existing.Pricing = product.Pricing
	existing.IsActive = product.IsActive
	if product.Inventory.TotalQuantity > 0 {
		existing.Inventory.TotalQuantity = product.Inventory.TotalQuantity
	}
	return s.productRepo.Update(ctx, existing)
}

func (s *productService) ListProducts(ctx context.Context, companyID int32, page, pageSize int32) ([]domain.Product, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.productRepo.ListByCompany(ctx, companyID, page, pageSize)
}
