package service

import (
	"context"
	"fmt"
	"time"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/repository"
)

type inventoryService struct {
	productRepo     repository.ProductRepository
	reservationRepo repository.ReservationRepository
}

func NewInventoryService(productRepo repository.ProductRepository, reservationRepo repository.ReservationRepository) InventoryService {
	return &inventoryService{productRepo: productRepo, reservationRepo: reservationRepo}
}

// CheckAvailability answers whether qty units of a product can be rented
// over [start, end]. Both the live counter and the overlapping holds must
// leave room; the counter alone misses future-dated bookings.
func (s *inventoryService) CheckAvailability(ctx context.Context, productID, quantity int32, start, end time.Time) (*AvailabilityResult, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", domain.ErrValidation)
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, fmt.Errorf("product %d: %w", productID, domain.ErrNotFound)
	}

	held, err := s.reservationRepo.SumOverlapping(ctx, productID, start, end)
	if err != nil {
		return nil, err
	}

	periodRoom := product.Inventory.TotalQuantity - held
	available := quantity <= product.Inventory.AvailableQuantity && quantity <= periodRoom

	return &AvailabilityResult{
		Available:          available,
		AvailableQuantity:  product.Inventory.AvailableQuantity,
		OverlappingHeldQty: held,
	}, nil
}
