package service

import (
	"context"
	"fmt"
	"time"

	"gearmarket-backend/internal/domain"
	"gearmarket-backend/internal/logger"
	"gearmarket-backend/internal/repository"
)

type orderService struct {
	store     repository.Transactor
	orderRepo repository.OrderRepository
}

func NewOrderService(store repository.Transactor, orderRepo repository.OrderRepository) OrderService {
	return &orderService{store: store, orderRepo: orderRepo}
}

func (s *orderService) GetOrder(ctx context.Context, userID int32, role domain.UserRole, orderID int32) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !canViewOrder(userID, role, order) {
		return nil, fmt.Errorf("order %d: %w", orderID, domain.ErrForbidden)
	}
	return order, nil
}

func canViewOrder(userID int32, role domain.UserRole, order *domain.Order) bool {
	switch role {
	case domain.UserRoleAdmin:
		return true
	case domain.UserRoleVendor:
		return order.VendorID == userID
	default:
		return order.CustomerID == userID
	}
}

func (s *orderService) ListOrders(ctx context.Context, userID int32, role domain.UserRole, companyID int32, status string, page, pageSize int32) ([]domain.Order, int32, error) {
	if role == domain.UserRoleVendor {
		return s.orderRepo.ListByVendor(ctx, userID, companyID, status, page, pageSize)
	}
	return s.orderRepo.ListByCustomer(ctx, userID, companyID, status, page, pageSize)
}

// UpdateStatus drives a forward transition of the order lifecycle. Only the
// order's vendor or an admin may call it; customers cancel through
// CancelOrder. Inventory and reservation side effects commit atomically
// with the status change.
func (s *orderService) UpdateStatus(ctx context.Context, actorID int32, role domain.UserRole, orderID int32, next domain.OrderStatus, note string) (*domain.Order, error) {
	var updated *domain.Order
	err := s.store.WithinTx(ctx, func(repos repository.Repositories) error {
		order, err := repos.Orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if role != domain.UserRoleAdmin && !(role == domain.UserRoleVendor && order.VendorID == actorID) {
			return fmt.Errorf("order %d: %w", orderID, domain.ErrForbidden)
		}
		if !domain.CanTransition(order.Status, next) {
			return fmt.Errorf("cannot move order from %s to %s: %w", order.Status, next, domain.ErrInvalidState)
		}

		if err := applyTransitionEffects(ctx, repos, order, next); err != nil {
			return err
		}
		if err := repos.Orders.UpdateStatus(ctx, orderID, next); err != nil {
			return err
		}
		if err := repos.Orders.AppendTimeline(ctx, orderID, domain.TimelineEntry{Status: next, Note: note, Date: time.Now()}); err != nil {
			return err
		}

		updated, err = repos.Orders.GetByID(ctx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// CancelOrder is the customer-initiated path: allowed only while the vendor
// has not yet handed over the equipment.
func (s *orderService) CancelOrder(ctx context.Context, customerID, orderID int32, reason string) (*domain.Order, error) {
	var updated *domain.Order
	err := s.store.WithinTx(ctx, func(repos repository.Repositories) error {
		order, err := repos.Orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order.CustomerID != customerID {
			return fmt.Errorf("order %d: %w", orderID, domain.ErrForbidden)
		}
		if !domain.CustomerCanCancel(order.Status) {
			return fmt.Errorf("cannot cancel order in status %s: %w", order.Status, domain.ErrInvalidState)
		}

		if err := applyTransitionEffects(ctx, repos, order, domain.OrderStatusCancelled); err != nil {
			return err
		}
		if err := repos.Orders.UpdateStatus(ctx, orderID, domain.OrderStatusCancelled); err != nil {
			return err
		}
		note := reason
		if note == "" {
			note = "Cancelled by customer"
		}
		if err := repos.Orders.AppendTimeline(ctx, orderID, domain.TimelineEntry{Status: domain.OrderStatusCancelled, Note: note, Date: time.Now()}); err != nil {
			return err
		}

		updated, err = repos.Orders.GetByID(ctx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// applyTransitionEffects runs the reservation and inventory side effects
// for entering a status. Stock is only released for reservations that still
// hold it, so a transition handler firing twice cannot double-release.
func applyTransitionEffects(ctx context.Context, repos repository.Repositories, order *domain.Order, next domain.OrderStatus) error {
	var reservationStatus domain.ReservationStatus
	release := false

	switch next {
	case domain.OrderStatusPickedUp, domain.OrderStatusActive:
		reservationStatus = domain.ReservationStatusActive
	case domain.OrderStatusReturned, domain.OrderStatusCompleted:
		reservationStatus = domain.ReservationStatusCompleted
		release = true
	case domain.OrderStatusCancelled:
		reservationStatus = domain.ReservationStatusCancelled
		release = true
	default:
		return nil
	}

	reservations, err := repos.Reservations.ListByOrder(ctx, order.ID)
	if err != nil {
		return err
	}
	for _, rv := range reservations {
		if !rv.Status.Releasable() {
			continue
		}
		if err := repos.Reservations.UpdateStatus(ctx, rv.ID, reservationStatus); err != nil {
			return err
		}
		if release {
			if err := repos.Products.ReleaseStock(ctx, rv.ProductID, rv.Quantity); err != nil {
				return err
			}
		}
	}
	return nil
}

// ExpireStalePending cancels pending orders the vendor never confirmed.
// Each order is cancelled in its own transaction so one failure does not
// hold up the rest.
func (s *orderService) ExpireStalePending(ctx context.Context, olderThan time.Time) (int, error) {
	stale, err := s.orderRepo.ListStalePending(ctx, olderThan)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, order := range stale {
		skipped := false
		err := s.store.WithinTx(ctx, func(repos repository.Repositories) error {
			current, err := repos.Orders.GetByID(ctx, order.ID)
			if err != nil {
				return err
			}
			// The order may have been confirmed or cancelled since listing.
			if current.Status != domain.OrderStatusPending {
				skipped = true
				return nil
			}
			if err := applyTransitionEffects(ctx, repos, current, domain.OrderStatusCancelled); err != nil {
				return err
			}
			if err := repos.Orders.UpdateStatus(ctx, current.ID, domain.OrderStatusCancelled); err != nil {
				return err
			}
			return repos.Orders.AppendTimeline(ctx, current.ID, domain.TimelineEntry{
				Status: domain.OrderStatusCancelled,
				Note:   "Cancelled automatically: pending too long",
				Date:   time.Now(),
			})
		})
		if err != nil {
			logger.Error("Failed to expire stale order", "order_id", order.ID, "error", err)
			continue
		}
		if skipped {
			continue
		}
		expired++
	}
	return expired, nil
}
