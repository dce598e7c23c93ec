package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/domain"
	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/repository"
)

// StatementService reconstructs seller earnings from stored orders.
// Pure read path: decompose, filter, project. Amounts come verbatim
// from the snapshotted line items, so statements stay stable however
// the catalog changes afterwards.
type StatementService struct {
	orders repository.OrderRepository
}

func NewStatementService(orders repository.OrderRepository) *StatementService {
	return &StatementService{orders: orders}
}

func (s *StatementService) StatementFor(ctx context.Context, seller string, from, to *time.Time) (*domain.SellerStatement, error) {
	orders, err := s.orders.Scan(ctx, repository.OrderFilter{From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("failed to scan orders: %w", err)
	}

	statement := &domain.SellerStatement{
		Seller:    seller,
		Rows:      []domain.SellerStatementRow{},
		TotalOwed: decimal.Zero,
	}

	// Orders arrive sorted created_at desc, _id asc on ties; rows keep
	// that order.
	for _, order := range orders {
		for _, li := range order.LineItems {
			if li.Seller != seller {
				continue
			}

			statement.Rows = append(statement.Rows, domain.SellerStatementRow{
				Seller:        li.Seller,
				MedicineName:  li.MedicineName,
				Buyer:         order.Buyer,
				Quantity:      li.Quantity,
				LineAmount:    li.LineAmount,
				PaymentStatus: order.PaymentStatus,
				OrderID:       order.ID,
				CreatedAt:     order.CreatedAt,
			})

			if order.PaymentStatus == domain.PaymentStatusPaid {
				statement.TotalOwed = statement.TotalOwed.Add(li.LineAmount)
			}
		}
	}

	return statement, nil
}
