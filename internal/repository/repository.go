package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnikHaque/Multi-Vendor-Medicine-Selling-E-commerce-Backend/internal/domain"
)

// CartRepository defines the interface for cart data operations.
// Consumers define this interface, not the MongoDB implementation.
type CartRepository interface {
	// AddOrIncrement inserts a row with quantity 1 for (owner, medicineID)
	// or bumps the existing row's quantity by 1, in a single atomic
	// store operation. Implementations must not read-then-write.
	AddOrIncrement(ctx context.Context, owner string, medicineID primitive.ObjectID) error
	Items(ctx context.Context, owner string) ([]domain.CartItem, error)
	SetQuantity(ctx context.Context, owner string, cartItemID primitive.ObjectID, quantity int) error
	Remove(ctx context.Context, owner string, cartItemID primitive.ObjectID) error
	Clear(ctx context.Context, owner string) error
}

// OrderFilter bounds an order scan. Nil endpoints mean unbounded.
type OrderFilter struct {
	From *time.Time
	To   *time.Time
}

type OrderRepository interface {
	// Insert persists the order with its embedded line items as one
	// document, so the snapshot and the order are a single atomic write.
	Insert(ctx context.Context, order *domain.Order) error
	Get(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	// ListByBuyer returns the buyer's orders, newest first.
	ListByBuyer(ctx context.Context, buyer string) ([]domain.Order, error)
	// Scan returns orders in the filter's range sorted by created_at
	// descending, _id ascending on ties.
	Scan(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
	// Transition compare-and-sets payment_status from -> to. It fails
	// with domain.ErrInvalidTransition when the stored status is not
	// `from` anymore, which also serializes concurrent transitions.
	Transition(ctx context.Context, id primitive.ObjectID, from, to domain.PaymentStatus, paymentRef string, needsReconciliation bool) error
}

type CatalogRepository interface {
	GetMedicine(ctx context.Context, id primitive.ObjectID) (*domain.Medicine, error)
	ListMedicines(ctx context.Context, categoryID *primitive.ObjectID, seller string) ([]domain.Medicine, error)
	CreateMedicine(ctx context.Context, m *domain.Medicine) error
	UpdateMedicine(ctx context.Context, m *domain.Medicine) error
	DeleteMedicine(ctx context.Context, id primitive.ObjectID) error
	SetBanner(ctx context.Context, id primitive.ObjectID, inBanner bool) error

	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, c *domain.Category) error
	DeleteCategory(ctx context.Context, id primitive.ObjectID) error
}

type AdvertRepository interface {
	Create(ctx context.Context, a *domain.Advertisement) error
	List(ctx context.Context, seller string) ([]domain.Advertisement, error)
	ListSlider(ctx context.Context) ([]domain.Advertisement, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status domain.AdvertStatus) error
	SetSlider(ctx context.Context, id primitive.ObjectID, inSlider bool) error
}
