package services

import (
	"database/sql"
	"errors"

	"arthaus/internal/domain"
	"arthaus/internal/repos"

	"github.com/google/uuid"
)

var ErrBadSellType = errors.New("unknown sell type")

type OrderService struct {
	Orders *repos.OrderRepo
	Arts   *repos.ArtRepo
}

func NewOrderService(orders *repos.OrderRepo, arts *repos.ArtRepo) *OrderService {
	return &OrderService{Orders: orders, Arts: arts}
}

type OrderInput struct {
	ArtCode         string
	SellType        domain.SellType
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
	PaymentReceipt  string
	TotalAmount     float64
}

// Place records a new order in PaymentReview. The art must exist; its price
// is not rewritten here since a Bid sale closes at the winning offer.
func (s *OrderService) Place(in OrderInput) (domain.Order, error) {
	if !in.SellType.Valid() {
		return domain.Order{}, ErrBadSellType
	}
	if _, err := s.Arts.GetByCode(in.ArtCode); err != nil {
		if err == sql.ErrNoRows {
			return domain.Order{}, ErrNotFound
		}
		return domain.Order{}, err
	}
	o := domain.Order{
		ID:              uuid.NewString(),
		ArtCode:         in.ArtCode,
		SellType:        in.SellType,
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		CustomerPhone:   in.CustomerPhone,
		ShippingAddress: in.ShippingAddress,
		PaymentReceipt:  in.PaymentReceipt,
		TotalAmount:     in.TotalAmount,
		Status:          domain.OrderPaymentReview,
	}
	if err := s.Orders.Create(o); err != nil {
		return domain.Order{}, err
	}
	return s.Orders.Get(o.ID)
}

func (s *OrderService) Get(id string) (domain.Order, error) {
	o, err := s.Orders.Get(id)
	if err == sql.ErrNoRows {
		return domain.Order{}, ErrNotFound
	}
	return o, err
}

func (s *OrderService) ListAll(limit int) ([]domain.Order, error) {
	return s.Orders.ListLatest(limit)
}

func (s *OrderService) ListForCustomer(email string) ([]domain.Order, error) {
	return s.Orders.ListByEmail(email)
}

// UpdateStatus advances the delivery pipeline; only legal transitions are
// written.
func (s *OrderService) UpdateStatus(id string, next domain.OrderStatus) (domain.Order, error) {
	o, err := s.Get(id)
	if err != nil {
		return domain.Order{}, err
	}
	if !next.Valid() {
		return domain.Order{}, ErrBadStatus
	}
	if !o.Status.CanTransition(next) {
		return domain.Order{}, ErrIllegalTransition
	}
	if err := s.Orders.UpdateStatus(id, next); err != nil {
		return domain.Order{}, err
	}
	return s.Orders.Get(id)
}

func (s *OrderService) Delete(id string) error {
	err := s.Orders.Delete(id)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}
