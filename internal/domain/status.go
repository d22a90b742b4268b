package domain

// Status values are validated against transition tables before any write.
// Arbitrary strings never reach the database.

type ArtStatus string

const (
	ArtDirectSale ArtStatus = "DirectSale"
	ArtBid        ArtStatus = "Bid"
	ArtNotListed  ArtStatus = "NotListed"
)

func (s ArtStatus) Valid() bool {
	switch s {
	case ArtDirectSale, ArtBid, ArtNotListed:
		return true
	}
	return false
}

type SessionStatus string

const (
	SessionOpen      SessionStatus = "Open"
	SessionClosed    SessionStatus = "Closed"
	SessionCompleted SessionStatus = "Completed"
	SessionCancelled SessionStatus = "Cancelled"
)

func (s SessionStatus) Valid() bool {
	switch s {
	case SessionOpen, SessionClosed, SessionCompleted, SessionCancelled:
		return true
	}
	return false
}

// Active sessions are the ones the status-sync cascade must cancel when an
// Art leaves Bid, and the only ones whose dates mirror the Art's dates.
func (s SessionStatus) Active() bool {
	return s == SessionOpen || s == SessionClosed
}

var sessionTransitions = map[SessionStatus][]SessionStatus{
	SessionOpen:   {SessionClosed, SessionCompleted, SessionCancelled},
	SessionClosed: {SessionOpen, SessionCompleted, SessionCancelled},
	// Completed and Cancelled are terminal.
}

// CanTransition reports whether from -> to is a legal session move.
func (s SessionStatus) CanTransition(to SessionStatus) bool {
	for _, t := range sessionTransitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

type SellType string

const (
	SellDirect SellType = "Direct"
	SellBid    SellType = "Bid"
)

func (s SellType) Valid() bool { return s == SellDirect || s == SellBid }

type OrderStatus string

// Delivery pipeline for a placed order.
const (
	OrderPaymentReview  OrderStatus = "PaymentReview"
	OrderConfirmed      OrderStatus = "Confirmed"
	OrderPreparing      OrderStatus = "Preparing"
	OrderPacked         OrderStatus = "Packed"
	OrderShipped        OrderStatus = "Shipped"
	OrderInTransit      OrderStatus = "InTransit"
	OrderOutForDelivery OrderStatus = "OutForDelivery"
	OrderDelivered      OrderStatus = "Delivered"
	OrderCancelled      OrderStatus = "Cancelled"
)

var orderPipeline = map[OrderStatus]int{
	OrderPaymentReview:  0,
	OrderConfirmed:      1,
	OrderPreparing:      2,
	OrderPacked:         3,
	OrderShipped:        4,
	OrderInTransit:      5,
	OrderOutForDelivery: 6,
	OrderDelivered:      7,
}

func (s OrderStatus) Valid() bool {
	if s == OrderCancelled {
		return true
	}
	_, ok := orderPipeline[s]
	return ok
}

func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// CanTransition allows forward moves along the pipeline (skips permitted)
// and cancellation from any non-terminal state.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	if s.Terminal() || !to.Valid() || s == to {
		return false
	}
	if to == OrderCancelled {
		return true
	}
	return orderPipeline[to] > orderPipeline[s]
}
