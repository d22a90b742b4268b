package repos

import (
	"database/sql"

	"arthaus/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `id, art_code, sell_type, customer_name, customer_email, customer_phone,
	shipping_address, payment_receipt, total_amount, status,
	created_at, COALESCE(updated_at,'') AS updated_at`

func (r *OrderRepo) Create(o domain.Order) error {
	_, err := r.db.Exec(`
	  INSERT INTO orders
	    (id, art_code, sell_type, customer_name, customer_email, customer_phone,
	     shipping_address, payment_receipt, total_amount, status, created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, o.ID, o.ArtCode, o.SellType, o.CustomerName, o.CustomerEmail, o.CustomerPhone,
		o.ShippingAddress, o.PaymentReceipt, o.TotalAmount, o.Status)
	return err
}

func (r *OrderRepo) Get(id string) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE id = ?`, id)
	return o, err
}

func (r *OrderRepo) ListLatest(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT `+orderCols+` FROM orders
	  ORDER BY datetime(created_at) DESC LIMIT ?`, limit)
	return out, err
}

// ListByEmail returns a customer's own orders, newest first.
func (r *OrderRepo) ListByEmail(email string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT `+orderCols+` FROM orders
	  WHERE LOWER(customer_email)=LOWER(?)
	  ORDER BY datetime(created_at) DESC`, email)
	return out, err
}

func (r *OrderRepo) UpdateStatus(id string, status domain.OrderStatus) error {
	res, err := r.db.Exec(`
	  UPDATE orders SET status=?, updated_at=CURRENT_TIMESTAMP WHERE id=?
	`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *OrderRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM orders WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
