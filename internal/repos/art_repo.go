package repos

import (
	"database/sql"

	"arthaus/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ArtRepo struct{ db *sqlx.DB }

func NewArtRepo(db *sqlx.DB) *ArtRepo { return &ArtRepo{db: db} }

const artCols = `id, art_code, title, artist, description, image_url, price, status,
	bid_end_date, bid_end_time, created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ArtRepo) Create(a domain.Art) error {
	_, err := r.db.Exec(`
	  INSERT INTO arts(id, art_code, title, artist, description, image_url, price, status, bid_end_date, bid_end_time, created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, a.ID, a.ArtCode, a.Title, a.Artist, a.Description, a.ImageURL, a.Price, a.Status, a.BidEndDate, a.BidEndTime)
	return err
}

func (r *ArtRepo) Get(id string) (domain.Art, error) {
	var a domain.Art
	err := r.db.Get(&a, `SELECT `+artCols+` FROM arts WHERE id = ?`, id)
	return a, err
}

func (r *ArtRepo) GetByCode(code string) (domain.Art, error) {
	var a domain.Art
	err := r.db.Get(&a, `SELECT `+artCols+` FROM arts WHERE art_code = ?`, code)
	return a, err
}

func (r *ArtRepo) List(status string, limit, offset int) ([]domain.Art, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Art
	if status != "" {
		err := r.db.Select(&out, `
		  SELECT `+artCols+` FROM arts WHERE status = ?
		  ORDER BY created_at DESC LIMIT ? OFFSET ?`, status, limit, offset)
		return out, err
	}
	err := r.db.Select(&out, `
	  SELECT `+artCols+` FROM arts
	  ORDER BY created_at DESC LIMIT ? OFFSET ?`, limit, offset)
	return out, err
}

// UpdateCascade rewrites the Art row and, when the art leaves Bid status,
// cancels every Open/Closed session referencing it. Both writes commit in
// one transaction so a crash cannot orphan an active session.
func (r *ArtRepo) UpdateCascade(a domain.Art, leavingBid bool) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  UPDATE arts SET art_code=?, title=?, artist=?, description=?, image_url=?,
	    price=?, status=?, bid_end_date=?, bid_end_time=?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, a.ArtCode, a.Title, a.Artist, a.Description, a.ImageURL, a.Price, a.Status, a.BidEndDate, a.BidEndTime, a.ID); err != nil {
		return err
	}

	if leavingBid {
		if _, err := tx.Exec(`
		  UPDATE bidding_sessions SET status='Cancelled', updated_at=CURRENT_TIMESTAMP
		  WHERE art_id=? AND status IN ('Open','Closed')
		`, a.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeleteCascade cancels active sessions referencing the art, then deletes it,
// atomically. Cancelled/Completed session rows are kept for audit.
func (r *ArtRepo) DeleteCascade(id string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  UPDATE bidding_sessions SET status='Cancelled', updated_at=CURRENT_TIMESTAMP
	  WHERE art_id=? AND status IN ('Open','Closed')
	`, id); err != nil {
		return err
	}
	res, err := tx.Exec(`DELETE FROM arts WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}
