package repos

import (
	"database/sql"

	"arthaus/internal/domain"

	"github.com/jmoiron/sqlx"
)

type BiddingRepo struct{ db *sqlx.DB }

func NewBiddingRepo(db *sqlx.DB) *BiddingRepo { return &BiddingRepo{db: db} }

const sessionCols = `id, art_id, starting_price, bid_end_date, bid_end_time, status,
	created_at, COALESCE(updated_at,'') AS updated_at`

func (r *BiddingRepo) Create(s domain.BiddingSession) error {
	_, err := r.db.Exec(`
	  INSERT INTO bidding_sessions(id, art_id, starting_price, bid_end_date, bid_end_time, status, created_at)
	  VALUES(?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, s.ID, s.ArtID, s.StartingPrice, s.BidEndDate, s.BidEndTime, s.Status)
	return err
}

func (r *BiddingRepo) Get(id string) (domain.BiddingSession, error) {
	var s domain.BiddingSession
	err := r.db.Get(&s, `SELECT `+sessionCols+` FROM bidding_sessions WHERE id = ?`, id)
	return s, err
}

func (r *BiddingRepo) List(status string, limit, offset int) ([]domain.BiddingSession, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.BiddingSession
	if status != "" {
		err := r.db.Select(&out, `
		  SELECT `+sessionCols+` FROM bidding_sessions WHERE status = ?
		  ORDER BY created_at DESC LIMIT ? OFFSET ?`, status, limit, offset)
		return out, err
	}
	err := r.db.Select(&out, `
	  SELECT `+sessionCols+` FROM bidding_sessions
	  ORDER BY created_at DESC LIMIT ? OFFSET ?`, limit, offset)
	return out, err
}

func (r *BiddingRepo) Update(s domain.BiddingSession) error {
	_, err := r.db.Exec(`
	  UPDATE bidding_sessions
	  SET starting_price=?, bid_end_date=?, bid_end_time=?, status=?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, s.StartingPrice, s.BidEndDate, s.BidEndTime, s.Status, s.ID)
	return err
}

func (r *BiddingRepo) UpdateStatus(id string, status domain.SessionStatus) error {
	_, err := r.db.Exec(`
	  UPDATE bidding_sessions SET status=?, updated_at=CURRENT_TIMESTAMP WHERE id=?
	`, status, id)
	return err
}

func (r *BiddingRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM bidding_sessions WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// HasActiveSession reports whether the art already has an Open/Closed session.
func (r *BiddingRepo) HasActiveSession(artID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COUNT(*) FROM bidding_sessions
	  WHERE art_id=? AND status IN ('Open','Closed')`, artID)
	return n > 0, err
}

// Bids returns a session's bids in submission order.
func (r *BiddingRepo) Bids(sessionID string) ([]domain.Bid, error) {
	var out []domain.Bid
	err := r.db.Select(&out, `
	  SELECT id, session_id, seq, name, offer_price, contact, note, bid_time
	  FROM bids WHERE session_id=? ORDER BY seq`, sessionID)
	return out, err
}

// AppendBid assigns the next per-session sequence number and inserts the bid
// in one transaction, so concurrent submissions serialize on the database.
func (r *BiddingRepo) AppendBid(b domain.Bid) (domain.Bid, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return domain.Bid{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var next int
	if err := tx.Get(&next, `SELECT COALESCE(MAX(seq),0)+1 FROM bids WHERE session_id=?`, b.SessionID); err != nil {
		return domain.Bid{}, err
	}
	b.Seq = next
	if _, err := tx.Exec(`
	  INSERT INTO bids(id, session_id, seq, name, offer_price, contact, note, bid_time)
	  VALUES(?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, b.ID, b.SessionID, b.Seq, b.Name, b.OfferPrice, b.Contact, b.Note); err != nil {
		return domain.Bid{}, err
	}
	if err := tx.Get(&b, `
	  SELECT id, session_id, seq, name, offer_price, contact, note, bid_time
	  FROM bids WHERE id=?`, b.ID); err != nil {
		return domain.Bid{}, err
	}

	return b, tx.Commit()
}

// PendingArts lists arts in Bid status with no Open/Closed session -
// eligible for batch session creation.
func (r *BiddingRepo) PendingArts() ([]domain.Art, error) {
	var out []domain.Art
	err := r.db.Select(&out, `
	  SELECT a.id, a.art_code, a.title, a.artist, a.description, a.image_url, a.price,
	         a.status, a.bid_end_date, a.bid_end_time, a.created_at,
	         COALESCE(a.updated_at,'') AS updated_at
	  FROM arts a
	  WHERE a.status='Bid'
	    AND NOT EXISTS (
	      SELECT 1 FROM bidding_sessions s
	      WHERE s.art_id=a.id AND s.status IN ('Open','Closed'))
	  ORDER BY a.created_at DESC`)
	return out, err
}

// StatusChangedRow pairs an active session with the current status of its art.
type StatusChangedRow struct {
	SessionID     string `db:"session_id" json:"sessionId"`
	SessionStatus string `db:"session_status" json:"sessionStatus"`
	ArtID         string `db:"art_id" json:"artId"`
	ArtCode       string `db:"art_code" json:"artCode"`
	ArtStatus     string `db:"art_status" json:"artStatus"`
}

// StatusChanged finds Open/Closed sessions whose art is no longer in Bid
// status (or no longer exists). With transactional cascades this can only
// surface rows written before those cascades existed.
func (r *BiddingRepo) StatusChanged() ([]StatusChangedRow, error) {
	var out []StatusChangedRow
	err := r.db.Select(&out, `
	  SELECT s.id AS session_id, s.status AS session_status, s.art_id,
	         COALESCE(a.art_code,'') AS art_code, COALESCE(a.status,'') AS art_status
	  FROM bidding_sessions s
	  LEFT JOIN arts a ON a.id = s.art_id
	  WHERE s.status IN ('Open','Closed')
	    AND (a.id IS NULL OR a.status != 'Bid')
	  ORDER BY s.created_at`)
	return out, err
}

// SyncDates copies each art's bid end date/time onto its active sessions and
// returns the number of session rows rewritten.
func (r *BiddingRepo) SyncDates() (int64, error) {
	res, err := r.db.Exec(`
	  UPDATE bidding_sessions
	  SET bid_end_date = (SELECT bid_end_date FROM arts WHERE arts.id = bidding_sessions.art_id),
	      bid_end_time = (SELECT bid_end_time FROM arts WHERE arts.id = bidding_sessions.art_id),
	      updated_at = CURRENT_TIMESTAMP
	  WHERE status IN ('Open','Closed')
	    AND EXISTS (
	      SELECT 1 FROM arts
	      WHERE arts.id = bidding_sessions.art_id
	        AND (arts.bid_end_date != bidding_sessions.bid_end_date
	          OR arts.bid_end_time != bidding_sessions.bid_end_time))`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
