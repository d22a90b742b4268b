package services

import (
	"database/sql"
	"errors"
	"strings"

	"arthaus/internal/domain"
	"arthaus/internal/repos"

	"github.com/google/uuid"
)

var (
	ErrArtNotBiddable = errors.New("art is not listed for bidding")
	ErrSessionExists  = errors.New("art already has an active bidding session")
	ErrSessionNotOpen = errors.New("bidding session is not open")
)

// BiddingService owns session lifecycle, bid submission, and the
// reconciliation operations the admin console drives.
type BiddingService struct {
	Arts     *repos.ArtRepo
	Sessions *repos.BiddingRepo
}

func NewBiddingService(arts *repos.ArtRepo, sessions *repos.BiddingRepo) *BiddingService {
	return &BiddingService{Arts: arts, Sessions: sessions}
}

// CreateSession opens a session for a Bid-status art, copying the art's end
// date/time. At most one Open/Closed session per art.
func (s *BiddingService) CreateSession(artID string, startingPrice float64) (domain.BiddingSession, error) {
	art, err := s.Arts.Get(artID)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.BiddingSession{}, ErrNotFound
		}
		return domain.BiddingSession{}, err
	}
	if art.Status != domain.ArtBid {
		return domain.BiddingSession{}, ErrArtNotBiddable
	}
	active, err := s.Sessions.HasActiveSession(artID)
	if err != nil {
		return domain.BiddingSession{}, err
	}
	if active {
		return domain.BiddingSession{}, ErrSessionExists
	}

	sess := domain.BiddingSession{
		ID:            uuid.NewString(),
		ArtID:         artID,
		StartingPrice: startingPrice,
		BidEndDate:    art.BidEndDate,
		BidEndTime:    art.BidEndTime,
		Status:        domain.SessionOpen,
	}
	if err := s.Sessions.Create(sess); err != nil {
		// The partial unique index catches a concurrent create that raced
		// past the check above.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domain.BiddingSession{}, ErrSessionExists
		}
		return domain.BiddingSession{}, err
	}
	return s.Sessions.Get(sess.ID)
}

type BatchItem struct {
	ArtID         string  `json:"artId"`
	StartingPrice float64 `json:"startingPrice"`
}

type BatchResult struct {
	ArtID     string `json:"artId"`
	SessionID string `json:"sessionId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// CreateBatch creates sessions for a list of pending arts. Items fail
// independently; the caller gets a per-item result.
func (s *BiddingService) CreateBatch(items []BatchItem) []BatchResult {
	out := make([]BatchResult, 0, len(items))
	for _, it := range items {
		res := BatchResult{ArtID: it.ArtID}
		sess, err := s.CreateSession(it.ArtID, it.StartingPrice)
		if err != nil {
			res.Error = err.Error()
		} else {
			res.SessionID = sess.ID
		}
		out = append(out, res)
	}
	return out
}

func (s *BiddingService) Get(id string) (domain.BiddingSession, error) {
	sess, err := s.Sessions.Get(id)
	if err == sql.ErrNoRows {
		return domain.BiddingSession{}, ErrNotFound
	}
	return sess, err
}

func (s *BiddingService) List(status string, limit, offset int) ([]domain.BiddingSession, error) {
	if status != "" && !domain.SessionStatus(status).Valid() {
		return nil, ErrBadStatus
	}
	return s.Sessions.List(status, limit, offset)
}

type SessionUpdate struct {
	StartingPrice *float64
	BidEndDate    *string
	BidEndTime    *string
	Status        *domain.SessionStatus
}

// Update applies field edits; a status change must be a legal transition.
func (s *BiddingService) Update(id string, in SessionUpdate) (domain.BiddingSession, error) {
	sess, err := s.Get(id)
	if err != nil {
		return domain.BiddingSession{}, err
	}
	if in.StartingPrice != nil {
		sess.StartingPrice = *in.StartingPrice
	}
	if in.BidEndDate != nil {
		sess.BidEndDate = *in.BidEndDate
	}
	if in.BidEndTime != nil {
		sess.BidEndTime = *in.BidEndTime
	}
	if in.Status != nil && *in.Status != sess.Status {
		if !in.Status.Valid() {
			return domain.BiddingSession{}, ErrBadStatus
		}
		if !sess.Status.CanTransition(*in.Status) {
			return domain.BiddingSession{}, ErrIllegalTransition
		}
		sess.Status = *in.Status
	}
	if err := s.Sessions.Update(sess); err != nil {
		return domain.BiddingSession{}, err
	}
	return s.Sessions.Get(id)
}

// Cancel moves a session to Cancelled; already-terminal sessions are rejected.
func (s *BiddingService) Cancel(id string) (domain.BiddingSession, error) {
	sess, err := s.Get(id)
	if err != nil {
		return domain.BiddingSession{}, err
	}
	if !sess.Status.CanTransition(domain.SessionCancelled) {
		return domain.BiddingSession{}, ErrIllegalTransition
	}
	if err := s.Sessions.UpdateStatus(id, domain.SessionCancelled); err != nil {
		return domain.BiddingSession{}, err
	}
	return s.Sessions.Get(id)
}

func (s *BiddingService) Delete(id string) error {
	err := s.Sessions.Delete(id)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}

type BidInput struct {
	Name       string
	OfferPrice float64
	Contact    string
	Note       string
}

// SubmitBid appends a bid to an Open session. The offer price is deliberately
// not checked against the starting price or the current high bid; the high
// bid is a derived value, never stored.
func (s *BiddingService) SubmitBid(sessionID string, in BidInput) (domain.Bid, error) {
	sess, err := s.Get(sessionID)
	if err != nil {
		return domain.Bid{}, err
	}
	if sess.Status != domain.SessionOpen {
		return domain.Bid{}, ErrSessionNotOpen
	}
	b := domain.Bid{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		Name:       in.Name,
		OfferPrice: in.OfferPrice,
		Contact:    in.Contact,
		Note:       in.Note,
	}
	return s.Sessions.AppendBid(b)
}

// BidList is a session's bids in submission order plus the recomputed high bid.
type BidList struct {
	SessionID  string       `json:"sessionId"`
	Bids       []domain.Bid `json:"bids"`
	HighestBid float64      `json:"highestBid"`
}

func (s *BiddingService) ListBids(sessionID string) (BidList, error) {
	if _, err := s.Get(sessionID); err != nil {
		return BidList{}, err
	}
	bids, err := s.Sessions.Bids(sessionID)
	if err != nil {
		return BidList{}, err
	}
	out := BidList{SessionID: sessionID, Bids: bids}
	for _, b := range bids {
		if b.OfferPrice > out.HighestBid {
			out.HighestBid = b.OfferPrice
		}
	}
	return out, nil
}

// ---------- Reconciliation ----------

func (s *BiddingService) PendingArts() ([]domain.Art, error) {
	return s.Sessions.PendingArts()
}

func (s *BiddingService) CheckStatusChanges() ([]repos.StatusChangedRow, error) {
	return s.Sessions.StatusChanged()
}

func (s *BiddingService) SyncDates() (int64, error) {
	return s.Sessions.SyncDates()
}
