package services

import (
	"database/sql"
	"errors"

	"arthaus/internal/domain"
	"arthaus/internal/repos"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrBadStatus         = errors.New("unknown status value")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrDuplicateCode     = errors.New("art code already exists")
)

// ArtService owns Art CRUD and the status-sync rules that keep an Art's
// status consistent with its bidding sessions. Every cascade commits as a
// single transaction.
type ArtService struct {
	Arts     *repos.ArtRepo
	Sessions *repos.BiddingRepo
}

func NewArtService(arts *repos.ArtRepo, sessions *repos.BiddingRepo) *ArtService {
	return &ArtService{Arts: arts, Sessions: sessions}
}

type ArtInput struct {
	ArtCode     string
	Title       string
	Artist      string
	Description string
	ImageURL    string
	Price       float64
	Status      domain.ArtStatus
	BidEndDate  string
	BidEndTime  string
}

func (s *ArtService) Create(in ArtInput) (domain.Art, error) {
	if !in.Status.Valid() {
		return domain.Art{}, ErrBadStatus
	}
	if _, err := s.Arts.GetByCode(in.ArtCode); err == nil {
		return domain.Art{}, ErrDuplicateCode
	}
	a := domain.Art{
		ID: uuid.NewString(), ArtCode: in.ArtCode, Title: in.Title, Artist: in.Artist,
		Description: in.Description, ImageURL: in.ImageURL, Price: in.Price,
		Status: in.Status, BidEndDate: in.BidEndDate, BidEndTime: in.BidEndTime,
	}
	if err := s.Arts.Create(a); err != nil {
		return domain.Art{}, err
	}
	return s.Arts.Get(a.ID)
}

func (s *ArtService) Get(id string) (domain.Art, error) {
	a, err := s.Arts.Get(id)
	if err == sql.ErrNoRows {
		return domain.Art{}, ErrNotFound
	}
	return a, err
}

func (s *ArtService) List(status string, limit, offset int) ([]domain.Art, error) {
	if status != "" && !domain.ArtStatus(status).Valid() {
		return nil, ErrBadStatus
	}
	return s.Arts.List(status, limit, offset)
}

// Update rewrites the Art. When the status moves away from Bid, every
// Open/Closed session referencing the Art is cancelled in the same
// transaction as the Art write.
func (s *ArtService) Update(id string, in ArtInput) (domain.Art, error) {
	old, err := s.Arts.Get(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Art{}, ErrNotFound
		}
		return domain.Art{}, err
	}
	if !in.Status.Valid() {
		return domain.Art{}, ErrBadStatus
	}
	if in.ArtCode != old.ArtCode {
		if _, err := s.Arts.GetByCode(in.ArtCode); err == nil {
			return domain.Art{}, ErrDuplicateCode
		}
	}

	next := old
	next.ArtCode = in.ArtCode
	next.Title = in.Title
	next.Artist = in.Artist
	next.Description = in.Description
	if in.ImageURL != "" {
		next.ImageURL = in.ImageURL
	}
	next.Price = in.Price
	next.Status = in.Status
	next.BidEndDate = in.BidEndDate
	next.BidEndTime = in.BidEndTime

	leavingBid := old.Status == domain.ArtBid && in.Status != domain.ArtBid
	if err := s.Arts.UpdateCascade(next, leavingBid); err != nil {
		return domain.Art{}, err
	}
	return s.Arts.Get(id)
}

// Delete cancels the Art's active sessions and removes the Art atomically.
func (s *ArtService) Delete(id string) error {
	err := s.Arts.DeleteCascade(id)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}
