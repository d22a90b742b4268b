package services

import (
	"database/sql"

	"arthaus/internal/domain"
	"arthaus/internal/repos"

	"github.com/google/uuid"
)

type ExhibitionService struct {
	Exhibitions *repos.ExhibitionRepo
}

func NewExhibitionService(ex *repos.ExhibitionRepo) *ExhibitionService {
	return &ExhibitionService{Exhibitions: ex}
}

type ExhibitionInput struct {
	Title       string
	Location    string
	StartDate   string
	EndDate     string
	Description string
	ImageURL    string
}

func (s *ExhibitionService) Create(in ExhibitionInput) (domain.Exhibition, error) {
	e := domain.Exhibition{
		ID: uuid.NewString(), Title: in.Title, Location: in.Location,
		StartDate: in.StartDate, EndDate: in.EndDate,
		Description: in.Description, ImageURL: in.ImageURL,
	}
	if err := s.Exhibitions.Create(e); err != nil {
		return domain.Exhibition{}, err
	}
	return s.Exhibitions.Get(e.ID)
}

func (s *ExhibitionService) Get(id string) (domain.Exhibition, error) {
	e, err := s.Exhibitions.Get(id)
	if err == sql.ErrNoRows {
		return domain.Exhibition{}, ErrNotFound
	}
	return e, err
}

func (s *ExhibitionService) List(limit, offset int) ([]domain.Exhibition, error) {
	return s.Exhibitions.List(limit, offset)
}

// Update is a full-field rewrite so a PUT-then-GET round trip returns
// exactly what was sent.
func (s *ExhibitionService) Update(id string, in ExhibitionInput) (domain.Exhibition, error) {
	e := domain.Exhibition{
		ID: id, Title: in.Title, Location: in.Location,
		StartDate: in.StartDate, EndDate: in.EndDate,
		Description: in.Description, ImageURL: in.ImageURL,
	}
	if err := s.Exhibitions.Update(e); err != nil {
		if err == sql.ErrNoRows {
			return domain.Exhibition{}, ErrNotFound
		}
		return domain.Exhibition{}, err
	}
	return s.Exhibitions.Get(id)
}

func (s *ExhibitionService) Delete(id string) error {
	err := s.Exhibitions.Delete(id)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}
