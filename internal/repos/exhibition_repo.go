package repos

import (
	"database/sql"

	"arthaus/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ExhibitionRepo struct{ db *sqlx.DB }

func NewExhibitionRepo(db *sqlx.DB) *ExhibitionRepo { return &ExhibitionRepo{db: db} }

const exhibitionCols = `id, title, location, start_date, end_date, description, image_url,
	created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ExhibitionRepo) Create(e domain.Exhibition) error {
	_, err := r.db.Exec(`
	  INSERT INTO exhibitions(id, title, location, start_date, end_date, description, image_url, created_at)
	  VALUES(?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, e.ID, e.Title, e.Location, e.StartDate, e.EndDate, e.Description, e.ImageURL)
	return err
}

func (r *ExhibitionRepo) Get(id string) (domain.Exhibition, error) {
	var e domain.Exhibition
	err := r.db.Get(&e, `SELECT `+exhibitionCols+` FROM exhibitions WHERE id = ?`, id)
	return e, err
}

func (r *ExhibitionRepo) List(limit, offset int) ([]domain.Exhibition, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Exhibition
	err := r.db.Select(&out, `
	  SELECT `+exhibitionCols+` FROM exhibitions
	  ORDER BY start_date DESC, created_at DESC LIMIT ? OFFSET ?`, limit, offset)
	return out, err
}

func (r *ExhibitionRepo) Update(e domain.Exhibition) error {
	res, err := r.db.Exec(`
	  UPDATE exhibitions
	  SET title=?, location=?, start_date=?, end_date=?, description=?, image_url=?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, e.Title, e.Location, e.StartDate, e.EndDate, e.Description, e.ImageURL, e.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ExhibitionRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM exhibitions WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
