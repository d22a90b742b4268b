package repos

import (
	"arthaus/internal/domain"

	"github.com/jmoiron/sqlx"
)

type AdminRepo struct{ db *sqlx.DB }

func NewAdminRepo(db *sqlx.DB) *AdminRepo { return &AdminRepo{db: db} }

func (r *AdminRepo) Create(a domain.Admin) error {
	_, err := r.db.Exec(`
	  INSERT INTO admins(id,email,name,password_hash) VALUES(?,?,?,?)
	`, a.ID, a.Email, a.Name, a.Hash)
	return err
}

func (r *AdminRepo) ByEmail(email string) (*domain.Admin, error) {
	var a domain.Admin
	err := r.db.Get(&a, `
	  SELECT id,email,name,password_hash FROM admins WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
