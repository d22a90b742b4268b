package repos

import (
	"database/sql"

	"arthaus/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) Create(u domain.User) error {
	_, err := r.DB.Exec(`
	  INSERT INTO users(id,email,name,phone,address,password_hash)
	  VALUES(?,?,?,?,?,?)
	`, u.ID, u.Email, u.Name, u.Phone, u.Address, u.Hash)
	return err
}

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
	  SELECT id,email,name,phone,address,password_hash
	  FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
	  SELECT id,email,name,phone,address,password_hash
	  FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) List() ([]domain.User, error) {
	var out []domain.User
	err := r.DB.Select(&out, `
	  SELECT id,email,name,phone,address,password_hash
	  FROM users ORDER BY email`)
	return out, err
}

func (r *UserRepo) UpdateProfile(u domain.User) error {
	res, err := r.DB.Exec(`
	  UPDATE users SET name=?, phone=?, address=?, updated_at=CURRENT_TIMESTAMP WHERE id=?
	`, u.Name, u.Phone, u.Address, u.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *UserRepo) UpdatePassword(id, hash string) error {
	_, err := r.DB.Exec(`
	  UPDATE users SET password_hash=?, updated_at=CURRENT_TIMESTAMP WHERE id=?
	`, hash, id)
	return err
}

// Delete removes the user; reset tokens cascade via FK.
func (r *UserRepo) Delete(id string) error {
	res, err := r.DB.Exec(`DELETE FROM users WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ---------- Password reset tokens ----------

func (r *UserRepo) SaveResetToken(token, userID, expiresAt string) error {
	_, err := r.DB.Exec(`
	  INSERT INTO reset_tokens(token,user_id,expires_at) VALUES(?,?,?)
	`, token, userID, expiresAt)
	return err
}

type ResetToken struct {
	Token     string `db:"token"`
	UserID    string `db:"user_id"`
	ExpiresAt string `db:"expires_at"`
}

func (r *UserRepo) ResetTokenByValue(token string) (*ResetToken, error) {
	var t ResetToken
	err := r.DB.Get(&t, `SELECT token,user_id,expires_at FROM reset_tokens WHERE token=?`, token)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *UserRepo) ConsumeResetToken(token string) error {
	_, err := r.DB.Exec(`DELETE FROM reset_tokens WHERE token=?`, token)
	return err
}
