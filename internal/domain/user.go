package domain

type User struct {
	ID      string `db:"id" json:"id"`
	Email   string `db:"email" json:"email"`
	Name    string `db:"name" json:"name"`
	Phone   string `db:"phone" json:"phone"`
	Address string `db:"address" json:"address"`
	Hash    string `db:"password_hash" json:"-"`
}

type Admin struct {
	ID    string `db:"id" json:"id"`
	Email string `db:"email" json:"email"`
	Name  string `db:"name" json:"name"`
	Hash  string `db:"password_hash" json:"-"`
}

// Roles carried in the bearer token.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)
