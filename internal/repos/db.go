package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Arts
CREATE TABLE IF NOT EXISTS arts(
  id TEXT PRIMARY KEY,
  art_code TEXT NOT NULL UNIQUE,
  title TEXT NOT NULL,
  artist TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  image_url TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  status TEXT NOT NULL CHECK (status IN ('DirectSale','Bid','NotListed')),
  bid_end_date TEXT NOT NULL DEFAULT '',
  bid_end_time TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_arts_code   ON arts(art_code);
CREATE INDEX IF NOT EXISTS idx_arts_status        ON arts(status);
CREATE INDEX IF NOT EXISTS idx_arts_created_at    ON arts(created_at);

-- Bidding sessions. art_id is deliberately not a foreign key: cancelled
-- sessions outlive their art as an audit trail when the art is deleted.
CREATE TABLE IF NOT EXISTS bidding_sessions(
  id TEXT PRIMARY KEY,
  art_id TEXT NOT NULL,
  starting_price NUMERIC NOT NULL CHECK (starting_price >= 0),
  bid_end_date TEXT NOT NULL DEFAULT '',
  bid_end_time TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL CHECK (status IN ('Open','Closed','Completed','Cancelled')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_art    ON bidding_sessions(art_id);
CREATE INDEX IF NOT EXISTS idx_sessions_status ON bidding_sessions(status);
-- At most one Open/Closed session per art, enforced by the database so
-- concurrent creates cannot both slip past the service-level check.
CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_one_active
  ON bidding_sessions(art_id) WHERE status IN ('Open','Closed');

-- Bids (seq preserves submission order per session)
CREATE TABLE IF NOT EXISTS bids(
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL REFERENCES bidding_sessions(id) ON DELETE CASCADE,
  seq INTEGER NOT NULL,
  name TEXT NOT NULL,
  offer_price NUMERIC NOT NULL,
  contact TEXT NOT NULL DEFAULT '',
  note TEXT NOT NULL DEFAULT '',
  bid_time TEXT DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(session_id, seq)
);
CREATE INDEX IF NOT EXISTS idx_bids_session ON bids(session_id);

-- Exhibitions
CREATE TABLE IF NOT EXISTS exhibitions(
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  location TEXT NOT NULL DEFAULT '',
  start_date TEXT NOT NULL DEFAULT '',
  end_date TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  image_url TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  art_code TEXT NOT NULL,
  sell_type TEXT NOT NULL CHECK (sell_type IN ('Direct','Bid')),
  customer_name TEXT NOT NULL DEFAULT '',
  customer_email TEXT NOT NULL DEFAULT '',
  customer_phone TEXT NOT NULL DEFAULT '',
  shipping_address TEXT NOT NULL DEFAULT '',
  payment_receipt TEXT NOT NULL DEFAULT '',
  total_amount NUMERIC NOT NULL CHECK (total_amount >= 0),
  status TEXT NOT NULL DEFAULT 'PaymentReview',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_orders_email      ON orders(customer_email);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

-- Users & admins
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  phone TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  password_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS admins(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_admins_email ON admins(LOWER(email));

-- Password reset tokens
CREATE TABLE IF NOT EXISTS reset_tokens(
  token TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  expires_at TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_reset_tokens_user ON reset_tokens(user_id);
`
	_, err := db.Exec(schema)
	return err
}

// SeedAdmin ensures one bootstrap admin exists (idempotent; safe on every start).
func SeedAdmin(db *sqlx.DB, email, name, password string) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM admins`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Printf("[seed] creating bootstrap admin %s", email)
	h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO admins(id,email,name,password_hash)
		VALUES('a-root',?,?,?)
		ON CONFLICT(email) DO NOTHING
	`, email, name, string(h))
	return err
}
