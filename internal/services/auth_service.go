package services

import (
	"database/sql"
	"errors"
	"time"

	"arthaus/internal/domain"
	"arthaus/internal/repos"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCreds   = errors.New("invalid email or password")
	ErrEmailTaken = errors.New("email already registered")
	ErrBadToken   = errors.New("invalid or expired token")
)

// Claims is the bearer-token payload: subject id plus role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	Users  *repos.UserRepo
	Admins *repos.AdminRepo
	Mailer Mailer

	Secret   []byte
	TokenTTL time.Duration
	ResetTTL time.Duration
}

func (s *AuthService) Register(email, name, phone, address, password string) (*domain.User, error) {
	if _, err := s.Users.ByEmail(email); err == nil {
		return nil, ErrEmailTaken
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	u := domain.User{
		ID: uuid.NewString(), Email: email, Name: name,
		Phone: phone, Address: address, Hash: string(h),
	}
	if err := s.Users.Create(u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login verifies user credentials and issues a bearer token.
func (s *AuthService) Login(email, password string) (*domain.User, string, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, "", ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, "", ErrBadCreds
	}
	tok, err := s.issue(u.ID, domain.RoleUser)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

func (s *AuthService) AdminLogin(email, password string) (*domain.Admin, string, error) {
	a, err := s.Admins.ByEmail(email)
	if err != nil {
		return nil, "", ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(a.Hash), []byte(password)) != nil {
		return nil, "", ErrBadCreds
	}
	tok, err := s.issue(a.ID, domain.RoleAdmin)
	if err != nil {
		return nil, "", err
	}
	return a, tok, nil
}

// RegisterAdmin creates a further admin account; callers gate this behind an
// existing admin token.
func (s *AuthService) RegisterAdmin(email, name, password string) (*domain.Admin, error) {
	if _, err := s.Admins.ByEmail(email); err == nil {
		return nil, ErrEmailTaken
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	a := domain.Admin{ID: uuid.NewString(), Email: email, Name: name, Hash: string(h)}
	if err := s.Admins.Create(a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AuthService) issue(subject, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// Verify parses a bearer token and returns its claims.
func (s *AuthService) Verify(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return s.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrBadToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, ErrBadToken
	}
	return claims, nil
}

// ForgotPassword issues a single-use reset token and mails it to the user.
// An unknown email returns nil so the endpoint cannot be used to probe
// registered addresses.
func (s *AuthService) ForgotPassword(email string) error {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil
		}
		return err
	}
	token := uuid.NewString()
	expires := time.Now().Add(s.ResetTTL).UTC().Format(time.RFC3339)
	if err := s.Users.SaveResetToken(token, u.ID, expires); err != nil {
		return err
	}
	if s.Mailer != nil {
		s.Mailer.Send(u.Email, "Password reset",
			"Use this token to reset your password: "+token)
	}
	return nil
}

func (s *AuthService) ResetPassword(token, newPassword string) error {
	t, err := s.Users.ResetTokenByValue(token)
	if err != nil {
		return ErrBadToken
	}
	exp, err := time.Parse(time.RFC3339, t.ExpiresAt)
	if err != nil || time.Now().After(exp) {
		_ = s.Users.ConsumeResetToken(token)
		return ErrBadToken
	}
	h, err := bcrypt.GenerateFromPassword([]byte(newPassword), 12)
	if err != nil {
		return err
	}
	if err := s.Users.UpdatePassword(t.UserID, string(h)); err != nil {
		return err
	}
	return s.Users.ConsumeResetToken(token)
}
