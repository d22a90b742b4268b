package services_test

import (
	"testing"
	"time"

	"arthaus/internal/domain"
	"arthaus/internal/repos"
	"arthaus/internal/services"
)

type captureMailer struct {
	to, body string
}

func (m *captureMailer) Send(to, subject, body string) { m.to, m.body = to, body }

func newAuth(t *testing.T) (*services.AuthService, *captureMailer) {
	t.Helper()
	db := memdb(t)
	mailer := &captureMailer{}
	return &services.AuthService{
		Users:  repos.NewUserRepo(db),
		Admins: repos.NewAdminRepo(db),
		Mailer: mailer,
		Secret: []byte("test-secret"), TokenTTL: time.Hour, ResetTTL: 30 * time.Minute,
	}, mailer
}

func TestRegisterLoginAndVerify(t *testing.T) {
	auth, _ := newAuth(t)
	u, err := auth.Register("alice@arthaus.test", "Alice", "", "", "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}
	if u.Hash == "Passw0rd!" || u.Hash == "" {
		t.Fatal("password stored in plaintext")
	}

	if _, _, err := auth.Login("alice@arthaus.test", "wrong-pass"); err != services.ErrBadCreds {
		t.Fatalf("want ErrBadCreds, got %v", err)
	}
	_, tok, err := auth.Login("alice@arthaus.test", "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := auth.Verify(tok)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Subject != u.ID || claims.Role != domain.RoleUser {
		t.Fatalf("bad claims: %+v", claims)
	}
}

func TestDuplicateRegistrationRejected(t *testing.T) {
	auth, _ := newAuth(t)
	if _, err := auth.Register("bob@arthaus.test", "Bob", "", "", "Passw0rd!"); err != nil {
		t.Fatal(err)
	}
	if _, err := auth.Register("bob@arthaus.test", "Bob Again", "", "", "Passw0rd!"); err != services.ErrEmailTaken {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	auth, _ := newAuth(t)
	if _, err := auth.Verify("not-a-token"); err != services.ErrBadToken {
		t.Fatalf("want ErrBadToken, got %v", err)
	}

	other, _ := newAuth(t)
	other.Secret = []byte("different-secret")
	if _, err := other.Register("eve@arthaus.test", "Eve", "", "", "Passw0rd!"); err != nil {
		t.Fatal(err)
	}
	_, tok, err := other.Login("eve@arthaus.test", "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := auth.Verify(tok); err != services.ErrBadToken {
		t.Fatalf("token signed with another secret must fail, got %v", err)
	}
}

func TestAdminLoginIssuesAdminRole(t *testing.T) {
	auth, _ := newAuth(t)
	if _, err := auth.RegisterAdmin("root@arthaus.test", "Root", "Adm1nPass!"); err != nil {
		t.Fatal(err)
	}
	a, tok, err := auth.AdminLogin("root@arthaus.test", "Adm1nPass!")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := auth.Verify(tok)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Subject != a.ID || claims.Role != domain.RoleAdmin {
		t.Fatalf("bad admin claims: %+v", claims)
	}
}

func TestForgotAndResetPassword(t *testing.T) {
	auth, mailer := newAuth(t)
	if _, err := auth.Register("carol@arthaus.test", "Carol", "", "", "Passw0rd!"); err != nil {
		t.Fatal(err)
	}

	// Unknown address: silent no-op.
	if err := auth.ForgotPassword("nobody@arthaus.test"); err != nil {
		t.Fatal(err)
	}
	if mailer.to != "" {
		t.Fatal("mail sent for unknown address")
	}

	if err := auth.ForgotPassword("carol@arthaus.test"); err != nil {
		t.Fatal(err)
	}
	if mailer.to != "carol@arthaus.test" || mailer.body == "" {
		t.Fatalf("reset mail not sent: %+v", mailer)
	}
	// The token is the last field of the message body.
	token := mailer.body[len(mailer.body)-36:]

	if err := auth.ResetPassword(token, "N3wSecret!"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := auth.Login("carol@arthaus.test", "Passw0rd!"); err != services.ErrBadCreds {
		t.Fatalf("old password must stop working, got %v", err)
	}
	if _, _, err := auth.Login("carol@arthaus.test", "N3wSecret!"); err != nil {
		t.Fatalf("new password must work: %v", err)
	}
	// Token is single use.
	if err := auth.ResetPassword(token, "An0therOne!"); err != services.ErrBadToken {
		t.Fatalf("want ErrBadToken on reuse, got %v", err)
	}
}
