package handlers_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"arthaus/internal/config"
	"arthaus/internal/http/handlers"
	applog "arthaus/internal/log"
	"arthaus/internal/repos"
	"arthaus/internal/services"
	"arthaus/internal/storage"
)

// newTestApp wires the full route table against an in-memory database, the
// same way main does, and returns ready-made user and admin bearer tokens.
func newTestApp(t *testing.T) (*fiber.App, string, string) {
	t.Helper()

	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	if err := repos.SeedAdmin(db, "admin@arthaus.test", "Admin", "Passw0rd!"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	media, err := storage.NewMediaStore(t.TempDir())
	if err != nil {
		t.Fatalf("media store: %v", err)
	}

	authSvc := &services.AuthService{
		Users:  repos.NewUserRepo(db),
		Admins: repos.NewAdminRepo(db),
		Mailer: services.LogMailer{},
		Secret: []byte("test-secret"), TokenTTL: time.Hour, ResetTTL: 30 * time.Minute,
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		},
	})
	app.Use(handlers.BodyCap)
	app.Use(requestid.New())

	deps := handlers.NewDeps(db, config.Config{}, authSvc, media)
	requireUser := handlers.RequireUser(authSvc)
	requireAdmin := handlers.RequireAdmin(authSvc)

	app.Get("/arts", deps.ArtHandler.List)
	app.Get("/arts/:id", deps.ArtHandler.Get)
	app.Post("/arts", requireAdmin, deps.ArtHandler.Create)
	app.Put("/arts/:id", requireAdmin, deps.ArtHandler.Update)
	app.Delete("/arts/:id", requireAdmin, deps.ArtHandler.Delete)

	bidding := app.Group("/bidding")
	bidding.Get("/pending-arts", requireAdmin, deps.BiddingHandler.PendingArts)
	bidding.Get("/check-status-changes", requireAdmin, deps.BiddingHandler.CheckStatusChanges)
	bidding.Post("/batch", requireAdmin, deps.BiddingHandler.CreateBatch)
	bidding.Post("/sync-dates", requireAdmin, deps.BiddingHandler.SyncDates)
	bidding.Get("/", deps.BiddingHandler.List)
	bidding.Post("/", requireAdmin, deps.BiddingHandler.Create)
	bidding.Get("/:id", deps.BiddingHandler.Get)
	bidding.Put("/:id", requireAdmin, deps.BiddingHandler.Update)
	bidding.Put("/:id/cancel", requireAdmin, deps.BiddingHandler.Cancel)
	bidding.Delete("/:id", requireAdmin, deps.BiddingHandler.Delete)
	bidding.Get("/:id/bids", deps.BiddingHandler.ListBids)
	bidding.Post("/:id/bids", deps.BiddingHandler.SubmitBid)

	app.Get("/exhibitions", deps.ExhibitionHandler.List)
	app.Get("/exhibitions/all/download/pdf", deps.ExhibitionHandler.DownloadPDF)
	app.Get("/exhibitions/:id", deps.ExhibitionHandler.Get)
	app.Post("/exhibitions", requireAdmin, deps.ExhibitionHandler.Create)
	app.Put("/exhibitions/:id", requireAdmin, deps.ExhibitionHandler.Update)
	app.Delete("/exhibitions/:id", requireAdmin, deps.ExhibitionHandler.Delete)

	app.Post("/orders", requireUser, deps.OrderHandler.Place)
	app.Get("/orders/all", requireAdmin, deps.OrderHandler.ListAll)
	app.Get("/orders", requireUser, deps.OrderHandler.Mine)
	app.Patch("/orders/:id/status", requireAdmin, deps.OrderHandler.UpdateStatus)
	app.Delete("/orders/:id", requireAdmin, deps.OrderHandler.Delete)

	app.Post("/users/register", deps.UserHandler.Register)
	app.Post("/users/login", deps.UserHandler.Login)
	app.Post("/users/forgot-password", deps.UserHandler.ForgotPassword)
	app.Put("/users/reset-password/:token", deps.UserHandler.ResetPassword)
	app.Get("/users/profile", requireUser, deps.UserHandler.Profile)
	app.Put("/users/profile", requireUser, deps.UserHandler.UpdateProfile)
	app.Delete("/users/profile", requireUser, deps.UserHandler.DeleteProfile)
	app.Get("/users/admin/all", requireAdmin, deps.UserHandler.AdminList)
	app.Get("/users/admin/:id", requireAdmin, deps.UserHandler.AdminGet)
	app.Delete("/users/admin/:id", requireAdmin, deps.UserHandler.AdminDelete)

	app.Post("/admin/admin-login", deps.AdminHandler.Login)
	app.Post("/admin/admin-register", requireAdmin, deps.AdminHandler.Register)

	// user token
	if _, err := authSvc.Register("alice@arthaus.test", "Alice", "", "", "Passw0rd!"); err != nil {
		t.Fatalf("register user: %v", err)
	}
	_, userTok, err := authSvc.Login("alice@arthaus.test", "Passw0rd!")
	if err != nil {
		t.Fatalf("user login: %v", err)
	}
	_, adminTok, err := authSvc.AdminLogin("admin@arthaus.test", "Passw0rd!")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}

	return app, userTok, adminTok
}

func doJSON(t *testing.T, app *fiber.App, method, path, token, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		_ = json.Unmarshal(raw, &out)
	}
	return resp.StatusCode, out
}

func doJSONList(t *testing.T, app *fiber.App, method, path, token, body string) (int, []map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	var out []map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}
