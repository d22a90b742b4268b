package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"arthaus/internal/config"
	"arthaus/internal/http/handlers"
	applog "arthaus/internal/log"
	"arthaus/internal/repos"
	"arthaus/internal/services"
	"arthaus/internal/storage"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := repos.SeedAdmin(db, cfg.AdminEmail, "Admin", cfg.AdminPassword); err != nil {
		log.Fatal(err)
	}

	media, err := storage.NewMediaStore(cfg.MediaDir)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	adminRepo := repos.NewAdminRepo(db)
	authSvc := &services.AuthService{
		Users: userRepo, Admins: adminRepo, Mailer: services.LogMailer{},
		Secret:   []byte(cfg.JWTSecret),
		TokenTTL: time.Duration(cfg.JWTTTLHours) * time.Hour,
		ResetTTL: time.Duration(cfg.ResetTTLMin) * time.Minute,
	}

	app := fiber.New(fiber.Config{
		// Hard ceiling; only the multipart upload routes get close to it
		BodyLimit: handlers.UploadBodyLimit,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and respond generically; never leak internals
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		},
	})

	// ---------- Middlewares ----------
	app.Use(handlers.BodyCap)
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/media/")
		},
	}))

	loginLimiter := limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, try again later"})
		},
	})
	bidLimiter := limiter.New(limiter.Config{
		Max:        15,
		Expiration: 30 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|bid"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.bid.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})

	// ---------- Media ----------
	mediaDir := media.Dir
	log.Printf("[static] /media -> %s", mediaDir)

	// Guarded media to avoid traversal
	app.Get("/media/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		// Block encoded traversal attempts as well as raw .. or null bytes
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		full := filepath.Join(mediaDir, clean)
		return c.SendFile(full, true)
	})

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, authSvc, media)
	requireUser := handlers.RequireUser(authSvc)
	requireAdmin := handlers.RequireAdmin(authSvc)

	// Arts
	app.Get("/arts", deps.ArtHandler.List)
	app.Get("/arts/:id", deps.ArtHandler.Get)
	app.Post("/arts", requireAdmin, deps.ArtHandler.Create)
	app.Put("/arts/:id", requireAdmin, deps.ArtHandler.Update)
	app.Delete("/arts/:id", requireAdmin, deps.ArtHandler.Delete)

	// Bidding: fixed paths before :id
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
	bidding.Post("/:id/bids", bidLimiter, deps.BiddingHandler.SubmitBid)

	// Exhibitions
	app.Get("/exhibitions", deps.ExhibitionHandler.List)
	app.Get("/exhibitions/all/download/pdf", deps.ExhibitionHandler.DownloadPDF)
	app.Get("/exhibitions/:id", deps.ExhibitionHandler.Get)
	app.Post("/exhibitions", requireAdmin, deps.ExhibitionHandler.Create)
	app.Put("/exhibitions/:id", requireAdmin, deps.ExhibitionHandler.Update)
	app.Delete("/exhibitions/:id", requireAdmin, deps.ExhibitionHandler.Delete)

	// Orders
	app.Post("/orders", requireUser, deps.OrderHandler.Place)
	app.Get("/orders/all", requireAdmin, deps.OrderHandler.ListAll)
	app.Get("/orders", requireUser, deps.OrderHandler.Mine)
	app.Patch("/orders/:id/status", requireAdmin, deps.OrderHandler.UpdateStatus)
	app.Delete("/orders/:id", requireAdmin, deps.OrderHandler.Delete)

	// Users
	app.Post("/users/register", deps.UserHandler.Register)
	app.Post("/users/login", loginLimiter, deps.UserHandler.Login)
	app.Post("/users/forgot-password", loginLimiter, deps.UserHandler.ForgotPassword)
	app.Put("/users/reset-password/:token", deps.UserHandler.ResetPassword)
	app.Get("/users/profile", requireUser, deps.UserHandler.Profile)
	app.Put("/users/profile", requireUser, deps.UserHandler.UpdateProfile)
	app.Delete("/users/profile", requireUser, deps.UserHandler.DeleteProfile)
	app.Get("/users/admin/all", requireAdmin, deps.UserHandler.AdminList)
	app.Get("/users/admin/:id", requireAdmin, deps.UserHandler.AdminGet)
	app.Delete("/users/admin/:id", requireAdmin, deps.UserHandler.AdminDelete)

	// Admin accounts
	app.Post("/admin/admin-login", loginLimiter, deps.AdminHandler.Login)
	app.Post("/admin/admin-register", requireAdmin, deps.AdminHandler.Register)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
