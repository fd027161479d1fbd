package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"filegate/internal/auth"
	"filegate/internal/http/middleware"
	"filegate/internal/model"
	"filegate/internal/service"
)

// Options carries the optional knobs of RegisterRoutes.
type Options struct {
	DefaultStorageType model.StorageType
	Logger             *zap.Logger
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
//
// Routes registered before the session gate are public. Anything the app
// registered earlier (metrics, swagger) stays public as well.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.StorageManager, authn *auth.Authenticator, opts Options) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	defaultType := opts.DefaultStorageType
	if defaultType == "" {
		defaultType = model.StorageStructured
	}

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/file/:id", DownloadFile(svc, log))
	app.Get("/auth", LoginPage(authn))
	app.Post("/auth", Login(authn, log))

	app.Use(middleware.RequireSession(authn, unauthenticated))

	app.Get("/", Index(svc, defaultType, log))
	app.Get("/api/files", ListFiles(svc, log))
	app.Post("/upload", UploadFile(svc, defaultType, log))
	app.Post("/delete", DeleteFile(svc, log))
	app.All("/logout", Logout(authn))
}
