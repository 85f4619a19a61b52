package internal

import (
	"clippie/media-api/db"
	"clippie/media-api/internal/cdn"
	"clippie/media-api/internal/service"
	"clippie/media-api/pkg/security"
)

// Deps is handed to every handler. Built once in the router, no
// package-level state
type Deps struct {
	DB       *db.Manager
	Auth     *service.Auth
	Media    *service.Media
	Sessions *security.Sessions
	Signer   *cdn.Signer
}
