package http

import (
	"github.com/nats-io/nats.go"

	"github.com/samirrijal/fitpass/internal/adapters/postgres"
	"github.com/samirrijal/fitpass/internal/adapters/valkey"
	"github.com/samirrijal/fitpass/internal/core/usecases"
	"github.com/samirrijal/fitpass/internal/pkg/token"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Users    *usecases.UserService
	Auth     *usecases.AuthService
	Gyms     *usecases.GymService
	CheckIns *usecases.CheckInService
	Tokens   *token.Service
	NATS     *nats.Conn
	DB       *postgres.DB
	Cache    *valkey.Cache
}
