package api

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/dropbox/godropbox/time2"
	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/sam247/disclosurely-sub001/internal/config"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/audit"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/crypto"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/flags"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/message"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/pii"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/ratelimit"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/report"
	"github.com/sam247/disclosurely-sub001/internal/disclosure/storage"
	"github.com/sam247/disclosurely-sub001/internal/util"

	// Import postgres driver for database/sql package
	_ "github.com/lib/pq"
)

type Router struct {
	Routes        []*echo.Route
	Root          *echo.Group
	Management    *echo.Group
	APIV1Reports  *echo.Group
	APIV1Messages *echo.Group
}

// Server is a central struct keeping all the dependencies.
// It is initialized with wire, which handles making the new instances of the
// components in the right order. To add a new component, 3 steps are required:
// - declaring it in this struct
// - adding a provider function in providers.go
// - adding the provider's function name to the arguments of wire.Build() in wire.go
//
// Components labeled as `wire:"-"` will be skipped and have to be initialized
// after the InitNewServer* call.
type Server struct {
	// skip wire:
	// -> initialized with router.Init(s) function
	Echo   *echo.Echo `wire:"-"`
	Router *Router    `wire:"-"`

	Config config.Server
	DB     *sql.DB
	Redis  goredis.UniversalClient
	Clock  time2.Clock

	DataStore      storage.DataStore
	Crypto         *crypto.Service
	Flags          flags.Lookup
	Scanner        *pii.Scanner
	Limiter        *ratelimit.Limiter
	AuditLogger    audit.Logger
	ReportService  report.Service
	MessageService message.Service
}

// newServerWithComponents is used by wire to initialize the server components.
func newServerWithComponents(
	cfg config.Server,
	db *sql.DB,
	redisClient goredis.UniversalClient,
	clock time2.Clock,
	dataStore storage.DataStore,
	cryptoService *crypto.Service,
	flagLookup flags.Lookup,
	scanner *pii.Scanner,
	limiter *ratelimit.Limiter,
	auditLogger audit.Logger,
	reportService report.Service,
	messageService message.Service,
) *Server {
	return &Server{
		Config:         cfg,
		DB:             db,
		Redis:          redisClient,
		Clock:          clock,
		DataStore:      dataStore,
		Crypto:         cryptoService,
		Flags:          flagLookup,
		Scanner:        scanner,
		Limiter:        limiter,
		AuditLogger:    auditLogger,
		ReportService:  reportService,
		MessageService: messageService,
	}
}

func NewServer(cfg config.Server) *Server {
	return &Server{
		Config: cfg,
	}
}

func (s *Server) Ready() bool {
	// Redis is a legitimate nil when the limiter runs on the in-process
	// store; substitute a placeholder for the initialization check only.
	checkServer := *s
	if !s.Config.Redis.Enabled && s.Redis == nil {
		checkServer.Redis = goredis.NewClient(&goredis.Options{})
	}

	if err := util.IsStructInitialized(&checkServer); err != nil {
		log.Debug().Err(err).Msg("Server is not fully initialized")
		return false
	}

	return true
}

func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.DB != nil {
		log.Debug().Msg("Closing database connection")

		if err := s.DB.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
			log.Error().Err(err).Msg("Failed to close database connection")
			errs = append(errs, err)
		}
	}

	if s.Redis != nil {
		log.Debug().Msg("Closing redis client")

		if err := s.Redis.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close redis client")
			errs = append(errs, err)
		}
	}

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")

		if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to shutdown echo server")
			errs = append(errs, err)
		}
	}

	return errs
}
