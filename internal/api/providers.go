package api

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dropbox/godropbox/time2"
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
)

// PROVIDERS - define here only providers that for various reasons (e.g.
// cyclic dependency) can't live in their corresponding packages or that wrap
// constructors only needing sub-configs.

func NewDB(cfg config.Server) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// NewRedisClient connects the shared rate-limit counter store. Returns nil
// when redis is disabled; the limiter then runs on an in-process store. A
// failed connection is logged but tolerated: the limiter fails open and the
// submission surface stays available.
//
//nolint:ireturn // returning interface is intentional for abstraction
func NewRedisClient(cfg config.Server) goredis.UniversalClient {
	if !cfg.Redis.Enabled {
		return nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis not reachable at startup, rate limiting will fail open until it recovers")
	}

	return client
}

func NewClock(t ...*testing.T) time2.Clock {
	var clock time2.Clock

	useMock := len(t) > 0 && t[0] != nil

	if useMock {
		clock = time2.NewMockClock(time.Now())
	} else {
		clock = time2.DefaultClock
	}

	return clock
}

func NoTest() []*testing.T {
	return nil
}

//nolint:ireturn // returning interface is intentional for abstraction
func NewDataStore(db *sql.DB) storage.DataStore {
	return storage.NewPostgreSQLStore(db)
}

// NewCryptoService creates the tenant crypto service. A missing secret is
// loud but not fatal: the same binary serves non-crypto routes, so the
// process boots, readiness degrades, and each crypto call fails explicitly.
func NewCryptoService(cfg config.Server) *crypto.Service {
	svc := crypto.NewService(cfg.Crypto.Secret)

	if !svc.Ready() {
		log.Error().Msg("SERVER_ENCRYPTION_SECRET is not set: all report submissions will be rejected until it is configured")
	}

	return svc
}

//nolint:ireturn // returning interface is intentional for abstraction
func NewFlagLookup(dataStore storage.DataStore) flags.Lookup {
	return flags.NewLookup(dataStore)
}

func NewScanner(cfg config.Server, flagLookup flags.Lookup) *pii.Scanner {
	detectorCfg := pii.DefaultDetectorConfig()
	if cfg.PII.ContextWindow > 0 {
		detectorCfg.ContextWindow = cfg.PII.ContextWindow
	}
	legacy := pii.NewPatternDetector(detectorCfg)

	var external pii.Backend
	if cfg.PII.ExternalEndpoint != "" {
		external = pii.NewExternalDetector(pii.ExternalDetectorConfig{
			Endpoint: cfg.PII.ExternalEndpoint,
			APIKey:   cfg.PII.ExternalAPIKey,
			Timeout:  cfg.PII.ExternalTimeout,
		})
	}

	return pii.NewScanner(legacy, external, flagLookup)
}

func NewLimiter(cfg config.Server, redisClient goredis.UniversalClient, clock time2.Clock) *ratelimit.Limiter {
	var store ratelimit.CounterStore
	if cfg.Redis.Enabled && redisClient != nil {
		store = ratelimit.NewRedisStore(redisClient, "")
	} else {
		log.Warn().Msg("Redis disabled, rate limiting uses the in-process store (not shared across instances)")
		store = ratelimit.NewMemoryStore(clock)
	}

	return ratelimit.NewLimiter(store, clock)
}

//nolint:ireturn // returning interface is intentional for abstraction
func NewAuditLogger(dataStore storage.DataStore, clock time2.Clock) audit.Logger {
	return audit.NewLogger(dataStore, clock)
}

//nolint:ireturn // returning interface is intentional for abstraction
func NewReportService(
	dataStore storage.DataStore,
	cryptoService *crypto.Service,
	scanner *pii.Scanner,
	limiter *ratelimit.Limiter,
	auditLogger audit.Logger,
	clock time2.Clock,
) report.Service {
	return report.NewService(dataStore, cryptoService, scanner, limiter, auditLogger, clock)
}

//nolint:ireturn // returning interface is intentional for abstraction
func NewMessageService(
	dataStore storage.DataStore,
	cryptoService *crypto.Service,
	limiter *ratelimit.Limiter,
	auditLogger audit.Logger,
	clock time2.Clock,
) message.Service {
	return message.NewService(dataStore, cryptoService, limiter, auditLogger, clock)
}
