package main

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/gridx-io/openclearing/core"
	"github.com/gridx-io/openclearing/store"
	"github.com/gridx-io/openclearing/validation"
)

// Server serves the engine over TCP: one JSON request per connection, one
// JSON response back. Mutations serialize behind the engine's own lock; the
// worker pool only bounds concurrent connections.
type Server struct {
	addr       string
	maxWorkers int
	svc        *EngineService
}

func NewServer(addr string, maxWorkers int, svc *EngineService) *Server {
	return &Server{addr: addr, maxWorkers: maxWorkers, svc: svc}
}

func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	defer func() {
		if err := listener.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close listener")
		}
	}()

	log.Info().Str("addr", s.addr).Int("max_workers", s.maxWorkers).Msg("engine daemon listening")

	// Immediate rejection when the pool is full.
	semaphore := make(chan struct{}, s.maxWorkers)

	for {
		conn, err := listener.Accept()
		if err != nil {
			log.Error().Err(err).Msg("failed to accept connection")
			continue
		}

		select {
		case semaphore <- struct{}{}:
			go func(c net.Conn) {
				defer func() { <-semaphore }()
				s.handleConnection(c)
			}(conn)
		default:
			log.Warn().Msg("no workers available, rejecting connection")
			if err := conn.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close rejected connection")
			}
		}
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	reqID := uuid.NewString()
	logger := log.With().Str("request_id", reqID).Logger()

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("panic recovered in connection handler")
		}
		if err := conn.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close connection")
		}
	}()

	_ = conn.SetDeadline(time.Now().Add(30 * time.Second))

	var raw json.RawMessage
	if err := json.NewDecoder(conn).Decode(&raw); err != nil {
		logger.Error().Err(err).Msg("failed to read request")
		return
	}

	response := s.svc.Handle(raw)
	if !response.Success {
		logger.Info().Str("code", response.Code).Str("msg", response.Message).Msg("request rejected")
	}

	if err := json.NewEncoder(conn).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
		return
	}
	logger.Info().Str("type", response.Type).Bool("success", response.Success).Msg("response sent")
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %s (must be a valid integer)", key, value)
	}
	return intValue, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// buildHandler assembles the bid policy and the settlement logger from the
// environment.
func buildHandler() (core.AuctionHandler, error) {
	policy := &validation.BidPolicy{}
	if ceiling := os.Getenv("OPENCLEARING_PRICE_CEILING"); ceiling != "" {
		parsed, err := decimal.NewFromString(ceiling)
		if err != nil {
			return nil, fmt.Errorf("invalid OPENCLEARING_PRICE_CEILING %q: %w", ceiling, err)
		}
		policy.PriceCeiling = parsed
	}
	return validation.Chain{policy, validation.NewSettlementLog(log.Logger)}, nil
}

func run() error {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	handler, err := buildHandler()
	if err != nil {
		return err
	}

	kv := store.NewMemKV()
	snapshotKey := getEnv("OPENCLEARING_SNAPSHOT_KEY", "engine/state")

	manager := core.NewManager(handler)
	if state, ok, err := store.LoadSnapshot(kv, snapshotKey); err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	} else if ok {
		manager, err = core.RestoreManager(state, handler)
		if err != nil {
			return fmt.Errorf("failed to restore engine: %w", err)
		}
		log.Info().Str("key", snapshotKey).Msg("engine restored from snapshot")
	}

	maxWorkers, err := getEnvInt("OPENCLEARING_MAX_WORKERS", 8)
	if err != nil {
		return err
	}
	addr := getEnv("OPENCLEARING_LISTEN_ADDR", ":7700")

	svc := NewEngineService(manager, kv, snapshotKey)
	return NewServer(addr, maxWorkers, svc).Start()
}

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("engine daemon failed")
	}
}
