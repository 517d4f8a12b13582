package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/daniacca/rdmc/internal/logging"
	"github.com/daniacca/rdmc/internal/rxn"
	"github.com/daniacca/rdmc/internal/rxn/notifiers"
	"github.com/google/uuid"
	"github.com/kr/pretty"
)

// streamNotifierID is the websocket notifier every compile publishes to.
const streamNotifierID = "stream"

var errNotFound = errors.New("compile not found")

// compileRecord is one stored compile result.
type compileRecord struct {
	ID                       string                  `json:"id"`
	Model                    string                  `json:"model"`
	CreatedAt                time.Time               `json:"created_at"`
	Table                    rxn.TableSnapshot       `json:"table"`
	Notices                  []rxn.ProbabilityNotice `json:"notices"`
	Warnings                 []string                `json:"warnings"`
	ProbabilityLimitExceeded bool                    `json:"probability_limit_exceeded"`
}

// compileSummary is the list view of a compileRecord.
type compileSummary struct {
	ID        string    `json:"id"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	Reactions int       `json:"reactions"`
	Warnings  int       `json:"warnings"`
}

// Server represents the HTTP compile service
type Server struct {
	mu          sync.RWMutex
	compiles    map[string]*compileRecord
	order       []string
	maxCompiles int
	rateDir     string

	notifierMgr *rxn.NotificationManager
	stream      *notifiers.WebSocketNotifier
	logger      *logging.Logger
}

// NewServer creates a new server instance
func NewServer(cfg ServerConfig, logger *logging.Logger) *Server {
	mgr := rxn.NewNotificationManagerWithLogger(logger)
	stream := notifiers.NewWebSocketNotifier(streamNotifierID)
	if err := mgr.RegisterNotifier(stream); err != nil {
		logger.Errorf("Failed to register stream notifier: %v", err)
	}

	maxCompiles := cfg.MaxCompiles
	if maxCompiles <= 0 {
		maxCompiles = 100
	}
	return &Server{
		compiles:    make(map[string]*compileRecord),
		maxCompiles: maxCompiles,
		rateDir:     cfg.RateDir,
		notifierMgr: mgr,
		stream:      stream,
		logger:      logger,
	}
}

// Close shuts down notification delivery.
func (s *Server) Close() error {
	return s.notifierMgr.Close()
}

// compile builds and compiles a validated model, storing the result.
// notifierIDs are extra notifiers that receive the compile's notices.
func (s *Server) compile(cfg rxn.ModelConfig, notifierIDs []string) (*compileRecord, error) {
	for _, rc := range cfg.Reactions {
		if rc.Rate.File != "" && !filepath.IsLocal(rc.Rate.File) {
			return nil, &rxn.ValidationError{Issues: []string{
				fmt.Sprintf("rate file %q must be a relative path inside the rate directory", rc.Rate.File),
			}}
		}
	}

	model, err := rxn.BuildModelFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	ctx := model.NewCompileContext()
	ctx.Logger = s.logger
	ctx.RateLoader = rxn.FileRateLoader{Dir: s.rateDir}
	ctx.CompileID = id
	ctx.Notifications = s.notifierMgr
	ctx.NotifierIDs = append([]string{streamNotifierID}, notifierIDs...)

	res, err := rxn.CompileModel(ctx, model)
	if err != nil {
		return nil, err
	}

	rec := &compileRecord{
		ID:                       id,
		Model:                    cfg.Name,
		CreatedAt:                time.Now().UTC(),
		Table:                    res.Snapshot(),
		Notices:                  res.Notices,
		Warnings:                 res.Warnings,
		ProbabilityLimitExceeded: res.ProbabilityLimitExceeded,
	}
	if s.logger.Enabled(logging.LogLevelDebug) {
		s.logger.Debugf("Compiled table: compile_id=%s\n%# v", id, pretty.Formatter(rec.Table))
	}

	s.store(rec)
	return rec, nil
}

func (s *Server) store(rec *compileRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.compiles[rec.ID] = rec
	s.order = append(s.order, rec.ID)
	for len(s.order) > s.maxCompiles {
		evicted := s.order[0]
		s.order = s.order[1:]
		delete(s.compiles, evicted)
		s.logger.Debugf("Compile evicted: compile_id=%s", evicted)
	}
}

func (s *Server) get(id string) (*compileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.compiles[id]
	if !ok {
		return nil, errNotFound
	}
	return rec, nil
}

func (s *Server) delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.compiles[id]; !ok {
		return errNotFound
	}
	delete(s.compiles, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// list returns summaries oldest first.
func (s *Server) list() []compileSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]compileSummary, 0, len(s.order))
	for _, id := range s.order {
		rec := s.compiles[id]
		out = append(out, compileSummary{
			ID:        rec.ID,
			Model:     rec.Model,
			CreatedAt: rec.CreatedAt,
			Reactions: len(rec.Table.Reactions),
			Warnings:  len(rec.Warnings),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
