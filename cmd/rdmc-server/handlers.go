package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/daniacca/rdmc/internal/rxn"
	"github.com/daniacca/rdmc/internal/rxn/notifiers"
)

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error  string   `json:"error"`
	Kind   string   `json:"kind,omitempty"`
	Issues []string `json:"issues,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error to its status code: validation problems are the
// caller's fault, compile errors are unprocessable models.
func writeError(w http.ResponseWriter, err error) {
	var verr *rxn.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: "validation", Issues: verr.Issues})
	case errors.Is(err, rxn.ErrModel):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Kind: "model"})
	case errors.Is(err, rxn.ErrInternal), errors.Is(err, rxn.ErrAllocation):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error(), Kind: "internal"})
	case errors.Is(err, errNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// POST /compile
// Body: ModelConfig JSON
// Query param: notifiers (comma separated notifier IDs that receive notices)
func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var cfg rxn.ModelConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "invalid model json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := rxn.ValidateModelConfig(cfg); err != nil {
		s.logger.Debugf("Model rejected: model=%s error=%v", cfg.Name, err)
		writeError(w, err)
		return
	}

	var notifierIDs []string
	if v := r.URL.Query().Get("notifiers"); v != "" {
		for _, id := range strings.Split(v, ",") {
			if _, ok := s.notifierMgr.GetNotifier(id); !ok {
				http.Error(w, "unknown notifier: "+id, http.StatusBadRequest)
				return
			}
			notifierIDs = append(notifierIDs, id)
		}
	}

	rec, err := s.compile(cfg, notifierIDs)
	if err != nil {
		s.logger.Warnf("Compile failed: model=%s error=%v", cfg.Name, err)
		writeError(w, err)
		return
	}

	s.logger.Infof("Model compiled: compile_id=%s model=%s reactions=%d warnings=%d",
		rec.ID, rec.Model, len(rec.Table.Reactions), len(rec.Warnings))
	writeJSON(w, http.StatusCreated, rec)
}

// GET /compiles
func (s *Server) handleListCompiles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"compiles": s.list()})
}

// handleCompileRoutes routes /compiles/{id}
func (s *Server) handleCompileRoutes(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/compiles/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "compile ID is required in path: /compiles/{id}", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		rec, err := s.get(id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	case http.MethodDelete:
		if err := s.delete(id); err != nil {
			writeError(w, err)
			return
		}
		s.logger.Infof("Compile deleted: compile_id=%s", id)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("compile deleted"))
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// GET /ws
// Query param: compile (optional compile ID to follow)
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := s.stream.GetUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warnf("WebSocket upgrade failed: %v", err)
		return
	}

	compileID := r.URL.Query().Get("compile")
	s.stream.RegisterClient(conn, compileID)
	s.logger.Debugf("WebSocket client connected: compile_id=%q", compileID)

	// Drain reads so close frames are seen.
	go func() {
		defer s.stream.UnregisterClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// handleNotifiersRoutes handles notifier management endpoints
func (s *Server) handleNotifiersRoutes(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/notifiers" && r.Method == http.MethodGet:
		s.handleListNotifiers(w, r)
	case r.URL.Path == "/notifiers" && r.Method == http.MethodPost:
		s.handleRegisterNotifier(w, r)
	case strings.HasPrefix(r.URL.Path, "/notifiers/") && r.Method == http.MethodDelete:
		s.handleUnregisterNotifier(w, r)
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

// GET /notifiers
func (s *Server) handleListNotifiers(w http.ResponseWriter, _ *http.Request) {
	notifierIDs := s.notifierMgr.ListNotifiers()

	list := make([]map[string]string, 0, len(notifierIDs))
	for _, id := range notifierIDs {
		if notifier, exists := s.notifierMgr.GetNotifier(id); exists {
			list = append(list, map[string]string{
				"id":   id,
				"type": notifier.Type(),
			})
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifiers": list})
}

// POST /notifiers
// Body: { "type": "webhook", "id": "my-webhook", "config": { "url": "http://...", "warnings_only": true } }
type registerNotifierRequest struct {
	Type   string         `json:"type"`
	ID     string         `json:"id"`
	Config map[string]any `json:"config"`
}

func (s *Server) handleRegisterNotifier(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req registerNotifierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.ID == "" {
		http.Error(w, "notifier ID is required", http.StatusBadRequest)
		return
	}

	var notifier rxn.Notifier
	switch req.Type {
	case "webhook":
		url, ok := req.Config["url"].(string)
		if !ok || url == "" {
			http.Error(w, "webhook URL is required", http.StatusBadRequest)
			return
		}
		wh := notifiers.NewWebhookNotifier(req.ID, url)
		if headers, ok := req.Config["headers"].(map[string]any); ok {
			for k, v := range headers {
				if vStr, ok := v.(string); ok {
					wh.SetHeader(k, vStr)
				}
			}
		}
		if only, ok := req.Config["warnings_only"].(bool); ok {
			wh.SetWarningsOnly(only)
		}
		notifier = wh
	default:
		http.Error(w, "unknown notifier type: "+req.Type, http.StatusBadRequest)
		return
	}

	if err := s.notifierMgr.RegisterNotifier(notifier); err != nil {
		http.Error(w, "cannot register notifier: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.logger.Infof("Notifier registered: id=%s type=%s", req.ID, req.Type)

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("notifier registered"))
}

// DELETE /notifiers/{id}
func (s *Server) handleUnregisterNotifier(w http.ResponseWriter, r *http.Request) {
	notifierID := strings.TrimPrefix(r.URL.Path, "/notifiers/")
	if notifierID == "" {
		http.Error(w, "notifier ID is required", http.StatusBadRequest)
		return
	}
	if notifierID == streamNotifierID {
		http.Error(w, "the stream notifier cannot be removed", http.StatusBadRequest)
		return
	}

	if err := s.notifierMgr.UnregisterNotifier(notifierID); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("notifier unregistered"))
}

// routes registers every endpoint on a new mux.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/compile", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.handleCompile(w, r)
	})
	mux.HandleFunc("/compiles", s.handleListCompiles)
	mux.HandleFunc("/compiles/", s.handleCompileRoutes)
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/notifiers", s.handleNotifiersRoutes)
	mux.HandleFunc("/notifiers/", s.handleNotifiersRoutes)
	return mux
}
