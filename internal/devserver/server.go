package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/custdesk/internal/customer"
	"github.com/muurk/custdesk/internal/discovery"
	"github.com/muurk/custdesk/internal/logging"
)

const (
	// BasePath is where the customer collection is mounted
	BasePath = "/customerapi"

	// DefaultAddr is the default listen address
	DefaultAddr = ":8080"
)

// Config holds development server options
type Config struct {
	Addr      string
	Advertise bool   // register the service over mDNS
	Instance  string // mDNS instance name
}

// Server serves the customer collection from an in-memory store.
type Server struct {
	config Config
	store  *Store
	router chi.Router
}

// New creates a server backed by store.
func New(config Config, store *Store) *Server {
	if config.Addr == "" {
		config.Addr = DefaultAddr
	}
	if config.Instance == "" {
		config.Instance = "custdesk-dev"
	}

	s := &Server{
		config: config,
		store:  store,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler, for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Route(BasePath, func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			respondText(w, http.StatusOK, "custdesk development service is running")
		})
		r.Get("/all", s.handleList)
		r.Get("/get/{id}", s.handleGet)
		r.Post("/add", s.handleAdd)
		r.Put("/update", s.handleUpdate)
		r.Delete("/delete/{id}", s.handleDelete)
	})

	return r
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr, err)
	}

	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if s.config.Advertise {
		port := ln.Addr().(*net.TCPAddr).Port
		mdns, err := zeroconf.Register(s.config.Instance, discovery.ServiceType, discovery.ServiceDomain, port,
			[]string{discovery.PathKey + "=" + BasePath}, nil)
		if err != nil {
			_ = ln.Close()
			return fmt.Errorf("failed to advertise service: %w", err)
		}
		defer mdns.Shutdown()
		logging.Info("Advertising service over mDNS",
			zap.String("instance", s.config.Instance),
			zap.Int("port", port),
		)
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("Development server listening", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.List())
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	c, err := s.store.Get(id)
	if err != nil {
		respondText(w, http.StatusNotFound, fmt.Sprintf("Customer with ID %d not found.", id))
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	c, ok := decodeCustomer(w, r)
	if !ok {
		return
	}

	saved, err := s.store.Add(c)
	if errors.Is(err, ErrExists) {
		respondText(w, http.StatusConflict, fmt.Sprintf("Customer with ID %d already exists.", c.ID))
		return
	}
	respondJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	c, ok := decodeCustomer(w, r)
	if !ok {
		return
	}

	updated, err := s.store.Update(c)
	if err != nil {
		respondText(w, http.StatusNotFound, fmt.Sprintf("Cannot update. Customer with ID %d not found.", c.ID))
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.store.Delete(id); err != nil {
		respondText(w, http.StatusNotFound, fmt.Sprintf("Cannot delete. Customer with ID %d not found.", id))
		return
	}
	respondText(w, http.StatusOK, fmt.Sprintf("Customer with ID %d deleted successfully.", id))
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondText(w, http.StatusBadRequest, fmt.Sprintf("Invalid customer ID %q.", raw))
		return 0, false
	}
	return id, true
}

func decodeCustomer(w http.ResponseWriter, r *http.Request) (customer.Customer, bool) {
	var c customer.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		respondText(w, http.StatusBadRequest, "Malformed customer body.")
		return c, false
	}
	return c, true
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Error("Failed to encode response", zap.Error(err))
	}
}

func respondText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(text))
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logging.LogHTTPRequest(r.RemoteAddr, r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}
