package web

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

//go:embed static/index.html
var indexHTML []byte

var uuidRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// Server serves the terminal dashboard to browsers.
type Server struct {
	addr       string
	apiURL     string
	sessionDir string
	router     chi.Router
	log        zerolog.Logger
	http       *http.Server
}

// NewServer creates a web terminal server. Each browser gets its own session
// file under sessionDir, so logins do not leak between visitors.
func NewServer(addr, apiURL, sessionDir string, logger zerolog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	s := &Server{
		addr:       addr,
		apiURL:     apiURL,
		sessionDir: sessionDir,
		router:     r,
		log:        logger,
	}
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/ws", s.handleWebSocket)
	r.Post("/reset", s.handleReset)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	s.http = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

const cookieName = "trackit_session"

// sessionFile reads or creates the browser's session cookie and returns the
// token file that belongs to it.
func (s *Server) sessionFile(w http.ResponseWriter, r *http.Request) string {
	if path, err := s.readSessionFile(r); err == nil {
		return path
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60, // 30 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return filepath.Join(s.sessionDir, id+".json")
}

// readSessionFile reads the session cookie without writing headers.
func (s *Server) readSessionFile(r *http.Request) (string, error) {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return "", fmt.Errorf("no session cookie")
	}
	if !uuidRe.MatchString(c.Value) {
		return "", fmt.Errorf("invalid session cookie")
	}
	return filepath.Join(s.sessionDir, c.Value+".json"), nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.sessionFile(w, r) // ensure cookie is set
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

// handleReset logs the browser out by dropping its token file and cookie.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	path, err := s.readSessionFile(r)
	if err != nil {
		http.Error(w, "no valid session", http.StatusBadRequest)
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Error().Err(err).Str("path", path).Msg("remove session file")
		http.Error(w, "could not reset session", http.StatusInternalServerError)
		return
	}

	// Clear the cookie so the next page load gets a fresh session.
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("reset"))
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the web terminal server.
func (s *Server) ListenAndServe() error {
	s.log.Info().Str("addr", s.addr).Str("api", s.apiURL).Msg("web terminal listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
