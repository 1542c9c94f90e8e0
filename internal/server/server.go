package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/composersite/catalog/internal/config"
	"github.com/composersite/catalog/internal/jobs"
	"github.com/composersite/catalog/internal/repair"
	"github.com/composersite/catalog/internal/service"
	"github.com/composersite/catalog/internal/store"
)

// Server serves the password endpoint and the catalog listings.
type Server struct {
	httpPort       string
	secure         bool
	allowedOrigins []string
	passwords      *service.PasswordService
	catalog        *service.CatalogService
}

// NewServer creates a new server. secure marks the auth cookie Secure.
// allowedOrigins are the cross-origin sites allowed to call the API with
// credentials; without any only same-origin requests are served.
func NewServer(httpPort string, secure bool, s store.Store, allowedOrigins ...string) *Server {
	origins := make([]string, 0, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			logrus.Warn("ignoring wildcard CORS origin: the API sends credentials")
			continue
		}
		origins = append(origins, origin)
	}

	return &Server{
		httpPort:       httpPort,
		secure:         secure,
		allowedOrigins: origins,
		passwords:      service.NewPasswordService(s),
		catalog:        service.NewCatalogService(s),
	}
}

// Router returns the HTTP handler with middleware applied. Every request is
// logged, including the ones no route matches.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/verify-password", s.verifyPassword).Methods(http.MethodPost)
	api.HandleFunc("/verify-password", s.authStatus).Methods(http.MethodGet)
	api.HandleFunc("/works", s.listWorks).Methods(http.MethodGet)
	api.HandleFunc("/works/{slug}", s.getWork).Methods(http.MethodGet)
	api.HandleFunc("/recordings", s.listRecordings).Methods(http.MethodGet)
	api.HandleFunc("/reviews", s.listReviews).Methods(http.MethodGet)
	api.HandleFunc("/performances", s.listPerformances).Methods(http.MethodGet)

	var handler http.Handler = r
	if len(s.allowedOrigins) > 0 {
		c := cors.New(cors.Options{
			AllowedOrigins:   s.allowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
		})
		handler = c.Handler(r)
	}

	return RequestTimeMiddleware(handler)
}

// Start serves until SIGTERM, SIGINT or SIGTSTP.
func (s *Server) Start(executor *jobs.TaskExecutor) error {
	addr := ":" + s.httpPort
	rl, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	restServer := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// make sure to wait for the server to stop before exiting
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		logrus.Info("starting http server on: ", addr)
		if err := restServer.Serve(rl); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Errorf("error starting http server: %v", err)
		}
		logrus.Infof("http server stopped")
	}()

	if executor != nil {
		if err := executor.Start(); err != nil {
			_ = restServer.Close()
			wg.Wait()
			return err
		}
		defer executor.Stop()
	}

	logrus.Infof("Press Ctrl+C to stop the server")

	// listen for interrupt signal to gracefully shut down the server
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGTERM, unix.SIGINT, unix.SIGTSTP)
	<-sigs
	// clean Ctrl+C output
	fmt.Println()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := restServer.Shutdown(ctx); err != nil {
		logrus.Errorf("error stopping http server: %v", err)
	}

	wg.Wait()

	return nil
}

// Start opens the configured store, migrates it when it is local and serves
// until interrupted. A repair job is scheduled when REPAIR_SCHEDULE is set.
func Start(cfg *config.Config) error {
	s, err := cfg.OpenStore()
	if err != nil {
		return err
	}
	if err := s.Migrate(); err != nil {
		return err
	}

	var executor *jobs.TaskExecutor
	if cfg.RepairSchedule != "" {
		executor = jobs.NewTaskExecutor(jobs.NewRepairJob(cfg.RepairSchedule, repair.NewRepairer(s, false)))
	}

	return NewServer(cfg.HTTPPort, cfg.CookieSecure, s, cfg.AllowedOrigins...).Start(executor)
}
