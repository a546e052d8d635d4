package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/ZetaFarm_Go/internal/checkin"
	"github.com/osse101/ZetaFarm_Go/internal/eventlog"
	"github.com/osse101/ZetaFarm_Go/internal/farm"
	"github.com/osse101/ZetaFarm_Go/internal/gacha"
	"github.com/osse101/ZetaFarm_Go/internal/handler"
	"github.com/osse101/ZetaFarm_Go/internal/letters"
	"github.com/osse101/ZetaFarm_Go/internal/logger"
	"github.com/osse101/ZetaFarm_Go/internal/metrics"
	"github.com/osse101/ZetaFarm_Go/internal/shop"
	"github.com/osse101/ZetaFarm_Go/internal/sse"
)

// Options configures the listener and the security middleware
type Options struct {
	Port           int
	Version        string
	APIKey         string
	TrustedProxies []string
	RateLimit      int
	RateWindow     time.Duration
}

// Services are the domain services the API exposes. Pinger is nil when no
// external store backs the farms. Stream is optional.
type Services struct {
	Pinger   handler.Pinger
	Farm     farm.Service
	Shop     shop.Service
	Gacha    gacha.Service
	CheckIn  checkin.Service
	Letters  letters.Service
	Activity eventlog.Service
	Catalog  handler.Catalog
	Stream   *sse.Hub
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options, svc Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, svc),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the middleware stack and mounts every route
func NewRouter(opts Options, svc Services) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	proxies := NewProxySet(opts.TrustedProxies)
	detector := NewSuspiciousActivityDetector(DetectorConfig{
		RequestLimit: opts.RateLimit,
		Window:       opts.RateWindow,
	})

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(opts.APIKey, proxies, detector))
	r.Use(SecurityLoggingMiddleware(proxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(svc.Pinger))
	r.Get("/version", handler.HandleVersion(logger.DefaultServiceName, opts.Version))
	r.Handle("/metrics", promhttp.Handler())

	farmHandler := handler.NewFarmHandler(svc.Farm)
	actions := handler.NewActionHandler(svc.Farm, svc.Shop, svc.Gacha, svc.CheckIn, svc.Letters)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", handler.HandleGetCatalog(svc.Catalog))
		r.Post("/actions", actions.HandleAction)

		r.Route("/farm", func(r chi.Router) {
			r.Get("/", farmHandler.GetFarm)
			r.Post("/register", farmHandler.Register)
			r.Post("/login", farmHandler.Login)
			r.Get("/activity", handler.HandleGetActivity(svc.Activity))
			if svc.Stream != nil {
				r.Get("/events", sse.Handler(svc.Stream))
			}

			r.Post("/plant", actions.Plant)
			r.Post("/water", actions.Water)
			r.Post("/weed", actions.Weed)
			r.Post("/fertilize", actions.Fertilize)
			r.Post("/harvest", actions.Harvest)
			r.Post("/pesticide", actions.Pesticide)
			r.Post("/shovel", actions.Shovel)
			r.Post("/unlock", actions.UnlockPlot)
			r.Post("/robot", actions.SubscribeRobot)
		})

		r.Route("/shop", func(r chi.Router) {
			r.Post("/seeds", actions.BuySeed)
			r.Post("/fertilizer", actions.BuyFertilizer)
			r.Post("/sell", actions.SellFruit)
			r.Post("/pets", actions.BuyPet)
		})

		r.Post("/bank/exchange", actions.Exchange)
		r.Post("/gacha/draw", actions.Draw)

		r.Route("/checkin", func(r chi.Router) {
			r.Post("/", actions.CheckIn)
			r.Get("/history", handler.HandleCheckInHistory(svc.CheckIn))
		})

		r.Route("/letters", func(r chi.Router) {
			r.Get("/", handler.HandleLetterProgress(svc.Letters))
			r.Post("/redeem", actions.Redeem)
		})
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the flusher underneath
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Probes and scrapes are not logged
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
