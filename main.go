package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/brettboylen/redditscope/api"
	"github.com/brettboylen/redditscope/fetcher"
	"github.com/brettboylen/redditscope/models"
	"github.com/brettboylen/redditscope/stats"
	"github.com/brettboylen/redditscope/utils"
)

// analyzer is the part of the collector the HTTP handlers use
type analyzer interface {
	Analyze(ctx context.Context, raw string) (*models.Analysis, error)
	Explore(username string, q models.ItemQuery) (models.ItemPage, error)
}

func main() {
	envPath := flag.String("env", ".env", "Path to .env file")
	logLevel := flag.String("log-level", "info", "Logging level (debug, info, warn, error)")
	flag.Parse()

	log := setupLogger(*logLevel)
	log.Info("Starting RedditScope")

	config, err := utils.LoadConfig(*envPath, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	log.WithFields(logrus.Fields{
		"routes":      config.Reddit.Routes,
		"server_port": config.Server.Port,
		"timezone":    config.Report.Timezone,
	}).Info("Configuration loaded")

	routes, err := api.RoutesByName(config.Reddit.Routes)
	if err != nil {
		log.WithError(err).Fatal("Failed to resolve delivery routes")
	}

	location, err := config.Report.Location()
	if err != nil {
		log.WithError(err).Fatal("Failed to load report time zone")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	redditAPI := api.NewRedditAPI(api.Options{
		BaseURL:        config.Reddit.BaseURL,
		UserAgent:      config.Reddit.UserAgent,
		Routes:         routes,
		RequestTimeout: config.Reddit.RequestTimeoutDuration(),
		Metrics:        api.NewMetrics(registry),
	}, log)

	f := fetcher.NewFetcher(redditAPI, redditAPI, fetcher.Options{
		PageDelay:   disabledIfZero(config.Reddit.PageDelay()),
		SearchDelay: disabledIfZero(config.Reddit.SearchDelay()),
	}, log)

	collector := stats.NewCollector(redditAPI, f, stats.CollectorOptions{
		Location:     location,
		DatabasePath: config.Database.Path,
	}, log)
	defer collector.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		startEchoServer(ctx, config.Server.Port, collector, registry, log, config.Server.MaxRequestsPerMinute)
		close(done)
	}()

	waitForShutdown(cancel, log)
	<-done
	log.Info("RedditScope stopped")
}

// disabledIfZero maps a configured zero delay to the fetcher's "no delay" value
func disabledIfZero(d time.Duration) time.Duration {
	if d == 0 {
		return -1
	}
	return d
}

// setupLogger sets up the logger with the specified log level
func setupLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	switch level {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	return log
}

// newServer builds the Echo app with middleware and routes
func newServer(collector analyzer, gatherer prometheus.Gatherer, maxRequestsPerMinute int) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	rateLimit := rate.Limit(float64(maxRequestsPerMinute) / 60.0)

	rateLimiterConfig := middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/healthz" || c.Path() == "/metrics"
		},
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rateLimit,
				Burst:     3,
				ExpiresIn: 3 * time.Minute,
			},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		ErrorHandler: func(ctx echo.Context, err error) error {
			return ctx.JSON(http.StatusForbidden, map[string]string{
				"error": "Could not identify client",
			})
		},
		DenyHandler: func(ctx echo.Context, identifier string, err error) error {
			return ctx.JSON(http.StatusTooManyRequests, map[string]string{
				"error": "Rate limit exceeded, please try again later",
			})
		},
	}
	e.Use(middleware.RateLimiterWithConfig(rateLimiterConfig))

	e.GET("/api/users/:username", func(c echo.Context) error {
		analysis, err := collector.Analyze(c.Request().Context(), c.Param("username"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, analysis)
	})

	e.GET("/api/users/:username/items", func(c echo.Context) error {
		var query models.ItemQuery
		if err := c.Bind(&query); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "Invalid explorer query",
			})
		}

		username, err := utils.NormalizeUsername(c.Param("username"))
		if err != nil {
			return writeError(c, models.NewAnalysisError(models.ErrInvalidUsername, c.Param("username")))
		}

		page, err := collector.Explore(username, query)
		if errors.Is(err, models.ErrNoSession) {
			analysis, analyzeErr := collector.Analyze(c.Request().Context(), username)
			if analyzeErr != nil {
				return writeError(c, analyzeErr)
			}
			page, err = collector.Explore(analysis.Profile.Name, query)
		}
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, page)
	})

	// liveness check
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return e
}

// statusFor maps an analysis failure to an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidUsername):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrSuspended):
		return http.StatusForbidden
	case errors.Is(err, models.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, models.ErrInvalidResponse), errors.Is(err, models.ErrUnreachable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c echo.Context, err error) error {
	var analysisErr *models.AnalysisError
	if !errors.As(err, &analysisErr) {
		analysisErr = models.NewAnalysisError(err, "")
	}
	return c.JSON(statusFor(err), map[string]string{
		"error": analysisErr.Message,
	})
}

// startEchoServer starts the Echo HTTP API server and stops it when ctx is done
func startEchoServer(ctx context.Context, port int, collector analyzer, gatherer prometheus.Gatherer, log *logrus.Logger, maxRequestsPerMinute int) {
	e := newServer(collector, gatherer, maxRequestsPerMinute)

	go func() {
		serverAddr := fmt.Sprintf(":%d", port)
		log.WithField("port", port).Info("Starting API server")
		if err := e.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("API server failed")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down API server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("API server shutdown failed")
	}
}

// waitForShutdown waits for a shutdown signal
func waitForShutdown(cancel context.CancelFunc, log *logrus.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	log.WithField("signal", sig.String()).Info("Shutdown signal received")

	cancel()
}
