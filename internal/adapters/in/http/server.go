// Package http exposes order placement, tracking and customer lookup over
// echo.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"printflow/internal/core/application/usecases/commands"
	"printflow/internal/core/application/usecases/queries"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/tracking"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type (
	PlaceOrderHandler interface {
		Handle(ctx context.Context, cmd commands.PlaceOrderCommand) (kernel.UUID, error)
	}
	SoftDeleteOrderHandler interface {
		Handle(ctx context.Context, cmd commands.SoftDeleteOrderCommand) error
	}
	CreateTrackingHandler interface {
		Handle(ctx context.Context, cmd commands.CreateTrackingCommand) error
	}
	AdvanceTrackingHandler interface {
		Handle(ctx context.Context, cmd commands.AdvanceTrackingCommand) ([]tracking.Stage, error)
	}
	GetCurrentStageHandler interface {
		Handle(ctx context.Context, query queries.GetCurrentStageQuery) (queries.GetCurrentStageQueryResponse, error)
	}
	DescribeTrackingHandler interface {
		Handle(ctx context.Context, query queries.DescribeTrackingQuery) (queries.DescribeTrackingQueryResponse, error)
	}
	VerifyOrderAccessHandler interface {
		Handle(ctx context.Context, query queries.VerifyOrderAccessQuery) (queries.VerifyOrderAccessQueryResponse, error)
	}
)

// Handlers groups the use cases the server delegates to.
type Handlers struct {
	PlaceOrder        PlaceOrderHandler
	SoftDeleteOrder   SoftDeleteOrderHandler
	CreateTracking    CreateTrackingHandler
	AdvanceTracking   AdvanceTrackingHandler
	GetCurrentStage   GetCurrentStageHandler
	DescribeTracking  DescribeTrackingHandler
	VerifyOrderAccess VerifyOrderAccessHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http"),
	}
}

// NewEcho builds the echo instance with routes and middleware registered.
func NewEcho(s *Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	s.Register(e)
	return e
}

// Register mounts the API routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.PlaceOrder)
	v1.DELETE("/orders/:code", s.SoftDeleteOrder)
	v1.POST("/orders/access", s.VerifyOrderAccess)
	v1.POST("/trackings", s.CreateTracking)
	v1.GET("/trackings/:code", s.DescribeTracking)
	v1.PATCH("/trackings/:code", s.AdvanceTracking)
	v1.GET("/trackings/:code/stage", s.GetCurrentStage)
}
