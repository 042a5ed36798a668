package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"skill-match/internal/config"
	"skill-match/internal/delivery/http/handler"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/delivery/http/routes"
	v1 "skill-match/internal/delivery/http/routes/v1"
	"skill-match/internal/pkg/jwt"
	"skill-match/internal/repository"
	"skill-match/internal/seeder"
	"skill-match/internal/usecase"
	"skill-match/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// localTokenTTL only applies to tokens minted by this process for tests and
// tooling.
const localTokenTTL = time.Hour

type App struct {
	Fiber *fiber.App
	Hub   *ws.Hub
	JWT   *jwt.HMACService
}

// New wires usecases and routes on top of an opened container. The hub is
// not started; call RunHub.
func New(c *Container) *App {
	cfg := c.Config
	logger := c.Logger

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})
	registerGlobalMiddleware(f, logger)

	jwtSvc := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.Issuer, localTokenTTL)
	hub := ws.NewHub(logger.Named("ws"))

	opportunities := repository.NewDocOpportunityRepository(c.Store, logger)
	students := repository.NewDocStudentRepository(c.Store, logger)
	companies := repository.NewDocCompanyRepository(c.Store)
	notifications := repository.NewDocNotificationRepository(c.Store, logger)

	notifyUC := usecase.NewNotificationUsecase(students, notifications, hub, logger)
	createUC := usecase.NewOpportunityUsecase(opportunities, notifyUC, c.Publisher, logger)
	feedUC := usecase.NewOpportunityFeedUsecase(opportunities, companies, logger)
	recommendUC := usecase.NewRecommendationUsecase(opportunities, students)

	var health *handler.HealthHandler
	if c.Pinger != nil {
		health = handler.NewHealthHandler(c.Pinger)
	}

	routes.NewRegistry(health, v1.Handlers{
		Auth:            middleware.NewAuthMiddleware(jwtSvc),
		Opportunities:   handler.NewOpportunityHandler(createUC, feedUC),
		Recommendations: handler.NewRecommendationHandler(recommendUC),
		Notifications:   handler.NewNotificationHandler(notifyUC),
		WS:              ws.NewHandler(hub, logger.Named("ws")),
	}).Register(f)

	return &App{Fiber: f, Hub: hub, JWT: jwtSvc}
}

func (a *App) RunHub(ctx context.Context) {
	if a == nil || a.Hub == nil {
		return
	}
	go a.Hub.Run(ctx)
}

func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Store.SeedDemoData {
		if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, c.Store); err != nil {
			_ = c.Close()
			return nil, nil, fmt.Errorf("seed demo data: %w", err)
		}
		c.Logger.Info("demo data seeded")
	}

	app := New(c)
	hubCtx, stopHub := context.WithCancel(context.Background())
	app.RunHub(hubCtx)

	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	accessMw := middleware.NewAccessLogMiddleware(logger.Named("http"))
	errMw := middleware.NewErrorMiddleware(logger)
	app.Use(accessMw.Middleware())
	app.Use(errMw.Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
