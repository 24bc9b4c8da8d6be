package main

import (
	"net/http"
	"os"
	"time"

	"github.com/mihkuno/RESPOCU/api/handler"
	apiMiddleware "github.com/mihkuno/RESPOCU/api/middleware"
	"github.com/mihkuno/RESPOCU/api/routes"
	"github.com/mihkuno/RESPOCU/config"
	"github.com/mihkuno/RESPOCU/internal/repository"
	"github.com/mihkuno/RESPOCU/internal/service"
	"github.com/mihkuno/RESPOCU/internal/token"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("configuration")
	}

	db, err := config.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("database connection")
	}

	codec, err := token.NewCodec(token.Secrets{
		Access: cfg.AccessSecret,
		Verify: cfg.VerifySecret,
		Forgot: cfg.ForgotSecret,
	}, token.RealClock{})
	if err != nil {
		logger.WithError(err).Fatal("token codec")
	}

	validate := validator.New()

	accountRepo := repository.NewAccountRepository(db)
	studyRepo := repository.NewStudyRepository(db)

	emailSender := service.NewResendEmailSender(cfg.ResendAPIKey, cfg.EmailFrom, cfg.SiteURL)
	authService := service.NewAuthService(accountRepo, codec, emailSender)
	studyService := service.NewStudyService(studyRepo)

	authHandler := handler.NewAuthHandler(authService, validate)
	accountHandler := handler.NewAccountHandler(accountRepo)
	studyHandler := handler.NewStudyHandler(studyService, validate)

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	gate := apiMiddleware.SessionGate{Codec: codec}
	router := routes.NewRouter(app, authHandler, accountHandler, studyHandler, gate)
	router.RegisterRoutes()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.WithField("addr", cfg.HTTPAddr).Info("server started")
	if err := app.StartServer(server); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
