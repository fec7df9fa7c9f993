package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/Bidex-03/ummah-connect/config"
	adminapp_event "github.com/Bidex-03/ummah-connect/internal/module/adminapp/event"
	adminapp_ticket "github.com/Bidex-03/ummah-connect/internal/module/adminapp/ticket"
	customerapp_event "github.com/Bidex-03/ummah-connect/internal/module/customerapp/event"
	"github.com/Bidex-03/ummah-connect/internal/module/customerapp/mailer"
	customerapp_ticket "github.com/Bidex-03/ummah-connect/internal/module/customerapp/ticket"
	"github.com/Bidex-03/ummah-connect/internal/pkg/jwt"
	internalMiddleware "github.com/Bidex-03/ummah-connect/internal/pkg/middleware"
	"github.com/Bidex-03/ummah-connect/internal/pkg/session"
	"github.com/Bidex-03/ummah-connect/pkg/applogger"
	"github.com/Bidex-03/ummah-connect/pkg/gctasks"
	"github.com/Bidex-03/ummah-connect/pkg/kafka"
	"github.com/Bidex-03/ummah-connect/pkg/middleware"
	"github.com/Bidex-03/ummah-connect/pkg/monitoring"
	"github.com/Bidex-03/ummah-connect/pkg/postgresql"
	"github.com/Bidex-03/ummah-connect/pkg/pubsub"
	"github.com/Bidex-03/ummah-connect/pkg/redis"
	"github.com/Bidex-03/ummah-connect/pkg/server"
	"github.com/Bidex-03/ummah-connect/pkg/validator"
)

var c *config.Config

func init() {
	c = config.Get()
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := applogger.GetLogrus()

	mon := monitoring.NewOpenTelemetry(
		c.Application.Name,
		c.Application.Environment,
		c.GCP.ProjectID,
	)

	mon.Start(ctx)

	validate := validator.Get()

	hc := http.DefaultClient

	jsonWebToken := jwt.NewJSONWebToken(c.JWT.PrivateKey, c.JWT.PublicKey)

	psqldb := postgresql.GetDatabase()
	if err := psqldb.Ping(); err != nil {
		logger.WithContext(ctx).WithError(err).Error()
	}

	publisher := pubsub.PublisherFromConfluentKafkaProducer(logger, kafka.NewProducer())

	rc := redis.GetClient()
	if err := rc.Ping(context.Background()).Err(); err != nil {
		logger.WithContext(ctx).WithError(err).Error()
	}

	cloudTask := gctasks.NewGCTasks(logger, c.GCP.ProjectID, c.GCP.ServiceAccount)

	sessionStore := session.NewRedisSessionStore(logger, rc)

	customerSessionMiddleware := internalMiddleware.NewCustomerSessionMiddleware(jsonWebToken, sessionStore)
	adminSessionMiddleware := internalMiddleware.NewAdminSessionMiddleware(jsonWebToken, sessionStore)

	router := mux.NewRouter()
	router.Use(
		otelmux.Middleware(c.Application.Name),
		middleware.HTTPResponseTraceInjection,
		middleware.NewHTTPRequestLogger(logger, c.Application.Debug, http.StatusInternalServerError).Middleware,
	)

	// admin's app
	adminappEventRepo := adminapp_event.NewEventRepository(logger, psqldb)
	adminappAttendeeRepo := adminapp_event.NewAttendeeRepository(logger, psqldb)
	adminappTicketRepo := adminapp_ticket.NewTicketInventoryRepository(logger, psqldb)
	adminappEventUseCase := adminapp_event.NewEventUseCase(adminapp_event.EventUseCaseProperty{
		Logger:                    logger,
		Timeout:                   c.Application.Timeout,
		BaseURL:                   c.Application.BaseURL,
		EventRepository:           adminappEventRepo,
		AttendeeRepository:        adminappAttendeeRepo,
		TicketInventoryRepository: adminappTicketRepo,
		CloudTask:                 cloudTask,
	})
	adminapp_event.InitHTTPHandler(router, adminSessionMiddleware, validate, adminappEventUseCase)

	// customer's app
	customerappEventRepo := customerapp_event.NewEventRepository(logger, psqldb)
	customerappAttendeeRepo := customerapp_event.NewAttendeeRepository(logger, psqldb)
	customerappTicketRepo := customerapp_ticket.NewTicketInventoryRepository(logger, psqldb)
	mailerRepo := mailer.NewMailerRepository(c.Mailer.BaseURL, c.Mailer.APIKey, logger, hc)
	customerappEventUseCase := customerapp_event.NewEventUseCase(customerapp_event.EventUseCaseProperty{
		Logger:                    logger,
		Timeout:                   c.Application.Timeout,
		EmailSender:               c.Mailer.Sender,
		EventRepository:           customerappEventRepo,
		AttendeeRepository:        customerappAttendeeRepo,
		TicketInventoryRepository: customerappTicketRepo,
		Publisher:                 publisher,
		MailerRepository:          mailerRepo,
	})
	customerapp_event.InitHTTPHandler(router, customerSessionMiddleware, validate, customerappEventUseCase)

	handler := middleware.SetChain(
		router,
		cors.New(cors.Options{
			AllowedOrigins:   c.CORS.AllowedOrigins,
			AllowedMethods:   c.CORS.AllowedMethods,
			AllowedHeaders:   c.CORS.AllowedHeaders,
			ExposedHeaders:   c.CORS.ExposedHeaders,
			MaxAge:           c.CORS.MaxAge,
			AllowCredentials: c.CORS.AllowCredentials,
		}).Handler,
	)

	srv := &server.Server{
		Server: http.Server{
			Addr:    fmt.Sprintf(":%d", c.Application.Port),
			Handler: handler,
		},
		Logger: logger,
	}

	go func() {
		srv.ListenAndServe()
	}()

	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGINT, syscall.SIGTERM)
	<-sigterm

	srv.Shutdown(ctx)
	publisher.Close()
	psqldb.Close()
	rc.Close()
	mon.Stop(ctx)
}
