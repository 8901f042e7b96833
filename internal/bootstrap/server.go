package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/vertexcare/clinicbook/api"
	"github.com/vertexcare/clinicbook/config"
	"github.com/vertexcare/clinicbook/internal/service/appointments"
	"github.com/vertexcare/clinicbook/internal/service/auth"
)

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, appointmentSvc appointments.AppointmentUseCase, authority auth.SessionAuthority) error {
	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: newRouter(cfg, appointmentSvc, authority),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(cfg *config.Config, appointmentSvc appointments.AppointmentUseCase, authority auth.SessionAuthority) *gin.Engine {
	// Recovery doubles as the top-level backstop: any panic becomes a
	// bare 500 with nothing disclosed to the client.
	router := gin.Default()

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	sessionTTL := time.Duration(cfg.Session.TTLMinutes) * time.Minute
	authHandler := api.NewAuthHandler(authority, cfg.Session.CookieName, sessionTTL)
	authHandler.Register(router.Group("/admin"))

	appointmentHandler := api.NewAppointmentHandler(appointmentSvc, authority, cfg.Session.CookieName)
	appointmentHandler.Register(router.Group("/api/appointments"))

	if cfg.HTTP.SwaggerDir != "" {
		router.Static("/swagger", cfg.HTTP.SwaggerDir)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/appointments.swagger.json"),
		)))
	}

	return router
}
