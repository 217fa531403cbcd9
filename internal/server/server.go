package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/gorilla/websocket"
	"github.com/gumallc/loanspa-ssp-v2/internal/config"
	"github.com/gumallc/loanspa-ssp-v2/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const sessionMaxAgeDays = 7

// Store is everything the handlers need from the data layer.
type Store interface {
	domain.UserStore
	domain.LoanStore
	domain.AccountStore
	domain.NotificationStore
}

// pushBroadcaster is the slice of the push layer the server needs.
type pushBroadcaster interface {
	Register(userID int64, conn *websocket.Conn) error
	Unregister(userID int64, conn *websocket.Conn)
	PushNewNotification(userID int64, notification *domain.Notification)
	PushUnreadCount(userID int64)
}

type Server struct {
	echo         *echo.Echo
	config       *config.Config
	store        Store
	broadcaster  pushBroadcaster
	sessionStore *sessions.CookieStore
	limits       *ConnectionLimits
	startTime    time.Time
}

func NewServer(cfg *config.Config, store Store, broadcaster pushBroadcaster) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Session store
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * sessionMaxAgeDays,
		HttpOnly: true,
		Secure:   cfg.AppEnv == "production",
		SameSite: http.SameSiteLaxMode,
	}

	srv := &Server{
		echo:         e,
		config:       cfg,
		store:        store,
		broadcaster:  broadcaster,
		sessionStore: sessionStore,
		limits:       NewConnectionLimits(cfg.WSMaxConnections, cfg.WSMaxPerIP, cfg.WSConnectionsRate, cfg.WSConnectionsBurst),
		startTime:    time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
