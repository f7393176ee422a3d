package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"talespin/pkg/media"
	"talespin/pkg/story"
	"talespin/pkg/utils"
)

type Server struct {
	Echo     *echo.Echo
	Registry *story.Registry
	Ctx      context.Context

	MediaDir string
	WebDir   string
}

func NewServer(ctx context.Context, registry *story.Registry, mediaDir, webDir string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = errorHandler

	s := &Server{
		Echo:     e,
		Registry: registry,
		Ctx:      ctx,
		MediaDir: mediaDir,
		WebDir:   webDir,
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.Echo.GET("/", s.handleGetRoot)

	api := s.Echo.Group("/api")
	api.POST("/game/start", s.handlePostStart)   // new session -> opening Scene
	api.POST("/game/choice", s.handlePostChoice) // advance by choice index

	s.Echo.Static(media.URLPrefix, s.MediaDir) // generated scene art and narration
	if s.WebDir != "" {
		s.Echo.Static("/app", s.WebDir)
	}
}

// errorHandler keeps the error contract coarse: the client only ever sees
// {"error": ...} with a short message, never provider or internal detail.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := "Internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}
	if code >= http.StatusInternalServerError {
		c.Logger().Error(err)
	}
	if err := c.JSON(code, utils.ErrJSON(msg)); err != nil {
		c.Logger().Error(err)
	}
}

func (s *Server) Start(addr string) error {
	return s.Echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Echo.Shutdown(ctx)
}
