package server

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"talespin/pkg/schema"
	"talespin/pkg/story"
	"talespin/pkg/utils"
)

type choiceReq struct {
	SessionID   string `json:"sessionId"`
	ChoiceIndex int    `json:"choiceIndex"`
}

type sceneResponse struct {
	SessionID string   `json:"sessionId,omitempty"`
	Text      string   `json:"text"`
	ImageURL  *string  `json:"imageUrl"`
	AudioURL  *string  `json:"audioUrl"`
	Choices   []string `json:"choices"`
}

func sceneJSON(sessionID string, s *schema.Scene) sceneResponse {
	return sceneResponse{
		SessionID: sessionID,
		Text:      s.Text,
		ImageURL:  s.ImageURL,
		AudioURL:  s.AudioURL,
		Choices:   s.Choices,
	}
}

// POST /api/game/start
func (s *Server) handlePostStart(c echo.Context) error {
	id, scene := s.Registry.Create(c.Request().Context())
	log.Info("session started", "session", id, "live", s.Registry.Len())
	return c.JSON(http.StatusOK, sceneJSON(id, scene))
}

// POST /api/game/choice
func (s *Server) handlePostChoice(c echo.Context) error {
	var req choiceReq
	if err := c.Bind(&req); err != nil {
		log.Warn("invalid JSON in /api/game/choice", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid json")
	}

	engine, ok := s.Registry.Get(req.SessionID)
	if !ok {
		return c.JSON(http.StatusNotFound, utils.ErrJSON("Game session not found"))
	}

	scene, err := engine.Choose(c.Request().Context(), req.ChoiceIndex)
	if err != nil {
		if errors.Is(err, story.ErrNotStarted) {
			return c.JSON(http.StatusNotFound, utils.ErrJSON("Game session not found"))
		}
		log.Error("choice failed", "session", req.SessionID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	log.Info("scene advanced", "session", req.SessionID, "choice", req.ChoiceIndex)
	return c.JSON(http.StatusOK, sceneJSON(req.SessionID, scene))
}
