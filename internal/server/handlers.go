package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"scribble/internal/notes"
)

type createNoteRequest struct {
	Text *string `json:"text"`
}

func (s *Server) handleHealth(c echo.Context) error {
	if err := c.JSON(http.StatusOK, map[string]any{"status": "ok", "notes": s.store.Len()}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleListNotes(c echo.Context) error {
	if err := c.JSON(http.StatusOK, s.store.List()); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleCreateNote(c echo.Context) error {
	var req createNoteRequest
	if err := c.Bind(&req); err != nil {
		return validationError("invalid JSON body")
	}
	if req.Text == nil {
		return validationError("text is required")
	}
	if notes.IsBlank(*req.Text) {
		return validationError("text must not be empty")
	}

	created := s.store.Create(*req.Text)
	if err := c.JSON(http.StatusOK, created); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

// handleDeleteNote answers with a JSON bool telling whether a note was
// removed. Unknown ids are not an error; ids that are not UUIDs are.
func (s *Server) handleDeleteNote(c echo.Context) error {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return validationError("id must be a UUID")
	}

	removed := s.store.Delete(id)
	if err := c.JSON(http.StatusOK, removed); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
