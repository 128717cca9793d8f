package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"notely/internal/service"
)

// NoteHandler mantiene dependencias para endpoints de notas.
type NoteHandler struct {
	logger   *zap.Logger
	noteServ *service.NoteService
}

// NewNoteHandler crea una instancia de NoteHandler con dependencias necesarias.
func NewNoteHandler(logger *zap.Logger, noteServ *service.NoteService) *NoteHandler {
	return &NoteHandler{
		logger:   logger,
		noteServ: noteServ,
	}
}

// ListNotes maneja GET /notes.
func (h *NoteHandler) ListNotes(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	notes, err := h.noteServ.List(c.Request.Context(), identity.UserID)
	if err != nil {
		h.logger.Error("list notes failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list notes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

// CreateNote maneja POST /notes.
func (h *NoteHandler) CreateNote(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var req struct {
		Title   string `json:"title" binding:"required"`
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create note request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and content are required"})
		return
	}

	note, err := h.noteServ.Create(c.Request.Context(), identity.UserID, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrEmptyFields) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title and content are required"})
			return
		}
		h.logger.Error("create note failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create note"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"note": note})
}

// DeleteNote maneja DELETE /notes/:id.
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	err := h.noteServ.Delete(c.Request.Context(), identity.UserID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
			return
		case errors.Is(err, service.ErrNotOwner):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authorized"})
			return
		default:
			h.logger.Error("delete note failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete note"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "note_removed"})
}
