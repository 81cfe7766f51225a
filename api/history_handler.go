package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Dr-42/isogit/calculate"
	"github.com/Dr-42/isogit/core"
	"github.com/gin-gonic/gin"
)

// HistoryHandler serves per-commit file listings.
type HistoryHandler struct {
	service *calculate.HistoryService
	timeout func() time.Duration
	log     *slog.Logger
}

func NewHistoryHandler(service *calculate.HistoryService, timeout func() time.Duration, log *slog.Logger) *HistoryHandler {
	return &HistoryHandler{service: service, timeout: timeout, log: log}
}

// FileList lists every file of every commit reachable from HEAD of ?name=.
func (h *HistoryHandler) FileList(c *gin.Context) {
	name, ok := c.GetQuery("name")
	if !ok {
		c.String(http.StatusBadRequest, "Missing repository name")
		return
	}

	ctx := c.Request.Context()
	if d := h.timeout(); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	listings, err := h.service.ListCommitFiles(ctx, name)
	if err != nil {
		h.writeError(c, name, err)
		return
	}

	body, err := json.Marshal(listings)
	if err != nil {
		h.log.Error("listing serialization failed", "repository", name, "error", err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

func (h *HistoryHandler) writeError(c *gin.Context, name string, err error) {
	var (
		invalid  *core.InvalidNameError
		notFound *core.RepositoryNotFoundError
		openErr  *core.StorageOpenError
	)
	switch {
	case errors.As(err, &invalid):
		c.String(http.StatusBadRequest, "Invalid repository name")
	case errors.As(err, &notFound):
		c.String(http.StatusNotFound, "Repository not found")
	case errors.As(err, &openErr):
		h.log.Error("repository open failed", "repository", name, "error", err)
		c.String(http.StatusInternalServerError, "Unable to open repository")
	default:
		h.log.Error("history traversal failed", "repository", name, "error", err)
		c.String(http.StatusInternalServerError, "Unable to read repository history")
	}
}
