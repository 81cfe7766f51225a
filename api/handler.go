package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Dr-42/isogit/calculate"
	"github.com/Dr-42/isogit/core"
	"github.com/Dr-42/isogit/web"
	"github.com/gin-gonic/gin"
)

// StaticHandler serves the embedded UI assets.
type StaticHandler struct {
	log *slog.Logger
}

func NewStaticHandler(log *slog.Logger) *StaticHandler {
	return &StaticHandler{log: log}
}

// Asset returns a handler serving one embedded file with the given content type.
func (h *StaticHandler) Asset(name, contentType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := web.Asset(name)
		if err != nil {
			h.log.Error("embedded asset missing", "asset", name, "error", err)
			c.String(http.StatusInternalServerError, "Internal Server Error")
			return
		}
		c.Data(http.StatusOK, contentType, body)
	}
}

// RepoHandler handles repository creation and the metadata list.
type RepoHandler struct {
	service *calculate.InitService
	log     *slog.Logger
}

func NewRepoHandler(service *calculate.InitService, log *slog.Logger) *RepoHandler {
	return &RepoHandler{service: service, log: log}
}

// RepoList returns the registry as a JSON array.
func (h *RepoHandler) RepoList(c *gin.Context) {
	repos, err := h.service.ListRepos()
	if err != nil {
		h.log.Error("repo list failed", "error", err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.JSON(http.StatusOK, repos)
}

// AddRepo creates a bare repository and registers it.
func (h *RepoHandler) AddRepo(c *gin.Context) {
	var req AddRepoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid JSON")
		return
	}

	result, err := h.service.AddRepo(core.RepoDetails{Name: req.Name, Description: req.Description})
	if err != nil {
		var invalid *core.InvalidNameError
		if errors.As(err, &invalid) {
			c.String(http.StatusBadRequest, invalid.Error())
			return
		}
		c.String(http.StatusInternalServerError, "Unable to create repository")
		return
	}

	if result.Registered {
		c.Status(http.StatusCreated)
		return
	}
	c.Status(http.StatusOK)
}

// ConfigHandler handles configuration requests
type ConfigHandler struct {
	service *calculate.ConfigService
	log     *slog.Logger
}

func NewConfigHandler(service *calculate.ConfigService, log *slog.Logger) *ConfigHandler {
	return &ConfigHandler{service: service, log: log}
}

func (h *ConfigHandler) UpdateStoragePath(c *gin.Context) {
	var req UpdateStoragePathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.service.SetStoragePath(req.Path); err != nil {
		h.log.Error("storage path update failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update configuration"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Storage path updated successfully. Configuration is now in effect.",
		"path":    req.Path,
	})
}
