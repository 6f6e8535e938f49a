package handler

import (
	"github.com/gin-gonic/gin"

	backupapp "github.com/bizledger/backend/internal/application/backup"
)

// BackupHandler exposes store snapshots to administrators
type BackupHandler struct {
	BaseHandler
	backupService *backupapp.Service
}

// NewBackupHandler creates a new BackupHandler
func NewBackupHandler(backupService *backupapp.Service) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// Create godoc
// @Summary      Create a backup
// @Description  Snapshots the store and uploads it. Admin only.
// @Tags         backup
// @Produce      json
// @Success      201 {object} dto.Response{data=backupapp.Info}
// @Failure      403 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Router       /backups [post]
func (h *BackupHandler) Create(c *gin.Context) {
	info, err := h.backupService.Create(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, info)
}

// List godoc
// @Summary      List backups
// @Description  Newest first. Admin only.
// @Tags         backup
// @Produce      json
// @Success      200 {object} dto.Response{data=[]backupapp.Info}
// @Failure      403 {object} dto.Response
// @Router       /backups [get]
func (h *BackupHandler) List(c *gin.Context) {
	backups, err := h.backupService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, backups)
}

// Restore godoc
// @Summary      Restore a backup
// @Description  Replaces the store contents with the stored snapshot. Admin only.
// @Tags         backup
// @Produce      json
// @Param        id path string true "Backup ID"
// @Success      200 {object} dto.Response{data=backupapp.RestoreResult}
// @Failure      400 {object} dto.Response
// @Failure      403 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /backups/{id}/restore [post]
func (h *BackupHandler) Restore(c *gin.Context) {
	result, err := h.backupService.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
