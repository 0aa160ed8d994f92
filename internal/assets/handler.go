package assets

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gamehub/pkg/models"
)

// Handler is the upload receiver: it accepts a multipart form with the
// target entity linkage (refId, ref, field) plus the binary payload,
// stores the blob under Dir and records a files row.
type Handler struct {
	Repo *Repo
	Dir  string
	Log  *zap.Logger
}

func NewHandler(repo *Repo, dir string, log *zap.Logger) *Handler {
	return &Handler{Repo: repo, Dir: dir, Log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.upload) // POST /upload
}

func (h *Handler) upload(c *gin.Context) {
	refID, err := strconv.ParseInt(c.PostForm("refId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid refId"})
		return
	}
	ref := c.PostForm("ref")
	field := c.PostForm("field")
	if ref == "" || field == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ref and field required"})
		return
	}

	file, err := c.FormFile("files")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "files part required"})
		return
	}

	stored := uuid.NewString() + "_" + filepath.Base(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(h.Dir, stored)); err != nil {
		h.Log.Error("save upload failed", zap.String("file", file.Filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	f := models.FileDB{
		Name:  file.Filename,
		URL:   "/uploads/" + stored,
		Ref:   ref,
		RefID: refID,
		Field: field,
	}
	id, err := h.Repo.CreateFile(c.Request.Context(), f)
	if err != nil {
		h.Log.Error("record upload failed", zap.String("file", file.Filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "record failed"})
		return
	}
	f.ID = id

	c.JSON(http.StatusCreated, f)
}
