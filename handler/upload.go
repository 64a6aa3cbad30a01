package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/AnTengye/tenantdesk/middleware"
	"github.com/AnTengye/tenantdesk/model"
	"github.com/AnTengye/tenantdesk/pkg/logger"
	"github.com/gin-gonic/gin"
)

// UploadAnchor is where the browser lands after submitting the form
const UploadAnchor = "/#upload"

type UploadHandler struct{}

func NewUploadHandler() *UploadHandler {
	return &UploadHandler{}
}

// Submit selects the posted file, if any, and starts the upload. The
// browser is always redirected back to the page, which shows the widget
// state; a submit without any selected file changes nothing.
func (h *UploadHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()
	widget := middleware.GetWidget(c)
	if widget == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No upload session"})
		return
	}

	header, err := c.FormFile("file")
	switch {
	case err == nil:
		file, err := readSelectedFile(header)
		if err != nil {
			logger.Warn(ctx, "failed to read posted file", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
			return
		}
		widget.Select(file)
	case errors.Is(err, http.ErrMissingFile):
		// keep whatever was selected before
	default:
		logger.Warn(ctx, "invalid upload form", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid upload form"})
		return
	}

	if !widget.Submit(ctx) {
		logger.Debug(ctx, "upload submit ignored", "status", widget.Snapshot().Status)
	}

	c.Redirect(http.StatusSeeOther, UploadAnchor)
}

// State returns the caller's widget state as JSON
func (h *UploadHandler) State(c *gin.Context) {
	widget := middleware.GetWidget(c)
	if widget == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No upload session"})
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, widget.Snapshot())
}

func readSelectedFile(header *multipart.FileHeader) (*model.SelectedFile, error) {
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return &model.SelectedFile{Name: header.Filename, Content: content}, nil
}
