package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ukydev/fleet-manager/internal/models"
)

// maxUploadBody bounds the whole multipart request: the file plus room for the form fields.
const maxUploadBody = models.MaxDocumentSize + 1<<20

// formValue reads a multipart field, falling back to the query string.
func formValue(c *gin.Context, key string) string {
	if v, ok := c.GetPostForm(key); ok {
		return v
	}
	return c.Query(key)
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// UploadDocument stores a multipart "file" with its name and content_type.
func (h *Handler) UploadDocument(c *gin.Context) {
	if c.Request.ContentLength > maxUploadBody {
		fileTooLarge(c)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBody)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fileTooLarge(c)
			return
		}
		badRequest(c, "file is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		badRequest(c, "Failed to read upload")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, models.MaxDocumentSize+1))
	if err != nil {
		badRequest(c, "Failed to read upload")
		return
	}

	meta := models.Document{
		Name:        formValue(c, "name"),
		ContentType: formValue(c, "content_type"),
		VehicleID:   optional(formValue(c, "vehicle_id")),
		UserID:      optional(formValue(c, "user_id")),
	}
	id, err := h.svc.UploadDocument(c.Request.Context(), meta, content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func fileTooLarge(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, gin.H{"detail": fmt.Sprintf("File exceeds %d bytes", models.MaxDocumentSize)})
}

// ListDocuments returns document metadata, optionally filtered by vehicle or user
func (h *Handler) ListDocuments(c *gin.Context) {
	docs, err := h.svc.ListDocuments(c.Request.Context(), c.Query("vehicle_id"), c.Query("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// DocumentContent streams a stored document back as an attachment
func (h *Handler) DocumentContent(c *gin.Context) {
	doc, err := h.svc.DocumentContent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Name))
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}
