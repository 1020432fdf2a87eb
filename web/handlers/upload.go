package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// UploadAttachmentsHandler stores supporting documents for manual
// adjustments (doctor notes and the like) under attachmentsDir.
func UploadAttachmentsHandler(attachmentsDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Parse multipart form (max 50 MB)
		if err := c.Request.ParseMultipartForm(50 << 20); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		form := c.Request.MultipartForm
		files := form.File["files"]

		uploaded := []string{}

		for _, file := range files {
			ext := filepath.Ext(file.Filename)
			if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".pdf" {
				continue
			}

			dst := filepath.Join(attachmentsDir, filepath.Base(file.Filename))
			if err := c.SaveUploadedFile(file, dst); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}

			uploaded = append(uploaded, dst)
		}

		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("%d files uploaded", len(uploaded)),
			"files":   uploaded,
		})
	}
}
