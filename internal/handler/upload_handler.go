package handler

import (
	"fmt"
	"image"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadImage stores an uploaded image under the configured upload directory
// and returns its public URL plus pixel dimensions for gallery layout.
func (a *API) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "no image in request")
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respondError(c, http.StatusBadRequest, "only image uploads are allowed")
		return
	}

	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to prepare upload directory")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	filename := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)
	fullPath := filepath.Join(a.uploadDir, filename)

	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save file")
		return
	}

	width, height := probeImageSize(fullPath)

	c.JSON(http.StatusOK, gin.H{
		"url":    strings.TrimRight(a.uploadURL, "/") + "/" + filename,
		"width":  width,
		"height": height,
	})
}

// probeImageSize reads just the image header; a zero size means the format
// was not recognized, which is fine for non-photo assets.
func probeImageSize(path string) (int, int) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
