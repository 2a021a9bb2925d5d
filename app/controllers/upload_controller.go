package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/reqid"
	"github.com/shashiranjanraj/storefront/pkg/storage"
)

var allowedImageExts = map[string]bool{
	".gif":  true,
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".webp": true,
}

// UploadController stores admin-submitted product images on the
// configured disk and hands back a URL suitable for image_url.
type UploadController struct{}

func NewUploadController() *UploadController {
	return &UploadController{}
}

// Store accepts a multipart "image" field, writes it under products/
// with a generated name, and returns {"url": ...}.
func (ct *UploadController) Store(c *ctx.Context) {
	file, header, err := c.FormFile("image")
	if err != nil {
		c.ValidationError(map[string]string{"image": "The image field is required."})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		c.ValidationError(map[string]string{"image": "The image must be a gif, jpeg, jpg, png or webp file."})
		return
	}

	name := fmt.Sprintf("products/%d-%s%s", time.Now().Unix(), reqid.New(), ext)

	if err := storage.PutStream(name, file); err != nil {
		logger.WithCtx(c.Context()).Error("image upload failed", "name", name, "error", err)
		c.Error(http.StatusInternalServerError, "Could not store the image")
		return
	}

	c.Created(map[string]string{"url": storage.URL(name)})
}
