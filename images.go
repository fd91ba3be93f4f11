package mdblog

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
	uploadsSubdir = "uploads"
)

// processImage decodes an image from src, downscales it to maxImageWidth if
// wider, and encodes it as JPEG.
func processImage(src io.Reader, originalName string) (Image, []byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return Image{}, nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxImageWidth
		h = newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Image{}, nil, fmt.Errorf("encode jpeg: %w", err)
	}

	name := Slugify(strings.TrimSuffix(originalName, filepath.Ext(originalName)))
	if name == "" {
		name = "image"
	}
	return Image{
		Filename: name + ".jpg",
		Width:    w,
		Height:   h,
		Size:     int64(buf.Len()),
	}, buf.Bytes(), nil
}

// uniqueFilename appends a counter to name until it does not exist in dir.
func uniqueFilename(dir, name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	candidate := name
	for n := 2; ; n++ {
		if _, err := os.Stat(filepath.Join(dir, candidate)); errors.Is(err, fs.ErrNotExist) {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d%s", base, n, ext)
	}
}

func (a *App) uploadsDir() string {
	return filepath.Join(a.staticDir, uploadsSubdir)
}

func uploadURL(filename string) string {
	return "/public/" + uploadsSubdir + "/" + PathEscape(filename)
}

func (a *App) handleImageUpload(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "No image file provided")
	}
	if file.Size > maxUploadSize {
		return jsonError(c, http.StatusBadRequest, "File too large (max 10MB)")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	img, data, err := processImage(src, file.Filename)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid image: "+err.Error())
	}

	dir := a.uploadsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create uploads dir: %w", err)
	}
	img.Filename = uniqueFilename(dir, img.Filename)
	img.URL = uploadURL(img.Filename)

	if err := writeFile(filepath.Join(dir, img.Filename), data); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	c.Logger().Infof("uploaded image %s (%dx%d)", img.Filename, img.Width, img.Height)
	return c.JSON(http.StatusCreated, img)
}

// listImages reads dimensions from each file header in the uploads directory.
// Files that do not decode as images are skipped.
func (a *App) listImages() ([]Image, error) {
	dir := a.uploadsDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Image{}, nil
		}
		return nil, err
	}
	images := make([]Image, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		img, ok := readImageInfo(filepath.Join(dir, e.Name()))
		if !ok {
			continue
		}
		img.Filename = e.Name()
		img.URL = uploadURL(e.Name())
		images = append(images, img)
	}
	return images, nil
}

func readImageInfo(path string) (Image, bool) {
	f, err := os.Open(path)
	if err != nil {
		return Image{}, false
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Image{}, false
	}
	info, err := f.Stat()
	if err != nil {
		return Image{}, false
	}
	return Image{Width: cfg.Width, Height: cfg.Height, Size: info.Size()}, true
}

func (a *App) handleImageList(c echo.Context) error {
	images, err := a.listImages()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, images)
}

func (a *App) handleImageDelete(c echo.Context) error {
	filename := c.Param("filename")
	if !ValidFilename(filename) {
		return jsonError(c, http.StatusBadRequest, "Invalid filename")
	}
	if err := os.Remove(filepath.Join(a.uploadsDir(), filename)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return jsonError(c, http.StatusNotFound, "Image not found")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
