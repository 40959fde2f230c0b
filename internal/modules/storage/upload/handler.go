package upload

import (
	"bytes"
	"errors"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/folio-space/core/internal/pkg/assethost"
	"github.com/folio-space/core/internal/pkg/imagecrop"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// multipartSlack covers boundaries and the small crop fields around the file part.
const multipartSlack = 1 << 20

var errTooLarge = errors.New("file too large")

// Handler accepts image uploads and forwards them to the asset host.
type Handler struct {
	uploader assethost.Uploader
	limit    int64
	quality  int
	log      *zap.Logger
}

func NewHandler(uploader assethost.Uploader, limit int64, quality int, log *zap.Logger) *Handler {
	return &Handler{uploader: uploader, limit: limit, quality: quality, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/uploads", authMW)
	g.POST("", h.upload)
	g.POST("/preview", h.preview)
}

func (h *Handler) upload(c *gin.Context) {
	name, data, ok := h.readImage(c)
	if !ok {
		return
	}
	contentType := http.DetectContentType(data)

	opts, present, err := cropFromForm(c)
	if err != nil {
		response.BadRequest(c, "Invalid crop parameters")
		return
	}
	if present {
		opts.Quality = h.quality
		res, err := imagecrop.Process(bytes.NewReader(data), opts)
		if err != nil {
			h.cropFailed(c, err)
			return
		}
		data = res.JPEG
		contentType = "image/jpeg"
		name = strings.TrimSuffix(name, filepath.Ext(name)) + ".jpg"
	}

	url, err := h.uploader.Upload(c.Request.Context(), assethost.Object{
		Name:        assethost.BuildFileName(name),
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		h.log.Error("upload to asset host", zap.String("provider", h.uploader.Name()), zap.Error(err))
		response.BadGateway(c, "Upload failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}

// preview crops the upload and returns it inline. Without crop fields the
// default centered crop for the requested aspect is used.
func (h *Handler) preview(c *gin.Context) {
	_, data, ok := h.readImage(c)
	if !ok {
		return
	}
	opts, present, err := cropFromForm(c)
	if err != nil {
		response.BadRequest(c, "Invalid crop parameters")
		return
	}
	if !present {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			response.Error(c, http.StatusUnsupportedMediaType, "Unsupported file type")
			return
		}
		opts.Crop = imagecrop.CenterAspectCrop(cfg.Width, cfg.Height, opts.Aspect)
	}
	opts.Quality = h.quality

	res, err := imagecrop.Process(bytes.NewReader(data), opts)
	if err != nil {
		h.cropFailed(c, err)
		return
	}
	response.OK(c, gin.H{
		"url":    imagecrop.DataURL(res.JPEG),
		"width":  res.Width,
		"height": res.Height,
	})
}

// readImage enforces the size limit and content sniffing. It writes the error
// response itself and reports false when the request cannot continue.
func (h *Handler) readImage(c *gin.Context) (string, []byte, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.limit+multipartSlack)

	fh, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.Error(c, http.StatusRequestEntityTooLarge, "File too large")
			return "", nil, false
		}
		response.BadRequest(c, "No file provided")
		return "", nil, false
	}
	data, err := h.readPart(fh)
	switch {
	case errors.Is(err, errTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "File too large")
		return "", nil, false
	case err != nil:
		h.log.Warn("read upload", zap.Error(err))
		response.BadRequest(c, "No file provided")
		return "", nil, false
	case len(data) == 0:
		response.BadRequest(c, "No file provided")
		return "", nil, false
	}

	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		response.Error(c, http.StatusUnsupportedMediaType, "Unsupported file type")
		return "", nil, false
	}
	return fh.Filename, data, true
}

func (h *Handler) readPart(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > h.limit {
		return nil, errTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > h.limit {
		return nil, errTooLarge
	}
	return data, nil
}

func (h *Handler) cropFailed(c *gin.Context, err error) {
	switch {
	case errors.Is(err, imagecrop.ErrDecode):
		response.Error(c, http.StatusUnsupportedMediaType, "Unsupported file type")
	case errors.Is(err, imagecrop.ErrSourceTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "Image dimensions too large")
	case errors.Is(err, imagecrop.ErrEmptyCrop),
		errors.Is(err, imagecrop.ErrInvalidScale),
		errors.Is(err, imagecrop.ErrAspectMismatch),
		errors.Is(err, imagecrop.ErrOutputTooLarge):
		response.BadRequest(c, err.Error())
	default:
		h.log.Error("crop image", zap.Error(err))
		response.InternalError(c, "Failed to process image")
	}
}

// cropFromForm reads the optional crop fields. present is false when no
// crop rectangle was submitted.
func cropFromForm(c *gin.Context) (imagecrop.Options, bool, error) {
	var (
		opts imagecrop.Options
		err  error
	)
	num := func(key string, dst *float64) {
		raw := strings.TrimSpace(c.PostForm(key))
		if raw == "" || err != nil {
			return
		}
		*dst, err = strconv.ParseFloat(raw, 64)
	}
	num("aspect", &opts.Aspect)
	num("scale", &opts.Scale)
	num("rotate", &opts.Rotate)
	if raw := strings.TrimSpace(c.PostForm("output_width")); raw != "" && err == nil {
		opts.OutputWidth, err = strconv.Atoi(raw)
	}

	present := strings.TrimSpace(c.PostForm("crop_width")) != ""
	if present {
		num("crop_x", &opts.Crop.X)
		num("crop_y", &opts.Crop.Y)
		num("crop_width", &opts.Crop.Width)
		num("crop_height", &opts.Crop.Height)
	}
	return opts, present, err
}
