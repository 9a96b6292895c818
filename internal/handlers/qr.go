package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	apperrors "github.com/cristianadrielbraun/qrapi/internal/errors"
	"github.com/cristianadrielbraun/qrapi/internal/params"
	"github.com/cristianadrielbraun/qrapi/internal/render"
)

// maxBodyBytes bounds POST bodies; data is capped far below this.
const maxBodyBytes = 1 << 20

var fileExtensions = map[render.Format]string{
	render.FormatPNG:  "png",
	render.FormatSVG:  "svg",
	render.FormatJPEG: "jpg",
	render.FormatGIF:  "gif",
}

// QRCodeHandler renders a QR code from GET query or POST form/JSON
// parameters. Query values win over body values.
func (h *Handler) QRCodeHandler(c *gin.Context) {
	body, err := postValues(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	req, err := h.normalizer.Normalize(params.Merge(c.Request.URL.Query(), body))
	if err != nil {
		h.writeError(c, err)
		return
	}

	key := req.Key()
	etag := `"` + strings.TrimPrefix(key, "qr:") + `"`

	if etagMatches(c.GetHeader("If-None-Match"), etag) {
		h.setImageHeaders(c, req.Render.Format, etag)
		c.Status(http.StatusNotModified)
		return
	}

	ctx := c.Request.Context()
	if data, ok, err := h.cache.Get(ctx, key); err != nil {
		h.logger.WithError(err).Warn("QR cache lookup failed")
	} else if ok {
		h.setImageHeaders(c, req.Render.Format, etag)
		c.Header("X-Cache", "HIT")
		c.Data(http.StatusOK, h.renderer.MimeType(req.Render.Format), data)
		return
	}

	matrix, err := h.provider.Encode(req.Payload, req.Level)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"modules": matrix.Size(),
		"size":    req.Render.Size,
		"format":  req.Render.Format,
		"ecc":     req.Level.String(),
	}).Debug("rendering QR code")

	data, mime, err := h.renderer.Render(matrix, req.Render)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if err := h.cache.Set(ctx, key, data, 0); err != nil {
		h.logger.WithError(err).Warn("QR cache store failed")
	}

	h.setImageHeaders(c, req.Render.Format, etag)
	c.Header("X-Cache", "MISS")
	c.Data(http.StatusOK, mime, data)
}

// etagMatches reports whether an If-None-Match header selects etag. The
// comparison is weak, so W/ prefixes are ignored.
func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

func (h *Handler) setImageHeaders(c *gin.Context, format render.Format, etag string) {
	if h.maxAge > 0 {
		c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", int(h.maxAge.Seconds())))
	} else {
		c.Header("Cache-Control", "no-cache")
	}
	c.Header("ETag", etag)
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="qrcode.%s"`, fileExtensions[format]))
}

// writeError maps err to a status code and a JSON body. Internal errors are
// logged with detail and reported without it.
func (h *Handler) writeError(c *gin.Context, err error) {
	kind := apperrors.Kind(err)
	status := http.StatusBadRequest
	entry := h.logger.WithFields(logrus.Fields{"kind": kind, "path": c.Request.URL.Path})
	if kind == apperrors.KindInternal {
		status = http.StatusInternalServerError
		entry.WithError(err).Error("QR generation failed")
	} else {
		entry.WithError(err).Info("rejected QR request")
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(status, gin.H{"error": apperrors.PublicMessage(err), "type": kind})
}

// postValues extracts request body parameters for POST requests. JSON
// objects are flattened to strings; numbers keep their literal text.
func postValues(c *gin.Context) (map[string][]string, error) {
	if c.Request.Method != http.MethodPost {
		return nil, nil
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	switch c.ContentType() {
	case gin.MIMEJSON:
		return jsonValues(c.Request.Body)
	case gin.MIMEMultipartPOSTForm:
		form, err := c.MultipartForm()
		if err != nil {
			return nil, apperrors.Parameter("body", "malformed multipart form")
		}
		return form.Value, nil
	default:
		if err := c.Request.ParseForm(); err != nil {
			return nil, apperrors.Parameter("body", "malformed form body")
		}
		return c.Request.PostForm, nil
	}
}

func jsonValues(r io.Reader) (map[string][]string, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, apperrors.Parameter("body", "malformed JSON object")
	}

	out := make(map[string][]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
		case string:
			out[k] = []string{val}
		case json.Number:
			out[k] = []string{val.String()}
		case bool:
			out[k] = []string{fmt.Sprint(val)}
		default:
			return nil, apperrors.Parameter(k, "must be a string or number")
		}
	}
	return out, nil
}
