// Package render sends pooled bodies through gin.
package render

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	ginrender "github.com/gin-gonic/gin/render"
	"github.com/ugparu/pooledhttp"
)

var _ ginrender.Render = Pooled{}

// Pooled renders Body with an exact Content-Length. It does not release Body;
// use Data for that.
type Pooled struct {
	ContentType string
	Body        *pooledhttp.PooledBody
	Context     context.Context
}

// Render fails with pooledhttp.ErrDisposed and status 500, leaving the other
// headers alone, when Body was already released.
func (r Pooled) Render(w http.ResponseWriter) error {
	if r.Body.Released() {
		w.WriteHeader(http.StatusInternalServerError)
		return pooledhttp.ErrDisposed
	}
	r.WriteContentType(w)
	w.Header().Set("Content-Length", strconv.FormatInt(r.Body.ContentLength(), 10))
	ctx := r.Context
	if ctx == nil {
		ctx = context.Background()
	}
	_, err := r.Body.WriteToContext(ctx, w)
	return err
}

func (r Pooled) WriteContentType(w http.ResponseWriter) {
	header := w.Header()
	if val := header["Content-Type"]; len(val) == 0 {
		contentType := r.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header["Content-Type"] = []string{contentType}
	}
}

// Data writes body as the response and releases it afterwards, including when
// gin skips the body for HEAD, 204 or 304 responses. A disposed body aborts the
// request with 500. Write failures are recorded on the context.
func Data(c *gin.Context, code int, contentType string, body *pooledhttp.PooledBody) {
	defer body.Release()

	if body.Released() {
		_ = c.AbortWithError(http.StatusInternalServerError, pooledhttp.ErrDisposed)
		return
	}
	if c.Request.Method == http.MethodHead {
		c.Header("Content-Length", strconv.FormatInt(body.ContentLength(), 10))
		c.Status(code)
		Pooled{ContentType: contentType, Body: body}.WriteContentType(c.Writer)
		c.Writer.WriteHeaderNow()
		return
	}
	c.Render(code, Pooled{
		ContentType: contentType,
		Body:        body,
		Context:     c.Request.Context(),
	})
}
