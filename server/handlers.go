package server

import (
	"io"
	"net/http"

	"github.com/asciimoth/bufpool"
	"github.com/gin-gonic/gin"
	"github.com/ugparu/pooledhttp"
	"github.com/ugparu/pooledhttp/render"
	"github.com/ugparu/pooledhttp/utils/logger"
)

const defaultContentType = "application/octet-stream"

func (s *Server) getHealth(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// readBody reads the whole request body into a pooled buffer. On failure the
// response is already written and the returned buffer is nil.
func (s *Server) readBody(c *gin.Context) []byte {
	n := c.Request.ContentLength
	if n < 0 {
		c.Status(http.StatusLengthRequired)
		return nil
	}
	if n > s.maxBody {
		c.Status(http.StatusRequestEntityTooLarge)
		return nil
	}
	buf := bufpool.GetBuffer(s.pool, int(n))
	if _, err := io.ReadFull(c.Request.Body, buf); err != nil {
		bufpool.PutBuffer(s.pool, buf)
		logger.Warningf(s, "Failed to read %d byte body: %v", n, err)
		c.Status(http.StatusBadRequest)
		return nil
	}
	return buf
}

func (s *Server) respond(c *gin.Context, contentType string, buf []byte) {
	body, err := pooledhttp.New(s.pool, buf, len(buf))
	if err != nil {
		bufpool.PutBuffer(s.pool, buf)
		logger.Errorf(s, "Failed to wrap response: %v", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	render.Data(c, http.StatusOK, contentType, body)
	if len(c.Errors) > 0 && !pooledhttp.IsCancelled(c.Errors.Last().Err) {
		logger.Warningf(s, "Failed to write response: %v", c.Errors.Last().Err)
	}
}

func requestContentType(c *gin.Context) string {
	if ct := c.GetHeader("Content-Type"); ct != "" {
		return ct
	}
	return defaultContentType
}

func (s *Server) postEcho(c *gin.Context) {
	buf := s.readBody(c)
	if buf == nil {
		return
	}
	logger.Debugf(s, "Echoing %d bytes", len(buf))
	s.respond(c, requestContentType(c), buf)
}

func (s *Server) putBlob(c *gin.Context) {
	buf := s.readBody(c)
	if buf == nil {
		return
	}
	defer bufpool.PutBuffer(s.pool, buf)

	key := c.Param("key")
	s.store.Put(key, requestContentType(c), buf)
	logger.Debugf(s, "Stored blob %s, %d bytes", key, len(buf))
	c.Status(http.StatusCreated)
}

func (s *Server) getBlob(c *gin.Context) {
	key := c.Param("key")
	buf, contentType, ok := s.store.Load(key, s.pool)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	s.respond(c, contentType, buf)
}

func (s *Server) deleteBlob(c *gin.Context) {
	if !s.store.Delete(c.Param("key")) {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) getPoolStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.pool.Stats())
}
