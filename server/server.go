// Package server is a gin HTTP server that answers through pooled bodies.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/ugparu/pooledhttp/config"
	"github.com/ugparu/pooledhttp/utils/buffer"
	"github.com/ugparu/pooledhttp/utils/logger"
)

type Server struct {
	server    *http.Server
	router    *gin.Engine
	pool      *buffer.CountingPool
	store     *Store
	maxBody   int64
	startOnce *sync.Once
	closeOnce *sync.Once
	deadChan  chan struct{}
}

// New builds a server that borrows response buffers from pool.
func New(cfg config.Config, pool buffer.Pool) *Server {
	router := gin.New()
	router.Use(cors, gin.Recovery())
	if cfg.Pprof {
		pprof.Register(router)
	}

	s := &Server{
		router:    router,
		pool:      buffer.NewCountingPool(pool),
		store:     NewStore(),
		maxBody:   cfg.MaxBodyBytes(),
		startOnce: &sync.Once{},
		closeOnce: &sync.Once{},
		deadChan:  make(chan struct{}),
	}
	s.server = &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	router.GET("/healthz", s.getHealth)
	router.POST("/echo", s.postEcho)
	router.GET("/blobs/:key", s.getBlob)
	router.HEAD("/blobs/:key", s.getBlob)
	router.PUT("/blobs/:key", s.putBlob)
	router.DELETE("/blobs/:key", s.deleteBlob)
	router.GET("/debug/pool", s.getPoolStats)

	logger.Debugf(s, "Initialized on %s, max body %d bytes", cfg.Addr, s.maxBody)
	return s
}

func (s *Server) String() string {
	return "server"
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Stats() buffer.Stats {
	return s.pool.Stats()
}

// Start serves until the server is closed. Only the first call does anything.
func (s *Server) Start() (err error) {
	err = errors.New("HTTP server has been started already")
	s.startOnce.Do(func() {
		defer close(s.deadChan)

		logger.Infof(s, "Starting listening on %s", s.server.Addr)
		err = s.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
	})
	if err != nil {
		logger.Error(s, err.Error())
	}
	return err
}

// Shutdown stops accepting requests and waits for active ones until ctx is done.
func (s *Server) Shutdown(ctx context.Context) (err error) {
	s.closeOnce.Do(func() {
		logger.Warning(s, "Shutting down")
		err = s.server.Shutdown(ctx)
	})
	return err
}

func (s *Server) Close() {
	s.closeOnce.Do(func() {
		logger.Warning(s, "Stopping and closing")
		if err := s.server.Close(); err != nil {
			logger.Error(s, err.Error())
		}
	})
}

func (s *Server) Dead() <-chan struct{} {
	return s.deadChan
}

func cors(c *gin.Context) {
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length")
	c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, POST, PUT, DELETE, OPTIONS")
	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusOK)
		return
	}
	c.Next()
}
