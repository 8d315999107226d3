// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

var _ Server = (*server)(nil)

type PathAdder interface {
	// AddRoute registers [handler] under [base]/[endpoint].
	AddRoute(handler http.Handler, base, endpoint string) error
}

// Server maintains the HTTP router of a node.
type Server interface {
	PathAdder
	// Dispatch serves until Shutdown is called
	Dispatch() error
	Shutdown() error
	Addr() net.Addr
	// Routes lists every registered url
	Routes() []string
}

type HTTPConfig struct {
	ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
	ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
	WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
	IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
}

type Config struct {
	HTTPConfig

	// BaseURL prefixes every route, e.g. "/ext"
	BaseURL         string
	AllowedOrigins  []string
	AllowedHosts    []string
	ShutdownTimeout time.Duration
}

type server struct {
	config Config
	log    logging.Logger

	router *router
	srv    *http.Server

	lock   sync.Mutex
	routes []string

	listener net.Listener
}

// New returns a Server that will serve on [listener]. Requests pass
// through [wrappers] first, then gzip, cors and the allowed hosts check.
func New(
	log logging.Logger,
	listener net.Listener,
	config Config,
	wrappers ...Wrapper,
) (Server, error) {
	router := newRouter()
	var handler http.Handler = gziphandler.GzipHandler(
		cors.New(cors.Options{
			AllowedOrigins:   config.AllowedOrigins,
			AllowCredentials: true,
		}).Handler(filterInvalidHosts(router, config.AllowedHosts)),
	)
	for _, wrapper := range wrappers {
		handler = wrapper.WrapHandler(handler)
	}

	log.Info("API created",
		zap.String("baseURL", config.BaseURL),
		zap.Strings("allowedOrigins", config.AllowedOrigins),
		zap.Strings("allowedHosts", config.AllowedHosts),
	)
	return &server{
		config: config,
		log:    log,
		router: router,
		srv: &http.Server{
			Handler:           handler,
			ReadTimeout:       config.ReadTimeout,
			ReadHeaderTimeout: config.ReadHeaderTimeout,
			WriteTimeout:      config.WriteTimeout,
			IdleTimeout:       config.IdleTimeout,
		},
		listener: listener,
	}, nil
}

func (s *server) Dispatch() error {
	s.log.Info("serving API",
		zap.Stringer("address", s.listener.Addr()),
		zap.Strings("routes", s.Routes()),
	)
	return s.srv.Serve(s.listener)
}

func (s *server) AddRoute(handler http.Handler, base, endpoint string) error {
	url := fmt.Sprintf("%s/%s", s.config.BaseURL, base)
	if err := s.router.AddRouter(url, endpoint, handler); err != nil {
		return err
	}
	s.log.Info("added route",
		zap.String("url", url),
		zap.String("endpoint", endpoint),
	)

	s.lock.Lock()
	defer s.lock.Unlock()
	s.routes = append(s.routes, url+endpoint)
	slices.Sort(s.routes)
	return nil
}

func (s *server) Routes() []string {
	s.lock.Lock()
	defer s.lock.Unlock()

	return append([]string(nil), s.routes...)
}

func (s *server) Addr() net.Addr {
	return s.listener.Addr()
}

func (s *server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	err := s.srv.Shutdown(ctx)
	// a timed out shutdown still has to release the listener
	_ = s.srv.Close()
	return err
}
