/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package server

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/Juice-Labs/encprobe/pkg/errors"
	"github.com/Juice-Labs/encprobe/pkg/logger"
	"github.com/Juice-Labs/encprobe/pkg/task"
)

var (
	ErrInvalidPort = errors.New("server: address does not contain a valid port")
)

const shutdownTimeout = 5 * time.Second

type Endpoint struct {
	Methods []string
	Path    string
	Handler http.Handler
}

type Server struct {
	url url.URL

	port int

	root    *mux.Router
	handler http.Handler

	endpoints []Endpoint
}

// NewServer creates a server listening on address once Run is called.
// Requests from allowedOrigins pass CORS; an empty list allows none.
func NewServer(address string, allowedOrigins []string) (*Server, error) {
	url := url.URL{
		Host: address,
	}

	portStr := url.Port()
	if portStr == "" {
		portStr = "80"
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, ErrInvalidPort
	}

	cors := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
			http.MethodHead,
		},

		AllowedHeaders: []string{
			"*",
		},
	})

	root := mux.NewRouter().StrictSlash(true)
	root.Use(logRequests)
	handler := cors.Handler(root)

	server := &Server{
		url:     url,
		port:    port,
		root:    root,
		handler: handler,
	}

	server.AddEndpointFunc("GET", "/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return server, nil
}

func (server *Server) Port() int {
	return server.port
}

func (server *Server) AddEndpointFunc(method string, path string, fn http.HandlerFunc) {
	server.AddEndpoint(Endpoint{
		Methods: []string{method},
		Path:    path,
		Handler: fn,
	})
}

func (server *Server) AddEndpointHandler(method string, path string, handler http.Handler) {
	server.AddEndpoint(Endpoint{
		Methods: []string{method},
		Path:    path,
		Handler: handler,
	})
}

func (server *Server) AddEndpoint(endpoint Endpoint) {
	server.endpoints = append(server.endpoints, endpoint)
}

// Handler registers the endpoints added so far and returns the root
// handler. Endpoints added afterwards are not served.
func (server *Server) Handler() http.Handler {
	for _, endpoint := range server.endpoints {
		server.root.Methods(endpoint.Methods...).Path(endpoint.Path).Handler(endpoint.Handler)
	}
	server.endpoints = nil

	return server.handler
}

// Run serves until the group is canceled.
func (server *Server) Run(group task.Group) error {
	httpServer := http.Server{
		BaseContext: func(_ net.Listener) context.Context {
			return group.Ctx()
		},
		Addr:              server.url.Host,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	group.GoFn("HTTP Listen", func(group task.Group) error {
		logger.Infof("Listening on %s", server.url.Host)

		err := httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	})

	group.GoFn("HTTP Shutdown", func(group task.Group) error {
		<-group.Ctx().Done()

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return httpServer.Shutdown(ctx)
	})

	return nil
}
