package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"sync"
	"syscall"
	"time"

	"gopkg.in/vrecan/death.v3"
)

type EventlyHttpServer struct {
	router          *Router
	srv             *http.Server
	shutdownTimeout time.Duration
	onShutdown      []func()

	shutdownOnce sync.Once
	shutdownErr  error
	hooksOnce    sync.Once
}

func NewEventlyHttpServer(router *Router, port string, readTimeout, writeTimeout, shutdownTimeout time.Duration) *EventlyHttpServer {
	router.RegisterRoutes()
	return &EventlyHttpServer{
		router: router,
		srv: &http.Server{
			Addr:         ":" + port,
			Handler:      router.Handler(),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

// OnShutdown registers fn to run after the listener has stopped.
func (s *EventlyHttpServer) OnShutdown(fn func()) {
	s.onShutdown = append(s.onShutdown, fn)
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully. It
// returns early with an error when the port cannot be bound or serving fails.
func (s *EventlyHttpServer) Start() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		s.runHooks()
		return fmt.Errorf("listen on %s: %w", s.srv.Addr, err)
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("[EventlyHttpServer] Starting server on %s", ln.Addr())
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	d := death.NewDeath(syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	stopped := make(chan struct{})
	go func() {
		d.WaitForDeathWithFunc(func() {
			log.Println("[EventlyHttpServer] Shutting down the server...")
		})
		close(stopped)
	}()

	select {
	case err, ok := <-serveErr:
		// the signal waiter must not outlive Start
		d.FallOnSword()
		<-stopped
		if ok {
			s.runHooks()
			return fmt.Errorf("serve: %w", err)
		}
	case <-stopped:
	}
	return s.Shutdown()
}

// Shutdown stops accepting connections, waits for in-flight requests and then
// runs the registered shutdown hooks. Only the first call has any effect.
func (s *EventlyHttpServer) Shutdown() error {
	s.shutdownOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		err := s.srv.Shutdown(ctx)
		s.runHooks()
		if err != nil {
			s.shutdownErr = fmt.Errorf("server forced to shutdown: %w", err)
			return
		}
		log.Println("[EventlyHttpServer] Server exiting")
	})
	return s.shutdownErr
}

func (s *EventlyHttpServer) runHooks() {
	s.hooksOnce.Do(func() {
		for _, fn := range s.onShutdown {
			fn()
		}
	})
}
