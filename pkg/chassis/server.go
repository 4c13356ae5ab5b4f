// Package chassis serves one HTTP handler on both transports of a port:
// TLS over TCP (HTTP/1.1 and HTTP/2) and QUIC over UDP (HTTP/3). TCP
// responses advertise the HTTP/3 endpoint with Alt-Svc.
//
// Without cert files a self-signed ECDSA P-256 certificate is generated.
package chassis

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/quic-go/quic-go/http3"
	"golang.org/x/sync/errgroup"
)

// Config holds what the classification server needs to listen.
type Config struct {
	Addr     string // TCP and UDP share this address
	CertFile string
	KeyFile  string
	Handler  http.Handler
	Logger   *slog.Logger
}

// Server runs the TCP and QUIC listeners for one handler.
type Server struct {
	addr   string
	logger *slog.Logger
	tcp    *http.Server
	h3     *http3.Server
}

// New loads or generates the certificate and prepares both servers.
func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	var (
		tlsCfg *tls.Config
		err    error
	)
	if cfg.CertFile != "" && cfg.KeyFile != "" {
		tlsCfg, err = FileTLSConfig(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("load TLS cert: %w", err)
		}
		cfg.Logger.Info("TLS: certificate loaded", "cert", cfg.CertFile)
	} else {
		tlsCfg, err = SelfSignedTLSConfig()
		if err != nil {
			return nil, fmt.Errorf("generate TLS cert: %w", err)
		}
		cfg.Logger.Warn("TLS: using a self-signed certificate")
	}

	handler := SecurityHeaders(AltSvc(cfg.Addr, cfg.Handler))

	tcpTLS := tlsCfg.Clone()
	tcpTLS.NextProtos = []string{"h2", "http/1.1"}

	return &Server{
		addr:   cfg.Addr,
		logger: cfg.Logger,
		tcp: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			TLSConfig:         tcpTLS,
			ReadHeaderTimeout: 10 * time.Second,
		},
		h3: &http3.Server{
			Addr:      cfg.Addr,
			Handler:   handler,
			TLSConfig: http3.ConfigureTLSConfig(tlsCfg.Clone()),
		},
	}, nil
}

// Serve runs both listeners until ctx is done or one of them fails, then
// shuts both down.
func (s *Server) Serve(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ln, err := tls.Listen("tcp", s.addr, s.tcp.TLSConfig)
		if err != nil {
			return fmt.Errorf("TCP listen: %w", err)
		}
		s.logger.Info("TCP listener ready", "addr", s.addr, "proto", "HTTP/1.1+HTTP/2")
		if err := s.tcp.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("TCP: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		s.logger.Info("UDP listener ready", "addr", s.addr, "proto", "HTTP/3")
		if err := s.h3.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
			return fmt.Errorf("QUIC: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.stop(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) stop(ctx context.Context) error {
	s.logger.Info("chassis stopping")
	return errors.Join(s.tcp.Shutdown(ctx), s.h3.Close())
}

// SecurityHeaders adds the standard response hardening headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// AltSvc advertises HTTP/3 on the port of addr.
func AltSvc(addr string, next http.Handler) http.Handler {
	_, port, _ := net.SplitHostPort(addr)
	if port == "" {
		port = "443"
	}
	value := fmt.Sprintf(`h3=":%s"; ma=86400`, port)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Alt-Svc", value)
		next.ServeHTTP(w, r)
	})
}
