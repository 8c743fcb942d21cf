package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/konseloradiksi/soapgen/internal/logger"
)

const defaultShutdownTimeout = 10 * time.Second

// Run serves handler on addr until ctx is cancelled, then shuts down
// gracefully within shutdownTimeout. ready, if not nil, receives the bound
// address once the listener is open.
func Run(ctx context.Context, addr string, handler http.Handler, shutdownTimeout time.Duration, ready func(addr string)) error {
	log := logger.FromContext(ctx)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("error listening on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		// Requests keep the logger of ctx but outlive its cancellation
		// until Shutdown gives up.
		BaseContext: func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", ln.Addr().String())
		serverErrors <- srv.Serve(ln)
	}()

	if ready != nil {
		ready(ln.Addr().String())
	}

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil

	case <-ctx.Done():
		log.Info("starting graceful shutdown")

		if shutdownTimeout <= 0 {
			shutdownTimeout = defaultShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed, forcing close", "error", err)
			if closeErr := srv.Close(); closeErr != nil {
				return fmt.Errorf("could not stop server: shutdown error: %v, close error: %v", err, closeErr)
			}
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}

		log.Info("server stopped cleanly")
		return nil
	}
}
