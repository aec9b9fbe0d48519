package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-orderform/components/orderform"
	"github.com/goliatone/go-orderform/internal/shell"
)

func serveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the landing page and the order form over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := a.server(ctx)
			if err != nil {
				return err
			}
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", srv.Addr, err)
			}
			return a.run(ctx, srv, ln)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default from server.addr)")
	cmd.Flags().String("endpoint", "", "order API base URL (default from order.endpoint)")
	cmd.Flags().Duration("timeout", 0, "order API timeout, 0 for none")
	cmd.Flags().String("theme", "", "theme name")
	cmd.Flags().String("variant", "", "theme variant")
	cmd.Flags().String("catalog", "", "catalog YAML replacing the built-in labels")
	return cmd
}

func (a *app) server(ctx context.Context) (*http.Server, error) {
	handler, err := a.handler(ctx)
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

func (a *app) handler(ctx context.Context) (http.Handler, error) {
	s, err := a.contract(ctx)
	if err != nil {
		return nil, err
	}
	catalog, err := a.catalog()
	if err != nil {
		return nil, err
	}
	themes, err := a.themes()
	if err != nil {
		return nil, err
	}

	return shell.New(
		shell.WithTitle(a.cfg.Landing.Title),
		shell.WithHeading(a.cfg.Landing.Heading),
		shell.WithIntro(a.cfg.Landing.Intro),
		shell.WithTheme(themes, a.cfg.Theme.Name, a.cfg.Theme.Variant),
		shell.WithLogger(a.log()),
		shell.WithOrderOptions(
			orderform.WithSchema(s),
			orderform.WithCatalog(catalog),
			orderform.WithSubmitter(a.submitter()),
			orderform.WithCookie(a.cfg.Session.Cookie, a.cfg.Session.Secure),
			orderform.WithSessionTTL(a.cfg.Session.TTL),
		),
	)
}

// run serves on ln until ctx is cancelled, then shuts down gracefully.
func (a *app) run(ctx context.Context, srv *http.Server, ln net.Listener) error {
	logger := a.log()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("order form listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownGrace)
		defer cancel()
		logger.Info("order form shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
