package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/carta/internal/httpapi"
)

func (a *app) newServeCmd() *cobra.Command {
	var address string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog over HTTP",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			sess, err := a.open(defaultServeLogMode)
			if err != nil {
				return err
			}
			defer sess.close(&err)

			if address == "" {
				address = sess.settings.ServerAddress
			}
			gin.SetMode(sess.settings.ServerMode)

			srv := httpapi.NewServer(httpapi.RouterConfig{
				Log:            sess.log,
				AllowedOrigins: sess.settings.AllowedOrigins,
				Handler:        httpapi.NewHandler(sess.log, sess.catalog),
				HealthHandler:  httpapi.NewHealthHandler(),
			})

			ctx, stop := signal.NotifyContext(contextOf(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			sess.log.Info("HTTP server listening", "address", address, "backend", sess.settings.Store.Backend)
			if err := srv.Run(ctx, address); err != nil {
				return systemError{fmt.Errorf("serve: %w", err)}
			}
			sess.log.Info("HTTP server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "listen address (default: server.address from config, :8080)")
	return cmd
}

// contextOf returns the command context, or Background when none was set.
func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
