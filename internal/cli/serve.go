package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gzhole/gravilog/internal/config"
	"github.com/gzhole/gravilog/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the assessment engine over HTTP",
	Long: `Start an HTTP server exposing the assessment engine.

Endpoints:
  GET  /health     liveness probe
  POST /assess     {"symptoms": [...], "gestationalWeek": 32, "previousComplications": false}
  GET  /symptoms   symptom intake catalog

  gravilog serve --addr :8000`,
	RunE: serveCommand,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default: :8000)")
	_ = v.BindPFlag(config.KeyServerAddr, serveCmd.Flags().Lookup("addr"))
	rootCmd.AddCommand(serveCmd)
}

func serveCommand(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(server.Config{
		ListenAddr: rt.cfg.Server.Addr,
		Logger:     rt.log,
	}, rt.engine)

	cmd.Printf("GraviLog listening on %s (knowledge: %s)\n", rt.cfg.Server.Addr, rt.kb.Source)
	return srv.Run(ctx)
}
