package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nstehr/quartermaster/agent"
	"github.com/nstehr/quartermaster/ipc"
)

const banner = `
 ___                _                              _
/ _ \ _   _  __ _ _| |_ ___ _ __ _ __ ___   __ _ __| |_ ___ _ __
| | | | | | |/ _' |  __/ _ \ '__| '_ ' _ \ / _' / __| __/ _ \ '__|
| |_| | |_| | (_| | | ||  __/ |  | | | | | | (_| \__ \ ||  __/ |
 \__\_\\__,_|\__,_|_|\__\___|_|  |_| |_| |_|\__,_|___/\__\___|_|

Munition Loadouts for the Battle Ahead`

func newServeCommand(s *settings) *cobra.Command {
	var socketPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve reconfiguration requests over a unix socket",
		Long: `Serve listens on a unix domain socket for host games. Each connection
says hello, then sends reconfigure requests carrying a scenario document;
every request is answered with a loadout or an error message.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := s.load()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), banner)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return rt.serve(ctx, socketPath)
		},
	}
	cmd.Flags().StringVar(&socketPath, "socket", "/tmp/quartermaster.sock", "Unix socket path")
	return cmd
}

func (rt *service) serve(ctx context.Context, socketPath string) error {
	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(socketPath); err != nil {
		return fmt.Errorf("cleaning up socket %s: %w", socketPath, err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", socketPath, err)
	}
	defer os.Remove(socketPath)

	slog.Info("listening on domain socket", "path", socketPath)

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				slog.Info("shutting down")
				return nil
			default:
				slog.Error("failed to accept connection", "error", err)
				continue
			}
		}
		slog.Info("new connection accepted")
		go rt.handleConn(ctx, conn)
	}
}

func (rt *service) handleConn(ctx context.Context, conn net.Conn) {
	c := ipc.NewConnection(conn, nil)
	a := agent.New(c, rt.engine, rt.catalog)
	a.Presets = rt.presets
	a.Tuning = rt.tuning
	a.Register()
	c.ReadLoop(ctx)
}
