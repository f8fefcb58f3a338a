package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nstehr/vimy/vimy-rat/agent"
	"github.com/nstehr/vimy/vimy-rat/catalog"
	"github.com/nstehr/vimy/vimy-rat/ipc"
	"github.com/nstehr/vimy/vimy-rat/rat"
	"github.com/nstehr/vimy/vimy-rat/rules"
)

const banner = `
██╗   ██╗██╗███╗   ███╗██╗   ██╗      ██████╗  █████╗ ████████╗
██║   ██║██║████╗ ████║╚██╗ ██╔╝      ██╔══██╗██╔══██╗╚══██╔══╝
██║   ██║██║██╔████╔██║ ╚████╔╝ █████╗██████╔╝███████║   ██║
╚██╗ ██╔╝██║██║╚██╔╝██║  ╚██╔╝  ╚════╝██╔══██╗██╔══██║   ██║
 ╚████╔╝ ██║██║ ╚═╝ ██║   ██║         ██║  ██║██║  ██║   ██║
  ╚═══╝  ╚═╝╚═╝     ╚═╝   ╚═╝         ╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝

Random Assignment Tables`

func main() {
	f := newFlags()
	if err := f.parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	cfg, err := LoadConfig(f.config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	f.apply(&cfg)

	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	slog.Info("starting vimy-rat", "catalog", cfg.Catalog, "socket", cfg.Socket, "websocket", cfg.WebSocket)

	cat, err := catalog.Open(cfg.Catalog)
	if err != nil {
		slog.Error("failed to load catalog", "path", cfg.Catalog, "error", err)
		os.Exit(1)
	}
	filters, err := rules.NewRegistry(rules.MergeFilters(rules.DefaultFilters(), cfg.Filters))
	if err != nil {
		slog.Error("failed to compile filters", "error", err)
		os.Exit(1)
	}
	rng := rat.CryptoRandom()
	if cfg.Seed != 0 {
		rng = rat.NewSeeded(cfg.Seed)
		slog.Info("using seeded random source", "seed", cfg.Seed)
	}
	agentCfg := agent.Config{
		Catalog:        cat,
		Filters:        filters,
		Random:         rng,
		RoleStrictness: cfg.RoleStrictness,
	}
	onConnect := func(c *ipc.Connection) {
		agent.New(c, agentCfg).Register()
	}

	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(cfg.Socket); err != nil {
		slog.Error("failed to clean up socket", "path", cfg.Socket, "error", err)
		os.Exit(1)
	}

	listener, err := net.Listen("unix", cfg.Socket)
	if err != nil {
		slog.Error("failed to listen on socket", "path", cfg.Socket, "error", err)
		os.Exit(1)
	}
	defer listener.Close()
	defer os.Remove(cfg.Socket)

	slog.Info("listening on domain socket", "path", cfg.Socket)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return
				default:
					slog.Error("failed to accept connection", "error", err)
					continue
				}
			}
			slog.Info("new connection accepted")
			go handleConn(conn, onConnect)
		}
	}()

	var srv *http.Server
	if cfg.WebSocket != "" {
		mux := http.NewServeMux()
		mux.Handle("/ws", ipc.NewWebSocketServer(onConnect).Handler())
		srv = &http.Server{Addr: cfg.WebSocket, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
		go func() {
			slog.Info("listening for websockets", "addr", cfg.WebSocket)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("websocket server failed", "error", err)
				stop()
			}
		}()
	}

	<-ctx.Done()
	slog.Info("shutting down")

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("websocket server shutdown", "error", err)
		}
	}
}

func handleConn(conn net.Conn, onConnect func(*ipc.Connection)) {
	c := ipc.NewConnection(ipc.NewStreamTransport(conn), nil)
	onConnect(c)
	c.ReadLoop()
}
