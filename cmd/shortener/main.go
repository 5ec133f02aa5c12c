package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/shorturlproject/shorturl/internal/app/server"
	grpcapi "github.com/shorturlproject/shorturl/internal/app/server/grpc"
	"github.com/shorturlproject/shorturl/internal/app/service"
	"github.com/shorturlproject/shorturl/internal/clock"
	"github.com/shorturlproject/shorturl/internal/config"
	"github.com/shorturlproject/shorturl/internal/geo"
	"github.com/shorturlproject/shorturl/internal/logger"
	"github.com/shorturlproject/shorturl/internal/repository"

	_ "net/http/pprof"
)

var buildVersion string
var buildDate string
var buildCommit string

const shutdownTimeout = 10 * time.Second

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func main() {
	fmt.Printf("Build version: %s\n", orNA(buildVersion))
	fmt.Printf("Build date: %s\n", orNA(buildDate))
	fmt.Printf("Build commit: %s\n", orNA(buildCommit))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string) error {
	options, err := config.Parse(args)
	if err != nil {
		return err
	}

	l := logger.New()
	if err := l.Init(options.LogLevel); err != nil {
		return err
	}
	defer l.Sync()
	zapLogger := l.Log

	kv, err := openStore(ctx, options, zapLogger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer kv.Close()

	clk := clock.Real{}

	var locator geo.Locator = geo.Nop{}
	if options.GeoEndpoint != "" {
		locator = geo.NewHTTPLocator(options.GeoEndpoint, time.Duration(options.GeoTimeout))
	}

	links := service.NewLinkService(
		repository.NewLinks(kv, clk, zapLogger),
		service.NewRandomCodes(service.CodeLength),
		locator,
		clk,
		zapLogger,
	)
	auth := service.NewAuth(repository.NewUsers(kv), options.JWTSecret, options.AdminUsers, clk)

	subnet, err := options.Subnet()
	if err != nil {
		return err
	}

	r := server.Init(links, auth, server.Options{
		TrustedSubnet: subnet,
		CORSOrigins:   options.CORSOrigins,
	}, zapLogger)

	if options.EnablePprof {
		go func() {
			zapLogger.Info("Starting pprof server", zap.String("addr", "localhost:6060"))
			if err := http.ListenAndServe("localhost:6060", nil); err != nil {
				zapLogger.Error("pprof server error", zap.Error(err))
			}
		}()
	}

	var grpcServer *grpcapi.Server
	if options.GRPCPort > 0 {
		grpcServer = grpcapi.New(links, auth, subnet, zapLogger, options.GRPCPort)
		go func() {
			if err := grpcServer.Start(); err != nil {
				zapLogger.Error("gRPC server stopped", zap.Error(err))
			}
		}()
	}

	srv := &http.Server{
		Addr:              options.Address,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if options.EnableHTTPS {
			manager := &autocert.Manager{
				Cache:      autocert.DirCache(options.CertCache),
				Prompt:     autocert.AcceptTOS,
				HostPolicy: autocert.HostWhitelist(options.TLSHosts...),
			}
			srv.Addr = ":443"
			srv.TLSConfig = manager.TLSConfig()
			zapLogger.Info("Server is running with TLS", zap.Strings("hosts", options.TLSHosts))
			serveErr <- srv.ListenAndServeTLS("", "")
			return
		}

		zapLogger.Info("Server is running", zap.String("address", options.Address))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		zapLogger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("HTTP shutdown failed", zap.Error(err))
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}

	zapLogger.Info("server stopped")
	return nil
}
