package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/vsariola/strum/cmd"
	"github.com/vsariola/strum/library"
	"github.com/vsariola/strum/version"
	"go.uber.org/zap"
)

var (
	dir         = flag.String("dir", ".", "directory with one subdirectory of samples per source")
	addr        = flag.String("addr", "localhost:8080", "address to listen on")
	debug       = flag.Bool("debug", false, "enable debug logging")
	versionFlag = flag.Bool("v", false, "print version and exit")
)

func main() {
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	logger, err := cmd.NewLogger(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	if info, err := os.Stat(*dir); err != nil || !info.IsDir() {
		logger.Fatal("sample directory is not accessible", zap.String("dir", *dir), zap.Error(err))
	}
	srv := &http.Server{
		Addr:              *addr,
		Handler:           library.NewHandler(os.DirFS(*dir), logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
	logger.Info("serving samples", zap.String("dir", *dir), zap.String("addr", *addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server failed", zap.Error(err))
	}
}
