package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pdfserver "github.com/Leastj/pdf-server"
	"github.com/Leastj/pdf-server/internal/server"
)

func defaultAddr() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	return net.JoinHostPort("", port)
}

func main() {
	var (
		addr     = flag.String("addr", defaultAddr(), "listen address (defaults to :$PORT or :3000)")
		logoPath = flag.String("logo", "", "cover logo (path, URL or data URL); built-in logo when empty")
		timeout  = flag.Duration("fetch-timeout", 15*time.Second, "timeout of each photo download")
		qrCode   = flag.Bool("qr", false, "print the installation reference as a QR code on the cover")
		debug    = flag.Bool("debug", false, "log layout and asset diagnostics")
	)
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)
	generator := pdfserver.New().WithOptions(
		pdfserver.WithLogoPath(*logoPath),
		pdfserver.WithFetchTimeout(*timeout),
		pdfserver.WithReferenceCode(*qrCode),
		pdfserver.WithDebug(*debug),
		pdfserver.WithLogOutput(logger.Writer()),
	)

	cfg := server.DefaultConfig()
	cfg.Logger = logger
	srv := &http.Server{
		Addr:              *addr,
		Handler:           server.New(generator, cfg).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Printf("shutdown: %v", err)
		}
	}()

	logger.Printf("listening on %s", *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v", err)
	}
}
