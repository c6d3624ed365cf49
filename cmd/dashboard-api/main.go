package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"mood-journal/internal/app"
	delivery "mood-journal/internal/dashboard/delivery/http"
	"mood-journal/pkg/common"
	"mood-journal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the read-only dashboard API",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(configPath)
	if err != nil {
		log.Fatalf("Failed to start dashboard API: %v", err)
	}
	defer a.Close()

	a.Logger.Info("Starting Dashboard API", logger.StringField("name", a.Config.App.Name))

	// The store is opened before serving so that requests never race on
	// first-use initialization.
	if _, err := a.DB.Get(ctx); err != nil {
		a.Logger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}

	e := echo.New()
	e.HideBanner = true

	apiV1 := e.Group("/api/v1")
	delivery.NewDashboardHandler(a.Dashboard, a.Logger).RegisterRoutes(apiV1)
	delivery.NewRunHandler(a.Ingestion, a.Logger).RegisterRoutes(apiV1.Group("/runs"))

	go func() {
		addr := net.JoinHostPort(a.Config.API.Host, strconv.Itoa(a.Config.API.Port))
		a.Logger.Info("HTTP server starting", logger.StringField("address", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	<-ctx.Done()

	a.Logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error("Server forced to shutdown", logger.ErrorField(err))
	}

	a.Logger.Info("Server exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "dashboard-api"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", common.DefaultConfigPath, "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing dashboard-api CLI: %s\n", err)
		os.Exit(1)
	}
}
