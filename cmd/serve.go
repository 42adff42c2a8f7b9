package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	httpapi "todo-folders.com/todo-folders/internal/http"
	"todo-folders.com/todo-folders/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the todo HTTP API and the reminder dispatcher",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		defer a.close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		dispatcher := services.NewReminderDispatcher(
			a.table,
			services.LogNotifier{},
			a.cfg.ReminderWorkers,
			a.cfg.ReminderQueueSize,
			time.Duration(a.cfg.ReminderPollIntervalSeconds)*time.Second,
			a.cfg.ReminderPollBatchSize,
		)

		e := echo.New()
		e.HideBanner = true

		handler := httpapi.NewHandler(a.todos, a.folders)
		httpapi.Register(e, handler, a.users, a.cfg.RateLimit)

		go func() {
			log.Printf("HTTP server listening on %s", a.cfg.AppURL)
			if err := e.Start(a.cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("server stopped: %v", err)
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(a.cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		_ = e.Shutdown(shutdownCtx)
		dispatcher.Shutdown(shutdownCtx)

		log.Println("HTTP server and reminder dispatcher shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
