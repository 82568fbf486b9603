package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/nexus/workspace/internal/api"
	"github.com/nexus/workspace/internal/config"
	"github.com/nexus/workspace/internal/logging"
	"github.com/nexus/workspace/internal/repository"
	"github.com/nexus/workspace/internal/seed"
	"github.com/nexus/workspace/internal/stats"
)

// NewRootCommand creates the nexus command tree.
func NewRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "nexus",
		Short:         "Nexus workspace server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before the environment")

	root.AddCommand(
		NewServeCommand(&envFile),
		NewLeaderboardCommand(),
	)
	return root
}

// NewServeCommand creates the serve command.
func NewServeCommand(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API with the demo workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*envFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logging.Init(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logging.Component("server")

	db, err := repository.InitDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()
	log.WithField("path", cfg.DBPath).Info("database initialised")

	if cfg.AI.APIKey == "" {
		log.Warn("API_KEY not set, assistant replies are disabled")
	}

	workspaceService := api.NewWorkspaceService(db, cfg)
	go workspaceService.RunReminders(ctx, cfg.ReminderInterval)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           api.LogRequests(api.SetupRouter(workspaceService)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on http://localhost:%d", cfg.Port)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http: %w", err)
	}
	return nil
}

// NewLeaderboardCommand prints the ranking of the demo workspace.
func NewLeaderboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the leaderboard of the demo workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := seed.State(time.Now())
			return printLeaderboard(cmd.OutOrStdout(), stats.Leaderboard(st.Tasks, st.Users))
		},
	}
}

func printLeaderboard(out io.Writer, rows []stats.Performance) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tNAME\tDONE\tTOTAL\tRATE\tSCORE\tBADGE")
	for i, p := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d%%\t%.1f\t%s\n", i+1, p.User.Name, p.Completed, p.Total, p.Rate, p.Score, p.Badge)
	}
	return tw.Flush()
}
