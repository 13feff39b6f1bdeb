/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eslsoft/jyutcollab/internal/adapter/ai"
	"github.com/eslsoft/jyutcollab/internal/adapter/httpapi"
	adapterrepo "github.com/eslsoft/jyutcollab/internal/adapter/repository"
	"github.com/eslsoft/jyutcollab/internal/infrastructure/config"
	infraDB "github.com/eslsoft/jyutcollab/internal/infrastructure/database"
	"github.com/eslsoft/jyutcollab/internal/infrastructure/server"
	"github.com/eslsoft/jyutcollab/internal/taxonomy"
	"github.com/eslsoft/jyutcollab/internal/usecase"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP API 服务",
	RunE: func(cmd *cobra.Command, args []string) error {
		migrate, _ := cmd.Flags().GetBool("migrate")

		// Load config
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		// Logger
		logger, err := server.NewLogger(cfg)
		if err != nil {
			return fmt.Errorf("setup logger: %w", err)
		}

		// DB connection
		db, cleanup, err := infraDB.Connect(cfg)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer cleanup()

		if migrate {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			err := infraDB.InitSchema(ctx, db)
			cancel()
			if err != nil {
				return fmt.Errorf("init schema: %w", err)
			}
			logger.Info("database schema ready")
		}

		// Repositories
		entries := adapterrepo.NewEntryRepository(db)
		users := adapterrepo.NewUserRepository(db)
		histories := adapterrepo.NewHistoryRepository(db)

		// Usecases
		entryUC := usecase.NewEntryUsecase(entries, histories, usecase.PassthroughConverter{}, logger)
		reviewUC := usecase.NewReviewUsecase(entries, histories, logger)
		historyUC := usecase.NewHistoryUsecase(histories, entries, logger)
		authUC := usecase.NewAuthUsecase(users, cfg.Auth.Secret, cfg.Auth.TokenTTL)

		// AI suggestions
		tax := taxonomy.New()
		aiClient := ai.NewClient(cfg, tax, logger)

		// Build server
		router := httpapi.NewRouter(cfg, authUC, entryUC, reviewUC, historyUC, aiClient)
		srv := server.NewServer(cfg, logger, router)

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		// Graceful shutdown
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigCh:
			logger.Infof("received signal: %s, shutting down", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
			return nil
		case err := <-errCh:
			if err != nil {
				return err
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Bool("migrate", false, "启动前执行数据库迁移")

	// Here you will define your flags and configuration settings.

	// Cobra supports Persistent Flags which will work for this command
	// and all subcommands, e.g.:
	// serveCmd.PersistentFlags().String("foo", "", "A help for foo")

	// Cobra supports local flags which will only run when this command
	// is called directly, e.g.:
	// serveCmd.Flags().BoolP("toggle", "t", false, "Help message for toggle")
}
