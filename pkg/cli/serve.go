package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/kizmotek/linearflow/pkg/cli/config"
	discordctrl "github.com/kizmotek/linearflow/pkg/controller/discord"
	controller "github.com/kizmotek/linearflow/pkg/controller/http"
	"github.com/kizmotek/linearflow/pkg/infra/discord"
	"github.com/kizmotek/linearflow/pkg/infra/linear"
	"github.com/kizmotek/linearflow/pkg/usecase"
)

func cmdServe() *cli.Command {
	var (
		serverCfg  config.Server
		discordCfg config.Discord
		linearCfg  config.Linear
	)

	flags := append(serverCfg.Flags(), discordCfg.Flags()...)
	flags = append(flags, linearCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Run the Discord bot and webhook server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting linearflow",
				slog.String("addr", serverCfg.Addr),
				slog.Any("discord", discordCfg),
				slog.Any("linear", linearCfg),
			)

			// Clients
			tracker := linear.New(linearCfg.APIKey)
			chat, err := discord.New(discordCfg.Token)
			if err != nil {
				return goerr.Wrap(err, "failed to create discord client")
			}

			// Use cases
			reportUC := usecase.NewReport(tracker, linearCfg.GatewayTeamID)
			webhookUC := usecase.NewWebhook(chat, linearCfg.GatewayTeamID, discordCfg.IssuesChannelID)

			// Discord gateway
			router := discordctrl.NewRouter(reportUC)
			chat.Session().AddHandler(router.HandleInteraction(ctx))

			if err := chat.Open(); err != nil {
				return err
			}
			defer func() {
				if err := chat.Close(); err != nil {
					logger.Warn("Failed to close discord session", slog.Any("error", err))
				}
			}()

			if err := router.Register(chat.Session()); err != nil {
				return err
			}

			logger.Info("Discord session ready",
				slog.String("user", chat.Session().State.User.String()),
				slog.Int("commands", router.Commands()),
			)

			// Webhook server
			server, err := controller.NewServer(
				ctx,
				webhookUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithWebhookSecret(linearCfg.WebhookSecret),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("Webhook server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
