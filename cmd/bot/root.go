package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/septivank/danube-levels-bot/internal/auth"
	"github.com/septivank/danube-levels-bot/internal/scheduler"
	"github.com/septivank/danube-levels-bot/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

const (
	startTimeout = 30 * time.Second
	stopTimeout  = 30 * time.Second
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "danube-levels-bot",
		Short:        "Posts the daily Danube water levels",
		SilenceUsage: true,
		RunE:         runCommand,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Post the levels every day at SCHEDULE_AT until interrupted",
			Args:  cobra.NoArgs,
			RunE:  runCommand,
		},
		&cobra.Command{
			Use:   "once",
			Short: "Post the current levels now and exit",
			Args:  cobra.NoArgs,
			RunE:  onceCommand,
		},
		&cobra.Command{
			Use:   "auth",
			Short: "Authorize the account, store the access token and exit",
			Args:  cobra.NoArgs,
			RunE:  authCommand,
		},
	)

	return root
}

func runCommand(cmd *cobra.Command, _ []string) error {
	app := fx.New(
		providers(),
		fx.Invoke(startScheduler),
	)
	if err := start(app); err != nil {
		return err
	}

	<-cmd.Context().Done()
	return stop(app)
}

func onceCommand(cmd *cobra.Command, _ []string) error {
	var pipeline *service.Pipeline
	app := fx.New(
		providers(),
		fx.Populate(&pipeline),
	)
	if err := start(app); err != nil {
		return err
	}

	runErr := pipeline.Run(cmd.Context())
	return errors.Join(runErr, stop(app))
}

func authCommand(cmd *cobra.Command, _ []string) error {
	app := fx.New(
		providers(),
		fx.Invoke(func(auth.Client) {}),
	)
	if err := start(app); err != nil {
		return err
	}
	return stop(app)
}

// start starts app. Constructors, including the interactive authorization,
// already ran in fx.New and are not bound by the start timeout.
func start(app *fx.App) error {
	if err := app.Err(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("application did not start within %s, check RABBITMQ_URL: %w", startTimeout, err)
		}
		return err
	}
	return nil
}

func stop(app *fx.App) error {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	return app.Stop(ctx)
}

// startScheduler runs the scheduler between app start and stop. Stop waits
// for an update in progress.
func startScheduler(lc fx.Lifecycle, s *scheduler.Scheduler) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				s.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
