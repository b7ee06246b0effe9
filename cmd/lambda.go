package cmd

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/isometry/token-monitor/internal/config"
	"github.com/isometry/token-monitor/internal/runtime"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func cmdLambda() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lambda",
		Short: "Take and archive a dashboard snapshot on every scheduled event",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rt, err := setupLambda(ctx)
			if err != nil {
				return errors.Wrap(err, "failed to setup lambda")
			}

			logger = logger.With("mode", config.ModeLambda)
			logger.Info("lambda starting...")
			lambda.StartWithOptions(rt.HandleEvent,
				lambda.WithContext(ctx))
			return nil
		},
	}
	return cmd
}

func setupLambda(ctx context.Context) (*runtime.Runtime, error) {
	a, err := newApp(ctx)
	if err != nil {
		return nil, err
	}
	opts := []runtime.Option{
		runtime.WithLogger(logger.With("component", "runtime")),
		runtime.WithFilters(dashboardFilters),
	}
	archiver, err := a.archiver()
	if err != nil {
		return nil, err
	}
	if archiver != nil {
		opts = append(opts, runtime.WithArchiver(archiver))
	}
	logger.Debug("creating runtime...")
	return runtime.NewRuntime(a.loader(), opts...), nil
}
