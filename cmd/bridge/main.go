package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	httpadapter "echonet-alexa-bridge/internal/adapters/input/http"
	"echonet-alexa-bridge/internal/adapters/input/lambda"
	"echonet-alexa-bridge/internal/domain/alexa"
	"echonet-alexa-bridge/internal/domain/model"
	"echonet-alexa-bridge/internal/domain/service"
	"echonet-alexa-bridge/internal/ports"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "bridge",
		Short: "Alexa Smart Home skill backend for ECHONET Lite air conditioners",
		Long: `bridge translates Alexa Smart Home directives into calls to an ECHONET Lite
web API. Without a subcommand it runs as an AWS Lambda handler.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLambda(configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file (environment variables override it)")

	root.AddCommand(
		&cobra.Command{
			Use:   "lambda",
			Short: "Serve directives as an AWS Lambda function",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runLambda(configPath)
			},
		},
		&cobra.Command{
			Use:   "serve",
			Short: "Serve directives over HTTP with health, metrics and name administration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe(cmd.Context(), configPath)
			},
		},
		&cobra.Command{
			Use:   "discover",
			Short: "Print the discovery response for the configured API",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runDiscover(cmd.Context(), configPath)
			},
		},
		&cobra.Command{
			Use:   "reload <deviceId> <property>...",
			Short: "Ask a device to re-read properties, e.g. roomTemperature",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runReload(cmd.Context(), configPath, args[0], args[1:])
			},
		},
	)
	return root
}

func runLambda(configPath string) error {
	a, err := newApp(configPath, buildOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	a.logger.Info("starting Lambda handler")
	lambda.NewHandler(a.dispatcher, a.logger.Named("lambda")).Start()
	return nil
}

func runServe(ctx context.Context, configPath string) error {
	a, err := newApp(configPath, buildOptions{withMetrics: true})
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := httpadapter.Deps{
		Directives: a.dispatcher,
		Metrics:    promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}),
		Logger:     a.logger.Named("http"),
	}
	if a.names != nil {
		deps.Names = service.NewNameService(a.names, a.client)
	}
	return httpadapter.NewServer(deps).ListenAndServe(ctx, a.cfg.HTTP.Addr)
}

func runDiscover(ctx context.Context, configPath string) error {
	a, err := newApp(configPath, buildOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	return printDirective(ctx, a.dispatcher, alexa.NamespaceDiscovery, alexa.NameDiscover)
}

func printDirective(ctx context.Context, directives ports.DirectivePort, namespace, name string) error {
	req := &alexa.Request{Directive: alexa.Directive{
		Header: alexa.Header{Namespace: namespace, Name: name, PayloadVersion: alexa.PayloadVersion},
	}}
	resp := directives.Dispatch(ctx, req)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return err
	}
	if resp.Event.Header.Name == "ErrorResponse" {
		return fmt.Errorf("%s.%s failed", namespace, name)
	}
	return nil
}

func runReload(ctx context.Context, configPath, id string, properties []string) error {
	a, err := newApp(configPath, buildOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	names := make([]model.PropertyName, 0, len(properties))
	for _, p := range properties {
		names = append(names, model.PropertyName(p))
	}
	return a.client.ReloadProperties(ctx, id, names...)
}
