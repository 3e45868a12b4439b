package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/kitodo/dlfcheck/internal/lambdahandlers/exportbatch"
	"github.com/kitodo/dlfcheck/internal/lambdahandlers/httpapi"
	"github.com/kitodo/dlfcheck/internal/lambdahandlers/streamer"
	"github.com/kitodo/dlfcheck/internal/logger"
)

func main() {
	log := logger.NewDefaultLogger()
	log = logger.WithExecutable(log, "lambda")
	logger.SetDefault(log)

	handlerType := os.Getenv("LAMBDA_HANDLER")
	if handlerType == "" {
		log.Error("LAMBDA_HANDLER environment variable is required")
		fmt.Fprintln(os.Stderr, "Error: LAMBDA_HANDLER environment variable is required")
		fmt.Fprintln(os.Stderr, "Valid values: httpapi, exportbatch, streamer")
		os.Exit(1)
	}

	log.Info("Starting Lambda handler", slog.String("handler", handlerType))

	switch handlerType {
	case "httpapi":
		handler, err := httpapi.NewHandler()
		if err != nil {
			log.Error("Failed to initialize httpapi handler", slog.String("error", err.Error()))
			os.Exit(1)
		}
		lambda.Start(handler.Handle)

	case "exportbatch":
		handler, err := exportbatch.NewHandler(context.Background())
		if err != nil {
			log.Error("Failed to initialize exportbatch handler", slog.String("error", err.Error()))
			os.Exit(1)
		}
		lambda.Start(handler.Handle)

	case "streamer":
		handler, err := streamer.NewHandler(context.Background())
		if err != nil {
			log.Error("Failed to initialize streamer handler", slog.String("error", err.Error()))
			os.Exit(1)
		}
		lambda.Start(handler.Handle)

	default:
		log.Error("Invalid LAMBDA_HANDLER value", slog.String("handler", handlerType))
		fmt.Fprintf(os.Stderr, "Error: Invalid LAMBDA_HANDLER value: %s\n", handlerType)
		fmt.Fprintln(os.Stderr, "Valid values: httpapi, exportbatch, streamer")
		os.Exit(1)
	}
}
