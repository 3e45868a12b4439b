package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/kitodo/dlfcheck/internal/config"
	"github.com/kitodo/dlfcheck/internal/identifier"
	"github.com/kitodo/dlfcheck/internal/logger"
	"github.com/kitodo/dlfcheck/internal/model"
	"github.com/kitodo/dlfcheck/internal/repository"
	"github.com/kitodo/dlfcheck/internal/service/checker"
)

// Checker is the subset of the checker service used by the Lambda handler
type Checker interface {
	CheckIdentifier(ctx context.Context, id, typeName string) (*model.CheckRecord, error)
	URN(ctx context.Context, base, id string) (*model.CheckRecord, error)
	VerifyURN(ctx context.Context, urn string) (*model.CheckRecord, error)
}

// Handler holds the dependencies for the httpapi Lambda handler
type Handler struct {
	checker Checker
	log     *slog.Logger
}

// CheckRequest represents the expected JSON payload for identifier checks
type CheckRequest struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// URNRequest represents the expected JSON payload for URN computation
type URNRequest struct {
	Base string `json:"base"`
	ID   string `json:"id"`
}

// CheckResponse represents the JSON response for both endpoints
type CheckResponse struct {
	IsValid      bool   `json:"isValid"`
	Kind         string `json:"kind"`
	Input        string `json:"input"`
	URN          string `json:"urn,omitempty"`
	RecordID     string `json:"recordId"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// NewHandler creates a new httpapi handler configured from the environment
func NewHandler() (*Handler, error) {
	log := logger.NewDefaultLogger()
	log = logger.WithExecutable(log, "httpapi")
	logger.SetDefault(log)

	cfg, err := config.Load(os.Getenv("DLFCHECK_CONFIG"))
	if err != nil {
		return nil, err
	}

	if cfg.Storage.DynamoTable == "" {
		return nil, fmt.Errorf("DYNAMODB_TABLE environment variable is required")
	}
	if cfg.Storage.DynamoEndpoint == "" && os.Getenv("AWS_REGION") == "" {
		return nil, fmt.Errorf("AWS_REGION environment variable is required when DYNAMODB_ENDPOINT is not set")
	}

	ctx := context.Background()
	repo, err := repository.NewRepository(ctx, repository.RepositoryConfig{
		DynamoTable:    cfg.Storage.DynamoTable,
		DynamoEndpoint: cfg.Storage.DynamoEndpoint,
	})
	if err != nil {
		log.Error("Failed to initialize repository", slog.String("error", err.Error()))
		return nil, err
	}

	svc := checker.NewService(repo, checker.Options{
		CacheTTL:     cfg.Cache.TTL.Duration,
		CacheCleanup: cfg.Cache.Cleanup.Duration,
		Namespace:    cfg.URN.Namespace,
		Logger:       log,
	})
	log.Info("Checker service initialized", slog.String("table", cfg.Storage.DynamoTable))

	return NewHandlerWithChecker(svc, log), nil
}

// NewHandlerWithChecker creates a handler around an existing checker
func NewHandlerWithChecker(c Checker, log *slog.Logger) *Handler {
	return &Handler{checker: c, log: log}
}

// Handle processes API Gateway HTTP requests
func (h *Handler) Handle(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	requestLogger := logger.WithLambda(h.log,
		os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		os.Getenv("AWS_LAMBDA_FUNCTION_VERSION"),
		request.RequestContext.RequestID)

	path := request.RequestContext.HTTP.Path
	if path == "" {
		path = request.RawPath
	}
	path = strings.TrimPrefix(path, "/api")
	method := request.RequestContext.HTTP.Method

	requestLogger.Info("Incoming request",
		slog.String("method", method),
		slog.String("path", path))

	switch path {
	case "/v1/check":
		if method != "POST" {
			return errorResponseV2(405, fmt.Sprintf("Method not allowed. Only POST is supported for this endpoint (received: %s)", method))
		}
		return h.handleCheck(ctx, requestLogger, request)
	case "/v1/urn":
		if method != "POST" {
			return errorResponseV2(405, fmt.Sprintf("Method not allowed. Only POST is supported for this endpoint (received: %s)", method))
		}
		return h.handleURN(ctx, requestLogger, request)
	case "/v1/urn/verify":
		if method != "GET" {
			return errorResponseV2(405, fmt.Sprintf("Method not allowed. Only GET is supported for this endpoint (received: %s)", method))
		}
		return h.handleVerifyURN(ctx, requestLogger, request)
	default:
		requestLogger.Warn("Path not matched", slog.String("path", path))
		return errorResponseV2(404, fmt.Sprintf("Unknown endpoint: %s", path))
	}
}

func (h *Handler) handleCheck(ctx context.Context, log *slog.Logger, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	var req CheckRequest
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
		return errorResponseV2(400, fmt.Sprintf("Invalid request body: %v", err))
	}
	if req.ID == "" {
		return errorResponseV2(400, "id field is required")
	}
	if req.Type == "" {
		return errorResponseV2(400, "type field is required")
	}

	record, err := h.checker.CheckIdentifier(ctx, req.ID, req.Type)
	if errors.Is(err, identifier.ErrUnknownType) {
		return errorResponseV2(400, "invalid identifier type. "+identifier.ValidTypesText())
	}
	if err != nil {
		log.Error("Identifier check failed", slog.String("error", err.Error()))
		return errorResponseV2(500, fmt.Sprintf("identifier check failed: %v", err))
	}

	return recordResponseV2(log, record)
}

func (h *Handler) handleURN(ctx context.Context, log *slog.Logger, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	var req URNRequest
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
		return errorResponseV2(400, fmt.Sprintf("Invalid request body: %v", err))
	}
	if req.Base == "" && req.ID == "" {
		return errorResponseV2(400, "base or id field is required")
	}

	record, err := h.checker.URN(ctx, req.Base, req.ID)
	if err != nil {
		log.Error("URN computation failed", slog.String("error", err.Error()))
		return errorResponseV2(500, fmt.Sprintf("urn computation failed: %v", err))
	}

	return recordResponseV2(log, record)
}

func (h *Handler) handleVerifyURN(ctx context.Context, log *slog.Logger, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	full := request.QueryStringParameters["urn"]
	if full == "" {
		return errorResponseV2(400, "urn query parameter is required")
	}

	record, err := h.checker.VerifyURN(ctx, full)
	if err != nil {
		log.Error("URN verification failed", slog.String("error", err.Error()))
		return errorResponseV2(500, fmt.Sprintf("urn verification failed: %v", err))
	}

	return recordResponseV2(log, record)
}

func recordResponseV2(log *slog.Logger, record *model.CheckRecord) (events.APIGatewayV2HTTPResponse, error) {
	response := CheckResponse{
		IsValid:      record.Valid,
		Kind:         record.Kind,
		Input:        record.Input,
		URN:          record.Output,
		RecordID:     record.ID,
		ErrorMessage: record.Reason,
	}

	body, err := json.Marshal(response)
	if err != nil {
		log.Error("Failed to marshal response", slog.String("error", err.Error()))
		return errorResponseV2(500, "failed to generate response")
	}

	return events.APIGatewayV2HTTPResponse{
		StatusCode: 200,
		Body:       string(body),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

// errorResponseV2 creates a standardized error response for API Gateway v2
func errorResponseV2(statusCode int, message string) (events.APIGatewayV2HTTPResponse, error) {
	body, _ := json.Marshal(map[string]string{
		"error": message,
	})

	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Body:       string(body),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}
