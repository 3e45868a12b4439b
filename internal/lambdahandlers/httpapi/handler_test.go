package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitodo/dlfcheck/internal/repository/memrepo"
	"github.com/kitodo/dlfcheck/internal/service/checker"
)

func newTestHandler() *Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := checker.NewService(memrepo.NewMemoryRepository(), checker.Options{
		Logger:    log,
		Namespace: "urn:nbn:de:gbv:089-",
	})
	return NewHandlerWithChecker(svc, log)
}

func request(method, path, body string) events.APIGatewayV2HTTPRequest {
	req := events.APIGatewayV2HTTPRequest{Body: body}
	req.RequestContext.HTTP.Method = method
	req.RequestContext.HTTP.Path = path
	req.RequestContext.RequestID = "req-1"
	return req
}

func decode(t *testing.T, resp events.APIGatewayV2HTTPResponse) CheckResponse {
	t.Helper()
	var out CheckResponse
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &out))
	return out
}

func TestHandle_Check(t *testing.T) {
	h := newTestHandler()

	resp, err := h.Handle(context.Background(), request("POST", "/api/v1/check", `{"type":"ppn","id":"048772607"}`))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	out := decode(t, resp)
	assert.True(t, out.IsValid)
	assert.Equal(t, "PPN", out.Kind)
	assert.NotEmpty(t, out.RecordID)

	resp, err = h.Handle(context.Background(), request("POST", "/v1/check", `{"type":"GKD","id":"04877260-7"}`))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	out = decode(t, resp)
	assert.False(t, out.IsValid)
	assert.NotEmpty(t, out.ErrorMessage)
}

func TestHandle_URN(t *testing.T) {
	h := newTestHandler()

	resp, err := h.Handle(context.Background(), request("POST", "/v1/urn", `{"id":"332175294"}`))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "urn:nbn:de:gbv:089-3321752945", decode(t, resp).URN)
}

func TestHandle_VerifyURN(t *testing.T) {
	h := newTestHandler()

	req := request("GET", "/v1/urn/verify", "")
	req.QueryStringParameters = map[string]string{"urn": "urn:nbn:de:gbv:089-3321752945"}
	resp, err := h.Handle(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	assert.True(t, decode(t, resp).IsValid)
}

func TestHandle_Errors(t *testing.T) {
	h := newTestHandler()

	tests := []struct {
		name       string
		req        events.APIGatewayV2HTTPRequest
		wantStatus int
	}{
		{"unknown path", request("GET", "/v1/nothing", ""), 404},
		{"wrong method", request("GET", "/v1/check", ""), 405},
		{"wrong method urn", request("PUT", "/v1/urn", ""), 405},
		{"wrong method verify", request("POST", "/v1/urn/verify", ""), 405},
		{"invalid body", request("POST", "/v1/check", "{"), 400},
		{"missing id", request("POST", "/v1/check", `{"type":"PPN"}`), 400},
		{"missing type", request("POST", "/v1/check", `{"id":"048772607"}`), 400},
		{"unknown type", request("POST", "/v1/check", `{"type":"ISSN","id":"048772607"}`), 400},
		{"empty urn request", request("POST", "/v1/urn", `{}`), 400},
		{"missing urn parameter", request("GET", "/v1/urn/verify", ""), 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := h.Handle(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Contains(t, resp.Body, `"error"`)
		})
	}
}
