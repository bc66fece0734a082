package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powderlabs/skitutor/api"
	"github.com/powderlabs/skitutor/chat"
	"github.com/powderlabs/skitutor/domain"
	"github.com/powderlabs/skitutor/llm"
	"github.com/powderlabs/skitutor/policy"
	"github.com/powderlabs/skitutor/prompt"
	"github.com/powderlabs/skitutor/store"
)

func newTestHandler(t *testing.T, gateway llm.Gateway) *api.Handler {
	t.Helper()
	engine, err := policy.NewEngine(context.Background(), policy.DefaultRules)
	require.NoError(t, err)
	svc := chat.New(store.NewMemoryStore(prompt.InitialMessages), gateway, engine)
	return api.NewHandler(svc)
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestChatMintsSessionID(t *testing.T) {
	e := echo.New()
	h := newTestHandler(t, llm.NewMockGateway("bend your knees"))

	c, rec := postJSON(e, "/chat", `{"message":"How do I stop on skis?"}`)
	require.NoError(t, h.Chat(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp domain.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "bend your knees", resp.Response)
	assert.NotEmpty(t, resp.SessionID)
}

func TestChatEchoesExistingSessionID(t *testing.T) {
	e := echo.New()
	h := newTestHandler(t, llm.NewMockGateway("keep practicing"))

	c, rec := postJSON(e, "/chat", `{"message":"How do I stop on skis?"}`)
	require.NoError(t, h.Chat(c))
	var first domain.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))

	c, rec = postJSON(e, "/chat", `{"message":"Tell me more","session_id":"`+first.SessionID+`"}`)
	require.NoError(t, h.Chat(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var second domain.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.Equal(t, first.SessionID, second.SessionID)
}

func TestChatEmptyMessageRejected(t *testing.T) {
	e := echo.New()
	h := newTestHandler(t, llm.NewMockGateway("unused"))

	c, rec := postJSON(e, "/chat", `{"message":"   "}`)
	require.NoError(t, h.Chat(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatGenerationFailureStillResponds(t *testing.T) {
	e := echo.New()
	h := newTestHandler(t, &llm.MockGateway{Err: assert.AnError})

	c, rec := postJSON(e, "/chat", `{"message":"How do I stop on skis?"}`)
	require.NoError(t, h.Chat(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp domain.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Response, prompt.GenerationErrorPrefix)
	assert.NotEmpty(t, resp.SessionID)
}

func TestClearUnknownSessionAcknowledges(t *testing.T) {
	e := echo.New()
	h := newTestHandler(t, llm.NewMockGateway("unused"))

	c, rec := postJSON(e, "/clear", `{"session_id":"never-seen"}`)
	require.NoError(t, h.Clear(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestClearWithoutSessionIDAcknowledges(t *testing.T) {
	e := echo.New()
	h := newTestHandler(t, llm.NewMockGateway("unused"))

	c, rec := postJSON(e, "/clear", `{}`)
	require.NoError(t, h.Clear(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealth(t *testing.T) {
	e := echo.New()
	h := newTestHandler(t, llm.NewMockGateway("unused"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
