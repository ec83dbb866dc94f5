package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// fakeGenerator implements assistant.Generator with canned responses.
type fakeGenerator struct {
	chatReply  string
	genReply   string
	err        error
	lastSystem string
	lastPrompt string
}

func (f *fakeGenerator) Chat(ctx context.Context, system, ack, message string) (string, error) {
	f.lastSystem = system
	if f.err != nil {
		return "", f.err
	}
	return f.chatReply, nil
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.genReply, nil
}

func newEnv(gen *fakeGenerator) *gin.Engine {
	g := gin.New()
	NewHandler(gen, "Samuvel Johnson", `{"skills":["Go"]}`).Register(g)
	return g
}

func post(t *testing.T, g *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func TestChat_ReturnsReply(t *testing.T) {
	gen := &fakeGenerator{chatReply: "He has 3 years of Go experience."}
	g := newEnv(gen)

	w := post(t, g, "/api/chat", `{"message":"How much Go experience?"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "He has 3 years of Go experience.", body["reply"])
	require.Contains(t, gen.lastSystem, "RESUME")
}

func TestChat_ProjectContextReachesPrompt(t *testing.T) {
	gen := &fakeGenerator{chatReply: "ok"}
	g := newEnv(gen)

	w := post(t, g, "/api/chat", `{"message":"hi","projectContext":[{"name":"chat-app"}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, gen.lastSystem, "chat-app")
}

func TestChat_MissingMessage(t *testing.T) {
	g := newEnv(&fakeGenerator{})
	w := post(t, g, "/api/chat", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChat_UpstreamFailure(t *testing.T) {
	g := newEnv(&fakeGenerator{err: fmt.Errorf("quota exceeded")})
	w := post(t, g, "/api/chat", `{"message":"hi"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "Failed to process chat request")
	// upstream detail must not leak to the caller
	require.NotContains(t, w.Body.String(), "quota")
}

func TestAnalyzeProject_ParsesFencedJSON(t *testing.T) {
	gen := &fakeGenerator{genReply: "```json\n{\"complexityScore\":72,\"keySkills\":[\"Go\",\"Redis\",\"Docker\"],\"roleFit\":\"Backend Engineer\",\"analysis\":\"Solid systems project.\"}\n```"}
	g := newEnv(gen)

	w := post(t, g, "/api/analyze-project", `{"projectDescription":"a job queue","techStack":"Go, Redis"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var verdict ProjectVerdict
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verdict))
	require.Equal(t, 72, verdict.ComplexityScore)
	require.Len(t, verdict.KeySkills, 3)
	require.Equal(t, "Backend Engineer", verdict.RoleFit)
	require.Contains(t, gen.lastPrompt, "a job queue")
}

func TestAnalyzeProject_UnparsableOutput(t *testing.T) {
	gen := &fakeGenerator{genReply: "Sorry, I cannot help with that."}
	g := newEnv(gen)

	w := post(t, g, "/api/analyze-project", `{"projectDescription":"x","techStack":"y"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "Failed to analyze project")
}

func TestAnalyzeProject_MissingDescription(t *testing.T) {
	g := newEnv(&fakeGenerator{})
	w := post(t, g, "/api/analyze-project", `{"techStack":"Go"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
