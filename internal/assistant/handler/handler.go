package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/samuveljohnson/portfolio/backend/go-services/internal/assistant"
	"github.com/samuveljohnson/portfolio/backend/go-services/pkg/logger"
	"github.com/samuveljohnson/portfolio/backend/go-services/pkg/metrics"
)

// Handler relays chat and analysis requests to the generative model.
// Responses keep the original wire shapes: {reply} for chat, the parsed
// verdict object for analysis and {error} on failure.
type Handler struct {
	gen    assistant.Generator
	owner  string
	resume string
}

func NewHandler(gen assistant.Generator, owner, resume string) *Handler {
	return &Handler{gen: gen, owner: owner, resume: resume}
}

func (h *Handler) Register(r *gin.Engine) {
	r.POST("/api/chat", h.Chat)
	r.POST("/api/analyze-project", h.AnalyzeProject)
}

// ChatRequest is the visitor's question plus the SPA's optional project list.
type ChatRequest struct {
	Message        string      `json:"message"`
	ProjectContext interface{} `json:"projectContext"`
}

func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	system := assistant.SystemPrompt(h.owner, h.resume, req.ProjectContext)
	reply, err := h.gen.Chat(c.Request.Context(), system, assistant.ChatAck(h.owner), req.Message)
	if err != nil {
		metrics.AssistantRequests.WithLabelValues("chat", "error").Inc()
		logger.Errorf("chat request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process chat request"})
		return
	}
	metrics.AssistantRequests.WithLabelValues("chat", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// AnalyzeRequest describes the project the visitor wants scored.
type AnalyzeRequest struct {
	ProjectDescription string `json:"projectDescription"`
	TechStack          string `json:"techStack"`
}

// ProjectVerdict is the structured output the model is asked to return.
type ProjectVerdict struct {
	ComplexityScore int      `json:"complexityScore"`
	KeySkills       []string `json:"keySkills"`
	RoleFit         string   `json:"roleFit"`
	Analysis        string   `json:"analysis"`
}

func (h *Handler) AnalyzeProject(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProjectDescription == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "projectDescription is required"})
		return
	}

	raw, err := h.gen.Generate(c.Request.Context(), assistant.AnalysisPrompt(req.ProjectDescription, req.TechStack))
	if err != nil {
		metrics.AssistantRequests.WithLabelValues("analyze", "error").Inc()
		logger.Errorf("project analysis failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze project"})
		return
	}

	var verdict ProjectVerdict
	if err := json.Unmarshal([]byte(assistant.StripCodeFences(raw)), &verdict); err != nil {
		metrics.AssistantRequests.WithLabelValues("analyze", "parse_error").Inc()
		logger.Errorf("model returned unparsable verdict: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze project"})
		return
	}
	metrics.AssistantRequests.WithLabelValues("analyze", "ok").Inc()
	c.JSON(http.StatusOK, verdict)
}
