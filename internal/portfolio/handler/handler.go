package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/samuveljohnson/portfolio/backend/go-services/internal/portfolio/service"
	"github.com/samuveljohnson/portfolio/backend/go-services/internal/storage"
	"github.com/samuveljohnson/portfolio/backend/go-services/pkg/logger"
	"github.com/samuveljohnson/portfolio/backend/go-services/pkg/metrics"
	"github.com/samuveljohnson/portfolio/backend/go-services/pkg/middleware"
)

// Handler serves the portfolio document and its admin mutations.
type Handler struct {
	svc      *service.Service
	images   storage.ImageStore
	maxBytes int64
}

func NewHandler(svc *service.Service, images storage.ImageStore, maxUploadBytes int64) *Handler {
	return &Handler{svc: svc, images: images, maxBytes: maxUploadBytes}
}

// Register wires the public document route and the token-gated admin routes.
func (h *Handler) Register(r *gin.Engine, ver middleware.Verifier) {
	r.GET("/api/data", h.GetData)

	admin := r.Group("/api/admin", middleware.AuthMiddleware(ver))
	admin.POST("/certificates", h.CreateCertificate)
	admin.POST("/skills", h.CreateSkill)
	admin.POST("/experiences", h.CreateExperience)
	admin.DELETE("/:type/:id", h.Delete)
}

func (h *Handler) GetData(c *gin.Context) {
	doc, err := h.svc.Document(c.Request.Context())
	if err != nil {
		logger.Errorf("failed to read portfolio document: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to read data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": doc})
}

// CreateCertificate accepts a multipart form because the SPA may attach an
// image file alongside the text fields.
func (h *Handler) CreateCertificate(c *gin.Context) {
	in := service.CertificateInput{
		Title:       c.PostForm("title"),
		Issuer:      c.PostForm("issuer"),
		Date:        c.PostForm("date"),
		Link:        c.PostForm("link"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		if file.Size > h.maxBytes {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Image exceeds the upload size limit"})
			return
		}
		src, err := file.Open()
		if err != nil {
			logger.Errorf("failed to open uploaded image: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add certificate"})
			return
		}
		defer src.Close()
		pub, err := h.images.Save(c.Request.Context(), file.Filename, src, file.Size, file.Header.Get("Content-Type"))
		if err != nil {
			if errors.Is(err, storage.ErrUnsupportedType) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Only image files are allowed"})
				return
			}
			logger.Errorf("failed to store uploaded image: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add certificate"})
			return
		}
		in.Image = pub
	}

	cert, err := h.svc.CreateCertificate(c.Request.Context(), in)
	if err != nil {
		h.writeCreateError(c, "certificates", err, "Title, issuer, and date are required", "Failed to add certificate")
		return
	}
	metrics.StoreMutations.WithLabelValues("certificates", "created").Inc()
	c.JSON(http.StatusOK, gin.H{"success": true, "data": cert})
}

func (h *Handler) CreateSkill(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Category    string `json:"category"`
		Level       *int   `json:"level"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Name, category, and level are required"})
		return
	}

	skill, err := h.svc.CreateSkill(c.Request.Context(), service.SkillInput{
		Name:        req.Name,
		Category:    req.Category,
		Level:       req.Level,
		Description: req.Description,
	})
	if err != nil {
		h.writeCreateError(c, "skills", err, "Name, category, and level are required", "Failed to add skill")
		return
	}
	metrics.StoreMutations.WithLabelValues("skills", "created").Inc()
	c.JSON(http.StatusOK, gin.H{"success": true, "data": skill})
}

func (h *Handler) CreateExperience(c *gin.Context) {
	var req struct {
		Role         string      `json:"role"`
		Company      string      `json:"company"`
		Duration     string      `json:"duration"`
		Description  string      `json:"description"`
		Technologies interface{} `json:"technologies"`
		Link         string      `json:"link"`
		Type         string      `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Role, company, duration, and description are required"})
		return
	}

	exp, err := h.svc.CreateExperience(c.Request.Context(), service.ExperienceInput{
		Role:         req.Role,
		Company:      req.Company,
		Duration:     req.Duration,
		Description:  req.Description,
		Technologies: technologiesFromJSON(req.Technologies),
		Link:         req.Link,
		Type:         req.Type,
	})
	if err != nil {
		h.writeCreateError(c, "experiences", err, "Role, company, duration, and description are required", "Failed to add experience")
		return
	}
	metrics.StoreMutations.WithLabelValues("experiences", "created").Inc()
	c.JSON(http.StatusOK, gin.H{"success": true, "data": exp})
}

func (h *Handler) Delete(c *gin.Context) {
	collection := c.Param("type")
	id := c.Param("id")

	err := h.svc.Delete(c.Request.Context(), collection, id)
	switch {
	case err == nil:
		metrics.StoreMutations.WithLabelValues(collection, "deleted").Inc()
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item deleted successfully"})
	case errors.Is(err, service.ErrUnknownCollection):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid data type"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Item not found"})
	default:
		logger.Errorf("failed to delete %s/%s: %v", collection, id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete item"})
	}
}

func (h *Handler) writeCreateError(c *gin.Context, collection string, err error, validationMsg, serverMsg string) {
	if errors.Is(err, service.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": validationMsg})
		return
	}
	metrics.StoreMutations.WithLabelValues(collection, "error").Inc()
	logger.Errorf("failed to create %s record: %v", collection, err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": serverMsg})
}

// technologiesFromJSON accepts both wire shapes the SPA sends: a JSON array
// of strings or one comma-separated string.
func technologiesFromJSON(v interface{}) []string {
	switch t := v.(type) {
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		return service.SplitTechnologies(nil, t)
	default:
		return []string{}
	}
}
