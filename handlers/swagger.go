package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the content service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>portfolio-content Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the content service endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "portfolio-content", "version": "v1.0.0" },
  "paths": {
    "/api/auth/login": {
      "post": {
        "summary": "Authenticate the admin user",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"username":{"type":"string"},"password":{"type":"string"}},"required":["username","password"]}}}},
        "responses": { "200": { "description": "token and user returned" }, "400": { "description": "missing credentials" }, "401": { "description": "invalid credentials" } }
      }
    },
    "/api/auth/logout": {
      "post": { "summary": "Revoke the presented access token", "responses": { "200": { "description": "logged out" }, "401": { "description": "no token presented" } } }
    },
    "/api/data": {
      "get": { "summary": "Fetch the full portfolio document", "responses": { "200": { "description": "certificates, skills and experiences" } } }
    },
    "/api/admin/certificates": {
      "post": {
        "summary": "Add a certificate (multipart, optional image upload)",
        "security": [{"bearerAuth": []}],
        "requestBody": { "content": { "multipart/form-data": { "schema": {"type":"object","properties":{"title":{"type":"string"},"issuer":{"type":"string"},"date":{"type":"string"},"link":{"type":"string"},"description":{"type":"string"},"category":{"type":"string"},"image":{"type":"string","format":"binary"}},"required":["title","issuer","date"]}}}},
        "responses": { "200": { "description": "created certificate" }, "400": { "description": "missing fields or bad image" } }
      }
    },
    "/api/admin/skills": {
      "post": {
        "summary": "Add a skill (level clamped to 0-100)",
        "security": [{"bearerAuth": []}],
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"name":{"type":"string"},"category":{"type":"string"},"level":{"type":"integer"},"description":{"type":"string"}},"required":["name","category","level"]}}}},
        "responses": { "200": { "description": "created skill" }, "400": { "description": "missing fields" } }
      }
    },
    "/api/admin/experiences": {
      "post": {
        "summary": "Add an experience",
        "security": [{"bearerAuth": []}],
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"role":{"type":"string"},"company":{"type":"string"},"duration":{"type":"string"},"description":{"type":"string"},"technologies":{},"link":{"type":"string"},"type":{"type":"string"}},"required":["role","company","duration","description"]}}}},
        "responses": { "200": { "description": "created experience" }, "400": { "description": "missing fields" } }
      }
    },
    "/api/admin/{type}/{id}": {
      "delete": {
        "summary": "Delete a record by collection and id",
        "security": [{"bearerAuth": []}],
        "parameters": [
          {"name":"type","in":"path","required":true,"schema":{"type":"string","enum":["certificates","skills","experiences"]}},
          {"name":"id","in":"path","required":true,"schema":{"type":"string"}}
        ],
        "responses": { "200": { "description": "deleted" }, "400": { "description": "unknown collection" }, "404": { "description": "id not found" } }
      }
    }
  },
  "components": { "securitySchemes": { "bearerAuth": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } } }
}`
