package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers the API documentation endpoints.
// - GET /swagger/index.html  -> Swagger UI page loading the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>pakdocs API</title>
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

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "pakdocs", "version": "v1.0.0", "description": "Legal document drafting API. Authentication uses the session cookie set by /api/login and /api/register." },
  "components": {
    "schemas": {
      "Error": { "type": "object", "properties": { "message": {"type":"string"}, "field": {"type":"string"} }, "required": ["message"] },
      "User": { "type": "object", "properties": { "id": {"type":"integer"}, "username": {"type":"string"}, "name": {"type":"string","nullable":true}, "createdAt": {"type":"string","format":"date-time"} } },
      "Document": { "type": "object", "properties": { "id": {"type":"integer"}, "userId": {"type":"integer"}, "title": {"type":"string"}, "type": {"type":"string"}, "content": {"type":"string"}, "language": {"type":"string","enum":["Urdu","English"]}, "department": {"type":"string","nullable":true}, "createdAt": {"type":"string","format":"date-time"} } },
      "NewDocument": { "type": "object", "required": ["title","type","content","language"], "properties": { "title": {"type":"string","maxLength":200}, "type": {"type":"string","maxLength":100}, "content": {"type":"string"}, "language": {"type":"string","enum":["Urdu","English"]}, "department": {"type":"string","maxLength":200} } },
      "GenerateRequest": { "type": "object", "required": ["type","language","issue"], "properties": { "type": {"type":"string"}, "language": {"type":"string","enum":["Urdu","English"]}, "department": {"type":"string"}, "issue": {"type":"string","maxLength":5000} } },
      "Credentials": { "type": "object", "required": ["username","password"], "properties": { "username": {"type":"string"}, "password": {"type":"string"}, "name": {"type":"string"} } }
    }
  },
  "paths": {
    "/api/register": { "post": { "summary": "Create an account and log in", "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/Credentials"} } } }, "responses": { "201": { "description": "created user" }, "400": { "description": "validation error or username taken" } } } },
    "/api/login": { "post": { "summary": "Log in", "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/Credentials"} } } }, "responses": { "200": { "description": "user" }, "401": { "description": "invalid credentials" } } } },
    "/api/logout": { "post": { "summary": "Log out", "responses": { "200": { "description": "session cleared" } } } },
    "/api/user": { "get": { "summary": "Current user", "responses": { "200": { "description": "user" }, "401": { "description": "not logged in" } } } },
    "/api/documents": {
      "get": { "summary": "List own documents", "responses": { "200": { "description": "documents" }, "401": { "description": "not logged in" } } },
      "post": { "summary": "Save a document", "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/NewDocument"} } } }, "responses": { "201": { "description": "document" }, "400": { "description": "validation error" }, "401": { "description": "not logged in" } } }
    },
    "/api/documents/{id}": {
      "get": { "summary": "Get a document", "responses": { "200": { "description": "document" }, "403": { "description": "owned by another user" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete a document", "responses": { "204": { "description": "deleted" }, "403": { "description": "owned by another user" }, "404": { "description": "not found" } } }
    },
    "/api/documents/{id}/pdf": { "get": { "summary": "Download a document as PDF", "responses": { "200": { "description": "application/pdf attachment" }, "403": { "description": "owned by another user" }, "404": { "description": "not found" } } } },
    "/api/generate": { "post": { "summary": "Generate a draft", "requestBody": { "content": { "application/json": { "schema": {"$ref":"#/components/schemas/GenerateRequest"} } } }, "responses": { "200": { "description": "{content}" }, "400": { "description": "validation error" }, "401": { "description": "not logged in" }, "429": { "description": "rate limited" }, "500": { "description": "provider failure" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "exposition format" } } } }
  }
}`
