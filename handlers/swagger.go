package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.JSON(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>bistro-services — Swagger</title>
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

// Minimal OpenAPI document describing the bistro API surface.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "bistro-services", "version": "v0.1.0" },
  "paths": {
    "/jwt": {
      "post": { "summary": "Issue a bearer token for the supplied identity claims", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"}}}}}}, "responses": { "200": { "description": "token returned" } } }
    },
    "/menu": {
      "get": { "summary": "List menu items", "responses": { "200": { "description": "menu items" } } },
      "post": { "summary": "Add a menu item (admin)", "responses": { "200": { "description": "insert result" }, "401": { "description": "no token" }, "403": { "description": "not admin" } } }
    },
    "/menu/{id}": {
      "delete": { "summary": "Remove a menu item (admin)", "responses": { "200": { "description": "delete result" } } }
    },
    "/review": {
      "get": { "summary": "List reviews", "responses": { "200": { "description": "reviews" } } },
      "post": { "summary": "Submit a review (authenticated)", "responses": { "200": { "description": "insert result" } } }
    },
    "/users": {
      "get": { "summary": "List accounts (authenticated)", "responses": { "200": { "description": "accounts" } } },
      "post": { "summary": "Create account on first sign-in (idempotent by email)", "responses": { "200": { "description": "insert result or already-exists message" } } }
    },
    "/users/admin/{id}": {
      "patch": { "summary": "Promote account to admin (admin)", "responses": { "200": { "description": "update result" } } }
    },
    "/users/admin/{email}": {
      "get": { "summary": "Check whether email is admin (self only)", "responses": { "200": { "description": "{admin: bool}" } } }
    },
    "/carts": {
      "get": { "summary": "List own cart entries (authenticated, email must match token)", "responses": { "200": { "description": "cart entries" }, "403": { "description": "email mismatch" } } },
      "post": { "summary": "Add a cart entry", "responses": { "200": { "description": "insert result" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
