// Package docs holds the OpenAPI document served at /swagger.
// The template is maintained by hand; regenerate path entries when
// handlers change.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user account",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Exchange credentials for a token pair",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Rotate an access token using a refresh token",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Invalid refresh token"}
                }
            }
        },
        "/tax/calculate": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tax"],
                "summary": "Calculate liability for one regime and save the snapshot",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid input"},
                    "404": {"description": "No schedule for year or regime"}
                }
            }
        },
        "/tax/compare": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tax"],
                "summary": "Compare old and new regime liability",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid input"}
                }
            }
        },
        "/tax/suggest": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tax"],
                "summary": "Rank deduction suggestions by estimated saving",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/tax/reconcile": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tax"],
                "summary": "Adjust rounded parts to match an expected total",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Skew above tolerance"}
                }
            }
        },
        "/tax/schedules": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tax"],
                "summary": "List financial years with loaded slab schedules",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/tax/schedules/{year}/{regime}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tax"],
                "summary": "Fetch the slab schedule for a year and regime",
                "parameters": [
                    {"type": "string", "name": "year", "in": "path", "required": true},
                    {"type": "string", "name": "regime", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/tax/history": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["tax"],
                "summary": "List the caller's saved calculations",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/documents": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "List the caller's documents",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Upload a tax document",
                "responses": {
                    "201": {"description": "Created"},
                    "413": {"description": "File too large"}
                }
            }
        },
        "/documents/{id}/download": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Get a presigned download URL",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/updates": {
            "get": {
                "produces": ["application/json"],
                "tags": ["updates"],
                "summary": "List published regulatory updates",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/chat/sessions": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Start an advisory chat session",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/export/history.csv": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv"],
                "tags": ["export"],
                "summary": "Download calculation history as CSV",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "TaxMitra API",
	Description:      "Income tax calculation and advisory service for Indian taxpayers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
