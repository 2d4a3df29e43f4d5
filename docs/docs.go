// Package docs holds the Swagger specification served at /swagger/.
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
        "/nominations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Nominations"],
                "summary": "List nominations",
                "description": "List nominations. Without admin credentials only approved nominations are returned.",
                "parameters": [
                    {"type": "string", "name": "q", "in": "query", "description": "Search in nominee name, nominator name, category"},
                    {"type": "string", "name": "category", "in": "query", "description": "Filter by category"},
                    {"type": "string", "name": "type", "in": "query", "description": "Filter by nominee type (person, company)"},
                    {"type": "string", "name": "status", "in": "query", "description": "Filter by status (admin only)"},
                    {"type": "string", "name": "sort", "in": "query", "description": "Sort order (recent, popular, name)"},
                    {"type": "integer", "name": "limit", "in": "query", "description": "Maximum results"}
                ],
                "responses": {
                    "200": {"description": "Nominations"},
                    "400": {"description": "Invalid parameters"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Nominations"],
                "summary": "Submit a nomination",
                "description": "Submit a new nomination. Resubmitting an identity that already has an approved nomination returns a duplicate outcome, not an error.",
                "responses": {
                    "200": {"description": "Duplicate of an approved nomination"},
                    "201": {"description": "Created nomination"},
                    "400": {"description": "Invalid request"}
                }
            }
        },
        "/nominations/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Nominations"],
                "summary": "Get a nomination",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true, "description": "Nomination ID"}
                ],
                "responses": {
                    "200": {"description": "Nomination"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/votes": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Votes"],
                "summary": "Cast a vote",
                "description": "Cast a vote for an approved nominee. A repeat ballot returns a blocked outcome with the reason, not an error.",
                "responses": {
                    "200": {"description": "Vote recorded or blocked"},
                    "400": {"description": "Invalid request"},
                    "404": {"description": "Nominee not found"}
                }
            }
        },
        "/votes/count": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Votes"],
                "summary": "Get a nominee's vote count",
                "parameters": [
                    {"type": "string", "name": "nomineeId", "in": "query", "required": true, "description": "Nominee ID"}
                ],
                "responses": {
                    "200": {"description": "Vote count"},
                    "404": {"description": "Nominee not found"}
                }
            }
        },
        "/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Stats"],
                "summary": "Get public stats",
                "responses": {
                    "200": {"description": "Aggregate stats"}
                }
            }
        },
        "/podium": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Stats"],
                "summary": "Get a category podium",
                "parameters": [
                    {"type": "string", "name": "category", "in": "query", "required": true, "description": "Category ID"}
                ],
                "responses": {
                    "200": {"description": "Podium entries"},
                    "400": {"description": "Unknown category"}
                }
            }
        },
        "/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Stats"],
                "summary": "List award categories",
                "responses": {
                    "200": {"description": "Categories"}
                }
            }
        },
        "/auth/admin/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Authentication"],
                "summary": "Admin login",
                "description": "Exchange the admin passcode for a short-lived session token",
                "responses": {
                    "200": {"description": "Session token"},
                    "400": {"description": "Invalid request"},
                    "401": {"description": "Invalid passcode"}
                }
            }
        },
        "/admin/nominations": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Update a nomination",
                "description": "Apply a moderation decision or admin edit. Approving an identity that already holds an approved nomination answers 409 with the conflicting record.",
                "responses": {
                    "200": {"description": "Updated nomination"},
                    "400": {"description": "Invalid request"},
                    "401": {"description": "Unauthorized"},
                    "404": {"description": "Not found"},
                    "409": {"description": "Conflicts with an approved nomination"}
                }
            }
        },
        "/admin/nominations/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Delete a nomination",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true, "description": "Nomination ID"}
                ],
                "responses": {
                    "200": {"description": "Deleted"},
                    "401": {"description": "Unauthorized"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/admin/nominations/{id}/votes": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "List a nominee's ballots",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true, "description": "Nominee ID"}
                ],
                "responses": {
                    "200": {"description": "Ballots"},
                    "401": {"description": "Unauthorized"},
                    "404": {"description": "Nominee not found"}
                }
            }
        },
        "/admin/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Get admin stats",
                "responses": {
                    "200": {"description": "Aggregate stats"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/admin/audit-logs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "List audit logs",
                "parameters": [
                    {"type": "integer", "name": "limit", "in": "query", "description": "Maximum entries"}
                ],
                "responses": {
                    "200": {"description": "Audit entries"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/uploads/image": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Upload a nominee image",
                "parameters": [
                    {"type": "file", "name": "image", "in": "formData", "required": true, "description": "Image file"}
                ],
                "responses": {
                    "200": {"description": "Image URL"},
                    "400": {"description": "Invalid upload"},
                    "401": {"description": "Unauthorized"}
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

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "World Staffing Awards API",
	Description:      "Backend API for the World Staffing Awards nominations and voting platform",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
