// Package docs registers the Swagger description of the Moment Zero API.
// Keep it in step with the handler annotations in internal/server.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/accounts/{username}": {
            "delete": {
                "description": "Removes the account with its moments and frees the username.",
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Delete an account",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"success": {"type": "boolean"}}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/countdown": {
            "get": {
                "produces": ["application/json"],
                "tags": ["share"],
                "summary": "Countdown to New Year",
                "parameters": [
                    {"type": "integer", "description": "Target year (defaults to next year)", "name": "year", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {
                        "countdown": {"$ref": "#/definitions/countdown.Remaining"},
                        "target": {"type": "string"},
                        "year": {"type": "integer"}
                    }}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/moments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["moments"],
                "summary": "List public moments",
                "parameters": [
                    {"type": "integer", "description": "Page size (max 100)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.PublicPage"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "put": {
                "description": "Change message, style or visibility. A deleted moment is recreated with defaults.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["moments"],
                "summary": "Update a moment",
                "parameters": [
                    {"description": "Changes", "name": "request", "in": "body", "required": true, "schema": {"type": "object", "properties": {
                        "atmosphere": {"type": "string"},
                        "isPublic": {"type": "boolean"},
                        "message": {"type": "string"},
                        "theme": {"type": "string"},
                        "typography": {"type": "string"},
                        "username": {"type": "string"}
                    }}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MomentView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Claim a username and store its moment",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["moments"],
                "summary": "Seal a moment",
                "parameters": [
                    {"description": "Moment", "name": "request", "in": "body", "required": true, "schema": {"type": "object", "properties": {
                        "atmosphere": {"type": "string"},
                        "isPublic": {"type": "boolean"},
                        "message": {"type": "string"},
                        "targetYear": {"type": "integer"},
                        "theme": {"type": "string"},
                        "typography": {"type": "string"},
                        "username": {"type": "string"}
                    }}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object", "properties": {
                        "success": {"type": "boolean"},
                        "username": {"type": "string"}
                    }}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/moments/{username}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["moments"],
                "summary": "Get a moment",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MomentView"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "description": "Idempotent; the account and its username are kept.",
                "produces": ["application/json"],
                "tags": ["moments"],
                "summary": "Delete a moment",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"success": {"type": "boolean"}}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["moments"],
                "summary": "Update a moment by path",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "path", "required": true},
                    {"description": "Changes", "name": "request", "in": "body", "required": true, "schema": {"type": "object", "properties": {
                        "atmosphere": {"type": "string"},
                        "isPublic": {"type": "boolean"},
                        "message": {"type": "string"},
                        "theme": {"type": "string"},
                        "typography": {"type": "string"}
                    }}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MomentView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/u/{username}": {
            "get": {
                "description": "Moment fields with a countdown to its target year. Private moments are not found.",
                "produces": ["application/json"],
                "tags": ["share"],
                "summary": "Public share view",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.ShareView"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/usernames/{username}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Check username availability",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.UsernameStatus"}}
                }
            }
        }
    },
    "definitions": {
        "countdown.Remaining": {
            "type": "object",
            "properties": {
                "days": {"type": "integer"},
                "done": {"type": "boolean"},
                "hours": {"type": "integer"},
                "minutes": {"type": "integer"},
                "seconds": {"type": "integer"}
            }
        },
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "string"},
                "error": {"type": "string"},
                "fields": {"type": "array", "items": {"$ref": "#/definitions/models.FieldError"}}
            }
        },
        "models.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "models.MomentView": {
            "type": "object",
            "properties": {
                "atmosphere": {"type": "string"},
                "createdAt": {"type": "string"},
                "id": {"type": "string"},
                "isPublic": {"type": "boolean"},
                "message": {"type": "string"},
                "targetYear": {"type": "integer"},
                "theme": {"type": "string"},
                "typography": {"type": "string"},
                "updatedAt": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "service.PublicPage": {
            "type": "object",
            "properties": {
                "limit": {"type": "integer"},
                "moments": {"type": "array", "items": {"$ref": "#/definitions/models.MomentView"}},
                "offset": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "service.ShareView": {
            "type": "object",
            "properties": {
                "atmosphere": {"type": "string"},
                "countdown": {"$ref": "#/definitions/countdown.Remaining"},
                "createdAt": {"type": "string"},
                "demo": {"type": "boolean"},
                "id": {"type": "string"},
                "isPublic": {"type": "boolean"},
                "message": {"type": "string"},
                "targetYear": {"type": "integer"},
                "theme": {"type": "string"},
                "typography": {"type": "string"},
                "updatedAt": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "service.UsernameStatus": {
            "type": "object",
            "properties": {
                "available": {"type": "boolean"},
                "reason": {"type": "string"},
                "username": {"type": "string"},
                "valid": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8375",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Moment Zero API",
	Description:      "Seal a New Year wish under a unique username, share it, and count down to the moment it opens.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
