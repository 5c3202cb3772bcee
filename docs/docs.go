// Package docs holds the Swagger document served at /swagger/*any.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login and get JWT token",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/auth.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.LoginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.StandardError"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.StandardError"}}
                }
            }
        },
        "/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List products",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handlers.ProductResponse"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Create a product",
                "description": "Creates an inventory item. totalPrice is computed as pricePerUnit * quantity. Low stock alerts are sent by the next scheduled check or POST /alerts/check.",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.ProductRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.ProductResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.StandardError"}}
                }
            }
        },
        "/products/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Get a product",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ProductResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.StandardError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.StandardError"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Replace a product",
                "description": "Replaces name, price and quantity. Status is kept when omitted. Low stock alerts are sent by the next scheduled check or POST /alerts/check.",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.ProductRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ProductResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.StandardError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.StandardError"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["products"],
                "summary": "Delete a product",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.StandardError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.StandardError"}}
                }
            }
        },
        "/products/{id}/quantity": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Set product quantity",
                "description": "Sets the stock quantity. A quantity of 2 or more clears an outstanding low stock alert. Low stock alerts are sent by the next scheduled check or POST /alerts/check.",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateQuantityRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ProductResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.StandardError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.StandardError"}}
                }
            }
        },
        "/staff": {
            "get": {
                "produces": ["application/json"],
                "tags": ["staff"],
                "summary": "List staff members",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handlers.StaffResponse"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["staff"],
                "summary": "Create a staff member",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.StaffRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.StaffResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.StandardError"}}
                }
            }
        },
        "/staff/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["staff"],
                "summary": "Get a staff member",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.StaffResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.StandardError"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["staff"],
                "summary": "Replace a staff member",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.StaffRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.StaffResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.StandardError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.StandardError"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["staff"],
                "summary": "Delete a staff member",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.StandardError"}}
                }
            }
        },
        "/alerts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["alerts"],
                "summary": "Outstanding low stock alerts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.AlertStatusResponse"}}
                }
            }
        },
        "/alerts/check": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["alerts"],
                "summary": "Run a low stock check now",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.SweepResponse"}}
                }
            }
        }
    },
    "definitions": {
        "auth.LoginRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string", "example": "admin123"},
                "username": {"type": "string", "example": "admin"}
            }
        },
        "auth.LoginResponse": {
            "type": "object",
            "properties": {
                "expires_at": {"type": "string", "example": "2024-01-15T12:00:00Z"},
                "expires_in": {"type": "integer", "example": 600},
                "token": {"type": "string"},
                "type": {"type": "string", "example": "Bearer"}
            }
        },
        "errors.StandardError": {
            "type": "object",
            "properties": {
                "details": {"type": "string"},
                "error": {"type": "string", "example": "ItemNotFound"},
                "message": {"type": "string", "example": "Product not found with ID: 1"}
            }
        },
        "handlers.ProductRequest": {
            "type": "object",
            "required": ["pricePerUnit", "productName", "quantity"],
            "properties": {
                "pricePerUnit": {"type": "number", "example": 10.00},
                "productName": {"type": "string", "example": "Widget"},
                "quantity": {"type": "integer", "minimum": 0, "example": 5},
                "status": {"type": "string", "enum": ["ACTIVE", "INACTIVE", "DISCONTINUED"], "example": "ACTIVE"}
            }
        },
        "handlers.UpdateQuantityRequest": {
            "type": "object",
            "required": ["quantity"],
            "properties": {
                "quantity": {"type": "integer", "minimum": 0, "example": 30}
            }
        },
        "handlers.ProductResponse": {
            "type": "object",
            "properties": {
                "createdDate": {"type": "string"},
                "pricePerUnit": {"type": "number", "example": 10.00},
                "productId": {"type": "integer", "example": 1},
                "productName": {"type": "string", "example": "Widget"},
                "quantity": {"type": "integer", "example": 5},
                "status": {"type": "string", "example": "ACTIVE"},
                "totalPrice": {"type": "number", "example": 50.00},
                "updatedDate": {"type": "string"}
            }
        },
        "handlers.StaffRequest": {
            "type": "object",
            "required": ["email", "name", "rights"],
            "properties": {
                "department": {"type": "string", "example": "Operations"},
                "designation": {"type": "string", "example": "Store Manager"},
                "email": {"type": "string", "example": "ana@example.com"},
                "name": {"type": "string", "example": "Ana Lopez"},
                "phoneNumber": {"type": "string", "example": "+1-555-0100"},
                "rights": {"type": "string", "enum": ["ADMIN", "MANAGER", "STAFF", "READ_ONLY"], "example": "MANAGER"},
                "status": {"type": "string", "enum": ["ACTIVE", "INACTIVE", "DISCONTINUED"], "example": "ACTIVE"}
            }
        },
        "handlers.StaffResponse": {
            "type": "object",
            "properties": {
                "createdDate": {"type": "string"},
                "department": {"type": "string"},
                "designation": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "phoneNumber": {"type": "string"},
                "rights": {"type": "string"},
                "status": {"type": "string"},
                "updatedDate": {"type": "string"}
            }
        },
        "handlers.AlertStatusResponse": {
            "type": "object",
            "properties": {
                "alerted": {"type": "array", "items": {"type": "integer"}},
                "sinks": {"type": "array", "items": {"type": "string"}},
                "threshold": {"type": "integer", "example": 2}
            }
        },
        "handlers.SweepResponse": {
            "type": "object",
            "properties": {
                "failed": {"type": "boolean"},
                "ledgerReset": {"type": "boolean"},
                "lowStock": {"type": "integer"},
                "notified": {"type": "array", "items": {"type": "integer"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
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
	Schemes:          []string{"http", "https"},
	Title:            "Inventory Service API",
	Description:      "Inventory and staff management with low stock alerting",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
