// Package docs registers the OpenAPI document served under /api-docs.
// Keep it in sync with the handler annotations (swag init -g cmd/api/main.go).
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
        "/home": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Welcome message",
                "responses": {
                    "200": {"description": "Welcome message", "schema": {"type": "string"}}
                }
            }
        },
        "/sign-up": {
            "post": {
                "description": "Creates a user and emails a six digit OTP for verification. No token is returned.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "Sign-up request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.SignUpRequest"}}
                ],
                "responses": {
                    "201": {"description": "User registered", "schema": {"$ref": "#/definitions/message"}},
                    "400": {"description": "Invalid request body", "schema": {"$ref": "#/definitions/error"}},
                    "409": {"description": "Username already exists", "schema": {"$ref": "#/definitions/error"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/error"}},
                    "502": {"description": "OTP email could not be sent", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/login": {
            "post": {
                "description": "Checks username and password and returns a bearer token.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login user",
                "parameters": [
                    {"description": "Login request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.TokenResponse"}},
                    "400": {"description": "Invalid request body", "schema": {"$ref": "#/definitions/error"}},
                    "401": {"description": "Invalid username or password", "schema": {"$ref": "#/definitions/error"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/otp-verification": {
            "post": {
                "description": "Consumes the OTP sent at sign-up and returns a bearer token. Each OTP works once.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Verify the emailed OTP",
                "parameters": [
                    {"description": "OTP verification request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.OTPVerificationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.TokenResponse"}},
                    "400": {"description": "Invalid request body", "schema": {"$ref": "#/definitions/error"}},
                    "401": {"description": "Invalid OTP", "schema": {"$ref": "#/definitions/error"}},
                    "404": {"description": "Invalid email", "schema": {"$ref": "#/definitions/error"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/otp-resend": {
            "post": {
                "description": "Replaces the outstanding OTP of a registered email and sends it again.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Send a new OTP",
                "parameters": [
                    {"description": "OTP resend request", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.OTPResendRequest"}}
                ],
                "responses": {
                    "200": {"description": "OTP sent", "schema": {"$ref": "#/definitions/message"}},
                    "400": {"description": "Invalid request body", "schema": {"$ref": "#/definitions/error"}},
                    "404": {"description": "Invalid email", "schema": {"$ref": "#/definitions/error"}},
                    "502": {"description": "OTP email could not be sent", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["profile"],
                "summary": "Get own profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ProfileResponse"}},
                    "401": {"description": "No token provided", "schema": {"$ref": "#/definitions/error"}},
                    "403": {"description": "Failed to authenticate token", "schema": {"$ref": "#/definitions/error"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/error"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/admin/add-user": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Creates a user with the given role. No OTP is sent.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Add a user",
                "parameters": [
                    {"description": "User to add", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.SignUpRequest"}}
                ],
                "responses": {
                    "201": {"description": "User added", "schema": {"$ref": "#/definitions/message"}},
                    "400": {"description": "Invalid request body", "schema": {"$ref": "#/definitions/error"}},
                    "401": {"description": "No token provided", "schema": {"$ref": "#/definitions/error"}},
                    "403": {"description": "Admin access required", "schema": {"$ref": "#/definitions/error"}},
                    "409": {"description": "Username already exists", "schema": {"$ref": "#/definitions/error"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/delete-user/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Delete a user",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "User deleted", "schema": {"$ref": "#/definitions/message"}},
                    "401": {"description": "No token provided", "schema": {"$ref": "#/definitions/error"}},
                    "403": {"description": "Admin access required", "schema": {"$ref": "#/definitions/error"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/error"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        }
    },
    "definitions": {
        "error": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "message": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "models.SignUpRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string", "example": "alice"},
                "password": {"type": "string", "example": "pw1"},
                "mobile": {"type": "string", "example": "555"},
                "email": {"type": "string", "example": "a@x.com"},
                "role": {"type": "string", "enum": ["user", "admin"], "example": "user"}
            }
        },
        "models.LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string", "example": "alice"},
                "password": {"type": "string", "example": "pw1"}
            }
        },
        "models.OTPVerificationRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "a@x.com"},
                "otp": {"type": "string", "example": "123456"}
            }
        },
        "models.OTPResendRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "a@x.com"}
            }
        },
        "models.TokenResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}}
        },
        "models.ProfileResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "username": {"type": "string"},
                "mobile": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string", "enum": ["user", "admin"]}
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
	Host:             "localhost:9001",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "OTP Auth API",
	Description:      "User registration, login, OTP email verification and admin user management",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
