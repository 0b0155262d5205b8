// Package docs is generated by swag init from the controller annotations.
// Regenerate with: swag init -g main.go -o docs
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
        "/api/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Register a student account",
                "parameters": [{"description": "registration data", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.RegisterReq"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/util.Response"}},
                    "400": {"description": "bad request", "schema": {"$ref": "#/definitions/util.Response"}},
                    "409": {"description": "email already registered", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log in and receive a JWT",
                "parameters": [{"description": "credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.LoginReq"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "401": {"description": "invalid credentials", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/quizzes": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["Quiz"],
                "summary": "List quizzes, newest first, with the caller's completion badge",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}}
            }
        },
        "/api/quizzes/{quizId}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["Quiz"],
                "summary": "Load a quiz with its questions, or the review when already taken",
                "parameters": [{"type": "string", "description": "quiz id", "name": "quizId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "quiz not found", "schema": {"$ref": "#/definitions/util.Response"}},
                    "422": {"description": "quiz has no questions", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/quizzes/{quizId}/session": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["Quiz"],
                "summary": "Current state of the caller's quiz session",
                "parameters": [{"type": "string", "description": "quiz id", "name": "quizId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "no session", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["Quiz"],
                "summary": "Start or resume answering a quiz",
                "parameters": [{"type": "string", "description": "quiz id", "name": "quizId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "409": {"description": "quiz already attempted", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["Quiz"],
                "summary": "Discard the caller's in-progress session",
                "parameters": [{"type": "string", "description": "quiz id", "name": "quizId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}}
            }
        },
        "/api/quizzes/{quizId}/session/answers": {
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Quiz"],
                "summary": "Pick an option for any question of the quiz",
                "parameters": [
                    {"type": "string", "description": "quiz id", "name": "quizId", "in": "path", "required": true},
                    {"description": "selection", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controller.SelectAnswerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "422": {"description": "unknown question or option", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/quizzes/{quizId}/session/next": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["Quiz"],
                "summary": "Move to the next question",
                "parameters": [{"type": "string", "description": "quiz id", "name": "quizId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "400": {"description": "already at the last question", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/quizzes/{quizId}/session/previous": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["Quiz"],
                "summary": "Move to the previous question",
                "parameters": [{"type": "string", "description": "quiz id", "name": "quizId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "400": {"description": "already at the first question", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/quizzes/{quizId}/session/submit": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["Quiz"],
                "summary": "Submit all answers and receive the review",
                "parameters": [{"type": "string", "description": "quiz id", "name": "quizId", "in": "path", "required": true}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/util.Response"}},
                    "409": {"description": "quiz already attempted", "schema": {"$ref": "#/definitions/util.Response"}},
                    "422": {"description": "please answer all questions", "schema": {"$ref": "#/definitions/util.Response"}},
                    "500": {"description": "submission failed, answers kept for retry", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/quizzes/{quizId}/result": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["Quiz"],
                "summary": "Review of the caller's completed attempt",
                "parameters": [{"type": "string", "description": "quiz id", "name": "quizId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "no attempt", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/admin/quizzes": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Create a quiz for a course, book or video",
                "parameters": [{"description": "quiz with questions", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.CreateQuizReq"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/util.Response"}},
                    "422": {"description": "validation failed", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/admin/quizzes/{quizId}/attempts": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Attempts submitted for a quiz",
                "parameters": [
                    {"type": "string", "description": "quiz id", "name": "quizId", "in": "path", "required": true},
                    {"type": "integer", "default": 1, "description": "page", "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "description": "page size", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}}
            }
        }
    },
    "definitions": {
        "util.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "data": {},
                "message": {"type": "string"}
            }
        },
        "service.RegisterReq": {
            "type": "object",
            "required": ["email", "fullName", "password"],
            "properties": {
                "email": {"type": "string"},
                "fullName": {"type": "string", "maxLength": 100},
                "password": {"type": "string", "minLength": 6}
            }
        },
        "service.LoginReq": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "controller.SelectAnswerRequest": {
            "type": "object",
            "required": ["optionIndex", "questionId"],
            "properties": {
                "optionIndex": {"type": "integer"},
                "questionId": {"type": "string"}
            }
        },
        "service.CreateQuestionReq": {
            "type": "object",
            "required": ["correctAnswer", "options", "question"],
            "properties": {
                "correctAnswer": {"type": "integer"},
                "options": {"type": "array", "minItems": 2, "items": {"type": "string"}},
                "question": {"type": "string"}
            }
        },
        "service.CreateQuizReq": {
            "type": "object",
            "required": ["contentId", "contentType", "questions", "title"],
            "properties": {
                "contentId": {"type": "string"},
                "contentType": {"type": "string", "enum": ["course", "book", "video"]},
                "description": {"type": "string"},
                "questions": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/service.CreateQuestionReq"}},
                "title": {"type": "string", "maxLength": 255}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
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
	Title:            "EduLearn API",
	Description:      "Backend of the EduLearn portal: content catalogue, quizzes and dashboards.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
