// Package docs registers the OpenAPI document served at /swagger/doc.json.
// Regenerate the paths with `swag init -g cmd/api/main.go` after changing
// handler annotations.
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
    "securityDefinitions": {
        "AdminToken": {
            "type": "apiKey",
            "name": "X-Admin-Token",
            "in": "header"
        }
    },
    "paths": {
        "/categories": {
            "get": {"tags": ["Masters"], "summary": "List categories", "produces": ["application/json"],
                "responses": {"200": {"description": "Categories in course index order"}, "503": {"description": "No snapshot loaded"}}}
        },
        "/categories/{category}/courses": {
            "get": {"tags": ["Masters"], "summary": "List courses of a category", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "category", "in": "path", "required": true}],
                "responses": {"200": {"description": "Courses in index order"}, "404": {"description": "Unknown category"}}}
        },
        "/versions": {
            "get": {"tags": ["Masters"], "summary": "List versions", "produces": ["application/json"],
                "responses": {"200": {"description": "Versions, newest first"}}}
        },
        "/controls": {
            "get": {"tags": ["Masters"], "summary": "List control methods", "produces": ["application/json"],
                "responses": {"200": {"description": "Control methods with icons"}}}
        },
        "/ranking": {
            "get": {"tags": ["Ranking"], "summary": "Course ranking", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "category", "in": "query"},
                    {"type": "string", "name": "course", "in": "query"},
                    {"type": "string", "name": "versions", "in": "query", "description": "Comma separated"},
                    {"type": "string", "name": "controls", "in": "query", "description": "Comma separated"},
                    {"type": "string", "name": "approval", "in": "query", "enum": ["all", "approved"]},
                    {"type": "string", "name": "mode", "in": "query", "enum": ["all", "best"]},
                    {"type": "string", "name": "sort", "in": "query", "enum": ["player", "time", "record_date", "submitted_at"]},
                    {"type": "string", "name": "order", "in": "query", "enum": ["asc", "desc"]},
                    {"type": "string", "name": "toggle", "in": "query", "enum": ["player", "time", "record_date", "submitted_at"]}
                ],
                "responses": {"200": {"description": "Ranking view"}, "400": {"description": "Invalid parameter"}, "422": {"description": "Empty multi-select"}, "503": {"description": "No snapshot loaded"}}}
        },
        "/ranking/count": {
            "get": {"tags": ["Ranking"], "summary": "Ranking count preview", "produces": ["application/json"],
                "responses": {"200": {"description": "Count preview"}, "400": {"description": "Invalid parameter"}}}
        },
        "/recent": {
            "get": {"tags": ["Ranking"], "summary": "Recent submissions", "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "limit", "in": "query", "default": 5}],
                "responses": {"200": {"description": "Newest submissions"}}}
        },
        "/players": {
            "get": {"tags": ["Players"], "summary": "Player search", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "q", "in": "query"}, {"type": "integer", "name": "limit", "in": "query", "default": 10}],
                "responses": {"200": {"description": "Suggestions"}, "400": {"description": "Invalid parameter"}}}
        },
        "/players/{user}": {
            "get": {"tags": ["Players"], "summary": "Player overview", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "user", "in": "path", "required": true}],
                "responses": {"200": {"description": "Overview"}}}
        },
        "/players/{user}/stamps": {
            "get": {"tags": ["Players"], "summary": "Player stamp rally", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "user", "in": "path", "required": true}, {"type": "string", "name": "version", "in": "query"}],
                "responses": {"200": {"description": "Stamp rally"}, "400": {"description": "Unknown version"}}}
        },
        "/players/{user}/records": {
            "get": {"tags": ["Players"], "summary": "Player submissions", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "user", "in": "path", "required": true}],
                "responses": {"200": {"description": "Submissions"}, "422": {"description": "Empty multi-select"}}}
        },
        "/players/{user}/records/count": {
            "get": {"tags": ["Players"], "summary": "Player submissions count preview", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "user", "in": "path", "required": true}],
                "responses": {"200": {"description": "Count preview"}}}
        },
        "/challenges": {
            "get": {"tags": ["Challenges"], "summary": "List challenges", "produces": ["application/json"],
                "responses": {"200": {"description": "Challenges"}}}
        },
        "/challenges/{name}": {
            "get": {"tags": ["Challenges"], "summary": "Challenge achievers", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}, {"type": "string", "name": "rank", "in": "query"}, {"type": "string", "name": "approval", "in": "query", "enum": ["all", "approved"]}],
                "responses": {"200": {"description": "Achievers"}, "400": {"description": "Unknown rank"}, "404": {"description": "Unknown challenge"}}}
        },
        "/challenges/{name}/count": {
            "get": {"tags": ["Challenges"], "summary": "Challenge count preview", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}],
                "responses": {"200": {"description": "Count preview"}}}
        },
        "/admin/reload": {
            "post": {"tags": ["Admin"], "summary": "Reload snapshot", "produces": ["application/json"],
                "security": [{"AdminToken": []}],
                "responses": {"200": {"description": "Reloaded"}, "401": {"description": "Unauthorized"}, "502": {"description": "Fetch or decode failed"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Sky Air Race Records API",
	Description:      "Course rankings, player pages and challenge achievers computed from the published records snapshot.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
