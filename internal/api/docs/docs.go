// Package docs registers the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "https://opensource.org/licenses/Apache-2.0"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/measures": {
            "get": {
                "produces": ["application/json"],
                "tags": ["measures"],
                "summary": "List available measures",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/router.MeasureInfo"}
                        }
                    }
                }
            }
        },
        "/evaluate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["evaluate"],
                "summary": "Evaluate a run against judgments",
                "parameters": [
                    {
                        "description": "Qrels, run and measures",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/router.EvaluateRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/report.Report"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/runs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["runs"],
                "summary": "List stored runs",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/pg.RunInfo"}
                        }
                    }
                }
            }
        },
        "/runs/{id}/evaluate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["runs"],
                "summary": "Evaluate a stored run against stored judgments",
                "parameters": [
                    {"type": "string", "description": "Run ID", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Measures and options",
                        "name": "request",
                        "in": "body",
                        "schema": {"$ref": "#/definitions/router.EvaluateOptions"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/report.Report"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "router.MeasureInfo": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "help": {"type": "string"},
                "aggregation": {"type": "string"},
                "defaults": {"type": "string"}
            }
        },
        "router.EvaluateOptions": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "measures": {"type": "array", "items": {"type": "string"}},
                "relevance_level": {"type": "integer"},
                "max_retrieved": {"type": "integer"},
                "per_topic": {"type": "boolean"},
                "complete": {"type": "boolean"}
            }
        },
        "router.EvaluateRequest": {
            "type": "object",
            "required": ["qrels", "run"],
            "properties": {
                "qrels": {"type": "string"},
                "run": {"type": "string"},
                "name": {"type": "string"},
                "measures": {"type": "array", "items": {"type": "string"}},
                "relevance_level": {"type": "integer"},
                "max_retrieved": {"type": "integer"},
                "per_topic": {"type": "boolean"},
                "complete": {"type": "boolean"}
            }
        },
        "pg.RunInfo": {
            "type": "object",
            "properties": {
                "run_id": {"type": "string"},
                "tag": {"type": "string"},
                "created_at": {"type": "string"},
                "results": {"type": "integer"}
            }
        },
        "report.Report": {
            "type": "object",
            "properties": {
                "meta": {"type": "object"},
                "config": {"type": "object"},
                "summary": {"type": "array", "items": {"type": "object"}},
                "per_topic": {"type": "array", "items": {"type": "object"}},
                "skipped": {"type": "array", "items": {"type": "string"}},
                "timing": {"type": "object"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Rankeval API",
	Description:      "Retrieval effectiveness evaluation over TREC-style judgments and runs",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
