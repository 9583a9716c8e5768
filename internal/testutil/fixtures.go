// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/oasfilter/jsonvalue"
)

// ScenarioAPI is the smallest document for the "select GET /users" case:
// listUsers references User, createUser references NewUser.
const ScenarioAPI = `{
  "openapi": "3.0.3",
  "info": {"title": "Users", "version": "1.0.0"},
  "tags": [
    {"name": "users", "description": "User operations"},
    {"name": "billing"}
  ],
  "paths": {
    "/users": {
      "get": {
        "operationId": "listUsers",
        "tags": ["users"],
        "responses": {
          "200": {
            "description": "OK",
            "content": {
              "application/json": {
                "schema": {"type": "array", "items": {"$ref": "#/components/schemas/User"}}
              }
            }
          }
        }
      },
      "post": {
        "operationId": "createUser",
        "tags": ["users"],
        "requestBody": {
          "content": {
            "application/json": {"schema": {"$ref": "#/components/schemas/NewUser"}}
          }
        },
        "responses": {"201": {"description": "Created"}}
      }
    }
  },
  "components": {
    "schemas": {
      "User": {"type": "object", "properties": {"id": {"type": "integer"}}},
      "NewUser": {"type": "object", "properties": {"name": {"type": "string"}}}
    }
  }
}`

// UsersAPI exercises every components bucket, path-level parameters,
// transitive references, tags, servers, externalDocs and extensions.
const UsersAPI = `{
  "openapi": "3.0.3",
  "info": {"title": "Users API", "version": "2.1.0", "x-owner": "platform"},
  "servers": [{"url": "https://api.example.com/v2"}],
  "externalDocs": {"url": "https://docs.example.com"},
  "security": [{"bearer": []}],
  "tags": [
    {"name": "users"},
    {"name": "billing", "description": "Invoices"},
    {"name": "admin"},
    {"name": "unused"}
  ],
  "paths": {
    "/users": {
      "summary": "User collection",
      "parameters": [{"$ref": "#/components/parameters/TraceID"}],
      "get": {
        "operationId": "listUsers",
        "summary": "List users",
        "tags": ["users"],
        "x-public": true,
        "responses": {"200": {"$ref": "#/components/responses/UserList"}}
      },
      "post": {
        "operationId": "createUser",
        "summary": "Create a user",
        "tags": ["users"],
        "x-public": true,
        "x-tier": "gold",
        "requestBody": {"$ref": "#/components/requestBodies/NewUser"},
        "responses": {
          "201": {
            "description": "Created",
            "links": {"self": {"$ref": "#/components/links/GetUser"}}
          }
        },
        "callbacks": {"onCreate": {"$ref": "#/components/callbacks/UserCreated"}}
      }
    },
    "/users/{id}": {
      "parameters": [{"$ref": "#/components/parameters/UserID"}],
      "get": {
        "operationId": "getUser",
        "tags": ["users"],
        "responses": {
          "200": {
            "description": "OK",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/User"}}}
          },
          "404": {"$ref": "#/components/responses/NotFound"}
        }
      },
      "delete": {
        "operationId": "deleteUser",
        "tags": ["users", "admin"],
        "security": [{"bearer": []}],
        "responses": {"204": {"description": "Deleted"}}
      }
    },
    "/invoices": {
      "get": {
        "operationId": "listInvoices",
        "tags": ["billing"],
        "responses": {
          "200": {
            "description": "OK",
            "content": {
              "application/json": {
                "schema": {"type": "array", "items": {"$ref": "#/components/schemas/Invoice"}}
              }
            }
          }
        }
      }
    },
    "/admin/audit": {
      "delete": {
        "operationId": "purgeAudit",
        "tags": ["admin"],
        "deprecated": true,
        "x-internal": true,
        "responses": {"204": {"description": "Purged"}}
      }
    },
    "/health": {
      "get": {"responses": {"200": {"description": "OK"}}},
      "head": {"responses": {"200": {"description": "OK"}}}
    }
  },
  "components": {
    "schemas": {
      "User": {
        "type": "object",
        "properties": {
          "id": {"type": "integer"},
          "address": {"$ref": "#/components/schemas/Address"}
        }
      },
      "Address": {"type": "object", "properties": {"city": {"type": "string"}}},
      "Invoice": {
        "type": "object",
        "properties": {
          "total": {"$ref": "#/components/schemas/Money"},
          "owner": {"$ref": "#/components/schemas/User"}
        }
      },
      "Money": {"type": "string", "pattern": "^[0-9]+\\.[0-9]{2}$"},
      "Error": {"type": "object", "properties": {"message": {"type": "string"}}},
      "Unused": {"type": "boolean"}
    },
    "parameters": {
      "TraceID": {"name": "X-Trace-ID", "in": "header", "schema": {"type": "string"}},
      "UserID": {"name": "id", "in": "path", "required": true, "schema": {"type": "integer"}}
    },
    "responses": {
      "UserList": {
        "description": "A page of users",
        "headers": {"X-Rate-Limit": {"$ref": "#/components/headers/RateLimit"}},
        "content": {
          "application/json": {
            "schema": {"type": "array", "items": {"$ref": "#/components/schemas/User"}}
          }
        }
      },
      "NotFound": {
        "description": "Not found",
        "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Error"}}}
      }
    },
    "requestBodies": {
      "NewUser": {
        "content": {
          "application/json": {
            "schema": {"$ref": "#/components/schemas/User"},
            "examples": {"basic": {"$ref": "#/components/examples/NewUserExample"}}
          }
        }
      }
    },
    "securitySchemes": {
      "bearer": {"type": "http", "scheme": "bearer"}
    },
    "headers": {
      "RateLimit": {"schema": {"type": "integer"}}
    },
    "examples": {
      "NewUserExample": {"value": {"name": "Ada"}}
    },
    "links": {
      "GetUser": {"operationId": "getUser"}
    },
    "callbacks": {
      "UserCreated": {
        "{$request.body#/callbackUrl}": {
          "post": {"requestBody": {"$ref": "#/components/requestBodies/NewUser"}, "responses": {"200": {"description": "OK"}}}
        }
      }
    }
  }
}`

// CyclicAPI contains mutually referencing schemas A and B, a self-referencing
// Node, and a dangling reference to Missing.
const CyclicAPI = `{
  "openapi": "3.1.0",
  "info": {"title": "Cycles", "version": "1"},
  "paths": {
    "/a": {
      "get": {
        "responses": {
          "200": {
            "description": "OK",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/A"}}}
          }
        }
      }
    },
    "/tree": {
      "get": {
        "responses": {
          "200": {
            "description": "OK",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Node"}}}
          }
        }
      }
    },
    "/dangling": {
      "get": {
        "responses": {
          "200": {
            "description": "OK",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Missing"}}}
          }
        }
      }
    }
  },
  "components": {
    "schemas": {
      "A": {"type": "object", "properties": {"b": {"$ref": "#/components/schemas/B"}}},
      "B": {"type": "object", "properties": {"a": {"$ref": "#/components/schemas/A"}}},
      "Node": {
        "type": "object",
        "properties": {"children": {"type": "array", "items": {"$ref": "#/components/schemas/Node"}}}
      }
    }
  }
}`

// SwaggerAPI is a Swagger 2.0 document whose refs use #/definitions and
// external files, neither of which is followed.
const SwaggerAPI = `{
  "swagger": "2.0",
  "info": {"title": "Pets", "version": "1.0"},
  "host": "pets.example.com",
  "tags": [{"name": "pets"}],
  "paths": {
    "/pets": {
      "get": {
        "operationId": "listPets",
        "tags": ["pets"],
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/Pet"}},
          "default": {"description": "Error", "schema": {"$ref": "external.json#/Foo"}}
        }
      }
    }
  },
  "definitions": {
    "Pet": {"type": "object"}
  }
}`

// PetstoreYAML is a small YAML document with anchors and integer status keys.
const PetstoreYAML = `openapi: 3.0.0
info:
  title: Petstore
  version: 1.0.0
tags:
  - name: pets
paths:
  /pets/{petId}:
    get:
      operationId: showPetById
      tags: [pets]
      responses:
        200:
          description: A pet
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
        default: &err
          description: Unexpected error
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Error'
    delete:
      operationId: deletePet
      tags: [pets]
      responses:
        default: *err
  /pets:
    get:
      operationId: listPets
      responses:
        200:
          description: OK
components:
  schemas:
    Pet:
      type: object
      required: [id]
      properties:
        id: {type: integer, format: int64}
    Error:
      type: object
      properties:
        code: {type: integer}
`

// MustDecode decodes a JSON or YAML fixture into an object, failing the
// test on error.
func MustDecode(t testing.TB, src string) *jsonvalue.Object {
	t.Helper()

	var (
		v   jsonvalue.Value
		err error
	)
	if len(src) > 0 && src[0] == '{' {
		v, err = jsonvalue.DecodeJSON([]byte(src))
	} else {
		v, err = jsonvalue.DecodeYAML([]byte(src))
	}
	if err != nil {
		t.Fatalf("Failed to decode fixture: %v", err)
	}
	obj, ok := jsonvalue.AsObject(v)
	if !ok {
		t.Fatalf("Fixture is a %s, not an object", v.Kind())
	}
	return obj
}

// WriteTempFile writes content to name inside a fresh temporary directory
// and returns the file path.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempFile(t testing.TB, name, content string) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return tmpFile
}
