// Package docs registra en swag la especificación OpenAPI que sirve /api-docs.
// Mantener en sync con las anotaciones godoc de los handlers (swag init -g cmd/api/main.go).
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
        "/login": {
            "post": {
                "description": "Si el nombre no existe crea el héroe con esa contraseña. Devuelve un JWT válido por 2 horas.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login de héroe",
                "parameters": [
                    {"description": "Credenciales", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/heroes.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/heroes.loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/heroes.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/heroes.errorResponse"}}
                }
            }
        },
        "/heroes": {
            "get": {
                "description": "Con include=pets cada héroe trae sus mascotas adoptadas.",
                "produces": ["application/json"],
                "tags": ["heroes"],
                "summary": "Listar héroes",
                "parameters": [
                    {"type": "string", "description": "pets", "name": "include", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/heroes.Response"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["heroes"],
                "summary": "Crear héroe",
                "parameters": [
                    {"description": "name y alias son requeridos", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/heroes.createHeroRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/heroes.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/heroes.errorResponse"}}
                }
            }
        },
        "/heroes/{heroID}": {
            "put": {
                "description": "Merge parcial de name, alias, city y team.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["heroes"],
                "summary": "Actualizar héroe",
                "parameters": [
                    {"type": "integer", "description": "ID del héroe", "name": "heroID", "in": "path", "required": true},
                    {"description": "Campos a modificar", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/heroes.createHeroRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/heroes.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/heroes.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/heroes.errorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["heroes"],
                "summary": "Eliminar héroe",
                "parameters": [
                    {"type": "integer", "description": "ID del héroe", "name": "heroID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/heroes.messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/heroes.errorResponse"}}
                }
            }
        },
        "/heroes/city/{city}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["heroes"],
                "summary": "Héroes por ciudad",
                "parameters": [
                    {"type": "string", "description": "Ciudad (sin distinguir mayúsculas)", "name": "city", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/heroes.Response"}}}
                }
            }
        },
        "/heroes/{heroID}/enfrentar": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["heroes"],
                "summary": "Enfrentar a un villano",
                "parameters": [
                    {"type": "integer", "description": "ID del héroe", "name": "heroID", "in": "path", "required": true},
                    {"description": "Villano", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/heroes.faceVillainRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/heroes.messageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/heroes.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/heroes.errorResponse"}}
                }
            }
        },
        "/pets": {
            "get": {
                "description": "Devuelve todas las mascotas. adopted=false filtra las disponibles para adopción.",
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Listar mascotas",
                "parameters": [
                    {"type": "boolean", "description": "Filtrar por estado de adopción", "name": "adopted", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/pets.Response"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/pets.errorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Crear mascota",
                "parameters": [
                    {"description": "Datos de la mascota", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pets.createPetRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/pets.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/pets.errorResponse"}}
                }
            }
        },
        "/pets/{petID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Obtener mascota",
                "parameters": [
                    {"type": "integer", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/pets.errorResponse"}}
                }
            }
        },
        "/pets/by-owner/{name}": {
            "get": {
                "description": "Busca el héroe por nombre (el de menor id si hay varios) y devuelve sus mascotas.",
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Mascotas de un héroe",
                "parameters": [
                    {"type": "string", "description": "Nombre del héroe", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/pets.Response"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/pets.errorResponse"}}
                }
            }
        },
        "/pets/{petID}/items": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Agregar item",
                "parameters": [
                    {"type": "integer", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true},
                    {"description": "Item", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pets.addItemRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/pets.errorResponse"}}
                }
            }
        },
        "/pets/{petID}/adopt": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "El dueño es el héroe del token. Una mascota se adopta una sola vez.",
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Adoptar mascota",
                "parameters": [
                    {"type": "integer", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/pets.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/pets.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/pets.errorResponse"}}
                }
            }
        },
        "/pets/{petID}/{activity}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Jugar, dormir, alimentar o curar. Solo el dueño puede hacerlo. Alimentar con hambre en 0 enferma a la mascota y responde 400 con la mascota ya enferma.",
                "produces": ["application/json"],
                "tags": ["activities"],
                "summary": "Actividad sobre una mascota",
                "parameters": [
                    {"type": "integer", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true},
                    {"enum": ["play", "sleep", "feed", "cure"], "type": "string", "description": "Actividad", "name": "activity", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.activityResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/pets.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/pets.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/pets.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/pets.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "heroes.Response": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "alias": {"type": "string"},
                "city": {"type": "string"},
                "team": {"type": "string"}
            }
        },
        "heroes.createHeroRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "alias": {"type": "string"},
                "city": {"type": "string"},
                "team": {"type": "string"}
            }
        },
        "heroes.faceVillainRequest": {
            "type": "object",
            "properties": {"villain": {"type": "string"}}
        },
        "heroes.loginRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "heroes.loginResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}}
        },
        "heroes.messageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "heroes.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "pets.ActivityEntry": {
            "type": "object",
            "properties": {
                "tipo": {"type": "string", "enum": ["jugar", "dormir", "alimentar", "curar"]},
                "fecha": {"type": "string", "format": "date-time"},
                "felicidadAumentada": {"type": "integer"},
                "energiaConsumida": {"type": "integer"},
                "energiaAumentada": {"type": "integer"},
                "hambreReducida": {"type": "integer"},
                "resultado": {"type": "string"}
            }
        },
        "pets.Item": {
            "type": "object",
            "properties": {"name": {"type": "string"}}
        },
        "pets.Response": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "type": {"type": "string"},
                "superPower": {"type": "string"},
                "ownerId": {"type": "string", "x-nullable": true},
                "felicidad": {"type": "integer"},
                "hambre": {"type": "integer"},
                "energia": {"type": "integer"},
                "limpieza": {"type": "integer"},
                "salud": {"type": "string", "enum": ["sano", "enfermo"]},
                "actividades": {"type": "array", "items": {"$ref": "#/definitions/pets.ActivityEntry"}},
                "items": {"type": "array", "items": {"$ref": "#/definitions/pets.Item"}},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "pets.createPetRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "type": {"type": "string"},
                "superPower": {"type": "string"}
            }
        },
        "pets.addItemRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}}
        },
        "pets.activityResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "pet": {"$ref": "#/definitions/pets.Response"}
            }
        },
        "pets.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "pet": {"$ref": "#/definitions/pets.Response"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Bearer <token> obtenido en /login",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Superhero Pets API",
	Description:      "API de superhéroes y mascotas virtuales: login, adopción y actividades de cuidado.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
