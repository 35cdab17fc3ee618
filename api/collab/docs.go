// Package collab holds the generated OpenAPI document served under /swagger/.
// Regenerate with: swag init -g internal/collab/http/router.go -o api/collab
package collab

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {
			"name": "AussieBroadWAN Team",
			"url": "https://github.com/aussiebroadwan/innosync"
		},
		"license": {
			"name": "MIT",
			"url": "https://opensource.org/licenses/MIT"
		},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/v1/auth/signup": {
			"post": {
				"tags": [
					"Auth"
				],
				"summary": "Create account",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/collabsdk.TokenResponse"
						}
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					},
					"409": {
						"description": "Email already registered",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/collabsdk.SignupRequest"
						}
					}
				]
			}
		},
		"/v1/auth/login": {
			"post": {
				"tags": [
					"Auth"
				],
				"summary": "Log in",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/collabsdk.TokenResponse"
						}
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					},
					"401": {
						"description": "Invalid credentials",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/collabsdk.LoginRequest"
						}
					}
				]
			}
		},
		"/v1/auth/refresh": {
			"post": {
				"tags": [
					"Auth"
				],
				"summary": "Refresh tokens",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/collabsdk.TokenResponse"
						}
					},
					"401": {
						"description": "Invalid refresh token",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/collabsdk.RefreshRequest"
						}
					}
				]
			}
		},
		"/v1/auth/logout": {
			"post": {
				"tags": [
					"Auth"
				],
				"summary": "Log out",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/collabsdk.EmptyResponse"
						}
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/collabsdk.RefreshRequest"
						}
					}
				]
			}
		},
		"/v1/auth/logout-all": {
			"post": {
				"tags": [
					"Auth"
				],
				"summary": "Log out everywhere",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/collabsdk.EmptyResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/v1/users/me": {
			"get": {
				"tags": [
					"Auth"
				],
				"summary": "Current user",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/collabsdk.UserResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/v1/users/me/teams": {
			"get": {
				"tags": [
					"Projects"
				],
				"summary": "My teams",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/collabsdk.TeamMemberResponse"
							}
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/v1/projects": {
			"post": {
				"tags": [
					"Projects"
				],
				"summary": "Create project",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/collabsdk.ProjectResponse"
						}
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/collabsdk.CreateProjectRequest"
						}
					}
				]
			}
		},
		"/v1/projects/{id}/roles": {
			"post": {
				"tags": [
					"Projects"
				],
				"summary": "Add role",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/collabsdk.RoleResponse"
						}
					},
					"400": {
						"description": "Invalid request",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					},
					"403": {
						"description": "Caller does not own the project",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					},
					"404": {
						"description": "Project not found",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/collabsdk.CreateRoleRequest"
						}
					},
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Project ID"
					}
				]
			},
			"get": {
				"tags": [
					"Projects"
				],
				"summary": "List roles",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/collabsdk.RoleResponse"
							}
						}
					},
					"404": {
						"description": "Project not found",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Project ID"
					}
				]
			}
		},
		"/v1/projects/{id}/team": {
			"get": {
				"tags": [
					"Projects"
				],
				"summary": "List team",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/collabsdk.TeamMemberResponse"
							}
						}
					},
					"404": {
						"description": "Project not found",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Project ID"
					}
				]
			}
		},
		"/v1/invitations": {
			"post": {
				"tags": [
					"Invitations"
				],
				"summary": "Send invitation",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/collabsdk.InvitationResponse"
						}
					},
					"400": {
						"description": "Missing identifiers",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					},
					"403": {
						"description": "Caller does not own the project",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					},
					"404": {
						"description": "Role or user not found",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					},
					"409": {
						"description": "Open invitation already exists",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/collabsdk.InvitationRequest"
						}
					}
				]
			}
		},
		"/v1/invitations/{id}/respond": {
			"patch": {
				"tags": [
					"Invitations"
				],
				"summary": "Respond to invitation",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/collabsdk.InvitationResponse"
						}
					},
					"400": {
						"description": "Unsupported response",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					},
					"403": {
						"description": "Caller is not the recipient",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					},
					"404": {
						"description": "Invitation not found",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					},
					"409": {
						"description": "Already responded",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Invitation ID"
					},
					{
						"type": "string",
						"name": "response",
						"in": "query",
						"required": true,
						"description": "ACCEPTED or DECLINED",
						"enum": [
							"ACCEPTED",
							"DECLINED"
						]
					}
				]
			}
		},
		"/v1/invitations/{id}/revoke": {
			"post": {
				"tags": [
					"Invitations"
				],
				"summary": "Revoke invitation",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/collabsdk.InvitationResponse"
						}
					},
					"403": {
						"description": "Caller is not the sender",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					},
					"404": {
						"description": "Invitation not found",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					},
					"409": {
						"description": "Invitation no longer open",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Invitation ID"
					}
				]
			}
		},
		"/v1/invitations/sent": {
			"get": {
				"tags": [
					"Invitations"
				],
				"summary": "Sent invitations",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/collabsdk.InvitationResponse"
							}
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/v1/invitations/received": {
			"get": {
				"tags": [
					"Invitations"
				],
				"summary": "Received invitations",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/collabsdk.InvitationResponse"
							}
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/v1/applications": {
			"get": {
				"tags": [
					"Applications"
				],
				"summary": "My applications",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/collabsdk.ApplicationResponse"
							}
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/v1/applications/project-roles/{roleId}": {
			"post": {
				"tags": [
					"Applications"
				],
				"summary": "Apply to role",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/collabsdk.ApplicationResponse"
						}
					},
					"404": {
						"description": "Role or user not found",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					},
					"409": {
						"description": "Already applied",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "roleId",
						"in": "path",
						"required": true,
						"description": "Project role ID"
					}
				]
			},
			"get": {
				"tags": [
					"Applications"
				],
				"summary": "Role applications",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/collabsdk.ApplicationResponse"
							}
						}
					},
					"403": {
						"description": "Caller does not own the project",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					},
					"404": {
						"description": "Role not found",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "roleId",
						"in": "path",
						"required": true,
						"description": "Project role ID"
					}
				]
			}
		},
		"/v1/applications/{id}/status": {
			"patch": {
				"tags": [
					"Applications"
				],
				"summary": "Decide application",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/collabsdk.ApplicationResponse"
						}
					},
					"400": {
						"description": "Unsupported status",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					},
					"403": {
						"description": "Caller does not own the project",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					},
					"404": {
						"description": "Application not found",
						"schema": {
							"$ref": "#/definitions/collabsdk.ErrorResponse"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Application ID"
					},
					{
						"type": "string",
						"name": "status",
						"in": "query",
						"required": true,
						"description": "ACCEPTED or REJECTED",
						"enum": [
							"ACCEPTED",
							"REJECTED"
						]
					}
				]
			}
		},
		"/livez": {
			"get": {
				"tags": [
					"Health"
				],
				"summary": "Liveness probe",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/collabsdk.HealthResponse"
						}
					}
				}
			}
		},
		"/readyz": {
			"get": {
				"tags": [
					"Health"
				],
				"summary": "Readiness probe",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/collabsdk.HealthResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"collabsdk.ErrorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				},
				"error_description": {
					"type": "string"
				}
			}
		},
		"collabsdk.EmptyResponse": {
			"type": "object",
			"properties": {}
		},
		"collabsdk.SignupRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				},
				"full_name": {
					"type": "string"
				}
			},
			"required": [
				"email",
				"password"
			]
		},
		"collabsdk.LoginRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			},
			"required": [
				"email",
				"password"
			]
		},
		"collabsdk.RefreshRequest": {
			"type": "object",
			"properties": {
				"refresh_token": {
					"type": "string"
				}
			},
			"required": [
				"refresh_token"
			]
		},
		"collabsdk.TokenResponse": {
			"type": "object",
			"properties": {
				"access_token": {
					"type": "string"
				},
				"refresh_token": {
					"type": "string"
				},
				"token_type": {
					"type": "string"
				},
				"expires_in": {
					"type": "integer"
				}
			}
		},
		"collabsdk.UserResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"full_name": {
					"type": "string"
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"collabsdk.CreateProjectRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				}
			},
			"required": [
				"title"
			]
		},
		"collabsdk.ProjectResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"title": {
					"type": "string"
				},
				"owner_id": {
					"type": "string"
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"collabsdk.CreateRoleRequest": {
			"type": "object",
			"properties": {
				"role_name": {
					"type": "string"
				},
				"expertise_level": {
					"type": "string",
					"enum": [
						"ENTRY",
						"JUNIOR",
						"MIDDLE",
						"SENIOR",
						"LEAD"
					]
				},
				"technologies": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			},
			"required": [
				"role_name",
				"expertise_level"
			]
		},
		"collabsdk.RoleResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"project_id": {
					"type": "string"
				},
				"project_title": {
					"type": "string"
				},
				"owner_email": {
					"type": "string"
				},
				"role_name": {
					"type": "string"
				},
				"expertise_level": {
					"type": "string"
				},
				"technologies": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"collabsdk.TeamMemberResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"project_id": {
					"type": "string"
				},
				"project_role_id": {
					"type": "string"
				},
				"role_name": {
					"type": "string"
				},
				"user_id": {
					"type": "string"
				},
				"user_email": {
					"type": "string"
				},
				"joined_at": {
					"type": "string",
					"format": "date-time"
				},
				"joined_via": {
					"type": "string"
				}
			}
		},
		"collabsdk.InvitationRequest": {
			"type": "object",
			"properties": {
				"project_role_id": {
					"type": "string"
				},
				"recipient_id": {
					"type": "string"
				}
			},
			"required": [
				"project_role_id",
				"recipient_id"
			]
		},
		"collabsdk.InvitationResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"project_role_id": {
					"type": "string"
				},
				"project_id": {
					"type": "string"
				},
				"role_name": {
					"type": "string"
				},
				"sender_id": {
					"type": "string"
				},
				"sender_email": {
					"type": "string"
				},
				"recipient_id": {
					"type": "string"
				},
				"recipient_email": {
					"type": "string"
				},
				"status": {
					"type": "string"
				},
				"sent_at": {
					"type": "string",
					"format": "date-time"
				},
				"responded_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"collabsdk.ApplicationResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"user_id": {
					"type": "string"
				},
				"user_email": {
					"type": "string"
				},
				"project_role_id": {
					"type": "string"
				},
				"project_id": {
					"type": "string"
				},
				"role_name": {
					"type": "string"
				},
				"status": {
					"type": "string"
				},
				"applied_at": {
					"type": "string",
					"format": "date-time"
				},
				"updated_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"collabsdk.HealthChecks": {
			"type": "object",
			"properties": {
				"database": {
					"type": "string"
				},
				"signer": {
					"type": "string"
				}
			}
		},
		"collabsdk.HealthResponse": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string"
				},
				"uptime": {
					"type": "string"
				},
				"version": {
					"type": "string"
				},
				"checks": {
					"$ref": "#/definitions/collabsdk.HealthChecks"
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"description": "JWT access token. Format: \"Bearer {token}\".",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "InnoSync Collaboration API",
	Description:      "Accounts, sessions, projects and the invitation and application workflows\nthat staff project roles.\n\nAccess tokens are HS256 JWTs. Refresh tokens are opaque and stored only as fingerprints.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
