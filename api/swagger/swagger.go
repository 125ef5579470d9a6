package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {"title": "Academy Backoffice API", "description": "Scheduling, coach payroll and location operations for a martial arts academy", "version": "1.0.0"},
    "basePath": "/api/v1",
    "schemes": ["http", "https"],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Payroll", "description": "Computed coach pay and exports"},
        {"name": "Schedule", "description": "Weekly class schedule"},
        {"name": "Memberships", "description": "Membership CSV analytics"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "401": {
                        "description": "Invalid credentials",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Get current user",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/system/metrics": {
            "get": {
                "tags": ["System"],
                "summary": "Process counters snapshot",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/locations": {
            "get": {
                "tags": ["Directory"],
                "summary": "List locations",
                "parameters": [
                    {"name": "includeInactive", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/coaches": {
            "get": {
                "tags": ["Directory"],
                "summary": "List coaches",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "includeInactive", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/templates": {
            "get": {
                "tags": ["Templates"],
                "summary": "List class templates",
                "parameters": [
                    {"name": "locationId", "in": "query", "type": "string"},
                    {"name": "discipline", "in": "query", "type": "string"},
                    {"name": "dayOfWeek", "in": "query", "type": "integer"},
                    {"name": "activeOnly", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "tags": ["Templates"],
                "summary": "Create class template",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/TemplateRequest"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/templates/bulk": {
            "post": {
                "tags": ["Templates"],
                "summary": "Create or update templates in one transaction",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/BulkTemplateRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/templates/{id}": {
            "get": {
                "tags": ["Templates"],
                "summary": "Get class template",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "put": {
                "tags": ["Templates"],
                "summary": "Update class template",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/TemplateRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "tags": ["Templates"],
                "summary": "Deactivate class template",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/schedule/week": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Weekly schedule",
                "parameters": [
                    {"name": "weekStart", "in": "query", "type": "string", "required": true},
                    {"name": "locationId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/schedule/clone": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Copy a week into the following week",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CloneWeekRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/assignments": {
            "post": {
                "tags": ["Assignments"],
                "summary": "Assign coach to class",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/AssignmentRequest"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/assignments/bulk": {
            "post": {
                "tags": ["Assignments"],
                "summary": "Assign coach across a date range",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/BulkAssignRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/assignments/{id}": {
            "put": {
                "tags": ["Assignments"],
                "summary": "Move assignment",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/AssignmentRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "tags": ["Assignments"],
                "summary": "Remove assignment",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/private-classes": {
            "get": {
                "tags": ["PrivateClasses"],
                "summary": "List private classes",
                "parameters": [
                    {"name": "coachId", "in": "query", "type": "string"},
                    {"name": "locationId", "in": "query", "type": "string"},
                    {"name": "startDate", "in": "query", "type": "string"},
                    {"name": "endDate", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "tags": ["PrivateClasses"],
                "summary": "Record private class",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/PrivateClassRequest"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/private-classes/suggest": {
            "get": {
                "tags": ["PrivateClasses"],
                "summary": "Suggested payout",
                "parameters": [
                    {"name": "coachId", "in": "query", "type": "string", "required": true},
                    {"name": "locationId", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/private-classes/{id}": {
            "put": {
                "tags": ["PrivateClasses"],
                "summary": "Update private class",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/PrivateClassRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "tags": ["PrivateClasses"],
                "summary": "Delete private class",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/rates/coaches/{id}": {
            "get": {
                "tags": ["Rates"],
                "summary": "Coach hourly rates",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "put": {
                "tags": ["Rates"],
                "summary": "Set coach hourly rates",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CoachRateRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/rates/private": {
            "get": {
                "tags": ["Rates"],
                "summary": "Private class rates",
                "parameters": [
                    {"name": "locationId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "put": {
                "tags": ["Rates"],
                "summary": "Set private class rate",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/PrivateRateRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/payroll/summary": {
            "get": {
                "tags": ["Payroll"],
                "summary": "Payroll summary by location",
                "parameters": [
                    {"name": "startDate", "in": "query", "type": "string", "required": true},
                    {"name": "endDate", "in": "query", "type": "string", "required": true},
                    {"name": "locationId", "in": "query", "type": "string"},
                    {
                        "name": "coachId",
                        "in": "query",
                        "type": "array",
                        "items": {"type": "string"},
                        "collectionFormat": "multi"
                    },
                    {
                        "name": "frequency",
                        "in": "query",
                        "type": "string",
                        "enum": ["weekly", "biweekly", "monthly"]
                    },
                    {
                        "name": "excludeRole",
                        "in": "query",
                        "type": "string",
                        "enum": ["coach", "manager", "front_desk"]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/payroll/detailed": {
            "get": {
                "tags": ["Payroll"],
                "summary": "Payroll detail per coach",
                "parameters": [
                    {"name": "startDate", "in": "query", "type": "string", "required": true},
                    {"name": "endDate", "in": "query", "type": "string", "required": true},
                    {"name": "locationId", "in": "query", "type": "string"},
                    {
                        "name": "coachId",
                        "in": "query",
                        "type": "array",
                        "items": {"type": "string"},
                        "collectionFormat": "multi"
                    },
                    {
                        "name": "frequency",
                        "in": "query",
                        "type": "string",
                        "enum": ["weekly", "biweekly", "monthly"]
                    },
                    {
                        "name": "excludeRole",
                        "in": "query",
                        "type": "string",
                        "enum": ["coach", "manager", "front_desk"]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/payroll/coaches/{id}/calendar": {
            "get": {
                "tags": ["Payroll"],
                "summary": "Monthly coach pay calendar",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "month", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/payroll/exports": {
            "post": {
                "tags": ["Payroll"],
                "summary": "Render payroll export",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/PayrollExportRequest"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/payroll/reconciliation": {
            "get": {
                "tags": ["Payroll"],
                "summary": "Owed versus paid per coach",
                "parameters": [
                    {"name": "startDate", "in": "query", "type": "string", "required": true},
                    {"name": "endDate", "in": "query", "type": "string", "required": true},
                    {"name": "locationId", "in": "query", "type": "string", "description": "Limit to coaches who worked at this location; owed stays full-period"},
                    {
                        "name": "coachId",
                        "in": "query",
                        "type": "array",
                        "items": {"type": "string"},
                        "collectionFormat": "multi"
                    },
                    {
                        "name": "frequency",
                        "in": "query",
                        "type": "string",
                        "enum": ["weekly", "biweekly", "monthly"]
                    },
                    {
                        "name": "excludeRole",
                        "in": "query",
                        "type": "string",
                        "enum": ["coach", "manager", "front_desk"]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/exports/{token}": {
            "get": {
                "tags": ["Payroll"],
                "summary": "Download export",
                "parameters": [
                    {"name": "token", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "410": {
                        "description": "Expired or invalid link",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                }
            }
        },
        "/payments": {
            "post": {
                "tags": ["Payments"],
                "summary": "Record payment",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/RecordPaymentRequest"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/payments/status": {
            "get": {
                "tags": ["Payments"],
                "summary": "Payment status for an exact period",
                "parameters": [
                    {"name": "coachId", "in": "query", "type": "string", "required": true},
                    {"name": "periodStart", "in": "query", "type": "string", "required": true},
                    {"name": "periodEnd", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/payments/{id}": {
            "delete": {
                "tags": ["Payments"],
                "summary": "Delete payment",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/memberships/imports": {
            "post": {
                "tags": ["Memberships"],
                "summary": "Upload membership CSV",
                "parameters": [
                    {"name": "locationId", "in": "formData", "type": "string", "required": true},
                    {"name": "file", "in": "formData", "type": "file", "required": true}
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "413": {
                        "description": "Upload too large",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/memberships/dashboard": {
            "get": {
                "tags": ["Memberships"],
                "summary": "Membership dashboard",
                "parameters": [
                    {"name": "locationId", "in": "query", "type": "string", "required": true},
                    {"name": "month", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/inventory/items": {
            "get": {
                "tags": ["Inventory"],
                "summary": "List inventory items",
                "parameters": [
                    {"name": "locationId", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "tags": ["Inventory"],
                "summary": "Create inventory item",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/InventoryItemRequest"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/inventory/items/{id}": {
            "put": {
                "tags": ["Inventory"],
                "summary": "Edit inventory item",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/InventoryItemUpdateRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "tags": ["Inventory"],
                "summary": "Retire inventory item",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/inventory/counts": {
            "post": {
                "tags": ["Inventory"],
                "summary": "Record stock counts",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/InventoryCountRequest"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/inventory/status": {
            "get": {
                "tags": ["Inventory"],
                "summary": "Latest count per item",
                "parameters": [
                    {"name": "locationId", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "TemplateRequest": {
            "type": "object",
            "properties": {
                "locationId": {"type": "string"},
                "discipline": {"type": "string"},
                "dayOfWeek": {"type": "integer"},
                "startTime": {"type": "string", "example": "18:00"},
                "endTime": {"type": "string", "example": "19:00"},
                "level": {"type": "string"},
                "active": {"type": "boolean"}
            },
            "required": ["locationId", "discipline", "dayOfWeek", "startTime", "endTime"]
        },
        "BulkTemplateRequest": {
            "type": "object",
            "properties": {
                "templates": {
                    "type": "array",
                    "items": {
                        "allOf": [
                            {"$ref": "#/definitions/TemplateRequest"},
                            {
                                "type": "object",
                                "properties": {
                                    "id": {"type": "string"}
                                }
                            }
                        ]
                    }
                }
            },
            "required": ["templates"]
        },
        "CloneWeekRequest": {
            "type": "object",
            "properties": {
                "sourceWeekStart": {"type": "string"},
                "targetWeekStart": {"type": "string"},
                "locationId": {"type": "string"}
            },
            "required": ["sourceWeekStart", "targetWeekStart"]
        },
        "AssignmentRequest": {
            "type": "object",
            "properties": {
                "coachId": {"type": "string"},
                "templateId": {"type": "string"},
                "classDate": {"type": "string"},
                "role": {
                    "type": "string",
                    "enum": ["head", "helper"]
                }
            },
            "required": ["coachId", "templateId", "classDate", "role"]
        },
        "BulkAssignRequest": {
            "type": "object",
            "properties": {
                "coachId": {"type": "string"},
                "role": {
                    "type": "string",
                    "enum": ["head", "helper"]
                },
                "locationId": {"type": "string"},
                "discipline": {"type": "string"},
                "dayOfWeek": {"type": "integer"},
                "from": {"type": "string"},
                "to": {"type": "string"}
            },
            "required": ["coachId", "role", "from", "to"]
        },
        "PrivateClassRequest": {
            "type": "object",
            "properties": {
                "coachId": {"type": "string"},
                "locationId": {"type": "string"},
                "studentLabel": {"type": "string"},
                "classDate": {"type": "string"},
                "classTime": {"type": "string"},
                "payout": {"type": "string", "example": "30.00"},
                "notes": {"type": "string"}
            },
            "required": ["coachId", "locationId", "studentLabel", "classDate"]
        },
        "CoachRateRequest": {
            "type": "object",
            "properties": {
                "headRate": {"type": "string", "example": "30.00"},
                "helperRate": {"type": "string", "example": "30.00"}
            }
        },
        "PrivateRateRequest": {
            "type": "object",
            "properties": {
                "coachId": {"type": "string"},
                "locationId": {"type": "string"},
                "baseRate": {"type": "string", "example": "30.00"},
                "discountPercent": {"type": "string", "example": "30.00"}
            },
            "required": ["coachId", "locationId"]
        },
        "PayrollExportRequest": {
            "type": "object",
            "properties": {
                "startDate": {"type": "string"},
                "endDate": {"type": "string"},
                "locationId": {"type": "string"},
                "coachIds": {
                    "type": "array",
                    "items": {"type": "string"}
                },
                "frequency": {"type": "string"},
                "excludeRole": {"type": "string"},
                "format": {
                    "type": "string",
                    "enum": ["csv", "pdf", "xlsx"]
                }
            },
            "required": ["startDate", "endDate", "format"]
        },
        "RecordPaymentRequest": {
            "type": "object",
            "properties": {
                "coachId": {"type": "string"},
                "periodStart": {"type": "string"},
                "periodEnd": {"type": "string"},
                "amount": {"type": "string", "example": "30.00"},
                "paidOn": {"type": "string"},
                "method": {
                    "type": "string",
                    "enum": ["cash", "bank_transfer", "check", "payroll_provider", "other"]
                },
                "notes": {"type": "string"}
            },
            "required": ["coachId", "periodStart", "periodEnd", "amount", "method"]
        },
        "InventoryItemRequest": {
            "type": "object",
            "properties": {
                "locationId": {"type": "string"},
                "name": {"type": "string"},
                "sku": {"type": "string"},
                "unit": {"type": "string"},
                "parLevel": {"type": "integer"}
            },
            "required": ["locationId", "name", "unit"]
        },
        "InventoryItemUpdateRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "sku": {"type": "string"},
                "unit": {"type": "string"},
                "parLevel": {"type": "integer"}
            },
            "required": ["name", "unit"]
        },
        "InventoryCountRequest": {
            "type": "object",
            "properties": {
                "countedOn": {"type": "string"},
                "counts": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "itemId": {"type": "string"},
                            "quantity": {"type": "integer"},
                            "notes": {"type": "string"}
                        },
                        "required": ["itemId"]
                    }
                }
            },
            "required": ["counts"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {return docTemplate}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
