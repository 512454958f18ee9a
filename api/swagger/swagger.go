package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "DMIHER Complaint Portal API",
        "description": "Complaint management portal for students and faculty",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Unified student/faculty login"},
        {"name": "Students", "description": "Student registration and roster"},
        {"name": "Complaints", "description": "Complaint submission and review"}
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Unified login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid email format or payload"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/student/register": {
            "post": {
                "tags": ["Students"],
                "summary": "Register a student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid email format or payload"},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students grouped by course",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized"},
                    "403": {"description": "Faculty access required"}
                }
            }
        },
        "/complaints": {
            "get": {
                "tags": ["Complaints"],
                "summary": "List complaints",
                "parameters": [
                    {"name": "student_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Complaints"],
                "summary": "Submit a complaint",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitComplaintRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload or attachment"}
                }
            }
        },
        "/complaints/{id}": {
            "put": {
                "tags": ["Complaints"],
                "summary": "Respond to a complaint",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RespondRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Complaint not found"}
                }
            },
            "delete": {
                "tags": ["Complaints"],
                "summary": "Delete a complaint",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/complaints/export": {
            "get": {
                "tags": ["Complaints"],
                "summary": "Export the complaint register",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "CSV or PDF file"},
                    "400": {"description": "Unsupported format"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string", "example": "sc2024sa00087@dmiher.edu.in"},
                "password": {"type": "string"}
            }
        },
        "RegisterStudentRequest": {
            "type": "object",
            "required": ["name", "email", "password", "course"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string", "example": "sc2024sa00099@dmiher.edu.in"},
                "password": {"type": "string"},
                "course": {"type": "string", "enum": ["bca", "bba", "mca", "bsc_aids"]},
                "year": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "SubmitComplaintRequest": {
            "type": "object",
            "required": ["studentId", "studentName", "studentEmail", "department", "complaintType", "subject", "description"],
            "properties": {
                "studentId": {"type": "string", "example": "BCA2023001"},
                "studentName": {"type": "string"},
                "studentEmail": {"type": "string"},
                "department": {"type": "string"},
                "year": {"type": "string"},
                "complaintType": {"type": "string"},
                "subject": {"type": "string"},
                "description": {"type": "string"},
                "attachment": {"$ref": "#/definitions/Attachment"}
            }
        },
        "RespondRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "Resolved"},
                "facultyResponse": {"type": "string"}
            }
        },
        "Attachment": {
            "type": "object",
            "required": ["filename", "mimetype", "data", "size"],
            "properties": {
                "filename": {"type": "string"},
                "mimetype": {"type": "string", "enum": ["image/png", "image/jpeg", "image/jpg", "application/pdf"]},
                "data": {"type": "string", "format": "base64"},
                "size": {"type": "integer"}
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
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
