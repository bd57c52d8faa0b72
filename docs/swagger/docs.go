// Package swagger provides API documentation
package swagger

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &struct {
	Version     string
	Host        string
	BasePath    string
	Schemes     []string
	Title       string
	Description string
}{
	Version:     "1.0",
	Host:        "",
	BasePath:    "/",
	Schemes:     []string{},
	Title:       "Companion API",
	Description: "Tutoring companion profiles: listing, bookmarking, templates and session history",
}

// Generated by 'swag init -g cmd/server/server.go -o docs/swagger'; this file is the
// checked-in stub until then.
