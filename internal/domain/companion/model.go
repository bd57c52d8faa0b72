package companion

import (
	"strings"
	"time"
)

// Companion is a tutoring session profile owned by one author.
type Companion struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Subject  string `json:"subject"`
	Topic    string `json:"topic"`
	Voice    string `json:"voice"`
	Style    string `json:"style"`
	Duration int    `json:"duration"`
	// Bookmarked is shared by every viewer of the companion. It mirrors the existence of a
	// bookmark row only while a single viewer bookmarks a given companion.
	Bookmarked bool      `json:"bookmarked"`
	Author     string    `json:"author"`
	CreatedAt  time.Time `json:"created_at"`
}

// Subjects accepted on creation.
var Subjects = []string{
	"maths",
	"language",
	"science",
	"history",
	"coding",
	"geography",
	"economics",
	"finance",
	"business",
}

// IsSubject reports whether value names a known subject.
func IsSubject(value string) bool {
	for _, s := range Subjects {
		if s == value {
			return true
		}
	}
	return false
}

// CreateInput carries the fields of an explicitly created companion.
type CreateInput struct {
	Name       string
	Subject    string
	Topic      string
	Voice      string
	Style      string
	Duration   int
	Bookmarked bool
}

func (in CreateInput) normalized() CreateInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Topic = strings.TrimSpace(in.Topic)
	return in
}

// DetailPath is the navigation target of a single companion.
func DetailPath(id string) string {
	return "/v1/companions/" + id
}

// View paths whose cached renderings depend on companion data.
const (
	ViewDashboard = "/"
	ViewLibrary   = "/companions"
)
