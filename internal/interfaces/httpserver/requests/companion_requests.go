package requests

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/janhq/companion-api/internal/domain/companion"
)

const MaxListLimit = 100

// ListCompanionsQuery is the filter and paging of a companion listing.
type ListCompanionsQuery struct {
	Subject string `form:"subject"`
	Topic   string `form:"topic"`
	Page    int    `form:"page"`
	Limit   int    `form:"limit" binding:"max=100"`
}

func (q ListCompanionsQuery) ToParams() companion.ListParams {
	return companion.ListParams{
		Subject: q.Subject,
		Topic:   q.Topic,
		Page:    q.Page,
		Limit:   q.Limit,
	}
}

// CreateCompanionRequest is the body of POST /v1/companions.
type CreateCompanionRequest struct {
	Name       string `json:"name" binding:"required,max=255"`
	Subject    string `json:"subject" binding:"required,subject"`
	Topic      string `json:"topic" binding:"required"`
	Voice      string `json:"voice" binding:"omitempty,oneof=male female"`
	Style      string `json:"style" binding:"omitempty,oneof=casual formal"`
	Duration   int    `json:"duration" binding:"required,min=1,max=240"`
	Bookmarked bool   `json:"bookmarked"`
}

func (r CreateCompanionRequest) ToInput() companion.CreateInput {
	return companion.CreateInput{
		Name:       r.Name,
		Subject:    r.Subject,
		Topic:      r.Topic,
		Voice:      r.Voice,
		Style:      r.Style,
		Duration:   r.Duration,
		Bookmarked: r.Bookmarked,
	}
}

// TemplateCompanionRequest is the body of POST /v1/companions/templates. Voice and style are
// derived from the subject.
type TemplateCompanionRequest struct {
	Name       string `json:"name" form:"name" binding:"required,max=255"`
	Subject    string `json:"subject" form:"subject" binding:"required"`
	Topic      string `json:"topic" form:"topic" binding:"required"`
	Duration   int    `json:"duration" form:"duration" binding:"required,min=1,max=240"`
	Bookmarked bool   `json:"bookmarked" form:"bookmarked"`
}

func (r TemplateCompanionRequest) ToInput() companion.TemplateInput {
	return companion.TemplateInput{
		Name:       r.Name,
		Subject:    r.Subject,
		Topic:      r.Topic,
		Duration:   r.Duration,
		Bookmarked: r.Bookmarked,
	}
}

// LimitQuery is the optional ?limit= of session listings.
type LimitQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// BookmarkQuery names the view to refresh after a bookmark write.
type BookmarkQuery struct {
	Path string `form:"path" binding:"omitempty,startswith=/"`
}

var (
	registerOnce sync.Once
	registerErr  error
)

var rules = map[string]validator.Func{
	"subject": func(fl validator.FieldLevel) bool {
		return companion.IsSubject(fl.Field().String())
	},
}

// RegisterValidators installs the custom binding rules on gin's validator.
func RegisterValidators() error {
	registerOnce.Do(func() {
		engine := binding.Validator.Engine()
		v, ok := engine.(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unsupported validator engine %T", engine)
			return
		}
		registerErr = registerRules(v, rules)
	})
	return registerErr
}

func registerRules(v *validator.Validate, rules map[string]validator.Func) error {
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %q validation: %w", tag, err)
		}
	}
	return nil
}
