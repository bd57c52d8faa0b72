package companion

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/companion-api/internal/domain/identity"
)

func TestDeriveVoiceStyle(t *testing.T) {
	tests := []struct {
		subject string
		voice   string
		style   string
	}{
		{"science", VoiceFemale, StyleCasual},
		{"history", VoiceMale, StyleFormal},
		{"geography", VoiceMale, StyleCasual},
		{"Science", VoiceMale, StyleCasual},
		{"", VoiceMale, StyleCasual},
	}

	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			voice, style := DeriveVoiceStyle(tt.subject)
			assert.Equal(t, tt.voice, voice)
			assert.Equal(t, tt.style, style)
		})
	}
}

func TestCreateFromTemplate_SkipsEntitlementCheck(t *testing.T) {
	var stored *Companion
	repo := &MockRepository{
		CountByAuthorFn: func(context.Context, string) (int64, error) {
			t.Fatal("template creation must not count owned companions")
			return 0, nil
		},
		CreateFn: func(_ context.Context, c *Companion) error {
			stored = c
			return nil
		},
	}
	views := &recordingInvalidator{}
	svc := NewService(repo, views, zerolog.Nop())

	caller := &identity.Identity{UserID: "user_1"}
	created, err := svc.CreateFromTemplate(context.Background(), caller, TemplateInput{
		Name:     "Neura",
		Subject:  "science",
		Topic:    "The nervous system",
		Duration: 45,
	})
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.Equal(t, stored, created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "user_1", created.Author)
	assert.Equal(t, VoiceFemale, created.Voice)
	assert.Equal(t, StyleCasual, created.Style)
	assert.False(t, created.Bookmarked)
	assert.Equal(t, "/v1/companions/"+created.ID, DetailPath(created.ID))
	assert.Equal(t, []string{ViewDashboard, ViewLibrary}, views.paths)
}

func TestCreateFromTemplate_RequiresAuth(t *testing.T) {
	svc := NewService(&MockRepository{}, nil, zerolog.Nop())

	_, err := svc.CreateFromTemplate(context.Background(), nil, TemplateInput{Name: "x", Subject: "maths"})
	assert.ErrorIs(t, err, identity.ErrAuthRequired)
}
