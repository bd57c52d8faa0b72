package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/companion-api/internal/domain/catalog"
	"github.com/janhq/companion-api/internal/domain/companion"
	"github.com/janhq/companion-api/internal/domain/identity"
)

type MockCompanionLister struct {
	ListFn func(ctx context.Context, caller *identity.Identity, params companion.ListParams) ([]*companion.Companion, error)
}

func (m *MockCompanionLister) List(ctx context.Context, caller *identity.Identity, params companion.ListParams) ([]*companion.Companion, error) {
	return m.ListFn(ctx, caller, params)
}

type MockSessionLister struct {
	RecentFn func(ctx context.Context, limit int) ([]*companion.Companion, error)
}

func (m *MockSessionLister) Recent(ctx context.Context, limit int) ([]*companion.Companion, error) {
	return m.RecentFn(ctx, limit)
}

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		SubjectColors: map[string]string{"science": "#111111"},
		Popular: []catalog.Starter{
			{ID: "s1", Name: "Neura", Subject: "science"},
			{ID: "s2", Name: "Countsy", Subject: "maths"},
			{ID: "s3", Name: "Verba", Subject: "language"},
			{ID: "s4", Name: "Codey", Subject: "coding"},
		},
	}
}

func TestFillers(t *testing.T) {
	tests := []struct {
		name  string
		owned []string
		want  []string
	}{
		{"no companions", nil, []string{"s1", "s2", "s3"}},
		{"one owned", []string{"Mine"}, []string{"s1", "s2"}},
		{"skips duplicate names", []string{"Neura", "Countsy"}, []string{"s3"}},
		{"full", []string{"a", "b", "c"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owned := make([]*companion.Companion, 0, len(tt.owned))
			for _, name := range tt.owned {
				owned = append(owned, &companion.Companion{Name: name})
			}

			fillers := Fillers(owned, testCatalog())

			var ids []string
			for _, f := range fillers {
				assert.True(t, f.Starter)
				ids = append(ids, f.ID)
			}
			assert.Equal(t, tt.want, ids)
			assert.LessOrEqual(t, len(owned)+len(fillers), FeaturedCount)
		})
	}
}

func TestBuild(t *testing.T) {
	var gotParams companion.ListParams
	var gotLimit int
	svc := NewService(
		&MockCompanionLister{ListFn: func(_ context.Context, _ *identity.Identity, params companion.ListParams) ([]*companion.Companion, error) {
			gotParams = params
			return []*companion.Companion{{ID: "c1", Name: "Neura", Subject: "science"}}, nil
		}},
		&MockSessionLister{RecentFn: func(_ context.Context, limit int) ([]*companion.Companion, error) {
			gotLimit = limit
			return []*companion.Companion{{ID: "c9"}}, nil
		}},
		testCatalog(),
	)

	dash, err := svc.Build(context.Background(), &identity.Identity{UserID: "user_1"})
	require.NoError(t, err)

	assert.Equal(t, FeaturedCount, gotParams.Limit)
	assert.Equal(t, RecentSessionCount, gotLimit)
	require.Len(t, dash.Companions, 3)
	assert.False(t, dash.Companions[0].Starter)
	assert.Equal(t, "#111111", dash.Companions[0].Color)
	assert.Equal(t, "s2", dash.Companions[1].ID)
	assert.Equal(t, "s3", dash.Companions[2].ID)
	assert.Len(t, dash.RecentSessions, 1)
}

func TestBuild_PropagatesErrors(t *testing.T) {
	svc := NewService(
		&MockCompanionLister{ListFn: func(context.Context, *identity.Identity, companion.ListParams) ([]*companion.Companion, error) {
			return nil, identity.ErrAuthRequired
		}},
		&MockSessionLister{RecentFn: func(context.Context, int) ([]*companion.Companion, error) {
			return nil, errors.New("unreachable")
		}},
		testCatalog(),
	)

	_, err := svc.Build(context.Background(), nil)
	assert.ErrorIs(t, err, identity.ErrAuthRequired)
}
