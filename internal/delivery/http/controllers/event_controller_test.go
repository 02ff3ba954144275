package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"organizaai/internal/delivery/http/helpers"
	"organizaai/internal/domain"
)

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	createErr error
	created   *domain.Event

	feed       []*domain.EventSummary
	feedErr    error
	lastViewer string
	lastFilter domain.FeedFilter

	own       []*domain.EventSummary
	ownErr    error
	ownCalled bool

	detail    *domain.EventDetail
	detailErr error

	cats    []*domain.Category
	catsErr error
}

func (f *fakeEventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	event.ID = "ev-1"
	f.created = event
	return nil
}

func (f *fakeEventService) ListPublicFeed(ctx context.Context, viewerID string, filter domain.FeedFilter) ([]*domain.EventSummary, error) {
	if f.feedErr != nil {
		return nil, f.feedErr
	}
	f.lastViewer = viewerID
	f.lastFilter = filter
	return f.feed, nil
}

func (f *fakeEventService) ListOwnEvents(ctx context.Context, ownerID string) ([]*domain.EventSummary, error) {
	f.ownCalled = true
	if f.ownErr != nil {
		return nil, f.ownErr
	}
	return f.own, nil
}

func (f *fakeEventService) DetailEvent(ctx context.Context, eventID string) (*domain.EventDetail, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	return f.detail, nil
}

func (f *fakeEventService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	if f.catsErr != nil {
		return nil, f.catsErr
	}
	return f.cats, nil
}

func TestEventController_CreateEvent(t *testing.T) {
	validBody := `{"title":"Churrasco","description":"No quintal","init":"2026-09-15T19:00:00Z","isPublic":true,"categoryId":"cat-1"}`

	tests := []struct {
		name        string
		body        string
		svc         *fakeEventService
		authed      bool
		wantStatus  int
		wantErrCode string
	}{
		{
			name:       "success",
			body:       validBody,
			svc:        &fakeEventService{},
			authed:     true,
			wantStatus: http.StatusCreated,
		},
		{
			name:        "unauthenticated",
			body:        validBody,
			svc:         &fakeEventService{},
			wantStatus:  http.StatusUnauthorized,
			wantErrCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:        "missing title",
			body:        `{"description":"No quintal","init":"2026-09-15T19:00:00Z","categoryId":"cat-1"}`,
			svc:         &fakeEventService{},
			authed:      true,
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
		{
			name:        "unparseable init",
			body:        `{"title":"Churrasco","description":"No quintal","init":"15/09/2026","categoryId":"cat-1"}`,
			svc:         &fakeEventService{},
			authed:      true,
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
		{
			name:        "unknown category",
			body:        validBody,
			svc:         &fakeEventService{createErr: domain.ErrInvalidInput},
			authed:      true,
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewEventController(testLogger(), tt.svc)
			var req *http.Request
			if tt.authed {
				req = authedRequest(http.MethodPost, "/events", tt.body)
			} else {
				req = httptest.NewRequest(http.MethodPost, "/events", bytes.NewBufferString(tt.body))
			}
			rec := httptest.NewRecorder()

			ctrl.CreateEvent(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusCreated {
				require.NotNil(t, tt.svc.created)
				assert.Equal(t, "user-1", tt.svc.created.CreatedByID)
				assert.Equal(t, "Churrasco", tt.svc.created.Title)
			}
		})
	}
}

func TestEventController_ListEvents(t *testing.T) {
	t.Run("anonymous feed", func(t *testing.T) {
		svc := &fakeEventService{feed: []*domain.EventSummary{{ID: "ev-1", Title: "Churrasco"}}}
		ctrl := NewEventController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodGet, "/events?skip=10&take=5", nil)
		rec := httptest.NewRecorder()
		ctrl.ListEvents(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "", svc.lastViewer)
		assert.Equal(t, 10, svc.lastFilter.Pagination.Skip)
		assert.Equal(t, 5, svc.lastFilter.Pagination.Take)
		assert.False(t, svc.ownCalled)
	})

	t.Run("authenticated feed forwards the viewer", func(t *testing.T) {
		svc := &fakeEventService{}
		ctrl := NewEventController(testLogger(), svc)

		req := authedRequest(http.MethodGet, "/events", "")
		rec := httptest.NewRecorder()
		ctrl.ListEvents(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", svc.lastViewer)
	})

	t.Run("comma-separated category filter", func(t *testing.T) {
		svc := &fakeEventService{}
		ctrl := NewEventController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodGet, "/events?categories=cat-1,cat-2", nil)
		rec := httptest.NewRecorder()
		ctrl.ListEvents(rec, req)

		assert.Equal(t, []string{"cat-1", "cat-2"}, svc.lastFilter.CategoryIDs)
	})

	t.Run("repeated category parameters", func(t *testing.T) {
		svc := &fakeEventService{}
		ctrl := NewEventController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodGet, "/events?categories=cat-1&categories=cat-2", nil)
		rec := httptest.NewRecorder()
		ctrl.ListEvents(rec, req)

		assert.Equal(t, []string{"cat-1", "cat-2"}, svc.lastFilter.CategoryIDs)
	})

	t.Run("me=true requires auth", func(t *testing.T) {
		svc := &fakeEventService{}
		ctrl := NewEventController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodGet, "/events?me=true", nil)
		rec := httptest.NewRecorder()
		ctrl.ListEvents(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, svc.ownCalled)
	})

	t.Run("me=true lists own events", func(t *testing.T) {
		svc := &fakeEventService{own: []*domain.EventSummary{{ID: "ev-2", Title: "Jantar"}}}
		ctrl := NewEventController(testLogger(), svc)

		req := authedRequest(http.MethodGet, "/events?me=true", "")
		rec := httptest.NewRecorder()
		ctrl.ListEvents(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, svc.ownCalled)
	})
}

func TestEventController_DetailEvent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEventService{detail: &domain.EventDetail{
			EventSummary: domain.EventSummary{ID: "ev-1", Title: "Churrasco"},
			Invites:      []*domain.InviteWithUser{},
		}}
		ctrl := NewEventController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodGet, "/events/ev-1", nil)
		req.SetPathValue("eventID", "ev-1")
		rec := httptest.NewRecorder()
		ctrl.DetailEvent(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeEventService{detailErr: domain.ErrNotFound}
		ctrl := NewEventController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodGet, "/events/missing", nil)
		req.SetPathValue("eventID", "missing")
		rec := httptest.NewRecorder()
		ctrl.DetailEvent(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		resp := decodeResponse(t, rec)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "Evento não encontrado", resp.Error.Message)
	})
}

func TestEventController_ListCategories(t *testing.T) {
	svc := &fakeEventService{cats: []*domain.Category{{ID: "cat-1", Name: "Churrasco"}}}
	ctrl := NewEventController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/events/categories", nil)
	rec := httptest.NewRecorder()
	ctrl.ListCategories(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.Nil(t, resp.Error)
	require.NotNil(t, resp.Data)
}
