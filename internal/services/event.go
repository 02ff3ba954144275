package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"organizaai/internal/domain"
)

// maxFeedTake caps a single feed page.
const maxFeedTake = 100

type eventService struct {
	eventRepo      domain.EventRepository
	categoryRepo   domain.CategoryRepository
	categoryCache  domain.CategoryCache // optional, may be nil
	contextTimeout time.Duration
}

func NewEventService(
	eventRepo domain.EventRepository,
	categoryRepo domain.CategoryRepository,
	categoryCache domain.CategoryCache,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		categoryRepo:   categoryRepo,
		categoryCache:  categoryCache,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.CreatedByID == "" {
		return fmt.Errorf("event creator is required")
	}
	if strings.TrimSpace(event.Title) == "" || strings.TrimSpace(event.Description) == "" || event.CategoryID == "" {
		return domain.ErrInvalidInput
	}
	if event.InitAt.IsZero() {
		return domain.ErrInvalidInput
	}

	event.CreatedAt = time.Now()

	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) ListPublicFeed(ctx context.Context, viewerID string, filter domain.FeedFilter) ([]*domain.EventSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	filter.Pagination = filter.Pagination.Normalized(maxFeedTake)
	events, err := s.eventRepo.ListFeed(ctx, viewerID, filter)
	if err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}
	if events == nil {
		events = []*domain.EventSummary{}
	}
	return events, nil
}

func (s *eventService) ListOwnEvents(ctx context.Context, ownerID string) ([]*domain.EventSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if ownerID == "" {
		return nil, domain.ErrInvalidInput
	}
	events, err := s.eventRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list own events: %w", err)
	}
	if events == nil {
		events = []*domain.EventSummary{}
	}
	return events, nil
}

func (s *eventService) DetailEvent(ctx context.Context, eventID string) (*domain.EventDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	detail, err := s.eventRepo.GetDetailByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event detail: %w", err)
	}
	return detail, nil
}

func (s *eventService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if s.categoryCache != nil {
		if cached, err := s.categoryCache.Get(ctx); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	cats, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if cats == nil {
		cats = []*domain.Category{}
	}

	if s.categoryCache != nil {
		// Cache warm-up failures are not worth failing the request over.
		_ = s.categoryCache.Set(ctx, cats)
	}
	return cats, nil
}
