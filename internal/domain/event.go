package domain

import (
	"context"
	"time"
)

// Event is the central entity. EndAt nil means the event has no scheduled end
// and stays active in the public feed indefinitely.
// swagger:model Event
type Event struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    *string    `json:"location,omitempty"`
	InitAt      time.Time  `json:"init"`
	EndAt       *time.Time `json:"end"`
	IsPublic    bool       `json:"isPublic"`
	CategoryID  string     `json:"categoryId"`
	CreatedByID string     `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(title, description string, location *string, initAt time.Time, endAt *time.Time, isPublic bool, categoryID, createdByID string, createdAt time.Time) *Event {
	return &Event{
		Title:       title,
		Description: description,
		Location:    location,
		InitAt:      initAt,
		EndAt:       endAt,
		IsPublic:    isPublic,
		CategoryID:  categoryID,
		CreatedByID: createdByID,
		CreatedAt:   createdAt,
	}
}

// EventSummary is the feed projection: event fields plus category and creator refs.
// swagger:model EventSummary
type EventSummary struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    *string    `json:"location,omitempty"`
	InitAt      time.Time  `json:"init"`
	EndAt       *time.Time `json:"end"`
	IsPublic    bool       `json:"isPublic"`
	Category    CategoryRef `json:"category"`
	CreatedBy   UserRef     `json:"createdBy"`
}

// CategoryRef is the category projection embedded in event payloads.
// swagger:model CategoryRef
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EventDetail is the full projection returned by the detail operation,
// including the event's invites with their invited users.
// swagger:model EventDetail
type EventDetail struct {
	EventSummary
	Invites []*InviteWithUser `json:"invite"`
}

// FeedFilter narrows the public feed query. CategoryIDs nil means no category
// filter; an empty non-nil slice matches nothing.
type FeedFilter struct {
	Pagination  PaginationParams
	CategoryIDs []string
}

// EventRepository defines the interface for event storage. ListFeed applies
// the visibility predicate in a single query: temporally active AND (public OR
// viewer is invited OR viewer is the creator). An empty viewerID means an
// anonymous viewer, who only sees public events.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetDetailByID(ctx context.Context, id string) (*EventDetail, error)
	ListFeed(ctx context.Context, viewerID string, filter FeedFilter) ([]*EventSummary, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*EventSummary, error)
}

// EventService defines the event-facing business logic.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	ListPublicFeed(ctx context.Context, viewerID string, filter FeedFilter) ([]*EventSummary, error)
	ListOwnEvents(ctx context.Context, ownerID string) ([]*EventSummary, error)
	DetailEvent(ctx context.Context, eventID string) (*EventDetail, error)
	ListCategories(ctx context.Context) ([]*Category, error)
}
