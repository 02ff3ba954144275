package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"organizaai/internal/domain"
)

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byID      map[string]*domain.User
	byEmail   map[string]*domain.User
	nextID    int
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
		nextID:  1,
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	f.nextID++
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

// fakeHasher is a deterministic PasswordHasher for tests.
type fakeHasher struct {
	saltErr error
}

func (f *fakeHasher) GenerateSalt() (string, error) {
	if f.saltErr != nil {
		return "", f.saltErr
	}
	return "salt", nil
}

func (f *fakeHasher) Hash(salt, password string) (string, error) {
	return "hash:" + salt + ":" + password, nil
}

func (f *fakeHasher) Compare(hash, salt, password string) error {
	if hash != "hash:"+salt+":"+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenIssuer issues predictable tokens for tests.
type fakeTokenIssuer struct {
	err error
}

func (f *fakeTokenIssuer) Issue(userID, email string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + userID, nil
}

// fakeEventRepo is an in-memory EventRepository for tests. Feed and owner
// listings return canned summaries and record the arguments they were called with.
type fakeEventRepo struct {
	byID   map[string]*domain.Event
	nextID int

	feed         []*domain.EventSummary
	own          []*domain.EventSummary
	details      map[string]*domain.EventDetail
	lastViewerID string
	lastFilter   domain.FeedFilter

	createErr error
	listErr   error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:    make(map[string]*domain.Event),
		details: make(map[string]*domain.EventDetail),
		nextID:  1,
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetDetailByID(ctx context.Context, id string) (*domain.EventDetail, error) {
	if d, ok := f.details[id]; ok {
		return d, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListFeed(ctx context.Context, viewerID string, filter domain.FeedFilter) ([]*domain.EventSummary, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.lastViewerID = viewerID
	f.lastFilter = filter
	return f.feed, nil
}

func (f *fakeEventRepo) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.EventSummary, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.own, nil
}

// fakeCategoryRepo serves a fixed category list.
type fakeCategoryRepo struct {
	cats  []*domain.Category
	err   error
	calls int
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.cats, nil
}

// fakeCategoryCache is an in-memory CategoryCache.
type fakeCategoryCache struct {
	stored []*domain.Category
	setErr error
}

func (f *fakeCategoryCache) Get(ctx context.Context) ([]*domain.Category, error) {
	if f.stored == nil {
		return nil, errors.New("cache miss")
	}
	return f.stored, nil
}

func (f *fakeCategoryCache) Set(ctx context.Context, cats []*domain.Category) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.stored = cats
	return nil
}

// fakeInviteRepo is an in-memory InviteRepository keyed by (event, user).
type fakeInviteRepo struct {
	byID        map[string]*domain.Invite
	byEventUser map[string]*domain.Invite
	nextID      int
	getCalls    int
	createErr   error
}

func newFakeInviteRepo() *fakeInviteRepo {
	return &fakeInviteRepo{
		byID:        make(map[string]*domain.Invite),
		byEventUser: make(map[string]*domain.Invite),
		nextID:      1,
	}
}

func pairKey(eventID, userID string) string {
	return eventID + "|" + userID
}

func (f *fakeInviteRepo) Create(ctx context.Context, inv *domain.Invite) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEventUser[pairKey(inv.EventID, inv.UserID)]; ok {
		return domain.ErrAlreadyInvited
	}
	inv.ID = fmt.Sprintf("inv-%d", f.nextID)
	f.nextID++
	f.byID[inv.ID] = inv
	f.byEventUser[pairKey(inv.EventID, inv.UserID)] = inv
	return nil
}

func (f *fakeInviteRepo) CreateIfAbsent(ctx context.Context, inv *domain.Invite) (bool, error) {
	if f.createErr != nil {
		return false, f.createErr
	}
	if _, ok := f.byEventUser[pairKey(inv.EventID, inv.UserID)]; ok {
		return false, nil
	}
	return true, f.Create(ctx, inv)
}

func (f *fakeInviteRepo) GetByID(ctx context.Context, id string) (*domain.Invite, error) {
	f.getCalls++
	if inv, ok := f.byID[id]; ok {
		cp := *inv
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInviteRepo) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Invite, error) {
	if inv, ok := f.byEventUser[pairKey(eventID, userID)]; ok {
		return inv, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInviteRepo) MarkAnswered(ctx context.Context, id string, answer domain.InviteAnswer, at time.Time) error {
	inv, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if inv.Answered() {
		return domain.ErrAlreadyAnswered
	}
	switch answer {
	case domain.AnswerAccept:
		inv.AcceptedAt = &at
	case domain.AnswerDeny:
		inv.RejectedAt = &at
	}
	return nil
}

// fakeEmailService records sent invite notifications.
type fakeEmailService struct {
	sent []*domain.InviteEmailData
	err  error
}

func (f *fakeEmailService) SendInviteNotification(ctx context.Context, data *domain.InviteEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}
