package service

import (
	"context"
	"sync"
	"time"

	"communitypulse/internal/models"
	"communitypulse/internal/repository"
)

// eventRepoStub is a stub for repository.EventRepository.
type eventRepoStub struct {
	createFn               func(context.Context, *models.Event) error
	getByIDFn              func(context.Context, uint) (*models.Event, error)
	updateFn               func(context.Context, *models.Event) error
	deleteFn               func(context.Context, uint) error
	listApprovedFn         func(context.Context, repository.EventFilter) ([]*models.Event, error)
	listApprovedInWindowFn func(context.Context, time.Time, time.Time) ([]*models.Event, error)
	listPendingFn          func(context.Context, int, int) ([]*models.Event, error)
	listFlaggedFn          func(context.Context, int, int) ([]*models.Event, error)
	listByCreatorFn        func(context.Context, uint, int, int) ([]*models.Event, error)
	totalsFn               func(context.Context, time.Time) (*repository.EventTotals, error)
	countByCategoryFn      func(context.Context) ([]repository.CategoryCount, error)
	recentFn               func(context.Context, int) ([]*models.Event, error)
	topCreatorsFn          func(context.Context, int) ([]repository.CreatorCount, error)
}

func (s *eventRepoStub) Create(ctx context.Context, event *models.Event) error {
	return s.createFn(ctx, event)
}
func (s *eventRepoStub) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	return s.getByIDFn(ctx, id)
}
func (s *eventRepoStub) Update(ctx context.Context, event *models.Event) error {
	return s.updateFn(ctx, event)
}
func (s *eventRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *eventRepoStub) ListApproved(ctx context.Context, filter repository.EventFilter) ([]*models.Event, error) {
	return s.listApprovedFn(ctx, filter)
}
func (s *eventRepoStub) ListApprovedInWindow(ctx context.Context, from, to time.Time) ([]*models.Event, error) {
	return s.listApprovedInWindowFn(ctx, from, to)
}
func (s *eventRepoStub) ListPending(ctx context.Context, limit, offset int) ([]*models.Event, error) {
	return s.listPendingFn(ctx, limit, offset)
}
func (s *eventRepoStub) ListFlagged(ctx context.Context, limit, offset int) ([]*models.Event, error) {
	return s.listFlaggedFn(ctx, limit, offset)
}
func (s *eventRepoStub) ListByCreator(ctx context.Context, userID uint, limit, offset int) ([]*models.Event, error) {
	return s.listByCreatorFn(ctx, userID, limit, offset)
}
func (s *eventRepoStub) Totals(ctx context.Context, now time.Time) (*repository.EventTotals, error) {
	return s.totalsFn(ctx, now)
}
func (s *eventRepoStub) CountByCategory(ctx context.Context) ([]repository.CategoryCount, error) {
	return s.countByCategoryFn(ctx)
}
func (s *eventRepoStub) Recent(ctx context.Context, limit int) ([]*models.Event, error) {
	return s.recentFn(ctx, limit)
}
func (s *eventRepoStub) TopCreators(ctx context.Context, limit int) ([]repository.CreatorCount, error) {
	return s.topCreatorsFn(ctx, limit)
}

func noopEventRepo() *eventRepoStub {
	return &eventRepoStub{
		createFn:  func(_ context.Context, _ *models.Event) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Event, error) { return &models.Event{}, nil },
		updateFn:  func(_ context.Context, _ *models.Event) error { return nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
		listApprovedFn: func(_ context.Context, _ repository.EventFilter) ([]*models.Event, error) {
			return nil, nil
		},
		listApprovedInWindowFn: func(_ context.Context, _, _ time.Time) ([]*models.Event, error) {
			return nil, nil
		},
		listPendingFn:   func(_ context.Context, _, _ int) ([]*models.Event, error) { return nil, nil },
		listFlaggedFn:   func(_ context.Context, _, _ int) ([]*models.Event, error) { return nil, nil },
		listByCreatorFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Event, error) { return nil, nil },
		totalsFn: func(_ context.Context, _ time.Time) (*repository.EventTotals, error) {
			return &repository.EventTotals{}, nil
		},
		countByCategoryFn: func(_ context.Context) ([]repository.CategoryCount, error) { return nil, nil },
		recentFn:          func(_ context.Context, _ int) ([]*models.Event, error) { return nil, nil },
		topCreatorsFn:     func(_ context.Context, _ int) ([]repository.CreatorCount, error) { return nil, nil },
	}
}

// interestRepoStub is a stub for repository.InterestRepository.
type interestRepoStub struct {
	registerFn             func(context.Context, *models.Interest, *int) error
	getByIDFn              func(context.Context, uint) (*models.Interest, error)
	deleteFn               func(context.Context, uint) error
	countForEventFn        func(context.Context, uint) (int64, error)
	sumAttendeesForEventFn func(context.Context, uint) (int64, error)
	listForEventFn         func(context.Context, uint) ([]*models.Interest, error)
	listForUserFn          func(context.Context, uint) ([]models.InterestSummary, error)
}

func (s *interestRepoStub) Register(ctx context.Context, interest *models.Interest, maxAttendees *int) error {
	return s.registerFn(ctx, interest, maxAttendees)
}
func (s *interestRepoStub) GetByID(ctx context.Context, id uint) (*models.Interest, error) {
	return s.getByIDFn(ctx, id)
}
func (s *interestRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *interestRepoStub) CountForEvent(ctx context.Context, eventID uint) (int64, error) {
	return s.countForEventFn(ctx, eventID)
}
func (s *interestRepoStub) SumAttendeesForEvent(ctx context.Context, eventID uint) (int64, error) {
	return s.sumAttendeesForEventFn(ctx, eventID)
}
func (s *interestRepoStub) ListForEvent(ctx context.Context, eventID uint) ([]*models.Interest, error) {
	return s.listForEventFn(ctx, eventID)
}
func (s *interestRepoStub) ListForUser(ctx context.Context, userID uint) ([]models.InterestSummary, error) {
	return s.listForUserFn(ctx, userID)
}

func noopInterestRepo() *interestRepoStub {
	return &interestRepoStub{
		registerFn: func(_ context.Context, _ *models.Interest, _ *int) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Interest, error) {
			return &models.Interest{}, nil
		},
		deleteFn:               func(_ context.Context, _ uint) error { return nil },
		countForEventFn:        func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		sumAttendeesForEventFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		listForEventFn:         func(_ context.Context, _ uint) ([]*models.Interest, error) { return nil, nil },
		listForUserFn:          func(_ context.Context, _ uint) ([]models.InterestSummary, error) { return nil, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn      func(context.Context, *models.User) error
	getByIDFn     func(context.Context, uint) (*models.User, error)
	getByEmailFn  func(context.Context, string) (*models.User, error)
	updateFn      func(context.Context, *models.User) error
	listFn        func(context.Context, int, int) ([]*models.User, error)
	setVerifiedFn func(context.Context, uint, bool) error
	setBannedFn   func(context.Context, uint, bool) error
	countFn       func(context.Context) (int64, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) SetVerified(ctx context.Context, id uint, verified bool) error {
	return s.setVerifiedFn(ctx, id, verified)
}
func (s *userRepoStub) SetBanned(ctx context.Context, id uint, banned bool) error {
	return s.setBannedFn(ctx, id, banned)
}
func (s *userRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:      func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn:     func(_ context.Context, _ uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:  func(_ context.Context, _ string) (*models.User, error) { return &models.User{}, nil },
		updateFn:      func(_ context.Context, _ *models.User) error { return nil },
		listFn:        func(_ context.Context, _, _ int) ([]*models.User, error) { return nil, nil },
		setVerifiedFn: func(_ context.Context, _ uint, _ bool) error { return nil },
		setBannedFn:   func(_ context.Context, _ uint, _ bool) error { return nil },
		countFn:       func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// notificationRepoStub is a stub for repository.NotificationRepository.
type notificationRepoStub struct {
	createFn        func(context.Context, *models.Notification) error
	markSentFn      func(context.Context, uint) error
	markFailedFn    func(context.Context, uint) error
	listForEventFn  func(context.Context, uint, int, int) ([]*models.Notification, error)
	countByStatusFn func(context.Context, models.NotificationStatus) (int64, error)
}

func (s *notificationRepoStub) Create(ctx context.Context, notification *models.Notification) error {
	return s.createFn(ctx, notification)
}
func (s *notificationRepoStub) MarkSent(ctx context.Context, id uint) error {
	return s.markSentFn(ctx, id)
}
func (s *notificationRepoStub) MarkFailed(ctx context.Context, id uint) error {
	return s.markFailedFn(ctx, id)
}
func (s *notificationRepoStub) ListForEvent(ctx context.Context, eventID uint, limit, offset int) ([]*models.Notification, error) {
	return s.listForEventFn(ctx, eventID, limit, offset)
}
func (s *notificationRepoStub) CountByStatus(ctx context.Context, status models.NotificationStatus) (int64, error) {
	return s.countByStatusFn(ctx, status)
}

func noopNotificationRepo() *notificationRepoStub {
	return &notificationRepoStub{
		createFn:     func(_ context.Context, _ *models.Notification) error { return nil },
		markSentFn:   func(_ context.Context, _ uint) error { return nil },
		markFailedFn: func(_ context.Context, _ uint) error { return nil },
		listForEventFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Notification, error) {
			return nil, nil
		},
		countByStatusFn: func(_ context.Context, _ models.NotificationStatus) (int64, error) { return 0, nil },
	}
}

// notifierCall records one notifier invocation for assertions.
type notifierCall struct {
	kind     string
	event    *models.Event
	interest *models.Interest
	creator  *models.User
	approved bool
	changes  []string
	count    int
}

// notifierRecorder captures notifier calls synchronously.
type notifierRecorder struct {
	mu    sync.Mutex
	calls []notifierCall
}

func (r *notifierRecorder) record(c notifierCall) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
}

func (r *notifierRecorder) all() []notifierCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notifierCall, len(r.calls))
	copy(out, r.calls)
	return out
}

func (r *notifierRecorder) EventInterest(event *models.Event, interest *models.Interest, creator *models.User) {
	r.record(notifierCall{kind: "interest", event: event, interest: interest, creator: creator})
}

func (r *notifierRecorder) EventModerated(event *models.Event, creator *models.User, approved bool) {
	r.record(notifierCall{kind: "moderated", event: event, creator: creator, approved: approved})
}

func (r *notifierRecorder) EventUpdated(event *models.Event, interests []*models.Interest, changes []string) {
	r.record(notifierCall{kind: "updated", event: event, changes: changes, count: len(interests)})
}

func (r *notifierRecorder) EventCancelled(event *models.Event, interests []*models.Interest) {
	r.record(notifierCall{kind: "cancelled", event: event, count: len(interests)})
}

func (r *notifierRecorder) EventReminder(event *models.Event, interests []*models.Interest) {
	r.record(notifierCall{kind: "reminder", event: event, count: len(interests)})
}
