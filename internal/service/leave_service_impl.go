package service

import (
	"context"
	"time"

	"github.com/projectpulse/pulse/internal/api"
	"github.com/projectpulse/pulse/internal/domain"
	"github.com/projectpulse/pulse/internal/normalize"
	"github.com/projectpulse/pulse/internal/store"
)

type leaveService struct {
	store    *store.Store
	client   *api.Client
	clock    func() time.Time
	observer UseCaseObserver
}

func NewLeaveService(st *store.Store, client *api.Client, clock func() time.Time, observers ...UseCaseObserver) LeaveService {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &leaveService{
		store:    st,
		client:   client,
		clock:    clock,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *leaveService) Create(ctx context.Context, req CreateLeaveRequest) (*domain.Leave, error) {
	start := s.clock()

	if req.MemberID == "" {
		return nil, invalid("memberId", "a member is required")
	}
	startDay := req.StartDate.UTC().Truncate(24 * time.Hour)
	endDay := req.EndDate.UTC().Truncate(24 * time.Hour)
	if endDay.Before(startDay) {
		return nil, invalid("endDate", "leave cannot end before it starts")
	}

	body := map[string]any{
		"memberId":  req.MemberID,
		"startDate": startDay.Format("2006-01-02"),
		"endDate":   endDay.Format("2006-01-02"),
		"reason":    req.Reason,
	}

	rec, err := s.client.CreateLeave(ctx, body)
	defer func() { observe(ctx, s.observer, "leave_create", start, err, nil) }()
	if err != nil {
		return nil, err
	}

	l := normalize.Leave(*rec)
	s.store.PutLeave(l)
	return &l, nil
}

func (s *leaveService) Delete(ctx context.Context, id string) error {
	start := s.clock()

	err := s.client.DeleteLeave(ctx, id)
	defer func() { observe(ctx, s.observer, "leave_delete", start, err, map[string]any{"leave_id": id}) }()
	if err != nil {
		return err
	}
	s.store.RemoveLeave(id)
	return nil
}
