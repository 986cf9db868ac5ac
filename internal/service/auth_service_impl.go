package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/projectpulse/pulse/internal/api"
	"github.com/projectpulse/pulse/internal/domain"
	"github.com/projectpulse/pulse/internal/localstate"
	"github.com/projectpulse/pulse/internal/normalize"
)

type authService struct {
	client   *api.Client
	state    *localstate.DB
	clock    func() time.Time
	observer UseCaseObserver

	current *domain.Member
}

func NewAuthService(client *api.Client, state *localstate.DB, clock func() time.Time, observers ...UseCaseObserver) AuthService {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &authService{
		client:   client,
		state:    state,
		clock:    clock,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (*domain.Member, error) {
	start := s.clock()

	if username == "" || password == "" {
		return nil, invalid("credentials", "username and password are required")
	}

	rec, err := s.client.Login(ctx, username, password)
	defer func() { observe(ctx, s.observer, "login", start, err, map[string]any{"username": username}) }()
	if err != nil {
		return nil, err
	}

	member := normalize.Member(*rec)
	s.current = &member

	if s.state != nil {
		data, marshalErr := json.Marshal(member)
		if marshalErr == nil {
			// Session persistence is best-effort; a failed write does
			// not fail the login.
			_ = s.state.SaveSessionUser(data)
		}
	}
	return &member, nil
}

func (s *authService) Logout(ctx context.Context) error {
	s.current = nil
	if s.state == nil {
		return nil
	}
	if err := s.state.ClearSessionUser(); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

func (s *authService) CurrentUser() (*domain.Member, bool) {
	if s.current == nil {
		return nil, false
	}
	return s.current, true
}

// RestoreSession rehydrates the last authenticated user from local
// state, if one was persisted.
func (s *authService) RestoreSession() (*domain.Member, bool) {
	if s.state == nil {
		return nil, false
	}
	data, ok, err := s.state.LoadSessionUser()
	if err != nil || !ok {
		return nil, false
	}
	var member domain.Member
	if err := json.Unmarshal(data, &member); err != nil {
		return nil, false
	}
	s.current = &member
	return &member, true
}
