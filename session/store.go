package session

import (
	"sync"

	"eventgallery/client"
	"eventgallery/types"
)

// Store cycles between anonymous and authenticated for the process
// lifetime. Login, Register, Logout and Refresh are the only mutators;
// nothing else may write the token file.
type Store struct {
	mu     sync.Mutex
	api    *client.Client
	tokens *TokenFile
	user   *types.User
}

func NewStore(api *client.Client, tokens *TokenFile) *Store {
	return &Store{api: api, tokens: tokens}
}

// Refresh validates the stored credential against the server and adopts
// the returned user. With no stored credential it settles anonymous
// without a network call; a rejected credential is removed from disk.
// Called once at startup and again whenever the profile may have moved.
func (s *Store) Refresh() error {
	if s.tokens.Token() == "" {
		s.mu.Lock()
		s.user = nil
		s.mu.Unlock()
		return nil
	}

	user, err := s.api.Me()
	if err != nil {
		s.mu.Lock()
		s.user = nil
		s.mu.Unlock()
		if removeErr := s.tokens.Remove(); removeErr != nil {
			return removeErr
		}
		return err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

func (s *Store) Login(req types.LoginRequest) error {
	resp, err := s.api.Login(req)
	if err != nil {
		return err
	}
	if err := s.tokens.Save(resp.SessionID); err != nil {
		return err
	}
	s.mu.Lock()
	user := resp.User
	s.user = &user
	s.mu.Unlock()
	return nil
}

func (s *Store) Register(req types.RegisterRequest) error {
	resp, err := s.api.Register(req)
	if err != nil {
		return err
	}
	if err := s.tokens.Save(resp.SessionID); err != nil {
		return err
	}
	s.mu.Lock()
	user := resp.User
	s.user = &user
	s.mu.Unlock()
	return nil
}

// Logout is fail-open: the server call is best effort and its failure
// never blocks clearing local state and the durable credential.
func (s *Store) Logout() error {
	_ = s.api.Logout()

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	return s.tokens.Remove()
}

func (s *Store) CurrentUser() *types.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}
