package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MatiasdeBuren/consorcio-console/internal/dtos"
	"github.com/MatiasdeBuren/consorcio-console/internal/logging"
)

// ErrNoSession is returned when no session has been stored yet.
var ErrNoSession = errors.New("no_session")

// Store persists the bearer token and the logged-in user between runs.
// It is the local-file equivalent of the web client's localStorage entries.
type Store struct {
	path string
	mu   sync.Mutex
}

type sessionData struct {
	Token    string     `json:"token"`
	UserData *dtos.User `json:"userData,omitempty"`
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) load() (sessionData, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return sessionData{}, ErrNoSession
		}
		return sessionData{}, err
	}
	var data sessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return sessionData{}, err
	}
	return data, nil
}

func (s *Store) save(data sessionData) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}

func (s *Store) SaveToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil && !errors.Is(err, ErrNoSession) {
		return err
	}
	data.Token = token
	return s.save(data)
}

func (s *Store) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return "", err
	}
	if data.Token == "" {
		return "", ErrNoSession
	}
	return data.Token, nil
}

func (s *Store) SaveUser(user dtos.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil && !errors.Is(err, ErrNoSession) {
		return err
	}
	data.UserData = &user
	return s.save(data)
}

func (s *Store) User() (dtos.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return dtos.User{}, err
	}
	if data.UserData == nil {
		return dtos.User{}, ErrNoSession
	}
	return *data.UserData, nil
}

// Clear removes the stored session entirely.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// HandleUnauthorized drops the session after a 401. The front reacts by
// prompting for a fresh login.
func (s *Store) HandleUnauthorized() {
	logging.Logger.Warn("Session rejected by the server, clearing stored credentials")
	if err := s.Clear(); err != nil {
		logging.Logger.WithError(err).Error("Failed to clear session file")
	}
}

// IsTokenExpired decodes the token payload without verifying the signature
// (verification is the server's job) and checks the exp claim. Empty or
// malformed tokens count as expired.
func IsTokenExpired(token string) bool {
	if token == "" {
		return true
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return true
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.Before(time.Now())
}
