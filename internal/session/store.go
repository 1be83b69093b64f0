package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

var (
	ErrNotFound     = errors.New("session not found")
	ErrDecrypt      = errors.New("failed to decrypt session store (wrong password?)")
	ErrEmptyCookie  = errors.New("session cookie must not be empty")
	ErrUnsupported  = errors.New("unsupported session store version")
	ErrInvalidParam = errors.New("invalid key derivation parameters")
)

// FileStore implements Provider with an AES-256-GCM encrypted file.
type FileStore struct {
	mu       sync.RWMutex
	path     string
	kdf      KDFParams
	salt     []byte
	key      []byte
	sessions map[string]Session
	now      func() time.Time
}

// Option customizes a FileStore created by Open.
type Option func(*FileStore)

// WithKDF sets the cost parameters used when a new store file is created.
// Existing files keep the parameters they were written with.
func WithKDF(p KDFParams) Option {
	return func(s *FileStore) { s.kdf = p }
}

// Open decrypts the store at path with password. A missing file creates an
// empty store with a fresh salt.
func Open(path string, password []byte, opts ...Option) (*FileStore, error) {
	s := &FileStore{
		path:     path,
		kdf:      DefaultKDF,
		sessions: make(map[string]Session),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if !s.kdf.valid() {
			return nil, ErrInvalidParam
		}
		if s.salt, err = newSalt(); err != nil {
			return nil, err
		}
		s.key = s.kdf.deriveKey(password, s.salt)
		return s, s.save()
	}
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("corrupt session store: %w", err)
	}
	if env.Version != envelopeVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupported, env.Version)
	}
	if !env.KDF.valid() {
		return nil, ErrInvalidParam
	}
	s.kdf = env.KDF
	s.salt = env.Salt
	s.key = s.kdf.deriveKey(password, env.Salt)

	plaintext, err := open(s.key, env.Data, env.Version)
	if err != nil {
		return nil, ErrDecrypt
	}
	if err := json.Unmarshal(plaintext, &s.sessions); err != nil {
		return nil, fmt.Errorf("corrupt session data: %w", err)
	}
	return s, nil
}

// Path returns the store file.
func (s *FileStore) Path() string { return s.path }

// save encrypts the sessions and replaces the file atomically.
// Callers hold the write lock.
func (s *FileStore) save() error {
	plaintext, err := json.Marshal(s.sessions)
	if err != nil {
		return err
	}
	data, err := seal(s.key, plaintext, envelopeVersion)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(envelope{
		Version: envelopeVersion,
		KDF:     s.kdf,
		Salt:    s.salt,
		Data:    data,
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".sessions-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// List returns masked summaries sorted by name.
func (s *FileStore) List() ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Summary, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess.Summarize())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Get returns the session stored under name, or ErrNotFound.
func (s *FileStore) Get(name string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return &sess, nil
}

// Put stores sess, replacing any session with the same name.
func (s *FileStore) Put(sess Session) error {
	if sess.Cookie == "" {
		return ErrEmptyCookie
	}
	if sess.SavedAt.IsZero() {
		sess.SavedAt = s.now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Name] = sess
	return s.save()
}

// Remove deletes the named session, or returns ErrNotFound.
func (s *FileStore) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	delete(s.sessions, name)
	return s.save()
}
