package storage

import (
	"context"
	"time"
)

const sessionPrefix = "scs/"

// SessionStore keeps scs session data in a Store so the browser to workspace binding
// survives a restart on every durable driver.
type SessionStore struct {
	kv  Store
	now func() time.Time
}

type sessionRecord struct {
	Data   []byte    `json:"data"`
	Expiry time.Time `json:"expiry"`
}

// NewSessionStore returns a session store over kv.
func NewSessionStore(kv Store) *SessionStore {
	return &SessionStore{kv: kv, now: time.Now}
}

// FindCtx returns the session data for token. Expired sessions are removed and
// reported as missing.
func (s *SessionStore) FindCtx(ctx context.Context, token string) ([]byte, bool, error) {
	var rec sessionRecord
	found, err := LoadJSON(ctx, s.kv, sessionPrefix+token, &rec)
	if err != nil || !found {
		return nil, false, err
	}
	if !s.now().Before(rec.Expiry) {
		if err := s.kv.Delete(ctx, sessionPrefix+token); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}
	return rec.Data, true, nil
}

// CommitCtx stores the session data for token until expiry.
func (s *SessionStore) CommitCtx(ctx context.Context, token string, b []byte, expiry time.Time) error {
	return SaveJSON(ctx, s.kv, sessionPrefix+token, sessionRecord{Data: b, Expiry: expiry})
}

// DeleteCtx removes the session for token.
func (s *SessionStore) DeleteCtx(ctx context.Context, token string) error {
	return s.kv.Delete(ctx, sessionPrefix+token)
}

func (s *SessionStore) Find(token string) ([]byte, bool, error) {
	return s.FindCtx(context.Background(), token)
}

func (s *SessionStore) Commit(token string, b []byte, expiry time.Time) error {
	return s.CommitCtx(context.Background(), token, b, expiry)
}

func (s *SessionStore) Delete(token string) error {
	return s.DeleteCtx(context.Background(), token)
}
