package storage

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestSessionStoreLifecycle(t *testing.T) {
	for name, kv := range drivers(t) {
		kv := kv
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
			s := NewSessionStore(kv)
			s.now = func() time.Time { return now }

			if _, found, err := s.FindCtx(ctx, "tok"); err != nil || found {
				t.Fatalf("expected unknown token to miss, got found=%v err=%v", found, err)
			}
			if err := s.CommitCtx(ctx, "tok", []byte("payload"), now.Add(time.Hour)); err != nil {
				t.Fatalf("CommitCtx() error = %v", err)
			}
			data, found, err := s.FindCtx(ctx, "tok")
			if err != nil || !found || !bytes.Equal(data, []byte("payload")) {
				t.Fatalf("expected committed payload, got %q found=%v err=%v", data, found, err)
			}

			// A second store over the same medium sees the session.
			if _, found, _ := NewSessionStore(kv).Find("tok"); !found {
				t.Fatal("expected session to be visible through a fresh store")
			}

			now = now.Add(2 * time.Hour)
			if _, found, err := s.FindCtx(ctx, "tok"); err != nil || found {
				t.Fatalf("expected expired session to miss, got found=%v err=%v", found, err)
			}
			if _, err := kv.Get(ctx, sessionPrefix+"tok"); err == nil {
				t.Fatal("expected expired session to be removed from storage")
			}

			if err := s.Commit("other", []byte("x"), now.Add(time.Minute)); err != nil {
				t.Fatalf("Commit() error = %v", err)
			}
			if err := s.Delete("other"); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if _, found, _ := s.Find("other"); found {
				t.Fatal("expected deleted session to miss")
			}
		})
	}
}
