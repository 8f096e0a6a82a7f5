// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// NewMemoryStore creates a store whose entries expire ttl after their last load or save.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, entries: make(map[string]memoryEntry)}
}

// Load implements [Store].
func (store *MemoryStore) Load(_ context.Context, id string) (*Session, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	entry, ok := store.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := store.now()
	if now.After(entry.expiresAt) {
		delete(store.entries, id)
		return nil, ErrNotFound
	}
	entry.expiresAt = now.Add(store.ttl)
	store.entries[id] = entry

	loaded := entry.session
	loaded.Flags = copyFlags(entry.session.Flags)
	loaded.dirty = false
	loaded.previousID = ""
	return &loaded, nil
}

// Save implements [Store].
func (store *MemoryStore) Save(_ context.Context, session *Session) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	stored := *session
	stored.Flags = copyFlags(session.Flags)
	store.entries[session.ID] = memoryEntry{session: stored, expiresAt: store.now().Add(store.ttl)}
	return nil
}

// Delete implements [Store].
func (store *MemoryStore) Delete(_ context.Context, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.entries, id)
	return nil
}

func copyFlags(flags map[Flag]bool) map[Flag]bool {
	if flags == nil {
		return nil
	}
	copied := make(map[Flag]bool, len(flags))
	for flag, raised := range flags {
		copied[flag] = raised
	}
	return copied
}
