// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package store abstracts the OS location store that binds a known folder's
// stable identifier to its current filesystem path.
package store

import (
	"context"
	"fmt"
	"sync"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrNotFound means the identifier has no binding in the primary store.
	// Recoverable: the caller skips that folder and continues.
	ErrNotFound = errors.New("identifier not bound in location store")

	// ErrWrite means a location-store write failed, possibly leaving
	// multiple stores inconsistent. Recoverable per folder.
	ErrWrite = errors.New("location store write failed")
)

// 🗄️ Store is the read/write interface over the OS location store
type Store interface {
	// Resolve returns the path currently bound to id, or ErrNotFound.
	Resolve(ctx context.Context, id string) (string, error)

	// Bind writes path as the current location for id. Where the OS keeps
	// more than one store, all of them are written in the same call; a
	// partial write surfaces as ErrWrite.
	Bind(ctx context.Context, id string, path string) error

	// Name identifies the backing store for logs and reports.
	Name() string
}

// 🧠 Memory is a map-backed Store. It journals every call, so tests can
// assert call ordering against other instrumented collaborators.
type Memory struct {
	mu      sync.Mutex
	paths   map[string]string
	journal []string

	// BindErr, when set, is returned by every Bind call.
	BindErr error
}

// 🏭 NewMemory creates a Memory store seeded with the given bindings.
func NewMemory(seed map[string]string) *Memory {
	paths := make(map[string]string, len(seed))
	for id, path := range seed {
		paths[id] = path
	}
	return &Memory{paths: paths}
}

func (m *Memory) Name() string {
	return "memory"
}

func (m *Memory) Resolve(ctx context.Context, id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.journal = append(m.journal, "resolve "+id)
	path, ok := m.paths[id]
	if !ok {
		return "", errors.Errorf("resolving %q: %w", id, ErrNotFound)
	}
	return path, nil
}

func (m *Memory) Bind(ctx context.Context, id string, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.journal = append(m.journal, fmt.Sprintf("bind %s %s", id, path))
	if m.BindErr != nil {
		return errors.Errorf("binding %q: %w", id, m.BindErr)
	}
	m.paths[id] = path
	return nil
}

// Get returns the currently bound path without journaling.
func (m *Memory) Get(id string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path, ok := m.paths[id]
	return path, ok
}

// Journal returns the ordered record of Resolve/Bind calls.
func (m *Memory) Journal() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.journal))
	copy(out, m.journal)
	return out
}
