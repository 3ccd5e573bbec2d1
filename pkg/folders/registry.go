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

// Package folders is the static registry of relocatable known folders.
package folders

import (
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📁 Kind identifies one of the relocatable known folders
type Kind string

const (
	Documents Kind = "Documents"
	Music     Kind = "Music"
	Pictures  Kind = "Pictures"
	Downloads Kind = "Downloads"
	Desktop   Kind = "Desktop"
	Favorites Kind = "Favorites"
	Videos    Kind = "Videos"
	Contacts  Kind = "Contacts"
)

// 🔗 Binding pairs a Kind with the value name the OS location store keys on.
// Several identifiers are GUID literals the shell recognizes specially; they
// must be reproduced exactly.
type Binding struct {
	Kind     Kind   // Folder kind
	StableID string // Location-store value name (well-known name or GUID)
}

// bindings is the registry, in menu order. Order is part of the contract:
// numeric selections are resolved against it.
var bindings = []Binding{
	{Documents, "Personal"},
	{Music, "My Music"},
	{Pictures, "My Pictures"},
	{Downloads, "{374DE290-123F-4565-9164-39C4925E467B}"},
	{Desktop, "Desktop"},
	{Favorites, "Favorites"},
	{Videos, "My Video"},
	{Contacts, "{56784854-C6CB-462B-8169-88E350ACB882}"},
}

// String returns the folder's directory name.
func (k Kind) String() string {
	return string(k)
}

// 🔑 StableID returns the location-store identifier bound to k, and whether
// k is a registered kind.
func StableID(k Kind) (string, bool) {
	for _, b := range bindings {
		if b.Kind == k {
			return b.StableID, true
		}
	}
	return "", false
}

// 📋 All enumerates every binding in menu order.
func All() []Binding {
	out := make([]Binding, len(bindings))
	copy(out, bindings)
	return out
}

// 🎯 ParseSelection parses a comma-separated list of folder names or 1-based
// menu indices into kinds. An empty selection means every registered folder.
func ParseSelection(selection string) ([]Kind, error) {
	if strings.TrimSpace(selection) == "" {
		kinds := make([]Kind, len(bindings))
		for i, b := range bindings {
			kinds[i] = b.Kind
		}
		return kinds, nil
	}

	seen := map[Kind]bool{}
	var kinds []Kind
	for _, part := range strings.Split(selection, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		kind, err := parseOne(part)
		if err != nil {
			return nil, err
		}
		if seen[kind] {
			continue
		}
		seen[kind] = true
		kinds = append(kinds, kind)
	}

	if len(kinds) == 0 {
		return nil, errors.Errorf("empty folder selection %q", selection)
	}
	return kinds, nil
}

// parseOne resolves a single selection token, numeric or named.
func parseOne(token string) (Kind, error) {
	if idx, err := strconv.Atoi(token); err == nil {
		if idx < 1 || idx > len(bindings) {
			return "", errors.Errorf("folder index %d out of range 1..%d", idx, len(bindings))
		}
		return bindings[idx-1].Kind, nil
	}

	for _, b := range bindings {
		if strings.EqualFold(string(b.Kind), token) {
			return b.Kind, nil
		}
	}
	return "", errors.Errorf("unknown folder %q", token)
}
