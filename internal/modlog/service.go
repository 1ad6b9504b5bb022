// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boardkit Contributors

package modlog

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// ServiceConfig holds dependencies for Service.
type ServiceConfig struct {
	Repo      EntryRepository
	Registry  *Registry
	Identity  IdentityResolver
	Directory IdentityDirectory // optional; enables creator-name search
}

// Service is the write-side facade and the read path over it. All other
// subsystems append through Log; nothing else writes to the ledger.
type Service struct {
	repo      EntryRepository
	registry  *Registry
	directory IdentityDirectory
	formatter *Formatter
}

// NewService creates a Service with the given configuration.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		repo:      cfg.Repo,
		registry:  cfg.Registry,
		directory: cfg.Directory,
		formatter: NewFormatter(cfg.Registry, cfg.Identity),
	}
}

// Log appends a moderation action. The creator is taken from the ambient
// actor on ctx, defaulting to the system actor outside request scope.
//
// Inside a WithoutLogging scope Log returns (nil, nil) without touching
// the store. A failure to append is surfaced to the caller immediately and
// never retried; callers log-and-continue, since an audit failure must not
// abort the operation it describes.
//
// The kind is only checked syntactically, not against the registry: a
// writer deployed ahead of a registry update must still be able to log.
func (s *Service) Log(ctx context.Context, kind string, values Values) (*Entry, error) {
	if LoggingSuppressed(ctx) {
		suppressedDrops.Inc()
		return nil, nil
	}

	entry, err := NewEntry(kind, ActorFromContext(ctx), values)
	if err != nil {
		appendFailures.Inc()
		return nil, err
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		appendFailures.Inc()
		return nil, oops.Wrapf(err, "log %s", kind)
	}
	entriesLogged.WithLabelValues(kind).Inc()
	return entry, nil
}

// Search returns a page of entries matching the filter. A creator name is
// resolved to an ID through the identity directory; an unresolvable name
// matches nothing, mirroring a search for a creator with no actions.
func (s *Service) Search(ctx context.Context, f Filter) ([]*Entry, error) {
	if f.CreatorID == 0 && f.CreatorName != "" && s.directory != nil {
		id, ok := s.directory.IDByName(ctx, f.CreatorName)
		if !ok {
			return []*Entry{}, nil
		}
		f.CreatorID = id
	}
	f.CreatorName = ""
	f.ExcludeKinds = expandExcludes(s.registry, f.ExcludeKinds)

	entries, err := s.repo.Search(ctx, f)
	if err != nil {
		return nil, oops.Wrapf(err, "search mod actions")
	}
	return entries, nil
}

// Get returns a single entry by ID.
func (s *Service) Get(ctx context.Context, id ulid.ULID) (*Entry, error) {
	entry, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, oops.Wrapf(err, "get mod action %s", id)
	}
	return entry, nil
}

// KnownKinds returns the registered action taxonomy, for building search
// filter choice lists.
func (s *Service) KnownKinds() []string {
	return s.registry.KnownKinds()
}

// KnownFields returns the shared field vocabulary, for building filter and
// form inputs over values bags. The list is advisory; see KnownFields.
func (s *Service) KnownFields() []string {
	fields := make([]string, len(KnownFields))
	copy(fields, KnownFields)
	return fields
}

// RenderText renders an entry for the given viewer. See Formatter.RenderText.
func (s *Service) RenderText(ctx context.Context, e *Entry, viewer Viewer) string {
	return s.formatter.RenderText(ctx, e, viewer)
}

// RenderJSON projects an entry for the given viewer. See Formatter.RenderJSON.
func (s *Service) RenderJSON(e *Entry, viewer Viewer) map[string]any {
	return s.formatter.RenderJSON(e, viewer)
}
