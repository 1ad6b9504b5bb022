// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boardkit Contributors

// Package seed loads demo moderation actions from a YAML file for local
// development and CI fixtures.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"github.com/boardkit/modlog/internal/modlog"
)

// File is the top-level structure of a seed file.
type File struct {
	Actions []Action `yaml:"actions" json:"actions" jsonschema:"required"`
}

// Action is one seeded moderation action. A fixed ID makes seeding
// idempotent: re-running the seed skips entries that already exist.
type Action struct {
	ID        string         `yaml:"id" json:"id" jsonschema:"required,minLength=26,maxLength=26,description=Fixed ULID for idempotent seeding"`
	Kind      string         `yaml:"kind" json:"kind" jsonschema:"required,minLength=1,maxLength=120"`
	CreatorID int64          `yaml:"creator_id" json:"creator_id" jsonschema:"required,minimum=1"`
	CreatedAt time.Time      `yaml:"created_at" json:"created_at" jsonschema:"required"`
	Values    map[string]any `yaml:"values" json:"values"`
}

// Load parses and schema-validates a seed file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied path
	if err != nil {
		return nil, oops.Code("SEED_READ_FAILED").With("path", path).Wrap(err)
	}
	if err := ValidateSchema(data); err != nil {
		return nil, oops.Code("SEED_INVALID").With("path", path).Wrap(err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, oops.Code("SEED_PARSE_FAILED").With("path", path).Wrap(err)
	}
	return &f, nil
}

// Result summarizes a seeding run.
type Result struct {
	Created int
	Skipped int
}

// Apply inserts the seeded actions, skipping any whose ID already exists.
func Apply(ctx context.Context, repo modlog.EntryRepository, f *File) (Result, error) {
	var res Result
	for _, action := range f.Actions {
		id, err := ulid.Parse(action.ID)
		if err != nil {
			return res, oops.Code("SEED_INVALID").With("id", action.ID).Wrap(err)
		}
		values, err := modlog.NormalizeValues(action.Values)
		if err != nil {
			return res, oops.Code("SEED_INVALID").With("id", action.ID).Wrap(err)
		}
		entry := &modlog.Entry{
			ID:        id,
			Kind:      action.Kind,
			CreatorID: action.CreatorID,
			CreatedAt: action.CreatedAt.UTC(),
			Values:    values,
		}
		err = repo.Append(ctx, entry)
		if errors.Is(err, modlog.ErrAlreadyExists) {
			res.Skipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("seed action %s: %w", action.ID, err)
		}
		res.Created++
	}
	return res, nil
}
