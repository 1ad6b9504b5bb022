// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boardkit Contributors

package main

import (
	"encoding/json"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/boardkit/modlog/internal/modlog"
	"github.com/boardkit/modlog/internal/modlog/postgres"
)

// searchConfig holds flags for the search subcommand.
type searchConfig struct {
	kind        string
	creatorID   int64
	exclude     []string
	limit       int
	offset      int
	oldestFirst bool
	elevated    bool
	asJSON      bool
}

// NewSearchCmd creates the search subcommand.
func NewSearchCmd() *cobra.Command {
	sc := &searchConfig{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the moderation ledger",
		Long: `Searches the ledger and renders matching entries. By default entries
render as the public audience sees them; --elevated shows the staff view,
including fields redacted from regular users.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args, sc)
		},
	}

	cmd.Flags().StringVar(&sc.kind, "kind", "", "only this action kind")
	cmd.Flags().Int64Var(&sc.creatorID, "creator-id", 0, "only actions by this creator")
	cmd.Flags().StringSliceVar(&sc.exclude, "exclude", nil, "kinds to exclude (glob patterns allowed)")
	cmd.Flags().IntVar(&sc.limit, "limit", 0, "page size (0 for the default)")
	cmd.Flags().IntVar(&sc.offset, "offset", 0, "entries to skip")
	cmd.Flags().BoolVar(&sc.oldestFirst, "oldest-first", false, "oldest entries first")
	cmd.Flags().BoolVar(&sc.elevated, "elevated", false, "render with staff visibility")
	cmd.Flags().BoolVar(&sc.asJSON, "json", false, "emit allowlisted JSON projections instead of text")

	return cmd
}

func runSearch(cmd *cobra.Command, _ []string, sc *searchConfig) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").Wrap(err)
	}
	defer pool.Close()

	svc := modlog.NewService(modlog.ServiceConfig{
		Repo:     postgres.NewEntryRepository(pool),
		Registry: modlog.NewRegistry(),
	})

	filter := modlog.Filter{
		Kind:         sc.kind,
		CreatorID:    sc.creatorID,
		ExcludeKinds: sc.exclude,
		Limit:        sc.limit,
		Offset:       sc.offset,
	}
	if sc.oldestFirst {
		filter.Order = modlog.OrderOldestFirst
	}

	entries, err := svc.Search(ctx, filter)
	if err != nil {
		return err
	}

	viewer := modlog.Viewer{Elevated: sc.elevated}
	enc := json.NewEncoder(cmd.OutOrStdout())
	for _, e := range entries {
		if sc.asJSON {
			if err := enc.Encode(svc.RenderJSON(e, viewer)); err != nil {
				return err
			}
			continue
		}
		cmd.Printf("%s  %s  %-24s  %s\n",
			e.ID, e.CreatedAt.Format(time.RFC3339), e.Kind,
			svc.RenderText(ctx, e, viewer))
	}
	cmd.PrintErrf("%d entries\n", len(entries))
	return nil
}
