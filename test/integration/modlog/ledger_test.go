// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boardkit Contributors

//go:build integration

package modlog_test

import (
	"time"

	"github.com/oklog/ulid/v2"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/boardkit/modlog/internal/modlog"
	"github.com/boardkit/modlog/internal/seed"
)

var _ = Describe("Ledger", func() {
	Describe("appending", func() {
		It("persists an entry and reads it back intact", func() {
			svc := newService()
			ctx := modlog.WithActor(env.ctx, 9001)

			entry, err := svc.Log(ctx, "ban_create", modlog.Values{
				"user_id":  int64(501),
				"duration": int64(60),
				"reason":   "spam",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(entry).NotTo(BeNil())

			got, err := svc.Get(env.ctx, entry.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Kind).To(Equal("ban_create"))
			Expect(got.CreatorID).To(Equal(int64(9001)))

			duration, ok := got.Values.Int("duration")
			Expect(ok).To(BeTrue())
			Expect(duration).To(Equal(int64(60)))
			Expect(got.Values.Str("reason")).To(Equal("spam"))
			Expect(got.CreatedAt).To(BeTemporally("~", entry.CreatedAt, time.Millisecond))
		})

		It("persists unregistered kinds", func() {
			svc := newService()

			entry, err := svc.Log(env.ctx, "integration_only_kind", modlog.Values{"note": "hi"})
			Expect(err).NotTo(HaveOccurred())

			got, err := svc.Get(env.ctx, entry.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Kind).To(Equal("integration_only_kind"))
		})

		It("rejects duplicate IDs", func() {
			entry, err := modlog.NewEntry("ticket_claim", 9002, modlog.Values{"ticket_id": int64(1)})
			Expect(err).NotTo(HaveOccurred())

			Expect(env.Repo.Append(env.ctx, entry)).To(Succeed())
			Expect(env.Repo.Append(env.ctx, entry)).To(MatchError(modlog.ErrAlreadyExists))
		})

		It("drops entries inside a suppressed scope", func() {
			svc := newService()
			ctx := modlog.WithoutLogging(modlog.WithActor(env.ctx, 9003))

			entry, err := svc.Log(ctx, "comment_delete", modlog.Values{"comment_id": int64(1)})
			Expect(err).NotTo(HaveOccurred())
			Expect(entry).To(BeNil())

			entries, err := svc.Search(env.ctx, modlog.Filter{CreatorID: 9003})
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(BeEmpty())
		})
	})

	Describe("searching", func() {
		const creator = int64(9100)

		BeforeEach(func() {
			svc := newService()
			ctx := modlog.WithActor(env.ctx, creator)
			for _, kind := range []string{"comment_hide", "comment_unhide", "ticket_claim"} {
				_, err := svc.Log(ctx, kind, modlog.Values{"comment_id": int64(7), "ticket_id": int64(7)})
				Expect(err).NotTo(HaveOccurred())
			}
		})

		AfterEach(func() {
			_, err := env.pool.Exec(env.ctx, `DELETE FROM mod_actions WHERE creator_id = $1`, creator)
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns newest first with the ID tiebreak", func() {
			svc := newService()

			entries, err := svc.Search(env.ctx, modlog.Filter{CreatorID: creator})
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(3))
			Expect(entries[0].Kind).To(Equal("ticket_claim"))
			Expect(entries[2].Kind).To(Equal("comment_hide"))

			for i := 1; i < len(entries); i++ {
				Expect(entries[i-1].ID.Compare(entries[i].ID)).To(BeNumerically(">", 0))
			}
		})

		It("supports oldest-first ordering", func() {
			svc := newService()

			entries, err := svc.Search(env.ctx, modlog.Filter{
				CreatorID: creator,
				Order:     modlog.OrderOldestFirst,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(entries[0].Kind).To(Equal("comment_hide"))
		})

		It("filters by kind", func() {
			svc := newService()

			entries, err := svc.Search(env.ctx, modlog.Filter{CreatorID: creator, Kind: "ticket_claim"})
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].Kind).To(Equal("ticket_claim"))
		})

		It("expands glob exclusions", func() {
			svc := newService()

			entries, err := svc.Search(env.ctx, modlog.Filter{
				CreatorID:    creator,
				ExcludeKinds: []string{"comment_*"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].Kind).To(Equal("ticket_claim"))
		})

		It("paginates", func() {
			svc := newService()

			page, err := svc.Search(env.ctx, modlog.Filter{CreatorID: creator, Limit: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(page).To(HaveLen(2))

			rest, err := svc.Search(env.ctx, modlog.Filter{CreatorID: creator, Limit: 2, Offset: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(rest).To(HaveLen(1))
			Expect(rest[0].ID).NotTo(Equal(page[0].ID))
			Expect(rest[0].ID).NotTo(Equal(page[1].ID))
		})
	})

	Describe("getting", func() {
		It("wraps missing entries in ErrNotFound", func() {
			_, err := env.Repo.Get(env.ctx, ulid.Make())
			Expect(err).To(MatchError(modlog.ErrNotFound))
		})
	})

	Describe("seeding", func() {
		It("is idempotent across runs", func() {
			f := &seed.File{Actions: []seed.Action{
				{
					ID:        "01J9GQ5TZZ0000000000000001",
					Kind:      "ban_create",
					CreatorID: 9200,
					CreatedAt: time.Now().UTC(),
					Values:    map[string]any{"user_id": 501, "duration": 7},
				},
				{
					ID:        "01J9GQ5TZZ0000000000000002",
					Kind:      "ban_delete",
					CreatorID: 9200,
					CreatedAt: time.Now().UTC(),
					Values:    map[string]any{"user_id": 501},
				},
			}}

			first, err := seed.Apply(env.ctx, env.Repo, f)
			Expect(err).NotTo(HaveOccurred())
			Expect(first).To(Equal(seed.Result{Created: 2, Skipped: 0}))

			second, err := seed.Apply(env.ctx, env.Repo, f)
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(seed.Result{Created: 0, Skipped: 2}))
		})
	})

	Describe("partitions", func() {
		It("reports healthy once provisioned", func() {
			Expect(env.Partitions.HealthCheck(env.ctx)).To(Succeed())
		})

		It("runs a retention cycle end to end", func() {
			worker := modlog.NewRetentionWorker(modlog.DefaultRetentionConfig(), env.Partitions)
			Expect(worker.RunOnce(env.ctx)).To(Succeed())
			Expect(worker.HealthCheck(env.ctx)).To(Succeed())
		})
	})
})
