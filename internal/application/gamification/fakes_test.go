package gamification

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agrihub/backend/internal/domain/gamification"
	"github.com/agrihub/backend/internal/domain/shared"
)

type capturingEventBus struct {
	events []shared.DomainEvent
}

func (b *capturingEventBus) Publish(_ context.Context, events ...shared.DomainEvent) error {
	b.events = append(b.events, events...)
	return nil
}

func (b *capturingEventBus) eventTypes() []string {
	types := make([]string, len(b.events))
	for i, e := range b.events {
		types[i] = e.EventType()
	}
	return types
}

// fakeMissionRepo is an in-memory MissionRepository
type fakeMissionRepo struct {
	missions map[uuid.UUID]*gamification.Mission
}

func newFakeMissionRepo() *fakeMissionRepo {
	return &fakeMissionRepo{missions: make(map[uuid.UUID]*gamification.Mission)}
}

func (r *fakeMissionRepo) FindByID(_ context.Context, id uuid.UUID) (*gamification.Mission, error) {
	if m, ok := r.missions[id]; ok {
		copied := *m
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeMissionRepo) FindByCode(_ context.Context, code string) (*gamification.Mission, error) {
	for _, m := range r.missions {
		if m.Code == code {
			copied := *m
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeMissionRepo) FindAll(_ context.Context, filter gamification.MissionFilter) ([]gamification.Mission, error) {
	var out []gamification.Mission
	for _, m := range r.missions {
		if filter.InSeasonAt != nil && !m.InSeason(*filter.InSeasonAt) {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

func (r *fakeMissionRepo) FindByActivityKey(_ context.Context, activityKey string) ([]gamification.Mission, error) {
	var out []gamification.Mission
	for _, m := range r.missions {
		for _, step := range m.Steps {
			if step.ActivityKey == activityKey {
				out = append(out, *m)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeMissionRepo) Save(_ context.Context, mission *gamification.Mission) error {
	copied := *mission
	r.missions[mission.ID] = &copied
	return nil
}

func (r *fakeMissionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.missions, id)
	return nil
}

// fakeProgressRepo is an in-memory ProgressRepository
type fakeProgressRepo struct {
	records map[uuid.UUID]*gamification.MissionProgress
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{records: make(map[uuid.UUID]*gamification.MissionProgress)}
}

func (r *fakeProgressRepo) FindByID(_ context.Context, id uuid.UUID) (*gamification.MissionProgress, error) {
	if p, ok := r.records[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProgressRepo) FindForOwnerAndMission(_ context.Context, ownerID, missionID uuid.UUID) (*gamification.MissionProgress, error) {
	for _, p := range r.records {
		if p.OwnerID == ownerID && p.MissionID == missionID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProgressRepo) FindAllForOwner(_ context.Context, ownerID uuid.UUID, filter gamification.ProgressFilter) ([]gamification.MissionProgress, error) {
	var out []gamification.MissionProgress
	for _, p := range r.records {
		if p.OwnerID != ownerID {
			continue
		}
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProgressRepo) FindActiveForOwner(ctx context.Context, ownerID uuid.UUID) ([]gamification.MissionProgress, error) {
	status := gamification.ProgressStatusActive
	return r.FindAllForOwner(ctx, ownerID, gamification.ProgressFilter{Status: &status})
}

func (r *fakeProgressRepo) FindWithExpiredBonus(_ context.Context, asOf time.Time, limit int) ([]gamification.MissionProgress, error) {
	var out []gamification.MissionProgress
	for _, p := range r.records {
		if p.BonusExpiresAt != nil && !asOf.Before(*p.BonusExpiresAt) {
			out = append(out, *p)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *fakeProgressRepo) Save(_ context.Context, progress *gamification.MissionProgress) error {
	copied := *progress
	r.records[progress.ID] = &copied
	return nil
}

func (r *fakeProgressRepo) SaveWithLock(_ context.Context, progress *gamification.MissionProgress) error {
	stored, ok := r.records[progress.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version != progress.Version-1 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Progress was modified by another transaction")
	}
	copied := *progress
	r.records[progress.ID] = &copied
	return nil
}

// fakeStreakRepo is an in-memory StreakRepository
type fakeStreakRepo struct {
	streaks map[uuid.UUID]*gamification.Streak // keyed by owner
}

func newFakeStreakRepo() *fakeStreakRepo {
	return &fakeStreakRepo{streaks: make(map[uuid.UUID]*gamification.Streak)}
}

func (r *fakeStreakRepo) FindForOwner(_ context.Context, ownerID uuid.UUID) (*gamification.Streak, error) {
	if s, ok := r.streaks[ownerID]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeStreakRepo) FindBrokenBefore(_ context.Context, cutoff time.Time, limit int) ([]gamification.Streak, error) {
	var out []gamification.Streak
	for _, s := range r.streaks {
		if s.IsBroken(cutoff) {
			out = append(out, *s)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *fakeStreakRepo) Save(_ context.Context, streak *gamification.Streak) error {
	copied := *streak
	r.streaks[streak.OwnerID] = &copied
	return nil
}

func (r *fakeStreakRepo) SaveWithLock(ctx context.Context, streak *gamification.Streak) error {
	return r.Save(ctx, streak)
}

// fakeProfileRepo is an in-memory ProfileRepository
type fakeProfileRepo struct {
	profiles map[uuid.UUID]*gamification.Profile // keyed by owner
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*gamification.Profile)}
}

func (r *fakeProfileRepo) FindForOwner(_ context.Context, ownerID uuid.UUID) (*gamification.Profile, error) {
	if p, ok := r.profiles[ownerID]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProfileRepo) TopByXP(_ context.Context, limit int) ([]gamification.LeaderboardEntry, error) {
	var entries []gamification.LeaderboardEntry
	for _, p := range r.profiles {
		entries = append(entries, gamification.LeaderboardEntry{
			OwnerID: p.OwnerID,
			XP:      p.XP,
			Level:   p.Level,
		})
	}
	// insertion sort by XP desc; the fake holds a handful of rows
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].XP > entries[j-1].XP; j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = int64(i + 1)
	}
	return entries, nil
}

func (r *fakeProfileRepo) RankForOwner(ctx context.Context, ownerID uuid.UUID) (*gamification.LeaderboardEntry, error) {
	entries, _ := r.TopByXP(ctx, len(r.profiles))
	for i := range entries {
		if entries[i].OwnerID == ownerID {
			return &entries[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProfileRepo) Save(_ context.Context, profile *gamification.Profile) error {
	copied := *profile
	r.profiles[profile.OwnerID] = &copied
	return nil
}

func (r *fakeProfileRepo) SaveWithLock(ctx context.Context, profile *gamification.Profile) error {
	return r.Save(ctx, profile)
}
