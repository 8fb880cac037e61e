package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"notable/model"
	"notable/repository"
	"notable/utils"
)

const DefaultStatsWindowDays = 30

// StatsService computes the admin dashboard aggregations on demand.
// Nothing is cached or materialized.
type StatsService struct {
	UsersRepo *repository.UserRepo
	NotesRepo *repository.NotesRepo
	Timezone  string // IANA name for calendar-date grouping
}

func (s *StatsService) TotalCounts(ctx context.Context) (*model.DashboardStats, error) {
	totalUsers, err := s.UsersRepo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	totalNotes, err := s.NotesRepo.CountNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count notes: %w", err)
	}

	return &model.DashboardStats{
		TotalUsers: totalUsers,
		TotalNotes: totalNotes,
	}, nil
}

// PerUserStats covers every user, zero-note users included with a zero
// count and nil last-note timestamp, most notes first.
func (s *StatsService) PerUserStats(ctx context.Context) ([]model.UserStats, error) {
	users, err := s.UsersRepo.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	counts, err := s.NotesRepo.CountPerUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate notes: %w", err)
	}

	byOwner := make(map[string]repository.NoteCountByUser, len(counts))
	for _, c := range counts {
		byOwner[c.UserID] = c
	}

	stats := make([]model.UserStats, 0, len(users))
	for _, user := range users {
		entry := model.UserStats{Username: user.Username}
		if c, ok := byOwner[user.UserID]; ok {
			entry.TotalNotes = c.Count
			lastNote := c.LastNote
			entry.LastNoteDate = &lastNote
		}
		stats = append(stats, entry)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].TotalNotes != stats[j].TotalNotes {
			return stats[i].TotalNotes > stats[j].TotalNotes
		}
		return stats[i].Username < stats[j].Username
	})

	return stats, nil
}

// NotesPerDay groups note creation over the trailing window by calendar
// date in the configured timezone. Days with no notes are omitted.
func (s *StatsService) NotesPerDay(ctx context.Context, windowDays int) ([]model.DailyNoteCount, error) {
	if windowDays <= 0 {
		windowDays = DefaultStatsWindowDays
	}

	since := time.Now().AddDate(0, 0, -windowDays)
	counts, err := s.NotesRepo.CountPerDay(ctx, since, s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate notes per day: %w", err)
	}
	return counts, nil
}

// NotesPerUser includes only users with at least one note, most notes
// first. Deliberately narrower than PerUserStats.
func (s *StatsService) NotesPerUser(ctx context.Context) ([]model.NotesPerUser, error) {
	counts, err := s.NotesRepo.CountPerUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate notes: %w", err)
	}

	users, err := s.UsersRepo.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	usernames := make(map[string]string, len(users))
	for _, user := range users {
		usernames[user.UserID] = user.Username
	}

	distribution := make([]model.NotesPerUser, 0, len(counts))
	for _, c := range counts {
		username, ok := usernames[c.UserID]
		if !ok {
			// Owner row is gone; notes are mid-cascade.
			continue
		}
		distribution = append(distribution, model.NotesPerUser{
			Username: username,
			Count:    c.Count,
		})
	}

	return distribution, nil
}

// SystemStats snapshots host resource usage for the admin dashboard.
func (s *StatsService) SystemStats() *model.SystemStats {
	memPercent, usedMB, totalMB := utils.GetMemoryUsage()
	return &model.SystemStats{
		CPUPercent:    utils.GetCPUUsage(),
		MemoryPercent: memPercent,
		MemoryUsedMB:  usedMB,
		MemoryTotalMB: totalMB,
	}
}
