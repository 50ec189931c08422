// Package memory provides in-memory collaborator implementations. They back
// the simulator binary and make the engine testable without infrastructure.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"riskd/internal/domain"
	"riskd/pkg/errors"
)

// Store implements every collaborator interface over in-process maps.
// Safe for concurrent use.
type Store struct {
	mu           sync.RWMutex
	transactions map[string][]domain.TransactionRecord
	profiles     map[string]*domain.AccountProfile
	logins       map[string][]domain.LoginRecord
	accounts     map[string]bool
	ips          map[string]bool
	assessments  []domain.AssessmentRecord
}

func NewStore() *Store {
	return &Store{
		transactions: make(map[string][]domain.TransactionRecord),
		profiles:     make(map[string]*domain.AccountProfile),
		logins:       make(map[string][]domain.LoginRecord),
		accounts:     make(map[string]bool),
		ips:          make(map[string]bool),
	}
}

// Seeding helpers

func (s *Store) AddTransaction(rec domain.TransactionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions[rec.UserID] = append(s.transactions[rec.UserID], rec)
}

func (s *Store) SetProfile(profile domain.AccountProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UserID] = &profile
}

func (s *Store) AddLogin(rec domain.LoginRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logins[rec.UserID] = append(s.logins[rec.UserID], rec)
}

func (s *Store) BlacklistAccount(account string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account] = true
}

func (s *Store) BlacklistIP(ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ips[ip] = true
}

// Collaborator implementations

func (s *Store) FetchRecent(ctx context.Context, userID string, windowDays int) ([]domain.TransactionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := time.Now().Add(-time.Duration(windowDays) * 24 * time.Hour)
	var out []domain.TransactionRecord
	for _, rec := range s.transactions[userID] {
		if rec.CreatedAt.After(cutoff) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) FetchAccountProfile(ctx context.Context, userID string) (*domain.AccountProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return nil, errors.ErrAccountNotFound
	}
	copied := *profile
	return &copied, nil
}

func (s *Store) IsAccountBlacklisted(ctx context.Context, account string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accounts[account], nil
}

func (s *Store) IsIPBlacklisted(ctx context.Context, ip string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ips[ip], nil
}

func (s *Store) FetchRecentLogins(ctx context.Context, userID string, limit, windowDays int) ([]domain.LoginRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := time.Now().Add(-time.Duration(windowDays) * 24 * time.Hour)
	var out []domain.LoginRecord
	for _, rec := range s.logins[userID] {
		if rec.CreatedAt.After(cutoff) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) Append(ctx context.Context, record *domain.AssessmentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assessments = append(s.assessments, *record)
	return nil
}

// Assessments returns a copy of the audit trail, oldest first.
func (s *Store) Assessments() []domain.AssessmentRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.AssessmentRecord, len(s.assessments))
	copy(out, s.assessments)
	return out
}
