// Package memory holds an in-memory implementation of the voting storage,
// used by tests and local runs without postgres.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/14kear/poll-ledger/internal/entity"
	"github.com/14kear/poll-ledger/internal/repo"
)

type ballotKey struct {
	address string
	pollID  string
}

type Storage struct {
	mu sync.RWMutex

	config  *entity.Config
	polls   map[string]entity.Poll
	ballots map[ballotKey]entity.Ballot
}

func New() *Storage {
	return &Storage{
		polls:   make(map[string]entity.Poll),
		ballots: make(map[ballotKey]entity.Ballot),
	}
}

func (s *Storage) SaveConfig(_ context.Context, config entity.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Write-once, same as the single-row postgres table.
	if s.config == nil {
		cloned := config
		s.config = &cloned
	}
	return nil
}

func (s *Storage) GetConfig(_ context.Context) (entity.Config, error) {
	const op = "storage.memory.GetConfig"

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.config == nil {
		return entity.Config{}, fmt.Errorf("%s: %w", op, repo.ErrConfigNotFound)
	}
	return *s.config, nil
}

func (s *Storage) SavePoll(_ context.Context, poll entity.Poll) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.polls[poll.ID] = poll.Clone()
	return nil
}

func (s *Storage) GetPoll(_ context.Context, pollID string) (entity.Poll, error) {
	const op = "storage.memory.GetPoll"

	s.mu.RLock()
	defer s.mu.RUnlock()

	poll, ok := s.polls[pollID]
	if !ok {
		return entity.Poll{}, fmt.Errorf("%s: %w", op, repo.ErrPollNotFound)
	}
	return poll.Clone(), nil
}

func (s *Storage) ListPolls(_ context.Context) ([]entity.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.polls))
	for id := range s.polls {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	polls := make([]entity.Poll, 0, len(ids))
	for _, id := range ids {
		polls = append(polls, s.polls[id].Clone())
	}
	return polls, nil
}

func (s *Storage) GetBallot(_ context.Context, address, pollID string) (entity.Ballot, error) {
	const op = "storage.memory.GetBallot"

	s.mu.RLock()
	defer s.mu.RUnlock()

	ballot, ok := s.ballots[ballotKey{address: address, pollID: pollID}]
	if !ok {
		return entity.Ballot{}, fmt.Errorf("%s: %w", op, repo.ErrBallotNotFound)
	}
	return ballot, nil
}

func (s *Storage) SaveBallot(_ context.Context, address, pollID string, ballot entity.Ballot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ballots[ballotKey{address: address, pollID: pollID}] = ballot
	return nil
}
