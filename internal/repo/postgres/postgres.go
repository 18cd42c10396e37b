package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/14kear/poll-ledger/internal/entity"
	"github.com/14kear/poll-ledger/internal/repo"
	_ "github.com/lib/pq"
)

type Storage struct {
	db *sql.DB
}

func New(postgresURL string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", postgresURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) SaveConfig(ctx context.Context, config entity.Config) error {
	const op = "storage.postgres.SaveConfig"

	// Single-row table; the bootstrap record is written once and never replaced.
	query := `INSERT INTO config (id, admin) VALUES (1, $1) ON CONFLICT (id) DO NOTHING`

	if _, err := s.db.ExecContext(ctx, query, config.Admin); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetConfig(ctx context.Context) (entity.Config, error) {
	const op = "storage.postgres.GetConfig"

	query := `SELECT admin FROM config WHERE id = 1`

	var config entity.Config
	err := s.db.QueryRowContext(ctx, query).Scan(&config.Admin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Config{}, fmt.Errorf("%s: %w", op, repo.ErrConfigNotFound)
		}
		return entity.Config{}, fmt.Errorf("%s: %w", op, err)
	}

	return config, nil
}

func (s *Storage) SavePoll(ctx context.Context, poll entity.Poll) error {
	const op = "storage.postgres.SavePoll"

	options, err := json.Marshal(poll.Options)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO polls (id, creator, question, options) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET creator = EXCLUDED.creator, question = EXCLUDED.question, options = EXCLUDED.options`

	if _, err := s.db.ExecContext(ctx, query, poll.ID, poll.Creator, poll.Question, options); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetPoll(ctx context.Context, pollID string) (entity.Poll, error) {
	const op = "storage.postgres.GetPoll"

	query := `SELECT id, creator, question, options FROM polls WHERE id = $1`

	var (
		poll    entity.Poll
		options []byte
	)
	err := s.db.QueryRowContext(ctx, query, pollID).Scan(&poll.ID, &poll.Creator, &poll.Question, &options)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Poll{}, fmt.Errorf("%s: %w", op, repo.ErrPollNotFound)
		}
		return entity.Poll{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := json.Unmarshal(options, &poll.Options); err != nil {
		return entity.Poll{}, fmt.Errorf("%s: %w", op, err)
	}

	return poll, nil
}

func (s *Storage) ListPolls(ctx context.Context) ([]entity.Poll, error) {
	const op = "storage.postgres.ListPolls"

	query := `SELECT id, creator, question, options FROM polls ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var polls []entity.Poll
	for rows.Next() {
		var (
			poll    entity.Poll
			options []byte
		)
		if err := rows.Scan(&poll.ID, &poll.Creator, &poll.Question, &options); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		if err := json.Unmarshal(options, &poll.Options); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		polls = append(polls, poll)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return polls, nil
}

func (s *Storage) GetBallot(ctx context.Context, address, pollID string) (entity.Ballot, error) {
	const op = "storage.postgres.GetBallot"

	query := `SELECT option_label FROM ballots WHERE address = $1 AND poll_id = $2`

	var ballot entity.Ballot
	err := s.db.QueryRowContext(ctx, query, address, pollID).Scan(&ballot.Option)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Ballot{}, fmt.Errorf("%s: %w", op, repo.ErrBallotNotFound)
		}
		return entity.Ballot{}, fmt.Errorf("%s: %w", op, err)
	}

	return ballot, nil
}

func (s *Storage) SaveBallot(ctx context.Context, address, pollID string, ballot entity.Ballot) error {
	const op = "storage.postgres.SaveBallot"

	query := `INSERT INTO ballots (address, poll_id, option_label) VALUES ($1, $2, $3)
		ON CONFLICT (address, poll_id) DO UPDATE SET option_label = EXCLUDED.option_label`

	if _, err := s.db.ExecContext(ctx, query, address, pollID, ballot.Option); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
