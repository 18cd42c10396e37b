package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/14kear/poll-ledger/internal/entity"
	"github.com/14kear/poll-ledger/internal/repo"
)

// MaxPollOptions is the hard ceiling on options per poll.
const MaxPollOptions = 5

var (
	ErrTooManyOptions = errors.New("too many poll options")
	ErrPollNotFound   = errors.New("poll not found")
	ErrUnauthorized   = errors.New("option is not part of the poll")
)

// Voting coordinates the poll registry and the ballot ledger. It is the only
// component that mutates both within one operation and it keeps the tally
// invariant: every option count equals the number of ballots naming it.
type Voting struct {
	log           *slog.Logger
	configStorage ConfigStorage
	pollStorage   PollStorage
	ballotStorage BallotStorage
}

type ConfigStorage interface {
	SaveConfig(ctx context.Context, config entity.Config) error
	GetConfig(ctx context.Context) (entity.Config, error)
}

type PollStorage interface {
	SavePoll(ctx context.Context, poll entity.Poll) error
	GetPoll(ctx context.Context, pollID string) (entity.Poll, error)
	ListPolls(ctx context.Context) ([]entity.Poll, error)
}

type BallotStorage interface {
	GetBallot(ctx context.Context, address, pollID string) (entity.Ballot, error)
	SaveBallot(ctx context.Context, address, pollID string, ballot entity.Ballot) error
}

func NewVoting(
	log *slog.Logger,
	configStorage ConfigStorage,
	pollStorage PollStorage,
	ballotStorage BallotStorage,
) *Voting {
	return &Voting{
		log:           log,
		configStorage: configStorage,
		pollStorage:   pollStorage,
		ballotStorage: ballotStorage,
	}
}

// Bootstrap writes the singleton config with the given admin address.
// It is idempotent: an already written config is kept and returned as is.
func (v *Voting) Bootstrap(ctx context.Context, admin string) (entity.Config, error) {
	const op = "voting.Bootstrap"

	config, err := v.configStorage.GetConfig(ctx)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, repo.ErrConfigNotFound) {
		return entity.Config{}, fmt.Errorf("%s: %w", op, err)
	}

	config = entity.Config{Admin: admin}
	if err := v.configStorage.SaveConfig(ctx, config); err != nil {
		return entity.Config{}, fmt.Errorf("%s: %w", op, err)
	}

	v.log.Info("service bootstrapped",
		slog.String("op", op),
		slog.String("action", "bootstrap"),
		slog.String("admin", admin),
	)

	return config, nil
}

// CreatePoll registers a poll with every option count set to zero, preserving
// the caller-given option order. Reusing a poll id silently overwrites the
// previous poll.
func (v *Voting) CreatePoll(ctx context.Context, creator, pollID, question string, options []string) error {
	const op = "voting.CreatePoll"

	if len(options) > MaxPollOptions {
		return fmt.Errorf("%s: %w", op, ErrTooManyOptions)
	}

	poll := entity.Poll{
		ID:       pollID,
		Creator:  creator,
		Question: question,
		Options:  entity.NewOptionList(options),
	}

	if err := v.pollStorage.SavePoll(ctx, poll); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	v.log.Info("poll created",
		slog.String("op", op),
		slog.String("poll_id", pollID),
		slog.String("creator", creator),
		slog.Int("options", poll.Options.Len()),
	)

	return nil
}

// CastVote records the voter's current choice in the poll. A revote replaces
// the previous ballot and moves one count from the old option to the new one.
//
// The chosen option is validated against the poll before anything is mutated,
// so a failed vote leaves both the ballot ledger and the poll registry
// untouched.
func (v *Voting) CastVote(ctx context.Context, voter, pollID, option string) error {
	const op = "voting.CastVote"

	log := v.log.With(slog.String("op", op), slog.String("poll_id", pollID), slog.String("voter", voter))

	poll, err := v.pollStorage.GetPoll(ctx, pollID)
	if err != nil {
		if errors.Is(err, repo.ErrPollNotFound) {
			return fmt.Errorf("%s: %w", op, ErrPollNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if !poll.Options.Has(option) {
		return fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}

	previous, err := v.ballotStorage.GetBallot(ctx, voter, pollID)
	switch {
	case err == nil:
		// Revote: release the count held by the previous ballot. A ballot
		// naming an option the poll no longer knows violates the tally
		// invariant; the decrement is skipped and the record repaired by the
		// overwrite below.
		if !poll.Options.Decrement(previous.Option) {
			log.Warn("ballot references unknown option, skipping decrement",
				slog.String("old_option", previous.Option))
		}
	case errors.Is(err, repo.ErrBallotNotFound):
		// First vote in this poll.
	default:
		return fmt.Errorf("%s: %w", op, err)
	}

	poll.Options.Increment(option)

	if err := v.ballotStorage.SaveBallot(ctx, voter, pollID, entity.Ballot{Option: option}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := v.pollStorage.SavePoll(ctx, poll); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("vote recorded", slog.String("option", option))

	return nil
}

// GetPoll returns the poll and whether it exists; a missing poll is not an error.
func (v *Voting) GetPoll(ctx context.Context, pollID string) (entity.Poll, bool, error) {
	const op = "voting.GetPoll"

	poll, err := v.pollStorage.GetPoll(ctx, pollID)
	if err != nil {
		if errors.Is(err, repo.ErrPollNotFound) {
			return entity.Poll{}, false, nil
		}
		return entity.Poll{}, false, fmt.Errorf("%s: %w", op, err)
	}

	return poll, true, nil
}

// GetPolls returns every poll ordered by ascending poll id.
func (v *Voting) GetPolls(ctx context.Context) ([]entity.Poll, error) {
	const op = "voting.GetPolls"

	polls, err := v.pollStorage.ListPolls(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return polls, nil
}

// GetVote returns the account's current ballot in the poll and whether one
// exists; never having voted is not an error.
func (v *Voting) GetVote(ctx context.Context, address, pollID string) (entity.Ballot, bool, error) {
	const op = "voting.GetVote"

	ballot, err := v.ballotStorage.GetBallot(ctx, address, pollID)
	if err != nil {
		if errors.Is(err, repo.ErrBallotNotFound) {
			return entity.Ballot{}, false, nil
		}
		return entity.Ballot{}, false, fmt.Errorf("%s: %w", op, err)
	}

	return ballot, true, nil
}
