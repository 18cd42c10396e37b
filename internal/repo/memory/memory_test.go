package memory

import (
	"context"
	"testing"

	"github.com/14kear/poll-ledger/internal/entity"
	"github.com/14kear/poll-ledger/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_Config_WriteOnce(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.GetConfig(ctx)
	assert.ErrorIs(t, err, repo.ErrConfigNotFound)

	require.NoError(t, s.SaveConfig(ctx, entity.Config{Admin: "addr_admin"}))
	require.NoError(t, s.SaveConfig(ctx, entity.Config{Admin: "addr_other"}))

	config, err := s.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "addr_admin", config.Admin)
}

func TestStorage_SavePoll_Overwrites(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := entity.Poll{ID: "p1", Creator: "addr1", Question: "first?", Options: entity.NewOptionList([]string{"Yes"})}
	second := entity.Poll{ID: "p1", Creator: "addr2", Question: "second?", Options: entity.NewOptionList([]string{"No"})}

	require.NoError(t, s.SavePoll(ctx, first))
	require.NoError(t, s.SavePoll(ctx, second))

	poll, err := s.GetPoll(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "addr2", poll.Creator)
	assert.Equal(t, []string{"No"}, poll.Options.Labels())
}

func TestStorage_GetPoll_NotFound(t *testing.T) {
	s := New()

	_, err := s.GetPoll(context.Background(), "missing")
	assert.ErrorIs(t, err, repo.ErrPollNotFound)
}

func TestStorage_GetPoll_ReturnsOwnedCopy(t *testing.T) {
	s := New()
	ctx := context.Background()

	poll := entity.Poll{ID: "p1", Options: entity.NewOptionList([]string{"Yes"})}
	require.NoError(t, s.SavePoll(ctx, poll))

	loaded, err := s.GetPoll(ctx, "p1")
	require.NoError(t, err)
	require.True(t, loaded.Options.Increment("Yes"))

	reloaded, err := s.GetPoll(ctx, "p1")
	require.NoError(t, err)
	count, _ := reloaded.Options.Count("Yes")
	assert.Zero(t, count, "mutating a loaded poll must not leak into the store")
}

func TestStorage_ListPolls_AscendingByID(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, id := range []string{"b", "c", "a"} {
		require.NoError(t, s.SavePoll(ctx, entity.Poll{ID: id, Options: entity.NewOptionList(nil)}))
	}

	polls, err := s.ListPolls(ctx)
	require.NoError(t, err)
	require.Len(t, polls, 3)
	assert.Equal(t, "a", polls[0].ID)
	assert.Equal(t, "b", polls[1].ID)
	assert.Equal(t, "c", polls[2].ID)
}

func TestStorage_Ballots_CompositeKey(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.SaveBallot(ctx, "addr1", "p1", entity.Ballot{Option: "Now"}))
	require.NoError(t, s.SaveBallot(ctx, "addr1", "p2", entity.Ballot{Option: "Soon"}))
	require.NoError(t, s.SaveBallot(ctx, "addr2", "p1", entity.Ballot{Option: "Never"}))

	ballot, err := s.GetBallot(ctx, "addr1", "p1")
	require.NoError(t, err)
	assert.Equal(t, "Now", ballot.Option)

	ballot, err = s.GetBallot(ctx, "addr1", "p2")
	require.NoError(t, err)
	assert.Equal(t, "Soon", ballot.Option)

	_, err = s.GetBallot(ctx, "addr2", "p2")
	assert.ErrorIs(t, err, repo.ErrBallotNotFound)
}

func TestStorage_SaveBallot_Overwrites(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.SaveBallot(ctx, "addr1", "p1", entity.Ballot{Option: "Now"}))
	require.NoError(t, s.SaveBallot(ctx, "addr1", "p1", entity.Ballot{Option: "Soon"}))

	ballot, err := s.GetBallot(ctx, "addr1", "p1")
	require.NoError(t, err)
	assert.Equal(t, "Soon", ballot.Option)
}
