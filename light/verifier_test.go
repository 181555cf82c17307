package light_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/tendermint/ics10-grandpa/internal/test/factory"
	"github.com/tendermint/ics10-grandpa/light"
	"github.com/tendermint/ics10-grandpa/types"
)

func TestVerifyJustification(t *testing.T) {
	var (
		voters   = factory.Voters("verify", 4, 1)
		outsider = factory.Voters("outsider", 1, 1)[0]
		set      = factory.AuthoritySet(3, voters)
		block    = factory.NextBlock(factory.GenesisBlock(10))
		other    = factory.NextBlockOnFork(factory.GenesisBlock(10), 1)
	)

	withPrecommits := func(pcs ...types.SignedPrecommit) *types.Justification {
		j := factory.MakeJustification(2, 3, block, nil)
		j.Commit.Precommits = pcs
		return &j
	}
	sign := func(v *factory.Voter) types.SignedPrecommit {
		return factory.SignPrecommit(v, 2, 3, block)
	}
	corrupt := func(pc types.SignedPrecommit) types.SignedPrecommit {
		pc.Signature = append([]byte(nil), pc.Signature...)
		pc.Signature[0] ^= 0xff
		return pc
	}

	testCases := []struct {
		name       string
		j          *types.Justification
		expSkipped int
		expErr     error
		expTally   uint64
	}{
		{
			name:     "all voters",
			j:        withPrecommits(sign(voters[0]), sign(voters[1]), sign(voters[2]), sign(voters[3])),
			expTally: 4,
		},
		{
			name:     "exactly 3 of 4",
			j:        withPrecommits(sign(voters[0]), sign(voters[1]), sign(voters[2])),
			expTally: 3,
		},
		{
			name:   "2 of 4 is not a supermajority",
			j:      withPrecommits(sign(voters[0]), sign(voters[1])),
			expErr: light.ErrInsufficientVotingPower{},
		},
		{
			name:       "unknown authority is skipped",
			j:          withPrecommits(sign(outsider), sign(voters[0]), sign(voters[1]), sign(voters[2])),
			expSkipped: 1,
			expTally:   3,
		},
		{
			name:       "bad signature is skipped",
			j:          withPrecommits(corrupt(sign(voters[0])), sign(voters[1]), sign(voters[2]), sign(voters[3])),
			expSkipped: 1,
			expTally:   3,
		},
		{
			name:   "bad signatures do not count",
			j:      withPrecommits(corrupt(sign(voters[0])), corrupt(sign(voters[1])), sign(voters[2]), sign(voters[3])),
			expErr: light.ErrInsufficientVotingPower{},
		},
		{
			name:       "repeated vote counts once",
			j:          withPrecommits(sign(voters[0]), sign(voters[0]), sign(voters[1]), sign(voters[2])),
			expSkipped: 1,
			expTally:   3,
		},
		{
			name: "repeated vote cannot reach threshold",
			j: withPrecommits(
				sign(voters[0]), sign(voters[0]), sign(voters[0]), sign(voters[1]),
			),
			expErr: light.ErrInsufficientVotingPower{},
		},
		{
			name: "equivocation aborts",
			j: withPrecommits(
				sign(voters[0]), factory.SignPrecommit(voters[0], 2, 3, other), sign(voters[1]), sign(voters[2]),
			),
			expErr: light.ErrDuplicateVote{},
		},
		{
			name: "vote for another fork is unlinked",
			j: withPrecommits(
				factory.SignPrecommit(voters[0], 2, 3, other), sign(voters[1]), sign(voters[2]), sign(voters[3]),
			),
			expSkipped: 1,
			expTally:   3,
		},
		{
			name: "vote signed for another round is invalid",
			j: withPrecommits(
				factory.SignPrecommit(voters[0], 3, 3, block), sign(voters[1]), sign(voters[2]), sign(voters[3]),
			),
			expSkipped: 1,
			expTally:   3,
		},
		{
			name: "vote signed for another set is invalid",
			j: withPrecommits(
				factory.SignPrecommit(voters[0], 2, 4, block), sign(voters[1]), sign(voters[2]), sign(voters[3]),
			),
			expSkipped: 1,
			expTally:   3,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			commit, err := light.VerifyJustification(tc.j, set)
			if tc.expErr != nil {
				require.Error(t, err)
				assert.IsType(t, tc.expErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expTally, commit.Tally.Uint64())
			assert.EqualValues(t, 4, commit.Total.Uint64())
			assert.Len(t, commit.Skipped, tc.expSkipped)
			assert.Equal(t, block.Hash(), commit.TargetHash)
			assert.Equal(t, uint64(2), commit.Round)
			assert.Equal(t, uint64(3), commit.SetID)
		})
	}
}

func TestVerifyJustificationEquivocationEvidence(t *testing.T) {
	var (
		voters = factory.Voters("equivocation", 4, 1)
		set    = factory.AuthoritySet(0, voters)
		block  = factory.NextBlock(factory.GenesisBlock(1))
		other  = factory.NextBlockOnFork(factory.GenesisBlock(1), 1)
	)

	j := factory.MakeJustification(7, 0, block, voters)
	j.Commit.Precommits = append(j.Commit.Precommits, factory.SignPrecommit(voters[2], 7, 0, other))

	_, err := light.VerifyJustification(&j, set)
	var dup light.ErrDuplicateVote
	require.True(t, errors.As(err, &dup))

	ev := dup.Evidence()
	require.NotNil(t, ev)
	assert.Equal(t, uint64(7), ev.Round)
	assert.Equal(t, uint64(0), ev.SetID)
	assert.Equal(t, voters[2].PubKey(), ev.First.ID)
	assert.NoError(t, ev.ValidateBasic())

	ok, err := light.CheckMisbehaviour(ev, set)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyJustificationOnDescendants(t *testing.T) {
	var (
		voters = factory.Voters("descendants", 3, 1)
		set    = factory.AuthoritySet(0, voters)
		target = factory.NextBlock(factory.GenesisBlock(1))
		chain  = factory.Chain(target, 0, 3)
		voted  = []types.BlockHeader{target, chain[0], chain[2]}
	)

	j := factory.MakeJustificationOnDescendants(1, 0, target, voted, chain, voters)
	commit, err := light.VerifyJustification(&j, set)
	require.NoError(t, err)
	assert.EqualValues(t, 3, commit.Tally.Uint64())

	// without the ancestry only the vote on the target is linked
	j.VotesAncestries = nil
	_, err = light.VerifyJustification(&j, set)
	var insufficient light.ErrInsufficientVotingPower
	require.True(t, errors.As(err, &insufficient))
	assert.EqualValues(t, 1, insufficient.Got.Uint64())
	assert.Len(t, insufficient.Skipped, 2)

	// a gap in the ancestry unlinks the votes above it
	j.VotesAncestries = []types.BlockHeader{chain[0], chain[2]}
	_, err = light.VerifyJustification(&j, set)
	require.True(t, errors.As(err, &insufficient))
	assert.EqualValues(t, 2, insufficient.Got.Uint64())
}

func TestVerifyJustificationWeighted(t *testing.T) {
	// one heavy authority alone holds more than 2/3 of the weight
	voters := factory.WeightedVoters("weighted", 70, 10, 10, 10)
	set := factory.AuthoritySet(0, voters)
	block := factory.NextBlock(factory.GenesisBlock(1))

	j := factory.MakeJustification(1, 0, block, voters[:1])
	_, err := light.VerifyJustification(&j, set)
	require.NoError(t, err)

	j = factory.MakeJustification(1, 0, block, voters[1:])
	_, err = light.VerifyJustification(&j, set)
	assert.IsType(t, light.ErrInsufficientVotingPower{}, err)
}

func TestVerifyJustificationMaxWeights(t *testing.T) {
	voters := factory.WeightedVoters("max", ^uint64(0), ^uint64(0), ^uint64(0))
	set := factory.AuthoritySet(0, voters)
	block := factory.NextBlock(factory.GenesisBlock(1))

	j := factory.MakeJustification(1, 0, block, voters)
	commit, err := light.VerifyJustification(&j, set)
	require.NoError(t, err)
	assert.True(t, commit.Tally.Eq(commit.Total))

	j = factory.MakeJustification(1, 0, block, voters[:2])
	_, err = light.VerifyJustification(&j, set)
	assert.IsType(t, light.ErrInsufficientVotingPower{}, err)
}

// Acceptance happens exactly when the weight of distinct, validly signed
// precommits exceeds two thirds of the total weight.
func TestVerifyJustificationSupermajorityProperty(t *testing.T) {
	block := factory.NextBlock(factory.GenesisBlock(1))

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 7).Draw(t, "n").(int)
		weights := make([]uint64, n)
		var total uint64
		for i := range weights {
			weights[i] = rapid.Uint64Range(1, 1000).Draw(t, "weight").(uint64)
			total += weights[i]
		}
		voters := factory.WeightedVoters("property", weights...)
		set := factory.AuthoritySet(0, voters)

		var (
			signers []*factory.Voter
			tally   uint64
		)
		for i, v := range voters {
			if rapid.Bool().Draw(t, "signs").(bool) {
				signers = append(signers, v)
				tally += weights[i]
			}
		}
		if len(signers) == 0 {
			return
		}

		j := factory.MakeJustification(1, 0, block, signers)
		if rapid.Bool().Draw(t, "duplicate").(bool) {
			j.Commit.Precommits = append(j.Commit.Precommits, j.Commit.Precommits[0])
		}

		_, err := light.VerifyJustification(&j, set)
		if 3*tally > 2*total {
			if err != nil {
				t.Fatalf("tally %d of %d rejected: %v", tally, total, err)
			}
		} else if err == nil {
			t.Fatalf("tally %d of %d accepted", tally, total)
		}
	})
}
