package types_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendermint/ics10-grandpa/internal/test/factory"
	"github.com/tendermint/ics10-grandpa/types"
)

func TestHeaderAnyRoundTrip(t *testing.T) {
	voters := factory.Voters("proto", 3, 1)
	genesis := factory.GenesisBlock(1)
	next := factory.NextBlock(genesis, types.NewScheduledChangeDigest(factory.Authorities(voters), 0))
	j := factory.MakeJustification(3, 0, next, voters)
	h := factory.MakeHeader(next, factory.GenesisTime.Add(time.Minute), j)

	msg, err := types.PackClientMessage(h)
	require.NoError(t, err)
	assert.Equal(t, "/ibc.lightclients.grandpa.v1.Header", msg.TypeUrl)

	out, err := types.UnpackClientMessage(msg)
	require.NoError(t, err)

	got, ok := out.(*types.Header)
	require.True(t, ok)
	assert.Equal(t, h.Hash(), got.Hash())
	assert.True(t, h.Timestamp.Equal(got.Timestamp))
	if diff := cmp.Diff(h.Justification.Commit, got.Justification.Commit); diff != "" {
		t.Errorf("commit mismatch (-want +got):\n%s", diff)
	}
}

func TestMisbehaviourAnyRoundTrip(t *testing.T) {
	voters := factory.Voters("proto", 1, 1)
	a := factory.NextBlockOnFork(factory.GenesisBlock(1), 0)
	b := factory.NextBlockOnFork(factory.GenesisBlock(1), 1)

	m := &types.Misbehaviour{
		ClientID: "grandpa-0",
		Evidence: &types.DoubleVote{
			SetID:  0,
			Round:  1,
			First:  factory.SignPrecommit(voters[0], 1, 0, a),
			Second: factory.SignPrecommit(voters[0], 1, 0, b),
		},
	}

	msg, err := types.PackClientMessage(m)
	require.NoError(t, err)

	out, err := types.UnpackClientMessage(msg)
	require.NoError(t, err)
	if diff := cmp.Diff(m, out); diff != "" {
		t.Errorf("misbehaviour mismatch (-want +got):\n%s", diff)
	}
}

func TestClientStateAnyRoundTrip(t *testing.T) {
	voters := factory.Voters("proto", 2, 5)
	g := factory.MakeGenesis(factory.GenesisBlock(9), factory.GenesisTime, 4, voters, factory.DefaultTrustingPeriod)
	g.ClientState.PendingChange = &types.PendingChange{
		NextAuthorities: factory.Authorities(voters),
		ScheduledHeight: 9,
		EffectiveHeight: 12,
	}

	msg, err := types.PackClientState(g.ClientState)
	require.NoError(t, err)
	cs, err := types.UnpackClientState(msg)
	require.NoError(t, err)
	assert.Equal(t, g.ClientState, cs)

	hint := g.AuthoritySet.Hash()
	g.ConsensusState.NextAuthoritySetHint = &hint
	msg, err = types.PackConsensusState(g.ConsensusState)
	require.NoError(t, err)
	cons, err := types.UnpackConsensusState(msg)
	require.NoError(t, err)
	assert.True(t, g.ConsensusState.Timestamp.Equal(cons.Timestamp))
	assert.Equal(t, g.ConsensusState.BlockHash, cons.BlockHash)
	assert.Equal(t, hint, *cons.NextAuthoritySetHint)
}

func TestGenesisFromProto(t *testing.T) {
	voters := factory.Voters("proto", 2, 5)
	g := factory.MakeGenesis(factory.GenesisBlock(9), factory.GenesisTime, 4, voters, factory.DefaultTrustingPeriod)

	out, err := types.GenesisFromProto(g.ToProto())
	require.NoError(t, err)
	assert.Equal(t, g.AuthoritySet, out.AuthoritySet)

	pg := g.ToProto()
	pg.AuthoritySet.SetId = 5
	_, err = types.GenesisFromProto(pg)
	require.Error(t, err)
}

func TestGenesisPendingChange(t *testing.T) {
	voters := factory.Voters("genesis-pending", 3, 1)
	g := factory.MakeGenesis(factory.GenesisBlock(9), factory.GenesisTime, 0, voters, factory.DefaultTrustingPeriod)

	testCases := []struct {
		name      string
		effective uint64
		expErr    bool
	}{
		{"effective above latest", 10, false},
		{"effective at latest", 9, true},
		{"effective below latest", 8, true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			cs := g.ClientState.Copy()
			cs.PendingChange = &types.PendingChange{
				NextAuthorities: factory.Authorities(voters),
				ScheduledHeight: 8,
				EffectiveHeight: tc.effective,
			}
			genesis := types.Genesis{ClientState: cs, ConsensusState: g.ConsensusState, AuthoritySet: g.AuthoritySet}
			if tc.expErr {
				assert.Error(t, genesis.ValidateBasic())
			} else {
				assert.NoError(t, genesis.ValidateBasic())
			}
		})
	}
}
