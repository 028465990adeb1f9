package blockchain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmberHQ/ember-engine/pkg/crypto"
)

func TestTenureCauseResetDimensions(t *testing.T) {
	cases := []struct {
		cause    TenureCause
		expected []BudgetDimension
	}{
		{CauseBlockFound, allDimensions},
		{CauseExtended, allDimensions},
		{CauseExtendedRuntime, []BudgetDimension{DimensionRuntime}},
		{CauseExtendedReadCount, []BudgetDimension{DimensionReadCount}},
		{CauseExtendedReadLength, []BudgetDimension{DimensionReadLength}},
		{CauseExtendedWriteCount, []BudgetDimension{DimensionWriteCount}},
		{CauseExtendedWriteLength, []BudgetDimension{DimensionWriteLength}},
	}
	for _, testCase := range cases {
		dims, err := testCase.cause.ResetDimensions()
		require.NoError(t, err, testCase.cause.String())
		assert.Equal(t, testCase.expected, dims)
	}

	_, err := TenureCause(99).ResetDimensions()
	assert.Error(t, err)
	assert.False(t, TenureCause(99).Valid())
}

func TestTenureCauseNewTenure(t *testing.T) {
	assert.True(t, CauseBlockFound.NewTenure())
	assert.False(t, CauseExtended.NewTenure())
	assert.False(t, CauseExtendedRuntime.NewTenure())
}

func TestTenureChangeValidate(t *testing.T) {
	valid := func() *TenureChange {
		return &TenureChange{
			TenureID:         crypto.RandomBytes(ConsensusHashLength),
			PrevTenureID:     crypto.RandomBytes(ConsensusHashLength),
			BurnViewHash:     crypto.RandomBytes(ConsensusHashLength),
			Cause:            uint32(CauseBlockFound),
			PrevTenureBlocks: 12,
		}
	}

	assert.NoError(t, valid().Validate())

	change := valid()
	change.TenureID = change.TenureID[:10]
	assert.Error(t, change.Validate())

	change = valid()
	change.BurnViewHash = nil
	assert.Error(t, change.Validate())

	change = valid()
	change.Cause = 42
	assert.Error(t, change.Validate())
}

func TestApproverSet(t *testing.T) {
	pub1, _, err := crypto.GetKeys("first approver")
	require.NoError(t, err)
	pub2, _, err := crypto.GetKeys("second approver")
	require.NoError(t, err)
	pub3, _, err := crypto.GetKeys("third approver")
	require.NoError(t, err)

	set := &ApproverSet{
		Approvers: []*ApproverEntry{
			{PublicKey: pub1, Weight: 40},
			{PublicKey: pub2, Weight: 35},
			{PublicKey: pub3, Weight: 25},
		},
	}
	require.NoError(t, set.Validate())
	assert.Equal(t, uint64(100), set.TotalWeight())
	assert.Equal(t, 0, set.IndexOf(pub1))
	assert.Equal(t, 2, set.IndexOf(pub3))
	assert.Equal(t, -1, set.IndexOf(crypto.RandomBytes(crypto.PublicKeyLength)))
	assert.Equal(t, uint64(35), set.WeightAt(1))
	assert.Equal(t, uint64(0), set.WeightAt(3))
	assert.Equal(t, uint64(0), set.WeightAt(-1))

	duplicated := &ApproverSet{
		Approvers: []*ApproverEntry{
			{PublicKey: pub1, Weight: 40},
			{PublicKey: pub1, Weight: 35},
		},
	}
	assert.Error(t, duplicated.Validate())

	zeroWeight := &ApproverSet{
		Approvers: []*ApproverEntry{
			{PublicKey: pub1, Weight: 0},
		},
	}
	assert.Error(t, zeroWeight.Validate())
}

func TestApproverSetCodecRoundTrip(t *testing.T) {
	pub, _, err := crypto.GetKeys("first approver")
	require.NoError(t, err)
	set := &ApproverSet{
		Approvers: []*ApproverEntry{
			{PublicKey: pub, Weight: 77},
		},
	}
	decoded := &ApproverSet{}
	require.NoError(t, decoded.DecodeStrict(set.MustEncode()))
	require.Len(t, decoded.Approvers, 1)
	assert.Equal(t, set.Approvers[0].PublicKey, decoded.Approvers[0].PublicKey)
	assert.Equal(t, uint64(77), decoded.Approvers[0].Weight)
}
