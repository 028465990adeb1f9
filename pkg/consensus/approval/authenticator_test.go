package approval

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmberHQ/ember-engine/pkg/blockchain"
	"github.com/EmberHQ/ember-engine/pkg/codec"
	"github.com/EmberHQ/ember-engine/pkg/collection/bytes"
	"github.com/EmberHQ/ember-engine/pkg/crypto"
	"github.com/EmberHQ/ember-engine/pkg/log"
)

var testChainID = []byte{0x00, 0x00, 0x00, 0x01}

type testApprover struct {
	privateKey []byte
	publicKey  []byte
	weight     uint64
}

func newTestApprovers(t *testing.T, weights ...uint64) ([]*testApprover, *blockchain.ApproverSet) {
	t.Helper()
	approvers := make([]*testApprover, len(weights))
	entries := make([]*blockchain.ApproverEntry, len(weights))
	for i, weight := range weights {
		publicKey, privateKey, err := crypto.GetKeys(fmt.Sprintf("approver %d", i))
		require.NoError(t, err)
		approvers[i] = &testApprover{privateKey: privateKey, publicKey: publicKey, weight: weight}
		entries[i] = &blockchain.ApproverEntry{PublicKey: publicKey, Weight: weight}
	}
	return approvers, &blockchain.ApproverSet{Approvers: entries}
}

func newSignedHeader(t *testing.T, producerKey []byte) *blockchain.BlockHeader {
	t.Helper()
	header := &blockchain.BlockHeader{
		Version:         1,
		Timestamp:       1660000000,
		ChainLength:     10,
		BurnSpent:       5000,
		ConsensusHash:   crypto.RandomBytes(blockchain.ConsensusHashLength),
		PreviousBlockID: crypto.RandomBytes(blockchain.IDLength),
		TransactionRoot: crypto.RandomBytes(32),
		StateRoot:       crypto.RandomBytes(32),
	}
	require.NoError(t, header.SignProducer(testChainID, producerKey))
	return header
}

// approve appends the signatures of the approvers at the given table
// indices, in the order given.
func approve(t *testing.T, header *blockchain.BlockHeader, approvers []*testApprover, indices ...int) {
	t.Helper()
	hash := header.ApproverSigningHash(testChainID)
	for _, index := range indices {
		signature, err := crypto.Sign(approvers[index].privateKey, hash)
		require.NoError(t, err)
		header.ApproverSignatures = append(header.ApproverSignatures, signature)
	}
}

func TestAuthenticateThresholdBoundary(t *testing.T) {
	producerPub, producerPriv, err := crypto.GetKeys("block producer")
	require.NoError(t, err)
	approvers, set := newTestApprovers(t, 40, 30, 29, 1)
	require.Equal(t, uint64(100), set.TotalWeight())
	auth := NewAuthenticator(log.NewSilentLogger(), testChainID)

	// 40+30 = 70 of 100 is exactly the threshold.
	header := newSignedHeader(t, producerPriv)
	approve(t, header, approvers, 0, 1)
	result, err := auth.Authenticate(header, producerPub, set)
	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Equal(t, uint64(70), result.Weight)
	assert.Equal(t, uint64(70), result.Threshold)
	participation := bytes.NewBitField(len(set.Approvers))
	bytes.SetBit(participation, 0)
	bytes.SetBit(participation, 1)
	assert.Equal(t, codec.Hex(participation), result.Participation)

	// 40+29 = 69 of 100 stays pending, one short of the threshold.
	header = newSignedHeader(t, producerPriv)
	approve(t, header, approvers, 0, 2)
	result, err = auth.Authenticate(header, producerPub, set)
	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.True(t, result.Pending)
	assert.Equal(t, uint64(69), result.Weight)
}

func TestThreshold(t *testing.T) {
	assert.Equal(t, uint64(70), Threshold(100))
	assert.Equal(t, uint64(7), Threshold(10))
	assert.Equal(t, uint64(1), Threshold(1))
	assert.Equal(t, uint64(70), Threshold(99))
	assert.Equal(t, uint64(0), Threshold(0))
}

func TestAuthenticateOrderingViolation(t *testing.T) {
	producerPub, producerPriv, err := crypto.GetKeys("block producer")
	require.NoError(t, err)
	approvers, set := newTestApprovers(t, 25, 25, 25, 25)
	auth := NewAuthenticator(log.NewSilentLogger(), testChainID)

	// Full weight but out of order. Rejected unconditionally.
	header := newSignedHeader(t, producerPriv)
	approve(t, header, approvers, 0, 2, 1, 3)
	_, err = auth.Authenticate(header, producerPub, set)
	assert.ErrorIs(t, err, ErrApproverOrdering)

	// A repeated approver is an ordering violation too.
	header = newSignedHeader(t, producerPriv)
	approve(t, header, approvers, 0, 1, 1, 2, 3)
	_, err = auth.Authenticate(header, producerPub, set)
	assert.ErrorIs(t, err, ErrApproverOrdering)
}

func TestAuthenticateUnknownApprover(t *testing.T) {
	producerPub, producerPriv, err := crypto.GetKeys("block producer")
	require.NoError(t, err)
	approvers, set := newTestApprovers(t, 50, 50)
	auth := NewAuthenticator(log.NewSilentLogger(), testChainID)

	header := newSignedHeader(t, producerPriv)
	approve(t, header, approvers, 0, 1)
	hash := header.ApproverSigningHash(testChainID)
	_, outsiderPriv, err := crypto.GetKeys("outsider signer")
	require.NoError(t, err)
	signature, err := crypto.Sign(outsiderPriv, hash)
	require.NoError(t, err)
	header.ApproverSignatures = append(header.ApproverSignatures, signature)

	_, err = auth.Authenticate(header, producerPub, set)
	assert.ErrorIs(t, err, ErrUnknownApprover)
}

func TestAuthenticateProducerMismatch(t *testing.T) {
	_, producerPriv, err := crypto.GetKeys("block producer")
	require.NoError(t, err)
	wrongPub, _, err := crypto.GetKeys("somebody else")
	require.NoError(t, err)
	approvers, set := newTestApprovers(t, 100)
	auth := NewAuthenticator(log.NewSilentLogger(), testChainID)

	header := newSignedHeader(t, producerPriv)
	approve(t, header, approvers, 0)
	_, err = auth.Authenticate(header, wrongPub, set)
	assert.ErrorIs(t, err, ErrProducerMismatch)
}

func TestAuthenticateShadowHeader(t *testing.T) {
	_, set := newTestApprovers(t, 40, 35, 25)
	auth := NewAuthenticator(log.NewSilentLogger(), testChainID)

	header := &blockchain.BlockHeader{
		Version:         1 | blockchain.VersionShadowFlag,
		Timestamp:       1660000000,
		ChainLength:     10,
		ConsensusHash:   crypto.RandomBytes(blockchain.ConsensusHashLength),
		PreviousBlockID: crypto.RandomBytes(blockchain.IDLength),
		TransactionRoot: crypto.RandomBytes(32),
		StateRoot:       crypto.RandomBytes(32),
	}
	header.Init(testChainID)
	require.NoError(t, header.Validate())

	// No signatures at all, yet granted the full table weight.
	result, err := auth.Authenticate(header, nil, set)
	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Equal(t, uint64(100), result.Weight)
}

func TestAuthenticateBitfieldMismatch(t *testing.T) {
	producerPub, producerPriv, err := crypto.GetKeys("block producer")
	require.NoError(t, err)
	approvers, set := newTestApprovers(t, 50, 50)
	auth := NewAuthenticator(log.NewSilentLogger(), testChainID)

	header := newSignedHeader(t, producerPriv)
	// Bitfield marks only index 0 but index 1 also signs.
	bitfield := bytes.NewBitField(len(set.Approvers))
	bytes.SetBit(bitfield, 0)
	header.ApproverBitfield = bitfield
	approve(t, header, approvers, 0, 1)
	_, err = auth.Authenticate(header, producerPub, set)
	assert.ErrorIs(t, err, ErrApproverOrdering)
}

// With single use signatures two competing headers split the table weight.
// Whatever the assignment, at most one header can reach the threshold.
func TestAuthenticateCompetingHeadersCannotBothFinalize(t *testing.T) {
	producerPub, producerPriv, err := crypto.GetKeys("block producer")
	require.NoError(t, err)
	approvers, set := newTestApprovers(t, 13, 13, 13, 13, 12, 12, 12, 12)
	require.Equal(t, uint64(100), set.TotalWeight())
	auth := NewAuthenticator(log.NewSilentLogger(), testChainID)

	left := newSignedHeader(t, producerPriv)
	right := newSignedHeader(t, producerPriv)
	right.Timestamp++
	require.NoError(t, right.SignProducer(testChainID, producerPriv))

	signatureFor := func(header *blockchain.BlockHeader, index int) codec.Hex {
		hash := header.ApproverSigningHash(testChainID)
		signature, err := crypto.Sign(approvers[index].privateKey, hash)
		require.NoError(t, err)
		return signature
	}

	for assignment := 0; assignment < 1<<len(approvers); assignment++ {
		var leftSigs, rightSigs []codec.Hex
		for index := range approvers {
			if assignment&(1<<index) != 0 {
				leftSigs = append(leftSigs, signatureFor(left, index))
			} else {
				rightSigs = append(rightSigs, signatureFor(right, index))
			}
		}
		left.ApproverSignatures = leftSigs
		right.ApproverSignatures = rightSigs

		leftResult, err := auth.Authenticate(left, producerPub, set)
		require.NoError(t, err)
		rightResult, err := auth.Authenticate(right, producerPub, set)
		require.NoError(t, err)
		assert.False(t, leftResult.Accepted && rightResult.Accepted,
			"assignment %b finalized both competing headers", assignment)
	}
}
