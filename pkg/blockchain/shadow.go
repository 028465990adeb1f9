package blockchain

// NewShadowHeader synthesizes an emergency header outside normal block
// production. The shadow flag exempts it from signature authentication
// only. Linkage and chain length rules still apply, so the caller must
// provide a parent that is the current canonical tip.
func NewShadowHeader(chainID []byte, parent *BlockHeader, tenureID []byte, timestamp uint32, transactionRoot, stateRoot []byte) *BlockHeader {
	header := &BlockHeader{
		Version:            parent.Version | VersionShadowFlag,
		Timestamp:          timestamp,
		ChainLength:        parent.ChainLength + 1,
		BurnSpent:          0,
		ConsensusHash:      tenureID,
		PreviousBlockID:    parent.ID,
		TransactionRoot:    transactionRoot,
		StateRoot:          stateRoot,
		ProducerSignature:  nil,
		ApproverSignatures: nil,
		ApproverBitfield:   nil,
	}
	header.Init(chainID)
	return header
}
