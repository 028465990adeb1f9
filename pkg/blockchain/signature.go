package blockchain

var (
	// TagBlockProducer is the domain separation tag for the producer signature.
	TagBlockProducer = []byte("EMB_BH_")
	// TagBlockApprover is the domain separation tag for approver signatures.
	TagBlockApprover = []byte("EMB_BA_")
)
