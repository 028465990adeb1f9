// Codec methods for the `fieldNumber` tagged structs in this package. Keep
// in sync with the struct definitions.

package blockchain

import (
	"github.com/EmberHQ/ember-engine/pkg/codec"
)

func (e *BlockHeader) Encode() ([]byte, error) {
	writer := codec.NewWriter()
	writer.WriteUInt32(1, e.Version)
	writer.WriteUInt32(2, e.Timestamp)
	writer.WriteUInt(3, e.ChainLength)
	writer.WriteUInt(4, e.BurnSpent)
	writer.WriteBytes(5, e.ConsensusHash)
	writer.WriteBytes(6, e.PreviousBlockID)
	writer.WriteBytes(7, e.TransactionRoot)
	writer.WriteBytes(8, e.StateRoot)
	writer.WriteBytes(9, e.ProducerSignature)
	writer.WriteBytesArray(10, codec.HexArrayToBytesArray(e.ApproverSignatures))
	writer.WriteBytes(11, e.ApproverBitfield)
	return writer.Result(), nil
}

func (e *BlockHeader) MustEncode() []byte {
	encoded, err := e.Encode()
	if err != nil {
		panic(err)
	}
	return encoded
}

func (e *BlockHeader) Decode(data []byte) error {
	reader := codec.NewReader(data)
	return e.DecodeFromReader(reader)
}

func (e *BlockHeader) MustDecode(data []byte) {
	if err := e.Decode(data); err != nil {
		panic(err)
	}
}

func (e *BlockHeader) DecodeStrict(data []byte) error {
	reader := codec.NewReader(data)
	if err := e.DecodeStrictFromReader(reader); err != nil {
		return err
	}
	if reader.HasUnreadBytes() {
		return codec.ErrUnreadBytes
	}
	return nil
}

func (e *BlockHeader) DecodeFromReader(reader *codec.Reader) error {
	{
		val, err := reader.ReadUInt32(1, false)
		if err != nil {
			return err
		}
		e.Version = val
	}
	{
		val, err := reader.ReadUInt32(2, false)
		if err != nil {
			return err
		}
		e.Timestamp = val
	}
	{
		val, err := reader.ReadUInt(3, false)
		if err != nil {
			return err
		}
		e.ChainLength = val
	}
	{
		val, err := reader.ReadUInt(4, false)
		if err != nil {
			return err
		}
		e.BurnSpent = val
	}
	{
		val, err := reader.ReadBytes(5, false)
		if err != nil {
			return err
		}
		e.ConsensusHash = val
	}
	{
		val, err := reader.ReadBytes(6, false)
		if err != nil {
			return err
		}
		e.PreviousBlockID = val
	}
	{
		val, err := reader.ReadBytes(7, false)
		if err != nil {
			return err
		}
		e.TransactionRoot = val
	}
	{
		val, err := reader.ReadBytes(8, false)
		if err != nil {
			return err
		}
		e.StateRoot = val
	}
	{
		val, err := reader.ReadBytes(9, false)
		if err != nil {
			return err
		}
		e.ProducerSignature = val
	}
	{
		val, err := reader.ReadBytesArray(10)
		if err != nil {
			return err
		}
		e.ApproverSignatures = codec.BytesArrayToHexArray(val)
	}
	{
		val, err := reader.ReadBytes(11, false)
		if err != nil {
			return err
		}
		e.ApproverBitfield = val
	}
	return nil
}

func (e *BlockHeader) DecodeStrictFromReader(reader *codec.Reader) error {
	{
		val, err := reader.ReadUInt32(1, true)
		if err != nil {
			return err
		}
		e.Version = val
	}
	{
		val, err := reader.ReadUInt32(2, true)
		if err != nil {
			return err
		}
		e.Timestamp = val
	}
	{
		val, err := reader.ReadUInt(3, true)
		if err != nil {
			return err
		}
		e.ChainLength = val
	}
	{
		val, err := reader.ReadUInt(4, true)
		if err != nil {
			return err
		}
		e.BurnSpent = val
	}
	{
		val, err := reader.ReadBytes(5, true)
		if err != nil {
			return err
		}
		e.ConsensusHash = val
	}
	{
		val, err := reader.ReadBytes(6, true)
		if err != nil {
			return err
		}
		e.PreviousBlockID = val
	}
	{
		val, err := reader.ReadBytes(7, true)
		if err != nil {
			return err
		}
		e.TransactionRoot = val
	}
	{
		val, err := reader.ReadBytes(8, true)
		if err != nil {
			return err
		}
		e.StateRoot = val
	}
	{
		val, err := reader.ReadBytes(9, true)
		if err != nil {
			return err
		}
		e.ProducerSignature = val
	}
	{
		val, err := reader.ReadBytesArray(10)
		if err != nil {
			return err
		}
		e.ApproverSignatures = codec.BytesArrayToHexArray(val)
	}
	{
		val, err := reader.ReadBytes(11, true)
		if err != nil {
			return err
		}
		e.ApproverBitfield = val
	}
	return nil
}

func (e *producerSigningBlockHeader) Encode() ([]byte, error) {
	writer := codec.NewWriter()
	writer.WriteUInt32(1, e.Version)
	writer.WriteUInt32(2, e.Timestamp)
	writer.WriteUInt(3, e.ChainLength)
	writer.WriteUInt(4, e.BurnSpent)
	writer.WriteBytes(5, e.ConsensusHash)
	writer.WriteBytes(6, e.PreviousBlockID)
	writer.WriteBytes(7, e.TransactionRoot)
	writer.WriteBytes(8, e.StateRoot)
	return writer.Result(), nil
}

func (e *producerSigningBlockHeader) MustEncode() []byte {
	encoded, err := e.Encode()
	if err != nil {
		panic(err)
	}
	return encoded
}

func (e *producerSigningBlockHeader) Decode(data []byte) error {
	reader := codec.NewReader(data)
	return e.DecodeFromReader(reader)
}

func (e *producerSigningBlockHeader) MustDecode(data []byte) {
	if err := e.Decode(data); err != nil {
		panic(err)
	}
}

func (e *producerSigningBlockHeader) DecodeStrict(data []byte) error {
	reader := codec.NewReader(data)
	if err := e.DecodeStrictFromReader(reader); err != nil {
		return err
	}
	if reader.HasUnreadBytes() {
		return codec.ErrUnreadBytes
	}
	return nil
}

func (e *producerSigningBlockHeader) DecodeFromReader(reader *codec.Reader) error {
	{
		val, err := reader.ReadUInt32(1, false)
		if err != nil {
			return err
		}
		e.Version = val
	}
	{
		val, err := reader.ReadUInt32(2, false)
		if err != nil {
			return err
		}
		e.Timestamp = val
	}
	{
		val, err := reader.ReadUInt(3, false)
		if err != nil {
			return err
		}
		e.ChainLength = val
	}
	{
		val, err := reader.ReadUInt(4, false)
		if err != nil {
			return err
		}
		e.BurnSpent = val
	}
	{
		val, err := reader.ReadBytes(5, false)
		if err != nil {
			return err
		}
		e.ConsensusHash = val
	}
	{
		val, err := reader.ReadBytes(6, false)
		if err != nil {
			return err
		}
		e.PreviousBlockID = val
	}
	{
		val, err := reader.ReadBytes(7, false)
		if err != nil {
			return err
		}
		e.TransactionRoot = val
	}
	{
		val, err := reader.ReadBytes(8, false)
		if err != nil {
			return err
		}
		e.StateRoot = val
	}
	return nil
}

func (e *producerSigningBlockHeader) DecodeStrictFromReader(reader *codec.Reader) error {
	{
		val, err := reader.ReadUInt32(1, true)
		if err != nil {
			return err
		}
		e.Version = val
	}
	{
		val, err := reader.ReadUInt32(2, true)
		if err != nil {
			return err
		}
		e.Timestamp = val
	}
	{
		val, err := reader.ReadUInt(3, true)
		if err != nil {
			return err
		}
		e.ChainLength = val
	}
	{
		val, err := reader.ReadUInt(4, true)
		if err != nil {
			return err
		}
		e.BurnSpent = val
	}
	{
		val, err := reader.ReadBytes(5, true)
		if err != nil {
			return err
		}
		e.ConsensusHash = val
	}
	{
		val, err := reader.ReadBytes(6, true)
		if err != nil {
			return err
		}
		e.PreviousBlockID = val
	}
	{
		val, err := reader.ReadBytes(7, true)
		if err != nil {
			return err
		}
		e.TransactionRoot = val
	}
	{
		val, err := reader.ReadBytes(8, true)
		if err != nil {
			return err
		}
		e.StateRoot = val
	}
	return nil
}

func (e *approverSigningBlockHeader) Encode() ([]byte, error) {
	writer := codec.NewWriter()
	writer.WriteUInt32(1, e.Version)
	writer.WriteUInt32(2, e.Timestamp)
	writer.WriteUInt(3, e.ChainLength)
	writer.WriteUInt(4, e.BurnSpent)
	writer.WriteBytes(5, e.ConsensusHash)
	writer.WriteBytes(6, e.PreviousBlockID)
	writer.WriteBytes(7, e.TransactionRoot)
	writer.WriteBytes(8, e.StateRoot)
	writer.WriteBytes(9, e.ProducerSignature)
	return writer.Result(), nil
}

func (e *approverSigningBlockHeader) MustEncode() []byte {
	encoded, err := e.Encode()
	if err != nil {
		panic(err)
	}
	return encoded
}

func (e *approverSigningBlockHeader) Decode(data []byte) error {
	reader := codec.NewReader(data)
	return e.DecodeFromReader(reader)
}

func (e *approverSigningBlockHeader) MustDecode(data []byte) {
	if err := e.Decode(data); err != nil {
		panic(err)
	}
}

func (e *approverSigningBlockHeader) DecodeStrict(data []byte) error {
	reader := codec.NewReader(data)
	if err := e.DecodeStrictFromReader(reader); err != nil {
		return err
	}
	if reader.HasUnreadBytes() {
		return codec.ErrUnreadBytes
	}
	return nil
}

func (e *approverSigningBlockHeader) DecodeFromReader(reader *codec.Reader) error {
	{
		val, err := reader.ReadUInt32(1, false)
		if err != nil {
			return err
		}
		e.Version = val
	}
	{
		val, err := reader.ReadUInt32(2, false)
		if err != nil {
			return err
		}
		e.Timestamp = val
	}
	{
		val, err := reader.ReadUInt(3, false)
		if err != nil {
			return err
		}
		e.ChainLength = val
	}
	{
		val, err := reader.ReadUInt(4, false)
		if err != nil {
			return err
		}
		e.BurnSpent = val
	}
	{
		val, err := reader.ReadBytes(5, false)
		if err != nil {
			return err
		}
		e.ConsensusHash = val
	}
	{
		val, err := reader.ReadBytes(6, false)
		if err != nil {
			return err
		}
		e.PreviousBlockID = val
	}
	{
		val, err := reader.ReadBytes(7, false)
		if err != nil {
			return err
		}
		e.TransactionRoot = val
	}
	{
		val, err := reader.ReadBytes(8, false)
		if err != nil {
			return err
		}
		e.StateRoot = val
	}
	{
		val, err := reader.ReadBytes(9, false)
		if err != nil {
			return err
		}
		e.ProducerSignature = val
	}
	return nil
}

func (e *approverSigningBlockHeader) DecodeStrictFromReader(reader *codec.Reader) error {
	{
		val, err := reader.ReadUInt32(1, true)
		if err != nil {
			return err
		}
		e.Version = val
	}
	{
		val, err := reader.ReadUInt32(2, true)
		if err != nil {
			return err
		}
		e.Timestamp = val
	}
	{
		val, err := reader.ReadUInt(3, true)
		if err != nil {
			return err
		}
		e.ChainLength = val
	}
	{
		val, err := reader.ReadUInt(4, true)
		if err != nil {
			return err
		}
		e.BurnSpent = val
	}
	{
		val, err := reader.ReadBytes(5, true)
		if err != nil {
			return err
		}
		e.ConsensusHash = val
	}
	{
		val, err := reader.ReadBytes(6, true)
		if err != nil {
			return err
		}
		e.PreviousBlockID = val
	}
	{
		val, err := reader.ReadBytes(7, true)
		if err != nil {
			return err
		}
		e.TransactionRoot = val
	}
	{
		val, err := reader.ReadBytes(8, true)
		if err != nil {
			return err
		}
		e.StateRoot = val
	}
	{
		val, err := reader.ReadBytes(9, true)
		if err != nil {
			return err
		}
		e.ProducerSignature = val
	}
	return nil
}
