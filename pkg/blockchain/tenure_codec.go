// Codec methods for the `fieldNumber` tagged structs in this package. Keep
// in sync with the struct definitions.

package blockchain

import (
	"github.com/EmberHQ/ember-engine/pkg/codec"
)

func (e *TenureChange) Encode() ([]byte, error) {
	writer := codec.NewWriter()
	writer.WriteBytes(1, e.TenureID)
	writer.WriteBytes(2, e.PrevTenureID)
	writer.WriteBytes(3, e.BurnViewHash)
	writer.WriteUInt32(4, e.Cause)
	writer.WriteUInt32(5, e.PrevTenureBlocks)
	return writer.Result(), nil
}

func (e *TenureChange) MustEncode() []byte {
	encoded, err := e.Encode()
	if err != nil {
		panic(err)
	}
	return encoded
}

func (e *TenureChange) Decode(data []byte) error {
	reader := codec.NewReader(data)
	return e.DecodeFromReader(reader)
}

func (e *TenureChange) MustDecode(data []byte) {
	if err := e.Decode(data); err != nil {
		panic(err)
	}
}

func (e *TenureChange) DecodeStrict(data []byte) error {
	reader := codec.NewReader(data)
	if err := e.DecodeStrictFromReader(reader); err != nil {
		return err
	}
	if reader.HasUnreadBytes() {
		return codec.ErrUnreadBytes
	}
	return nil
}

func (e *TenureChange) DecodeFromReader(reader *codec.Reader) error {
	{
		val, err := reader.ReadBytes(1, false)
		if err != nil {
			return err
		}
		e.TenureID = val
	}
	{
		val, err := reader.ReadBytes(2, false)
		if err != nil {
			return err
		}
		e.PrevTenureID = val
	}
	{
		val, err := reader.ReadBytes(3, false)
		if err != nil {
			return err
		}
		e.BurnViewHash = val
	}
	{
		val, err := reader.ReadUInt32(4, false)
		if err != nil {
			return err
		}
		e.Cause = val
	}
	{
		val, err := reader.ReadUInt32(5, false)
		if err != nil {
			return err
		}
		e.PrevTenureBlocks = val
	}
	return nil
}

func (e *TenureChange) DecodeStrictFromReader(reader *codec.Reader) error {
	{
		val, err := reader.ReadBytes(1, true)
		if err != nil {
			return err
		}
		e.TenureID = val
	}
	{
		val, err := reader.ReadBytes(2, true)
		if err != nil {
			return err
		}
		e.PrevTenureID = val
	}
	{
		val, err := reader.ReadBytes(3, true)
		if err != nil {
			return err
		}
		e.BurnViewHash = val
	}
	{
		val, err := reader.ReadUInt32(4, true)
		if err != nil {
			return err
		}
		e.Cause = val
	}
	{
		val, err := reader.ReadUInt32(5, true)
		if err != nil {
			return err
		}
		e.PrevTenureBlocks = val
	}
	return nil
}

func (e *TenureEvent) Encode() ([]byte, error) {
	writer := codec.NewWriter()
	writer.WriteBytes(1, e.TenureID)
	writer.WriteBytes(2, e.PrevTenureID)
	writer.WriteBytes(3, e.BurnViewHash)
	writer.WriteUInt32(4, e.Cause)
	writer.WriteUInt(5, e.CoinbaseHeight)
	writer.WriteUInt32(6, e.PrevTenureBlocks)
	writer.WriteUInt(7, e.BurnHeight)
	return writer.Result(), nil
}

func (e *TenureEvent) MustEncode() []byte {
	encoded, err := e.Encode()
	if err != nil {
		panic(err)
	}
	return encoded
}

func (e *TenureEvent) Decode(data []byte) error {
	reader := codec.NewReader(data)
	return e.DecodeFromReader(reader)
}

func (e *TenureEvent) MustDecode(data []byte) {
	if err := e.Decode(data); err != nil {
		panic(err)
	}
}

func (e *TenureEvent) DecodeStrict(data []byte) error {
	reader := codec.NewReader(data)
	if err := e.DecodeStrictFromReader(reader); err != nil {
		return err
	}
	if reader.HasUnreadBytes() {
		return codec.ErrUnreadBytes
	}
	return nil
}

func (e *TenureEvent) DecodeFromReader(reader *codec.Reader) error {
	{
		val, err := reader.ReadBytes(1, false)
		if err != nil {
			return err
		}
		e.TenureID = val
	}
	{
		val, err := reader.ReadBytes(2, false)
		if err != nil {
			return err
		}
		e.PrevTenureID = val
	}
	{
		val, err := reader.ReadBytes(3, false)
		if err != nil {
			return err
		}
		e.BurnViewHash = val
	}
	{
		val, err := reader.ReadUInt32(4, false)
		if err != nil {
			return err
		}
		e.Cause = val
	}
	{
		val, err := reader.ReadUInt(5, false)
		if err != nil {
			return err
		}
		e.CoinbaseHeight = val
	}
	{
		val, err := reader.ReadUInt32(6, false)
		if err != nil {
			return err
		}
		e.PrevTenureBlocks = val
	}
	{
		val, err := reader.ReadUInt(7, false)
		if err != nil {
			return err
		}
		e.BurnHeight = val
	}
	return nil
}

func (e *TenureEvent) DecodeStrictFromReader(reader *codec.Reader) error {
	{
		val, err := reader.ReadBytes(1, true)
		if err != nil {
			return err
		}
		e.TenureID = val
	}
	{
		val, err := reader.ReadBytes(2, true)
		if err != nil {
			return err
		}
		e.PrevTenureID = val
	}
	{
		val, err := reader.ReadBytes(3, true)
		if err != nil {
			return err
		}
		e.BurnViewHash = val
	}
	{
		val, err := reader.ReadUInt32(4, true)
		if err != nil {
			return err
		}
		e.Cause = val
	}
	{
		val, err := reader.ReadUInt(5, true)
		if err != nil {
			return err
		}
		e.CoinbaseHeight = val
	}
	{
		val, err := reader.ReadUInt32(6, true)
		if err != nil {
			return err
		}
		e.PrevTenureBlocks = val
	}
	{
		val, err := reader.ReadUInt(7, true)
		if err != nil {
			return err
		}
		e.BurnHeight = val
	}
	return nil
}
