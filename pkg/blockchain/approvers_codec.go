// Codec methods for the `fieldNumber` tagged structs in this package. Keep
// in sync with the struct definitions.

package blockchain

import (
	"github.com/EmberHQ/ember-engine/pkg/codec"
)

func (e *ApproverEntry) Encode() ([]byte, error) {
	writer := codec.NewWriter()
	writer.WriteBytes(1, e.PublicKey)
	writer.WriteUInt(2, e.Weight)
	return writer.Result(), nil
}

func (e *ApproverEntry) MustEncode() []byte {
	encoded, err := e.Encode()
	if err != nil {
		panic(err)
	}
	return encoded
}

func (e *ApproverEntry) Decode(data []byte) error {
	reader := codec.NewReader(data)
	return e.DecodeFromReader(reader)
}

func (e *ApproverEntry) MustDecode(data []byte) {
	if err := e.Decode(data); err != nil {
		panic(err)
	}
}

func (e *ApproverEntry) DecodeStrict(data []byte) error {
	reader := codec.NewReader(data)
	if err := e.DecodeStrictFromReader(reader); err != nil {
		return err
	}
	if reader.HasUnreadBytes() {
		return codec.ErrUnreadBytes
	}
	return nil
}

func (e *ApproverEntry) DecodeFromReader(reader *codec.Reader) error {
	{
		val, err := reader.ReadBytes(1, false)
		if err != nil {
			return err
		}
		e.PublicKey = val
	}
	{
		val, err := reader.ReadUInt(2, false)
		if err != nil {
			return err
		}
		e.Weight = val
	}
	return nil
}

func (e *ApproverEntry) DecodeStrictFromReader(reader *codec.Reader) error {
	{
		val, err := reader.ReadBytes(1, true)
		if err != nil {
			return err
		}
		e.PublicKey = val
	}
	{
		val, err := reader.ReadUInt(2, true)
		if err != nil {
			return err
		}
		e.Weight = val
	}
	return nil
}

func (e *ApproverSet) Encode() ([]byte, error) {
	writer := codec.NewWriter()
	for _, val := range e.Approvers {
		writer.WriteEncodable(1, val)
	}
	return writer.Result(), nil
}

func (e *ApproverSet) MustEncode() []byte {
	encoded, err := e.Encode()
	if err != nil {
		panic(err)
	}
	return encoded
}

func (e *ApproverSet) Decode(data []byte) error {
	reader := codec.NewReader(data)
	return e.DecodeFromReader(reader)
}

func (e *ApproverSet) MustDecode(data []byte) {
	if err := e.Decode(data); err != nil {
		panic(err)
	}
}

func (e *ApproverSet) DecodeStrict(data []byte) error {
	reader := codec.NewReader(data)
	if err := e.DecodeStrictFromReader(reader); err != nil {
		return err
	}
	if reader.HasUnreadBytes() {
		return codec.ErrUnreadBytes
	}
	return nil
}

func (e *ApproverSet) DecodeFromReader(reader *codec.Reader) error {
	{
		vals, err := reader.ReadDecodables(1, func() codec.DecodableReader { return new(ApproverEntry) })
		if err != nil {
			return err
		}
		r := make([]*ApproverEntry, len(vals))
		for i, v := range vals {
			r[i] = v.(*ApproverEntry)
		}
		e.Approvers = r
	}
	return nil
}

func (e *ApproverSet) DecodeStrictFromReader(reader *codec.Reader) error {
	{
		vals, err := reader.ReadDecodables(1, func() codec.DecodableReader { return new(ApproverEntry) })
		if err != nil {
			return err
		}
		r := make([]*ApproverEntry, len(vals))
		for i, v := range vals {
			r[i] = v.(*ApproverEntry)
		}
		e.Approvers = r
	}
	return nil
}
