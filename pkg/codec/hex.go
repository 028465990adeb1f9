package codec

import (
	"encoding/hex"
	"encoding/json"
)

// Hex is a byte slice which marshals to and from a hex string in JSON.
type Hex []byte

func (h *Hex) UnmarshalJSON(b []byte) error {
	str := ""
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	res, err := hex.DecodeString(str)
	if err != nil {
		return err
	}
	*h = res
	return nil
}

func (h Hex) String() string {
	return hex.EncodeToString(h)
}

func (h Hex) MarshalJSON() ([]byte, error) {
	str := hex.EncodeToString(h)
	return json.Marshal(str)
}

func HexArrayToBytesArray(val []Hex) [][]byte {
	converted := make([][]byte, len(val))
	for i, v := range val {
		converted[i] = v
	}
	return converted
}

func BytesArrayToHexArray(val [][]byte) []Hex {
	converted := make([]Hex, len(val))
	for i, v := range val {
		converted[i] = v
	}
	return converted
}
