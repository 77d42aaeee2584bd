package vault

import (
	"encoding/json"
	"fmt"

	kerrors "github.com/Storrado98/gastosapp/internal/errors"
)

// Bytes is a byte slice encoded in JSON as an array of integers.
type Bytes []byte

func (b Bytes) MarshalJSON() ([]byte, error) {
	ints := make([]int, len(b))
	for i, v := range b {
		ints[i] = int(v)
	}
	return json.Marshal(ints)
}

func (b *Bytes) UnmarshalJSON(data []byte) error {
	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return err
	}
	out := make(Bytes, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return fmt.Errorf("byte %d out of range: %d", i, v)
		}
		out[i] = byte(v)
	}
	*b = out
	return nil
}

// Envelope is an encrypted vault snapshot.
type Envelope struct {
	IV      Bytes `json:"iv"`
	Salt    Bytes `json:"salt"`
	Payload Bytes `json:"payload"`
}

// ParseEnvelope decodes envelope JSON as stored in a slot or export file.
func ParseEnvelope(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidEnvelope, err)
	}
	if len(env.Payload) == 0 {
		return nil, fmt.Errorf("%w: empty payload", kerrors.ErrInvalidEnvelope)
	}
	return &env, nil
}

// Marshal returns the envelope JSON written to slots and export files.
func (e *Envelope) Marshal() ([]byte, error) {
	return json.Marshal(e)
}
