// Package session records interactive sessions: each evaluated input and
// its result is appended to a durable history store so past sessions can
// be replayed and inspected.
package session

import (
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode holds CBOR encoding options with canonical mode for
// deterministic encoding.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("session: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Entry is one evaluated input of an interactive session.
type Entry struct {
	Seq     int64     `cbor:"1,keyasint"`
	At      time.Time `cbor:"2,keyasint"`
	Input   string    `cbor:"3,keyasint"`
	Output  string    `cbor:"4,keyasint"`
	IsError bool      `cbor:"5,keyasint"`
}

// MarshalEntry serializes an Entry to CBOR bytes.
func MarshalEntry(e *Entry) ([]byte, error) {
	return cborEncMode.Marshal(e)
}

// UnmarshalEntry deserializes an Entry from CBOR bytes.
func UnmarshalEntry(data []byte) (*Entry, error) {
	var e Entry
	if err := cbor.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("session: unmarshal entry: %w", err)
	}
	return &e, nil
}
