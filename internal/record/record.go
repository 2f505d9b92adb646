// Package record implements the binary encoding of the key-value records
// stored in a minicask data file.
//
// The package is pure serialisation code: it performs no I/O and holds no
// state, so the storage engine can use it both for appending new records
// and for scanning existing files back into the key directory.
package record

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"
)

// Record is one decoded key-value pair from a data file.
type Record struct {
	Timestamp uint32 // Logical write sequence number, not wall-clock time
	Key       string
	Value     string
}

// Timestamp (4) + KeySize (4) + ValueSize (4)
const HeaderSize = 12

// ErrCorrupted is returned when bytes cannot be decoded as a record: the
// buffer is shorter than the declared layout, a declared size is zero, or
// the key/value bytes are not valid UTF-8.
var ErrCorrupted = errors.New("malformed record")

// EncodeHeader packs the three header fields as little-endian uint32s.
//
// It performs no validation; supplying sizes that fit in 32 bits is the
// caller's responsibility.
func EncodeHeader(timestamp, keySize, valueSize uint32) []byte {
	header := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(header[0:4], timestamp)
	binary.LittleEndian.PutUint32(header[4:8], keySize)
	binary.LittleEndian.PutUint32(header[8:12], valueSize)
	return header
}

// Encode serialises a record as header + key bytes + value bytes.
//
// The length of the returned buffer is the total record length; the engine
// stores that length in the key directory so reads can fetch the exact
// byte span back.
func Encode(timestamp uint32, key, value string) []byte {
	keyBytes := []byte(key)
	valueBytes := []byte(value)

	data := make([]byte, 0, HeaderSize+len(keyBytes)+len(valueBytes))
	data = append(data, EncodeHeader(timestamp, uint32(len(keyBytes)), uint32(len(valueBytes)))...)
	data = append(data, keyBytes...)
	data = append(data, valueBytes...)

	return data
}

// DecodeHeader is the inverse of EncodeHeader. It returns ErrCorrupted if
// fewer than HeaderSize bytes are supplied.
func DecodeHeader(data []byte) (timestamp, keySize, valueSize uint32, err error) {
	if len(data) < HeaderSize {
		return 0, 0, 0, fmt.Errorf("%w: header is %d bytes, need %d", ErrCorrupted, len(data), HeaderSize)
	}

	timestamp = binary.LittleEndian.Uint32(data[0:4])
	keySize = binary.LittleEndian.Uint32(data[4:8])
	valueSize = binary.LittleEndian.Uint32(data[8:12])

	return timestamp, keySize, valueSize, nil
}

// Decode deserialises a full record from data.
//
// The buffer must hold at least the complete record announced by its own
// header; key and value must be non-empty, valid UTF-8. Anything else is
// reported as ErrCorrupted.
func Decode(data []byte) (Record, error) {
	timestamp, keySize, valueSize, err := DecodeHeader(data)
	if err != nil {
		return Record{}, err
	}

	if keySize == 0 || valueSize == 0 {
		return Record{}, fmt.Errorf("%w: zero key or value size", ErrCorrupted)
	}

	total := HeaderSize + int(keySize) + int(valueSize)
	if len(data) < total {
		return Record{}, fmt.Errorf("%w: header declares %d bytes, buffer has %d", ErrCorrupted, total, len(data))
	}

	keyBytes := data[HeaderSize : HeaderSize+int(keySize)]
	valueBytes := data[HeaderSize+int(keySize) : total]

	if !utf8.Valid(keyBytes) {
		return Record{}, fmt.Errorf("%w: key is not valid UTF-8", ErrCorrupted)
	}
	if !utf8.Valid(valueBytes) {
		return Record{}, fmt.Errorf("%w: value is not valid UTF-8", ErrCorrupted)
	}

	return Record{
		Timestamp: timestamp,
		Key:       string(keyBytes),
		Value:     string(valueBytes),
	}, nil
}
