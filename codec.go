// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/xswr/blob/main/LICENSE.

package xswr

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strconv"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec encodes/decodes values to/from bytes for a StorageAdapter.
// Decoded values have the generic shape of the format
// (maps, slices, strings, numbers, booleans), not the original Go types.
type Codec interface {
	Encode(value any) ([]byte, error)
	Decode(data []byte) (any, error)
}

// JSONCodec is a Codec that serializes values as JSON.
// Objects are decoded as map[string]any. Numbers are decoded as float64,
// unless that loses precision: such integers are decoded as int64 / uint64,
// and anything else as json.Number.
type JSONCodec struct{}

// Encode returns the JSON encoding of value.
func (JSONCodec) Encode(value any) ([]byte, error) {
	return json.Marshal(value)
}

// Decode parses JSON data.
func (JSONCodec) Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errTrailingJSON
	}

	return normalizeJSONNumbers(value), nil
}

var errTrailingJSON = errors.New("invalid character after top-level JSON value")

// normalizeJSONNumbers replaces json.Number values inside value
// with the narrowest Go number which holds them exactly.
func normalizeJSONNumbers(value any) any {
	switch v := value.(type) {
	case json.Number:
		return exactNumber(v)
	case map[string]any:
		for key, elem := range v {
			v[key] = normalizeJSONNumbers(elem)
		}
	case []any:
		for idx, elem := range v {
			v[idx] = normalizeJSONNumbers(elem)
		}
	}

	return value
}

func exactNumber(n json.Number) any {
	s := string(n)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		if f := float64(i); f < 1<<63 && int64(f) == i {
			return f
		}

		return i
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		if f := float64(u); f < 1<<64 && uint64(f) == u {
			return f
		}

		return u
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}

	return n
}

// MsgpackCodec is a Codec that serializes values using vmihailenco/msgpack/v5.
// The zero value is ready to use.
type MsgpackCodec struct{}

// Encode returns the msgpack encoding of value.
func (MsgpackCodec) Encode(value any) ([]byte, error) {
	return msgpack.Marshal(value)
}

// Decode parses msgpack data.
func (MsgpackCodec) Decode(data []byte) (any, error) {
	var value any
	err := msgpack.Unmarshal(data, &value)

	return value, err
}

// CBORCodec is a Codec that serializes values using fxamacker/cbor.
// The zero value is NOT ready to use, construct it with NewCBORCodec.
type CBORCodec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// NewCBORCodec instantiates a CBORCodec with canonical (RFC 8949 Core Deterministic) encoding.
// Maps are decoded as map[string]any, so decoded values look like JSON decoded ones.
func NewCBORCodec() (CBORCodec, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return CBORCodec{}, err
	}
	dec, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		return CBORCodec{}, err
	}

	return CBORCodec{enc: enc, dec: dec}, nil
}

// Encode returns the CBOR encoding of value.
func (c CBORCodec) Encode(value any) ([]byte, error) {
	return c.enc.Marshal(value)
}

// Decode parses CBOR data.
func (c CBORCodec) Decode(data []byte) (any, error) {
	var value any
	err := c.dec.Unmarshal(data, &value)

	return value, err
}
