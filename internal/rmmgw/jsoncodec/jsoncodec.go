/*
Copyright 2025 The Antfly Contributors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package jsoncodec provides a configurable JSON encoding/decoding layer.
// It defaults to encoding/json but is wired at process start (see
// cmd/rmmgw) to route through github.com/bytedance/sonic.
//
// Usage:
//
//	import "github.com/usnistgov/rmm-go/internal/rmmgw/jsoncodec"
//
//	data, err := jsoncodec.Marshal(v)
//	err = jsoncodec.Unmarshal(data, &v)
package jsoncodec

import (
	"io"

	stdjson "encoding/json"
)

// Encoder is the interface for streaming JSON encoding. Both
// encoding/json and alternative libraries satisfy this interface.
type Encoder interface {
	Encode(v any) error
}

// Decoder is the interface for streaming JSON decoding.
type Decoder interface {
	Decode(v any) error
}

// Config holds the JSON encoding/decoding functions.
type Config struct {
	Marshal    func(v any) ([]byte, error)
	Unmarshal  func(data []byte, v any) error
	NewEncoder func(w io.Writer) Encoder
	NewDecoder func(r io.Reader) Decoder
}

// DefaultConfig returns the default configuration using encoding/json.
func DefaultConfig() Config {
	return Config{
		Marshal:   stdjson.Marshal,
		Unmarshal: stdjson.Unmarshal,
		NewEncoder: func(w io.Writer) Encoder {
			return stdjson.NewEncoder(w)
		},
		NewDecoder: func(r io.Reader) Decoder {
			return stdjson.NewDecoder(r)
		},
	}
}

var config = DefaultConfig()

// SetConfig sets the global JSON configuration. Call this before using
// any of the package functions to switch to a different JSON library.
func SetConfig(c Config) {
	config = c
}

// Marshal returns the JSON encoding of v.
func Marshal(v any) ([]byte, error) {
	return config.Marshal(v)
}

// Unmarshal parses the JSON-encoded data and stores the result in v.
func Unmarshal(data []byte, v any) error {
	return config.Unmarshal(data, v)
}

// NewEncoder returns a new Encoder that writes to w.
func NewEncoder(w io.Writer) Encoder {
	return config.NewEncoder(w)
}

// NewDecoder returns a new Decoder that reads from r.
func NewDecoder(r io.Reader) Decoder {
	return config.NewDecoder(r)
}

// RawMessage is a raw encoded JSON value.
type RawMessage = stdjson.RawMessage
