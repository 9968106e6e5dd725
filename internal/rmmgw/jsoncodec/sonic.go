package jsoncodec

import (
	"io"

	"github.com/bytedance/sonic"
	"github.com/bytedance/sonic/decoder"
	"github.com/bytedance/sonic/encoder"
)

// SonicConfig returns a Config backed by github.com/bytedance/sonic.
// cmd/rmmgw installs this at startup via SetConfig.
func SonicConfig() Config {
	api := sonic.ConfigDefault
	return Config{
		Marshal:   api.Marshal,
		Unmarshal: api.Unmarshal,
		NewEncoder: func(w io.Writer) Encoder {
			return encoder.NewStreamEncoder(w)
		},
		NewDecoder: func(r io.Reader) Decoder {
			return decoder.NewStreamDecoder(r)
		},
	}
}
