package api

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// jsonCodec marshals plain Go structs for Connect. The built-in JSON codec
// only accepts protobuf messages.
type jsonCodec struct {
	name string
}

var _ connect.Codec = jsonCodec{}

func (c jsonCodec) Name() string { return c.name }

func (c jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (c jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

// handlerCodecs replaces both JSON content types Connect registers by default.
func handlerCodecs() []connect.HandlerOption {
	return []connect.HandlerOption{
		connect.WithCodec(jsonCodec{name: "json"}),
		connect.WithCodec(jsonCodec{name: "json; charset=utf-8"}),
	}
}

func clientCodec() connect.ClientOption {
	return connect.WithCodec(jsonCodec{name: "json"})
}
