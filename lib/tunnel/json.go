// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tunnel

import (
	"encoding/json"
	"fmt"
)

// forwardWire is the tagged on-disk shape of a Forward.
type forwardWire struct {
	Type   string          `json:"type"`
	Config json.RawMessage `json:"config"`
}

// MarshalJSON encodes the forward as {"type": ..., "config": {...}}.
func (f Forward) MarshalJSON() ([]byte, error) {
	var payload any
	switch f.Type {
	case ForwardLocal:
		payload = f.Local
	case ForwardRemote:
		payload = f.Remote
	case ForwardDynamic:
		payload = f.Dynamic
	default:
		return nil, fmt.Errorf("unknown forward type %q", f.Type)
	}
	if payload == nil {
		return nil, fmt.Errorf("forward type %q has no config", f.Type)
	}
	config, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(forwardWire{Type: f.Type, Config: config})
}

// UnmarshalJSON decodes the tagged forward shape.
func (f *Forward) UnmarshalJSON(data []byte) error {
	var wire forwardWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*f = Forward{Type: wire.Type}
	switch wire.Type {
	case ForwardLocal:
		f.Local = &LocalForward{}
		return json.Unmarshal(wire.Config, f.Local)
	case ForwardRemote:
		f.Remote = &RemoteForward{}
		return json.Unmarshal(wire.Config, f.Remote)
	case ForwardDynamic:
		f.Dynamic = &DynamicForward{}
		return json.Unmarshal(wire.Config, f.Dynamic)
	}
	return fmt.Errorf("unknown forward type %q", wire.Type)
}
