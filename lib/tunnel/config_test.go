// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tunnel

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func localTunnel() Config {
	return Config{
		ID:              "tun-1",
		Name:            "Dev DB",
		SSHConnectionID: "Work/Dev/staging",
		Forward: Forward{
			Type: ForwardLocal,
			Local: &LocalForward{
				LocalHost: "127.0.0.1", LocalPort: 5432,
				RemoteHost: "db.internal", RemotePort: 5432,
			},
		},
		AutoStart: true,
	}
}

func TestConfigJSONShape(t *testing.T) {
	data, err := json.Marshal(localTunnel())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var object map[string]any
	if err := json.Unmarshal(data, &object); err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{"sshConnectionId", "tunnelType", "autoStart", "reconnectOnDisconnect"} {
		if _, ok := object[key]; !ok {
			t.Errorf("encoded config missing %q: %s", key, data)
		}
	}
	forward, ok := object["tunnelType"].(map[string]any)
	if !ok {
		t.Fatalf("tunnelType = %T, want object", object["tunnelType"])
	}
	if forward["type"] != "local" {
		t.Errorf("forward type = %v, want local", forward["type"])
	}
	config, ok := forward["config"].(map[string]any)
	if !ok || config["localPort"] != float64(5432) {
		t.Errorf("forward config = %v", forward["config"])
	}
}

func TestForwardRoundtrips(t *testing.T) {
	cases := []struct {
		name    string
		forward Forward
	}{
		{
			"local",
			Forward{Type: ForwardLocal, Local: &LocalForward{
				LocalHost: "127.0.0.1", LocalPort: 8080,
				RemoteHost: "localhost", RemotePort: 80,
			}},
		},
		{
			"remote",
			Forward{Type: ForwardRemote, Remote: &RemoteForward{
				RemoteHost: "0.0.0.0", RemotePort: 8080,
				LocalHost: "127.0.0.1", LocalPort: 3000,
			}},
		},
		{
			"dynamic",
			Forward{Type: ForwardDynamic, Dynamic: &DynamicForward{
				LocalHost: "127.0.0.1", LocalPort: 1080,
			}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.forward)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			var decoded Forward
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if !reflect.DeepEqual(decoded, tc.forward) {
				t.Errorf("roundtrip mismatch:\n got %+v\nwant %+v", decoded, tc.forward)
			}
		})
	}
}

func TestForwardRejectsUnknownType(t *testing.T) {
	var forward Forward
	err := json.Unmarshal([]byte(`{"type": "vpn", "config": {}}`), &forward)
	if err == nil || !strings.Contains(err.Error(), "vpn") {
		t.Errorf("err = %v, want unknown-type error naming vpn", err)
	}

	if _, err := json.Marshal(Forward{Type: "vpn"}); err == nil {
		t.Error("Marshal should reject unknown forward types")
	}
}

func TestConfigDefaultsOnDecode(t *testing.T) {
	raw := `{
		"id": "tun-1",
		"name": "Test",
		"sshConnectionId": "conn-1",
		"tunnelType": {
			"type": "dynamic",
			"config": {"localHost": "127.0.0.1", "localPort": 1080}
		}
	}`
	var config Config
	if err := json.Unmarshal([]byte(raw), &config); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if config.AutoStart || config.ReconnectOnDisconnect {
		t.Errorf("flags should default to false: %+v", config)
	}
	if config.Forward.Dynamic == nil || config.Forward.Dynamic.LocalPort != 1080 {
		t.Errorf("forward = %+v", config.Forward)
	}
}

func TestNewConfigAssignsID(t *testing.T) {
	a := NewConfig("a", "conn-1", Forward{Type: ForwardDynamic, Dynamic: &DynamicForward{LocalHost: "127.0.0.1", LocalPort: 1080}})
	b := NewConfig("b", "conn-1", Forward{Type: ForwardDynamic, Dynamic: &DynamicForward{LocalHost: "127.0.0.1", LocalPort: 1081}})
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("IDs not unique: %q, %q", a.ID, b.ID)
	}
}

func TestValidate(t *testing.T) {
	good := localTunnel()
	if err := good.Validate(); err != nil {
		t.Errorf("valid tunnel rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty name", func(c *Config) { c.Name = "" }},
		{"no connection", func(c *Config) { c.SSHConnectionID = "" }},
		{"unknown type", func(c *Config) { c.Forward.Type = "vpn" }},
		{"missing payload", func(c *Config) { c.Forward.Local = nil }},
		{"port zero", func(c *Config) { c.Forward.Local.LocalPort = 0 }},
		{"port too high", func(c *Config) { c.Forward.Local.RemotePort = 70000 }},
		{"empty host", func(c *Config) { c.Forward.Local.RemoteHost = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			config := localTunnel()
			local := *config.Forward.Local
			config.Forward.Local = &local
			tc.mutate(&config)
			if err := config.Validate(); err == nil {
				t.Error("invalid tunnel accepted")
			}
		})
	}
}

func TestStateErrorOmittedWhenEmpty(t *testing.T) {
	state := State{TunnelID: "tun-1", Status: StatusDisconnected}
	data, err := json.Marshal(state)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "error") {
		t.Errorf("encoded state should omit empty error: %s", data)
	}

	state.Status = StatusError
	state.Error = "connection refused"
	data, _ = json.Marshal(state)
	if !strings.Contains(string(data), "connection refused") {
		t.Errorf("encoded state missing error: %s", data)
	}
}
