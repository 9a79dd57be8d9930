// Copyright 2026 The Termdeck Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// Backend type identifiers for the built-in connection backends.
const (
	BackendLocal  = "local"
	BackendSSH    = "ssh"
	BackendTelnet = "telnet"
	BackendSerial = "serial"
	BackendDocker = "docker"
	BackendWSL    = "wsl"
)

// Builtin returns the settings schema for one of the built-in backend
// types. The second return value is false for unknown types.
func Builtin(backendType string) (Schema, bool) {
	switch backendType {
	case BackendLocal:
		return localSchema(), true
	case BackendSSH:
		return sshSchema(), true
	case BackendTelnet:
		return telnetSchema(), true
	case BackendSerial:
		return serialSchema(), true
	case BackendDocker:
		return dockerSchema(), true
	case BackendWSL:
		return wslSchema(), true
	}
	return Schema{}, false
}

// BuiltinTypes lists the backend types Builtin knows about, in display
// order.
func BuiltinTypes() []string {
	return []string{
		BackendLocal, BackendSSH, BackendTelnet,
		BackendSerial, BackendDocker, BackendWSL,
	}
}

func localSchema() Schema {
	return Schema{Groups: []Group{
		{
			Key:   "shell",
			Label: "Shell",
			Fields: []Field{
				{
					Key:                    "shell",
					Label:                  "Shell",
					Description:            "Shell executable (leave empty for the system default)",
					Type:                   FilePath(PathFile),
					Placeholder:            "/bin/bash",
					SupportsEnvExpansion:   true,
					SupportsTildeExpansion: true,
				},
				{
					Key:         "args",
					Label:       "Arguments",
					Description: "Extra arguments passed to the shell",
					Type:        Text(),
				},
				{
					Key:                    "startingDirectory",
					Label:                  "Starting Directory",
					Type:                   FilePath(PathDirectory),
					Placeholder:            "~",
					SupportsEnvExpansion:   true,
					SupportsTildeExpansion: true,
				},
				{
					Key:   "envVars",
					Label: "Environment Variables",
					Type:  KeyValueList(),
				},
			},
		},
	}}
}

func sshSchema() Schema {
	return Schema{Groups: []Group{
		{
			Key:   "connection",
			Label: "Connection",
			Fields: []Field{
				{
					Key:                  "host",
					Label:                "Host",
					Description:          "Hostname or IP address of the SSH server",
					Type:                 Text(),
					Required:             true,
					Placeholder:          "example.com",
					SupportsEnvExpansion: true,
				},
				{
					Key:         "port",
					Label:       "Port",
					Description: "SSH port number",
					Type:        Port(),
					Required:    true,
					Default:     22,
				},
				{
					Key:                  "username",
					Label:                "Username",
					Description:          "SSH login username",
					Type:                 Text(),
					Required:             true,
					Placeholder:          "root",
					SupportsEnvExpansion: true,
				},
			},
		},
		{
			Key:   "authentication",
			Label: "Authentication",
			Fields: []Field{
				{
					Key:         "authMethod",
					Label:       "Method",
					Description: "Authentication method to use",
					Type: Select(
						SelectOption{Value: "key", Label: "SSH Key"},
						SelectOption{Value: "password", Label: "Password"},
						SelectOption{Value: "agent", Label: "SSH Agent"},
					),
					Required: true,
					Default:  "key",
				},
				{
					Key:                  "password",
					Label:                "Password",
					Type:                 Password(),
					SupportsEnvExpansion: true,
					VisibleWhen:          &Condition{Field: "authMethod", Equals: "password"},
				},
				{
					Key:                    "keyPath",
					Label:                  "Key Path",
					Description:            "Path to SSH private key file",
					Type:                   FilePath(PathFile),
					Placeholder:            "~/.ssh/id_rsa",
					SupportsEnvExpansion:   true,
					SupportsTildeExpansion: true,
					VisibleWhen:            &Condition{Field: "authMethod", Equals: "key"},
				},
				{
					Key:         "savePassword",
					Label:       "Save credentials",
					Description: "Store credentials in the system keychain",
					Type:        Boolean(),
					Default:     false,
				},
			},
		},
		{
			Key:   "advanced",
			Label: "Advanced",
			Fields: []Field{
				{
					Key:         "shell",
					Label:       "Shell",
					Description: "Remote shell to use (leave empty for default)",
					Type:        Text(),
					Placeholder: "/bin/bash",
				},
				{
					Key:         "keepAliveInterval",
					Label:       "Keep-Alive Interval",
					Description: "Seconds between keep-alive packets (0 disables)",
					Type:        Number(Bound(0), Bound(3600)),
					Default:     30,
				},
			},
		},
	}}
}

func telnetSchema() Schema {
	return Schema{Groups: []Group{
		{
			Key:   "telnet",
			Label: "Telnet",
			Fields: []Field{
				{
					Key:                  "host",
					Label:                "Host",
					Description:          "Hostname or IP address of the telnet server",
					Type:                 Text(),
					Required:             true,
					Placeholder:          "example.com",
					SupportsEnvExpansion: true,
				},
				{
					Key:      "port",
					Label:    "Port",
					Type:     Port(),
					Required: true,
					Default:  23,
				},
			},
		},
	}}
}

func serialSchema() Schema {
	return Schema{Groups: []Group{
		{
			Key:   "serial",
			Label: "Serial Port",
			Fields: []Field{
				{
					Key:         "port",
					Label:       "Port",
					Description: "Serial device path or name",
					Type:        Text(),
					Required:    true,
					Placeholder: "/dev/ttyUSB0",
				},
				{
					Key:   "baudRate",
					Label: "Baud Rate",
					Type: Select(
						SelectOption{Value: "9600", Label: "9600"},
						SelectOption{Value: "19200", Label: "19200"},
						SelectOption{Value: "38400", Label: "38400"},
						SelectOption{Value: "57600", Label: "57600"},
						SelectOption{Value: "115200", Label: "115200"},
					),
					Required: true,
					Default:  "115200",
				},
				{
					Key:   "dataBits",
					Label: "Data Bits",
					Type: Select(
						SelectOption{Value: "5", Label: "5"},
						SelectOption{Value: "6", Label: "6"},
						SelectOption{Value: "7", Label: "7"},
						SelectOption{Value: "8", Label: "8"},
					),
					Default: "8",
				},
				{
					Key:   "stopBits",
					Label: "Stop Bits",
					Type: Select(
						SelectOption{Value: "1", Label: "1"},
						SelectOption{Value: "2", Label: "2"},
					),
					Default: "1",
				},
				{
					Key:   "parity",
					Label: "Parity",
					Type: Select(
						SelectOption{Value: "none", Label: "None"},
						SelectOption{Value: "odd", Label: "Odd"},
						SelectOption{Value: "even", Label: "Even"},
					),
					Default: "none",
				},
				{
					Key:   "flowControl",
					Label: "Flow Control",
					Type: Select(
						SelectOption{Value: "none", Label: "None"},
						SelectOption{Value: "hardware", Label: "Hardware (RTS/CTS)"},
						SelectOption{Value: "software", Label: "Software (XON/XOFF)"},
					),
					Default: "none",
				},
			},
		},
	}}
}

func dockerSchema() Schema {
	return Schema{Groups: []Group{
		{
			Key:   "container",
			Label: "Container",
			Fields: []Field{
				{
					Key:         "image",
					Label:       "Image",
					Description: "Docker image to run",
					Type:        Text(),
					Required:    true,
					Placeholder: "ubuntu:latest",
				},
				{
					Key:         "shell",
					Label:       "Shell",
					Description: "Shell to start inside the container",
					Type:        Text(),
					Default:     "/bin/sh",
				},
				{
					Key:   "workingDirectory",
					Label: "Working Directory",
					Type:  Text(),
				},
				{
					Key:         "removeOnExit",
					Label:       "Remove on exit",
					Description: "Remove the container when the session ends",
					Type:        Boolean(),
					Default:     true,
				},
			},
		},
		{
			Key:   "environment",
			Label: "Environment",
			Fields: []Field{
				{
					Key:   "envVars",
					Label: "Environment Variables",
					Type:  KeyValueList(),
				},
				{
					Key:   "volumes",
					Label: "Volumes",
					Type: ObjectList(
						Field{
							Key:                    "hostPath",
							Label:                  "Host Path",
							Type:                   FilePath(PathDirectory),
							Required:               true,
							SupportsTildeExpansion: true,
						},
						Field{
							Key:      "containerPath",
							Label:    "Container Path",
							Type:     Text(),
							Required: true,
						},
						Field{
							Key:     "readOnly",
							Label:   "Read Only",
							Type:    Boolean(),
							Default: false,
						},
					),
				},
			},
		},
	}}
}

func wslSchema() Schema {
	return Schema{Groups: []Group{
		{
			Key:   "wsl",
			Label: "WSL",
			Fields: []Field{
				{
					Key:         "distribution",
					Label:       "Distribution",
					Description: "WSL distribution name (leave empty for the default)",
					Type:        Text(),
					Placeholder: "Ubuntu",
				},
				{
					Key:                    "startingDirectory",
					Label:                  "Starting Directory",
					Type:                   Text(),
					Placeholder:            "~",
					SupportsTildeExpansion: true,
				},
				{
					Key:         "initialCommand",
					Label:       "Initial Command",
					Description: "Command run after the shell starts",
					Type:        Text(),
				},
			},
		},
	}}
}
