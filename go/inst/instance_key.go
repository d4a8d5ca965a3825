/*
   Copyright 2017 Shlomi Noach, GitHub Inc.

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

package inst

import (
	"fmt"
	"strconv"
	"strings"
)

// InstanceKey is an instance indicator, identified by hostname and port
type InstanceKey struct {
	Hostname string
	Port     int
}

// NewRawInstanceKey parses a "host:port" string into an InstanceKey. The port
// is mandatory; this function does not apply any default.
func NewRawInstanceKey(hostPort string) (*InstanceKey, error) {
	tokens := strings.SplitN(hostPort, ":", 2)
	if len(tokens) != 2 {
		return nil, fmt.Errorf("cannot parse InstanceKey from %s. Expected format is host:port", hostPort)
	}
	instanceKey := &InstanceKey{Hostname: tokens[0]}
	var err error
	if instanceKey.Port, err = strconv.Atoi(tokens[1]); err != nil {
		return nil, fmt.Errorf("invalid port: %s", tokens[1])
	}
	return instanceKey, nil
}

// ParseInstanceKey parses a user given "host" or "host:port" string. A
// missing port is substituted with defaultPort; an embedded port is used
// verbatim. Empty input yields a nil key with no error.
func ParseInstanceKey(hostPort string, defaultPort int) (*InstanceKey, error) {
	if hostPort == "" {
		return nil, nil
	}
	if !strings.Contains(hostPort, ":") {
		return &InstanceKey{Hostname: hostPort, Port: defaultPort}, nil
	}
	return NewRawInstanceKey(hostPort)
}

// IsValid uses simple heuristics to see whether this key represents an actual instance
func (instanceKey *InstanceKey) IsValid() bool {
	if instanceKey == nil {
		return false
	}
	if instanceKey.Hostname == "_" {
		return false
	}
	return len(instanceKey.Hostname) > 0 && instanceKey.Port > 0
}

// Equals tests equality between this key and another key
func (instanceKey *InstanceKey) Equals(other *InstanceKey) bool {
	if other == nil {
		return false
	}
	return instanceKey.Hostname == other.Hostname && instanceKey.Port == other.Port
}

// StringCode returns an official string representation of this key
func (instanceKey *InstanceKey) StringCode() string {
	return fmt.Sprintf("%s:%d", instanceKey.Hostname, instanceKey.Port)
}

// DisplayString returns a user-friendly string representation of this key.
// The hostname is passed through verbatim; no DNS normalization applies.
func (instanceKey *InstanceKey) DisplayString() string {
	return instanceKey.StringCode()
}

func (instanceKey InstanceKey) String() string {
	return instanceKey.StringCode()
}
