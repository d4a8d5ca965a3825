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

package config

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/openark/golib/log"
)

// Configuration makes for orchestrator-client configuration input. It gets
// populated from defaults, then a JSON config file (if any), then environment
// variables, then command line flags; each layer overrides the previous one.
type Configuration struct {
	// APIEndpoints is the ordered list of orchestrator API base URLs. With
	// multiple entries the client probes for the leader in listed order.
	APIEndpoints []string
	// AuthUser and AuthPassword make the HTTP basic authentication
	// credentials. Empty values are passed through as empty credentials.
	AuthUser     string
	AuthPassword string
	// DefaultInstancePort is assumed for instances given with no port
	DefaultInstancePort int
	// LeaderCheckTimeoutSeconds is the per-endpoint timeout on leader probes
	LeaderCheckTimeoutSeconds int
	// TimeoutSeconds is the transport timeout on API calls
	TimeoutSeconds int
}

// Config is the global instance of the configuration
var Config = newConfiguration()

var readFileNames []string

func newConfiguration() *Configuration {
	return &Configuration{
		APIEndpoints:              []string{},
		AuthUser:                  "",
		AuthPassword:              "",
		DefaultInstancePort:       3306,
		LeaderCheckTimeoutSeconds: 1,
		TimeoutSeconds:            60,
	}
}

// read reads configuration from given file, or silently skips if the file
// does not exist. If the file does exist, then it is expected to be in valid
// JSON format or the function bails out.
func read(fileName string) (*Configuration, error) {
	if fileName == "" {
		return Config, nil
	}
	file, err := os.Open(fileName)
	if err != nil {
		return Config, err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(Config); err != nil {
		return Config, log.Fatale(err)
	}
	log.Infof("Read config: %s", fileName)
	return Config, nil
}

// Read reads configuration from zero, either, some or all given files, in
// order of input. A file can override configuration provided in previous file.
func Read(fileNames ...string) *Configuration {
	for _, fileName := range fileNames {
		_, _ = read(fileName)
	}
	readFileNames = fileNames
	return Config
}

// ForceRead reads configuration from given file name or bails out if it fails
func ForceRead(fileName string) *Configuration {
	_, err := read(fileName)
	if err != nil {
		log.Fatal("Cannot read config file:", fileName, err)
	}
	readFileNames = []string{fileName}
	return Config
}

// ReadEnv overrides configuration from well-known environment variables,
// matching the interface of the original orchestrator-client shell script.
func ReadEnv() *Configuration {
	if env := os.Getenv("ORCHESTRATOR_API"); env != "" {
		Config.APIEndpoints = strings.Fields(env)
	}
	if env := os.Getenv("ORCHESTRATOR_AUTH_USER"); env != "" {
		Config.AuthUser = env
	}
	if env := os.Getenv("ORCHESTRATOR_AUTH_PASSWORD"); env != "" {
		Config.AuthPassword = env
	}
	return Config
}

// ApplyAPIEndpoints overrides the configured endpoint set with a
// whitespace-delimited list of base URLs, as given via command line.
func ApplyAPIEndpoints(endpoints string) {
	if endpoints == "" {
		return
	}
	Config.APIEndpoints = strings.Fields(endpoints)
}

// ApplyAuth overrides basic-auth credentials with a "user:password" string,
// as given via command line. A string with no ":" makes for a user with
// empty password.
func ApplyAuth(auth string) {
	if auth == "" {
		return
	}
	tokens := strings.SplitN(auth, ":", 2)
	Config.AuthUser = tokens[0]
	if len(tokens) > 1 {
		Config.AuthPassword = tokens[1]
	}
}
