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
	"os"
	"path/filepath"
	"testing"

	"github.com/openark/golib/log"
	test "github.com/openark/golib/tests"
)

func init() {
	log.SetLevel(log.ERROR)
}

func resetConfig() {
	Config = newConfiguration()
}

func TestDefaults(t *testing.T) {
	resetConfig()
	test.S(t).ExpectEquals(Config.DefaultInstancePort, 3306)
	test.S(t).ExpectEquals(Config.LeaderCheckTimeoutSeconds, 1)
	test.S(t).ExpectEquals(len(Config.APIEndpoints), 0)
}

func TestReadFile(t *testing.T) {
	resetConfig()
	fileName := filepath.Join(t.TempDir(), "orchestrator-client.conf.json")
	contents := `{
		"APIEndpoints": ["https://orchestrator-0:3000", "https://orchestrator-1:3000"],
		"AuthUser": "dba",
		"DefaultInstancePort": 3307
	}`
	if err := os.WriteFile(fileName, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	Read(fileName)
	test.S(t).ExpectEquals(len(Config.APIEndpoints), 2)
	test.S(t).ExpectEquals(Config.APIEndpoints[0], "https://orchestrator-0:3000")
	test.S(t).ExpectEquals(Config.AuthUser, "dba")
	test.S(t).ExpectEquals(Config.DefaultInstancePort, 3307)
}

func TestReadNonExistentFile(t *testing.T) {
	resetConfig()
	Read("/there/is/no/such/file.conf.json")
	test.S(t).ExpectEquals(len(Config.APIEndpoints), 0)
}

func TestReadEnvOverridesFile(t *testing.T) {
	resetConfig()
	Config.APIEndpoints = []string{"http://from-file:3000"}
	t.Setenv("ORCHESTRATOR_API", "http://orc-0:3000/api http://orc-1:3000/api")
	t.Setenv("ORCHESTRATOR_AUTH_USER", "app")
	t.Setenv("ORCHESTRATOR_AUTH_PASSWORD", "s3cret")
	ReadEnv()
	test.S(t).ExpectEquals(len(Config.APIEndpoints), 2)
	test.S(t).ExpectEquals(Config.APIEndpoints[1], "http://orc-1:3000/api")
	test.S(t).ExpectEquals(Config.AuthUser, "app")
	test.S(t).ExpectEquals(Config.AuthPassword, "s3cret")
}

func TestApplyAPIEndpoints(t *testing.T) {
	resetConfig()
	Config.APIEndpoints = []string{"http://from-env:3000"}
	ApplyAPIEndpoints("http://flag-0:3000 http://flag-1:3000")
	test.S(t).ExpectEquals(len(Config.APIEndpoints), 2)
	test.S(t).ExpectEquals(Config.APIEndpoints[0], "http://flag-0:3000")

	// empty flag value leaves previous layer intact
	ApplyAPIEndpoints("")
	test.S(t).ExpectEquals(len(Config.APIEndpoints), 2)
}

func TestApplyAuth(t *testing.T) {
	resetConfig()
	ApplyAuth("dba:secret:with:colons")
	test.S(t).ExpectEquals(Config.AuthUser, "dba")
	test.S(t).ExpectEquals(Config.AuthPassword, "secret:with:colons")

	resetConfig()
	ApplyAuth("dba")
	test.S(t).ExpectEquals(Config.AuthUser, "dba")
	test.S(t).ExpectEquals(Config.AuthPassword, "")

	resetConfig()
	ApplyAuth("")
	test.S(t).ExpectEquals(Config.AuthUser, "")
}
