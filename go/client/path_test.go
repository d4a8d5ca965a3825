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

package client

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openark/orchestrator-client/go/inst"
)

func key(hostname string, port int) *inst.InstanceKey {
	return &inst.InstanceKey{Hostname: hostname, Port: port}
}

func mustLookup(t *testing.T, command string) *CommandSpec {
	t.Helper()
	spec, err := LookupCommand(command)
	require.NoError(t, err)
	return spec
}

func TestBuildPathInstanceTokens(t *testing.T) {
	spec := mustLookup(t, "which-instance")
	path, err := BuildPath(spec, &CommandParams{InstanceKey: key("my.host", 3306)})
	require.NoError(t, err)
	require.Equal(t, "instance/my.host/3306", path)
}

func TestBuildPathDestinationTokens(t *testing.T) {
	spec := mustLookup(t, "relocate")
	path, err := BuildPath(spec, &CommandParams{
		InstanceKey:    key("replica.host", 3306),
		DestinationKey: key("new.primary", 3307),
	})
	require.NoError(t, err)
	require.Equal(t, "relocate/replica.host/3306/new.primary/3307", path)
}

func TestBuildPathMissingInstance(t *testing.T) {
	spec := mustLookup(t, "which-instance")
	_, err := BuildPath(spec, &CommandParams{})
	require.ErrorIs(t, err, ErrMissingParameter)
	require.Contains(t, err.Error(), "-i (instance)")
}

func TestBuildPathMissingDestination(t *testing.T) {
	spec := mustLookup(t, "relocate")
	_, err := BuildPath(spec, &CommandParams{InstanceKey: key("my.host", 3306)})
	require.ErrorIs(t, err, ErrMissingParameter)
	require.Contains(t, err.Error(), "-d (destination)")
}

func TestBuildPathMissingOwnerReason(t *testing.T) {
	spec := mustLookup(t, "begin-downtime")
	_, err := BuildPath(spec, &CommandParams{InstanceKey: key("my.host", 3306)})
	require.ErrorIs(t, err, ErrMissingParameter)
	require.Contains(t, err.Error(), "-o (owner)")
}

func TestBuildPathQueryEscaping(t *testing.T) {
	spec := mustLookup(t, "search")
	path, err := BuildPath(spec, &CommandParams{Pattern: "version 5.7 & up"})
	require.NoError(t, err)
	require.Equal(t, "search?s=version+5.7+%26+up", path)
}

func TestBuildPathSegmentEscaping(t *testing.T) {
	spec := mustLookup(t, "begin-maintenance")
	path, err := BuildPath(spec, &CommandParams{
		InstanceKey: key("my.host", 3306),
		Owner:       "dba team",
		Reason:      "schema/migration",
	})
	require.NoError(t, err)
	require.Equal(t, "begin-maintenance/my.host/3306/dba%20team/schema%2Fmigration", path)
}

func TestBuildPathAlternateWithDestination(t *testing.T) {
	spec := mustLookup(t, "graceful-primary-takeover")

	path, err := BuildPath(spec, &CommandParams{ClusterHint: "mycluster"})
	require.NoError(t, err)
	require.Equal(t, "graceful-primary-takeover/mycluster", path)

	path, err = BuildPath(spec, &CommandParams{
		ClusterHint:    "mycluster",
		DestinationKey: key("designated.primary", 3306),
	})
	require.NoError(t, err)
	require.Equal(t, "graceful-primary-takeover/mycluster/designated.primary/3306", path)
}

func TestBuildPathAPIPathVerbatim(t *testing.T) {
	spec := mustLookup(t, "api")
	path, err := BuildPath(spec, &CommandParams{APIPath: "/problems/mycluster"})
	require.NoError(t, err)
	require.Equal(t, "problems/mycluster", path)
}

func TestBuildPathAPIPathWithQuery(t *testing.T) {
	spec := mustLookup(t, "api")
	path, err := BuildPath(spec, &CommandParams{APIPath: "async-discover/my.host/3306", Query: "force=true"})
	require.NoError(t, err)
	require.Equal(t, "async-discover/my.host/3306?force=true", path)
}

func TestBuildPathAPIPathMissing(t *testing.T) {
	spec := mustLookup(t, "api")
	_, err := BuildPath(spec, &CommandParams{})
	require.ErrorIs(t, err, ErrMissingParameter)
	require.Contains(t, err.Error(), "-P (path)")
}

func TestBuildPathNoTokens(t *testing.T) {
	spec := mustLookup(t, "clusters")
	path, err := BuildPath(spec, &CommandParams{})
	require.NoError(t, err)
	require.Equal(t, "clusters", path)
}
