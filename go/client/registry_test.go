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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRewriteCommand(t *testing.T) {
	require.Equal(t, "which-primary", RewriteCommand("which-master"))
	require.Equal(t, "start-replica", RewriteCommand("start-slave"))
	require.Equal(t, "all-clusters-primaries", RewriteCommand("all-clusters-masters"))
	require.Equal(t, "relocate", RewriteCommand("relocate"))
}

func TestRewriteCommandSynonyms(t *testing.T) {
	require.Equal(t, "detach-replica-primary-host", RewriteCommand("detach-replica"))
	require.Equal(t, "detach-replica-primary-host", RewriteCommand("detach-slave"))
	require.Equal(t, "detach-replica-primary-host", RewriteCommand("detach-slave-master-host"))
	require.Equal(t, "reattach-replica-primary-host", RewriteCommand("reattach-replica"))
}

func TestLookupCommand(t *testing.T) {
	spec, err := LookupCommand("which-cluster")
	require.NoError(t, err)
	require.Equal(t, "which-cluster", spec.Command)
	require.Equal(t, ExtractRaw, spec.Extract)
}

func TestLookupCommandLegacyName(t *testing.T) {
	spec, err := LookupCommand("which-master")
	require.NoError(t, err)
	require.Equal(t, "which-primary", spec.Command)
	require.Equal(t, ExtractMasterKey, spec.Extract)
}

func TestLookupCommandUnknown(t *testing.T) {
	_, err := LookupCommand("no-such-command")
	require.ErrorIs(t, err, ErrUnsupportedCommand)
	require.Contains(t, err.Error(), "no-such-command")
}

func TestRegistryNoDuplicates(t *testing.T) {
	seen := map[string]bool{}
	for _, spec := range KnownCommands() {
		require.False(t, seen[spec.Command], "duplicate command: %s", spec.Command)
		seen[spec.Command] = true
	}
}

func TestRegistryEntriesComplete(t *testing.T) {
	for _, spec := range KnownCommands() {
		require.NotEmpty(t, spec.Section, "command %s has no section", spec.Command)
		require.NotEmpty(t, spec.Description, "command %s has no description", spec.Command)
		require.NotEmpty(t, spec.Path, "command %s has no path", spec.Command)
	}
}

func TestRegistryTokensKnown(t *testing.T) {
	for _, spec := range KnownCommands() {
		for _, template := range []string{spec.Path, spec.PathAlternate} {
			rest := template
			for {
				_, after, found := strings.Cut(rest, "{")
				if !found {
					break
				}
				token, after, closed := strings.Cut(after, "}")
				require.True(t, closed, "unclosed token in %s: %s", spec.Command, template)
				if token != "apiPath" {
					require.Contains(t, tokenFlagNames, token, "command %s uses unknown token {%s}", spec.Command, token)
				}
				rest = after
			}
		}
	}
}

func TestRegistryNamesUseCurrentTerminology(t *testing.T) {
	for _, spec := range KnownCommands() {
		require.Equal(t, spec.Command, RewriteCommand(spec.Command), "registry name %s is not in current terminology", spec.Command)
	}
}

func TestSynonymsResolve(t *testing.T) {
	for synonym, target := range commandSynonyms {
		require.NotContains(t, commandIndex, synonym, "synonym %s shadows a registry entry", synonym)
		require.Contains(t, commandIndex, target, "synonym %s points to unknown command %s", synonym, target)
	}
}

func TestCommandsListingSectioned(t *testing.T) {
	listing := CommandsListing()
	require.Contains(t, listing, "Smart relocation:")
	require.Contains(t, listing, "Recovery:")
	require.Contains(t, listing, "relocate")
	require.Contains(t, listing, "graceful-primary-takeover")
}
