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
	"fmt"
	"strings"
)

// CommandSpec binds a logical command name to its API path template and
// result extraction. Path templates name their own parameters as {token}
// placeholders; a command's required parameters are exactly its tokens.
// PathAlternate, where present, is the pairwise variant picked when the user
// supplies a destination.
type CommandSpec struct {
	Command       string
	Section       string
	Description   string
	Path          string
	PathAlternate string
	Extract       ResultExtraction
}

// deprecated terminology tokens, substituted inside command names before lookup
var deprecatedTokens = [][2]string{
	{"slave", "replica"},
	{"masters", "primaries"},
	{"master", "primary"},
}

// commandSynonyms maps deprecated command names to their current counterparts
var commandSynonyms = map[string]string{
	"detach-replica":   "detach-replica-primary-host",
	"reattach-replica": "reattach-replica-primary-host",
}

// RewriteCommand applies the legacy-name rewrite rules: terminology token
// substitution first, then explicit synonyms.
func RewriteCommand(command string) string {
	for _, token := range deprecatedTokens {
		command = strings.ReplaceAll(command, token[0], token[1])
	}
	if synonym, ok := commandSynonyms[command]; ok {
		command = synonym
	}
	return command
}

// commandRegistry is the static command table. Adding a command is a data
// change: name, help section, description, path template, extraction.
var commandRegistry = []CommandSpec{
	// Smart relocation
	{Command: "relocate", Section: "Smart relocation", Description: "Relocate a replica beneath another instance", Path: "relocate/{host}/{port}/{belowHost}/{belowPort}", Extract: ExtractComposite},
	{Command: "relocate-replicas", Section: "Smart relocation", Description: "Relocates all or part of the replicas of a given instance under another instance", Path: "relocate-replicas/{host}/{port}/{belowHost}/{belowPort}", Extract: ExtractKeysList},
	{Command: "take-siblings", Section: "Smart relocation", Description: "Turn all siblings of a replica into its sub-replicas", Path: "take-siblings/{host}/{port}", Extract: ExtractKey},
	{Command: "regroup-replicas", Section: "Smart relocation", Description: "Given an instance, pick one of its replicas and make it local primary of its siblings", Path: "regroup-replicas/{host}/{port}", Extract: ExtractKey},

	// Classic file:pos relocation
	{Command: "move-up", Section: "Classic file:pos relocation", Description: "Move a replica one level up the topology", Path: "move-up/{host}/{port}", Extract: ExtractComposite},
	{Command: "move-up-replicas", Section: "Classic file:pos relocation", Description: "Moves replicas of the given instance one level up the topology", Path: "move-up-replicas/{host}/{port}", Extract: ExtractKeysList},
	{Command: "move-below", Section: "Classic file:pos relocation", Description: "Moves a replica beneath its sibling. Both replicas must be actively replicating from same primary.", Path: "move-below/{host}/{port}/{belowHost}/{belowPort}", Extract: ExtractComposite},
	{Command: "move-equivalent", Section: "Classic file:pos relocation", Description: "Moves a replica beneath another server, based on previously recorded equivalence coordinates", Path: "move-equivalent/{host}/{port}/{belowHost}/{belowPort}", Extract: ExtractComposite},
	{Command: "repoint", Section: "Classic file:pos relocation", Description: "Make the given instance replicate from another instance without changing the binlog coordinates. Use with care", Path: "repoint/{host}/{port}/{belowHost}/{belowPort}", Extract: ExtractComposite},
	{Command: "repoint-replicas", Section: "Classic file:pos relocation", Description: "Repoint all replicas of given instance to replicate back from the instance. Use with care", Path: "repoint-replicas/{host}/{port}", Extract: ExtractKeysList},
	{Command: "take-primary", Section: "Classic file:pos relocation", Description: "Turn an instance into a primary of its own primary; essentially switch the two.", Path: "take-primary/{host}/{port}", Extract: ExtractKey},
	{Command: "make-co-primary", Section: "Classic file:pos relocation", Description: "Create a primary-primary replication. Given instance is a replica which replicates directly from a primary.", Path: "make-co-primary/{host}/{port}", Extract: ExtractKey},
	{Command: "get-candidate-replica", Section: "Classic file:pos relocation", Description: "Information command suggesting the most up-to-date replica of a given instance that is good for promotion", Path: "get-candidate-replica/{host}/{port}", Extract: ExtractKey},

	// GTID relocation
	{Command: "move-gtid", Section: "GTID relocation", Description: "Move a replica beneath another instance via GTID", Path: "move-below-gtid/{host}/{port}/{belowHost}/{belowPort}", Extract: ExtractComposite},
	{Command: "move-replicas-gtid", Section: "GTID relocation", Description: "Moves all replicas of a given instance under another (destination) instance using GTID", Path: "move-replicas-gtid/{host}/{port}/{belowHost}/{belowPort}", Extract: ExtractKeysList},
	{Command: "regroup-replicas-gtid", Section: "GTID relocation", Description: "Given an instance, pick one of its replicas and make it local primary of its siblings, using GTID.", Path: "regroup-replicas-gtid/{host}/{port}", Extract: ExtractKey},

	// Replication, general
	{Command: "enable-gtid", Section: "Replication, general", Description: "If possible, turn on GTID replication", Path: "enable-gtid/{host}/{port}", Extract: ExtractKey},
	{Command: "disable-gtid", Section: "Replication, general", Description: "Turn off GTID replication, back to file:pos replication", Path: "disable-gtid/{host}/{port}", Extract: ExtractKey},
	{Command: "gtid-errant-reset-primary", Section: "Replication, general", Description: "Reset primary on instance, remove GTID errant transactions", Path: "gtid-errant-reset-primary/{host}/{port}", Extract: ExtractKey},
	{Command: "gtid-errant-inject-empty", Section: "Replication, general", Description: "Inject empty transactions on cluster primary in place of errant GTIDs", Path: "gtid-errant-inject-empty/{host}/{port}", Extract: ExtractKey},
	{Command: "which-gtid-errant", Section: "Replication, general", Description: "Get errant GTID set (empty results if no errant GTID)", Path: "which-gtid-errant/{host}/{port}", Extract: ExtractDetails},
	{Command: "locate-gtid-errant", Section: "Replication, general", Description: "List binary logs containing errant GTIDs", Path: "locate-gtid-errant/{host}/{port}", Extract: ExtractDetails},
	{Command: "skip-query", Section: "Replication, general", Description: "Skip a single statement on a replica; either when running with GTID or without", Path: "skip-query/{host}/{port}", Extract: ExtractKey},
	{Command: "start-replica", Section: "Replication, general", Description: "Issue a START REPLICA on an instance", Path: "start-replica/{host}/{port}", Extract: ExtractKey},
	{Command: "stop-replica", Section: "Replication, general", Description: "Issue a STOP REPLICA on an instance", Path: "stop-replica/{host}/{port}", Extract: ExtractKey},
	{Command: "stop-replica-nice", Section: "Replication, general", Description: "Stop replication, but wait to first catch up with relay log", Path: "stop-replica-nice/{host}/{port}", Extract: ExtractKey},
	{Command: "restart-replica", Section: "Replication, general", Description: "STOP and START REPLICA on an instance", Path: "restart-replica/{host}/{port}", Extract: ExtractKey},
	{Command: "reset-replica", Section: "Replication, general", Description: "Issues a RESET REPLICA command; use with care", Path: "reset-replica/{host}/{port}", Extract: ExtractKey},
	{Command: "detach-replica-primary-host", Section: "Replication, general", Description: "Stops replication and modifies the source host into an impossible, yet reversible, value.", Path: "detach-replica-primary-host/{host}/{port}", Extract: ExtractKey},
	{Command: "reattach-replica-primary-host", Section: "Replication, general", Description: "Undo a detach-replica-primary-host operation", Path: "reattach-replica-primary-host/{host}/{port}", Extract: ExtractKey},
	{Command: "restart-replica-statements", Section: "Replication, general", Description: "Get a list of statements to execute to stop then restore replica to same execution state. Provide --query for injected statement", Path: "restart-replica-statements/{host}/{port}?q={query}", Extract: ExtractDetails},
	{Command: "enable-semi-sync-primary", Section: "Replication, general", Description: "Enable semi-sync (primary side) on an instance", Path: "enable-semi-sync-primary/{host}/{port}", Extract: ExtractKey},
	{Command: "disable-semi-sync-primary", Section: "Replication, general", Description: "Disable semi-sync (primary side) on an instance", Path: "disable-semi-sync-primary/{host}/{port}", Extract: ExtractKey},
	{Command: "enable-semi-sync-replica", Section: "Replication, general", Description: "Enable semi-sync (replica side) on an instance", Path: "enable-semi-sync-replica/{host}/{port}", Extract: ExtractKey},
	{Command: "disable-semi-sync-replica", Section: "Replication, general", Description: "Disable semi-sync (replica side) on an instance", Path: "disable-semi-sync-replica/{host}/{port}", Extract: ExtractKey},

	// Replication information
	{Command: "can-replicate-from", Section: "Replication information", Description: "Can an instance (-i) replicate from another (-d) according to replication rules?", Path: "can-replicate-from/{host}/{port}/{belowHost}/{belowPort}", Extract: ExtractRaw},
	{Command: "last-pseudo-gtid", Section: "Replication information", Description: "Dump last injected Pseudo-GTID entry on a server", Path: "last-pseudo-gtid/{host}/{port}", Extract: ExtractDetails},

	// Instance
	{Command: "set-read-only", Section: "Instance", Description: "Turn an instance read-only, via SET GLOBAL read_only := 1", Path: "set-read-only/{host}/{port}", Extract: ExtractKey},
	{Command: "set-writeable", Section: "Instance", Description: "Turn an instance writeable, via SET GLOBAL read_only := 0", Path: "set-writeable/{host}/{port}", Extract: ExtractKey},

	// Binary logs
	{Command: "flush-binary-logs", Section: "Binary logs", Description: "Flush binary logs on an instance", Path: "flush-binary-logs/{host}/{port}", Extract: ExtractKey},

	// Pools
	{Command: "submit-pool-instances", Section: "Pools", Description: "Submit a pool name with a list of instances in that pool", Path: "submit-pool-instances/{pool}?instances={pattern}", Extract: ExtractRaw},
	{Command: "cluster-pool-instances", Section: "Pools", Description: "List all pools and their associated instances", Path: "cluster-pool-instances", Extract: ExtractDetails},
	{Command: "which-heuristic-cluster-pool-instances", Section: "Pools", Description: "List instances of a given cluster which are in either any pool or in a specific pool", Path: "heuristic-cluster-pool-instances/{clusterHint}", PathAlternate: "heuristic-cluster-pool-instances/{clusterHint}/{pool}", Extract: ExtractKeysList},

	// Information
	{Command: "search", Section: "Information", Description: "Search instances by name, version, version comment, port", Path: "search?s={pattern}", Extract: ExtractKeysList},
	{Command: "clusters", Section: "Information", Description: "List all clusters known to orchestrator", Path: "clusters", Extract: ExtractRaw},
	{Command: "clusters-alias", Section: "Information", Description: "List all clusters known to orchestrator, with aliases", Path: "clusters-info", Extract: ExtractRaw},
	{Command: "all-clusters-primaries", Section: "Information", Description: "List of writeable primaries, one per cluster", Path: "all-clusters-primaries", Extract: ExtractKeysList},
	{Command: "all-instances", Section: "Information", Description: "The complete list of known instances", Path: "all-instances", Extract: ExtractKeysList},
	{Command: "which-instance", Section: "Information", Description: "Output the fully-qualified hostname:port representation of the given instance, or error if unknown", Path: "instance/{host}/{port}", Extract: ExtractKey},
	{Command: "which-primary", Section: "Information", Description: "Output the fully-qualified hostname:port representation of a given instance's primary", Path: "instance/{host}/{port}", Extract: ExtractMasterKey},
	{Command: "which-replicas", Section: "Information", Description: "Output the fully-qualified hostname:port list of replicas of a given instance", Path: "instance-replicas/{host}/{port}", Extract: ExtractKeysList},
	{Command: "which-cluster", Section: "Information", Description: "Output the name of the cluster an instance belongs to, or error if unknown to orchestrator", Path: "which-cluster/{clusterHint}", Extract: ExtractRaw},
	{Command: "which-cluster-alias", Section: "Information", Description: "Output the alias of the cluster an instance belongs to, or error if unknown to orchestrator", Path: "which-cluster-alias/{clusterHint}", Extract: ExtractRaw},
	{Command: "which-cluster-domain", Section: "Information", Description: "Output the domain name of the cluster an instance belongs to, or error if unknown to orchestrator", Path: "which-cluster-domain/{clusterHint}", Extract: ExtractRaw},
	{Command: "which-cluster-primary", Section: "Information", Description: "Output the name of the primary in a given cluster", Path: "cluster-primary/{clusterHint}", Extract: ExtractKey},
	{Command: "which-cluster-instances", Section: "Information", Description: "Output the list of instances participating in same cluster as given instance", Path: "cluster/{clusterHint}", Extract: ExtractKeysList},
	{Command: "which-cluster-osc-replicas", Section: "Information", Description: "Output a list of replicas in a cluster, that could serve as a pt-online-schema-change operation control replicas", Path: "cluster-osc-replicas/{clusterHint}", Extract: ExtractKeysList},
	{Command: "which-cluster-gh-ost-replicas", Section: "Information", Description: "Output a list of replicas in a cluster, that could serve as a gh-ost working server", Path: "cluster-gh-ost-replicas/{clusterHint}", Extract: ExtractKeysList},
	{Command: "which-heuristic-domain-instance", Section: "Information", Description: "Returns the instance associated as the cluster's writer with a cluster's domain name.", Path: "heuristic-domain-instance/{clusterHint}", Extract: ExtractKey},
	{Command: "which-downtimed-instances", Section: "Information", Description: "List instances currently downtimed, potentially filtered by cluster", Path: "downtimed", Extract: ExtractKeysList},
	{Command: "which-lost-in-recovery", Section: "Information", Description: "List instances marked as downtimed for being lost in a recovery process", Path: "lost-in-recovery", Extract: ExtractKeysList},
	{Command: "instance-status", Section: "Information", Description: "Output short status on a given instance", Path: "instance/{host}/{port}", Extract: ExtractDetails},
	{Command: "get-cluster-heuristic-lag", Section: "Information", Description: "For a given cluster (indicated by an instance or alias), output a heuristic \"representative\" lag of that cluster", Path: "cluster-heuristic-lag/{clusterHint}", Extract: ExtractDetails},
	{Command: "topology", Section: "Information", Description: "Show an ascii-graph of a replication topology, given a member of that topology", Path: "topology/{clusterHint}", Extract: ExtractDetails},
	{Command: "topology-tabulated", Section: "Information", Description: "Show an ascii-graph of a replication topology, given a member of that topology, in tabulated format", Path: "topology-tabulated/{clusterHint}", Extract: ExtractDetails},
	{Command: "topology-tags", Section: "Information", Description: "Show an ascii-graph of a replication topology and instance tags, given a member of that topology", Path: "topology-tags/{clusterHint}", Extract: ExtractDetails},

	// Instance management
	{Command: "discover", Section: "Instance management", Description: "Lookup an instance, investigate it", Path: "discover/{host}/{port}", Extract: ExtractKey},
	{Command: "async-discover", Section: "Instance management", Description: "Lookup an instance, investigate it asynchronously. Useful for bulk loads", Path: "async-discover/{host}/{port}", Extract: ExtractRaw},
	{Command: "forget", Section: "Instance management", Description: "Forget about an instance's existence", Path: "forget/{host}/{port}", Extract: ExtractRaw},
	{Command: "forget-cluster", Section: "Instance management", Description: "Forget about a cluster's existence", Path: "forget-cluster/{clusterHint}", Extract: ExtractRaw},
	{Command: "begin-maintenance", Section: "Instance management", Description: "Request a maintenance lock on an instance", Path: "begin-maintenance/{host}/{port}/{owner}/{reason}", Extract: ExtractKey},
	{Command: "end-maintenance", Section: "Instance management", Description: "Remove maintenance lock from an instance", Path: "end-maintenance/{host}/{port}", Extract: ExtractKey},
	{Command: "in-maintenance", Section: "Instance management", Description: "Check whether instance is under maintenance", Path: "in-maintenance/{host}/{port}", Extract: ExtractRaw},
	{Command: "begin-downtime", Section: "Instance management", Description: "Mark an instance as downtimed", Path: "begin-downtime/{host}/{port}/{owner}/{reason}/{duration}", Extract: ExtractKey},
	{Command: "end-downtime", Section: "Instance management", Description: "Indicate an instance is no longer downtimed", Path: "end-downtime/{host}/{port}", Extract: ExtractKey},

	// Recovery
	{Command: "recover", Section: "Recovery", Description: "Do auto-recovery given a dead instance", Path: "recover/{host}/{port}", Extract: ExtractDetails},
	{Command: "recover-lite", Section: "Recovery", Description: "Do auto-recovery given a dead instance, without executing external processes", Path: "recover-lite/{host}/{port}", Extract: ExtractDetails},
	{Command: "force-primary-failover", Section: "Recovery", Description: "Forcibly discard primary and initiate a failover, even if orchestrator doesn't see a problem. This command lets orchestrator choose the replacement primary", Path: "force-primary-failover/{clusterHint}", Extract: ExtractDetails},
	{Command: "force-primary-takeover", Section: "Recovery", Description: "Forcibly discard primary and promote another (direct child) instance instead, even if everything is running well", Path: "force-primary-takeover/{clusterHint}/{belowHost}/{belowPort}", Extract: ExtractDetails},
	{Command: "graceful-primary-takeover", Section: "Recovery", Description: "Gracefully promote a new primary. Either indicate identity of new primary via -d, or setup replication tree to have a single direct replica to the primary.", Path: "graceful-primary-takeover/{clusterHint}", PathAlternate: "graceful-primary-takeover/{clusterHint}/{belowHost}/{belowPort}", Extract: ExtractDetails},
	{Command: "graceful-primary-takeover-auto", Section: "Recovery", Description: "Gracefully promote a new primary. orchestrator will attempt to pick the promoted replica automatically", Path: "graceful-primary-takeover-auto/{clusterHint}", PathAlternate: "graceful-primary-takeover-auto/{clusterHint}/{belowHost}/{belowPort}", Extract: ExtractDetails},
	{Command: "replication-analysis", Section: "Recovery", Description: "Request an analysis of potential crash incidents in all known topologies", Path: "replication-analysis", Extract: ExtractDetails},
	{Command: "ack-all-recoveries", Section: "Recovery", Description: "Acknowledge all recoveries; this unblocks pending future recoveries", Path: "ack-all-recoveries?comment={reason}", Extract: ExtractRaw},
	{Command: "ack-cluster-recoveries", Section: "Recovery", Description: "Acknowledge recoveries for a given cluster; this unblocks pending future recoveries", Path: "ack-cluster-recoveries/{clusterHint}?comment={reason}", Extract: ExtractRaw},
	{Command: "ack-instance-recoveries", Section: "Recovery", Description: "Acknowledge recoveries for a given instance; this unblocks pending future recoveries", Path: "ack-instance-recoveries/{host}/{port}?comment={reason}", Extract: ExtractRaw},
	{Command: "disable-global-recoveries", Section: "Recovery", Description: "Disallow orchestrator from performing recoveries globally", Path: "disable-global-recoveries", Extract: ExtractRaw},
	{Command: "enable-global-recoveries", Section: "Recovery", Description: "Allow orchestrator to perform recoveries globally", Path: "enable-global-recoveries", Extract: ExtractRaw},
	{Command: "check-global-recoveries", Section: "Recovery", Description: "Show the global recovery configuration", Path: "check-global-recoveries", Extract: ExtractRaw},

	// Instance, meta
	{Command: "register-candidate", Section: "Instance, meta", Description: "Indicate that a specific instance is a preferred candidate for primary promotion", Path: "register-candidate/{host}/{port}/{promotionRule}", Extract: ExtractKey},
	{Command: "register-hostname-unresolve", Section: "Instance, meta", Description: "Assigns the given instance a virtual (aka \"unresolved\") name", Path: "register-hostname-unresolve/{host}/{port}/{hostname}", Extract: ExtractKey},
	{Command: "deregister-hostname-unresolve", Section: "Instance, meta", Description: "Explicitly deregister/disassociate a hostname with an \"unresolved\" name", Path: "deregister-hostname-unresolve/{host}/{port}", Extract: ExtractKey},
	{Command: "set-heuristic-domain-instance", Section: "Instance, meta", Description: "Associate domain name of given cluster with what seems to be the writer primary for that cluster", Path: "set-heuristic-domain-instance/{clusterHint}", Extract: ExtractKey},
	{Command: "submit-primaries-to-kv-stores", Section: "Instance, meta", Description: "Submit primary of a specific cluster, or all primaries of all clusters to KV stores", Path: "submit-primaries-to-kv-stores", Extract: ExtractDetails},

	// Meta
	{Command: "snapshot-topologies", Section: "Meta", Description: "Take a snapshot of existing topologies.", Path: "snapshot-topologies", Extract: ExtractRaw},
	{Command: "active-nodes", Section: "Meta", Description: "List currently active orchestrator nodes", Path: "active-nodes", Extract: ExtractDetails},
	{Command: "access-token", Section: "Meta", Description: "Get a HTTP access token", Path: "access-token", Extract: ExtractDetails},
	{Command: "api", Section: "Meta", Description: "Invoke any API request; provide --path and optionally --query", Path: "{apiPath}", Extract: ExtractRaw},

	// Raft
	{Command: "raft-state", Section: "Raft", Description: "Report raft state of this node (leader/follower/candidate)", Path: "raft-state", Extract: ExtractRaw},
	{Command: "raft-leader", Section: "Raft", Description: "Report identity of raft leader, assuming raft setup", Path: "raft-leader", Extract: ExtractRaw},
	{Command: "raft-health", Section: "Raft", Description: "Report whether this node is part of a healthy raft group", Path: "raft-health", Extract: ExtractRaw},
	{Command: "raft-status", Section: "Raft", Description: "Report raft status of this node", Path: "raft-status", Extract: ExtractDetails},
}

var commandIndex = map[string]*CommandSpec{}

func init() {
	for i := range commandRegistry {
		commandIndex[commandRegistry[i].Command] = &commandRegistry[i]
	}
}

// LookupCommand applies the legacy-name rewrite and finds the command's spec,
// or fails with ErrUnsupportedCommand.
func LookupCommand(command string) (*CommandSpec, error) {
	command = RewriteCommand(command)
	if spec, ok := commandIndex[command]; ok {
		return spec, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedCommand, command)
}

// KnownCommands returns the full registry, in declaration (help listing) order
func KnownCommands() []CommandSpec {
	return commandRegistry
}

// CommandsListing returns a sectioned help listing of all known commands
func CommandsListing() string {
	listing := []string{}
	lastSection := ""
	for _, spec := range commandRegistry {
		if lastSection != spec.Section {
			lastSection = spec.Section
			listing = append(listing, fmt.Sprintf("%s:", spec.Section))
		}
		listing = append(listing, fmt.Sprintf("\t%-40s%s", spec.Command, spec.Description))
	}
	return strings.Join(listing, "\n")
}
