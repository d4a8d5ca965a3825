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

// Package app drives a single orchestrator-client invocation: it resolves
// command parameters, dispatches the API call and projects the reply.
package app

import (
	"fmt"
	"os"
	"os/user"
	"time"

	"github.com/openark/golib/log"

	"github.com/openark/orchestrator-client/go/client"
	"github.com/openark/orchestrator-client/go/config"
	"github.com/openark/orchestrator-client/go/inst"
	"github.com/openark/orchestrator-client/go/util"
)

// CliParams is the full flag surface of a single invocation
type CliParams struct {
	Command       string
	Instance      string
	Destination   string
	Alias         string
	Owner         string
	Reason        string
	Duration      string
	PromotionRule string
	Pool          string
	Hostname      string
	APIPath       string
	Query         string
}

func availableCommandsUsage() string {
	return fmt.Sprintf(`Available commands (-c):
%+v
Usage for most commands:
	orchestrator-client -c <command> [-i <instance.fqdn>[:port]] [-d <destination.fqdn>[:port]] [--debug]
`, client.CommandsListing())
}

// Cli executes the requested command and exits the process on any failure.
func Cli(cliParams *CliParams) {
	command := client.RewriteCommand(cliParams.Command)
	switch command {
	case "":
		log.Fatalf("No command given. %s", availableCommandsUsage())
	case "help":
		fmt.Fprint(os.Stderr, availableCommandsUsage())
		return
	}

	spec, err := client.LookupCommand(command)
	if err != nil {
		log.Fatalf("Unknown command: \"%s\". %s", cliParams.Command, availableCommandsUsage())
	}

	params, err := resolveParams(cliParams)
	if err != nil {
		log.Fatale(err)
	}
	// local validation completes before any network call
	path, err := client.BuildPath(spec, params)
	if err != nil {
		log.Fatale(err)
	}

	c := client.NewClient(
		config.Config.APIEndpoints,
		config.Config.AuthUser,
		config.Config.AuthPassword,
		time.Duration(config.Config.LeaderCheckTimeoutSeconds)*time.Second,
		time.Duration(config.Config.TimeoutSeconds)*time.Second,
	)
	leader, err := c.ResolveLeader()
	if err != nil {
		log.Fatale(err)
	}
	response, err := c.Call(leader, path)
	if err != nil {
		log.Fatale(err)
	}
	if response.IsAppError() {
		fmt.Fprintln(os.Stderr, client.NormalizeMessage(response.Envelope.Message))
		if details := response.Envelope.Details; len(details) > 0 && string(details) != "null" {
			fmt.Fprintln(os.Stderr, string(details))
		}
		os.Exit(1)
	}
	output, err := client.Render(response, spec.Extract)
	if err != nil {
		log.Fatale(err)
	}
	if output != "" {
		fmt.Println(output)
	}
}

// resolveParams normalizes user input into dispatchable command parameters
func resolveParams(cliParams *CliParams) (*client.CommandParams, error) {
	instanceKey, err := inst.ParseInstanceKey(cliParams.Instance, config.Config.DefaultInstancePort)
	if err != nil {
		// an unparseable -i value may still serve as free text (e.g. search);
		// commands which do need a key will fail parameter validation
		instanceKey = nil
	}
	destinationKey, err := inst.ParseInstanceKey(cliParams.Destination, config.Config.DefaultInstancePort)
	if err != nil {
		destinationKey = nil
	}

	owner := cliParams.Owner
	if owner == "" {
		// default to OS username
		if usr, err := user.Current(); err == nil {
			owner = usr.Username
		}
	}

	if cliParams.Duration != "" {
		durationSeconds, err := util.SimpleTimeToSeconds(cliParams.Duration)
		if err != nil {
			return nil, err
		}
		if durationSeconds < 0 {
			return nil, fmt.Errorf("duration value must be non-negative. Given value: %d", durationSeconds)
		}
	}

	clusterHint := cliParams.Alias
	if clusterHint == "" && instanceKey != nil {
		clusterHint = instanceKey.DisplayString()
	}

	return &client.CommandParams{
		InstanceKey:    instanceKey,
		DestinationKey: destinationKey,
		Owner:          owner,
		Reason:         cliParams.Reason,
		Duration:       cliParams.Duration,
		ClusterHint:    clusterHint,
		Pool:           cliParams.Pool,
		Pattern:        cliParams.Instance,
		PromotionRule:  cliParams.PromotionRule,
		Hostname:       cliParams.Hostname,
		APIPath:        cliParams.APIPath,
		Query:          cliParams.Query,
	}, nil
}
