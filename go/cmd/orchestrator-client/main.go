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

// orchestrator-client is a command line client for the orchestrator HTTP API.
// It auto-detects the leader of an orchestrator setup given one or more
// endpoints, and submits a single command per invocation.
package main

import (
	"fmt"

	"github.com/openark/golib/log"
	"github.com/spf13/pflag"

	"github.com/openark/orchestrator-client/go/app"
	"github.com/openark/orchestrator-client/go/config"
)

// AppVersion gets set by the build process
var AppVersion string

func main() {
	cliParams := &app.CliParams{}
	pflag.StringVarP(&cliParams.Command, "command", "c", "", "command to run (see 'help' command)")
	pflag.StringVarP(&cliParams.Instance, "instance", "i", "", "instance, host or host:port")
	pflag.StringVarP(&cliParams.Destination, "destination", "d", "", "destination instance, host or host:port")
	pflag.StringVarP(&cliParams.Alias, "alias", "a", "", "cluster alias")
	pflag.StringVarP(&cliParams.Owner, "owner", "o", "", "maintenance owner (default: OS username)")
	pflag.StringVarP(&cliParams.Reason, "reason", "r", "", "maintenance/downtime reason")
	pflag.StringVarP(&cliParams.Duration, "duration", "u", "", "maintenance/downtime duration, e.g. 90, 30s, 10m, 2h")
	pflag.StringVarP(&cliParams.PromotionRule, "promotion-rule", "R", "", "candidate promotion rule (prefer|neutral|prefer_not|must_not)")
	pflag.StringVarP(&cliParams.Pool, "pool", "l", "", "pool name")
	pflag.StringVarP(&cliParams.Hostname, "hostname", "H", "", "virtual hostname to register")
	pflag.StringVarP(&cliParams.APIPath, "path", "P", "", "explicit API path, for the generic 'api' command")
	pflag.StringVarP(&cliParams.Query, "query", "q", "", "free-form query argument")

	apiEndpoints := pflag.StringP("api", "U", "", "orchestrator API endpoint(s), whitespace delimited (overrides $ORCHESTRATOR_API)")
	auth := pflag.StringP("auth", "b", "", "basic auth, as user:password (overrides $ORCHESTRATOR_AUTH_USER, $ORCHESTRATOR_AUTH_PASSWORD)")
	timeout := pflag.IntP("timeout", "t", 0, "API call timeout, seconds")
	defaultPort := pflag.Int("default-port", 0, "default instance port, assumed when -i/-d specify no port")
	configFile := pflag.String("config", "", "config file name")
	debug := pflag.Bool("debug", false, "debug mode (very verbose)")
	stack := pflag.Bool("stack", false, "add stack trace upon error")
	printVersion := pflag.Bool("version", false, "print version and exit")
	pflag.Parse()

	if *printVersion {
		if AppVersion == "" {
			AppVersion = "local-build"
		}
		fmt.Println(AppVersion)
		return
	}

	log.SetLevel(log.ERROR)
	if *debug {
		log.SetLevel(log.DEBUG)
	}
	if *stack {
		log.SetPrintStackTrace(*stack)
	}

	if *configFile != "" {
		config.ForceRead(*configFile)
	} else {
		config.Read("/etc/orchestrator-client.conf.json", "conf/orchestrator-client.conf.json", "orchestrator-client.conf.json")
	}
	config.ReadEnv()
	config.ApplyAPIEndpoints(*apiEndpoints)
	config.ApplyAuth(*auth)
	if *timeout > 0 {
		config.Config.TimeoutSeconds = *timeout
	}
	if *defaultPort > 0 {
		config.Config.DefaultInstancePort = *defaultPort
	}

	if cliParams.Command == "" && pflag.NArg() > 0 {
		cliParams.Command = pflag.Arg(0)
	}
	app.Cli(cliParams)
}
