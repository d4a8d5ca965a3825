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
	"net/url"
	"strconv"
	"strings"

	"github.com/openark/orchestrator-client/go/inst"
)

// CommandParams are the free parameters a user may provide for a command.
// Which of them are actually required is dictated by the command's path
// template tokens, not by the command name.
type CommandParams struct {
	InstanceKey    *inst.InstanceKey
	DestinationKey *inst.InstanceKey
	Owner          string
	Reason         string
	Duration       string
	ClusterHint    string
	Pool           string
	Pattern        string
	PromotionRule  string
	Hostname       string
	APIPath        string
	Query          string
}

// flag names by which missing parameters are reported
var tokenFlagNames = map[string]string{
	"host":          "-i (instance)",
	"port":          "-i (instance)",
	"belowHost":     "-d (destination)",
	"belowPort":     "-d (destination)",
	"owner":         "-o (owner)",
	"reason":        "-r (reason)",
	"duration":      "-u (duration)",
	"clusterHint":   "-a (alias) or -i (instance)",
	"pool":          "-l (pool)",
	"pattern":       "-i (pattern)",
	"promotionRule": "--promotion-rule",
	"hostname":      "--hostname",
	"apiPath":       "-P (path)",
	"query":         "-q (query)",
}

// BuildPath expands a command's path template with the given parameters.
// Path-segment tokens are path-escaped, query tokens query-escaped, and the
// generic apiPath token passed verbatim. Any token left unresolved fails with
// ErrMissingParameter, before any network call is made.
func BuildPath(spec *CommandSpec, params *CommandParams) (string, error) {
	template := spec.Path
	if spec.PathAlternate != "" && params.DestinationKey != nil {
		template = spec.PathAlternate
	}
	pathPart, queryPart, hasQuery := strings.Cut(template, "?")

	pathPart, err := expandTokens(pathPart, params, url.PathEscape)
	if err != nil {
		return "", err
	}
	if !hasQuery {
		return pathPart, nil
	}
	queryPart, err = expandTokens(queryPart, params, url.QueryEscape)
	if err != nil {
		return "", err
	}
	return pathPart + "?" + queryPart, nil
}

// expandTokens replaces every {token} in the template, whether it stands as
// a whole path segment or is embedded as in "s={pattern}".
func expandTokens(template string, params *CommandParams, escape func(string) string) (string, error) {
	var result strings.Builder
	for {
		before, rest, found := strings.Cut(template, "{")
		result.WriteString(before)
		if !found {
			break
		}
		token, after, closed := strings.Cut(rest, "}")
		if !closed {
			return "", fmt.Errorf("malformed path template near: %s", rest)
		}
		value, err := resolveToken(token, params, escape)
		if err != nil {
			return "", err
		}
		result.WriteString(value)
		template = after
	}
	return result.String(), nil
}

func resolveToken(token string, params *CommandParams, escape func(string) string) (string, error) {
	missing := func() (string, error) {
		name := tokenFlagNames[token]
		if name == "" {
			name = token
		}
		return "", fmt.Errorf("%w: %s", ErrMissingParameter, name)
	}
	value := ""
	switch token {
	case "host":
		if params.InstanceKey == nil {
			return missing()
		}
		value = params.InstanceKey.Hostname
	case "port":
		if params.InstanceKey == nil {
			return missing()
		}
		return strconv.Itoa(params.InstanceKey.Port), nil
	case "belowHost":
		if params.DestinationKey == nil {
			return missing()
		}
		value = params.DestinationKey.Hostname
	case "belowPort":
		if params.DestinationKey == nil {
			return missing()
		}
		return strconv.Itoa(params.DestinationKey.Port), nil
	case "owner":
		value = params.Owner
	case "reason":
		value = params.Reason
	case "duration":
		value = params.Duration
	case "clusterHint":
		value = params.ClusterHint
	case "pool":
		value = params.Pool
	case "pattern":
		value = params.Pattern
	case "promotionRule":
		value = params.PromotionRule
	case "hostname":
		value = params.Hostname
	case "query":
		value = params.Query
	case "apiPath":
		// generic passthrough: the user-provided path and query are trusted verbatim
		if params.APIPath == "" {
			return missing()
		}
		apiPath := strings.TrimPrefix(params.APIPath, "/")
		if params.Query != "" {
			apiPath = apiPath + "?" + params.Query
		}
		return apiPath, nil
	default:
		return "", fmt.Errorf("unknown path template token: {%s}", token)
	}
	if value == "" {
		return missing()
	}
	return escape(value), nil
}
