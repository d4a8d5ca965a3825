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

// Package client implements the HTTP side of orchestrator-client: resolving
// the leader among configured orchestrator API endpoints, dispatching command
// paths with retries, and interpreting the generic API response envelope.
package client

import (
	"errors"
	"time"

	"github.com/patrickmn/go-cache"
)

var (
	// ErrUnsupportedCommand indicates a command name not found in the registry
	ErrUnsupportedCommand = errors.New("unsupported command")
	// ErrMissingParameter indicates a command parameter required by the path
	// template and not provided by the user
	ErrMissingParameter = errors.New("missing parameter")
	// ErrNoLeaderFound indicates no configured endpoint passed leader-check
	ErrNoLeaderFound = errors.New("no leader found")
	// ErrAPIUnreachable indicates the retry budget was exhausted at the
	// transport level
	ErrAPIUnreachable = errors.New("orchestrator API unreachable")
)

// Client speaks to a set of orchestrator API endpoints. It carries the
// resolved leader for the lifetime of the process; there is no re-resolution
// mid run.
type Client struct {
	endpoints []string
	user      string
	password  string

	httpGetter  httpGetter
	probeGetter httpGetter

	// leaderCache memoizes the one leader resolution performed per process
	leaderCache *cache.Cache

	// sleep stands for time.Sleep; tests inject a recorder
	sleep func(time.Duration)
}

// NewClient returns a Client over the given ordered endpoint set. Basic auth
// credentials are applied on every request, empty or not.
func NewClient(endpoints []string, user string, password string, probeTimeout time.Duration, callTimeout time.Duration) *Client {
	return &Client{
		endpoints:   endpoints,
		user:        user,
		password:    password,
		httpGetter:  setupHTTPClient(callTimeout),
		probeGetter: setupHTTPClient(probeTimeout),
		leaderCache: cache.New(cache.NoExpiration, 0),
		sleep:       time.Sleep,
	}
}
