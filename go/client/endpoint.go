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
	"net/http"
	"strings"

	"github.com/openark/golib/log"
	"github.com/patrickmn/go-cache"
)

// apiRootSuffix is the fixed API root segment all endpoints are normalized to
const apiRootSuffix = "/api"

// leaderCheckPath is the orchestrator health-check endpoint; HTTP 200 means
// the responding node is the active leader.
const leaderCheckPath = "leader-check"

// NormalizeEndpoint canonicalizes a base URL into an API root: one trailing
// slash is stripped, and the API root suffix is appended unless already
// present. The function is idempotent.
func NormalizeEndpoint(raw string) string {
	endpoint := strings.TrimSuffix(raw, "/")
	if !strings.HasSuffix(endpoint, apiRootSuffix) {
		endpoint = endpoint + apiRootSuffix
	}
	return endpoint
}

// ResolveLeader returns the single endpoint to use for this session. The
// result is cached; a process resolves its leader exactly once.
func (client *Client) ResolveLeader() (string, error) {
	cacheKey := strings.Join(client.endpoints, " ")
	if leader, found := client.leaderCache.Get(cacheKey); found {
		return leader.(string), nil
	}
	leader, err := client.resolveLeader()
	if err != nil {
		return "", err
	}
	client.leaderCache.Set(cacheKey, leader, cache.NoExpiration)
	return leader, nil
}

// resolveLeader scans the configured endpoints in listed order and returns
// the first to pass leader-check. A single-endpoint configuration is trusted
// by construction and returned with no probe.
func (client *Client) resolveLeader() (string, error) {
	if len(client.endpoints) == 0 {
		return "", fmt.Errorf("%w: no API endpoints configured", ErrNoLeaderFound)
	}
	if len(client.endpoints) == 1 {
		return NormalizeEndpoint(client.endpoints[0]), nil
	}
	for _, endpoint := range client.endpoints {
		api := NormalizeEndpoint(endpoint)
		if client.probeLeader(api) {
			log.Debugf("leader-check passed on %s", api)
			return api, nil
		}
	}
	return "", fmt.Errorf("%w: leader-check failed on all of %+v", ErrNoLeaderFound, client.endpoints)
}

// probeLeader issues a single short-timeout leader-check request. Success is
// HTTP status 200 exactly.
func (client *Client) probeLeader(api string) bool {
	req, err := http.NewRequest(http.MethodGet, api+"/"+leaderCheckPath, nil)
	if err != nil {
		return false
	}
	req.SetBasicAuth(client.user, client.password)
	resp, err := client.probeGetter.Do(req)
	if err != nil {
		log.Debugf("leader-check error on %s: %+v", api, err)
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
