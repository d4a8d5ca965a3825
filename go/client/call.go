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
	"io"
	"net/http"
	"time"

	"github.com/openark/golib/log"
	"github.com/sjmudd/stopwatch"
)

// retryIntervals is the fixed backoff schedule: one entry per attempt, each
// being the sleep following a failed attempt. The final zero means no
// trailing sleep once the budget is exhausted.
var retryIntervals = []time.Duration{
	100 * time.Millisecond,
	200 * time.Millisecond,
	500 * time.Millisecond,
	1 * time.Second,
	2 * time.Second,
	2500 * time.Millisecond,
	5 * time.Second,
	0,
}

// Call issues a command path against the leader endpoint, retrying on
// transport-level failure per the backoff schedule. The first well-formed
// reply stops the loop, even when it carries an application error; only
// transport errors and malformed bodies are retried. Exhausting the schedule
// fails with ErrAPIUnreachable.
func (client *Client) Call(leaderAPI string, path string) (*Response, error) {
	latency := stopwatch.NewNamedStopwatch()
	_ = latency.AddMany([]string{"api"})

	var lastErr error
	for attempt, interval := range retryIntervals {
		latency.Start("api")
		response, err := client.call(leaderAPI, path)
		latency.Stop("api")
		if err == nil {
			log.Debugf("GET %s/%s: attempt %d, latency %+v", leaderAPI, path, attempt+1, latency.Elapsed("api"))
			return response, nil
		}
		lastErr = err
		log.Debugf("GET %s/%s: attempt %d failed: %+v", leaderAPI, path, attempt+1, err)
		if interval > 0 {
			client.sleep(interval)
		}
	}
	return nil, fmt.Errorf("%w: %s: %+v", ErrAPIUnreachable, leaderAPI, lastErr)
}

// call performs one synchronous GET attempt. An HTTP error status is not a
// failure: whatever body comes back goes through envelope classification.
func (client *Client) call(api string, path string) (*Response, error) {
	req, err := http.NewRequest(http.MethodGet, api+"/"+path, nil)
	if err != nil {
		return nil, err
	}
	// empty credentials are passed through, not omitted
	req.SetBasicAuth(client.user, client.password)
	resp, err := client.httpGetter.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return ParseResponse(body)
}
