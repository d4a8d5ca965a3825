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
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

var defaultTimeout = time.Minute

// httpGetter is the transport dependency of this package; *http.Client
// satisfies it, and tests inject counting fakes.
type httpGetter interface {
	Do(req *http.Request) (*http.Response, error)
}

// setupHTTPClient creates a simple HTTP client with timeout
func setupHTTPClient(httpTimeout time.Duration) *http.Client {
	if httpTimeout == 0 {
		httpTimeout = defaultTimeout
	}
	httpTransport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: false},
		DialContext: (&net.Dialer{
			Timeout:   httpTimeout,
			KeepAlive: httpTimeout,
		}).DialContext,
		ResponseHeaderTimeout: httpTimeout,
	}
	httpClient := &http.Client{Transport: httpTransport}

	return httpClient
}
