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

	"github.com/tidwall/gjson"
)

// ResultExtraction names the strategy by which a command's reply is turned
// into terminal output.
type ResultExtraction int

const (
	// ExtractRaw emits the raw reply body textually
	ExtractRaw ResultExtraction = iota
	// ExtractDetails emits the envelope's Details value textually
	ExtractDetails
	// ExtractKey renders the Details' nested Key as hostname:port
	ExtractKey
	// ExtractMasterKey renders the Details' nested MasterKey as hostname:port
	ExtractMasterKey
	// ExtractKeysList renders each array element's Key, one per line
	ExtractKeysList
	// ExtractComposite renders "key<masterKey", an instance beneath its parent
	ExtractComposite
)

// renderKey formats a {Hostname, Port} JSON object as hostname:port. The
// hostname is emitted verbatim.
func renderKey(key gjson.Result) (string, error) {
	hostname := key.Get("Hostname")
	port := key.Get("Port")
	if !hostname.Exists() || !port.Exists() {
		return "", fmt.Errorf("cannot render instance key from: %s", key.Raw)
	}
	return fmt.Sprintf("%s:%d", hostname.String(), port.Int()), nil
}

// renderText emits a JSON value textually: scalar strings are unquoted,
// null becomes empty, anything else keeps its JSON representation.
func renderText(value gjson.Result) string {
	switch value.Type {
	case gjson.Null:
		return ""
	case gjson.String:
		return value.String()
	default:
		return strings.TrimSpace(value.Raw)
	}
}

// Render projects a successful response into terminal output, per the
// command's extraction strategy.
func Render(response *Response, extract ResultExtraction) (string, error) {
	switch extract {
	case ExtractRaw:
		return renderText(gjson.ParseBytes(response.Raw)), nil
	case ExtractDetails:
		return renderText(gjson.ParseBytes(response.Details())), nil
	}

	details := gjson.ParseBytes(response.Details())
	switch extract {
	case ExtractKey:
		return renderKey(details.Get("Key"))
	case ExtractMasterKey:
		return renderKey(details.Get("MasterKey"))
	case ExtractKeysList:
		if !details.IsArray() {
			return "", fmt.Errorf("expected a list result, got: %s", abbreviate(response.Details()))
		}
		lines := []string{}
		var renderErr error
		details.ForEach(func(_, element gjson.Result) bool {
			line, err := renderKey(element.Get("Key"))
			if err != nil {
				renderErr = err
				return false
			}
			lines = append(lines, line)
			return true
		})
		if renderErr != nil {
			return "", renderErr
		}
		return strings.Join(lines, "\n"), nil
	case ExtractComposite:
		key, err := renderKey(details.Get("Key"))
		if err != nil {
			return "", err
		}
		masterKey, err := renderKey(details.Get("MasterKey"))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s<%s", key, masterKey), nil
	}
	return "", fmt.Errorf("unknown result extraction: %d", extract)
}
