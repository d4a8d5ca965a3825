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
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// APIResponseCode is an OK/ERROR response code as defined by the orchestrator API
type APIResponseCode string

const (
	// OK is the not-error response code
	OK APIResponseCode = "OK"
	// ERROR is the error sentinel: its presence marks an application failure
	ERROR APIResponseCode = "ERROR"
)

// ResponseKind tags the top-level shape of an API reply. Classification
// happens exactly once, at parse time; downstream code switches on the tag
// and never re-inspects raw JSON shape.
type ResponseKind int

const (
	// KindArray is a bare JSON array: a list result with no envelope
	KindArray ResponseKind = iota
	// KindScalar is a bare JSON string/number/bool
	KindScalar
	// KindObject is a JSON object carrying no Code field: a raw payload
	KindObject
	// KindEnvelope is the generic {Code, Message, Details} reply
	KindEnvelope
)

// APIResponse is the generic orchestrator API envelope
type APIResponse struct {
	Code    APIResponseCode
	Message string
	Details json.RawMessage
}

// Response is a parsed API reply: the raw body plus its classification, and
// the decoded envelope when the body carries one.
type Response struct {
	Kind     ResponseKind
	Raw      []byte
	Envelope *APIResponse
}

// ParseResponse classifies and decodes an API reply body. A body that is not
// valid JSON is an error, which the dispatcher treats as a failed attempt.
func ParseResponse(body []byte) (*Response, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("malformed response body: %s", abbreviate(body))
	}
	parsed := gjson.ParseBytes(body)
	response := &Response{Raw: body}
	switch {
	case parsed.IsArray():
		response.Kind = KindArray
	case parsed.IsObject():
		if !parsed.Get("Code").Exists() {
			response.Kind = KindObject
			break
		}
		response.Kind = KindEnvelope
		envelope := &APIResponse{}
		if err := json.Unmarshal(body, envelope); err != nil {
			return nil, fmt.Errorf("malformed response envelope: %+v", err)
		}
		response.Envelope = envelope
	default:
		response.Kind = KindScalar
	}
	return response, nil
}

// IsAppError tells whether this response is a well formed envelope carrying
// the error sentinel code.
func (response *Response) IsAppError() bool {
	return response.Kind == KindEnvelope && response.Envelope.Code == ERROR
}

// Details returns the payload to project: the envelope's Details when there
// is an envelope, the raw body otherwise.
func (response *Response) Details() []byte {
	if response.Kind == KindEnvelope {
		return response.Envelope.Details
	}
	return response.Raw
}

var messageSpacesRegexp = regexp.MustCompile(`[ \t\n\r]+`)

// NormalizeMessage cleans up an envelope Message for diagnostic output:
// surrounding quotes stripped, whitespace runs collapsed.
func NormalizeMessage(message string) string {
	message = strings.TrimSpace(message)
	message = strings.Trim(message, `"`)
	message = messageSpacesRegexp.ReplaceAllString(message, " ")
	return strings.TrimSpace(message)
}

func abbreviate(body []byte) string {
	const maxLen = 128
	if len(body) <= maxLen {
		return string(body)
	}
	return string(body[:maxLen]) + "..."
}
