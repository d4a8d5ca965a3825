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
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, body string) *Response {
	t.Helper()
	response, err := ParseResponse([]byte(body))
	require.NoError(t, err)
	return response
}

func TestRenderKey(t *testing.T) {
	response := mustParse(t, `{"Code":"OK","Details":{"Key":{"Hostname":"h","Port":3306}}}`)
	output, err := Render(response, ExtractKey)
	require.NoError(t, err)
	require.Equal(t, "h:3306", output)
}

func TestRenderKeyVerbatimHostname(t *testing.T) {
	response := mustParse(t, `{"Code":"OK","Details":{"Key":{"Hostname":"MySQL01.Example.Com","Port":3307}}}`)
	output, err := Render(response, ExtractKey)
	require.NoError(t, err)
	require.Equal(t, "MySQL01.Example.Com:3307", output)
}

func TestRenderMasterKey(t *testing.T) {
	response := mustParse(t, `{"Code":"OK","Details":{"Key":{"Hostname":"replica","Port":3306},"MasterKey":{"Hostname":"primary","Port":3306}}}`)
	output, err := Render(response, ExtractMasterKey)
	require.NoError(t, err)
	require.Equal(t, "primary:3306", output)
}

func TestRenderKeysListPreservesOrder(t *testing.T) {
	response := mustParse(t, `{"Code":"OK","Details":[
		{"Key":{"Hostname":"c","Port":3306}},
		{"Key":{"Hostname":"a","Port":3307}},
		{"Key":{"Hostname":"b","Port":3306}}
	]}`)
	output, err := Render(response, ExtractKeysList)
	require.NoError(t, err)
	require.Equal(t, "c:3306\na:3307\nb:3306", output)
}

func TestRenderKeysListBareArray(t *testing.T) {
	response := mustParse(t, `[{"Key":{"Hostname":"a","Port":3306}}]`)
	output, err := Render(response, ExtractKeysList)
	require.NoError(t, err)
	require.Equal(t, "a:3306", output)
}

func TestRenderComposite(t *testing.T) {
	response := mustParse(t, `{"Code":"OK","Details":{"Key":{"Hostname":"h1","Port":3306},"MasterKey":{"Hostname":"h2","Port":3306}}}`)
	output, err := Render(response, ExtractComposite)
	require.NoError(t, err)
	require.Equal(t, "h1:3306<h2:3306", output)
}

func TestRenderRawScalarUnquoted(t *testing.T) {
	response := mustParse(t, `"leader"`)
	output, err := Render(response, ExtractRaw)
	require.NoError(t, err)
	require.Equal(t, "leader", output)
}

func TestRenderRawArray(t *testing.T) {
	response := mustParse(t, `["alpha","beta"]`)
	output, err := Render(response, ExtractRaw)
	require.NoError(t, err)
	require.Equal(t, `["alpha","beta"]`, output)
}

func TestRenderDetailsText(t *testing.T) {
	response := mustParse(t, `{"Code":"OK","Details":"ascii topology here"}`)
	output, err := Render(response, ExtractDetails)
	require.NoError(t, err)
	require.Equal(t, "ascii topology here", output)
}

func TestRenderDetailsNull(t *testing.T) {
	response := mustParse(t, `{"Code":"OK","Details":null}`)
	output, err := Render(response, ExtractDetails)
	require.NoError(t, err)
	require.Equal(t, "", output)
}

func TestRenderKeyMissing(t *testing.T) {
	response := mustParse(t, `{"Code":"OK","Details":{}}`)
	_, err := Render(response, ExtractKey)
	require.Error(t, err)
}
