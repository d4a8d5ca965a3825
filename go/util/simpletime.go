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

package util

import (
	"fmt"
	"regexp"
	"strconv"
)

var simpleTimeRegexp = regexp.MustCompile(`^([0-9]+)([smhd]?)$`)

// SimpleTimeToSeconds parses a duration shorthand such as "90", "30s", "10m",
// "2h" or "1d" into a number of seconds.
func SimpleTimeToSeconds(simpleTime string) (int, error) {
	submatch := simpleTimeRegexp.FindStringSubmatch(simpleTime)
	if len(submatch) == 0 {
		return 0, fmt.Errorf("cannot parse simple time: %s", simpleTime)
	}
	value, err := strconv.Atoi(submatch[1])
	if err != nil {
		return 0, err
	}
	switch submatch[2] {
	case "s", "":
		return value, nil
	case "m":
		return value * 60, nil
	case "h":
		return value * 60 * 60, nil
	case "d":
		return value * 60 * 60 * 24, nil
	}
	return 0, fmt.Errorf("cannot parse simple time: %s", simpleTime)
}
