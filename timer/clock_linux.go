// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build linux

package timer

import "golang.org/x/sys/unix"

const cpuClockSupported = true

type wallClock struct{}

func (wallClock) Now() (Timestamp, error) {
	return clockGettime(unix.CLOCK_MONOTONIC)
}

type cpuClock struct{}

func (cpuClock) Now() (Timestamp, error) {
	return clockGettime(unix.CLOCK_PROCESS_CPUTIME_ID)
}

func clockGettime(id int32) (Timestamp, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(id, &ts); err != nil {
		return Timestamp{}, err
	}
	sec, nsec := ts.Unix()
	return Timestamp{Sec: sec, Nsec: nsec}, nil
}
