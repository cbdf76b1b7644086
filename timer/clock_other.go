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

//go:build !linux

package timer

import "time"

const cpuClockSupported = false

type wallClock struct{}

// Now reads time.Now. The monotonic reading is dropped by the conversion, so
// off Linux this is plain wall time.
func (wallClock) Now() (Timestamp, error) {
	now := time.Now()
	return Timestamp{Sec: now.Unix(), Nsec: int64(now.Nanosecond())}, nil
}

type cpuClock struct{}

func (cpuClock) Now() (Timestamp, error) {
	return Timestamp{}, ErrUnsupportedClock
}
