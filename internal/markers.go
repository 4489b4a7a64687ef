// The MIT License
//
// Copyright (c) 2020 Temporal Technologies Inc.  All rights reserved.
//
// Copyright (c) 2020 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package internal

import (
	commonpb "go.temporal.io/api/common/v1"
)

const (
	changeMarkerIDDetailsKey         = "change-id"
	changeMarkerDeprecatedDetailsKey = "deprecated"
)

// encodeChangeMarkerDetails is the inverse of decodeChangeMarkerDetails, used
// by the patch/version machine when it records its own marker. Mirrors the
// real MarkerRecordedEventAttributes.Details shape: a map of named payloads
// rather than a single positional payload list.
func encodeChangeMarkerDetails(patchID string, deprecated bool) map[string]*commonpb.Payloads {
	idPayloads, err := DefaultDataConverter.ToData(patchID)
	if err != nil {
		return nil
	}
	deprecatedPayloads, err := DefaultDataConverter.ToData(deprecated)
	if err != nil {
		return nil
	}
	return map[string]*commonpb.Payloads{
		changeMarkerIDDetailsKey:         idPayloads,
		changeMarkerDeprecatedDetailsKey: deprecatedPayloads,
	}
}

// decodeChangeMarkerDetails pulls the patch id and deprecated flag out of a
// version-marker's recorded details.
func decodeChangeMarkerDetails(details map[string]*commonpb.Payloads) (patchID string, deprecated bool, ok bool) {
	idPayloads, hasID := details[changeMarkerIDDetailsKey]
	if !hasID {
		return "", false, false
	}
	if err := DefaultDataConverter.FromData(idPayloads, &patchID); err != nil {
		return "", false, false
	}
	if deprecatedPayloads, hasDeprecated := details[changeMarkerDeprecatedDetailsKey]; hasDeprecated {
		_ = DefaultDataConverter.FromData(deprecatedPayloads, &deprecated)
	}
	return patchID, deprecated, true
}
