// Copyright (C) 2017 Bitnami
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package testing provides a scriptable fake hfcore.Link and a simulated
// MIFARE Classic/Ultralight memory model shared across the protocol
// packages' table-driven tests.
package testing

import (
	"context"
	"fmt"
	"sync"
	"time"

	hfcore "github.com/rfresearch/go-hfcore"
)

// ScriptedResponse is one canned reply a VirtualLink returns for a given
// opcode, in FIFO order per opcode.
type ScriptedResponse struct {
	Response hfcore.Response
	Err      error
}

// VirtualLink is a scriptable fake implementing hfcore.Link. Callers queue
// responses per opcode with Queue, then exercise code under test exactly
// as it would run against a real front-end.
type VirtualLink struct {
	mu        sync.Mutex
	queued    map[hfcore.Opcode][]ScriptedResponse
	sent      []SentFrame
	closed    bool
	broken    bool
	uploaded  []byte
	traceData []byte
}

// SentFrame records one Send call observed by the VirtualLink, for
// assertions on what a package under test actually transmitted.
type SentFrame struct {
	Opcode  hfcore.Opcode
	Args    [3]uint32
	Payload []byte
}

// NewVirtualLink returns an empty VirtualLink with no queued responses.
func NewVirtualLink() *VirtualLink {
	return &VirtualLink{queued: make(map[hfcore.Opcode][]ScriptedResponse)}
}

// Queue appends a response to be returned the next time opcode is sent.
func (v *VirtualLink) Queue(opcode hfcore.Opcode, resp hfcore.Response, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	resp.Opcode = opcode
	v.queued[opcode] = append(v.queued[opcode], ScriptedResponse{Response: resp, Err: err})
}

// SetTraceData configures the payload DownloadTrace will return.
func (v *VirtualLink) SetTraceData(data []byte) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.traceData = data
}

// Sent returns every frame observed by Send, in order.
func (v *VirtualLink) Sent() []SentFrame {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]SentFrame(nil), v.sent...)
}

// Uploaded returns the concatenation of every UploadChunked call's data.
func (v *VirtualLink) Uploaded() []byte {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]byte(nil), v.uploaded...)
}

// Send implements hfcore.Link.
func (v *VirtualLink) Send(_ context.Context, opcode hfcore.Opcode, args [3]uint32, payload []byte) (hfcore.Response, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.sent = append(v.sent, SentFrame{Opcode: opcode, Args: args, Payload: append([]byte(nil), payload...)})

	queue := v.queued[opcode]
	if len(queue) == 0 {
		return hfcore.Response{}, fmt.Errorf("virtual link: no scripted response for opcode %04x", opcode)
	}
	next := queue[0]
	v.queued[opcode] = queue[1:]
	return next.Response, next.Err
}

// Wait implements hfcore.Link by replaying the next scripted response.
func (v *VirtualLink) Wait(ctx context.Context, opcode hfcore.Opcode, _ time.Duration) (hfcore.Response, error) {
	return v.Send(ctx, opcode, [3]uint32{}, nil)
}

// UploadChunked implements hfcore.Link, recording every uploaded byte.
func (v *VirtualLink) UploadChunked(_ context.Context, data []byte, _ bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.uploaded = append(v.uploaded, data...)
	return nil
}

// DownloadTrace implements hfcore.Link, returning the configured trace data.
func (v *VirtualLink) DownloadTrace(_ context.Context, maxLen int) ([]byte, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if maxLen > 0 && maxLen < len(v.traceData) {
		return v.traceData[:maxLen], nil
	}
	return v.traceData, nil
}

// BreakLoop implements hfcore.Link.
func (v *VirtualLink) BreakLoop(context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.broken = true
	return nil
}

// Broken reports whether BreakLoop was invoked.
func (v *VirtualLink) Broken() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.broken
}

// Close implements hfcore.Link.
func (v *VirtualLink) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	return nil
}

// Closed reports whether Close was invoked.
func (v *VirtualLink) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

var _ hfcore.Link = (*VirtualLink)(nil)
