// Copyright 2026 The sway-screens Authors
// SPDX-License-Identifier: Apache-2.0

package swayipc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// The i3-ipc wire format: magic, payload length, message type, payload.
var magic = []byte("i3-ipc")

// headerLength is the fixed size of a message header: 6 magic bytes +
// 4 bytes payload length + 4 bytes message type.
const headerLength = 14

// maxPayloadLength bounds replies so a corrupt length field cannot
// make us allocate gigabytes. Output listings are a few kilobytes.
const maxPayloadLength = 16 * 1024 * 1024

// messageType identifies an IPC request/reply pair. Replies reuse the
// request's type value.
type messageType uint32

const (
	messageRunCommand messageType = 0
	messageGetOutputs messageType = 3
)

// writeMessage writes one framed message to w.
func writeMessage(w io.Writer, kind messageType, payload []byte) error {
	header := make([]byte, headerLength)
	copy(header, magic)
	binary.LittleEndian.PutUint32(header[6:10], uint32(len(payload)))
	binary.LittleEndian.PutUint32(header[10:14], uint32(kind))
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("write message header: %w", err)
	}
	if len(payload) > 0 {
		if _, err := w.Write(payload); err != nil {
			return fmt.Errorf("write message payload: %w", err)
		}
	}
	return nil
}

// readMessage reads one framed message from r. Returns an error for a
// bad magic, an oversized payload, or a truncated stream.
func readMessage(r io.Reader) (messageType, []byte, error) {
	header := make([]byte, headerLength)
	if _, err := io.ReadFull(r, header); err != nil {
		return 0, nil, fmt.Errorf("read message header: %w", err)
	}
	if !bytes.Equal(header[:6], magic) {
		return 0, nil, fmt.Errorf("bad magic %q in message header", header[:6])
	}
	payloadLength := binary.LittleEndian.Uint32(header[6:10])
	kind := messageType(binary.LittleEndian.Uint32(header[10:14]))
	if payloadLength > maxPayloadLength {
		return 0, nil, fmt.Errorf("payload length %d exceeds maximum %d", payloadLength, maxPayloadLength)
	}
	payload := make([]byte, payloadLength)
	if payloadLength > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return 0, nil, fmt.Errorf("read message payload: %w", err)
		}
	}
	return kind, payload, nil
}
