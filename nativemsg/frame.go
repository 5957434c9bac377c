// Package nativemsg implements the browser native-messaging protocol: each
// message is a JSON document preceded by its length as a 32-bit
// little-endian integer.
package nativemsg

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fwojciec/jurisref"
)

// Frame size limits. Browsers reject host messages larger than 1 MiB and
// never send more than 64 MiB.
const (
	MaxOutgoingSize = 1 << 20
	MaxIncomingSize = 64 << 20
)

// MaxClipboardText bounds the text of a clipboard frame, leaving room for
// JSON escaping within MaxOutgoingSize.
const MaxClipboardText = MaxOutgoingSize / 2

// ReadFrame reads one message and decodes it into v. It returns io.EOF when
// the stream ends cleanly between frames. A frame whose body is not valid
// JSON is consumed and reported as EINVALID; the stream stays usable.
func ReadFrame(r io.Reader, v any) error {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return fmt.Errorf("read frame length: %w", err)
	}
	if size > MaxIncomingSize {
		return fmt.Errorf("frame of %d bytes exceeds limit", size)
	}

	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return fmt.Errorf("read frame body: %w", err)
	}
	if err := json.Unmarshal(buf, v); err != nil {
		return jurisref.Errorf(jurisref.EINVALID, "malformed frame: %v", err)
	}
	return nil
}

// WriteFrame encodes v and writes it as one message.
func WriteFrame(w io.Writer, v any) error {
	buf, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	if len(buf) > MaxOutgoingSize {
		return jurisref.Errorf(jurisref.EINVALID, "frame of %d bytes exceeds limit", len(buf))
	}

	if err := binary.Write(w, binary.LittleEndian, uint32(len(buf))); err != nil {
		return fmt.Errorf("write frame length: %w", err)
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write frame body: %w", err)
	}
	return nil
}
