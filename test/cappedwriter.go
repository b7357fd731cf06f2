// This file is part of actcore.
//
// actcore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// actcore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with actcore.  If not, see <https://www.gnu.org/licenses/>.

package test

import "fmt"

// CappedWriter is an io.Writer of fixed capacity that discards any bytes
// written once the capacity has been reached, rather than sliding the window
// forward the way RingWriter does.
type CappedWriter struct {
	buf []byte
	cap int
}

// NewCappedWriter creates a CappedWriter with the given capacity.
func NewCappedWriter(capacity int) (*CappedWriter, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("capped writer: capacity must be greater than zero")
	}
	return &CappedWriter{cap: capacity}, nil
}

// Write implements io.Writer. Bytes beyond the writer's capacity are
// silently dropped rather than returning an error; n always reports the
// length of p so callers relying on io.Writer's contract don't see a
// short-write error for an ordinary capacity cap.
func (c *CappedWriter) Write(p []byte) (int, error) {
	room := c.cap - len(c.buf)
	if room > 0 {
		if room > len(p) {
			room = len(p)
		}
		c.buf = append(c.buf, p[:room]...)
	}
	return len(p), nil
}

// String returns the current contents of the buffer.
func (c *CappedWriter) String() string {
	return string(c.buf)
}

// Reset empties the buffer.
func (c *CappedWriter) Reset() {
	c.buf = c.buf[:0]
}
