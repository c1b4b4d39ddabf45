package zimuku

import (
	"io"

	"golang.org/x/net/html/charset"
)

// newUTF8Reader wraps an io.Reader with automatic character encoding detection
// and conversion to UTF-8, so pages served as GBK or GB18030 parse correctly
// with goquery. The charset is detected from meta tags, BOMs, or content
// heuristics; already-UTF-8 content passes through with minimal overhead.
func newUTF8Reader(body io.Reader) (io.Reader, error) {
	return charset.NewReader(body, "")
}
