package client

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

const acceptedEncodings = "gzip, br, zstd"

// compressionTransport advertises gzip/brotli/zstd support on outgoing
// requests and transparently decodes whichever of them the server picked, so
// provider code always reads plain bytes.
type compressionTransport struct {
	next http.RoundTripper
}

func newCompressionTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &compressionTransport{next: next}
}

func (t *compressionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request.
	req = req.Clone(req.Context())
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", acceptedEncodings)
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// HEAD, 204, and 304 carry no body to decode.
	if resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	decoded, err := decodeBody(parseContentEncoding(resp.Header.Get("Content-Encoding")), resp.Body)
	if err != nil {
		resp.Body.Close()
		return nil, err
	}
	if decoded == nil {
		// Identity or an encoding we don't handle.
		return resp, nil
	}

	resp.Body = &decodedBody{decoder: decoded, raw: resp.Body}
	// The encoding headers describe the wire bytes, which no longer exist.
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	return resp, nil
}

// decodeBody returns a decoder for the given encoding, or nil when the body
// should pass through untouched.
func decodeBody(encoding string, body io.Reader) (io.ReadCloser, error) {
	switch encoding {
	case "gzip":
		r, err := gzip.NewReader(body)
		if err != nil {
			return nil, err
		}
		return r, nil
	case "br":
		return io.NopCloser(brotli.NewReader(body)), nil
	case "zstd":
		r, err := zstd.NewReader(body)
		if err != nil {
			return nil, err
		}
		return r.IOReadCloser(), nil
	default:
		return nil, nil
	}
}

// decodedBody closes the decoder and the underlying network body together.
type decodedBody struct {
	decoder io.ReadCloser
	raw     io.ReadCloser
}

func (b *decodedBody) Read(p []byte) (int, error) {
	return b.decoder.Read(p)
}

func (b *decodedBody) Close() error {
	decodeErr := b.decoder.Close()
	rawErr := b.raw.Close()
	if decodeErr != nil {
		return decodeErr
	}
	return rawErr
}

// parseContentEncoding returns the outermost encoding from a Content-Encoding
// header, lowercased. For a comma-separated list that is the last entry: it
// was applied last and must be removed first.
func parseContentEncoding(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.Split(header, ",")
	return strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
}
