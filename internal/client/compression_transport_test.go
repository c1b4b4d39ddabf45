package client

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

func doRequest(t *testing.T, url string) *http.Response {
	t.Helper()
	c := &http.Client{Transport: newCompressionTransport(nil)}
	resp, err := c.Get(url)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	return resp
}

func TestCompressionTransport_SetsAcceptEncoding(t *testing.T) {
	var acceptEncoding string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		acceptEncoding = r.Header.Get("Accept-Encoding")
	}))
	defer server.Close()

	resp := doRequest(t, server.URL)
	resp.Body.Close()

	if acceptEncoding != "gzip, br, zstd" {
		t.Errorf("Accept-Encoding = %q, want %q", acceptEncoding, "gzip, br, zstd")
	}
}

func TestCompressionTransport_Decompresses(t *testing.T) {
	const payload = "subtitle search response body"

	tests := []struct {
		encoding string
		compress func(t *testing.T, data []byte) []byte
	}{
		{
			encoding: "gzip",
			compress: func(t *testing.T, data []byte) []byte {
				var buf bytes.Buffer
				zw := gzip.NewWriter(&buf)
				if _, err := zw.Write(data); err != nil {
					t.Fatalf("gzip write: %v", err)
				}
				if err := zw.Close(); err != nil {
					t.Fatalf("gzip close: %v", err)
				}
				return buf.Bytes()
			},
		},
		{
			encoding: "br",
			compress: func(t *testing.T, data []byte) []byte {
				var buf bytes.Buffer
				bw := brotli.NewWriter(&buf)
				if _, err := bw.Write(data); err != nil {
					t.Fatalf("brotli write: %v", err)
				}
				if err := bw.Close(); err != nil {
					t.Fatalf("brotli close: %v", err)
				}
				return buf.Bytes()
			},
		},
		{
			encoding: "zstd",
			compress: func(t *testing.T, data []byte) []byte {
				var buf bytes.Buffer
				zw, err := zstd.NewWriter(&buf)
				if err != nil {
					t.Fatalf("zstd writer: %v", err)
				}
				if _, err := zw.Write(data); err != nil {
					t.Fatalf("zstd write: %v", err)
				}
				if err := zw.Close(); err != nil {
					t.Fatalf("zstd close: %v", err)
				}
				return buf.Bytes()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.encoding, func(t *testing.T) {
			compressed := tt.compress(t, []byte(payload))
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Encoding", tt.encoding)
				_, _ = w.Write(compressed)
			}))
			defer server.Close()

			resp := doRequest(t, server.URL)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("read body: %v", err)
			}
			if string(body) != payload {
				t.Errorf("body = %q, want %q", body, payload)
			}
			if resp.Header.Get("Content-Encoding") != "" {
				t.Error("Content-Encoding header should be removed after decompression")
			}
			if resp.ContentLength != -1 {
				t.Errorf("ContentLength = %d, want -1 after decompression", resp.ContentLength)
			}
		})
	}
}

func TestCompressionTransport_PassesThroughIdentity(t *testing.T) {
	const payload = "plain body"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	resp := doRequest(t, server.URL)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(body) != payload {
		t.Errorf("body = %q, want %q", body, payload)
	}
}

func TestParseContentEncoding(t *testing.T) {
	t.Parallel()
	tests := []struct {
		header string
		want   string
	}{
		{header: "", want: ""},
		{header: "   ", want: ""},
		{header: "gzip", want: "gzip"},
		{header: "GZIP", want: "gzip"},
		{header: " br ", want: "br"},
		{header: "gzip, br", want: "br"},
		{header: "identity, zstd", want: "zstd"},
	}
	for _, tt := range tests {
		if got := parseContentEncoding(tt.header); got != tt.want {
			t.Errorf("parseContentEncoding(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
