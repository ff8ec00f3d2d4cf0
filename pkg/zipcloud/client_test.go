package zipcloud

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	pkgerrors "github.com/aquaplan/aquatutor-backend/pkg/errors"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestNormalizePostalCode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "plain digits", raw: "1000001", want: "1000001"},
		{name: "hyphenated", raw: "100-0001", want: "1000001"},
		{name: "full width dash", raw: "100ー0001", want: "1000001"},
		{name: "surrounding spaces", raw: " 100-0001 ", want: "1000001"},
		{name: "too short", raw: "100-001", wantErr: true},
		{name: "too long", raw: "100-00012", wantErr: true},
		{name: "letters", raw: "10O-0001", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePostalCode(tt.raw)
			if tt.wantErr {
				typed := pkgerrors.As(err)
				if typed == nil || typed.Code() != pkgerrors.CodeValidation {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestClientLookup(t *testing.T) {
	const expectedURL = "http://zipcloud.test/api/search?zipcode=1000001"
	respBody := `{"status":200,"message":null,"results":[{"address1":"東京都","address2":"千代田区","address3":"千代田","zipcode":"1000001"}]}`

	var capturedURL string
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Header:     http.Header{},
		}, nil
	})

	client := NewClient(WithBaseURL("http://zipcloud.test"), WithHTTPClient(&http.Client{Transport: rt}))

	addr, err := client.Lookup(context.Background(), "100-0001")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if capturedURL != expectedURL {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	if addr.Prefecture != "東京都" || addr.City != "千代田区" || addr.Town != "千代田" {
		t.Fatalf("unexpected address %+v", addr)
	}
	if addr.PostalCode != "1000001" {
		t.Fatalf("expected normalized postal code, got %q", addr.PostalCode)
	}
}

func TestClientLookupNotFound(t *testing.T) {
	respBody := `{"status":200,"message":null,"results":null}`
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Header:     http.Header{},
		}, nil
	})

	client := NewClient(WithBaseURL("http://zipcloud.test"), WithHTTPClient(&http.Client{Transport: rt}))

	_, err := client.Lookup(context.Background(), "9999999")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestClientLookupUpstreamFailure(t *testing.T) {
	tests := []struct {
		name string
		resp *http.Response
	}{
		{
			name: "http error",
			resp: &http.Response{
				StatusCode: http.StatusBadGateway,
				Body:       io.NopCloser(strings.NewReader("bad gateway")),
				Header:     http.Header{},
			},
		},
		{
			name: "api level error",
			resp: &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(`{"status":400,"message":"invalid","results":null}`)),
				Header:     http.Header{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
				return tt.resp, nil
			})
			client := NewClient(WithBaseURL("http://zipcloud.test"), WithHTTPClient(&http.Client{Transport: rt}))

			_, err := client.Lookup(context.Background(), "1000001")
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeDependency {
				t.Fatalf("expected dependency error, got %v", err)
			}
		})
	}
}
