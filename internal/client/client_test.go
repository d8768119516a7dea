package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/roster/internal/roster"
	"github.com/rshade/roster/pkg/version"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, "secret-token", 5*time.Second, opts...)
	require.NoError(t, err)
	return c
}

func TestNew_RejectsBadURL(t *testing.T) {
	for _, raw := range []string{"", "not a url", "/employees", "ftp://host"} {
		t.Run(raw, func(t *testing.T) {
			_, err := New(raw, "t", 0)
			assert.ErrorIs(t, err, roster.ErrInvalidInput)
		})
	}
}

func TestFetchAll(t *testing.T) {
	var gotHeaders http.Header
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/employees", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[
			{"id":1,"name":"Ada","jobTitle":"Software Engineer","hireDate":"2020-01-02","status":"Active"},
			{"id":2,"name":"Grace","jobTitle":"IT Support Specialist","hireDate":"2019-05-06","details":"on call"}
		]`)
	})

	records, err := c.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, roster.Record{
		ID: 1, Name: "Ada", JobTitle: roster.JobTitleSoftwareEngineer,
		HireDate: "2020-01-02", Status: roster.StatusActive,
	}, records[0])
	assert.Equal(t, "on call", records[1].Details)

	assert.Equal(t, "Bearer secret-token", gotHeaders.Get("Authorization"))
	assert.Equal(t, "application/json", gotHeaders.Get("Accept"))
	assert.Equal(t, version.UserAgent(), gotHeaders.Get("User-Agent"))
	_, parseErr := uuid.Parse(gotHeaders.Get(HeaderRequestID))
	assert.NoError(t, parseErr)
}

func TestFetchAll_EmptyAndNull(t *testing.T) {
	for _, body := range []string{`[]`, `null`} {
		t.Run(body, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, body)
			})
			records, err := c.FetchAll(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, records)
			assert.Empty(t, records)
		})
	}
}

func TestFetchAll_Errors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantAuth  bool
		wantTrans bool
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: "Not Authorized", wantAuth: true},
		{name: "forbidden", status: http.StatusForbidden, wantAuth: true},
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantTrans: true},
		{name: "not found", status: http.StatusNotFound, wantTrans: true},
		{name: "bad json", status: http.StatusOK, body: `{"id":`, wantTrans: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			records, err := c.FetchAll(context.Background())
			require.Error(t, err)
			assert.Nil(t, records)
			assert.Equal(t, tt.wantAuth, errors.Is(err, roster.ErrNotAuthorized))
			assert.Equal(t, tt.wantTrans, errors.Is(err, roster.ErrTransientFetch))
		})
	}
}

func TestFetchAll_StatusErrorDetails(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, strings.Repeat("x", 2*maxErrorBody))
	})

	_, err := c.FetchAll(context.Background())
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusBadGateway))
	assert.False(t, IsStatus(err, http.StatusNotFound))
	assert.Contains(t, err.Error(), "GET /employees returned 502")
	assert.Less(t, len(err.Error()), 2*maxErrorBody)
}

func TestFetchAll_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := New(url, "", time.Second)
	require.NoError(t, err)

	_, err = c.FetchAll(context.Background())
	assert.ErrorIs(t, err, roster.ErrTransientFetch)
}

func TestFetchAll_ContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchAll(ctx)
	assert.ErrorIs(t, err, roster.ErrTransientFetch)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNoTokenSendsNoAuthorization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[]`)
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, "  ", 0)
	require.NoError(t, err)
	_, err = c.FetchAll(context.Background())
	require.NoError(t, err)
}

func TestMutations(t *testing.T) {
	record := roster.Record{
		ID: 7, Name: "Linus", JobTitle: roster.JobTitleITSupport, HireDate: "2021-03-04",
	}

	tests := []struct {
		name       string
		call       func(*Client) (bool, error)
		wantMethod string
		wantPath   string
		wantBody   bool
		respBody   string
		want       bool
	}{
		{
			name:       "create strips id",
			call:       func(c *Client) (bool, error) { return c.Create(context.Background(), record) },
			wantMethod: http.MethodPost, wantPath: "/employees", wantBody: true,
			respBody: "true", want: true,
		},
		{
			name:       "update",
			call:       func(c *Client) (bool, error) { return c.Update(context.Background(), record) },
			wantMethod: http.MethodPut, wantPath: "/employees/7", wantBody: true,
			respBody: "", want: true,
		},
		{
			name:       "delete declined",
			call:       func(c *Client) (bool, error) { return c.Delete(context.Background(), 7) },
			wantMethod: http.MethodDelete, wantPath: "/employees/7",
			respBody: " false\n", want: false,
		},
		{
			name:       "delete with object body",
			call:       func(c *Client) (bool, error) { return c.Delete(context.Background(), 7) },
			wantMethod: http.MethodDelete, wantPath: "/employees/7",
			respBody: `{"deleted":7}`, want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantMethod, r.Method)
				assert.Equal(t, tt.wantPath, r.URL.Path)
				body, _ := io.ReadAll(r.Body)
				if tt.wantBody {
					assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
					var sent roster.Record
					require.NoError(t, json.Unmarshal(body, &sent))
					assert.Equal(t, record.Name, sent.Name)
					if tt.wantMethod == http.MethodPost {
						assert.Zero(t, sent.ID)
					} else {
						assert.Equal(t, record.ID, sent.ID)
					}
				} else {
					assert.Empty(t, body)
				}
				_, _ = io.WriteString(w, tt.respBody)
			})

			got, err := tt.call(c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMutation_Unauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	ok, err := c.Delete(context.Background(), 1)
	assert.False(t, ok)
	assert.ErrorIs(t, err, roster.ErrNotAuthorized)
}

func TestBaseURLWithPathPrefix(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/employees", r.URL.Path)
		_, _ = io.WriteString(w, `[]`)
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/api/v1/", "", 0)
	require.NoError(t, err)
	_, err = c.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/api/v1/", c.BaseURL())
}

func TestWithHTTPClient(t *testing.T) {
	var used atomic.Bool
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		used.Store(true)
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{},
			Body:       io.NopCloser(strings.NewReader(`[]`)),
			Request:    r,
		}, nil
	})}

	c, err := New("http://example.invalid", "", 0, WithHTTPClient(hc), WithHTTPClient(nil))
	require.NoError(t, err)
	_, err = c.FetchAll(context.Background())
	require.NoError(t, err)
	assert.True(t, used.Load())
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestAPIVersionCheck(t *testing.T) {
	tests := []struct {
		name      string
		advertise string
		skip      bool
		wantWarn  bool
	}{
		{name: "compatible", advertise: "1.4.0"},
		{name: "v prefix", advertise: "v1.0.0"},
		{name: "major mismatch", advertise: "2.0.0", wantWarn: true},
		{name: "unparsable", advertise: "banana", wantWarn: true},
		{name: "skipped", advertise: "3.0.0", skip: true},
		{name: "absent", advertise: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf)
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				if tt.advertise != "" {
					w.Header().Set(HeaderAPIVersion, tt.advertise)
				}
				_, _ = io.WriteString(w, `[]`)
			}, WithLogger(logger), WithSkipVersionCheck(tt.skip))

			for range 3 {
				_, err := c.FetchAll(context.Background())
				require.NoError(t, err)
			}

			warnings := strings.Count(buf.String(), `"level":"warn"`)
			if tt.wantWarn {
				assert.Equal(t, 1, warnings, "warns once per client")
			} else {
				assert.Zero(t, warnings)
			}
		})
	}
}

func TestAPIVersionCheck_SkippedByContext(t *testing.T) {
	var buf bytes.Buffer
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(HeaderAPIVersion, "9.0.0")
		_, _ = io.WriteString(w, `[]`)
	}, WithLogger(zerolog.New(&buf)))

	ctx := context.WithValue(context.Background(), SkipVersionCheckKey, true)
	_, err := c.FetchAll(ctx)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), `"level":"warn"`)
}

func TestCompareAPIVersion(t *testing.T) {
	got, err := CompareAPIVersion("1.9.9")
	require.NoError(t, err)
	assert.Equal(t, Compatible, got)

	got, err = CompareAPIVersion("0.9.0")
	require.NoError(t, err)
	assert.Equal(t, Incompatible, got)

	_, err = CompareAPIVersion("")
	assert.Error(t, err)
}
