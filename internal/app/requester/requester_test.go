package requester

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"pagecrawler/internal/usecase"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type roundTripperFunc func(r *http.Request) (*http.Response, error)

func (rt roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return rt(r)
}

type closeRecorder struct {
	io.Reader
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestNewRequester(t *testing.T) {
	l := zap.NewExample()
	req := NewRequester(3*time.Second, l, nil)
	assert.NotNil(t, req, "Create new requester failed")
}

func TestReqFetch(t *testing.T) {
	var gotUA string
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
		_, _ = w.Write([]byte("<title>ok</title>"))
	}))
	defer s.Close()

	req := NewRequester(10*time.Second, zap.NewNop(), nil).WithUserAgent("pagecrawler-test")

	resp, err := req.Fetch(context.Background(), s.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "<title>ok</title>", string(resp.Body))
	assert.Equal(t, "pagecrawler-test", gotUA)
}

func TestReqFetchFollowsRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("moved"))
	})
	s := httptest.NewServer(mux)
	defer s.Close()

	resp, err := NewRequester(10*time.Second, zap.NewNop(), nil).Fetch(context.Background(), s.URL+"/old")
	require.NoError(t, err)
	assert.Equal(t, "moved", string(resp.Body))
}

func TestReqFetchBadStatus(t *testing.T) {
	body := &closeRecorder{Reader: strings.NewReader("not found")}
	req := NewRequester(3*time.Second, zap.NewNop(), roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusNotFound, Body: body}, nil
	}))

	resp, err := req.Fetch(context.Background(), "http://example.com")
	assert.Nil(t, resp)

	var statusErr *usecase.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.True(t, body.closed, "body must be closed on failure")
}

func TestReqFetchTransportError(t *testing.T) {
	boom := errors.New("connection refused")
	req := NewRequester(3*time.Second, zap.NewNop(), roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return nil, boom
	}))

	resp, err := req.Fetch(context.Background(), "http://example.com")
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, boom)
	var statusErr *usecase.StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestReqFetchTimeout(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer s.Close()

	_, err := NewRequester(50*time.Millisecond, zap.NewNop(), nil).Fetch(context.Background(), s.URL)
	assert.Error(t, err)
}

func TestReqFetchContextDone(t *testing.T) {
	called := false
	req := NewRequester(3*time.Second, zap.NewNop(), roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		called = true
		return nil, errors.New("unreachable")
	}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := req.Fetch(ctx, "http://example.com")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestReqFetchMalformedURL(t *testing.T) {
	_, err := NewRequester(time.Second, zap.NewNop(), nil).Fetch(context.Background(), "http://[::1")
	assert.Error(t, err)
}
