package missioncontrol

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func newClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	c, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// serve returns a server answering every request with status and body.
func serve(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func refresh(t *testing.T, c *Client) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.RefreshContext(ctx)
}

// ── scenarios ────────────────────────────────────────────────────────────────

func TestScenarioA_NoArguments(t *testing.T) {
	c := newClient(t)
	c.Launch(nil, "")

	assert.NotNil(t, c.Config())
	assert.Empty(t, c.Config())
	_, ok := c.RefreshDate()
	assert.False(t, ok)
	assert.Equal(t, 5, c.Int("X", 5))
}

func TestScenarioB_LocalConfig(t *testing.T) {
	c := newClient(t)
	c.Launch(ConfigMap{"X": Int(5)}, "")

	assert.Equal(t, 5, c.Int("X", 0))
	assert.Equal(t, 9, c.Int("Y", 9))
	assert.Equal(t, ConfigMap{"X": Int(5)}, c.Config())
	assert.Equal(t, c.Config(), c.Settings())
}

func TestScenarioC_NotFound(t *testing.T) {
	srv, _ := serve(t, http.StatusNotFound, "not found")
	c := newClient(t)

	var (
		mu      sync.Mutex
		failure error
	)
	c.SetDelegate(DelegateFuncs{DidFail: func(err error) {
		mu.Lock()
		defer mu.Unlock()
		failure = err
	}})
	failed := c.Listen(context.Background(), DidFailRefreshingConfig)

	c.Launch(ConfigMap{"X": Int(5)}, srv.URL)
	err := refresh(t, c)
	assert.ErrorIs(t, err, ErrBadResponseCode)

	select {
	case n := <-failed:
		assert.ErrorIs(t, n.Err, ErrBadResponseCode)
		assert.Equal(t, n.Error, n.UserInfo()[ErrorKey])
		assert.Contains(t, n.Error, "404")
	case <-time.After(2 * time.Second):
		t.Fatal("no failure notification")
	}

	mu.Lock()
	assert.ErrorIs(t, failure, ErrBadResponseCode)
	mu.Unlock()

	assert.Equal(t, ConfigMap{"X": Int(5)}, c.Config())
	_, ok := c.RefreshDate()
	assert.False(t, ok)
}

func TestScenarioD_Success(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, `{"X": 10}`)
	c := newClient(t)
	c.Launch(ConfigMap{"X": Int(5)}, srv.URL)

	require.NoError(t, refresh(t, c))

	assert.Equal(t, 10, c.Int("X", 0))
	refreshed, ok := c.RefreshDate()
	require.True(t, ok)
	cached, ok := c.CacheDate()
	require.True(t, ok)
	assert.Equal(t, refreshed, cached)
}

func TestScenarioE_EmptyBody(t *testing.T) {
	tests := []struct {
		name  string
		local ConfigMap
		want  int
	}{
		{name: "no prior value", local: nil, want: 5},
		{name: "local value kept", local: ConfigMap{"X": Int(7)}, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := serve(t, http.StatusOK, "")
			c := newClient(t)
			c.Launch(tt.local, srv.URL)

			err := refresh(t, c)
			assert.ErrorIs(t, err, ErrInvalidData)
			assert.Equal(t, tt.want, c.Int("X", 5))
		})
	}
}

// A failed refresh after a good one keeps serving the good document.
func TestRefresh_FailureKeepsLastGoodRemote(t *testing.T) {
	var broken atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if broken.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"X": 10}`))
	}))
	t.Cleanup(srv.Close)

	c := newClient(t)
	c.Launch(ConfigMap{"X": Int(5)}, srv.URL)
	require.NoError(t, refresh(t, c))
	before, _ := c.RefreshDate()

	broken.Store(true)
	assert.ErrorIs(t, refresh(t, c), ErrBadResponseCode)

	assert.Equal(t, 10, c.Int("X", 0))
	after, _ := c.RefreshDate()
	assert.Equal(t, before, after)
}

func TestNoRemoteURL(t *testing.T) {
	c := newClient(t)
	c.Launch(ConfigMap{"X": Int(5)}, "")

	assert.ErrorIs(t, refresh(t, c), ErrNoRemoteURL)
	assert.Empty(t, c.RemoteURL())
}

// ── accessors ────────────────────────────────────────────────────────────────

func TestAccessors(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, `{"TestBool":true,"TestInt":8,"TestDouble":2.1,"TestString":"Remote","Whole":3,"Nested":{"a":1}}`)
	c := newClient(t)
	c.Launch(ConfigMap{
		"TestBool":   Bool(false),
		"TestString": String("Local"),
		"LocalOnly":  String("local"),
	}, srv.URL)
	require.NoError(t, refresh(t, c))

	assert.True(t, c.Bool("TestBool", false))
	assert.Equal(t, 8, c.Int("TestInt", 0))
	assert.Equal(t, 2.1, c.Double("TestDouble", 0))
	assert.Equal(t, "Remote", c.String("TestString", ""))
	assert.Equal(t, "local", c.String("LocalOnly", ""))

	assert.Equal(t, 3.0, c.Double("Whole", 0), "integers read as doubles")
	assert.Equal(t, 0, c.Int("TestDouble", 0), "doubles never read as integers")
	assert.Equal(t, "fb", c.String("TestInt", "fb"), "type mismatch falls back")
	assert.Equal(t, 1, c.Int("Nested", 1), "non-scalar values are dropped")

	assert.Equal(t, 8, Get(c, "TestInt", 0))
	v, ok := c.Lookup("TestString", KindString)
	require.True(t, ok)
	assert.Equal(t, String("Remote"), v)
}

func TestForceAccessors(t *testing.T) {
	var broken atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if broken.Load() {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"TestBool":true,"TestInt":8,"TestDouble":2.1,"TestString":"Remote"}`))
	}))
	t.Cleanup(srv.Close)

	c := newClient(t)
	c.Launch(ConfigMap{"TestString": String("Local")}, srv.URL)

	bools := make(chan bool, 1)
	ints := make(chan int, 1)
	doubles := make(chan float64, 1)
	strs := make(chan string, 1)

	c.BoolForce("TestBool", false, func(v bool) { bools <- v })
	c.IntForce("TestInt", 0, func(v int) { ints <- v })
	c.DoubleForce("TestDouble", 0, func(v float64) { doubles <- v })
	c.StringForce("TestString", "", func(v string) { strs <- v })

	assert.True(t, <-bools)
	assert.Equal(t, 8, <-ints)
	assert.Equal(t, 2.1, <-doubles)
	assert.Equal(t, "Remote", <-strs)

	broken.Store(true)
	c.StringForce("TestString", "Fallback", func(v string) { strs <- v })
	assert.Equal(t, "Fallback", <-strs, "failure hands back the fallback, not the resolved value")
	assert.Equal(t, "Remote", c.String("TestString", "Fallback"))

	GetForce(c, "TestInt", 42, func(v int) { ints <- v })
	assert.Equal(t, 42, <-ints)
}

// ── notifications ────────────────────────────────────────────────────────────

func TestNotifications_OldAndNew(t *testing.T) {
	var body atomic.Value
	body.Store(`{"X": 1}`)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body.Load().(string)))
	}))
	t.Cleanup(srv.Close)

	c := newClient(t)
	events := make(chan Notification, 4)
	sub := c.Subscribe(DidRefreshConfig, func(n Notification) { events <- n })
	assert.NotEmpty(t, sub.ID)

	c.Launch(nil, "")
	c.SetRemoteURL(srv.URL)
	first := <-events
	assert.Nil(t, first.Old)
	assert.Equal(t, ConfigMap{"X": Int(1)}, first.New)
	assert.NotContains(t, first.UserInfo(), OldConfigKey)

	body.Store(`{"X": 2}`)
	require.NoError(t, refresh(t, c))
	second := <-events
	assert.Equal(t, ConfigMap{"X": Int(1)}, second.Old)
	assert.Equal(t, ConfigMap{"X": Int(2)}, second.New)
	assert.Contains(t, second.UserInfo(), OldConfigKey)

	assert.True(t, c.Unsubscribe(sub.ID))
	require.NoError(t, refresh(t, c))
	select {
	case <-events:
		t.Fatal("unsubscribed callback still called")
	default:
	}
}

func TestDelegate_CalledBeforeCompletion(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, `{}`)
	c := newClient(t)

	var order []string
	c.SetDelegate(DelegateFuncs{DidRefresh: func(_, _ ConfigMap) { order = append(order, "delegate") }})
	assert.NotNil(t, c.Delegate())

	c.Launch(nil, "")
	c.SetRemoteURL(srv.URL)

	done := make(chan struct{})
	c.Refresh(func(error) {
		order = append(order, "completion")
		close(done)
	})
	<-done

	require.NotEmpty(t, order)
	assert.Equal(t, "completion", order[len(order)-1])
	assert.Contains(t, order, "delegate")
}

// ── single flight ────────────────────────────────────────────────────────────

func TestRefresh_ConcurrentCallersShareRequest(t *testing.T) {
	release := make(chan struct{})
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		<-release
		_, _ = w.Write([]byte(`{"X": 1}`))
	}))
	t.Cleanup(srv.Close)

	c := newClient(t)
	c.Launch(nil, srv.URL)

	require.Eventually(t, func() bool { return hits.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		c.Refresh(func(err error) {
			assert.NoError(t, err)
			wg.Done()
		})
	}
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), hits.Load())
}

// ── persistence ──────────────────────────────────────────────────────────────

func TestCache_SurvivesRestart(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "cache.db")
	srv, _ := serve(t, http.StatusOK, `{"X": 10, "Ratio": 2.0}`)

	first, err := New(WithCacheDSN(dsn))
	require.NoError(t, err)
	first.Launch(ConfigMap{"X": Int(5)}, srv.URL)
	require.NoError(t, refresh(t, first))
	written, ok := first.CacheDate()
	require.True(t, ok)
	require.NoError(t, first.Close())

	second := newClient(t, WithCacheDSN(dsn))
	second.Launch(ConfigMap{"X": Int(5)}, "")

	assert.Equal(t, 10, second.Int("X", 0))
	assert.Equal(t, 2.0, second.Double("Ratio", 0))
	_, ok = second.RefreshDate()
	assert.False(t, ok, "refresh date belongs to the process that refreshed")
	cached, ok := second.CacheDate()
	require.True(t, ok)
	assert.True(t, written.Equal(cached))
}

func TestResetAll_ClearsPersistedCache(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "cache.db")
	srv, _ := serve(t, http.StatusOK, `{"X": 10}`)

	c := newClient(t, WithCacheDSN(dsn))
	c.Launch(ConfigMap{"X": Int(5)}, srv.URL)
	require.NoError(t, refresh(t, c))

	require.NoError(t, c.ResetAll(context.Background()))
	assert.Empty(t, c.Config())
	assert.Nil(t, c.Delegate())

	again := newClient(t, WithCacheDSN(dsn))
	_, ok := again.CacheDate()
	assert.False(t, ok)
}

func TestResetRemote(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, `{"X": 10}`)
	c := newClient(t)
	c.Launch(ConfigMap{"X": Int(5)}, srv.URL)
	require.NoError(t, refresh(t, c))

	c.ResetRemote()
	_, ok := c.RefreshDate()
	assert.False(t, ok)
	assert.Equal(t, 10, c.Int("X", 0), "cached tier still holds the document")
}

// ── options ──────────────────────────────────────────────────────────────────

type staticFetcher struct{ cfg ConfigMap }

func (f staticFetcher) Fetch(context.Context, string) (ConfigMap, error) { return f.cfg, nil }

func TestOptions_FetcherClockAndMetrics(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	reg := prometheus.NewRegistry()

	c := newClient(t,
		WithFetcher(staticFetcher{cfg: ConfigMap{"X": Int(3)}}),
		WithClock(func() time.Time { return now }),
		WithMetrics(reg),
		WithRequestTimeout(time.Second),
	)
	c.Launch(nil, "stub://config")
	require.NoError(t, refresh(t, c))

	assert.Equal(t, 3, c.Int("X", 0))
	refreshed, _ := c.RefreshDate()
	assert.Equal(t, now, refreshed)

	n, err := testutil.GatherAndCount(reg, "missioncontrol_refreshes_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRequestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	c := newClient(t, WithRequestTimeout(50*time.Millisecond))
	c.Launch(nil, srv.URL)

	assert.ErrorIs(t, refresh(t, c), ErrBadResponseCode)
}

func TestClose(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	require.NoError(t, c.Close())

	assert.ErrorIs(t, c.RefreshContext(context.Background()), ErrClosed)
}

func TestClose_FromCallbacks(t *testing.T) {
	tests := []struct {
		name    string
		install func(c *Client, closed chan<- struct{})
	}{
		{
			name: "completion",
			install: func(c *Client, closed chan<- struct{}) {
				c.Refresh(func(error) {
					_ = c.Close()
					close(closed)
				})
			},
		},
		{
			name: "delegate",
			install: func(c *Client, closed chan<- struct{}) {
				var once sync.Once
				c.SetDelegate(DelegateFuncs{DidRefresh: func(_, _ ConfigMap) {
					once.Do(func() {
						_ = c.Close()
						close(closed)
					})
				}})
				c.Refresh(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := serve(t, http.StatusOK, `{"a":1}`)
			c := newClient(t, WithCacheDSN(filepath.Join(t.TempDir(), "cache.db")))
			c.Launch(nil, "")
			c.SetRemoteURL(srv.URL)

			closed := make(chan struct{})
			tt.install(c, closed)

			select {
			case <-closed:
			case <-time.After(3 * time.Second):
				t.Fatal("Close called from a callback never returned")
			}
			select {
			case <-c.Done():
			case <-time.After(3 * time.Second):
				t.Fatal("shutdown did not finish")
			}
			assert.ErrorIs(t, c.RefreshContext(context.Background()), ErrClosed)
		})
	}
}

func TestParseConfigMap(t *testing.T) {
	cfg, skipped, err := ParseConfigMap([]byte(`{"a": 1, "b": [1]}`))
	require.NoError(t, err)
	assert.Equal(t, ConfigMap{"a": Int(1)}, cfg)
	assert.Equal(t, []string{"b"}, skipped)
}
