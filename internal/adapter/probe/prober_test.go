package probe

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"conn-hub/internal/model"
	"conn-hub/pkg/constants"
)

func strPtr(s string) *string { return &s }

func intPtr(v int) *int { return &v }

func splitHostPort(t *testing.T, addr string) (string, int) {
	host, portStr, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return host, port
}

func TestRegistry_Dispatch(t *testing.T) {
	r := NewRegistry(time.Second)
	m := NewMockProber()
	r.Register("Custom", m)

	conn := &model.Connection{ConnID: "c1", ConnType: "custom"}
	m.On("Test", mock.Anything, conn).Return(true, "ok").Once()

	status, message := r.Test(context.Background(), conn)
	assert.True(t, status)
	assert.Equal(t, "ok", message)
	m.AssertExpectations(t)
}

func TestRegistry_AppliesTimeout(t *testing.T) {
	r := NewRegistry(50 * time.Millisecond)
	r.Register("slow", ProberFunc(func(ctx context.Context, _ *model.Connection) (bool, string) {
		_, ok := ctx.Deadline()
		assert.True(t, ok)
		<-ctx.Done()
		return false, ctx.Err().Error()
	}))

	status, message := r.Test(context.Background(), &model.Connection{ConnType: "slow"})
	assert.False(t, status)
	assert.Equal(t, context.DeadlineExceeded.Error(), message)
}

func TestTCPProber(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			_ = c.Close()
		}
	}()

	host, port := splitHostPort(t, ln.Addr().String())
	p := NewTCPProber()

	status, message := p.Test(context.Background(), &model.Connection{ConnType: "redis", Host: strPtr(host), Port: intPtr(port)})
	assert.True(t, status)
	assert.Equal(t, constants.TestConnectionSuccessMessage, message)

	status, message = p.Test(context.Background(), &model.Connection{ConnType: "redis", Host: strPtr(host)})
	assert.False(t, status)
	assert.Equal(t, "port is required to test a 'redis' connection", message)

	status, message = p.Test(context.Background(), &model.Connection{ConnType: "redis"})
	assert.False(t, status)
	assert.Equal(t, "host is required to test a 'redis' connection", message)
}

func TestHTTPProber(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if r.URL.Path == "/health" && ok && user == "admin" && pass == "secret" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	secret := model.Secret("secret")
	p := NewHTTPProber()

	status, message := p.Test(context.Background(), &model.Connection{
		ConnType: "http",
		Host:     strPtr(srv.URL),
		Schema:   strPtr("health"),
		Login:    strPtr("admin"),
		Password: &secret,
	})
	assert.True(t, status)
	assert.Equal(t, constants.TestConnectionSuccessMessage, message)

	status, message = p.Test(context.Background(), &model.Connection{ConnType: "http", Host: strPtr(srv.URL)})
	assert.False(t, status)
	assert.Contains(t, message, "401")
}

func TestHTTPURL(t *testing.T) {
	tests := []struct {
		name string
		conn *model.Connection
		want string
	}{
		{"plain host", &model.Connection{ConnType: "http", Host: strPtr("example.com")}, "http://example.com"},
		{"https type", &model.Connection{ConnType: "HTTPS", Host: strPtr("example.com"), Port: intPtr(8443)}, "https://example.com:8443"},
		{"host with scheme", &model.Connection{ConnType: "http", Host: strPtr("https://example.com/"), Schema: strPtr("/api")}, "https://example.com/api"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := httpURL(tt.conn)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMySQLConfig(t *testing.T) {
	secret := model.Secret("p@ss")
	conn := &model.Connection{
		ConnType: "mysql",
		Host:     strPtr("db.internal"),
		Login:    strPtr("root"),
		Password: &secret,
		Schema:   strPtr("airflow"),
	}

	cfg, err := mysqlConfig(context.Background(), conn)
	require.NoError(t, err)
	assert.Equal(t, "db.internal:3306", cfg.Addr)
	assert.Equal(t, "root", cfg.User)
	assert.Equal(t, "p@ss", cfg.Passwd)
	assert.Equal(t, "airflow", cfg.DBName)
	assert.Contains(t, cfg.FormatDSN(), "root:p@ss@tcp(db.internal:3306)/airflow")

	_, err = mysqlConfig(context.Background(), &model.Connection{ConnType: "mysql"})
	assert.Error(t, err)
}
