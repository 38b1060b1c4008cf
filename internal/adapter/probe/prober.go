// Package probe 连接可达性探测
package probe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"conn-hub/internal/model"
	"conn-hub/internal/pkg/logger"
	"conn-hub/pkg/constants"

	"go.uber.org/zap"
)

// Prober 探测适配器接口
type Prober interface {

	// Test 探测连接是否可用
	// 返回是否成功及说明，失败原因放在说明中而不是 error
	Test(ctx context.Context, conn *model.Connection) (bool, string)
}

// ProberFunc 函数适配
type ProberFunc func(ctx context.Context, conn *model.Connection) (bool, string)

func (f ProberFunc) Test(ctx context.Context, conn *model.Connection) (bool, string) {
	return f(ctx, conn)
}

// Registry 按 conn_type 分发，未注册的类型走 TCP 探测
type Registry struct {
	timeout  time.Duration
	probers  map[string]Prober
	fallback Prober
}

// NewRegistry 注册内置探测器
func NewRegistry(timeout time.Duration) *Registry {
	r := &Registry{
		timeout:  timeout,
		probers:  make(map[string]Prober),
		fallback: NewTCPProber(),
	}
	mysqlProber := NewMySQLProber()
	r.Register("mysql", mysqlProber)
	r.Register("mariadb", mysqlProber)

	httpProber := NewHTTPProber()
	r.Register("http", httpProber)
	r.Register("https", httpProber)
	return r
}

// Register 注册或覆盖 connType 对应的探测器，connType 不区分大小写
func (r *Registry) Register(connType string, p Prober) {
	r.probers[strings.ToLower(connType)] = p
}

// Test 实现 Prober
func (r *Registry) Test(ctx context.Context, conn *model.Connection) (bool, string) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	p, ok := r.probers[strings.ToLower(conn.ConnType)]
	if !ok {
		p = r.fallback
	}

	start := time.Now()
	status, message := p.Test(ctx, conn)
	logger.Debug("连接探测完成",
		zap.String("conn_id", conn.ConnID),
		zap.String("conn_type", conn.ConnType),
		zap.Bool("status", status),
		zap.Duration("cost", time.Since(start)),
	)
	return status, message
}

// address 拼接 host:port，未配置端口时使用 defaultPort，defaultPort<=0 时报错
func address(conn *model.Connection, defaultPort int) (string, error) {
	if conn.Host == nil || strings.TrimSpace(*conn.Host) == "" {
		return "", fmt.Errorf("host is required to test a '%s' connection", conn.ConnType)
	}
	port := defaultPort
	if conn.Port != nil {
		port = *conn.Port
	}
	if port <= 0 {
		return "", fmt.Errorf("port is required to test a '%s' connection", conn.ConnType)
	}
	return fmt.Sprintf("%s:%d", strings.TrimSpace(*conn.Host), port), nil
}

func success() (bool, string) {
	return true, constants.TestConnectionSuccessMessage
}

func failure(err error) (bool, string) {
	return false, err.Error()
}
