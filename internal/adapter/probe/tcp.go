package probe

import (
	"context"
	"net"

	"golang.org/x/net/proxy"

	"conn-hub/internal/model"
)

// TCPProber 仅检查 host:port 能否建立 TCP 连接
// 遵循 ALL_PROXY / NO_PROXY 环境变量
type TCPProber struct {
	dial func(ctx context.Context, network, addr string) (net.Conn, error)
}

func NewTCPProber() *TCPProber {
	return &TCPProber{dial: proxy.Dial}
}

func (p *TCPProber) Test(ctx context.Context, conn *model.Connection) (bool, string) {
	addr, err := address(conn, 0)
	if err != nil {
		return failure(err)
	}
	c, err := p.dial(ctx, "tcp", addr)
	if err != nil {
		return failure(err)
	}
	_ = c.Close()
	return success()
}
