package probe

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"conn-hub/internal/model"
)

// HTTPProber 对 host 发起 GET，状态码小于 400 视为成功
type HTTPProber struct {
	client *http.Client
}

func NewHTTPProber() *HTTPProber {
	return &HTTPProber{client: &http.Client{}}
}

func (p *HTTPProber) Test(ctx context.Context, conn *model.Connection) (bool, string) {
	target, err := httpURL(conn)
	if err != nil {
		return failure(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return failure(err)
	}
	if conn.Login != nil && *conn.Login != "" {
		password := ""
		if conn.Password != nil {
			password = conn.Password.Plain()
		}
		req.SetBasicAuth(*conn.Login, password)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return failure(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return false, fmt.Sprintf("%s returned %s", target, resp.Status)
	}
	return success()
}

// httpURL host 已带 scheme 时原样使用（拼接端口、schema 作为路径除外）
func httpURL(conn *model.Connection) (string, error) {
	if conn.Host == nil || strings.TrimSpace(*conn.Host) == "" {
		return "", fmt.Errorf("host is required to test a '%s' connection", conn.ConnType)
	}
	host := strings.TrimRight(strings.TrimSpace(*conn.Host), "/")
	if !strings.Contains(host, "://") {
		scheme := strings.ToLower(conn.ConnType)
		if scheme != "https" {
			scheme = "http"
		}
		host = scheme + "://" + host
	}
	if conn.Port != nil {
		host = fmt.Sprintf("%s:%d", host, *conn.Port)
	}
	if conn.Schema != nil && *conn.Schema != "" {
		host += "/" + strings.TrimLeft(*conn.Schema, "/")
	}
	return host, nil
}
