package probe

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"

	"conn-hub/internal/model"
)

const defaultMySQLPort = 3306

// MySQLProber 建立连接并 Ping
type MySQLProber struct{}

func NewMySQLProber() *MySQLProber {
	return &MySQLProber{}
}

func (p *MySQLProber) Test(ctx context.Context, conn *model.Connection) (bool, string) {
	cfg, err := mysqlConfig(ctx, conn)
	if err != nil {
		return failure(err)
	}

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return failure(err)
	}
	db := sql.OpenDB(connector)
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return failure(err)
	}
	return success()
}

// mysqlConfig 由连接记录构造驱动配置，schema 作为默认库
func mysqlConfig(ctx context.Context, conn *model.Connection) (*mysql.Config, error) {
	addr, err := address(conn, defaultMySQLPort)
	if err != nil {
		return nil, err
	}

	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = addr
	if conn.Login != nil {
		cfg.User = *conn.Login
	}
	if conn.Password != nil {
		cfg.Passwd = conn.Password.Plain()
	}
	if conn.Schema != nil {
		cfg.DBName = *conn.Schema
	}
	if deadline, ok := ctx.Deadline(); ok {
		cfg.Timeout = time.Until(deadline)
	}
	return cfg, nil
}
