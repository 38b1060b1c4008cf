package model

import (
	"database/sql/driver"
	"fmt"

	"conn-hub/internal/pkg/crypto"
)

// Secret 敏感字符串，内存中为明文，落库时经 crypto.Default() 加密
type Secret string

// String 防止日志、fmt 输出明文
func (s Secret) String() string {
	return "***"
}

// Plain 返回明文
func (s Secret) Plain() string {
	return string(s)
}

// 实现 driver.Valuer
func (s Secret) Value() (driver.Value, error) {
	c, err := crypto.Default()
	if err != nil {
		return nil, err
	}
	return c.Encrypt(string(s))
}

// 实现 sql.Scanner
func (s *Secret) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case nil:
		*s = ""
		return nil
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into Secret", value)
	}

	c, err := crypto.Default()
	if err != nil {
		return err
	}
	plain, err := c.Decrypt(raw)
	if err != nil {
		return fmt.Errorf("解密连接密码失败: %w", err)
	}
	*s = Secret(plain)
	return nil
}
