package model

const ConnectionTableName = "connection"

// Connection 连接记录
//
// 说明：
// - conn_id: 客户端指定的唯一标识，创建后不可修改
// - password: 落库时加密（见 Secret），任何响应中都不返回
// - extra: 通常为 JSON 对象字符串，输出前脱敏
type Connection struct {
	BaseModel

	ConnID      string  `gorm:"column:conn_id;size:250;not null;uniqueIndex"`
	ConnType    string  `gorm:"column:conn_type;size:500;not null"`
	Description *string `gorm:"column:description;type:text"`
	Host        *string `gorm:"column:host;size:500"`
	Login       *string `gorm:"column:login;type:text"`
	Schema      *string `gorm:"column:schema;size:500"`
	Port        *int    `gorm:"column:port"`
	Password    *Secret `gorm:"column:password;type:text"`
	Extra       *string `gorm:"column:extra;type:text"`
}

func (Connection) TableName() string {
	return ConnectionTableName
}

// Clone 深拷贝，避免调用方与存储层共享指针字段
func (c *Connection) Clone() *Connection {
	if c == nil {
		return nil
	}
	out := *c
	out.Description = clonePtr(c.Description)
	out.Host = clonePtr(c.Host)
	out.Login = clonePtr(c.Login)
	out.Schema = clonePtr(c.Schema)
	out.Port = clonePtr(c.Port)
	out.Password = clonePtr(c.Password)
	out.Extra = clonePtr(c.Extra)
	return &out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
