package constants

// 审计事件
const (
	AuditEventConnectionCreate = "api.connection.create"
	AuditEventConnectionEdit   = "api.connection.edit"
	AuditEventConnectionDelete = "api.connection.delete"
)

// 连接测试开关 core.test_connection
const (
	TestConnectionEnabled  = "Enabled"
	TestConnectionDisabled = "Disabled"
	TestConnectionHidden   = "Hidden"
)

// TestConnectionDisabledMessage 功能未开启时返回的固定提示
const TestConnectionDisabledMessage = "Testing connections is disabled in the server configuration. " +
	"Contact your deployment admin to enable it."

// TestConnectionSuccessMessage 探测成功时的默认消息
const TestConnectionSuccessMessage = "Connection successfully tested"

// 数据库驱动
const (
	DBDriverMySQL  = "mysql"
	DBDriverMemory = "memory"
)

// JWT 相关
const (
	JWTTypeAccess = "access"
)

// gin context key
const (
	ContextKeyUser     = "user"
	ContextKeyUsername = "username"
	ContextKeyRoles    = "roles"
)

// HTTP Header
const (
	HeaderAuthorization = "Authorization"
	HeaderBearerPrefix  = "Bearer "
)

// QueryUpdateMask PATCH 时指定更新字段的 query 参数
const QueryUpdateMask = "update_mask"
