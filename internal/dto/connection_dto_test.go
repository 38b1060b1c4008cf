package dto

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conn-hub/pkg/responses"
)

func TestDecodeConnectionPayload(t *testing.T) {
	p, err := DecodeConnectionPayload([]byte(`{"connection_id": "c1", "conn_type": "mysql", "port": 3306, "extra": null, "password": "pw"}`))
	require.NoError(t, err)
	assert.Equal(t, "c1", *p.ConnectionID)
	assert.Equal(t, 3306, *p.Port)
	assert.Nil(t, p.Extra)
	assert.Nil(t, p.Host)

	conn := p.ToModel()
	assert.Equal(t, "c1", conn.ConnID)
	assert.Equal(t, "mysql", conn.ConnType)
	assert.Equal(t, "pw", conn.Password.Plain())

	// 转换结果与请求体不共享指针
	*conn.Port = 1
	assert.Equal(t, 3306, *p.Port)
}

func TestDecodeConnectionPayload_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		detail string
	}{
		{"unknown keys sorted", `{"zzz": 1, "extras": "{}"}`, "field 'extras' is unknown; field 'zzz' is unknown"},
		{"type error", `{"port": "80"}`, "field 'port' should be int"},
		{"negative port", `{"port": -1}`, "field 'port' must be greater than or equal to 0"},
		{"array", `[1]`, "request body must be a JSON object"},
		{"null", `null`, "request body must be a JSON object"},
		{"syntax", `{"a"`, "invalid JSON format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeConnectionPayload([]byte(tt.body))
			var appErr *responses.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, 400, appErr.Status)
			assert.Equal(t, tt.detail, appErr.Detail)
		})
	}
}

func TestValidateCreate(t *testing.T) {
	p, err := DecodeConnectionPayload([]byte(`{"conn_type": "mysql"}`))
	require.NoError(t, err)
	err = p.ValidateCreate()
	var appErr *responses.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "field 'connection_id' is required", appErr.Detail)

	p, err = DecodeConnectionPayload([]byte(`{"connection_id": "c1", "conn_type": "mysql"}`))
	require.NoError(t, err)
	assert.NoError(t, p.ValidateCreate())
}

func TestListConnectionsParams_ToQuery(t *testing.T) {
	q, err := (&ListConnectionsParams{}).ToQuery()
	require.NoError(t, err)
	assert.Nil(t, q.Limit)
	assert.Equal(t, 0, q.Offset)

	q, err = (&ListConnectionsParams{Limit: "5", Offset: "2", OrderBy: "-port"}).ToQuery()
	require.NoError(t, err)
	assert.Equal(t, 5, *q.Limit)
	assert.Equal(t, 2, q.Offset)
	assert.Equal(t, "-port", q.OrderBy)

	// 溢出取边界值，不报错
	q, err = (&ListConnectionsParams{Limit: "99999999999999999999", Offset: "-99999999999999999999"}).ToQuery()
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, *q.Limit)
	assert.Equal(t, math.MinInt, q.Offset)

	_, err = (&ListConnectionsParams{Limit: "abc"}).ToQuery()
	var appErr *responses.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "field 'limit' should be int", appErr.Detail)
}
