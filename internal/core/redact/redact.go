// Package redact 对外输出前的敏感信息脱敏
package redact

import (
	"bytes"
	"encoding/json"
	"strings"
)

// MaskToken 敏感值替换后的固定占位符
const MaskToken = "***"

// SensitiveTerms key 名（忽略大小写）包含任一词即视为敏感
var SensitiveTerms = []string{
	"access_token",
	"access_key",
	"api_key",
	"apikey",
	"authorization",
	"passphrase",
	"passwd",
	"password",
	"private_key",
	"secret",
	"token",
	"keyfile_dict",
	"service_account",
}

// IsSensitiveKey 判断 key 是否敏感
func IsSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, term := range SensitiveTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// Extra 脱敏 extra 字段
//
// 仅当 value 能解析为 JSON 对象时才处理；其余情况原样返回，不报错也不丢弃数据。
func Extra(value *string) *string {
	if value == nil {
		return nil
	}
	out, ok := Mapping(*value)
	if !ok {
		return value
	}
	return &out
}

// Mapping 解析并脱敏 JSON 对象字符串，ok=false 表示不是 JSON 对象
func Mapping(raw string) (string, bool) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var m map[string]interface{}
	if err := dec.Decode(&m); err != nil || m == nil {
		return "", false
	}
	// 对象之后仍有内容（如 `{} {}`）不视为合法对象
	if dec.More() {
		return "", false
	}

	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(redactMap(m)); err != nil {
		return "", false
	}
	return strings.TrimSuffix(buf.String(), "\n"), true
}

func redactMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		if IsSensitiveKey(k) {
			out[k] = MaskToken
			continue
		}
		out[k] = redactValue(v)
	}
	return out
}

func redactValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return redactMap(t)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, item := range t {
			out[i] = redactValue(item)
		}
		return out
	default:
		return v
	}
}
