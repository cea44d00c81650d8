package utils

import (
	"github.com/bytedance/sonic"
)

// ToJSON 将对象转换为JSON字符串
func ToJSON(v any) (string, error) {
	bytes, err := sonic.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Unmarshal 将JSON字节数组解析到指定对象
func Unmarshal(data []byte, v any) error {
	return sonic.Unmarshal(data, v)
}

// UnmarshalString 将JSON字符串解析到指定对象
func UnmarshalString(s string, v any) error {
	return sonic.UnmarshalString(s, v)
}

// ValidString 验证字符串是否为有效的JSON
func ValidString(s string) bool {
	return sonic.ValidString(s)
}
