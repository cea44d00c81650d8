package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// SignHMAC 对原始请求体计算 HMAC-SHA256 十六进制签名
func SignHMAC(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyHMAC 校验签名，使用常量时间比较防止时序侧信道
func VerifyHMAC(body []byte, signature string, secret string) bool {
	expected := SignHMAC(body, secret)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
