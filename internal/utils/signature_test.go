package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignAndVerifyHMAC(t *testing.T) {
	body := []byte(`{"order":"42"}`)
	signature := SignHMAC(body, "secret")

	assert.True(t, VerifyHMAC(body, signature, "secret"))

	// 篡改请求体或密钥不同均校验失败
	assert.False(t, VerifyHMAC([]byte(`{"order":"43"}`), signature, "secret"))
	assert.False(t, VerifyHMAC(body, signature, "other-secret"))
	assert.False(t, VerifyHMAC(body, "", "secret"))
	assert.False(t, VerifyHMAC(body, "deadbeef", "secret"))
}

func TestSignHMACDeterministic(t *testing.T) {
	body := []byte("payload")
	assert.Equal(t, SignHMAC(body, "k"), SignHMAC(body, "k"))
	assert.NotEqual(t, SignHMAC(body, "k1"), SignHMAC(body, "k2"))
}
