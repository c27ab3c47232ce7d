package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"unicode/utf16"
)

const (
	StrongLength = 64 // sha256 十六进制
	LegacyLength = 8  // 旧版滚动校验和
)

// Hash 总是产生强格式（SHA-256 十六进制）
func Hash(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// Legacy 是早期版本在没有加密原语时使用的 32 位滚动哈希，仅用于校验迁移来的数据
func Legacy(plaintext string) string {
	var h int32
	for _, c := range utf16.Encode([]rune(plaintext)) {
		h = (h << 5) - h + int32(c)
	}

	v := int64(h)
	if v < 0 {
		v = -v
	}

	return fmt.Sprintf("%08x", v)
}

// Verify 依据长度区分格式，无法识别的格式一律返回 false
func Verify(plaintext string, credential string) bool {
	var computed string
	switch len(credential) {
	case StrongLength:
		computed = Hash(plaintext)
	case LegacyLength:
		computed = Legacy(plaintext)
	default:
		return false
	}

	if !isHex(credential) {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(computed), []byte(toLower(credential))) == 1
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'F' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
