package sipsock

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"braces.dev/errtrace"

	"github.com/telvora/ucc/header"
	"github.com/telvora/ucc/internal/errorutil"
)

// digestResponse computes the RFC 2617 digest response without qop:
// H(H(user:realm:pass):nonce:H(method:uri)). An empty algorithm selects MD5.
func digestResponse(algorithm, username, realm, password, method, digestURI, nonce string) (string, error) {
	var h func(string) string
	switch strings.ToUpper(algorithm) {
	case "", header.AlgorithmMD5:
		h = md5hex
	case "SHA-256", "SHA256":
		h = sha256hex
	default:
		return "", errtrace.Wrap(errorutil.Errorf("unsupported digest algorithm: %q", algorithm))
	}

	ha1 := h(username + ":" + realm + ":" + password)
	ha2 := h(method + ":" + digestURI)
	return h(ha1 + ":" + nonce + ":" + ha2), nil
}

func md5hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func sha256hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
