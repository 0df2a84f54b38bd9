package jwt

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

func Decode(token string, secret string) (*Payload, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid token length")
	}

	// payload
	payloadBase64 := parts[1]
	payloadJson, err := base64.StdEncoding.DecodeString(payloadBase64)
	if err != nil {
		return nil, fmt.Errorf("can't decode payload: %v", err)
	}
	var payload Payload
	err = json.Unmarshal(payloadJson, &payload)
	if err != nil {
		return nil, fmt.Errorf("can't unmarshal payload: %v", err)
	}

	// signature
	signatureBase64 := parts[2]
	signature, err := base64.StdEncoding.DecodeString(signatureBase64)
	if err != nil {
		return nil, fmt.Errorf("can't decode signature: %v", err)
	}
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(payloadBase64))

	// validate signature
	if !hmac.Equal(h.Sum(nil), signature) {
		return nil, fmt.Errorf("invalid signature")
	}

	if payload.ExpiresAt != 0 && time.Now().UTC().Unix() > payload.ExpiresAt {
		return nil, fmt.Errorf("token expired")
	}

	return &payload, nil
}
