package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidToken = errors.New("invalid auth token")

const defaultTTL = 12 * time.Hour

var tokenEncoding = base64.RawURLEncoding

// HMACStrategy signs "operatorID:expiry" with HMAC-SHA256. Tokens are URL and cookie safe.
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &HMACStrategy{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// IssueToken returns a token for operatorID valid for the configured TTL.
func (s *HMACStrategy) IssueToken(operatorID int64) (string, error) {
	expires := s.now().Add(s.ttl).Unix()
	payload := strconv.FormatInt(operatorID, 10) + ":" + strconv.FormatInt(expires, 10)
	return tokenEncoding.EncodeToString([]byte(payload)) + "." + s.sign(payload), nil
}

// ParseToken verifies signature and expiry and returns the operator id.
func (s *HMACStrategy) ParseToken(token string) (int64, error) {
	encoded, sig, ok := strings.Cut(token, ".")
	if !ok {
		return 0, ErrInvalidToken
	}
	raw, err := tokenEncoding.DecodeString(encoded)
	if err != nil {
		return 0, ErrInvalidToken
	}
	payload := string(raw)
	if !hmac.Equal([]byte(s.sign(payload)), []byte(sig)) {
		return 0, ErrInvalidToken
	}

	idRaw, expiresRaw, ok := strings.Cut(payload, ":")
	if !ok {
		return 0, ErrInvalidToken
	}
	operatorID, err := strconv.ParseInt(idRaw, 10, 64)
	if err != nil || operatorID <= 0 {
		return 0, ErrInvalidToken
	}
	expires, err := strconv.ParseInt(expiresRaw, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	if !s.now().Before(time.Unix(expires, 0)) {
		return 0, ErrInvalidToken
	}

	return operatorID, nil
}

func (s *HMACStrategy) Name() string {
	return "hmac"
}

func (s *HMACStrategy) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return tokenEncoding.EncodeToString(mac.Sum(nil))
}
