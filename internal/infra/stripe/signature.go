package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

// SignatureTolerance bounds the replay window: signed payloads older or
// newer than this are rejected even when the MAC is valid.
const SignatureTolerance = 300 * time.Second

var (
	ErrSignatureParse    = errors.New("signature header malformed")
	ErrSignatureStale    = errors.New("signature timestamp outside tolerance")
	ErrSignatureMismatch = errors.New("signature mismatch")
)

// VerifySignature validates that payload was signed with secret and is
// fresh relative to now. The header carries comma-separated key=value pairs
// with a unix timestamp under "t" and one or more hex MACs under "v1".
// Returns the decoded timestamp on success. Pure check; callers must run it
// before interpreting the payload as JSON.
func VerifySignature(payload []byte, header, secret string, now time.Time) (time.Time, error) {
	ts, macs, err := parseSignatureHeader(header)
	if err != nil {
		return time.Time{}, err
	}

	if d := now.Sub(ts); d > SignatureTolerance || d < -SignatureTolerance {
		return time.Time{}, ErrSignatureStale
	}

	expected := computeSignature(ts, payload, secret)
	for _, mac := range macs {
		// hmac.Equal is constant-time; the length guard keeps differently
		// sized candidates from being compared at all.
		if len(mac) == len(expected) && hmac.Equal(mac, expected) {
			return ts, nil
		}
	}
	return time.Time{}, ErrSignatureMismatch
}

func parseSignatureHeader(header string) (time.Time, [][]byte, error) {
	var ts time.Time
	var macs [][]byte

	for _, pair := range strings.Split(header, ",") {
		k, v, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found {
			continue
		}
		switch k {
		case "t":
			unix, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return time.Time{}, nil, ErrSignatureParse
			}
			ts = time.Unix(unix, 0)
		case "v1":
			mac, err := hex.DecodeString(v)
			if err != nil {
				// A corrupt candidate is skipped, not fatal: another v1
				// entry may still verify.
				continue
			}
			macs = append(macs, mac)
		}
	}

	if ts.IsZero() || len(macs) == 0 {
		return time.Time{}, nil, ErrSignatureParse
	}
	return ts, macs, nil
}

func computeSignature(ts time.Time, payload []byte, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(ts.Unix(), 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return mac.Sum(nil)
}
