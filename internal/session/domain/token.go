package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenDecode = errors.New("access token decode failed")

// AccessToken is a compact JWT issued by the auth origin.
type AccessToken string

const (
	tokenSegmentCount = 3
	claimExpiresAt    = "exp"
)

var tokenParser = jwt.NewParser(jwt.WithPaddingAllowed())

// ExpiryMillis returns the payload "exp" claim multiplied by 1000.
// Only the payload segment is read, the header and the signature are ignored.
func ExpiryMillis(token AccessToken) (int64, error) {
	segments := strings.Split(string(token), ".")
	if len(segments) != tokenSegmentCount {
		return 0, fmt.Errorf("%w: expected %d segments, got %d", ErrTokenDecode, tokenSegmentCount, len(segments))
	}

	payload, err := tokenParser.DecodeSegment(segments[1])
	if err != nil {
		return 0, fmt.Errorf("%w: decode payload: %w", ErrTokenDecode, err)
	}

	claims, err := decodeClaims(payload)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTokenDecode, err)
	}

	rawExp, ok := claims[claimExpiresAt]
	if !ok {
		return 0, fmt.Errorf("%w: exp claim is missing", ErrTokenDecode)
	}
	exp, ok := rawExp.(json.Number)
	if !ok {
		return 0, fmt.Errorf("%w: exp claim is not a number", ErrTokenDecode)
	}

	millis, err := numberToMillis(exp)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTokenDecode, err)
	}

	return millis, nil
}

func ExpiresAt(token AccessToken) (time.Time, error) {
	millis, err := ExpiryMillis(token)
	if err != nil {
		return time.Time{}, err
	}

	return time.UnixMilli(millis), nil
}

func decodeClaims(payload []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()

	var claims map[string]any
	err := decoder.Decode(&claims)
	if err != nil {
		return nil, fmt.Errorf("decode payload json: %w", err)
	}
	if claims == nil {
		return nil, errors.New("payload is not a json object")
	}
	if _, err = decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("payload has trailing data")
	}

	return claims, nil
}

func numberToMillis(exp json.Number) (int64, error) {
	if seconds, err := exp.Int64(); err == nil {
		if seconds > math.MaxInt64/1000 || seconds < math.MinInt64/1000 {
			return 0, fmt.Errorf("exp claim %s is out of range", exp)
		}
		return seconds * 1000, nil
	}

	seconds, err := exp.Float64()
	if err != nil {
		return 0, fmt.Errorf("exp claim %s is out of range", exp)
	}

	millis := math.Round(seconds * 1000)
	if millis >= math.MaxInt64 || millis <= math.MinInt64 {
		return 0, fmt.Errorf("exp claim %s is out of range", exp)
	}

	return int64(millis), nil
}
