package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

type DataExtractor[T any] func(*resty.Response) (T, error)

var ErrParsingError = errors.New("parsing error")

func ParseResponse[T any](r *resty.Response, extractor DataExtractor[T], lastErr error) (T, error) {
	if lastErr != nil {
		var result T
		return result, lastErr
	}

	return extractor(r)
}

func ParseResponseOptional[T any](r *resty.Response, extractor DataExtractor[T], lastErr error) *T {
	if lastErr != nil {
		return nil
	}

	result, err := extractor(r)
	if err != nil {
		return nil
	}

	return &result
}

func JSONBody[T any]() DataExtractor[T] {
	return func(r *resty.Response) (T, error) {
		var result T
		err := json.Unmarshal(r.Body(), &result)
		if err != nil {
			return result, fmt.Errorf("%w: decode json body: %w", ErrParsingError, err)
		}

		return result, nil
	}
}

func TextBody() DataExtractor[string] {
	return func(r *resty.Response) (string, error) {
		return strings.TrimSpace(string(r.Body())), nil
	}
}

func IsSuccess(r *resty.Response) bool {
	return r.StatusCode() >= http.StatusOK && r.StatusCode() < http.StatusMultipleChoices
}
