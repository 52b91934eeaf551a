package domain

import "errors"

var ErrSessionExpired = errors.New("session expired")
