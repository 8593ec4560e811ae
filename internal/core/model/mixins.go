package model

import (
	"time"
)

type WithID[T ~uint] interface {
	ID() T
}

type WithLifecycle interface {
	CreatedAt() time.Time
	UpdatedAt() time.Time
}
