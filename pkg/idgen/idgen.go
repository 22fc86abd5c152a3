// Package idgen hands out random UUID identifiers.
package idgen

import "github.com/google/uuid"

type UUIDProvider struct{}

func NewUUIDProvider() UUIDProvider {
	return UUIDProvider{}
}

func (UUIDProvider) NewID() string {
	return uuid.NewString()
}
