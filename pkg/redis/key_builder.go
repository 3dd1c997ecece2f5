package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" || environment == "test" {
		prefix = "staging"
	}

	return &KeyBuilder{prefix: prefix}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// KeyBlogByID builds the cache key for a single blog document
func (kb *KeyBuilder) KeyBlogByID(blogID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyBlogByID, blogID))
}

// KeyThrottle builds the rate-limit counter key for a route/client pair
func (kb *KeyBuilder) KeyThrottle(route, clientIP string) string {
	return kb.BuildKey(fmt.Sprintf(KeyThrottle, route, clientIP))
}
