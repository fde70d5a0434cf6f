package cache

import "time"

// Cache - абстракция кеша для результатов оценки изображений
type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, ttl time.Duration)
	Delete(key string)
}
