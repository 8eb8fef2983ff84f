// Package cache provides a small generic LRU cache with a soft limit.
//
// The text package keeps one font face per pixel size in a Cache and closes
// faces as they are evicted:
//
//	faces := cache.New[int, font.Face](16).OnEvict(func(_ int, f font.Face) {
//	    _ = f.Close()
//	})
//	face, err := faces.GetOrCreate(size, func() (font.Face, error) { ... })
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
