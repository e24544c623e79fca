// Package querycache 以 key 快取讀取結果：同 key 的並行請求只打一次上游，
// 超過 stale time 或被 Invalidate 後才重新抓取。
package querycache

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Key 階層式查詢識別，例如 {"notification-audit", "3"}
type Key []string

func NewKey(parts ...string) Key { return Key(parts) }

func (k Key) String() string { return strings.Join(k, "/") }

// HasPrefix 判斷 k 是否以 prefix 開頭 (逐段比對)
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i := range prefix {
		if k[i] != prefix[i] {
			return false
		}
	}
	return true
}

type entry struct {
	key       Key
	value     any
	fetchedAt time.Time
	version   uint64
	stale     bool
}

type Cache struct {
	mu        sync.Mutex
	entries   map[string]*entry
	group     singleflight.Group
	staleTime time.Duration
	version   uint64
	now       func() time.Time
}

func New(staleTime time.Duration) *Cache {
	return &Cache{
		entries:   make(map[string]*entry),
		staleTime: staleTime,
		now:       time.Now,
	}
}

// Options 單次查詢的覆寫設定
type Options struct {
	StaleTime time.Duration // 0 代表使用 Cache 預設
}

// Fetch 取得快取值；過期或不存在時呼叫 fn，同 key 的並行呼叫共用同一次 fn
func Fetch[T any](ctx context.Context, c *Cache, key Key, fn func(ctx context.Context) (T, error)) (T, error) {
	return FetchWith(ctx, c, key, Options{}, fn)
}

func FetchWith[T any](ctx context.Context, c *Cache, key Key, opts Options, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	staleTime := opts.StaleTime
	if staleTime == 0 {
		staleTime = c.staleTime
	}

	if v, ok := c.lookup(key, staleTime); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	// singleflight id 含版本號：Invalidate 之後的讀取不會加入失效前的請求
	c.mu.Lock()
	started := c.version
	c.mu.Unlock()
	id := key.String() + "#" + strconv.FormatUint(started, 10)

	ch := c.group.DoChan(id, func() (any, error) {
		// 不綁定單一呼叫者的 cancel，避免共用結果被其中一方取消
		v, err := fn(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.store(key, v, started)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		typed, ok := res.Val.(T)
		if !ok {
			return zero, nil
		}
		return typed, nil
	}
}

func (c *Cache) lookup(key Key, staleTime time.Duration) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.String()]
	if !ok || e.stale {
		return nil, false
	}
	if staleTime > 0 && c.now().Sub(e.fetchedAt) > staleTime {
		return nil, false
	}
	return e.value, true
}

// store 寫入結果；抓取期間有 Invalidate 發生時，結果標記為過期
// 較舊版本的結果不會覆蓋較新版本已寫入的值
func (c *Cache) store(key Key, v any, started uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := key.String()
	if cur, ok := c.entries[id]; ok && cur.version > started {
		return
	}
	c.entries[id] = &entry{
		key:       key,
		value:     v,
		fetchedAt: c.now(),
		version:   started,
		stale:     c.version != started,
	}
}

// Invalidate 移除所有以 prefix 開頭的 key
func (c *Cache) Invalidate(prefixes ...Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
	removed := 0
	for id, e := range c.entries {
		for _, p := range prefixes {
			if e.key.HasPrefix(p) {
				delete(c.entries, id)
				removed++
				break
			}
		}
	}
	logrus.Debugf("[Cache] invalidate %v (移除 %d 筆)", prefixes, removed)
}

// Peek 回傳目前快取值 (不觸發抓取)
func (c *Cache) Peek(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.String()]
	if !ok {
		return nil, false
	}
	return e.value, true
}
