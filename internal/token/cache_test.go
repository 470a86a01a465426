package token

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/counterparty-client/internal/model"
)

func TestCache_EvictsOldestWhenFull(t *testing.T) {
	c := NewCache(3)
	exp := model.Claims{ExpiresAt: time.Now().Add(time.Hour)}

	for i := 0; i < 4; i++ {
		c.Put(fmt.Sprintf("t%d", i), exp)
	}

	assert.Equal(t, 3, c.Len())
	_, ok := c.Get("t0")
	assert.False(t, ok)
	for _, token := range []string{"t1", "t2", "t3"} {
		_, ok := c.Get(token)
		assert.True(t, ok, token)
	}
}

func TestCache_PutExistingKeepsPosition(t *testing.T) {
	c := NewCache(2)
	exp := model.Claims{ExpiresAt: time.Now().Add(time.Hour)}

	c.Put("a", exp)
	c.Put("b", exp)
	c.Put("a", model.Claims{ExpiresAt: exp.ExpiresAt, Subject: "updated"})
	c.Put("c", exp)

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestCache_DropsExpiredOnGet(t *testing.T) {
	now := time.Now()
	c := NewCache(DefaultCacheSize)
	c.now = func() time.Time { return now }

	c.Put("expired", model.Claims{ExpiresAt: now.Add(-time.Second)})
	c.Put("no-exp", model.Claims{Subject: "x"})

	_, ok := c.Get("expired")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	claims, ok := c.Get("no-exp")
	assert.True(t, ok)
	assert.Equal(t, "x", claims.Subject)
}

func TestCache_RemoveAndClear(t *testing.T) {
	c := NewCache(DefaultCacheSize)
	exp := model.Claims{ExpiresAt: time.Now().Add(time.Hour)}

	c.Put("a", exp)
	c.Put("b", exp)
	c.Remove("a")
	c.Remove("missing")
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())

	for i := 0; i < DefaultCacheSize+5; i++ {
		c.Put(fmt.Sprintf("t%d", i), exp)
	}
	assert.Equal(t, DefaultCacheSize, c.Len())
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := NewCache(DefaultCacheSize)
	exp := model.Claims{ExpiresAt: time.Now().Add(time.Hour)}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token := fmt.Sprintf("t%d", i%15)
			c.Put(token, exp)
			c.Get(token)
			if i%7 == 0 {
				c.Remove(token)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), DefaultCacheSize)
}
