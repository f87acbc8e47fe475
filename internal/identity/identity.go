// Package identity tracks the signed-in user and manages local accounts.
package identity

import (
	"sync"
)

// User is an authenticated person whose ID owns tracked sessions.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Context holds the current identity and notifies subscribers whenever it
// changes. It is safe for concurrent use.
type Context struct {
	user   *User
	subs   map[int]func(*User)
	mu     sync.RWMutex
	nextID int
}

// NewContext returns a signed-out identity context.
func NewContext() *Context {
	return &Context{
		subs: make(map[int]func(*User)),
	}
}

// Current returns the signed-in user.
func (c *Context) Current() (User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.user == nil {
		return User{}, false
	}

	return *c.user, true
}

// OwnerID returns the ID of the signed-in user.
func (c *Context) OwnerID() (string, bool) {
	u, ok := c.Current()

	return u.ID, ok
}

// Subscribe registers fn to be called with the new user after every sign-in
// and with nil after every sign-out. The returned function removes the
// subscription.
func (c *Context) Subscribe(fn func(*User)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.subs[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		delete(c.subs, id)
	}
}

// SignIn makes u the current user.
func (c *Context) SignIn(u User) {
	c.set(&u)
}

// SignOut clears the current user.
func (c *Context) SignOut() {
	c.set(nil)
}

func (c *Context) set(u *User) {
	c.mu.Lock()
	c.user = u

	subs := make([]func(*User), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		if u == nil {
			fn(nil)
			continue
		}

		cp := *u
		fn(&cp)
	}
}
