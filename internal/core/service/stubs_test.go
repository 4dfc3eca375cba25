package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/letsgrowesports/blog-api/internal/core/domain"
	"github.com/letsgrowesports/blog-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	byEmail   map[string]*domain.Account
	createErr error
	findErr   error
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{byEmail: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.byEmail[a.Email]; exists {
		return domain.ErrAccountExists
	}
	r.byEmail[a.Email] = cloneAccount(a)
	return nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	a, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.Account, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	out := make(map[string]*domain.Account)
	for _, id := range ids {
		for _, a := range r.byEmail {
			if a.ID == id {
				out[id] = cloneAccount(a)
			}
		}
	}
	return out, nil
}

type stubBlogRepo struct {
	byID    map[string]*domain.Blog
	listErr error
	listed  []ports.BlogFilter
}

func newStubBlogRepo() *stubBlogRepo {
	return &stubBlogRepo{byID: make(map[string]*domain.Blog)}
}

func (r *stubBlogRepo) Create(_ context.Context, b *domain.Blog) error {
	clone := *b
	r.byID[b.ID] = &clone
	return nil
}

func (r *stubBlogRepo) FindByID(_ context.Context, id string) (*domain.Blog, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrBlogNotFound
	}
	clone := *b
	return &clone, nil
}

// List mirrors the Mongo repository: filter, then newest first.
func (r *stubBlogRepo) List(_ context.Context, f ports.BlogFilter) ([]*domain.Blog, error) {
	r.listed = append(r.listed, f)
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*domain.Blog
	for _, b := range r.byID {
		if f.Game != "" && b.Game != f.Game {
			continue
		}
		if f.AuthorID != "" && b.AuthorID != f.AuthorID {
			continue
		}
		clone := *b
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubBlogRepo) Update(_ context.Context, id string, p domain.BlogPatch) (*domain.Blog, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrBlogNotFound
	}
	if p.Game != nil {
		b.Game = *p.Game
	}
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.Image != nil {
		b.Image = *p.Image
	}
	if p.Published != nil {
		b.Published = *p.Published
	}
	clone := *b
	return &clone, nil
}

func (r *stubBlogRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrBlogNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubCommentRepo struct {
	items []*domain.Comment
}

func (r *stubCommentRepo) Create(_ context.Context, c *domain.Comment) error {
	clone := *c
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubCommentRepo) ListByBlogs(_ context.Context, blogIDs []string) ([]*domain.Comment, error) {
	want := make(map[string]bool, len(blogIDs))
	for _, id := range blogIDs {
		want[id] = true
	}
	var out []*domain.Comment
	for _, c := range r.items {
		if want[c.BlogID] {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubCommentRepo) DeleteByBlog(_ context.Context, blogID string) error {
	kept := r.items[:0]
	for _, c := range r.items {
		if c.BlogID != blogID {
			kept = append(kept, c)
		}
	}
	r.items = kept
	return nil
}

// stubCache mirrors the generation semantics of the Redis cache.
type stubCache struct {
	entries     map[string][]byte
	generation  int64
	hits        int
	invalidated int
	// onMiss runs after a lookup misses, before the caller loads and fills.
	onMiss func()
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string][]byte)}
}

func stubCacheKey(gen int64, key string) string {
	return fmt.Sprintf("v%d:%s", gen, key)
}

func (c *stubCache) Get(_ context.Context, key string) (ports.CacheEntry, error) {
	gen := c.generation
	v, ok := c.entries[stubCacheKey(gen, key)]
	if ok {
		c.hits++
		return ports.CacheEntry{Value: v, Hit: true, Generation: gen}, nil
	}
	if c.onMiss != nil {
		c.onMiss()
	}
	return ports.CacheEntry{Generation: gen}, nil
}

func (c *stubCache) Set(_ context.Context, key string, gen int64, value []byte) error {
	c.entries[stubCacheKey(gen, key)] = value
	return nil
}

func (c *stubCache) Invalidate(context.Context) error {
	c.generation++
	c.invalidated++
	return nil
}

// ---------------------------------------------------------------------------
// Credential stubs
// ---------------------------------------------------------------------------

type stubVerifier struct {
	session *domain.Session
	err     error
}

func (v stubVerifier) VerifyToken(string) (*domain.Session, error) {
	return v.session, v.err
}

// goRunner runs each job on its own goroutine, like the worker pool.
type goRunner struct {
	mu    sync.Mutex
	calls int
}

func (r *goRunner) Do(ctx context.Context, fn func()) error {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
