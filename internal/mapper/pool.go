package mapper

import (
	"sync"

	"github.com/Borislavv/go-jumpback-hash/prng"
)

// Pool is a BucketMapper safe for concurrent use. Each call borrows a mapper together with
// its private generator, so no generator state is shared between goroutines.
type Pool struct {
	alg  Algorithm
	pool sync.Pool
}

// NewPool validates alg and gen eagerly and returns a pool building mappers on demand.
func NewPool(alg Algorithm, gen prng.Name) (*Pool, error) {
	build := func() (BucketMapper, error) {
		g, err := prng.New(gen)
		if err != nil {
			return nil, err
		}
		return New(alg, g)
	}
	first, err := build()
	if err != nil {
		return nil, err
	}

	p := &Pool{alg: alg}
	p.pool.New = func() any {
		// build cannot fail here: the same arguments succeeded above.
		m, _ := build()
		return m
	}
	p.pool.Put(first)
	return p, nil
}

// Algorithm returns the pooled algorithm.
func (p *Pool) Algorithm() Algorithm { return p.alg }

func (p *Pool) Bucket(key uint64, n int32) int32 {
	m := p.pool.Get().(BucketMapper)
	b := m.Bucket(key, n)
	p.pool.Put(m)
	return b
}
