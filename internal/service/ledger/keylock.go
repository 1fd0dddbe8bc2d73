package ledger

import (
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dudhwala/backend/internal/domain/models"
)

// Key identifies one ledger row.
type Key struct {
	StoreID  primitive.ObjectID
	Date     time.Time
	MilkType models.MilkType
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s", k.StoreID.Hex(), k.Date.Format("2006-01-02"), k.MilkType)
}

// keyLock serializes writers per ledger key. Every recorder operation takes
// the lock for its key before the first read and holds it through the final
// reconcile write, so read-modify-write sequences on the same row never
// interleave. In-process only; the deployment model is a single writer per key.
type keyLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyLock() *keyLock {
	return &keyLock{locks: make(map[string]*sync.Mutex)}
}

func (l *keyLock) lockFor(key Key) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	k := key.String()
	if _, ok := l.locks[k]; !ok {
		l.locks[k] = &sync.Mutex{}
	}
	return l.locks[k]
}

// Lock acquires the key's mutex and returns the unlock function.
func (l *keyLock) Lock(key Key) func() {
	m := l.lockFor(key)
	m.Lock()
	return m.Unlock
}

// LockPair acquires both keys' mutexes in a stable order so that two
// operations touching the same pair cannot deadlock. Equal keys lock once.
func (l *keyLock) LockPair(a, b Key) func() {
	if a.String() == b.String() {
		return l.Lock(a)
	}
	if a.String() > b.String() {
		a, b = b, a
	}

	first := l.lockFor(a)
	second := l.lockFor(b)
	first.Lock()
	second.Lock()
	return func() {
		second.Unlock()
		first.Unlock()
	}
}
