package report

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/queue"
	"github.com/jonathan/jobboard/internal/storage"
)

// fakeDirectory serves users from a map.
type fakeDirectory struct {
	users   map[uuid.UUID]*db.User
	listErr error
}

func (d *fakeDirectory) GetUser(_ context.Context, userID uuid.UUID) (*db.User, error) {
	return d.users[userID], nil
}

func (d *fakeDirectory) ListRecruiters(_ context.Context) ([]db.User, error) {
	if d.listErr != nil {
		return nil, d.listErr
	}
	var out []db.User
	for _, u := range d.users {
		if u.IsRecruiter() {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

// fakeAggregator returns canned records and captures the requested window.
type fakeAggregator struct {
	records []db.ApplicationRecord
	err     error

	gotRecruiter uuid.UUID
	gotFrom      time.Time
	gotTo        time.Time
	calls        int
}

func (a *fakeAggregator) ApplicationsForRecruiter(_ context.Context, recruiterID uuid.UUID, from, to time.Time) ([]db.ApplicationRecord, error) {
	a.calls++
	a.gotRecruiter = recruiterID
	a.gotFrom = from
	a.gotTo = to
	if a.err != nil {
		return nil, a.err
	}
	return a.records, nil
}

// fakeEnqueuer records enqueued tasks and can fail after a set number.
type fakeEnqueuer struct {
	tasks     []queue.Task
	failAfter int // fail once len(tasks) reaches this; 0 means never
	err       error
}

func (q *fakeEnqueuer) Enqueue(_ context.Context, task queue.Task) error {
	if q.failAfter > 0 && len(q.tasks) >= q.failAfter {
		return q.err
	}
	q.tasks = append(q.tasks, task)
	return nil
}

// memStore is an in-memory storage.Store with controllable modification times.
type memStore struct {
	mu      sync.Mutex
	objects map[string]memObject
	clock   time.Time

	listErr error
	putErr  error
}

type memObject struct {
	content []byte
	modTime time.Time
}

func newMemStore() *memStore {
	return &memStore{
		objects: make(map[string]memObject),
		clock:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// setObject seeds a blob with an explicit last-modified time.
func (s *memStore) setObject(path string, content string, modTime time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[path] = memObject{content: []byte(content), modTime: modTime}
}

func (s *memStore) Put(_ context.Context, path string, r io.Reader) error {
	if s.putErr != nil {
		return s.putErr
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = s.clock.Add(time.Second)
	s.objects[path] = memObject{content: content, modTime: s.clock}
	return nil
}

func (s *memStore) Exists(_ context.Context, path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[path]
	return ok, nil
}

func (s *memStore) List(_ context.Context, prefix string) ([]storage.ObjectInfo, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var infos []storage.ObjectInfo
	for path, obj := range s.objects {
		if strings.HasPrefix(path, prefix) {
			infos = append(infos, storage.ObjectInfo{Path: path, LastModified: obj.modTime})
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Path < infos[j].Path })
	return infos, nil
}

func (s *memStore) Open(_ context.Context, path string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[path]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(obj.content)), nil
}

func (s *memStore) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, path)
	return nil
}

// recruiterUser builds a directory entry with the given role.
func recruiterUser(role string) *db.User {
	id := uuid.New()
	return &db.User{
		ID:    id,
		Name:  "Test " + role,
		Email: id.String()[:8] + "@example.com",
		Role:  role,
	}
}
