package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/taskboard/task-system/internal/core/domain"
	"github.com/taskboard/task-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byEmail     map[string]*domain.User
	createCalls int
	findErr     error
	createErr   error
	seq         int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*domain.User)}
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email domain.Email) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byEmail[email.String()]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID().Equals(id) {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Create assigns its own id to mirror a store that does not keep the caller's.
func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.createCalls++
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, exists := r.byEmail[u.Email().String()]; exists {
		return nil, domain.ErrUserExists
	}
	r.seq++
	id, _ := domain.ParseUserID(fmt.Sprintf("stored-%d", r.seq))
	stored := domain.RestoreUser(id, u.Email(), u.CreatedAt())
	r.byEmail[u.Email().String()] = stored
	return stored, nil
}

type stubTaskRepo struct {
	byID     map[string]*domain.Task
	calls    int
	listErr  error
	lastOpts ports.ListTasksOptions
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{byID: make(map[string]*domain.Task)}
}

func cloneTask(t *domain.Task) *domain.Task {
	c := *t
	return &c
}

func (r *stubTaskRepo) put(t *domain.Task) {
	r.byID[t.ID().String()] = cloneTask(t)
}

func (r *stubTaskRepo) FindByID(_ context.Context, id domain.TaskID) (*domain.Task, error) {
	r.calls++
	t, ok := r.byID[id.String()]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

// FindAllByUser applies the same filter and ordering the Mongo repository does.
func (r *stubTaskRepo) FindAllByUser(_ context.Context, userID domain.UserID, opts ports.ListTasksOptions) ([]*domain.Task, error) {
	r.calls++
	r.lastOpts = opts
	if r.listErr != nil {
		return nil, r.listErr
	}

	var out []*domain.Task
	for _, t := range r.byID {
		if !t.UserID().Equals(userID) {
			continue
		}
		if opts.Status != nil && t.Status() != *opts.Status {
			continue
		}
		out = append(out, cloneTask(t))
	}

	less := func(a, b *domain.Task) int {
		switch opts.OrderBy {
		case ports.OrderByTitle:
			return strings.Compare(a.Title(), b.Title())
		case ports.OrderByUpdatedAt:
			return a.UpdatedAt().Compare(b.UpdatedAt())
		default:
			return a.CreatedAt().Compare(b.CreatedAt())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if opts.Direction == ports.SortAsc {
			return less(out[i], out[j]) < 0
		}
		return less(out[i], out[j]) > 0
	})
	return out, nil
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	r.calls++
	r.put(t)
	return cloneTask(t), nil
}

func (r *stubTaskRepo) Update(_ context.Context, t *domain.Task) (*domain.Task, error) {
	r.calls++
	if _, ok := r.byID[t.ID().String()]; !ok {
		return nil, domain.ErrTaskNotFound
	}
	r.put(t)
	return cloneTask(t), nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id domain.TaskID) error {
	r.calls++
	if _, ok := r.byID[id.String()]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.byID, id.String())
	return nil
}

// ---------------------------------------------------------------------------
// Spy token generator
// ---------------------------------------------------------------------------

type spyTokens struct {
	calls   int
	last    ports.TokenPayload
	failErr error
}

func (s *spyTokens) GenerateToken(p ports.TokenPayload) (string, error) {
	s.calls++
	s.last = p
	if s.failErr != nil {
		return "", s.failErr
	}
	return "token-for-" + p.UserID, nil
}

func (s *spyTokens) VerifyToken(token string) (ports.TokenPayload, error) {
	id, ok := strings.CutPrefix(token, "token-for-")
	if !ok {
		return ports.TokenPayload{}, domain.ErrInvalidToken
	}
	return ports.TokenPayload{UserID: id}, nil
}

var errStoreDown = errors.New("connection refused")
