// Package memstore is an in-memory stand-in for the MySQL repositories.  It
// keeps soft-deleted rows so tests can assert that nothing is removed.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/quejasboyaca/complaint-service/internal/model"
	"github.com/quejasboyaca/complaint-service/internal/repository"
)

// Store holds every table.  Use the typed views returned by Complaints,
// Entities, Comments and Users.
type Store struct {
	mu  sync.Mutex
	now func() time.Time

	entities   []model.PublicEntity
	complaints []model.Complaint
	comments   []commentRow
	users      []model.User
}

type commentRow struct {
	model.Comment
	Active bool
}

// New returns an empty store whose clock advances one second per write, so
// newest-first ordering is deterministic.
func New() *Store {
	base := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	return &Store{now: func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}}
}

// AddEntity seeds a public entity.
func (s *Store) AddEntity(id uint64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entities = append(s.entities, model.PublicEntity{ID: id, Name: name})
}

// AddUser seeds a user account.
func (s *Store) AddUser(u model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = uint64(len(s.users) + 1)
	}
	s.users = append(s.users, u)
}

// Complaint returns the raw row, soft-deleted or not.
func (s *Store) Complaint(id uint64) (model.Complaint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.complaints {
		if c.ID == id {
			return c, true
		}
	}
	return model.Complaint{}, false
}

// CommentCount counts comment rows of a complaint, inactive ones included.
func (s *Store) CommentCount(complaintID uint64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.comments {
		if c.ComplaintID == complaintID {
			n++
		}
	}
	return n
}

// User returns the account with username.
func (s *Store) User(username string) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, true
		}
	}
	return model.User{}, false
}

func (s *Store) entityName(id uint64) string {
	for _, e := range s.entities {
		if e.ID == id {
			return e.Name
		}
	}
	return ""
}

func (s *Store) view(c model.Complaint) model.ComplaintView {
	v := model.ComplaintView{
		ID:           c.ID,
		Description:  c.Description,
		Status:       c.Status,
		CreatedAt:    c.CreatedAt,
		PublicEntity: s.entityName(c.PublicEntityID),
	}
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		v.UpdatedAt = &t
	}
	return v
}

func (s *Store) Complaints() *Complaints { return &Complaints{s} }
func (s *Store) Entities() *Entities     { return &Entities{s} }
func (s *Store) Comments() *Comments     { return &Comments{s} }
func (s *Store) Users() *Users           { return &Users{s} }

// Complaints mirrors repository.ComplaintRepo.
type Complaints struct{ s *Store }

func (r *Complaints) Create(_ context.Context, nc model.NewComplaint) (uint64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id := uint64(len(r.s.complaints) + 1)
	r.s.complaints = append(r.s.complaints, model.Complaint{
		ID:             id,
		PublicEntityID: nc.PublicEntityID,
		Description:    nc.Description,
		Active:         true,
		Status:         model.StatusOpen,
		CreatedAt:      r.s.now(),
	})
	return id, nil
}

func (r *Complaints) FindAllActive(context.Context) ([]model.ComplaintView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.ComplaintView, 0)
	for _, c := range r.s.complaints {
		if c.Active {
			v := r.s.view(c)
			v.UpdatedAt = nil
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *Complaints) FindByID(_ context.Context, id uint64) (*model.ComplaintView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.complaints {
		if c.ID == id && c.Active {
			v := r.s.view(c)
			return &v, nil
		}
	}
	return nil, repository.ErrComplaintNotFound
}

func (r *Complaints) update(id uint64, fn func(*model.Complaint)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.complaints {
		if r.s.complaints[i].ID == id {
			fn(&r.s.complaints[i])
			return nil
		}
	}
	return repository.ErrComplaintNotFound
}

func (r *Complaints) SoftDelete(_ context.Context, id uint64) error {
	return r.update(id, func(c *model.Complaint) { c.Active = false })
}

func (r *Complaints) UpdateStatus(_ context.Context, id uint64, status model.ComplaintStatus) error {
	return r.update(id, func(c *model.Complaint) {
		c.Status = status
		c.UpdatedAt = r.s.now()
	})
}

func (r *Complaints) StatsByEntity(context.Context) ([]model.EntityStat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := map[uint64]int64{}
	for _, c := range r.s.complaints {
		if c.Active {
			counts[c.PublicEntityID]++
		}
	}
	out := make([]model.EntityStat, 0, len(counts))
	for _, e := range r.s.entities {
		if n := counts[e.ID]; n > 0 {
			out = append(out, model.EntityStat{PublicEntity: e.Name, TotalComplaints: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalComplaints > out[j].TotalComplaints })
	return out, nil
}

func (r *Complaints) StatsByStatus(context.Context) ([]model.StatusStat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := map[model.ComplaintStatus]int64{}
	for _, c := range r.s.complaints {
		if c.Active {
			counts[c.Status]++
		}
	}
	out := make([]model.StatusStat, 0, len(counts))
	for _, st := range model.ComplaintStatuses {
		if n := counts[st]; n > 0 {
			out = append(out, model.StatusStat{Status: st, Total: n})
		}
	}
	return out, nil
}

// Entities mirrors repository.EntityRepo.
type Entities struct{ s *Store }

func (r *Entities) FindAll(context.Context) ([]model.PublicEntity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := append([]model.PublicEntity(nil), r.s.entities...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Entities) FindByID(_ context.Context, id uint64) (*model.PublicEntity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.entities {
		if e.ID == id {
			e := e
			return &e, nil
		}
	}
	return nil, repository.ErrEntityNotFound
}

func (r *Entities) Exists(ctx context.Context, id uint64) (bool, error) {
	_, err := r.FindByID(ctx, id)
	return err == nil, nil
}

// Comments mirrors repository.CommentRepo.
type Comments struct{ s *Store }

func (r *Comments) FindByComplaintID(_ context.Context, complaintID uint64) ([]model.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.Comment, 0)
	for _, c := range r.s.comments {
		if c.ComplaintID == complaintID && c.Active {
			out = append(out, c.Comment)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *Comments) Create(_ context.Context, complaintID uint64, text string) (uint64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id := uint64(len(r.s.comments) + 1)
	r.s.comments = append(r.s.comments, commentRow{
		Comment: model.Comment{ID: id, ComplaintID: complaintID, Text: text, CreatedAt: r.s.now()},
		Active:  true,
	})
	return id, nil
}

// Users mirrors repository.UserRepo.
type Users struct{ s *Store }

func (r *Users) GetByUsername(_ context.Context, username string) (*model.User, error) {
	username = strings.TrimSpace(username)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *Users) SetSessionStatus(_ context.Context, id uint64, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.users {
		if r.s.users[i].ID == id {
			r.s.users[i].SessionStatus = status
			r.s.users[i].UpdatedAt = r.s.now()
			return nil
		}
	}
	return repository.ErrUserNotFound
}
