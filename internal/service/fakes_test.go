package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"quillhub/internal/common"
	"quillhub/internal/models"
	"quillhub/internal/repository"
)

type fakeStore struct {
	mu sync.Mutex

	users        map[int64]*models.User
	sessions     map[string]*models.Session
	members      map[[2]int64]bool
	competitions map[int64]*models.Competition
	deliveries   map[int64]*models.Delivery
	engagements  map[string]map[[2]int64]bool
	posts        map[int64]*models.Post
	nextID       int64

	updates int
	deletes int
	failErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:        map[int64]*models.User{},
		sessions:     map[string]*models.Session{},
		members:      map[[2]int64]bool{},
		competitions: map[int64]*models.Competition{},
		deliveries:   map[int64]*models.Delivery{},
		engagements:  map[string]map[[2]int64]bool{},
		posts:        map[int64]*models.Post{},
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

// users

type fakeUsers struct{ *fakeStore }

func (f fakeUsers) CreateUser(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return common.ErrConflict
		}
	}
	u.UserID = f.id()
	u.CreatedAt = time.Now()
	cp := *u
	f.users[u.UserID] = &cp
	return nil
}

func (f fakeUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f fakeUsers) GetMemberships(_ context.Context, userID int64) ([]models.CompanyMembership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.CompanyMembership{}
	for k := range f.members {
		if k[1] == userID {
			out = append(out, models.CompanyMembership{CompanyID: k[0], UserID: userID})
		}
	}
	return out, nil
}

// sessions

type fakeSessions struct{ *fakeStore }

func (f fakeSessions) Create(_ context.Context, s *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return f.failErr
	}
	cp := *s
	f.sessions[s.ID] = &cp
	return nil
}

func (f fakeSessions) FindWithUser(_ context.Context, id string) (*models.Session, *models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, nil, f.failErr
	}
	s, ok := f.sessions[id]
	if !ok {
		return nil, nil, common.ErrNotFound
	}
	u, ok := f.users[s.UserID]
	if !ok {
		u = &models.User{UserID: s.UserID}
	}
	cs, cu := *s, *u
	return &cs, &cu, nil
}

func (f fakeSessions) UpdateExpiry(_ context.Context, id string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	if s, ok := f.sessions[id]; ok {
		s.ExpiresAt = expiresAt
	}
	return nil
}

func (f fakeSessions) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	delete(f.sessions, id)
	return nil
}

func (f fakeSessions) DeleteByUserID(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, s := range f.sessions {
		if s.UserID == userID {
			delete(f.sessions, id)
		}
	}
	return nil
}

// companies and competitions

type fakeCompanies struct{ *fakeStore }

func (f fakeCompanies) CreateWithOwner(_ context.Context, c *models.Company, ownerID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.CompanyID = f.id()
	f.members[[2]int64{c.CompanyID, ownerID}] = true
	return nil
}

func (f fakeCompanies) IsMember(_ context.Context, companyID, userID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.members[[2]int64{companyID, userID}], nil
}

type fakeCompetitions struct{ *fakeStore }

func (f fakeCompetitions) Create(_ context.Context, c *models.Competition) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.CompetitionID = f.id()
	cp := *c
	f.competitions[c.CompetitionID] = &cp
	return nil
}

func (f fakeCompetitions) GetByID(_ context.Context, id int64) (*models.Competition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.competitions[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f fakeCompetitions) sorted(filter repository.CompetitionFilter, keep func(*models.Competition) bool) []models.Competition {
	out := []models.Competition{}
	for _, c := range f.competitions {
		if filter.ContentType != "" && c.ContentType != filter.ContentType {
			continue
		}
		if filter.OpenAt != nil && c.EndDate.Before(*filter.OpenAt) {
			continue
		}
		if keep != nil && !keep(c) {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EndDate.Equal(out[j].EndDate) {
			if filter.Descending {
				return out[i].EndDate.After(out[j].EndDate)
			}
			return out[i].EndDate.Before(out[j].EndDate)
		}
		if filter.Descending {
			return out[i].CompetitionID > out[j].CompetitionID
		}
		return out[i].CompetitionID < out[j].CompetitionID
	})
	return out
}

func window[T any](rows []T, offset, limit int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func (f fakeCompetitions) List(_ context.Context, filter repository.CompetitionFilter, offset, limit int) ([]models.Competition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return window(f.sorted(filter, nil), offset, limit), nil
}

func (f fakeCompetitions) ListBookmarked(_ context.Context, userID int64, offset, limit int) ([]models.Competition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	marks := f.engagements[repository.Bookmarks.Table]
	rows := f.sorted(repository.CompetitionFilter{}, func(c *models.Competition) bool {
		return marks[[2]int64{userID, c.CompetitionID}]
	})
	return window(rows, offset, limit), nil
}

// deliveries

type fakeDeliveries struct{ *fakeStore }

func (f fakeDeliveries) Submit(_ context.Context, d *models.Delivery, check repository.SubmitCheck) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.competitions[d.CompetitionID]
	if !ok {
		return common.ErrNotFound
	}
	if err := check(c, f.members[[2]int64{c.CompanyID, d.UserID}]); err != nil {
		return err
	}
	d.DeliveryID = f.id()
	d.CreatedAt = time.Unix(d.DeliveryID, 0)
	cp := *d
	f.deliveries[d.DeliveryID] = &cp
	return nil
}

func (f fakeDeliveries) UpdateStatus(_ context.Context, id, actorID int64, next models.DeliveryStatus, check repository.StatusCheck) (*models.Delivery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.deliveries[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	c := f.competitions[d.CompetitionID]
	if err := check(d, c, f.members[[2]int64{c.CompanyID, actorID}]); err != nil {
		return nil, err
	}
	d.Status = next
	cp := *d
	return &cp, nil
}

func (f fakeDeliveries) list(keep func(*models.Delivery) bool, offset, limit int) []models.Delivery {
	out := []models.Delivery{}
	for _, d := range f.deliveries {
		if keep(d) {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DeliveryID > out[j].DeliveryID })
	return window(out, offset, limit)
}

func (f fakeDeliveries) ListByCompetition(_ context.Context, competitionID int64, offset, limit int) ([]models.Delivery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.list(func(d *models.Delivery) bool { return d.CompetitionID == competitionID }, offset, limit), nil
}

func (f fakeDeliveries) ListByUser(_ context.Context, userID int64, offset, limit int) ([]models.Delivery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.list(func(d *models.Delivery) bool { return d.UserID == userID }, offset, limit), nil
}

// engagements mirror the transactional repository under one mutex.

type fakeEngagements struct{ *fakeStore }

func (f fakeEngagements) target(e repository.Engagement, id int64) (*int, bool) {
	switch e.TargetTable {
	case "posts":
		p, ok := f.posts[id]
		if !ok {
			return nil, false
		}
		return &p.Likes, true
	default:
		_, ok := f.competitions[id]
		return nil, ok
	}
}

func (f fakeEngagements) rows(e repository.Engagement) map[[2]int64]bool {
	m, ok := f.engagements[e.Table]
	if !ok {
		m = map[[2]int64]bool{}
		f.engagements[e.Table] = m
	}
	return m
}

func (f fakeEngagements) Set(_ context.Context, e repository.Engagement, userID, targetID int64, active bool) (bool, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.set(e, userID, targetID, active)
}

func (f fakeEngagements) set(e repository.Engagement, userID, targetID int64, active bool) (bool, int, error) {
	counter, ok := f.target(e, targetID)
	if !ok {
		return false, 0, common.ErrNotFound
	}
	rows := f.rows(e)
	key := [2]int64{userID, targetID}
	if rows[key] == active {
		return false, deref(counter), nil
	}
	if active {
		rows[key] = true
	} else {
		delete(rows, key)
	}
	if counter != nil {
		if active {
			*counter++
		} else {
			*counter--
		}
	}
	return true, deref(counter), nil
}

func (f fakeEngagements) Toggle(_ context.Context, e repository.Engagement, userID, targetID int64) (bool, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	active := !f.rows(e)[[2]int64{userID, targetID}]
	_, count, err := f.set(e, userID, targetID, active)
	return active, count, err
}

func (f fakeEngagements) Exists(_ context.Context, e repository.Engagement, userID, targetID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows(e)[[2]int64{userID, targetID}], nil
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// posts

type fakePosts struct{ *fakeStore }

func (f fakePosts) Create(_ context.Context, p *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.PostID = f.id()
	p.CreatedAt = time.Unix(p.PostID, 0)
	cp := *p
	f.posts[p.PostID] = &cp
	return nil
}

func (f fakePosts) ListFeed(_ context.Context, offset, limit int) ([]models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Post{}
	for _, p := range f.posts {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PostID > out[j].PostID })
	return window(out, offset, limit), nil
}
