package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"scheduler/internal/db"
	"scheduler/internal/repository"
)

// memStore is an in-memory slot and booking store with the same claim
// semantics as the gorm repositories.
type memStore struct {
	mu       sync.Mutex
	nextSlot uint
	nextBook uint
	slots    map[uint]*db.Slot
	bookings map[uint]*db.Booking
	err      error
}

func newMemStore() *memStore {
	return &memStore{slots: map[uint]*db.Slot{}, bookings: map[uint]*db.Booking{}}
}

func (m *memStore) Create(_ context.Context, slot *db.Slot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.nextSlot++
	slot.ID = m.nextSlot
	cp := *slot
	m.slots[slot.ID] = &cp
	return nil
}

func (m *memStore) snapshot(keep func(db.Slot) bool) []db.Slot {
	var out []db.Slot
	for _, s := range m.slots {
		cp := *s
		if b, ok := m.bookings[s.ID]; ok {
			bc := *b
			cp.Booking = &bc
		}
		if keep(cp) {
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *memStore) ListOrderedByDate(context.Context) ([]db.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.snapshot(func(db.Slot) bool { return true }), nil
}

func (m *memStore) ListBetween(_ context.Context, from, to time.Time) ([]db.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.snapshot(func(s db.Slot) bool {
		return !s.Date.Before(from) && s.Date.Before(to)
	}), nil
}

func (m *memStore) GetAvailable(_ context.Context, id uint) (*db.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.slots[id]
	if !ok || !s.Available {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memStore) CreateForSlot(_ context.Context, b *db.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	s, ok := m.slots[b.SlotID]
	if !ok || !s.Available {
		return repository.ErrNotFound
	}
	s.Available = false
	m.nextBook++
	b.ID = m.nextBook
	b.CreatedAt = time.Now()
	cp := *b
	m.bookings[b.SlotID] = &cp
	return nil
}

func (m *memStore) bookingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bookings)
}

type published struct {
	key string
	v   any
}

type fakePublisher struct {
	mu   sync.Mutex
	sent []published
}

func (p *fakePublisher) PublishJSON(_ context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, published{key: key, v: v})
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var keys []string
	for _, s := range p.sent {
		keys = append(keys, s.key)
	}
	return keys
}

type sentEmail struct {
	to, toName, subject, plain, html string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

func (f *fakeMailer) SendEmail(_ context.Context, to, toName, subject, plain, html string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentEmail{to: to, toName: toName, subject: subject, plain: plain, html: html})
	return nil
}

type fakeSMS struct {
	mu   sync.Mutex
	to   []string
	body []string
}

func (f *fakeSMS) SendSMS(_ context.Context, to, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.to = append(f.to, to)
	f.body = append(f.body, body)
	return nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	bookings []db.Booking
}

func (r *recordingNotifier) BookingCreated(_ context.Context, _ db.Slot, b db.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings = append(r.bookings, b)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
