package appointment

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/room-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/room-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/room-scheduler/internal/dto"
	"github.com/BruksfildServices01/room-scheduler/internal/httperr"
	"github.com/BruksfildServices01/room-scheduler/internal/models"
	"github.com/BruksfildServices01/room-scheduler/internal/notify"
	"github.com/BruksfildServices01/room-scheduler/internal/timezone"
)

// ------------------------------------------------------
// fakes
// ------------------------------------------------------

type fakeRepo struct {
	mu           sync.Mutex
	rooms        map[string]*models.Room
	users        map[string]*models.User
	appointments map[string]*models.Appointment
	lastFilter   domain.ListFilter
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		rooms: map[string]*models.Room{
			"room-1": {ID: "room-1", Name: "Sala 1", StartTime: "08:00", EndTime: "18:00", SlotDuration: 30, IsActive: true},
		},
		users: map[string]*models.User{
			"owner": {ID: "owner", Name: "Ana", LastName: "Souza", Email: "ana@example.com", Role: "USER", IsActive: true},
			"other": {ID: "other", Name: "Bia", Email: "bia@example.com", Role: "USER", IsActive: true},
			"admin": {ID: "admin", Name: "Admin", Email: "admin@example.com", Role: "ADMIN", IsActive: true},
		},
		appointments: map[string]*models.Appointment{},
	}
}

func (f *fakeRepo) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	if r, ok := f.rooms[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetUser(ctx context.Context, id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListAdmins(ctx context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if u.Role == "ADMIN" {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, other := range f.appointments {
		if other.RoomID == ap.RoomID && other.Status != string(domain.StatusCancelled) &&
			other.StartTime.Before(ap.EndTime) && other.EndTime.After(ap.StartTime) {
			return httperr.ErrBusiness("time_conflict")
		}
	}
	ap.ID = "ap-" + ap.StartTime.Format("1504")
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ap, ok := f.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ap
	cp.User = *f.users[ap.UserID]
	cp.Room = *f.rooms[ap.RoomID]
	return &cp, nil
}

func (f *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) ListActiveForRoom(ctx context.Context, roomID string, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.RoomID == roomID && ap.Status != string(domain.StatusCancelled) &&
			ap.StartTime.Before(end) && ap.EndTime.After(start) {
			out = append(out, *ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (f *fakeRepo) ListAppointments(ctx context.Context, filter domain.ListFilter) ([]models.Appointment, int64, error) {
	f.lastFilter = filter
	var out []models.Appointment
	for _, ap := range f.appointments {
		if filter.OwnerID != "" && ap.UserID != filter.OwnerID {
			continue
		}
		cp := *ap
		cp.User = *f.users[ap.UserID]
		cp.Room = *f.rooms[ap.RoomID]
		out = append(out, cp)
	}
	return out, int64(len(out)), nil
}

type memorySink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (m *memorySink) Log(ctx context.Context, ev audit.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return nil
}

func (m *memorySink) actions() []audit.Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]audit.Action, 0, len(m.events))
	for _, ev := range m.events {
		out = append(out, ev.Action)
	}
	return out
}

type recordingSender struct {
	mu   sync.Mutex
	sent []notify.Message
}

func (s *recordingSender) Send(ctx context.Context, msg notify.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

type fixture struct {
	repo   *fakeRepo
	sink   *memorySink
	sender *recordingSender
	audit  *audit.Dispatcher
	mailer *notify.Mailer
	now    time.Time
}

func newFixture() *fixture {
	sink := &memorySink{}
	sender := &recordingSender{}
	return &fixture{
		repo:   newFakeRepo(),
		sink:   sink,
		sender: sender,
		audit:  audit.NewDispatcher(sink),
		mailer: notify.NewMailer(sender),
		now:    time.Date(2025, 3, 10, 9, 10, 0, 0, timezone.Current()),
	}
}

// drain flushes the async queues so their effects can be asserted.
func (f *fixture) drain() {
	f.audit.Close()
	f.mailer.Close()
}

func (f *fixture) create() *CreateAppointment {
	uc := NewCreateAppointment(f.repo, f.audit, f.mailer)
	uc.now = func() time.Time { return f.now }
	return uc
}

func (f *fixture) change() *ChangeStatus {
	uc := NewChangeStatus(f.repo, f.audit, f.mailer)
	uc.now = func() time.Time { return f.now }
	return uc
}

// ------------------------------------------------------
// tests
// ------------------------------------------------------

func TestCreateAppointment(t *testing.T) {
	f := newFixture()
	uc := f.create()

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		UserID: "owner", RoomID: "room-1", Date: "2025-03-10", Time: "10:30",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ap.Status != string(domain.StatusPending) {
		t.Errorf("expected PENDING, got %s", ap.Status)
	}
	if ap.EndTime.Sub(ap.StartTime) != 30*time.Minute {
		t.Errorf("expected a 30 minute slot, got %s", ap.EndTime.Sub(ap.StartTime))
	}

	f.drain()

	if got := f.sink.actions(); len(got) != 1 || got[0] != audit.ActionAppointmentCreated {
		t.Errorf("unexpected audit trail %v", got)
	}
	if len(f.sender.sent) != 1 || f.sender.sent[0].To != "admin@example.com" {
		t.Errorf("expected one admin notification, got %+v", f.sender.sent)
	}
}

func TestCreateAppointmentRejects(t *testing.T) {
	cases := []struct {
		name string
		in   CreateAppointmentInput
		code string
	}{
		{"unknown room", CreateAppointmentInput{UserID: "owner", RoomID: "nope", Date: "2025-03-10", Time: "10:00"}, "room_not_found"},
		{"bad date", CreateAppointmentInput{UserID: "owner", RoomID: "room-1", Date: "10/03/2025", Time: "10:00"}, "invalid_date_or_time"},
		{"past", CreateAppointmentInput{UserID: "owner", RoomID: "room-1", Date: "2025-03-10", Time: "09:00"}, "slot_in_past"},
		{"misaligned", CreateAppointmentInput{UserID: "owner", RoomID: "room-1", Date: "2025-03-10", Time: "10:15"}, "outside_room_hours"},
		{"after hours", CreateAppointmentInput{UserID: "owner", RoomID: "room-1", Date: "2025-03-10", Time: "18:00"}, "outside_room_hours"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			defer f.drain()

			_, err := f.create().Execute(context.Background(), tc.in)
			if !httperr.IsBusiness(err, tc.code) {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func TestCreateAppointmentConflict(t *testing.T) {
	f := newFixture()
	uc := f.create()
	ctx := context.Background()
	in := CreateAppointmentInput{UserID: "owner", RoomID: "room-1", Date: "2025-03-10", Time: "11:00"}

	if _, err := uc.Execute(ctx, in); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	in.UserID = "other"
	if _, err := uc.Execute(ctx, in); !httperr.IsBusiness(err, "time_conflict") {
		t.Fatalf("expected time_conflict, got %v", err)
	}

	f.drain()
	got := f.sink.actions()
	if len(got) != 2 || got[1] != audit.ActionAppointmentConflict {
		t.Errorf("conflict should be audited, got %v", got)
	}
}

func TestChangeStatusRules(t *testing.T) {
	owner := domain.Actor{UserID: "owner"}
	other := domain.Actor{UserID: "other"}
	admin := domain.Actor{UserID: "admin", Admin: true}

	cases := []struct {
		name   string
		start  domain.Status
		to     domain.Status
		actor  domain.Actor
		code   string
		emails int
	}{
		{"admin confirms", domain.StatusPending, domain.StatusConfirmed, admin, "", 1},
		{"owner cannot confirm", domain.StatusPending, domain.StatusConfirmed, owner, "forbidden_transition", 0},
		{"owner cancels pending", domain.StatusPending, domain.StatusCancelled, owner, "", 0},
		{"owner cancels confirmed", domain.StatusConfirmed, domain.StatusCancelled, owner, "", 0},
		{"admin cancels", domain.StatusConfirmed, domain.StatusCancelled, admin, "", 1},
		{"stranger cannot see", domain.StatusPending, domain.StatusCancelled, other, "appointment_not_found", 0},
		{"cancelled is terminal", domain.StatusCancelled, domain.StatusConfirmed, admin, "invalid_state", 0},
		{"cancel twice", domain.StatusCancelled, domain.StatusCancelled, admin, "invalid_state", 0},
		{"confirm twice", domain.StatusConfirmed, domain.StatusConfirmed, admin, "invalid_state", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			start := time.Date(2025, 3, 11, 10, 0, 0, 0, timezone.Current())
			f.repo.appointments["ap-1"] = &models.Appointment{
				ID: "ap-1", UserID: "owner", RoomID: "room-1",
				StartTime: start, EndTime: start.Add(30 * time.Minute),
				Status: string(tc.start),
			}

			ap, err := f.change().Execute(context.Background(), "ap-1", tc.to, tc.actor)
			f.drain()

			if tc.code != "" {
				if !httperr.IsBusiness(err, tc.code) {
					t.Fatalf("expected %s, got %v", tc.code, err)
				}
				if stored := f.repo.appointments["ap-1"].Status; stored != string(tc.start) {
					t.Errorf("status changed on failure: %s", stored)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ap.Status != string(tc.to) || f.repo.appointments["ap-1"].Status != string(tc.to) {
				t.Errorf("expected %s, got %s", tc.to, ap.Status)
			}
			if len(f.sender.sent) != tc.emails {
				t.Errorf("expected %d emails, got %d", tc.emails, len(f.sender.sent))
			}
			if tc.emails > 0 && f.sender.sent[0].To != "ana@example.com" {
				t.Errorf("email should go to the owner, got %s", f.sender.sent[0].To)
			}
		})
	}
}

func TestChangeStatusUnknown(t *testing.T) {
	f := newFixture()
	defer f.drain()

	_, err := f.change().Execute(context.Background(), "missing", domain.StatusCancelled, domain.Actor{UserID: "admin", Admin: true})
	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("expected appointment_not_found, got %v", err)
	}
}

func TestListScopesNonAdmins(t *testing.T) {
	f := newFixture()
	defer f.drain()

	start := time.Date(2025, 3, 11, 10, 0, 0, 0, timezone.Current())
	f.repo.appointments["a"] = &models.Appointment{ID: "a", UserID: "owner", RoomID: "room-1", StartTime: start, EndTime: start.Add(30 * time.Minute), Status: "PENDING"}
	f.repo.appointments["b"] = &models.Appointment{ID: "b", UserID: "other", RoomID: "room-1", StartTime: start.Add(time.Hour), EndTime: start.Add(90 * time.Minute), Status: "CONFIRMED"}

	uc := NewListAppointments(f.repo)

	page, err := uc.Execute(context.Background(), domain.Actor{UserID: "owner"}, domain.ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if f.repo.lastFilter.OwnerID != "owner" || f.repo.lastFilter.Limit != dto.DefaultLimit {
		t.Errorf("unexpected filter %+v", f.repo.lastFilter)
	}
	if page.Total != 1 || page.Data[0].ClientName != "Ana Souza" || page.Data[0].StatusLabel != "Em análise" {
		t.Errorf("unexpected page %+v", page)
	}
	if page.Data[0].Date != "11/03/2025" || page.Data[0].StartTime != "10:00" || page.Data[0].RoomName != "Sala 1" {
		t.Errorf("unexpected formatting %+v", page.Data[0])
	}

	page, _ = uc.Execute(context.Background(), domain.Actor{UserID: "admin", Admin: true}, domain.ListFilter{OwnerID: "someone"})
	if f.repo.lastFilter.OwnerID != "someone" || page.Total != 0 {
		t.Errorf("admins keep their own owner filter, got %+v", f.repo.lastFilter)
	}
}

func TestAvailabilitySkipsBookedSlots(t *testing.T) {
	f := newFixture()
	defer f.drain()

	date := time.Date(2025, 3, 11, 0, 0, 0, 0, timezone.Current())
	start := date.Add(10 * time.Hour)
	f.repo.appointments["a"] = &models.Appointment{ID: "a", UserID: "owner", RoomID: "room-1", StartTime: start, EndTime: start.Add(30 * time.Minute), Status: "PENDING"}
	f.repo.appointments["c"] = &models.Appointment{ID: "c", UserID: "owner", RoomID: "room-1", StartTime: start.Add(time.Hour), EndTime: start.Add(90 * time.Minute), Status: "CANCELLED"}

	uc := NewGetAvailability(f.repo)
	uc.now = func() time.Time { return f.now }

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{RoomID: "room-1", Date: date})
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if len(slots) != 19 {
		t.Fatalf("expected 19 free slots, got %d", len(slots))
	}
	for _, s := range slots {
		if s.Start == "10:00" {
			t.Error("booked slot offered")
		}
	}

	if _, err := uc.Execute(context.Background(), domain.AvailabilityInput{RoomID: "nope", Date: date}); !httperr.IsBusiness(err, "room_not_found") {
		t.Errorf("expected room_not_found, got %v", err)
	}
}
