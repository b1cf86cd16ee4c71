//go:build unit

package commands_test

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"hotel-booking/internal/domain/booking"
	"hotel-booking/internal/domain/money"
	"hotel-booking/internal/domain/payment"
	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/domain/user"
	"hotel-booking/internal/infra"
	"hotel-booking/internal/usecase/queries"
	"hotel-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type bookingRec struct {
	id        int64
	userID    uuid.UUID
	stay      booking.Stay
	roomIDs   []int64
	total     money.Money
	status    booking.Status
	createdAt time.Time
	updatedAt time.Time
}

func (r bookingRec) entity() *booking.Booking {
	return booking.ReconstructBooking(r.id, r.userID, r.stay, slices.Clone(r.roomIDs), r.total, r.status, r.createdAt, r.updatedAt)
}

type state struct {
	rooms         map[int64]*room.Room
	bookings      map[int64]bookingRec
	payments      []*payment.Payment
	users         map[uuid.UUID]*user.User
	nextBookingID int64
	nextPaymentID int64
	nextRoomID    int64
}

func (s state) clone() state {
	c := s
	c.rooms = maps.Clone(s.rooms)
	c.bookings = maps.Clone(s.bookings)
	c.payments = slices.Clone(s.payments)
	c.users = maps.Clone(s.users)
	return c
}

// memUoW applies a transaction's writes only when fn returns nil.
type memUoW struct {
	mu    sync.Mutex
	st    state
	fail  map[string]error
	calls int
}

func newMemUoW() *memUoW {
	return &memUoW{
		st: state{
			rooms:    map[int64]*room.Room{},
			bookings: map[int64]bookingRec{},
			users:    map[uuid.UUID]*user.User{},
		},
		fail: map[string]error{},
	}
}

func (u *memUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls++

	tx := &memTx{st: u.st.clone(), fail: u.fail}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	u.st = tx.st
	return nil
}

func (u *memUoW) addRoom(id int64, cents int64, available bool) {
	u.st.rooms[id] = room.ReconstructRoom(id, "room", "double", money.FromCents(cents), 2, available, time.Time{}, time.Time{})
}

func (u *memUoW) addBooking(rec bookingRec) {
	u.st.bookings[rec.id] = rec
	if rec.id >= u.st.nextBookingID {
		u.st.nextBookingID = rec.id
	}
}

func (u *memUoW) addPayment(p *payment.Payment) {
	u.st.nextPaymentID++
	u.st.payments = append(u.st.payments, payment.ReconstructPayment(
		u.st.nextPaymentID, p.BookingID(), p.Amount(), p.Status(), p.Method(), p.CreatedAt()))
}

func (u *memUoW) bookingCount() int { return len(u.st.bookings) }

func (u *memUoW) linkCount() int {
	n := 0
	for _, b := range u.st.bookings {
		n += len(b.roomIDs)
	}
	return n
}

func (u *memUoW) ledger(bookingID int64) []*payment.Payment {
	var out []*payment.Payment
	for _, p := range u.st.payments {
		if p.BookingID() == bookingID {
			out = append(out, p)
		}
	}
	return out
}

type memTx struct {
	st   state
	fail map[string]error
}

func (t *memTx) Bookings() shared.BookingRepository { return memBookings{t} }
func (t *memTx) Payments() shared.PaymentRepository { return memPayments{t} }
func (t *memTx) Rooms() shared.RoomRepository       { return memRooms{t} }
func (t *memTx) Users() shared.UserRepository       { return memUsers{t} }
func (t *memTx) Reads() shared.CommandReads         { return memReads{t} }

type memBookings struct{ t *memTx }

func (r memBookings) Create(_ context.Context, b *booking.Booking) (int64, error) {
	if err := r.t.fail["Bookings.Create"]; err != nil {
		return 0, err
	}
	r.t.st.nextBookingID++
	id := r.t.st.nextBookingID
	r.t.st.bookings[id] = bookingRec{
		id: id, userID: b.UserID(), stay: b.Stay(), roomIDs: b.RoomIDs(),
		total: b.TotalPrice(), status: b.Status(), createdAt: b.CreatedAt(), updatedAt: b.UpdatedAt(),
	}
	return id, nil
}

func (r memBookings) UpdateStatus(_ context.Context, b *booking.Booking) error {
	rec, ok := r.t.st.bookings[b.ID()]
	if !ok {
		return infra.WrapRepoErr("booking not found", pgx.ErrNoRows)
	}
	rec.status = b.Status()
	rec.updatedAt = b.UpdatedAt()
	r.t.st.bookings[b.ID()] = rec
	return nil
}

type memPayments struct{ t *memTx }

func (r memPayments) Append(_ context.Context, p *payment.Payment) (*payment.Payment, error) {
	if err := r.t.fail["Payments.Append"]; err != nil {
		return nil, err
	}
	r.t.st.nextPaymentID++
	saved := payment.ReconstructPayment(r.t.st.nextPaymentID, p.BookingID(), p.Amount(), p.Status(), p.Method(), p.CreatedAt())
	r.t.st.payments = append(r.t.st.payments, saved)
	return saved, nil
}

type memRooms struct{ t *memTx }

func (r memRooms) Create(_ context.Context, rm *room.Room) (*room.Room, error) {
	r.t.st.nextRoomID++
	saved := room.ReconstructRoom(r.t.st.nextRoomID, rm.Name(), rm.RoomType(), rm.PricePerNight(), rm.Capacity(), rm.IsAvailable(), rm.CreatedAt(), rm.UpdatedAt())
	r.t.st.rooms[saved.ID()] = saved
	return saved, nil
}

func (r memRooms) SetAvailability(_ context.Context, id int64, available bool, now time.Time) (*room.Room, error) {
	rm, ok := r.t.st.rooms[id]
	if !ok {
		return nil, infra.WrapRepoErr("room not found", pgx.ErrNoRows)
	}
	saved := room.ReconstructRoom(id, rm.Name(), rm.RoomType(), rm.PricePerNight(), rm.Capacity(), available, rm.CreatedAt(), now)
	r.t.st.rooms[id] = saved
	return saved, nil
}

type memUsers struct{ t *memTx }

func (r memUsers) Create(_ context.Context, u *user.User) error {
	for _, existing := range r.t.st.users {
		if existing.Email() == u.Email() {
			return infra.WrapRepoErr("duplicate email", nil, infra.KindDuplicateKey)
		}
	}
	r.t.st.users[u.ID()] = u
	return nil
}

func (r memUsers) UpdateLastLogin(context.Context, uuid.UUID, time.Time) error { return nil }

type memReads struct{ t *memTx }

func (r memReads) LockRooms(_ context.Context, ids []int64) ([]*room.Room, error) {
	var out []*room.Room
	for _, id := range ids {
		if rm, ok := r.t.st.rooms[id]; ok {
			out = append(out, rm)
		}
	}
	return out, nil
}

func (r memReads) OverlappingBooking(_ context.Context, roomIDs []int64, stay booking.Stay) (*shared.BookingConflict, error) {
	for _, id := range slices.Sorted(maps.Keys(r.t.st.bookings)) {
		b := r.t.st.bookings[id]
		if !b.status.HoldsRooms() || !b.stay.Overlaps(stay) {
			continue
		}
		for _, roomID := range roomIDs {
			if slices.Contains(b.roomIDs, roomID) {
				return &shared.BookingConflict{RoomID: roomID, BookingID: b.id}, nil
			}
		}
	}
	return nil, nil
}

func (r memReads) BookingForUpdate(_ context.Context, id int64) (*booking.Booking, error) {
	rec, ok := r.t.st.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", pgx.ErrNoRows)
	}
	return rec.entity(), nil
}

func (r memReads) LedgerTotals(_ context.Context, bookingID int64) (payment.Totals, error) {
	var ledger []*payment.Payment
	for _, p := range r.t.st.payments {
		if p.BookingID() == bookingID {
			ledger = append(ledger, p)
		}
	}
	return payment.TotalsFrom(ledger), nil
}

// memReadStore serves the read side from committed state only.
type memReadStore struct{ u *memUoW }

func (s memReadStore) FindByID(_ context.Context, id int64) (*queries.BookingView, error) {
	rec, ok := s.u.st.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", pgx.ErrNoRows)
	}
	rooms := make([]queries.BookingRoomView, len(rec.roomIDs))
	for i, id := range rec.roomIDs {
		rooms[i] = queries.BookingRoomView{RoomID: id, PricePerNight: s.u.st.rooms[id].PricePerNight()}
	}
	return &queries.BookingView{
		ID: rec.id, UserID: rec.userID, CheckIn: rec.stay.CheckIn(), CheckOut: rec.stay.CheckOut(),
		Nights: rec.stay.Nights(), TotalPrice: rec.total, Status: rec.status.String(), Rooms: rooms,
	}, nil
}

func (s memReadStore) ListByUser(context.Context, uuid.UUID, queries.Page) ([]*queries.BookingView, error) {
	return nil, nil
}

func (s memReadStore) List(context.Context, queries.BookingFilter) ([]*queries.BookingView, int64, error) {
	return nil, 0, nil
}

type memPaymentStore struct{ u *memUoW }

func (s memPaymentStore) Summary(_ context.Context, bookingID int64) (*queries.PaymentSummaryView, error) {
	rec, ok := s.u.st.bookings[bookingID]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", pgx.ErrNoRows)
	}
	totals := payment.TotalsFrom(s.u.ledger(bookingID))
	return &queries.PaymentSummaryView{
		BookingID: bookingID, UserID: rec.userID, Status: rec.status.String(), TotalPrice: rec.total,
		TotalPaid: totals.Paid, TotalRefunded: totals.Refunded, NetPaid: totals.NetPaid(),
	}, nil
}

func (s memPaymentStore) ListByBooking(_ context.Context, bookingID int64) ([]*queries.PaymentView, error) {
	var out []*queries.PaymentView
	for _, p := range s.u.ledger(bookingID) {
		out = append(out, paymentView(p))
	}
	return out, nil
}

func (s memPaymentStore) FindByID(_ context.Context, id int64) (*queries.PaymentView, error) {
	for _, p := range s.u.st.payments {
		if p.ID() == id {
			return paymentView(p), nil
		}
	}
	return nil, infra.WrapRepoErr("payment not found", pgx.ErrNoRows)
}

func paymentView(p *payment.Payment) *queries.PaymentView {
	return &queries.PaymentView{
		ID: p.ID(), BookingID: p.BookingID(), Amount: p.Amount(), Status: string(p.Status()),
		Method: p.Method(), CreatedAt: p.CreatedAt(),
	}
}

type recordingPublisher struct {
	events []shared.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e shared.Event) error {
	p.events = append(p.events, e)
	return p.err
}

// memIdempotency is a single-process IdempotencyStore. Each queued
// completeErrs entry fails one Complete call.
type memIdempotency struct {
	records       map[string]shared.IdempotencyRecord
	completeErrs  []error
	completeCalls int
}

func newMemIdempotency() *memIdempotency {
	return &memIdempotency{records: map[string]shared.IdempotencyRecord{}}
}

func (m *memIdempotency) Claim(_ context.Context, key, fingerprint string) (*shared.IdempotencyRecord, error) {
	if rec, ok := m.records[key]; ok {
		return &rec, nil
	}
	m.records[key] = shared.IdempotencyRecord{State: shared.IdempotencyProcessing, Fingerprint: fingerprint}
	return nil, nil
}

func (m *memIdempotency) Complete(_ context.Context, key, fingerprint string, paymentID int64) error {
	m.completeCalls++
	if len(m.completeErrs) > 0 {
		err := m.completeErrs[0]
		m.completeErrs = m.completeErrs[1:]
		return err
	}
	m.records[key] = shared.IdempotencyRecord{State: shared.IdempotencyCompleted, Fingerprint: fingerprint, PaymentID: paymentID}
	return nil
}

func (m *memIdempotency) Release(_ context.Context, key string) error {
	delete(m.records, key)
	return nil
}
