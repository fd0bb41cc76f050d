package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"inkfolio-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ----------------------------------------------------------------------------
// in-memory store
// ----------------------------------------------------------------------------

var errLedgerDown = errors.New("ledger insert failed")

type mockStore struct {
	mu           sync.Mutex
	artworks     map[uuid.UUID]*models.Artwork
	appointments map[uuid.UUID]*models.Appointment
	ledger       []models.LedgerEntry

	// ops records every write in call order
	ops []string

	failLedger bool
	// beforeMark runs just before the conditional availability flip,
	// to wedge a concurrent booking between the read and the update
	beforeMark func()
}

func newMockStore() *mockStore {
	return &mockStore{
		artworks:     make(map[uuid.UUID]*models.Artwork),
		appointments: make(map[uuid.UUID]*models.Appointment),
	}
}

// InTx snapshots state and restores it when fn errors, matching the
// rollback a real transaction gives.
func (m *mockStore) InTx(fn func(BookingStore) error) error {
	m.mu.Lock()
	artworks := make(map[uuid.UUID]*models.Artwork, len(m.artworks))
	for id, a := range m.artworks {
		cp := *a
		artworks[id] = &cp
	}
	appointments := make(map[uuid.UUID]*models.Appointment, len(m.appointments))
	for id, a := range m.appointments {
		cp := *a
		appointments[id] = &cp
	}
	ledger := append([]models.LedgerEntry(nil), m.ledger...)
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.artworks = artworks
		m.appointments = appointments
		m.ledger = ledger
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *mockStore) GetArtwork(artistID, artworkID uuid.UUID) (*models.Artwork, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.artworks[artworkID]
	if !ok || a.ArtistID != artistID {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockStore) MarkArtworkUnavailable(artworkID uuid.UUID) (bool, error) {
	if m.beforeMark != nil {
		m.beforeMark()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, "mark unavailable")
	a, ok := m.artworks[artworkID]
	if !ok || !a.Available {
		return false, nil
	}
	a.Available = false
	return true, nil
}

func (m *mockStore) RestoreArtworkAvailability(artworkID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, "restore artwork")
	if a, ok := m.artworks[artworkID]; ok {
		a.Available = true
	}
	return nil
}

func (m *mockStore) FindOrphanedArtworks(artistID uuid.UUID) ([]models.Artwork, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	referenced := make(map[uuid.UUID]bool)
	for _, ap := range m.appointments {
		if ap.ArtistID == artistID && ap.ArtworkID != nil {
			referenced[*ap.ArtworkID] = true
		}
	}
	var out []models.Artwork
	for _, a := range m.artworks {
		if a.ArtistID == artistID && !a.Available && !referenced[a.ID] {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockStore) GetAppointment(artistID, appointmentID uuid.UUID) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ap, ok := m.appointments[appointmentID]
	if !ok || ap.ArtistID != artistID {
		return nil, ErrNotFound
	}
	cp := *ap
	if cp.ArtworkID != nil {
		if a, ok := m.artworks[*cp.ArtworkID]; ok {
			acp := *a
			cp.Artwork = &acp
		}
	}
	return &cp, nil
}

func (m *mockStore) CreateAppointment(a *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, "create appointment")
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	cp := *a
	m.appointments[a.ID] = &cp
	return nil
}

func (m *mockStore) SaveAppointment(a *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, "save appointment")
	cp := *a
	m.appointments[a.ID] = &cp
	return nil
}

func (m *mockStore) DeleteAppointment(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, "delete appointment")
	delete(m.appointments, id)
	return nil
}

func (m *mockStore) ListAppointments(artistID uuid.UUID) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, ap := range m.appointments {
		if ap.ArtistID == artistID {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (m *mockStore) CreateLedgerEntry(e *models.LedgerEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, "create ledger entry")
	if m.failLedger {
		return errLedgerDown
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	m.ledger = append(m.ledger, *e)
	return nil
}

func (m *mockStore) opIndex(op string) int {
	for i, o := range m.ops {
		if o == op {
			return i
		}
	}
	return -1
}

// ----------------------------------------------------------------------------
// helpers
// ----------------------------------------------------------------------------

func seedArtwork(m *mockStore, artistID uuid.UUID, title, price string, available bool) *models.Artwork {
	a := &models.Artwork{
		ID:        uuid.New(),
		ArtistID:  artistID,
		Title:     title,
		Price:     price,
		Available: available,
	}
	m.artworks[a.ID] = a
	return a
}

func seedAppointment(m *mockStore, artistID uuid.UUID, artworkID *uuid.UUID, clientName string) *models.Appointment {
	ap := &models.Appointment{
		ID:            uuid.New(),
		ArtistID:      artistID,
		ArtworkID:     artworkID,
		ClientName:    clientName,
		ClientContact: "11987654321",
		ScheduledAt:   time.Now().Add(24 * time.Hour),
	}
	m.appointments[ap.ID] = ap
	return ap
}

func newTestService(m *mockStore) *BookingService {
	return &BookingService{store: m}
}

// ----------------------------------------------------------------------------
// create
// ----------------------------------------------------------------------------

func TestCreateBooking_FlipsAvailability(t *testing.T) {
	store := newMockStore()
	artistID := uuid.New()
	artwork := seedArtwork(store, artistID, "Dragon Sleeve", "R$ 800,00", true)
	svc := newTestService(store)

	appointment, err := svc.CreateBooking(artistID, CreateBookingInput{
		ArtworkID:     artwork.ID,
		ClientName:    "  maria silva ",
		ClientContact: "(11) 98765-4321",
		ScheduledAt:   time.Date(2026, time.September, 3, 14, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "MARIA SILVA", appointment.ClientName)
	assert.Equal(t, "11987654321", appointment.ClientContact)
	assert.Len(t, store.appointments, 1)
	assert.False(t, store.artworks[artwork.ID].Available)
}

func TestCreateBooking_RejectsSecondBooking(t *testing.T) {
	store := newMockStore()
	artistID := uuid.New()
	artwork := seedArtwork(store, artistID, "Dragon Sleeve", "R$ 800,00", true)
	svc := newTestService(store)

	input := CreateBookingInput{
		ArtworkID:     artwork.ID,
		ClientName:    "Maria",
		ClientContact: "11987654321",
		ScheduledAt:   time.Now().Add(48 * time.Hour),
	}
	_, err := svc.CreateBooking(artistID, input)
	require.NoError(t, err)

	input.ClientName = "Joana"
	_, err = svc.CreateBooking(artistID, input)
	assert.ErrorIs(t, err, ErrArtworkUnavailable)

	// the rejected booking leaves nothing behind
	assert.Len(t, store.appointments, 1)
	assert.False(t, store.artworks[artwork.ID].Available)
}

func TestCreateBooking_LostRaceRollsBack(t *testing.T) {
	// availability reads true but a concurrent booking lands between the
	// read and the conditional flip, so the flip affects no row
	store := newMockStore()
	artistID := uuid.New()
	artwork := seedArtwork(store, artistID, "Dragon Sleeve", "R$ 800,00", true)
	svc := newTestService(store)

	store.beforeMark = func() {
		store.mu.Lock()
		store.artworks[artwork.ID].Available = false
		store.mu.Unlock()
	}

	_, err := svc.CreateBooking(artistID, CreateBookingInput{
		ArtworkID:     artwork.ID,
		ClientName:    "Maria",
		ClientContact: "11987654321",
		ScheduledAt:   time.Now().Add(24 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrArtworkUnavailable)

	// the transaction rolled back, the losing appointment is gone
	assert.Empty(t, store.appointments)
}

func TestCreateBooking_Validation(t *testing.T) {
	store := newMockStore()
	artistID := uuid.New()
	artwork := seedArtwork(store, artistID, "Dragon Sleeve", "R$ 800,00", true)
	svc := newTestService(store)

	tests := []struct {
		name  string
		input CreateBookingInput
	}{
		{"empty client name", CreateBookingInput{ArtworkID: artwork.ID, ClientName: "   ", ClientContact: "11987654321"}},
		{"contact too short", CreateBookingInput{ArtworkID: artwork.ID, ClientName: "Maria", ClientContact: "1234"}},
		{"contact too long", CreateBookingInput{ArtworkID: artwork.ID, ClientName: "Maria", ClientContact: "119876543210000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateBooking(artistID, tt.input)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	// rejected input must not touch the store
	assert.Empty(t, store.ops)
	assert.True(t, store.artworks[artwork.ID].Available)
}

func TestCreateBooking_ArtworkNotFound(t *testing.T) {
	store := newMockStore()
	artistID := uuid.New()
	otherArtist := uuid.New()
	artwork := seedArtwork(store, otherArtist, "Dragon Sleeve", "R$ 800,00", true)
	svc := newTestService(store)

	input := CreateBookingInput{
		ArtworkID:     artwork.ID,
		ClientName:    "Maria",
		ClientContact: "11987654321",
		ScheduledAt:   time.Now().Add(24 * time.Hour),
	}
	// another artist's artwork is invisible
	_, err := svc.CreateBooking(artistID, input)
	assert.ErrorIs(t, err, ErrNotFound)

	input.ArtworkID = uuid.New()
	_, err = svc.CreateBooking(artistID, input)
	assert.ErrorIs(t, err, ErrNotFound)
}

// ----------------------------------------------------------------------------
// finalize
// ----------------------------------------------------------------------------

func TestFinalizeBooking_LedgerInsertBeforeDelete(t *testing.T) {
	store := newMockStore()
	artistID := uuid.New()
	artwork := seedArtwork(store, artistID, "Dragon Sleeve", "R$ 800,00", false)
	appointment := seedAppointment(store, artistID, &artwork.ID, "MARIA")
	svc := newTestService(store)

	entry, err := svc.FinalizeBooking(artistID, appointment.ID, "")
	require.NoError(t, err)

	assert.Equal(t, models.LedgerGain, entry.Kind)
	assert.InDelta(t, 800.0, entry.Amount, 0.001)
	assert.Equal(t, "TATTOO: MARIA - DRAGON SLEEVE", entry.Description)

	require.Len(t, store.ledger, 1)
	assert.NotContains(t, store.appointments, appointment.ID)

	// the gain is written before the appointment goes away
	ledgerAt := store.opIndex("create ledger entry")
	deleteAt := store.opIndex("delete appointment")
	require.GreaterOrEqual(t, ledgerAt, 0)
	require.GreaterOrEqual(t, deleteAt, 0)
	assert.Less(t, ledgerAt, deleteAt)

	// finalizing consumes the piece, it does not return to the gallery
	assert.False(t, store.artworks[artwork.ID].Available)
}

func TestFinalizeBooking_ManualAmountWins(t *testing.T) {
	store := newMockStore()
	artistID := uuid.New()
	artwork := seedArtwork(store, artistID, "Freehand", models.PriceOnRequest, false)
	appointment := seedAppointment(store, artistID, &artwork.ID, "MARIA")
	svc := newTestService(store)

	entry, err := svc.FinalizeBooking(artistID, appointment.ID, "R$ 950,00")
	require.NoError(t, err)
	assert.InDelta(t, 950.0, entry.Amount, 0.001)
}

func TestFinalizeBooking_InvalidAmountWritesNothing(t *testing.T) {
	store := newMockStore()
	artistID := uuid.New()
	artwork := seedArtwork(store, artistID, "Freehand", models.PriceOnRequest, false)
	appointment := seedAppointment(store, artistID, &artwork.ID, "MARIA")
	svc := newTestService(store)

	_, err := svc.FinalizeBooking(artistID, appointment.ID, "")
	assert.ErrorIs(t, err, ErrValidation)

	// appointment survives and no gain is recorded
	assert.Contains(t, store.appointments, appointment.ID)
	assert.Empty(t, store.ledger)
}

func TestFinalizeBooking_RollsBackWhenLedgerFails(t *testing.T) {
	store := newMockStore()
	artistID := uuid.New()
	artwork := seedArtwork(store, artistID, "Dragon Sleeve", "R$ 800,00", false)
	appointment := seedAppointment(store, artistID, &artwork.ID, "MARIA")
	store.failLedger = true
	svc := newTestService(store)

	_, err := svc.FinalizeBooking(artistID, appointment.ID, "")
	assert.ErrorIs(t, err, errLedgerDown)

	assert.Contains(t, store.appointments, appointment.ID)
	assert.Empty(t, store.ledger)
}

func TestFinalizeBooking_NotFound(t *testing.T) {
	store := newMockStore()
	svc := newTestService(store)

	_, err := svc.FinalizeBooking(uuid.New(), uuid.New(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

// ----------------------------------------------------------------------------
// cancel
// ----------------------------------------------------------------------------

func TestCancelBooking_RestoreRoundTrip(t *testing.T) {
	store := newMockStore()
	artistID := uuid.New()
	artwork := seedArtwork(store, artistID, "Dragon Sleeve", "R$ 800,00", false)
	appointment := seedAppointment(store, artistID, &artwork.ID, "MARIA")
	svc := newTestService(store)

	err := svc.CancelBooking(artistID, appointment.ID, true)
	require.NoError(t, err)

	assert.NotContains(t, store.appointments, appointment.ID)
	assert.True(t, store.artworks[artwork.ID].Available)

	// cancelling the same appointment again reports not found
	err = svc.CancelBooking(artistID, appointment.ID, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelBooking_WithoutRestore(t *testing.T) {
	store := newMockStore()
	artistID := uuid.New()
	artwork := seedArtwork(store, artistID, "Dragon Sleeve", "R$ 800,00", false)
	appointment := seedAppointment(store, artistID, &artwork.ID, "MARIA")
	svc := newTestService(store)

	err := svc.CancelBooking(artistID, appointment.ID, false)
	require.NoError(t, err)

	assert.NotContains(t, store.appointments, appointment.ID)
	assert.False(t, store.artworks[artwork.ID].Available)
}

func TestCancelBooking_NoLinkedArtwork(t *testing.T) {
	store := newMockStore()
	artistID := uuid.New()
	appointment := seedAppointment(store, artistID, nil, "MARIA")
	svc := newTestService(store)

	// restore on an appointment whose artwork was deleted is a no-op
	err := svc.CancelBooking(artistID, appointment.ID, true)
	require.NoError(t, err)
	assert.NotContains(t, store.appointments, appointment.ID)
}

// ----------------------------------------------------------------------------
// pure helpers
// ----------------------------------------------------------------------------

func TestFinalizeAmount(t *testing.T) {
	fixed := &models.Artwork{Title: "DRAGON SLEEVE", Price: "R$ 800,00"}
	onRequest := &models.Artwork{Title: "FREEHAND", Price: models.PriceOnRequest}

	tests := []struct {
		name    string
		manual  string
		artwork *models.Artwork
		want    float64
		wantErr bool
	}{
		{"derived from artwork price", "", fixed, 800, false},
		{"manual amount wins", "R$ 950,00", fixed, 950, false},
		{"thousands separator", "", &models.Artwork{Price: "R$ 1.234,56"}, 1234.56, false},
		{"on-request price needs manual amount", "", onRequest, 0, true},
		{"manual amount on on-request price", "300", onRequest, 300, false},
		{"no artwork and no amount", "", nil, 0, true},
		{"zero amount rejected", "0", fixed, 0, true},
		{"negative amount rejected", "-50", fixed, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := finalizeAmount(tt.manual, tt.artwork)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			assert.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestGainDescription(t *testing.T) {
	artwork := &models.Artwork{Title: "Dragon Sleeve"}
	assert.Equal(t, "TATTOO: MARIA - DRAGON SLEEVE", gainDescription("Maria", artwork))
	assert.Equal(t, "TATTOO: MARIA - SEM TÍTULO", gainDescription("Maria", nil))
	assert.Equal(t, "TATTOO: MARIA - SEM TÍTULO", gainDescription("Maria", &models.Artwork{Title: "  "}))
}

func TestGroupByDay(t *testing.T) {
	at := func(day, hour int) models.Appointment {
		return models.Appointment{
			ScheduledAt: time.Date(2025, time.April, day, hour, 0, 0, 0, time.UTC),
		}
	}
	appointments := []models.Appointment{
		at(1, 10),
		at(1, 15),
		at(30, 9),
		// outside April 2025, must be skipped
		{ScheduledAt: time.Date(2025, time.May, 1, 10, 0, 0, 0, time.UTC)},
		{ScheduledAt: time.Date(2024, time.April, 1, 10, 0, 0, 0, time.UTC)},
	}

	buckets := GroupByDay(appointments, time.April, 2025)

	assert.Len(t, buckets, 2)
	assert.Len(t, buckets[1], 2)
	assert.Len(t, buckets[30], 1)

	// April has 30 days; no bucket may fall outside 1..30
	for day := range buckets {
		assert.GreaterOrEqual(t, day, 1)
		assert.LessOrEqual(t, day, 30)
	}
	assert.Empty(t, buckets[0])
	assert.Empty(t, buckets[31])
}

func TestGroupByDay_EmptyInput(t *testing.T) {
	buckets := GroupByDay(nil, time.February, 2025)
	assert.Empty(t, buckets)
}
