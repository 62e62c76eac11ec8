package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/google/uuid"

	"skill-swap/internal/domain/skill"
	"skill-swap/internal/domain/swap"
	"skill-swap/internal/domain/user"
	"skill-swap/internal/repository"
)

type memSwapRepo struct {
	byID      map[uuid.UUID]swap.SwapRequest
	createErr error
}

func newMemSwapRepo() *memSwapRepo {
	return &memSwapRepo{byID: map[uuid.UUID]swap.SwapRequest{}}
}

func (m *memSwapRepo) Create(_ context.Context, s swap.SwapRequest) (swap.SwapRequest, error) {
	if m.createErr != nil {
		return swap.SwapRequest{}, m.createErr
	}
	now := time.Now().UTC()
	s.Status = swap.StatusPending
	s.CreatedAt = now
	s.UpdatedAt = now
	m.byID[s.ID] = s
	return s, nil
}

func (m *memSwapRepo) GetByID(_ context.Context, id uuid.UUID) (swap.SwapRequest, error) {
	s, ok := m.byID[id]
	if !ok {
		return swap.SwapRequest{}, repository.ErrSwapNotFound
	}
	return s, nil
}

func (m *memSwapRepo) ListByRequester(_ context.Context, userID uuid.UUID) ([]swap.SwapRequest, error) {
	out := []swap.SwapRequest{}
	for _, s := range m.byID {
		if s.RequesterID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSwapRepo) ListByTarget(_ context.Context, userID uuid.UUID) ([]swap.SwapRequest, error) {
	out := []swap.SwapRequest{}
	for _, s := range m.byID {
		if s.TargetID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSwapRepo) UpdateStatusFrom(_ context.Context, id uuid.UUID, from, to swap.Status) (swap.SwapRequest, error) {
	s, ok := m.byID[id]
	if !ok {
		return swap.SwapRequest{}, repository.ErrSwapNotFound
	}
	if s.Status != from {
		return swap.SwapRequest{}, repository.ErrSwapStatusChanged
	}
	s.Status = to
	s.UpdatedAt = time.Now().UTC()
	m.byID[id] = s
	return s, nil
}

type stubUserRepo struct {
	active map[uuid.UUID]bool
}

func (s stubUserRepo) Create(context.Context, user.User) error { return nil }
func (s stubUserRepo) GetByID(context.Context, uuid.UUID) (user.User, error) {
	return user.User{}, user.ErrNotFound
}
func (s stubUserRepo) GetByEmail(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}
func (s stubUserRepo) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }
func (s stubUserRepo) ExistsActive(_ context.Context, id uuid.UUID) (bool, error) {
	return s.active[id], nil
}
func (s stubUserRepo) UpdateProfile(_ context.Context, u user.User) (user.User, error) {
	return u, nil
}
func (s stubUserRepo) TouchLastLogin(context.Context, uuid.UUID) error { return nil }

type stubSkillRepo struct {
	known map[uuid.UUID]bool
}

func (s stubSkillRepo) ListAll(context.Context) ([]skill.Skill, error) { return nil, nil }
func (s stubSkillRepo) Search(context.Context, string) ([]skill.Skill, error) {
	return nil, nil
}
func (s stubSkillRepo) GetByID(context.Context, uuid.UUID) (skill.Skill, error) {
	return skill.Skill{}, repository.ErrSkillNotFound
}
func (s stubSkillRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	return s.known[id], nil
}
func (s stubSkillRepo) Create(_ context.Context, sk skill.Skill) (skill.Skill, error) {
	return sk, nil
}

type recordingNotifier struct {
	sent []sentEvent
}

type sentEvent struct {
	userID    uuid.UUID
	eventType string
}

func (n *recordingNotifier) SendToUser(userID uuid.UUID, eventType string, _ any) {
	n.sent = append(n.sent, sentEvent{userID: userID, eventType: eventType})
}

type swapFixture struct {
	uc        *Swap
	repo      *memSwapRepo
	notifier  *recordingNotifier
	requester uuid.UUID
	target    uuid.UUID
	skillX    uuid.UUID
	skillY    uuid.UUID
}

func newSwapFixture() swapFixture {
	requester := uuid.New()
	target := uuid.New()
	skillX := uuid.New()
	skillY := uuid.New()

	repo := newMemSwapRepo()
	notifier := &recordingNotifier{}
	uc := NewSwapUsecase(
		repo,
		stubUserRepo{active: map[uuid.UUID]bool{requester: true, target: true}},
		stubSkillRepo{known: map[uuid.UUID]bool{skillX: true, skillY: true}},
		notifier,
		log.New(io.Discard, "", 0),
	)

	return swapFixture{uc: uc, repo: repo, notifier: notifier, requester: requester, target: target, skillX: skillX, skillY: skillY}
}

func (f swapFixture) create(t *testing.T) swap.SwapRequest {
	t.Helper()
	created, err := f.uc.Create(context.Background(), f.requester, CreateSwapInput{
		TargetID:         f.target,
		RequesterSkillID: &f.skillX,
		TargetSkillID:    &f.skillY,
		Message:          "hi",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return created
}

func TestSwapCreate_PendingWithEqualTimestamps(t *testing.T) {
	f := newSwapFixture()
	created := f.create(t)

	if created.Status != swap.StatusPending {
		t.Fatalf("status = %s, want pending", created.Status)
	}
	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("createdAt %v != updatedAt %v", created.CreatedAt, created.UpdatedAt)
	}
	if created.RequesterSkillID == nil || *created.RequesterSkillID != f.skillX {
		t.Fatal("requester skill not persisted")
	}
	if created.TargetSkillID == nil || *created.TargetSkillID != f.skillY {
		t.Fatal("target skill not persisted")
	}
	if created.Message != "hi" {
		t.Fatalf("message = %q", created.Message)
	}

	if len(f.notifier.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(f.notifier.sent))
	}
	if got := f.notifier.sent[0]; got.userID != f.target || got.eventType != EventNewSwapRequest {
		t.Fatalf("notification = %+v", got)
	}
}

func TestSwapCreate_SelfSwapRejected(t *testing.T) {
	f := newSwapFixture()
	_, err := f.uc.Create(context.Background(), f.requester, CreateSwapInput{TargetID: f.requester})
	if !errors.Is(err, ErrSelfSwap) {
		t.Fatalf("expected ErrSelfSwap, got %v", err)
	}
}

func TestSwapCreate_UnknownTarget(t *testing.T) {
	f := newSwapFixture()
	_, err := f.uc.Create(context.Background(), f.requester, CreateSwapInput{TargetID: uuid.New()})
	if !errors.Is(err, ErrTargetNotFound) {
		t.Fatalf("expected ErrTargetNotFound, got %v", err)
	}
}

func TestSwapCreate_UnknownSkill(t *testing.T) {
	f := newSwapFixture()
	unknown := uuid.New()
	_, err := f.uc.Create(context.Background(), f.requester, CreateSwapInput{
		TargetID:         f.target,
		RequesterSkillID: &unknown,
	})
	if !errors.Is(err, ErrSwapSkillNotFound) {
		t.Fatalf("expected ErrSwapSkillNotFound, got %v", err)
	}
}

func TestSwapCreate_MissingIDs(t *testing.T) {
	f := newSwapFixture()
	_, err := f.uc.Create(context.Background(), f.requester, CreateSwapInput{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSwapUpdateStatus_HappyPathLifecycle(t *testing.T) {
	f := newSwapFixture()
	created := f.create(t)

	accepted, err := f.uc.UpdateStatus(context.Background(), created.ID, swap.StatusAccepted, f.target)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if accepted.Status != swap.StatusAccepted {
		t.Fatalf("status = %s", accepted.Status)
	}

	completed, err := f.uc.UpdateStatus(context.Background(), created.ID, swap.StatusCompleted, f.requester)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != swap.StatusCompleted {
		t.Fatalf("status = %s", completed.Status)
	}

	// Terminal: no way out of completed.
	_, err = f.uc.UpdateStatus(context.Background(), created.ID, swap.StatusCancelled, f.requester)
	if !errors.Is(err, swap.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	// Creation notice to target, accept notice to requester, complete notice to target.
	want := []sentEvent{
		{userID: f.target, eventType: EventNewSwapRequest},
		{userID: f.requester, eventType: EventSwapStatusUpdate},
		{userID: f.target, eventType: EventSwapStatusUpdate},
	}
	if len(f.notifier.sent) != len(want) {
		t.Fatalf("notifications = %+v", f.notifier.sent)
	}
	for i := range want {
		if f.notifier.sent[i] != want[i] {
			t.Fatalf("notification[%d] = %+v, want %+v", i, f.notifier.sent[i], want[i])
		}
	}
}

func TestSwapUpdateStatus_RejectIsTerminal(t *testing.T) {
	f := newSwapFixture()
	created := f.create(t)

	rejected, err := f.uc.UpdateStatus(context.Background(), created.ID, swap.StatusRejected, f.target)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != swap.StatusRejected {
		t.Fatalf("status = %s", rejected.Status)
	}

	for _, caller := range []uuid.UUID{f.requester, f.target} {
		for _, next := range []swap.Status{swap.StatusAccepted, swap.StatusCompleted, swap.StatusCancelled, swap.StatusPending} {
			if _, err := f.uc.UpdateStatus(context.Background(), created.ID, next, caller); !errors.Is(err, swap.ErrInvalidTransition) {
				t.Fatalf("expected ErrInvalidTransition for %s by %s, got %v", next, caller, err)
			}
		}
	}
}

func TestSwapUpdateStatus_SkipToCompletedFails(t *testing.T) {
	f := newSwapFixture()
	created := f.create(t)

	for _, caller := range []uuid.UUID{f.requester, f.target} {
		_, err := f.uc.UpdateStatus(context.Background(), created.ID, swap.StatusCompleted, caller)
		if !errors.Is(err, swap.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	}
}

func TestSwapUpdateStatus_RequesterCannotAccept(t *testing.T) {
	f := newSwapFixture()
	created := f.create(t)

	_, err := f.uc.UpdateStatus(context.Background(), created.ID, swap.StatusAccepted, f.requester)
	if !errors.Is(err, swap.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestSwapUpdateStatus_NonPartyAlwaysForbidden(t *testing.T) {
	f := newSwapFixture()
	created := f.create(t)
	stranger := uuid.New()

	for _, next := range []swap.Status{swap.StatusAccepted, swap.StatusRejected, swap.StatusCancelled, swap.StatusCompleted} {
		if _, err := f.uc.UpdateStatus(context.Background(), created.ID, next, stranger); !errors.Is(err, swap.ErrNotParty) {
			t.Fatalf("expected ErrNotParty for %s, got %v", next, err)
		}
	}
}

func TestSwapUpdateStatus_UnknownSwap(t *testing.T) {
	f := newSwapFixture()
	_, err := f.uc.UpdateStatus(context.Background(), uuid.New(), swap.StatusAccepted, f.target)
	if !errors.Is(err, ErrSwapNotFound) {
		t.Fatalf("expected ErrSwapNotFound, got %v", err)
	}
}

func TestSwapUpdateStatus_UnknownStatusRejected(t *testing.T) {
	f := newSwapFixture()
	created := f.create(t)

	_, err := f.uc.UpdateStatus(context.Background(), created.ID, swap.Status("archived"), f.target)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

// A racing transition that validated against pending but lost the write
// surfaces as a conflict, never a silent overwrite.
func TestSwapUpdateStatus_LostRaceIsConflict(t *testing.T) {
	f := newSwapFixture()
	created := f.create(t)

	raced := &racingSwapRepo{memSwapRepo: f.repo, winner: swap.StatusRejected}
	uc := NewSwapUsecase(raced, stubUserRepo{}, stubSkillRepo{}, f.notifier, log.New(io.Discard, "", 0))

	_, err := uc.UpdateStatus(context.Background(), created.ID, swap.StatusAccepted, f.target)
	if !errors.Is(err, ErrSwapConflict) {
		t.Fatalf("expected ErrSwapConflict, got %v", err)
	}

	got, err := f.repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != swap.StatusRejected {
		t.Fatalf("winner's status overwritten: %s", got.Status)
	}
}

// racingSwapRepo applies a competing transition between the usecase's read
// and its conditional write.
type racingSwapRepo struct {
	*memSwapRepo
	winner swap.Status
	raced  bool
}

func (r *racingSwapRepo) GetByID(ctx context.Context, id uuid.UUID) (swap.SwapRequest, error) {
	s, err := r.memSwapRepo.GetByID(ctx, id)
	if err != nil {
		return s, err
	}
	if !r.raced {
		r.raced = true
		if _, err := r.memSwapRepo.UpdateStatusFrom(ctx, id, s.Status, r.winner); err != nil {
			return swap.SwapRequest{}, err
		}
	}
	return s, nil
}

func TestSwapListSentAndReceived(t *testing.T) {
	f := newSwapFixture()
	created := f.create(t)

	sent, err := f.uc.ListSent(context.Background(), f.requester)
	if err != nil {
		t.Fatalf("list sent: %v", err)
	}
	if len(sent) != 1 || sent[0].ID != created.ID {
		t.Fatalf("sent = %+v", sent)
	}

	received, err := f.uc.ListReceived(context.Background(), f.target)
	if err != nil {
		t.Fatalf("list received: %v", err)
	}
	if len(received) != 1 || received[0].ID != created.ID {
		t.Fatalf("received = %+v", received)
	}

	if got, _ := f.uc.ListSent(context.Background(), f.target); len(got) != 0 {
		t.Fatalf("target should have no sent swaps, got %+v", got)
	}
}

func TestSwapCreate_SucceedsWithoutNotifier(t *testing.T) {
	f := newSwapFixture()
	uc := NewSwapUsecase(
		f.repo,
		stubUserRepo{active: map[uuid.UUID]bool{f.target: true}},
		stubSkillRepo{},
		nil,
		log.New(io.Discard, "", 0),
	)

	created, err := uc.Create(context.Background(), f.requester, CreateSwapInput{TargetID: f.target})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != swap.StatusPending {
		t.Fatalf("status = %s", created.Status)
	}
}
