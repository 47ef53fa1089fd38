package service

import (
	"culturefit_backend/internal/model"
	"culturefit_backend/internal/scoring"
	"culturefit_backend/internal/util"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeQuestionStore serves a fixed ordered questionnaire.
type fakeQuestionStore struct {
	questions []model.Question
}

func (f *fakeQuestionStore) ListOrdered() ([]model.Question, error) {
	return f.questions, nil
}

// fakeInviteStore mimics the repository's atomicity guarantees with a
// mutex: conditional complete, locked partial append.
type fakeInviteStore struct {
	mu         sync.Mutex
	invites    map[uint]*model.Invite
	byToken    map[string]uint
	candidates map[uint]*model.Candidate // keyed by invite id
}

func newFakeInviteStore(invites ...*model.Invite) *fakeInviteStore {
	f := &fakeInviteStore{
		invites:    make(map[uint]*model.Invite),
		byToken:    make(map[string]uint),
		candidates: make(map[uint]*model.Candidate),
	}
	for _, inv := range invites {
		f.invites[inv.ID] = inv
		f.byToken[inv.Token] = inv.ID
	}
	return f
}

func (f *fakeInviteStore) FindByToken(token string) (*model.Invite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.byToken[token]
	if !ok {
		return nil, util.ErrInviteNotFound
	}
	copied := *f.invites[id]
	return &copied, nil
}

func (f *fakeInviteStore) AppendPartial(inviteID uint, pageData []json.RawMessage) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invites[inviteID]
	if !ok {
		return 0, util.ErrInviteNotFound
	}

	var partial []json.RawMessage
	if len(inv.PartialResponses) > 0 {
		if err := json.Unmarshal(inv.PartialResponses, &partial); err != nil {
			return 0, err
		}
	}
	partial = append(partial, pageData...)
	merged, err := json.Marshal(partial)
	if err != nil {
		return 0, err
	}
	inv.PartialResponses = merged
	return len(partial), nil
}

func (f *fakeInviteStore) Complete(inviteID uint, rec *model.Candidate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invites[inviteID]
	if !ok {
		return util.ErrInviteNotFound
	}
	if inv.CompletedAt != nil {
		return util.ErrAlreadyCompleted
	}
	now := time.Now()
	inv.CompletedAt = &now
	inv.Status = model.InviteCompleted
	rec.InviteID = inviteID
	rec.CompletedAt = now
	f.candidates[inviteID] = rec
	return nil
}

func (f *fakeInviteStore) MarkOpened(inviteID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invites[inviteID]
	if !ok {
		return util.ErrInviteNotFound
	}
	if inv.OpenedAt == nil {
		now := time.Now()
		inv.OpenedAt = &now
	}
	return nil
}

func (f *fakeInviteStore) candidateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.candidates)
}

func ko(v float64) *float64 { return &v }

func testQuestions() []model.Question {
	qs := []model.Question{
		{Text: "q1", Trait: "A", Reverse: false},
		{Text: "q2", Trait: "A", Reverse: true, KOThreshold: ko(2)},
		{Text: "q3", Trait: "B", Reverse: false},
	}
	for i := range qs {
		qs[i].ID = uint(i + 1)
	}
	return qs
}

func newTestService(invites ...*model.Invite) (*AssessmentService, *fakeInviteStore) {
	store := newFakeInviteStore(invites...)
	svc := NewAssessmentService(&fakeQuestionStore{questions: testQuestions()}, store)
	return svc, store
}

func liveInvite(id uint, token string) *model.Invite {
	inv := &model.Invite{
		CampaignID: 7,
		Email:      "cand@example.com",
		Token:      token,
		Status:     model.InviteSent,
	}
	inv.ID = id
	return inv
}

func TestCompleteScoresAndPersists(t *testing.T) {
	svc, store := newTestService(liveInvite(1, "tok-1"))

	res, err := svc.Complete(CompleteRequest{
		Token:          "tok-1",
		FinalResponses: []interface{}{float64(4), float64(5), float64(3)},
		CandidateInfo:  CandidateInfo{Name: "Jane", Email: "Jane@Example.com", Experience: 4},
	})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}

	if res.OverallScore != 2.75 {
		t.Errorf("overall = %v, want 2.75", res.OverallScore)
	}
	if res.OverallRisk != scoring.RiskHigh {
		t.Errorf("risk = %v, want High", res.OverallRisk)
	}

	if store.candidateCount() != 1 {
		t.Fatalf("candidate records = %d, want 1", store.candidateCount())
	}
	rec := store.candidates[1]
	if rec.Email != "jane@example.com" {
		t.Errorf("candidate email = %q, want normalized lowercase", rec.Email)
	}
	if rec.OverallRisk != "High" || !rec.KOTriggered {
		t.Errorf("persisted risk=%q ko=%v, want High/true", rec.OverallRisk, rec.KOTriggered)
	}
	if rec.CampaignID != 7 {
		t.Errorf("campaign id = %d, want 7 (inherited from invite)", rec.CampaignID)
	}

	var traitScores map[string]float64
	if err := json.Unmarshal(rec.TraitScores, &traitScores); err != nil {
		t.Fatalf("trait scores not valid JSON: %v", err)
	}
	if traitScores["A"] != 2.5 || traitScores["B"] != 3.0 {
		t.Errorf("trait scores = %v, want A=2.5 B=3.0", traitScores)
	}
}

func TestCompleteUnknownToken(t *testing.T) {
	svc, _ := newTestService(liveInvite(1, "tok-1"))

	_, err := svc.Complete(CompleteRequest{
		Token:          "nope",
		FinalResponses: []interface{}{float64(3)},
		CandidateInfo:  CandidateInfo{Name: "X", Email: "x@example.com"},
	})
	if err != util.ErrInviteNotFound {
		t.Errorf("error = %v, want ErrInviteNotFound", err)
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	svc, store := newTestService(liveInvite(1, "tok-1"))

	req := CompleteRequest{
		Token:          "tok-1",
		FinalResponses: []interface{}{float64(4), float64(2), float64(4)},
		CandidateInfo:  CandidateInfo{Name: "Jane", Email: "jane@example.com"},
	}
	if _, err := svc.Complete(req); err != nil {
		t.Fatalf("first completion failed: %v", err)
	}

	_, err := svc.Complete(req)
	if err != util.ErrAlreadyCompleted {
		t.Errorf("second completion error = %v, want ErrAlreadyCompleted", err)
	}
	if store.candidateCount() != 1 {
		t.Errorf("candidate records = %d after repeat completion, want 1", store.candidateCount())
	}
}

func TestCompleteSkipsInvalidEntries(t *testing.T) {
	svc, _ := newTestService(liveInvite(1, "tok-1"))

	// Second entry is a string, third missing; only q1 contributes.
	res, err := svc.Complete(CompleteRequest{
		Token:          "tok-1",
		FinalResponses: []interface{}{float64(4), "bad"},
		CandidateInfo:  CandidateInfo{Name: "Jane", Email: "jane@example.com"},
	})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if res.OverallScore != 4.0 {
		t.Errorf("overall = %v, want 4.0 from the single valid entry", res.OverallScore)
	}
	if res.OverallRisk != scoring.RiskLow {
		t.Errorf("risk = %v, want Low", res.OverallRisk)
	}
}

func TestCompleteInsufficientData(t *testing.T) {
	svc, store := newTestService(liveInvite(1, "tok-1"))

	_, err := svc.Complete(CompleteRequest{
		Token:          "tok-1",
		FinalResponses: []interface{}{"a", nil, "b"},
		CandidateInfo:  CandidateInfo{Name: "Jane", Email: "jane@example.com"},
	})
	if err != scoring.ErrInsufficientData {
		t.Errorf("error = %v, want ErrInsufficientData", err)
	}
	if store.candidateCount() != 0 {
		t.Errorf("candidate records = %d, want 0 when scoring is rejected", store.candidateCount())
	}

	// The invite must remain completable afterwards.
	if _, err := svc.Complete(CompleteRequest{
		Token:          "tok-1",
		FinalResponses: []interface{}{float64(4), float64(4), float64(4)},
		CandidateInfo:  CandidateInfo{Name: "Jane", Email: "jane@example.com"},
	}); err != nil {
		t.Errorf("completion after rejected scoring failed: %v", err)
	}
}

func TestConcurrentCompletionsProduceOneRecord(t *testing.T) {
	svc, store := newTestService(liveInvite(1, "tok-1"))

	const attempts = 10
	var successes, alreadyCompleted atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Complete(CompleteRequest{
				Token:          "tok-1",
				FinalResponses: []interface{}{float64(4), float64(2), float64(4)},
				CandidateInfo:  CandidateInfo{Name: "Jane", Email: "jane@example.com"},
			})
			switch err {
			case nil:
				successes.Add(1)
			case util.ErrAlreadyCompleted:
				alreadyCompleted.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes.Load() != 1 {
		t.Errorf("successes = %d, want exactly 1", successes.Load())
	}
	if alreadyCompleted.Load() != attempts-1 {
		t.Errorf("already-completed rejections = %d, want %d", alreadyCompleted.Load(), attempts-1)
	}
	if store.candidateCount() != 1 {
		t.Errorf("candidate records = %d, want exactly 1", store.candidateCount())
	}
}

func TestSavePartialAppends(t *testing.T) {
	svc, _ := newTestService(liveInvite(1, "tok-1"))

	page1 := []json.RawMessage{json.RawMessage(`4`), json.RawMessage(`5`)}
	count, err := svc.SavePartial("tok-1", page1)
	if err != nil {
		t.Fatalf("SavePartial returned error: %v", err)
	}
	if count != 2 {
		t.Errorf("count after page 1 = %d, want 2", count)
	}

	page2 := []json.RawMessage{json.RawMessage(`3`)}
	count, err = svc.SavePartial("tok-1", page2)
	if err != nil {
		t.Fatalf("SavePartial returned error: %v", err)
	}
	if count != 3 {
		t.Errorf("count after page 2 = %d, want 3", count)
	}
}

func TestSavePartialConcurrentSavesLoseNothing(t *testing.T) {
	svc, store := newTestService(liveInvite(1, "tok-1"))

	const savers = 8
	var wg sync.WaitGroup
	for i := 0; i < savers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.SavePartial("tok-1", []json.RawMessage{json.RawMessage(`1`)}); err != nil {
				t.Errorf("SavePartial failed: %v", err)
			}
		}()
	}
	wg.Wait()

	inv, err := store.FindByToken("tok-1")
	if err != nil {
		t.Fatalf("FindByToken failed: %v", err)
	}
	var partial []json.RawMessage
	if err := json.Unmarshal(inv.PartialResponses, &partial); err != nil {
		t.Fatalf("partial responses not valid JSON: %v", err)
	}
	if len(partial) != savers {
		t.Errorf("accumulated entries = %d, want %d", len(partial), savers)
	}
}

func TestSavePartialRejectedAfterCompletion(t *testing.T) {
	svc, _ := newTestService(liveInvite(1, "tok-1"))

	if _, err := svc.Complete(CompleteRequest{
		Token:          "tok-1",
		FinalResponses: []interface{}{float64(4), float64(2), float64(4)},
		CandidateInfo:  CandidateInfo{Name: "Jane", Email: "jane@example.com"},
	}); err != nil {
		t.Fatalf("completion failed: %v", err)
	}

	_, err := svc.SavePartial("tok-1", []json.RawMessage{json.RawMessage(`1`)})
	if err != util.ErrAlreadyCompleted {
		t.Errorf("error = %v, want ErrAlreadyCompleted", err)
	}
}

func TestQuestionsForTokenHidesScoringMetadata(t *testing.T) {
	svc, store := newTestService(liveInvite(1, "tok-1"))

	qs, err := svc.QuestionsForToken("tok-1")
	if err != nil {
		t.Fatalf("QuestionsForToken returned error: %v", err)
	}
	if len(qs) != 3 {
		t.Fatalf("questions = %d, want 3", len(qs))
	}
	for i, q := range qs {
		if q.ID != uint(i+1) {
			t.Errorf("question %d id = %d, want ascending ids", i, q.ID)
		}
		if q.Text == "" {
			t.Errorf("question %d has empty text", i)
		}
	}

	inv, _ := store.FindByToken("tok-1")
	if inv.OpenedAt == nil {
		t.Error("opened_at not stamped on first fetch")
	}

	if _, err := svc.QuestionsForToken("missing"); err != util.ErrInviteNotFound {
		t.Errorf("unknown token error = %v, want ErrInviteNotFound", err)
	}
}
