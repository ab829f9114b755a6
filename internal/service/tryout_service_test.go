package service

import (
	"errors"
	"hangul_edu_backend/internal/model"
	"hangul_edu_backend/internal/util"
	"reflect"
	"testing"
	"time"

	"gorm.io/gorm"
)

func question(id uint, correct int, optionIDs ...uint) model.Question {
	q := model.Question{BaseModel: model.BaseModel{ID: id}}
	for i, optID := range optionIDs {
		q.Options = append(q.Options, model.Option{
			BaseModel:  model.BaseModel{ID: optID},
			QuestionID: id,
			IsCorrect:  i == correct,
		})
	}
	return q
}

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func TestScoreAnswers(t *testing.T) {
	questions := []model.Question{
		question(1, 0, 11, 12, 13),
		question(2, 1, 21, 22, 23),
		question(3, 2, 31, 32, 33),
	}

	tests := []struct {
		name    string
		answers []uint
		want    int
	}{
		{"all correct", []uint{11, 22, 33}, 3},
		{"two of three", []uint{11, 21, 33}, 2},
		{"none correct", []uint{12, 21, 31}, 0},
		{"zero answer never matches", []uint{0, 0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreAnswers(questions, tt.answers); got != tt.want {
				t.Errorf("scoreAnswers() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreAnswersDeterministic(t *testing.T) {
	questions := []model.Question{
		question(1, 0, 11, 12),
		question(2, 1, 21, 22),
	}
	answers := []uint{11, 22}

	first := scoreAnswers(questions, answers)
	for i := 0; i < 5; i++ {
		if got := scoreAnswers(questions, answers); got != first {
			t.Fatalf("scoreAnswers() not deterministic: %d then %d", first, got)
		}
	}
}

func TestScoreAnswersQuestionWithoutCorrectOption(t *testing.T) {
	// A broken question contributes zero silently, it never errors and
	// never matches any answer.
	broken := model.Question{BaseModel: model.BaseModel{ID: 9}}
	broken.Options = []model.Option{
		{BaseModel: model.BaseModel{ID: 91}},
		{BaseModel: model.BaseModel{ID: 92}},
	}
	questions := []model.Question{
		question(1, 0, 11, 12),
		broken,
	}

	if got := scoreAnswers(questions, []uint{11, 91}); got != 1 {
		t.Errorf("scoreAnswers() = %d, want 1", got)
	}
}

func TestScoreAnswersUsesFirstCorrectOption(t *testing.T) {
	q := model.Question{BaseModel: model.BaseModel{ID: 1}}
	q.Options = []model.Option{
		{BaseModel: model.BaseModel{ID: 11}, IsCorrect: true},
		{BaseModel: model.BaseModel{ID: 12}, IsCorrect: true},
	}

	if got := scoreAnswers([]model.Question{q}, []uint{12}); got != 0 {
		t.Errorf("second correct option matched, score = %d, want 0", got)
	}
	if got := scoreAnswers([]model.Question{q}, []uint{11}); got != 1 {
		t.Errorf("first correct option missed, score = %d, want 1", got)
	}
}

func participant(userID uint, score *int, submittedAt *time.Time, taken *int) model.TryoutParticipant {
	return model.TryoutParticipant{
		BaseModel:        model.BaseModel{ID: userID},
		UserID:           userID,
		Score:            score,
		SubmittedAt:      submittedAt,
		TimeTakenSeconds: taken,
	}
}

func TestRankLess(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		a, b model.TryoutParticipant
		want bool
	}{
		{
			"higher score wins",
			participant(1, intPtr(8), timePtr(base), intPtr(300)),
			participant(2, intPtr(5), timePtr(base), intPtr(100)),
			true,
		},
		{
			"equal score, faster time wins",
			participant(1, intPtr(5), timePtr(base), intPtr(90)),
			participant(2, intPtr(5), timePtr(base), intPtr(120)),
			true,
		},
		{
			"equal score, slower time loses",
			participant(1, intPtr(5), timePtr(base), intPtr(120)),
			participant(2, intPtr(5), timePtr(base), intPtr(90)),
			false,
		},
		{
			"reported time beats missing time",
			participant(1, intPtr(5), timePtr(base), intPtr(500)),
			participant(2, intPtr(5), timePtr(base), nil),
			true,
		},
		{
			"missing time loses to reported time",
			participant(1, intPtr(5), timePtr(base), nil),
			participant(2, intPtr(5), timePtr(base), intPtr(500)),
			false,
		},
		{
			"no times, earlier submission wins",
			participant(1, intPtr(5), timePtr(base), nil),
			participant(2, intPtr(5), timePtr(base.Add(time.Minute)), nil),
			true,
		},
		{
			"equal on every key is not less",
			participant(1, intPtr(5), timePtr(base), intPtr(90)),
			participant(2, intPtr(5), timePtr(base), intPtr(90)),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rankLess(tt.a, tt.b); got != tt.want {
				t.Errorf("rankLess() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRankParticipantsExcludesNonSubmitters(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	participants := []model.TryoutParticipant{
		participant(1, intPtr(5), timePtr(base), intPtr(90)),
		participant(2, nil, nil, nil),
		participant(3, intPtr(7), timePtr(base), intPtr(200)),
	}

	entries := rankParticipants(participants)
	if len(entries) != 2 {
		t.Fatalf("rankParticipants() returned %d entries, want 2", len(entries))
	}
	for _, e := range entries {
		if e.UserID == 2 {
			t.Errorf("non-submitter ranked at position %d", e.Rank)
		}
	}
}

func TestRankParticipantsOrderingAndRanks(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	participants := []model.TryoutParticipant{
		participant(1, intPtr(5), timePtr(base), intPtr(120)),
		participant(2, intPtr(8), timePtr(base), intPtr(400)),
		participant(3, intPtr(5), timePtr(base), intPtr(90)),
		participant(4, intPtr(8), timePtr(base), intPtr(350)),
	}

	entries := rankParticipants(participants)

	wantOrder := []uint{4, 2, 3, 1}
	for i, e := range entries {
		if e.UserID != wantOrder[i] {
			t.Errorf("position %d: user %d, want %d", i, e.UserID, wantOrder[i])
		}
		if e.Rank != i+1 {
			t.Errorf("position %d: rank %d, want %d", i, e.Rank, i+1)
		}
	}
}

func TestRankParticipantsStableAndIdempotent(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	// Fully tied entries keep their input order.
	participants := []model.TryoutParticipant{
		participant(1, intPtr(5), timePtr(base), intPtr(90)),
		participant(2, intPtr(5), timePtr(base), intPtr(90)),
		participant(3, intPtr(5), timePtr(base), intPtr(90)),
	}

	first := rankParticipants(participants)
	wantOrder := []uint{1, 2, 3}
	for i, e := range first {
		if e.UserID != wantOrder[i] {
			t.Errorf("position %d: user %d, want %d", i, e.UserID, wantOrder[i])
		}
	}

	second := rankParticipants(participants)
	if !reflect.DeepEqual(first, second) {
		t.Error("ranking the same input twice produced different sequences")
	}
}

type fakeTryoutStore struct {
	session     *model.TryoutSession
	participant *model.TryoutParticipant
	submitted   []model.TryoutParticipant

	markResult  bool
	markErr     error
	markCalls   int
	markedScore int
}

func (f *fakeTryoutStore) CreateSession(session *model.TryoutSession) error { return nil }

func (f *fakeTryoutStore) FindSessionByID(id uint) (*model.TryoutSession, error) {
	if f.session == nil || f.session.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.session, nil
}

func (f *fakeTryoutStore) UpdateSession(session *model.TryoutSession) error { return nil }

func (f *fakeTryoutStore) ListSessions(courseID uint) ([]model.TryoutSession, error) {
	return nil, nil
}

func (f *fakeTryoutStore) CreateParticipant(p *model.TryoutParticipant) error { return nil }

func (f *fakeTryoutStore) FindParticipant(sessionID, userID uint) (*model.TryoutParticipant, error) {
	if f.participant == nil || f.participant.SessionID != sessionID || f.participant.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.participant, nil
}

func (f *fakeTryoutStore) ListSubmitted(sessionID uint) ([]model.TryoutParticipant, error) {
	return f.submitted, nil
}

func (f *fakeTryoutStore) MarkSubmitted(participantID uint, score int, submittedAt time.Time, elapsedSeconds int) (bool, error) {
	f.markCalls++
	f.markedScore = score
	return f.markResult, f.markErr
}

type fakeSetStore struct {
	set *model.QuestionSet
}

func (f *fakeSetStore) FindByID(id uint) (*model.QuestionSet, error) {
	if f.set == nil || f.set.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.set, nil
}

func (f *fakeSetStore) FindWithQuestions(id uint) (*model.QuestionSet, error) {
	return f.FindByID(id)
}

type fakeEnrollmentStore struct {
	enrolled bool
}

func (f *fakeEnrollmentStore) IsEnrolled(courseID, userID uint) (bool, error) {
	return f.enrolled, nil
}

// newSubmitFixture builds a service over in-memory stores with an open
// session, an enrolled user 9 joined as participant 42, and a two-question
// set whose correct answers are options 11 and 22.
func newSubmitFixture(now time.Time) (*TryoutService, *fakeTryoutStore) {
	set := &model.QuestionSet{BaseModel: model.BaseModel{ID: 5}}
	set.Questions = []model.Question{
		question(1, 0, 11, 12),
		question(2, 1, 21, 22),
	}

	store := &fakeTryoutStore{
		session: &model.TryoutSession{
			BaseModel:     model.BaseModel{ID: 1},
			QuestionSetID: 5,
			CourseID:      7,
			StartsAt:      now.Add(-time.Hour),
			EndsAt:        now.Add(time.Hour),
		},
		participant: &model.TryoutParticipant{
			BaseModel: model.BaseModel{ID: 42},
			SessionID: 1,
			UserID:    9,
		},
		markResult: true,
	}

	svc := NewTryoutService(store, &fakeSetStore{set: set}, &fakeEnrollmentStore{enrolled: true}, nil, 0)
	return svc, store
}

func TestSubmitGradesAndWritesOnce(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc, store := newSubmitFixture(now)

	result, err := svc.Submit(9, 1, []uint{11, 22}, 300, now)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if result.Score != 2 || result.Total != 2 {
		t.Errorf("Submit() score %d/%d, want 2/2", result.Score, result.Total)
	}
	if store.markCalls != 1 {
		t.Errorf("conditional update ran %d times, want 1", store.markCalls)
	}
	if store.markedScore != 2 {
		t.Errorf("persisted score = %d, want 2", store.markedScore)
	}
}

func TestSubmitRejectsResubmission(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc, store := newSubmitFixture(now)

	earlier := now.Add(-10 * time.Minute)
	store.participant.Score = intPtr(1)
	store.participant.SubmittedAt = &earlier

	_, err := svc.Submit(9, 1, []uint{11, 22}, 300, now)
	if !errors.Is(err, util.ErrAlreadySubmitted) {
		t.Fatalf("Submit() error = %v, want ErrAlreadySubmitted", err)
	}
	if store.markCalls != 0 {
		t.Errorf("conditional update ran %d times for a graded row, want 0", store.markCalls)
	}
}

func TestSubmitConcurrentDuplicateLosesConditionalUpdate(t *testing.T) {
	// Two in-flight submissions can both pass the graded-row check; the
	// WHERE submitted_at IS NULL update then admits exactly one. The loser
	// sees zero affected rows and must surface ErrAlreadySubmitted without
	// writing anything.
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc, store := newSubmitFixture(now)
	store.markResult = false

	_, err := svc.Submit(9, 1, []uint{11, 22}, 300, now)
	if !errors.Is(err, util.ErrAlreadySubmitted) {
		t.Fatalf("Submit() error = %v, want ErrAlreadySubmitted", err)
	}
	if store.markCalls != 1 {
		t.Errorf("conditional update ran %d times, want exactly 1", store.markCalls)
	}
}

func TestSubmitValidationOrder(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(svc *TryoutService, store *fakeTryoutStore)
		userID  uint
		session uint
		answers []uint
		at      time.Time
		wantErr error
	}{
		{
			name:    "unknown session",
			mutate:  func(svc *TryoutService, store *fakeTryoutStore) {},
			userID:  9,
			session: 99,
			answers: []uint{11, 22},
			at:      now,
			wantErr: util.ErrSessionNotFound,
		},
		{
			name:    "never joined",
			mutate:  func(svc *TryoutService, store *fakeTryoutStore) { store.participant = nil },
			userID:  9,
			session: 1,
			answers: []uint{11, 22},
			at:      now,
			wantErr: util.ErrParticipantNotFound,
		},
		{
			name: "not enrolled",
			mutate: func(svc *TryoutService, store *fakeTryoutStore) {
				svc.EnrollmentRepo = &fakeEnrollmentStore{enrolled: false}
			},
			userID:  9,
			session: 1,
			answers: []uint{11, 22},
			at:      now,
			wantErr: util.ErrNotEnrolled,
		},
		{
			name:    "before window opens",
			mutate:  func(svc *TryoutService, store *fakeTryoutStore) {},
			userID:  9,
			session: 1,
			answers: []uint{11, 22},
			at:      now.Add(-2 * time.Hour),
			wantErr: util.ErrSessionNotYetOpen,
		},
		{
			name:    "at window end",
			mutate:  func(svc *TryoutService, store *fakeTryoutStore) {},
			userID:  9,
			session: 1,
			answers: []uint{11, 22},
			at:      now.Add(time.Hour),
			wantErr: util.ErrSessionClosed,
		},
		{
			name:    "answer count mismatch",
			mutate:  func(svc *TryoutService, store *fakeTryoutStore) {},
			userID:  9,
			session: 1,
			answers: []uint{11},
			at:      now,
			wantErr: util.ErrAnswerCountMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newSubmitFixture(now)
			tt.mutate(svc, store)

			_, err := svc.Submit(tt.userID, tt.session, tt.answers, 300, tt.at)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Submit() error = %v, want %v", err, tt.wantErr)
			}
			if store.markCalls != 0 {
				t.Errorf("conditional update ran %d times on a rejected submission, want 0", store.markCalls)
			}
		})
	}
}
