package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"medgpt-backend/internal/assistant"
	"medgpt-backend/internal/catalog"
	"medgpt-backend/internal/config"
	"medgpt-backend/internal/crypto"
	"medgpt-backend/internal/models"
	"medgpt-backend/internal/store"
	"medgpt-backend/internal/store/memory"

	"github.com/google/uuid"
)

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.New()
	if err := catalog.Seed(context.Background(), s); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return s
}

func newUser(t *testing.T, s store.Store) uuid.UUID {
	t.Helper()
	u := &models.User{ID: uuid.New(), Email: uuid.NewString() + "@example.com", HashedPassword: "x"}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u.ID
}

func TestAuthSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{JWTSecret: "test-secret", TokenExpiration: time.Hour}
	svc := NewAuthService(memory.New(), cfg)

	user, err := svc.Signup(ctx, "  Ada@Example.com ", "correct horse battery")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Errorf("email not normalized: %q", user.Email)
	}
	if _, err := svc.Signup(ctx, "ada@example.com", "another password"); !errors.Is(err, ErrUserAlreadyExists) {
		t.Errorf("duplicate signup: got %v", err)
	}
	if _, err := svc.Signup(ctx, "", "x"); !errors.Is(err, ErrValidation) {
		t.Errorf("empty email: got %v", err)
	}

	token, got, err := svc.Login(ctx, "ADA@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got.ID != user.ID || token == "" {
		t.Errorf("Login = %q, %+v", token, got)
	}

	tests := []struct {
		name, email, password string
	}{
		{"wrong password", "ada@example.com", "wrong"},
		{"unknown user", "bob@example.com", "correct horse battery"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.Login(ctx, tt.email, tt.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("got %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestMedicationList(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	svc := NewMedicationService(s)
	userID := newUser(t, s)
	if err := s.AddBookmark(ctx, userID, "789"); err != nil {
		t.Fatalf("AddBookmark: %v", err)
	}

	all, err := svc.List(ctx, userID, "", "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 10 {
		t.Fatalf("got %d medications, want 10", len(all))
	}
	for _, m := range all {
		if m.IsBookmarked != (m.ID == "789") {
			t.Errorf("%s IsBookmarked = %v", m.Name, m.IsBookmarked)
		}
	}

	anon, err := svc.List(ctx, uuid.Nil, "Blood Pressure", "")
	if err != nil {
		t.Fatalf("List by category: %v", err)
	}
	if len(anon) != 3 {
		t.Errorf("got %d blood pressure medications, want 3", len(anon))
	}
}

func TestMedicationGet(t *testing.T) {
	svc := NewMedicationService(seededStore(t))
	got, err := svc.Get(context.Background(), uuid.Nil, "901")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Sertraline" || got.IsBookmarked {
		t.Errorf("Get = %+v", got)
	}
	if _, err := svc.Get(context.Background(), uuid.Nil, "nope"); !errors.Is(err, ErrMedicationNotFound) {
		t.Errorf("unknown id: got %v", err)
	}
}

func TestMedicationCompare(t *testing.T) {
	svc := NewMedicationService(seededStore(t))
	ctx := context.Background()

	t.Run("single", func(t *testing.T) {
		got, err := svc.Compare(ctx, []string{"456"})
		if err != nil {
			t.Fatalf("Compare: %v", err)
		}
		if len(got.Medications) != 1 || len(got.Interactions) != 0 {
			t.Errorf("Compare = %+v", got)
		}
	})

	t.Run("with interaction", func(t *testing.T) {
		got, err := svc.Compare(ctx, []string{"678", "123", "456"})
		if err != nil {
			t.Fatalf("Compare: %v", err)
		}
		if got.Medications[0].Name != "Amlodipine" || got.Medications[1].Name != "Lisinopril" {
			t.Errorf("order not preserved: %+v", got.Medications)
		}
		if len(got.Interactions) != 1 || got.Interactions[0].Severity != models.SeverityModerate {
			t.Errorf("interactions = %+v", got.Interactions)
		}
	})

	t.Run("duplicate", func(t *testing.T) {
		_, err := svc.Compare(ctx, []string{"123", "123"})
		var dup *DuplicateComparisonError
		if !errors.As(err, &dup) || !errors.Is(err, ErrDuplicateMedication) {
			t.Fatalf("got %v, want DuplicateComparisonError", err)
		}
		if dup.Error() != "Lisinopril is already in your comparison" {
			t.Errorf("message = %q", dup.Error())
		}
	})

	errCases := []struct {
		name string
		ids  []string
		want error
	}{
		{"too many", []string{"123", "456", "789", "012"}, ErrTooManyCompared},
		{"unknown", []string{"123", "999"}, ErrMedicationNotFound},
		{"empty", []string{" ", ""}, ErrValidation},
	}
	for _, tt := range errCases {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Compare(ctx, tt.ids); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMedicationSearch(t *testing.T) {
	svc := NewMedicationService(seededStore(t))
	ctx := context.Background()

	tests := []struct {
		name      string
		query     string
		kind      string
		wantMeds  int
		wantConds int
	}{
		{"all by category", "pressure", "", 3, 1},
		{"medications only", "pressure", SearchMedications, 3, 0},
		{"conditions only", "diabetes", SearchConditions, 0, 1},
		{"brand name", "Zoloft", SearchAll, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Search(ctx, uuid.Nil, tt.query, tt.kind)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if len(got.Medications) != tt.wantMeds || len(got.Conditions) != tt.wantConds {
				t.Errorf("got %d medications and %d conditions, want %d and %d",
					len(got.Medications), len(got.Conditions), tt.wantMeds, tt.wantConds)
			}
		})
	}

	if _, err := svc.Search(ctx, uuid.Nil, "   ", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("empty query: got %v", err)
	}
	if _, err := svc.Search(ctx, uuid.Nil, "x", "people"); !errors.Is(err, ErrValidation) {
		t.Errorf("bad type: got %v", err)
	}
}

func TestConditionMedications(t *testing.T) {
	svc := NewMedicationService(seededStore(t))
	ctx := context.Background()

	conds, err := svc.Conditions(ctx)
	if err != nil || len(conds) != 5 {
		t.Fatalf("Conditions = %d, %v", len(conds), err)
	}
	meds, err := svc.ConditionMedications(ctx, uuid.Nil, "111")
	if err != nil {
		t.Fatalf("ConditionMedications: %v", err)
	}
	if len(meds) != 3 {
		t.Errorf("hypertension has %d medications, want 3", len(meds))
	}
	if _, err := svc.ConditionMedications(ctx, uuid.Nil, "000"); !errors.Is(err, ErrConditionNotFound) {
		t.Errorf("unknown condition: got %v", err)
	}
}

type fakeNotifier struct {
	got chan *models.InteractionReport
}

func (f *fakeNotifier) NotifySevereInteraction(_ context.Context, r *models.InteractionReport) error {
	f.got <- r
	return nil
}

func TestInteractionCheck(t *testing.T) {
	ctx := context.Background()
	n := &fakeNotifier{got: make(chan *models.InteractionReport, 1)}
	svc := NewInteractionService(seededStore(t), n)

	report, err := svc.Check(ctx, []string{"lisinopril", "Norvasc"}, false)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if report.HighestSeverity != models.SeverityModerate || len(report.Results) != 1 {
		t.Errorf("report = %+v", report)
	}
	select {
	case <-n.got:
		t.Error("notifier called for a moderate report")
	default:
	}

	report, err = svc.Check(ctx, []string{"901", "Gabapentin"}, false)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if report.HighestSeverity != models.SeveritySevere {
		t.Errorf("highest = %s, want severe", report.HighestSeverity)
	}
	select {
	case got := <-n.got:
		if got != report {
			t.Error("notifier received a different report")
		}
	case <-time.After(2 * time.Second):
		t.Error("notifier not called for a severe report")
	}
}

func TestInteractionCheckIncludeNone(t *testing.T) {
	svc := NewInteractionService(seededStore(t), nil)
	report, err := svc.Check(context.Background(), []string{"901", "789", "456"}, true)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if report.CheckedPairs != 3 || len(report.Results) != 3 {
		t.Errorf("pairs=%d results=%d, want 3 and 3", report.CheckedPairs, len(report.Results))
	}
	if report.HighestSeverity != models.SeverityNone {
		t.Errorf("highest = %s, want none", report.HighestSeverity)
	}
}

func TestInteractionCheckErrors(t *testing.T) {
	svc := NewInteractionService(seededStore(t), nil)
	ctx := context.Background()

	_, err := svc.Check(ctx, []string{"123", "aspirin", "unobtainium"}, false)
	var unknown *UnknownMedicationError
	if !errors.As(err, &unknown) || !errors.Is(err, ErrUnknownMedication) {
		t.Fatalf("got %v, want UnknownMedicationError", err)
	}
	if strings.Join(unknown.Names, ",") != "aspirin,unobtainium" {
		t.Errorf("unknown names = %v", unknown.Names)
	}

	if _, err := svc.Check(ctx, []string{"123"}, false); !errors.Is(err, ErrTooFewMedications) {
		t.Errorf("one medication: got %v", err)
	}
	if _, err := svc.Check(ctx, []string{"123", "Zestril"}, false); !errors.Is(err, ErrDuplicateMedication) {
		t.Errorf("duplicate by brand: got %v", err)
	}
}

func TestBookmarks(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	svc := NewBookmarkService(s)
	userID := newUser(t, s)

	for _, id := range []string{"123", "901"} {
		if err := svc.Add(ctx, userID, id); err != nil {
			t.Fatalf("Add %s: %v", id, err)
		}
	}
	if err := svc.Add(ctx, userID, "123"); !errors.Is(err, ErrBookmarkExists) {
		t.Errorf("duplicate: got %v", err)
	}
	if err := svc.Add(ctx, userID, "nope"); !errors.Is(err, ErrMedicationNotFound) {
		t.Errorf("unknown medication: got %v", err)
	}

	all, err := svc.List(ctx, userID, "")
	if err != nil || len(all) != 2 {
		t.Fatalf("List = %d, %v", len(all), err)
	}
	for _, m := range all {
		if !m.IsBookmarked {
			t.Errorf("%s not flagged as bookmarked", m.Name)
		}
	}
	filtered, err := svc.List(ctx, userID, "mental")
	if err != nil || len(filtered) != 1 || filtered[0].ID != "901" {
		t.Errorf("List(mental) = %+v, %v", filtered, err)
	}

	if err := svc.Remove(ctx, userID, "123"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := svc.Remove(ctx, userID, "123"); !errors.Is(err, ErrBookmarkNotFound) {
		t.Errorf("second Remove: got %v", err)
	}
	n, err := svc.Clear(ctx, userID)
	if err != nil || n != 1 {
		t.Errorf("Clear = %d, %v", n, err)
	}
	if empty, _ := svc.List(ctx, userID, ""); len(empty) != 0 {
		t.Errorf("bookmarks left after Clear: %+v", empty)
	}
}

type fakeReplier struct {
	mu    sync.Mutex
	reply string
	err   error
	calls int
}

func (f *fakeReplier) Reply(_ context.Context, history []models.ChatMessage) (*assistant.Completion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &assistant.Completion{Text: f.reply, Provider: "fake"}, nil
}

func newChatService(t *testing.T, r Replier) (*ChatService, store.Store, uuid.UUID) {
	t.Helper()
	s := memory.New()
	key, err := crypto.NewRandomKey()
	if err != nil {
		t.Fatalf("NewRandomKey: %v", err)
	}
	sealer, err := crypto.NewSealer(key)
	if err != nil {
		t.Fatalf("NewSealer: %v", err)
	}
	return NewChatService(s, r, sealer), s, newUser(t, s)
}

func TestCreateChat(t *testing.T) {
	ctx := context.Background()
	svc, _, userID := newChatService(t, &fakeReplier{reply: "**Metformin** lowers blood sugar."})

	empty, err := svc.CreateChat(ctx, userID, models.CreateChatRequest{})
	if err != nil {
		t.Fatalf("CreateChat: %v", err)
	}
	if empty.Title != defaultChatTitle || len(empty.Messages) != 1 || empty.Messages[0].Content != Greeting {
		t.Errorf("empty chat = %+v", empty)
	}

	first := "What does metformin do?"
	chat, err := svc.CreateChat(ctx, userID, models.CreateChatRequest{InitialMessage: &first})
	if err != nil {
		t.Fatalf("CreateChat: %v", err)
	}
	if chat.Title != first {
		t.Errorf("title = %q, want the first message", chat.Title)
	}
	if len(chat.Messages) != 3 || chat.AssistantError {
		t.Fatalf("messages = %+v", chat.Messages)
	}
	if !strings.Contains(chat.Messages[2].ContentHTML, "<strong>Metformin</strong>") {
		t.Errorf("assistant reply not rendered: %q", chat.Messages[2].ContentHTML)
	}
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()
	r := &fakeReplier{reply: "Take it with food."}
	svc, s, userID := newChatService(t, r)

	chat, err := svc.CreateChat(ctx, userID, models.CreateChatRequest{})
	if err != nil {
		t.Fatalf("CreateChat: %v", err)
	}
	got, err := svc.SendMessage(ctx, userID, chat.ID, "  How should I take metformin?  ")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if len(got.Messages) != 3 || got.Messages[1].Content != "How should I take metformin?" {
		t.Errorf("messages = %+v", got.Messages)
	}

	stored, err := s.GetChatByID(ctx, chat.ID, userID)
	if err != nil {
		t.Fatalf("GetChatByID: %v", err)
	}
	if strings.Contains(string(stored.ChatData), "metformin") {
		t.Error("transcript stored in plaintext")
	}

	if _, err := svc.SendMessage(ctx, userID, chat.ID, "   "); !errors.Is(err, ErrValidation) {
		t.Errorf("blank message: got %v", err)
	}
	if _, err := svc.SendMessage(ctx, newUser(t, s), chat.ID, "hi"); !errors.Is(err, ErrChatNotFound) {
		t.Errorf("other user's chat: got %v", err)
	}
}

func TestSendMessageAssistantFailure(t *testing.T) {
	ctx := context.Background()
	svc, _, userID := newChatService(t, &fakeReplier{err: assistant.ErrUnexpectedResponse})

	chat, err := svc.CreateChat(ctx, userID, models.CreateChatRequest{})
	if err != nil {
		t.Fatalf("CreateChat: %v", err)
	}
	got, err := svc.SendMessage(ctx, userID, chat.ID, "hello")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	last := got.Messages[len(got.Messages)-1]
	if !got.AssistantError || !last.Error || last.Content != Apology {
		t.Errorf("failure not reported: %+v", got)
	}

	reloaded, err := svc.GetChat(ctx, userID, chat.ID)
	if err != nil {
		t.Fatalf("GetChat: %v", err)
	}
	if len(reloaded.Messages) != 3 || !reloaded.Messages[2].Error {
		t.Errorf("apology not persisted: %+v", reloaded.Messages)
	}
}

func TestSendMessageConcurrent(t *testing.T) {
	ctx := context.Background()
	svc, _, userID := newChatService(t, &fakeReplier{reply: "ok"})
	chat, err := svc.CreateChat(ctx, userID, models.CreateChatRequest{})
	if err != nil {
		t.Fatalf("CreateChat: %v", err)
	}

	const senders = 8
	var wg sync.WaitGroup
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.SendMessage(ctx, userID, chat.ID, "question"); err != nil {
				t.Errorf("SendMessage: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := svc.GetChat(ctx, userID, chat.ID)
	if err != nil {
		t.Fatalf("GetChat: %v", err)
	}
	if want := 1 + 2*senders; len(got.Messages) != want {
		t.Errorf("got %d messages, want %d", len(got.Messages), want)
	}
}

func TestListAndDeleteChats(t *testing.T) {
	ctx := context.Background()
	svc, _, userID := newChatService(t, &fakeReplier{reply: "ok"})
	for i := 0; i < 3; i++ {
		if _, err := svc.CreateChat(ctx, userID, models.CreateChatRequest{}); err != nil {
			t.Fatalf("CreateChat: %v", err)
		}
	}

	list, err := svc.ListChats(ctx, userID, 0, 0)
	if err != nil || len(list.Chats) != 3 {
		t.Fatalf("ListChats = %+v, %v", list, err)
	}
	if list.Chats[0].MessageCount != 1 {
		t.Errorf("message count = %d, want 1", list.Chats[0].MessageCount)
	}
	page, err := svc.ListChats(ctx, userID, 2, 2)
	if err != nil || len(page.Chats) != 1 {
		t.Errorf("second page = %+v, %v", page, err)
	}

	if err := svc.DeleteChat(ctx, userID, list.Chats[0].ID); err != nil {
		t.Fatalf("DeleteChat: %v", err)
	}
	if err := svc.DeleteChat(ctx, userID, list.Chats[0].ID); !errors.Is(err, ErrChatNotFound) {
		t.Errorf("second DeleteChat: got %v", err)
	}
	if _, err := svc.GetChat(ctx, userID, list.Chats[0].ID); !errors.Is(err, ErrChatNotFound) {
		t.Errorf("GetChat after delete: got %v", err)
	}
}

func TestTitleFrom(t *testing.T) {
	long := strings.Repeat("a", 70)
	tests := []struct {
		in, want string
	}{
		{"", defaultChatTitle},
		{"Is ibuprofen safe?\nI take lisinopril.", "Is ibuprofen safe?"},
		{long, strings.Repeat("a", 60) + "..."},
	}
	for _, tt := range tests {
		if got := titleFrom(tt.in); got != tt.want {
			t.Errorf("titleFrom(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
