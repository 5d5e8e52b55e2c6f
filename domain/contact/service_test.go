package contact

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/nataa-app/landing-gateway/internal/log"
	"github.com/nataa-app/landing-gateway/internal/models"
	apperrors "github.com/nataa-app/landing-gateway/pkg/errors"
	"github.com/nataa-app/landing-gateway/pkg/mailer"
	"github.com/nataa-app/landing-gateway/pkg/notify"
	"github.com/nataa-app/landing-gateway/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testInbox = "contact@nataa.app"

type recordingMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

func (m *recordingMailer) Sent() []mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mailer.Message(nil), m.sent...)
}

func TestContactService_SubmitContact(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	logger := log.NewLoggerWithJSONOutput()

	t.Run("stores trimmed message and mails the inbox", func(t *testing.T) {
		mockRepo := NewMockContactRepository(ctrl)
		m := &recordingMailer{}
		service := NewContactService(logger, mockRepo, m, testInbox)

		mockRepo.EXPECT().Configured().Return(true)
		mockRepo.EXPECT().
			CreateMessage(gomock.Any(), &models.ContactMessage{
				Name:    "Ada",
				Email:   "ada@example.com",
				Message: "Hello there",
				Source:  models.SourceLanding,
			}).
			Return(nil)

		err := service.SubmitContact(context.Background(), &SubmitContactRequest{
			Name:    "  Ada ",
			Email:   " ada@example.com ",
			Message: "\tHello there\n",
		})

		require.NoError(t, err)
		sent := m.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, testInbox, sent[0].To)
		assert.Equal(t, "ada@example.com", sent[0].ReplyTo)
		assert.Equal(t, "Contact form: Ada", sent[0].Subject)
		assert.Equal(t, "Hello there\n\nFrom: Ada <ada@example.com>", sent[0].Text)
	})

	t.Run("missing fields are rejected before any side effect", func(t *testing.T) {
		mockRepo := NewMockContactRepository(ctrl)
		m := &recordingMailer{}
		service := NewContactService(logger, mockRepo, m, testInbox)

		for _, req := range []*SubmitContactRequest{
			nil,
			{},
			{Name: "Ada", Email: "ada@example.com"},
			{Name: "   ", Email: "ada@example.com", Message: "hi"},
		} {
			err := service.SubmitContact(context.Background(), req)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidRequest))
			assert.Equal(t, MsgMissingFields, apperrors.GetHumanReadableMessage(err))
		}
		assert.Empty(t, m.Sent())
	})

	t.Run("invalid email is rejected", func(t *testing.T) {
		mockRepo := NewMockContactRepository(ctrl)
		service := NewContactService(logger, mockRepo, nil, testInbox)

		err := service.SubmitContact(context.Background(), &SubmitContactRequest{
			Name: "Ada", Email: "not-an-email", Message: "hi",
		})

		require.Error(t, err)
		assert.Equal(t, MsgInvalidEmail, apperrors.GetHumanReadableMessage(err))
	})

	t.Run("unconfigured store is a configuration error", func(t *testing.T) {
		mockRepo := NewMockContactRepository(ctrl)
		m := &recordingMailer{}
		service := NewContactService(logger, mockRepo, m, testInbox)

		mockRepo.EXPECT().Configured().Return(false)

		err := service.SubmitContact(context.Background(), &SubmitContactRequest{
			Name: "Ada", Email: "ada@example.com", Message: "hi",
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConfiguration))
		assert.Equal(t, store.MsgNotConfigured, apperrors.GetHumanReadableMessage(err))
		assert.Empty(t, m.Sent())
	})

	t.Run("mail failure still stores the message", func(t *testing.T) {
		mockRepo := NewMockContactRepository(ctrl)
		m := &recordingMailer{err: apperrors.NewNotificationError("smtp down", errors.New("dial tcp"))}
		service := NewContactService(logger, mockRepo, m, testInbox)

		mockRepo.EXPECT().Configured().Return(true)
		mockRepo.EXPECT().CreateMessage(gomock.Any(), gomock.Any()).Return(nil)

		err := service.SubmitContact(context.Background(), &SubmitContactRequest{
			Name: "Ada", Email: "ada@example.com", Message: "hi",
		})

		assert.NoError(t, err)
		assert.Len(t, m.Sent(), 1)
	})

	t.Run("notification is attempted before the message is stored", func(t *testing.T) {
		for name, m := range map[string]*recordingMailer{
			"mail accepted": {},
			"mail rejected": {err: apperrors.NewNotificationError("smtp down", errors.New("dial tcp"))},
		} {
			t.Run(name, func(t *testing.T) {
				mockRepo := NewMockContactRepository(ctrl)
				service := NewContactService(logger, mockRepo, m, testInbox)

				mockRepo.EXPECT().Configured().Return(true)
				mockRepo.EXPECT().
					CreateMessage(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *models.ContactMessage) error {
						assert.Len(t, m.Sent(), 1, "mail must be sent before the insert")
						return nil
					})

				err := service.SubmitContact(context.Background(), &SubmitContactRequest{
					Name: "Ada", Email: "ada@example.com", Message: "hi",
				})
				require.NoError(t, err)
			})
		}
	})

	t.Run("store failure after mail surfaces the persistence error", func(t *testing.T) {
		mockRepo := NewMockContactRepository(ctrl)
		m := &recordingMailer{}
		service := NewContactService(logger, mockRepo, m, testInbox)

		mockRepo.EXPECT().Configured().Return(true)
		mockRepo.EXPECT().
			CreateMessage(gomock.Any(), gomock.Any()).
			Return(apperrors.NewDatabaseError("insert failed", errors.New("disk full")))

		err := service.SubmitContact(context.Background(), &SubmitContactRequest{
			Name: "Ada", Email: "ada@example.com", Message: "hi",
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDatabaseError))
		assert.Len(t, m.Sent(), 1)
	})

	t.Run("no mailer skips the email step", func(t *testing.T) {
		mockRepo := NewMockContactRepository(ctrl)
		service := NewContactService(logger, mockRepo, nil, testInbox)

		mockRepo.EXPECT().Configured().Return(true)
		mockRepo.EXPECT().CreateMessage(gomock.Any(), gomock.Any()).Return(nil)

		err := service.SubmitContact(context.Background(), &SubmitContactRequest{
			Name: "Ada", Email: "ada@example.com", Message: "hi",
		})

		assert.NoError(t, err)
	})

	t.Run("store failure surfaces as database error", func(t *testing.T) {
		mockRepo := NewMockContactRepository(ctrl)
		service := NewContactService(logger, mockRepo, nil, testInbox)

		mockRepo.EXPECT().Configured().Return(true)
		mockRepo.EXPECT().
			CreateMessage(gomock.Any(), gomock.Any()).
			Return(store.PersistenceError(MsgSubmitFailed, &store.Error{Status: 401, Message: "Invalid API key"}))

		err := service.SubmitContact(context.Background(), &SubmitContactRequest{
			Name: "Ada", Email: "ada@example.com", Message: "hi",
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDatabaseError))
		assert.Equal(t, "Invalid API key", apperrors.GetHumanReadableMessage(err))
	})
}

func TestContactService_RelaySkipsStrictEmailCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockContactRepository(ctrl)
	m := &recordingMailer{}
	service := NewContactService(log.NewLoggerWithJSONOutput(), mockRepo, m, testInbox)

	mockRepo.EXPECT().Configured().Return(true)
	mockRepo.EXPECT().
		CreateMessage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg *models.ContactMessage) error {
			assert.Equal(t, "Waitlist", msg.Name)
			assert.Equal(t, "x@y", msg.Email)
			return nil
		})

	err := service.Relay(context.Background(), "Waitlist", "x@y", "Waitlist signup from landing: x@y")
	require.NoError(t, err)
	assert.Len(t, m.Sent(), 1)
}

func TestToNotificationEmail_EscapesHTML(t *testing.T) {
	msg := ToNotificationEmail(testInbox, &SubmitContactRequest{
		Name:    "<b>Eve</b>",
		Email:   "eve@example.com",
		Message: "line one\n<script>alert(1)</script>",
	})

	assert.Equal(t, "<p>line one<br>&lt;script&gt;alert(1)&lt;/script&gt;</p><p>From: &lt;b&gt;Eve&lt;/b&gt; &lt;eve@example.com&gt;</p>", msg.HTML)
	assert.Contains(t, msg.Text, "<script>")
}

func TestRelayNotifier_RunsThroughDispatcher(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	logger := log.NewLoggerWithJSONOutput()
	mockRepo := NewMockContactRepository(ctrl)
	service := NewContactService(logger, mockRepo, nil, testInbox)

	dispatcher := notify.NewDispatcher(notify.Config{}, logger)
	notifier := NewRelayNotifier(dispatcher, service)

	stored := make(chan *models.ContactMessage, 1)
	mockRepo.EXPECT().Configured().Return(true)
	mockRepo.EXPECT().
		CreateMessage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg *models.ContactMessage) error {
			stored <- msg
			return nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	notifier.Notify(ctx, "waitlist_relay", "Waitlist", "a@b.io", "Waitlist signup from landing: a@b.io")
	cancel()

	require.NoError(t, dispatcher.Close(context.Background()))
	msg := <-stored
	assert.Equal(t, "Waitlist signup from landing: a@b.io", msg.Message)
}
