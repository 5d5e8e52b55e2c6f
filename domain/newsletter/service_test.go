package newsletter

import (
	"context"
	"testing"

	"github.com/nataa-app/landing-gateway/internal/log"
	"github.com/nataa-app/landing-gateway/internal/models"
	apperrors "github.com/nataa-app/landing-gateway/pkg/errors"
	"github.com/nataa-app/landing-gateway/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func strPtr(s string) *string { return &s }

func TestNewsletterService_Subscribe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	logger := log.NewLoggerWithJSONOutput()

	t.Run("defaults source and keeps email case", func(t *testing.T) {
		mockRepo := NewMockNewsletterRepository(ctrl)
		service := NewNewsletterService(logger, mockRepo)

		mockRepo.EXPECT().Configured().Return(true)
		mockRepo.EXPECT().
			CreateSignup(gomock.Any(), &models.NewsletterSignup{Email: "Ada@Example.com", Source: "landing"}).
			Return(nil)

		err := service.Subscribe(context.Background(), &SubscribeRequest{Email: "  Ada@Example.com "})
		assert.NoError(t, err)
	})

	t.Run("present source is stored as sent", func(t *testing.T) {
		mockRepo := NewMockNewsletterRepository(ctrl)
		service := NewNewsletterService(logger, mockRepo)

		mockRepo.EXPECT().Configured().Return(true)
		mockRepo.EXPECT().
			CreateSignup(gomock.Any(), &models.NewsletterSignup{Email: "a@b", Source: ""}).
			Return(nil)

		err := service.Subscribe(context.Background(), &SubscribeRequest{Email: "a@b", Source: strPtr("")})
		assert.NoError(t, err)
	})

	t.Run("email without at sign is rejected", func(t *testing.T) {
		mockRepo := NewMockNewsletterRepository(ctrl)
		service := NewNewsletterService(logger, mockRepo)

		for _, email := range []string{"", "   ", "nobody.example.com"} {
			mockRepo.EXPECT().Configured().Return(true)

			err := service.Subscribe(context.Background(), &SubscribeRequest{Email: email})
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidRequest))
			assert.Equal(t, MsgInvalidEmail, apperrors.GetHumanReadableMessage(err))
		}
	})

	t.Run("configuration is checked before the payload", func(t *testing.T) {
		mockRepo := NewMockNewsletterRepository(ctrl)
		service := NewNewsletterService(logger, mockRepo)

		mockRepo.EXPECT().Configured().Return(false)

		err := service.Subscribe(context.Background(), &SubscribeRequest{})
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConfiguration))
	})

	t.Run("store rejection message is passed through", func(t *testing.T) {
		mockRepo := NewMockNewsletterRepository(ctrl)
		service := NewNewsletterService(logger, mockRepo)

		mockRepo.EXPECT().Configured().Return(true)
		mockRepo.EXPECT().
			CreateSignup(gomock.Any(), gomock.Any()).
			Return(store.PersistenceError(MsgSubmitFailed, &store.Error{Status: 400, Code: "42P01", Message: "relation does not exist"}))

		err := service.Subscribe(context.Background(), &SubscribeRequest{Email: "a@b.io"})
		require.Error(t, err)
		assert.Equal(t, "relation does not exist", apperrors.GetHumanReadableMessage(err))
		assert.Equal(t, 500, apperrors.HTTPStatusCode(err))
	})
}
