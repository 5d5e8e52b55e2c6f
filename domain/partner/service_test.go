package partner

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

type relayed struct {
	job, name, email, message string
}

type recordingNotifier struct {
	calls []relayed
}

func (n *recordingNotifier) Notify(_ context.Context, job, name, email, message string) {
	n.calls = append(n.calls, relayed{job, name, email, message})
}

func validRequest() *ApplyRequest {
	return &ApplyRequest{
		VenueName:   " Club Nine ",
		ContactName: "Sam",
		Email:       "Sam@ClubNine.io",
		City:        "Lagos",
	}
}

func TestPartnerService_SubmitApplication(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	logger := log.NewLoggerWithJSONOutput()

	t.Run("defaults role, lowercases email and relays", func(t *testing.T) {
		mockRepo := NewMockPartnerRepository(ctrl)
		notifier := &recordingNotifier{}
		service := NewPartnerService(logger, mockRepo, notifier)

		mockRepo.EXPECT().Configured().Return(true)
		mockRepo.EXPECT().
			CreateApplication(gomock.Any(), &models.PartnerApplication{
				VenueName:   "Club Nine",
				ContactName: "Sam",
				Email:       "sam@clubnine.io",
				City:        "Lagos",
				Role:        models.PartnerRoleOwner,
			}).
			Return(nil)

		require.NoError(t, service.SubmitApplication(context.Background(), validRequest()))

		require.Len(t, notifier.calls, 1)
		assert.Equal(t, relayed{
			job:     NotificationJob,
			name:    "Sam",
			email:   "sam@clubnine.io",
			message: "Venue partner signup: Club Nine, city: Lagos, role: Owner, contact: Sam <sam@clubnine.io>",
		}, notifier.calls[0])
	})

	t.Run("missing required fields", func(t *testing.T) {
		mockRepo := NewMockPartnerRepository(ctrl)
		service := NewPartnerService(logger, mockRepo, nil)

		for _, req := range []*ApplyRequest{
			nil,
			{},
			{VenueName: "Club", Email: "a@b.io"},
			{ContactName: "Sam", Email: "a@b.io"},
			{VenueName: "Club", ContactName: "Sam", Email: "   "},
		} {
			err := service.SubmitApplication(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, MsgMissingFields, apperrors.GetHumanReadableMessage(err))
		}
	})

	t.Run("strict email check", func(t *testing.T) {
		mockRepo := NewMockPartnerRepository(ctrl)
		service := NewPartnerService(logger, mockRepo, nil)

		req := validRequest()
		req.Email = "sam@clubnine"

		err := service.SubmitApplication(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, MsgInvalidEmail, apperrors.GetHumanReadableMessage(err))
	})

	t.Run("store failure skips relay", func(t *testing.T) {
		mockRepo := NewMockPartnerRepository(ctrl)
		notifier := &recordingNotifier{}
		service := NewPartnerService(logger, mockRepo, notifier)

		mockRepo.EXPECT().Configured().Return(true)
		mockRepo.EXPECT().
			CreateApplication(gomock.Any(), gomock.Any()).
			Return(store.PersistenceError(MsgSubmitFailed, context.DeadlineExceeded))

		err := service.SubmitApplication(context.Background(), validRequest())
		require.Error(t, err)
		assert.Equal(t, MsgSubmitFailed, apperrors.GetHumanReadableMessage(err))
		assert.Empty(t, notifier.calls)
	})

	t.Run("unconfigured store", func(t *testing.T) {
		mockRepo := NewMockPartnerRepository(ctrl)
		service := NewPartnerService(logger, mockRepo, nil)

		mockRepo.EXPECT().Configured().Return(false)

		err := service.SubmitApplication(context.Background(), validRequest())
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConfiguration))
	})
}

func TestNotificationName_FallsBackToVenue(t *testing.T) {
	assert.Equal(t, "Club", NotificationName(&models.PartnerApplication{VenueName: "Club"}))
	assert.Equal(t, "Sam", NotificationName(&models.PartnerApplication{VenueName: "Club", ContactName: "Sam"}))
}
