package dispatcher

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/models"
)

type MemoryDispatcherSuite struct {
	suite.Suite
	channel *MemoryDispatcher
}

func TestMemoryDispatcherSuite(t *testing.T) {
	suite.Run(t, new(MemoryDispatcherSuite))
}

func (s *MemoryDispatcherSuite) SetupTest() {
	s.channel = NewMemory()
}

func (s *MemoryDispatcherSuite) SetupSubTest() {
	s.SetupTest()
}

func (s *MemoryDispatcherSuite) TestDispatch() {
	s.Run("recorded delivery keeps the payload intact", func() {
		s.Require().NoError(s.channel.Dispatch(context.Background(), samplePayload()))

		deliveries := s.channel.Deliveries()
		s.Require().Len(deliveries, 1)
		s.NotEmpty(deliveries[0].MessageID)
		s.Equal(models.SeverityHigh, deliveries[0].Payload.Severity)
		s.Equal("123456789012", deliveries[0].Payload.AccountID)
		s.Equal("[HIGH] Root: StopLogging in prod-payments", deliveries[0].Payload.Subject)
	})

	s.Run("each delivery gets its own message id", func() {
		s.Require().NoError(s.channel.Dispatch(context.Background(), samplePayload()))
		s.Require().NoError(s.channel.Dispatch(context.Background(), samplePayload()))

		deliveries := s.channel.Deliveries()
		s.Require().Len(deliveries, 2)
		s.NotEqual(deliveries[0].MessageID, deliveries[1].MessageID)
	})
}

func (s *MemoryDispatcherSuite) TestFailWith() {
	injected := errors.New("channel unavailable")
	s.channel.FailWith(injected)

	err := s.channel.Dispatch(context.Background(), samplePayload())
	s.Require().ErrorIs(err, injected)
	s.Empty(s.channel.Deliveries(), "failed dispatch must not record a delivery")

	s.channel.FailWith(nil)
	s.Require().NoError(s.channel.Dispatch(context.Background(), samplePayload()))
	s.Len(s.channel.Deliveries(), 1)
}
