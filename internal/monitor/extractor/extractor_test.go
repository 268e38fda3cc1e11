package extractor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/models"
	"github.com/Specter099/aws-iam-root-user-activity-monitor/pkg/platform/sentinel"
)

// ExtractorSuite covers field normalization and the fail-closed root-identity
// precondition. The precondition is defense in depth: the bus filter should
// reject non-root events, but the engine re-verifies.
type ExtractorSuite struct {
	suite.Suite
}

func TestExtractorSuite(t *testing.T) {
	suite.Run(t, new(ExtractorSuite))
}

func rootEvent() models.ActivityEvent {
	return models.ActivityEvent{
		ID:         "evt-1",
		DetailType: models.DetailTypeAPICall,
		AccountID:  "123456789012",
		Time:       time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
		Region:     "us-east-1",
		Detail: models.ActivityDetail{
			UserIdentity: models.UserIdentity{
				Type:      models.RootIdentityType,
				ARN:       "arn:aws:iam::123456789012:root",
				AccountID: "123456789012",
			},
			EventTime:       "2026-08-20T12:00:05Z",
			EventName:       "CreateAccessKey",
			AWSRegion:       "eu-west-1",
			SourceIPAddress: "1.2.3.4",
			UserAgent:       "aws-cli/2.15.0",
			RequestParameters: map[string]any{
				"userName": "root",
			},
		},
	}
}

func (s *ExtractorSuite) TestExtract() {
	s.Run("root event yields normalized fields", func() {
		f, err := Extract(rootEvent())
		s.Require().NoError(err)

		s.Equal("CreateAccessKey", f.Action)
		s.Equal("Root", f.IdentityType)
		s.Equal("arn:aws:iam::123456789012:root", f.IdentityARN)
		s.Equal("123456789012", f.AccountID)
		s.Equal("2026-08-20T12:00:05Z", f.Time)
		s.Equal("1.2.3.4", f.SourceIP)
		s.Equal("aws-cli/2.15.0", f.UserAgent)
		s.Equal("eu-west-1", f.Region)
		s.Equal(models.DetailTypeAPICall, f.EventCategory)
		s.Equal(map[string]any{"userName": "root"}, f.RequestParameters)
	})

	s.Run("detail region wins over envelope region", func() {
		ev := rootEvent()
		ev.Detail.AWSRegion = "ap-southeast-2"
		f, err := Extract(ev)
		s.Require().NoError(err)
		s.Equal("ap-southeast-2", f.Region)
	})

	s.Run("missing detail falls back to envelope", func() {
		ev := rootEvent()
		ev.Detail.EventTime = ""
		ev.Detail.AWSRegion = ""
		f, err := Extract(ev)
		s.Require().NoError(err)
		s.Equal("2026-08-20T12:00:00Z", f.Time)
		s.Equal("us-east-1", f.Region)
	})

	s.Run("absent optional fields render as Unknown", func() {
		ev := rootEvent()
		ev.Detail.SourceIPAddress = ""
		ev.Detail.UserAgent = ""
		f, err := Extract(ev)
		s.Require().NoError(err)
		s.Equal(Unknown, f.SourceIP)
		s.Equal(Unknown, f.UserAgent)
	})

	s.Run("error fields pass through only when present", func() {
		ev := rootEvent()
		f, err := Extract(ev)
		s.Require().NoError(err)
		s.Empty(f.ErrorCode)
		s.Empty(f.ErrorMessage)

		ev.Detail.ErrorCode = "AccessDenied"
		ev.Detail.ErrorMessage = "no permission"
		f, err = Extract(ev)
		s.Require().NoError(err)
		s.Equal("AccessDenied", f.ErrorCode)
		s.Equal("no permission", f.ErrorMessage)
	})

	s.Run("envelope account falls back to identity account", func() {
		ev := rootEvent()
		ev.AccountID = ""
		f, err := Extract(ev)
		s.Require().NoError(err)
		s.Equal("123456789012", f.AccountID)
	})
}

func (s *ExtractorSuite) TestRootPrecondition() {
	s.Run("IAM user identity is rejected", func() {
		ev := rootEvent()
		ev.Detail.UserIdentity.Type = "IAMUser"
		_, err := Extract(ev)
		s.Require().Error(err)
		s.ErrorIs(err, sentinel.ErrNotRootActivity)
	})

	s.Run("absent identity type is rejected", func() {
		ev := rootEvent()
		ev.Detail.UserIdentity = models.UserIdentity{}
		_, err := Extract(ev)
		s.ErrorIs(err, sentinel.ErrNotRootActivity)
	})

	s.Run("lowercase root is rejected, the check is exact", func() {
		ev := rootEvent()
		ev.Detail.UserIdentity.Type = "root"
		_, err := Extract(ev)
		s.ErrorIs(err, sentinel.ErrNotRootActivity)
	})
}
