//go:build integration

package activity_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"listly/internal/activity"
	id "listly/pkg/domain"
	"listly/pkg/testutil/containers"
)

type PostgresActivitySuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *activity.PostgresStore
}

func TestPostgresActivitySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresActivitySuite))
}

func (s *PostgresActivitySuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = activity.NewPostgresStore(s.postgres.DB)
}

func (s *PostgresActivitySuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "activity_events"))
}

func (s *PostgresActivitySuite) TestAppendAndListByUser() {
	ctx := context.Background()
	userID := id.NewUserID()
	base := time.Now().UTC().Truncate(time.Microsecond)

	events := []activity.Event{
		{Timestamp: base, UserID: userID, Action: activity.ActionListCreated, Subject: "groceries"},
		{Timestamp: base.Add(time.Second), UserID: userID, Action: activity.ActionItemAdded, Subject: "groceries"},
		{Timestamp: base, UserID: id.NewUserID(), Action: activity.ActionListCreated, Subject: "other"},
	}
	for _, e := range events {
		s.Require().NoError(s.store.Append(ctx, e))
	}

	got, err := s.store.ListByUser(ctx, userID)
	s.Require().NoError(err)
	s.Require().Len(got, 2, "only the user's own trail is returned")
	s.Equal(activity.ActionListCreated, got[0].Action, "oldest first")
	s.Equal(activity.ActionItemAdded, got[1].Action)
	s.Equal("groceries", got[0].Subject)
}
