package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/timeline/models"
	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
	app   id.ApplicationID
	day   time.Time
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.app = id.ApplicationID(uuid.New())
	s.day = time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
}

func (s *InMemoryStoreSuite) TestListOrdersByEventDate() {
	late := newEvent(s.app, s.day.AddDate(0, 0, 10))
	early := newEvent(s.app, s.day)
	other := newEvent(id.ApplicationID(uuid.New()), s.day)
	for _, e := range []*models.Event{late, early, other} {
		s.Require().NoError(s.store.CreateEvent(s.ctx, e))
	}

	got, err := s.store.ListEvents(s.ctx, models.Filter{ApplicationID: &s.app})
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(early.ID, got[0].ID)
	s.Equal(late.ID, got[1].ID)

	all, err := s.store.ListEvents(s.ctx, models.Filter{})
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *InMemoryStoreSuite) TestListFiltersByStatusAndType() {
	done := newEvent(s.app, s.day)
	done.Status = models.StatusCompleted
	deadline := newEvent(s.app, s.day)
	deadline.EventType = models.EventDeadline
	s.Require().NoError(s.store.CreateEvent(s.ctx, done))
	s.Require().NoError(s.store.CreateEvent(s.ctx, deadline))

	got, err := s.store.ListEvents(s.ctx, models.Filter{Status: models.StatusCompleted})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(done.ID, got[0].ID)

	got, err = s.store.ListEvents(s.ctx, models.Filter{EventType: models.EventDeadline})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(deadline.ID, got[0].ID)
}

func (s *InMemoryStoreSuite) TestReturnedEventsAreCopies() {
	e := newEvent(s.app, s.day)
	s.Require().NoError(s.store.CreateEvent(s.ctx, e))

	got, err := s.store.FindEvent(s.ctx, e.ID)
	s.Require().NoError(err)
	got.Title = "mutated"

	again, err := s.store.FindEvent(s.ctx, e.ID)
	s.Require().NoError(err)
	s.Equal("Biometrics appointment", again.Title)
}

func (s *InMemoryStoreSuite) TestUnknownEventIsNotFound() {
	missing := id.NewTimelineEventID()
	_, err := s.store.FindEvent(s.ctx, missing)
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.ErrorIs(s.store.UpdateEvent(s.ctx, newEvent(s.app, s.day)), sentinel.ErrNotFound)
	s.ErrorIs(s.store.DeleteEvent(s.ctx, missing), sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestBulkOperationsSkipUnknownIDs() {
	a := newEvent(s.app, s.day)
	b := newEvent(s.app, s.day)
	s.Require().NoError(s.store.CreateEvent(s.ctx, a))
	s.Require().NoError(s.store.CreateEvent(s.ctx, b))
	at := s.day.Add(time.Hour)

	n, err := s.store.BulkUpdateStatus(s.ctx, []id.TimelineEventID{a.ID, id.NewTimelineEventID()}, models.StatusCompleted, at)
	s.Require().NoError(err)
	s.Equal(1, n)

	got, err := s.store.FindEvent(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusCompleted, got.Status)
	s.Equal(at, got.UpdatedAt)

	n, err = s.store.BulkDelete(s.ctx, []id.TimelineEventID{a.ID, b.ID, id.NewTimelineEventID()})
	s.Require().NoError(err)
	s.Equal(2, n)
}

func (s *InMemoryStoreSuite) TestNotesFollowTheirEvent() {
	e := newEvent(s.app, s.day)
	s.Require().NoError(s.store.CreateEvent(s.ctx, e))
	author := id.NewAdminID()

	first := &models.Note{ID: id.NewNoteID(), EventID: e.ID, AdminID: author, Body: "called client", CreatedAt: s.day}
	second := &models.Note{ID: id.NewNoteID(), EventID: e.ID, AdminID: author, Body: "docs received", CreatedAt: s.day.Add(time.Minute)}
	s.Require().NoError(s.store.CreateNote(s.ctx, second))
	s.Require().NoError(s.store.CreateNote(s.ctx, first))

	notes, err := s.store.ListNotes(s.ctx, e.ID)
	s.Require().NoError(err)
	s.Require().Len(notes, 2)
	s.Equal(first.ID, notes[0].ID)

	s.Require().NoError(s.store.DeleteNote(s.ctx, e.ID, first.ID))
	s.ErrorIs(s.store.DeleteNote(s.ctx, e.ID, first.ID), sentinel.ErrNotFound)

	s.Require().NoError(s.store.DeleteEvent(s.ctx, e.ID))
	_, err = s.store.ListNotes(s.ctx, e.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestNoteOnMissingEvent() {
	err := s.store.CreateNote(s.ctx, &models.Note{ID: id.NewNoteID(), EventID: id.NewTimelineEventID(), Body: "x"})
	s.ErrorIs(err, sentinel.ErrNotFound)
}
