package timeline

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Do(method, path string, body any, headers map[string]string) error
	GetResponseField(path string) (any, error)
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
	Save(key, value string)
}

// RegisterSteps registers timeline step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &timelineSteps{tc: tc}

	ctx.Step(`^I create a "([^"]*)" timeline event "([^"]*)" for application "([^"]*)"$`, steps.createEvent)
	ctx.Step(`^I save the event id as "([^"]*)"$`, steps.saveEventID)
	ctx.Step(`^the response should list (\d+) items?$`, steps.responseListsItems)
}

type timelineSteps struct {
	tc TestContext
}

func (s *timelineSteps) createEvent(ctx context.Context, eventType, title, applicationID string) error {
	return s.tc.Do("POST", "/api/admin/timeline-events", map[string]any{
		"application_id":   applicationID,
		"application_type": "student",
		"title":            title,
		"event_type":       eventType,
		"event_date":       "2026-03-01",
	}, nil)
}

func (s *timelineSteps) saveEventID(ctx context.Context, key string) error {
	if status := s.tc.GetLastResponseStatus(); status != 201 {
		return fmt.Errorf("expected a created event but got %d: %s", status, string(s.tc.GetLastResponseBody()))
	}
	v, err := s.tc.GetResponseField("data.id")
	if err != nil {
		return err
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return fmt.Errorf("event id is not a string: %v", v)
	}
	s.tc.Save(key, id)
	return nil
}

func (s *timelineSteps) responseListsItems(ctx context.Context, n int) error {
	v, err := s.tc.GetResponseField("total")
	if err != nil {
		return err
	}
	total, ok := v.(float64)
	if !ok || int(total) != n {
		return fmt.Errorf("expected %d items but got %v", n, v)
	}
	return nil
}
