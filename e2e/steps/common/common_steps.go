package common

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Do(method, path string, body any, headers map[string]string) error
	GetResponseField(path string) (any, error)
	ResponseContains(text string) bool
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
	Expand(s string) string
}

// RegisterSteps registers common step definitions used across features
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	// Background steps
	ctx.Step(`^the admin service is running$`, steps.serviceIsRunning)

	// Generic request steps
	ctx.Step(`^I (GET|DELETE) "([^"]*)"$`, steps.requestWithoutBody)
	ctx.Step(`^I (POST|PUT|PATCH) to "([^"]*)" with empty body$`, steps.requestWithEmptyBody)
	ctx.Step(`^I (POST|PUT|PATCH) to "([^"]*)" with:$`, steps.requestWithDocString)

	// Response assertion steps
	ctx.Step(`^the response status should be (\d+)$`, steps.responseStatusShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, steps.responseShouldContain)
	ctx.Step(`^the response should not contain "([^"]*)"$`, steps.responseShouldNotContain)
	ctx.Step(`^the response field "([^"]*)" should equal "([^"]*)"$`, steps.responseFieldShouldEqual)
	ctx.Step(`^the response field "([^"]*)" should be (true|false)$`, steps.responseFieldShouldBeBool)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) serviceIsRunning(ctx context.Context) error {
	if err := s.tc.Do("GET", "/health", nil, nil); err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status != 200 {
		return fmt.Errorf("health check returned %d", status)
	}
	return nil
}

func (s *commonSteps) requestWithoutBody(ctx context.Context, method, path string) error {
	return s.tc.Do(method, s.tc.Expand(path), nil, nil)
}

func (s *commonSteps) requestWithEmptyBody(ctx context.Context, method, path string) error {
	return s.tc.Do(method, s.tc.Expand(path), map[string]any{}, nil)
}

func (s *commonSteps) requestWithDocString(ctx context.Context, method, path string, body *godog.DocString) error {
	return s.tc.Do(method, s.tc.Expand(path), rawJSON(s.tc.Expand(body.Content)), nil)
}

func (s *commonSteps) responseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	actualStatus := s.tc.GetLastResponseStatus()
	if actualStatus != expectedStatus {
		return fmt.Errorf("expected status %d but got %d\nResponse: %s", expectedStatus, actualStatus, string(s.tc.GetLastResponseBody()))
	}
	return nil
}

func (s *commonSteps) responseShouldContain(ctx context.Context, text string) error {
	if !s.tc.ResponseContains(text) {
		return fmt.Errorf("response does not contain: %s\nResponse: %s", text, string(s.tc.GetLastResponseBody()))
	}
	return nil
}

func (s *commonSteps) responseShouldNotContain(ctx context.Context, text string) error {
	if s.tc.ResponseContains(text) {
		return fmt.Errorf("response unexpectedly contains: %s\nResponse: %s", text, string(s.tc.GetLastResponseBody()))
	}
	return nil
}

func (s *commonSteps) responseFieldShouldEqual(ctx context.Context, field, expected string) error {
	value, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	if fmt.Sprint(value) != s.tc.Expand(expected) {
		return fmt.Errorf("expected %s to be %q but got %v", field, expected, value)
	}
	return nil
}

func (s *commonSteps) responseFieldShouldBeBool(ctx context.Context, field, expected string) error {
	value, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	b, ok := value.(bool)
	if !ok || fmt.Sprint(b) != expected {
		return fmt.Errorf("expected %s to be %s but got %v", field, expected, value)
	}
	return nil
}
