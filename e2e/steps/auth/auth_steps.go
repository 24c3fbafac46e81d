package auth

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/adminauth/service"
	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/seeder"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Do(method, path string, body any, headers map[string]string) error
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
	SessionCookie(name string) (string, bool)
	ResetCookies()
	GetSessionToken() string
	SetSessionToken(token string)
	Expand(s string) string
}

// RegisterSteps registers session lifecycle step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &authSteps{tc: tc}

	ctx.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, steps.logIn)
	ctx.Step(`^I am logged in as "([^"]*)"$`, steps.loggedInAs)
	ctx.Step(`^a session cookie should be issued$`, steps.sessionCookieIssued)
	ctx.Step(`^I validate my session$`, steps.validate)
	ctx.Step(`^I log out$`, steps.logOut)
	ctx.Step(`^I forget my cookies$`, steps.forgetCookies)
	ctx.Step(`^I GET "([^"]*)" with the session token header$`, steps.getWithHeader)
	ctx.Step(`^I GET "([^"]*)" with session token "([^"]*)"$`, steps.getWithToken)
}

type authSteps struct {
	tc TestContext
}

func (s *authSteps) logIn(ctx context.Context, email, password string) error {
	return s.tc.Do("POST", "/api/admin-auth/login", map[string]any{
		"email":    email,
		"password": password,
	}, nil)
}

func (s *authSteps) loggedInAs(ctx context.Context, email string) error {
	if err := s.logIn(ctx, email, seeder.DemoPassword); err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status != 200 {
		return fmt.Errorf("login as %s failed with %d: %s", email, status, string(s.tc.GetLastResponseBody()))
	}
	return s.sessionCookieIssued(ctx)
}

func (s *authSteps) sessionCookieIssued(ctx context.Context) error {
	token, ok := s.tc.SessionCookie(service.CookieName)
	if !ok {
		return fmt.Errorf("no %s cookie in login response", service.CookieName)
	}
	s.tc.SetSessionToken(token)
	return nil
}

func (s *authSteps) validate(ctx context.Context) error {
	return s.tc.Do("GET", "/api/admin-auth/validate", nil, nil)
}

func (s *authSteps) logOut(ctx context.Context) error {
	return s.tc.Do("POST", "/api/admin-auth/logout", nil, nil)
}

func (s *authSteps) forgetCookies(ctx context.Context) error {
	s.tc.ResetCookies()
	return nil
}

func (s *authSteps) getWithHeader(ctx context.Context, path string) error {
	if s.tc.GetSessionToken() == "" {
		return fmt.Errorf("no session token captured")
	}
	return s.getWithToken(ctx, path, s.tc.GetSessionToken())
}

func (s *authSteps) getWithToken(ctx context.Context, path, token string) error {
	return s.tc.Do("GET", s.tc.Expand(path), nil, map[string]string{service.HeaderName: token})
}
