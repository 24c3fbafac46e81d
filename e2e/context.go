package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// TestContext holds state between test steps. Each scenario gets a fresh
// cookie jar so sessions never leak across scenarios.
type TestContext struct {
	BaseURL          string
	HTTPClient       *http.Client
	LastResponse     *http.Response
	LastResponseBody []byte
	SessionToken     string
	Saved            map[string]string
}

// NewTestContext creates a new test context against baseURL.
func NewTestContext(baseURL string) *TestContext {
	jar, _ := cookiejar.New(nil)
	return &TestContext{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
		Saved: make(map[string]string),
	}
}

// Do sends a JSON request and stores the response. A nil body sends no
// payload. Extra headers override the defaults.
func (tc *TestContext) Do(method, path string, body any, headers map[string]string) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, tc.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := tc.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}

	tc.LastResponse = resp
	tc.LastResponseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

// ResetCookies drops every cookie, leaving the client anonymous.
func (tc *TestContext) ResetCookies() {
	jar, _ := cookiejar.New(nil)
	tc.HTTPClient.Jar = jar
}

// GetResponseField extracts a dotted path such as "data.id" from the JSON
// response.
func (tc *TestContext) GetResponseField(path string) (any, error) {
	var data any
	if err := json.Unmarshal(tc.LastResponseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	for _, key := range strings.Split(path, ".") {
		obj, ok := data.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %s not found in response", path)
		}
		if data, ok = obj[key]; !ok {
			return nil, fmt.Errorf("field %s not found in response", path)
		}
	}
	return data, nil
}

// ResponseContains checks if the response body contains a field or text.
func (tc *TestContext) ResponseContains(text string) bool {
	if strings.Contains(string(tc.LastResponseBody), text) {
		return true
	}
	_, err := tc.GetResponseField(text)
	return err == nil
}

// SessionCookie returns the session cookie issued by the last response.
func (tc *TestContext) SessionCookie(name string) (string, bool) {
	if tc.LastResponse == nil {
		return "", false
	}
	for _, c := range tc.LastResponse.Cookies() {
		if c.Name == name && c.Value != "" {
			return c.Value, true
		}
	}
	return "", false
}

func (tc *TestContext) GetLastResponseStatus() int {
	if tc.LastResponse == nil {
		return 0
	}
	return tc.LastResponse.StatusCode
}

func (tc *TestContext) GetLastResponseBody() []byte {
	return tc.LastResponseBody
}

func (tc *TestContext) GetSessionToken() string {
	return tc.SessionToken
}

func (tc *TestContext) SetSessionToken(token string) {
	tc.SessionToken = token
}

func (tc *TestContext) Save(key, value string) {
	tc.Saved[key] = value
}

// Expand replaces {key} placeholders with saved values.
func (tc *TestContext) Expand(s string) string {
	for k, v := range tc.Saved {
		s = strings.ReplaceAll(s, "{"+k+"}", v)
	}
	return s
}
