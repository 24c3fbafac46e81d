package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite covers the error primitives every handler maps to HTTP.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorInterface() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeNotFound, Message: "admin not found"}
		s.Equal("admin not found", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeNotFound}
		s.Equal("not_found", err.Error())
	})
}

func (s *DomainErrorsSuite) TestUnwrap() {
	inner := errors.New("database connection failed")
	err := &Error{Code: CodeInternal, Message: "service error", Err: inner}
	s.Equal(inner, errors.Unwrap(err))
	s.Nil((&Error{Code: CodeNotFound}).Unwrap())
}

func (s *DomainErrorsSuite) TestIsMatching() {
	s.Run("matches by code only", func() {
		s.True(errors.Is(New(CodeNotFound, "admin"), New(CodeNotFound, "session")))
	})

	s.Run("does not match different codes", func() {
		s.False(errors.Is(New(CodeNotFound, ""), New(CodeConflict, "")))
	})

	s.Run("does not match non-domain errors", func() {
		s.False((&Error{Code: CodeNotFound}).Is(errors.New("not found")))
	})

	s.Run("finds inner code through chain", func() {
		inner := &Error{Code: CodeNotFound, Message: "original"}
		wrapped := &Error{Code: CodeInternal, Message: "wrapped", Err: inner}
		s.True(errors.Is(wrapped, &Error{Code: CodeNotFound}))
	})
}

func (s *DomainErrorsSuite) TestWrap() {
	s.Run("preserves existing domain code", func() {
		inner := New(CodeConflict, "email taken")
		err := Wrap(inner, CodeInternal, "create admin")
		s.True(HasCode(err, CodeConflict))
		s.Equal("create admin", err.Error())
	})

	s.Run("applies code to plain errors", func() {
		err := Wrap(errors.New("boom"), CodeInternal, "query failed")
		s.True(HasCode(err, CodeInternal))
	})
}

func (s *DomainErrorsSuite) TestCodeOf() {
	s.Equal(CodeTooManyRequests, CodeOf(fmt.Errorf("login: %w", New(CodeTooManyRequests, "slow down"))))
	s.Equal(CodeInternal, CodeOf(errors.New("plain")))
}
