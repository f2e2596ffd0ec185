package service

import "errors"

var (
	ErrTeacherNotFound    = errors.New("teacher not found")
	ErrStudentNotFound    = errors.New("student not found")
	ErrNoActiveHomework   = errors.New("no active homework")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrAlreadyRegistered  = errors.New("already registered")
	ErrDeadlineInPast     = errors.New("deadline is in the past")
	ErrAttemptsExhausted  = errors.New("submission attempts exhausted")
	ErrNoFiles            = errors.New("no files collected")
)
