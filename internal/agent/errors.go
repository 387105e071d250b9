package agent

import "errors"

// ErrEmptyResume indicates the resume text was empty or whitespace.
var ErrEmptyResume = errors.New("resume text cannot be empty")

// ErrEmptyJobDescription indicates the job description was empty or whitespace.
var ErrEmptyJobDescription = errors.New("job description cannot be empty")

// ErrInputTooLong indicates the input exceeds the model's context limit.
var ErrInputTooLong = errors.New("input exceeds token limit")

// ErrMalformedOutput indicates the model's response contained no parseable JSON.
var ErrMalformedOutput = errors.New("no valid JSON in model output")

// ErrEmptyAPIKey indicates that the API key was not provided.
var ErrEmptyAPIKey = errors.New("API key is required")
