package service

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrAccountExists      = errors.New("account already exists")
	ErrAccountNotFound    = errors.New("account does not exist")
	ErrInvalidCredentials = errors.New("incorrect password")
	ErrStudyNotFound      = errors.New("study does not exist")
	ErrStudyExists        = errors.New("study title already taken")
	ErrNotPublisher       = errors.New("not the study publisher")
)
