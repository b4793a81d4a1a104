package usecase

import "errors"

// ErrPersistence indicates an infrastructure/repository failure inside a use
// case. Callers branch on it to tell storage failures from validation ones.
var ErrPersistence = errors.New("chat use case: persistence error")
