package repository

import "github.com/pkg/errors"

// ErrNotFound indica que o registro solicitado não existe
var ErrNotFound = errors.New("registro não encontrado")
