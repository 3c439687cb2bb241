package service

import "errors"

// Sentinel errors for the four client-visible failure classes. Services wrap
// them with context via fmt.Errorf("...: %w", Err...); handlers map them to
// HTTP statuses with errors.Is. Anything else is an internal error.
var (
	ErrValidacao     = errors.New("dados inválidos")
	ErrNaoEncontrado = errors.New("registro não encontrado")
	ErrConflito      = errors.New("conflito")
	ErrPreCondicao   = errors.New("pré-condição não atendida")
)
