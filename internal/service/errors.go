package service

import "errors"

var (
	ErrGameNotFound     = errors.New("game not found")
	ErrGameExists       = errors.New("game already exists")
	ErrGameFull         = errors.New("game is full")
	ErrPlayerNotInGame  = errors.New("player not in game")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrAlreadyQueued    = errors.New("player already in queue")
	ErrAlreadyConnected = errors.New("connection already exists")
	ErrNotAuthorized    = errors.New("not authorized to join this game")
	ErrInvalidSquare    = errors.New("invalid square")
)
