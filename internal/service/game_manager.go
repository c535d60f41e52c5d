package service

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/store"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/google/uuid"
)

// Archive persists finished and running games. *store.Store implements it.
type Archive interface {
	Save(rec *store.Record) error
	Load(id string) (*store.Record, error)
}

// entry is one registered game. mu serializes every access to game.
type entry struct {
	mu    sync.Mutex
	id    string
	game  *model.Game
	hub   *Hub
	ended *model.Result
}

type GameManager struct {
	games   map[string]*entry
	archive Archive
	mu      sync.RWMutex
}

// NewGameManager creates a registry. archive may be nil, in which case games
// live only in memory.
func NewGameManager(archive Archive) *GameManager {
	return &GameManager{
		games:   make(map[string]*entry),
		archive: archive,
	}
}

func (gm *GameManager) newEntry(gameID string, game *model.Game) *entry {
	e := &entry{id: gameID, game: game, hub: newHub(gameID)}
	game.OnEnd(func(r model.Result) {
		e.ended = &r
	})
	return e
}

func (gm *GameManager) CreateGame(gameID, fen string) error {
	var opts []model.GameOption
	if fen != "" {
		opts = append(opts, model.WithFEN(fen))
	}
	game, err := model.NewGame(opts...)
	if err != nil {
		return err
	}

	gm.mu.Lock()
	if _, exists := gm.games[gameID]; exists {
		gm.mu.Unlock()
		return errors.New("game already exists")
	}
	e := gm.newEntry(gameID, game)
	gm.games[gameID] = e
	gm.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	gm.persist(e)
	log.Printf("manager: game created id=%s fen=%q", gameID, game.InitialFEN())
	return nil
}

// lookup finds a registered game, restoring it from the archive on a miss.
func (gm *GameManager) lookup(gameID string) (*entry, error) {
	gm.mu.RLock()
	e, exists := gm.games[gameID]
	gm.mu.RUnlock()
	if exists {
		return e, nil
	}
	if gm.archive == nil {
		return nil, ErrGameNotFound
	}

	rec, err := gm.archive.Load(gameID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", gameID, err)
	}
	game, err := Replay(rec)
	if err != nil {
		return nil, fmt.Errorf("restore game %s: %w", gameID, err)
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()
	// another request may have restored it meanwhile
	if e, exists := gm.games[gameID]; exists {
		return e, nil
	}
	e = gm.newEntry(gameID, game)
	gm.games[gameID] = e
	log.Printf("manager: game restored id=%s plies=%d", gameID, len(rec.Moves))
	return e, nil
}

// Replay rebuilds a game from its archive record, including declared
// outcomes that the move list alone does not carry.
func Replay(rec *store.Record) (*model.Game, error) {
	game, err := model.NewGame(model.WithFEN(rec.InitialFEN))
	if err != nil {
		return nil, err
	}
	for _, d := range rec.Moves {
		if _, err := game.Play(d); err != nil {
			return nil, err
		}
	}
	if game.State().Status.IsTerminal() || rec.Status == "" || rec.Status == model.StatusInProgress.String() {
		return game, nil
	}

	switch {
	case rec.Status == model.StatusResigned.String():
		winner, err := model.ParseColor(rec.Winner)
		if err != nil {
			return nil, err
		}
		err = game.Resign(winner.Opposite())
		return game, err
	case rec.Reason == model.DrawAgreement.String():
		side := game.Turn()
		if err := game.OfferDraw(side); err != nil {
			return nil, err
		}
		return game, game.RespondDraw(side.Opposite(), true)
	case rec.Reason == model.DrawFiftyMove.String(), rec.Reason == model.DrawRepetition.String():
		_, err := game.ClaimDraw()
		return game, err
	}
	return nil, fmt.Errorf("unknown archived outcome %s/%s", rec.Status, rec.Reason)
}

// NewRecord captures game as an archive record under id.
func NewRecord(id string, game *model.Game) *store.Record {
	s := game.State()
	rec := &store.Record{
		ID:         id,
		InitialFEN: game.InitialFEN(),
		Moves:      game.Notation(),
		Result:     s.Score(),
		Status:     s.Status.String(),
		Reason:     s.Reason.String(),
	}
	if s.HasWinner {
		rec.Winner = s.Winner.String()
	}
	return rec
}

// persist writes the game through to the archive. Failures are logged; the
// in-memory game stays authoritative.
func (gm *GameManager) persist(e *entry) {
	if gm.archive == nil {
		return
	}
	if err := gm.archive.Save(NewRecord(e.id, e.game)); err != nil {
		log.Printf("manager: archive failed id=%s err=%v", e.id, err)
	}
}

// View runs fn with exclusive access to the game without recording a change.
func (gm *GameManager) View(gameID string, fn func(*model.Game) error) error {
	e, err := gm.lookup(gameID)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.game)
}

// Update runs fn with exclusive access to the game. When fn succeeds the
// change is archived and broadcast to every connection on the game.
func (gm *GameManager) Update(gameID string, fn func(*model.Game) error) error {
	e, err := gm.lookup(gameID)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.ended = nil
	if err := fn(e.game); err != nil {
		return err
	}
	gm.persist(e)
	gm.publish(e)
	return nil
}

func (gm *GameManager) publish(e *entry) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, e.game.Snapshot())
	if err != nil {
		log.Printf("manager: snapshot encode failed id=%s err=%v", e.id, err)
		return
	}
	e.hub.broadcast(msg)

	if e.ended == nil {
		return
	}
	r := *e.ended
	log.Printf("manager: game finished id=%s result=%q", e.id, r)
	over := ws.GameOverPayload{
		Status: r.Status.String(),
		Reason: r.Reason.String(),
		Result: r.Score(),
	}
	if r.HasWinner {
		over.Winner = r.Winner.String()
	}
	if msg, err := ws.NewMessage(ws.MessageTypeGameOver, over); err == nil {
		e.hub.broadcast(msg)
	}
}

// RegisterConnection attaches conn to the game's hub and sends it the
// current state. The returned id is needed to unregister.
func (gm *GameManager) RegisterConnection(gameID string, conn Conn) (string, error) {
	e, err := gm.lookup(gameID)
	if err != nil {
		return "", err
	}
	connID := uuid.New().String()
	e.hub.add(connID, conn)

	e.mu.Lock()
	msg, err := ws.NewMessage(ws.MessageTypeGameState, e.game.Snapshot())
	e.mu.Unlock()
	if err != nil {
		return connID, err
	}
	e.hub.send(connID, msg)
	return connID, nil
}

func (gm *GameManager) UnregisterConnection(gameID, connID string) {
	gm.mu.RLock()
	e, exists := gm.games[gameID]
	gm.mu.RUnlock()
	if !exists {
		return
	}
	e.hub.remove(connID)
}

// Notify sends msg to a single connection of a game.
func (gm *GameManager) Notify(gameID, connID string, msg ws.Message) {
	gm.mu.RLock()
	e, exists := gm.games[gameID]
	gm.mu.RUnlock()
	if exists {
		e.hub.send(connID, msg)
	}
}
