package board

// Engine owns the single active game and the configuration it was built
// from. Starting a new game replaces the whole [GameState].
//
// Engine is not safe for concurrent use; hosts dispatch one command at a
// time.
type Engine struct {
	config Config
	game   *GameState
}

func NewEngine(cfg Config) (*Engine, error) {
	e := &Engine{}
	if _, err := e.NewGame(cfg); err != nil {
		return nil, err
	}
	return e, nil
}

// NewGame builds a fresh game from a copy of cfg. On error the current game,
// if any, is left untouched.
func (e *Engine) NewGame(cfg Config) (*GameState, error) {
	game, err := NewGame(cfg)
	if err != nil {
		return nil, err
	}
	e.config = cfg.Clone()
	e.game = game
	return game, nil
}

// Reset starts over with the configuration of the current game.
func (e *Engine) Reset() *GameState {
	game, err := NewGame(e.config)
	if err != nil {
		/* e.config was accepted by NewGame before, so it builds again. */
		panic(err)
	}
	e.game = game
	return game
}

func (e *Engine) Config() Config                   { return e.config.Clone() }
func (e *Engine) Game() *GameState                 { return e.game }
func (e *Engine) Reveal(row, col int) RevealResult { return e.game.Reveal(row, col) }
func (e *Engine) ToggleFlag(row, col int) FlagResult {
	return e.game.ToggleFlag(row, col)
}
func (e *Engine) Snapshot() Snapshot { return e.game.Snapshot() }
func (e *Engine) CheckWin() bool     { return e.game.CheckWin() }
func (e *Engine) TimingActive() bool { return e.game.TimingActive() }
func (e *Engine) AdvanceTime() bool  { return e.game.AdvanceTime() }
