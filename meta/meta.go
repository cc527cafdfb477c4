// meta/meta.go
package meta

// BOARD_SIZE defines the default board radius (19 points).
const BOARD_SIZE = 3

// DEPTH defines the default minimax search depth.
const DEPTH = 3

// GOROUTINES defines the default number of goroutines scoring root moves.
const GOROUTINES = 1

// GAMES defines the number of games played per match-up.
const GAMES = 10

// OUTPUT_DIR is where experiment records are written.
const OUTPUT_DIR = "experiments/results"
