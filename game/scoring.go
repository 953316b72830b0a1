package game

import "math"

const (
	guessBasePoints = 100
	guessMaxBonus   = 200
	allGuessedBonus = 50 // when every non-drawer guessed
	perGuessPoints  = 25
)

// GuesserPoints returns the award for a correct guess: a base plus a speed
// bonus, rounded to the nearest multiple of 10.
func GuesserPoints(timeLeft, maxTime int) int {
	if maxTime <= 0 {
		return guessBasePoints
	}
	timeBonus := int(math.Ceil(float64(timeLeft) / float64(maxTime) * guessMaxBonus))
	total := guessBasePoints + timeBonus
	return int(math.Round(float64(total)/10)) * 10
}

// DrawerPoints returns the drawer's award for a completed turn.
func DrawerPoints(correctGuesses, totalPlayers int) int {
	nonDrawerCount := totalPlayers - 1
	if nonDrawerCount <= 0 {
		return 0
	}
	if correctGuesses >= nonDrawerCount {
		return allGuessedBonus + perGuessPoints*correctGuesses
	}
	if correctGuesses > 0 {
		return perGuessPoints * correctGuesses
	}
	return 0
}
