package notify

import (
	"math/rand"
	"time"
)

const defaultJitterSpread = 0.15

// jitter разбрасывает паузу d на случайную долю в пределах [1-spread, 1+spread], чтобы несколько
// экземпляров отправителя не опрашивали outbox синхронно.
// Допустимый spread в диапазоне [0, 1). Иначе используется 0.15.
func jitter(d time.Duration, spread float64) time.Duration {
	if spread < 0 || spread >= 1 {
		spread = defaultJitterSpread
	}
	factor := 1 - spread + rand.Float64()*2*spread // nolint:gosec
	return time.Duration(float64(d) * factor)
}
