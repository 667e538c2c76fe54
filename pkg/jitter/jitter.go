// Package jitter добавляет случайность в интервалы повторов,
// чтобы переподключающиеся воркеры не приходили к брокеру одновременно.
package jitter

import (
	"math/rand/v2"
	"time"
)

// DefaultJitter: стандартный коэффициент джиттера (50%)
const DefaultJitter = 0.5

// Duration возвращает d с джиттером в диапазоне [d, d*(1+jitterFactor)].
func Duration(d time.Duration, jitterFactor float64) time.Duration {
	return d + time.Duration(rand.Float64()*jitterFactor*float64(d))
}

// DurationWithRand работает как Duration, но с заданным генератором. Нужна для детерминированных тестов.
func DurationWithRand(d time.Duration, jitterFactor float64, rng *rand.Rand) time.Duration {
	return d + time.Duration(rng.Float64()*jitterFactor*float64(d))
}

// ExponentialBackoff удваивает base на каждую попытку (нумерация с нуля), ограничивая результат maxDelay,
// и применяет джиттер.
func ExponentialBackoff(base, maxDelay time.Duration, attempt int, jitterFactor float64) time.Duration {
	return Duration(backoff(base, maxDelay, attempt), jitterFactor)
}

func backoff(base, maxDelay time.Duration, attempt int) time.Duration {
	d := base
	for range attempt {
		d *= 2
		if d >= maxDelay {
			return maxDelay
		}
	}

	return min(d, maxDelay)
}
