// Package memory implementa los repositorios contra colecciones en memoria.
// Es el modo mock: se usa cuando no hay DSN de Postgres configurado, con una
// latencia artificial opcional para que el UI ejercite sus estados de carga.
package memory

import (
	"context"
	"time"
)

type delayer struct {
	d time.Duration
}

// sleep aproxima la latencia de red. Tambien es el unico punto de suspension
// donde dos flujos mock pueden intercalarse, como en el prototipo original.
func (l delayer) sleep(ctx context.Context) {
	if l.d <= 0 {
		return
	}
	select {
	case <-time.After(l.d):
	case <-ctx.Done():
	}
}
