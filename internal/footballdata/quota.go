package footballdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrQuotaExceeded = errors.New("football-data quota exceeded")

// Quota limita as chamadas ao provedor por janela de um minuto.
// Contador compartilhado em Redis (INCR + TTL), chave por minuto corrido,
// pra que todos os serviços dividam a mesma cota do free tier.
type Quota struct {
	Rdb      *redis.Client
	PerMin   int
	KeySpace string // prefixo da chave, default "fd:quota"
}

func NewQuota(rdb *redis.Client, perMin int) *Quota {
	return &Quota{Rdb: rdb, PerMin: perMin, KeySpace: "fd:quota"}
}

// Allow consome uma unidade da cota da janela atual.
// Retorna ErrQuotaExceeded quando a janela estourou; a chamada não é feita.
func (q *Quota) Allow(ctx context.Context) error {
	key := fmt.Sprintf("%s:%d", q.KeySpace, time.Now().Unix()/60)

	n, err := q.Rdb.Incr(ctx, key).Result()
	if err != nil {
		// Redis fora do ar não derruba o consumo do provedor
		return nil
	}
	if n == 1 {
		_ = q.Rdb.Expire(ctx, key, 90*time.Second).Err()
	}
	if int(n) > q.PerMin {
		return ErrQuotaExceeded
	}
	return nil
}
