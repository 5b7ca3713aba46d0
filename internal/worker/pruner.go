package worker

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Pruner держит журнал аудита конечным: старше retention - удаляется.
// Задачи и сбросы он не трогает, сбросы считаются лениво при чтении.
type Pruner struct {
	pool      *pgxpool.Pool
	logger    *zap.Logger
	retention time.Duration
	interval  time.Duration
	wg        sync.WaitGroup
	stop      chan struct{}
}

func NewPruner(pool *pgxpool.Pool, logger *zap.Logger, retention, interval time.Duration) *Pruner {
	return &Pruner{
		pool:      pool,
		logger:    logger,
		retention: retention,
		interval:  interval,
		stop:      make(chan struct{}),
	}
}

func (p *Pruner) Start(ctx context.Context) {
	p.logger.Info("Starting audit pruner",
		zap.Duration("retention", p.retention),
		zap.Duration("interval", p.interval),
	)

	p.wg.Add(1)
	go p.run(ctx)
}

func (p *Pruner) Stop() {
	p.logger.Info("Stopping audit pruner...")
	close(p.stop)
	p.wg.Wait()
	p.logger.Info("Audit pruner stopped")
}

func (p *Pruner) run(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.PruneOnce(ctx); err != nil {
				p.logger.Error("audit prune failed", zap.Error(err))
			}
		}
	}
}

// PruneOnce удаляет записи аудита старше окна хранения
func (p *Pruner) PruneOnce(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-p.retention)

	cmd, err := p.pool.Exec(ctx, `
		DELETE FROM audit_log WHERE action_timestamp < $1
	`, cutoff)
	if err != nil {
		return err
	}

	if n := cmd.RowsAffected(); n > 0 {
		p.logger.Info("Pruned audit entries",
			zap.Int64("removed", n),
			zap.Time("cutoff", cutoff),
		)
	}
	return nil
}
