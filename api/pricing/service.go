package pricing

import (
	"github.com/Hendyvelarius/lapiesbm-sub001/internal/serviceiface"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PricingService struct {
	config map[string]interface{}
	pool   *pgxpool.Pool
}

func NewPricingService(cfg map[string]interface{}, pool *pgxpool.Pool) serviceiface.Service {
	return &PricingService{config: cfg, pool: pool}
}

func (s *PricingService) Name() string {
	return "pricing"
}

func (s *PricingService) Start() error {
	go StartPricingService(s.pool)
	return nil
}

func (s *PricingService) Stop() error {
	return nil
}
