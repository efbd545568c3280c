package limits

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Provisor-api/internal/domain/entity"
)

// CacheKey bajo la que viven los límites del plan en el cache del sitio.
const CacheKey = "saas_plan_limits"

// Cache puerto mínimo sobre el cache del sitio (Redis en producción).
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any) error
}

// ConfigFile puerto sobre el site_config.json del sitio.
type ConfigFile interface {
	PlanLimits() (entity.PlanLimits, bool, error)
	SetPlanLimits(entity.PlanLimits) error
}

// Store resuelve los límites vigentes del tenant. El cache es la fuente
// primaria; site_config.json es el respaldo persistente que sobrevive a un
// reinicio de Redis.
type Store struct {
	cache Cache
	file  ConfigFile
	log   zerolog.Logger
}

// NewStore construye el store de límites.
func NewStore(cache Cache, file ConfigFile, log zerolog.Logger) *Store {
	return &Store{cache: cache, file: file, log: log}
}

// Get devuelve los límites vigentes. Con cache frío (o caído) lee el archivo
// y vuelve a poblar el cache. Sin límites configurados devuelve el valor cero
// (todo ilimitado).
func (s *Store) Get(ctx context.Context) (entity.PlanLimits, error) {
	var limits entity.PlanLimits
	found, err := s.cache.GetJSON(ctx, CacheKey, &limits)
	if err != nil {
		s.log.Warn().Err(err).Msg("Cache de límites no disponible, leyendo site_config.json")
	}
	if found && !limits.IsZero() {
		return limits, nil
	}

	limits, fileFound, err := s.file.PlanLimits()
	if err != nil {
		return entity.PlanLimits{}, fmt.Errorf("read plan limits: %w", err)
	}
	if fileFound && !limits.IsZero() {
		if err := s.cache.SetJSON(ctx, CacheKey, limits); err != nil {
			s.log.Warn().Err(err).Msg("No se pudo repoblar el cache de límites")
		}
	}
	return limits, nil
}

// Set guarda los límites en el cache y los refleja en site_config.json. Un
// fallo al escribir el archivo se registra pero no interrumpe el sync; el
// cache queda como fuente vigente.
func (s *Store) Set(ctx context.Context, limits entity.PlanLimits) error {
	if err := s.cache.SetJSON(ctx, CacheKey, limits); err != nil {
		return fmt.Errorf("cache plan limits: %w", err)
	}
	if err := s.file.SetPlanLimits(limits); err != nil {
		s.log.Error().Err(err).Msg("No se pudo guardar los límites en site_config.json")
	}
	return nil
}
