package siteconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/google/renameio/v2"

	"github.com/jhoicas/Provisor-api/internal/domain/entity"
)

// Claves reconocidas dentro de site_config.json. El archivo puede traer claves
// adicionales del controlador SaaS; se preservan tal cual en cada escritura.
const (
	keySetupComplete = "setup_complete"
	keyPlanLimits    = "saas_plan_limits"
)

// Store lee y escribe el site_config.json del sitio. Las escrituras son
// atómicas (archivo temporal + fsync + rename) para que un corte a mitad de
// escritura nunca deje un JSON truncado.
type Store struct {
	path string
	mu   sync.Mutex
}

// New construye el store sobre la ruta dada. El archivo puede no existir
// todavía; una lectura sobre archivo ausente devuelve configuración vacía.
func New(path string) *Store {
	return &Store{path: path}
}

// Path devuelve la ruta del archivo administrado.
func (s *Store) Path() string {
	return s.path
}

// SetupComplete informa si el sitio quedó marcado como configurado.
func (s *Store) SetupComplete() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.read()
	if err != nil {
		return false, err
	}
	return truthy(cfg[keySetupComplete]), nil
}

// SetSetupComplete marca el sitio como configurado (setup_complete = 1).
func (s *Store) SetSetupComplete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.read()
	if err != nil {
		return err
	}
	cfg[keySetupComplete] = 1
	return s.write(cfg)
}

// PlanLimits lee los límites de plan persistidos. found=false si el archivo no
// tiene la clave.
func (s *Store) PlanLimits() (entity.PlanLimits, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var limits entity.PlanLimits
	cfg, err := s.read()
	if err != nil {
		return limits, false, err
	}
	raw, ok := cfg[keyPlanLimits]
	if !ok {
		return limits, false, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return limits, false, fmt.Errorf("marshal %s: %w", keyPlanLimits, err)
	}
	if err := json.Unmarshal(data, &limits); err != nil {
		return limits, false, fmt.Errorf("decode %s: %w", keyPlanLimits, err)
	}
	return limits, true, nil
}

// SetPlanLimits persiste los límites de plan preservando el resto del archivo.
func (s *Store) SetPlanLimits(limits entity.PlanLimits) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.read()
	if err != nil {
		return err
	}
	cfg[keyPlanLimits] = limits
	return s.write(cfg)
}

func (s *Store) read() (map[string]any, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("read site config: %w", err)
	}
	cfg := map[string]any{}
	if len(data) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse site config: %w", err)
	}
	return cfg, nil
}

func (s *Store) write(cfg map[string]any) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal site config: %w", err)
	}

	pending, err := renameio.NewPendingFile(s.path)
	if err != nil {
		return fmt.Errorf("create pending site config: %w", err)
	}
	defer func() { _ = pending.Cleanup() }()

	if _, err := pending.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write site config: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace site config: %w", err)
	}
	return nil
}

// truthy interpreta el valor del flag como lo haría la plataforma: números
// distintos de cero, true y "1" cuentan como activado.
func truthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val != 0
	case int:
		return val != 0
	case string:
		return val == "1" || val == "true"
	default:
		return false
	}
}
