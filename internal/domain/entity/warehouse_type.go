package entity

import "time"

// Tipos de bodega que el módulo de inventario espera encontrar. El setup los
// crea si no existen.
var DefaultWarehouseTypes = []string{"Transit", "Stores", "Goods In Transit", "Virtual"}

// WarehouseType representa un tipo de bodega (clave natural: Name).
type WarehouseType struct {
	Name      string
	CreatedAt time.Time
}
