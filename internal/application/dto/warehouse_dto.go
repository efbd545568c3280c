package dto

import "time"

// WarehouseTypeResponse salida de un tipo de bodega.
type WarehouseTypeResponse struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
