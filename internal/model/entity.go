package model

// PublicEntity is static reference data seeded into `PUBLIC_ENTITIES`.
type PublicEntity struct {
	ID   uint64 `json:"id_public_entity"` // PUBLIC_ENTITIES.id_public_entity
	Name string `json:"name"`             // PUBLIC_ENTITIES.name
}
